package main

import "github.com/marcus/voicetask/cmd/voicetask/commands"

func main() {
	commands.Execute()
}
