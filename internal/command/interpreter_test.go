package command

import "testing"

func TestInterpretAdd(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string // expected description; "" means unrecognized
	}{
		{"plain add", "add buy milk", "buy milk"},
		{"create verb", "create finish report", "finish report"},
		{"mixed case", "Add Buy Milk", "buy milk"},
		{"extra whitespace", "  add   buy    milk  ", "buy milk"},
		{"add with nothing", "add", ""},
		{"add with only spaces", "add    ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent := Interpret(tt.raw)
			if tt.want == "" {
				if intent.Kind != IntentUnrecognized {
					t.Fatalf("Interpret(%q).Kind = %v, want unrecognized", tt.raw, intent.Kind)
				}
				return
			}
			if intent.Kind != IntentAdd {
				t.Fatalf("Interpret(%q).Kind = %v, want add", tt.raw, intent.Kind)
			}
			if intent.Description != tt.want {
				t.Errorf("Interpret(%q).Description = %q, want %q", tt.raw, intent.Description, tt.want)
			}
		})
	}
}

func TestInterpretSelectors(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		kind     IntentKind
		selector Selector
	}{
		{"complete by id", "complete 3", IntentComplete, Selector{Kind: SelectByID, ID: 3}},
		{"mark done by id", "mark done 12", IntentComplete, Selector{Kind: SelectByID, ID: 12}},
		{"complete by text", "complete buy milk", IntentComplete, Selector{Kind: SelectByDescription, Text: "buy milk"}},
		{"delete by id", "delete 7", IntentDelete, Selector{Kind: SelectByID, ID: 7}},
		{"remove by text", "remove finish report", IntentDelete, Selector{Kind: SelectByDescription, Text: "finish report"}},
		{"mixed digits and text", "delete 7th draft", IntentDelete, Selector{Kind: SelectByDescription, Text: "7th draft"}},
		{"negative number is text", "complete -3", IntentComplete, Selector{Kind: SelectByDescription, Text: "-3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent := Interpret(tt.raw)
			if intent.Kind != tt.kind {
				t.Fatalf("Interpret(%q).Kind = %v, want %v", tt.raw, intent.Kind, tt.kind)
			}
			if intent.Selector != tt.selector {
				t.Errorf("Interpret(%q).Selector = %+v, want %+v", tt.raw, intent.Selector, tt.selector)
			}
		})
	}
}

func TestInterpretList(t *testing.T) {
	for _, raw := range []string{"list tasks", "show tasks", "LIST TASKS", " list   tasks "} {
		if intent := Interpret(raw); intent.Kind != IntentList {
			t.Errorf("Interpret(%q).Kind = %v, want list", raw, intent.Kind)
		}
	}

	// A trailing remainder makes it not a list command.
	if intent := Interpret("list tasks please"); intent.Kind != IntentUnrecognized {
		t.Errorf("Interpret(%q).Kind = %v, want unrecognized", "list tasks please", intent.Kind)
	}
}

func TestInterpretUnrecognized(t *testing.T) {
	for _, raw := range []string{"", "   ", "frobnicate", "complete", "mark done", "delete", "list", "additional notes"} {
		intent := Interpret(raw)
		if intent.Kind != IntentUnrecognized {
			t.Errorf("Interpret(%q).Kind = %v, want unrecognized", raw, intent.Kind)
		}
		if intent.Raw != raw {
			t.Errorf("Interpret(%q).Raw = %q, want input text", raw, intent.Raw)
		}
	}
}

func TestInterpretLongestPrefixWins(t *testing.T) {
	// "mark done 3" must parse as the two-word verb, never as an
	// unknown verb "mark".
	intent := Interpret("mark done 3")
	if intent.Kind != IntentComplete {
		t.Fatalf("Interpret(%q).Kind = %v, want complete", "mark done 3", intent.Kind)
	}

	// "add list tasks" is an add whose description happens to contain
	// another verb phrase.
	intent = Interpret("add list tasks")
	if intent.Kind != IntentAdd || intent.Description != "list tasks" {
		t.Errorf("Interpret(%q) = %+v, want add %q", "add list tasks", intent, "list tasks")
	}
}
