package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/marcus/voicetask/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently executed commands",
	Long: `Show the command history ledger: what was submitted, how it was
understood, and what happened. Newest first.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of entries to show")
	historyCmd.Flags().Bool("json", false, "Output as JSON")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	asJSON, _ := cmd.Flags().GetBool("json")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if !cfg.History.Enabled {
		fmt.Println("Command history is disabled (history.enabled: false).")
		return nil
	}

	ledger, err := history.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer ledger.Close()

	entries, err := ledger.Recent(limit)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Println("No command history yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "TIME\tINTENT\tSTATUS\tCOMMAND")
	for _, e := range entries {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			e.SubmittedAt.Local().Format("2006-01-02 15:04:05"), e.Intent, e.Status, e.RawText)
	}
	return w.Flush()
}
