package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <description>...",
	Short: "Add a task",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAdd,
}

var completeCmd = &cobra.Command{
	Use:   "complete <id|text>...",
	Short: "Complete a task by id or description",
	Long: `Mark a task done. A numeric argument selects by id; anything else is a
case-insensitive description search. If the search matches more than
one task, nothing changes and the candidates are listed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runComplete,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id|text>...",
	Short: "Delete a task by id or description",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDelete,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all tasks",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().Bool("json", false, "Output as JSON")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(listCmd)
}

// submitOnce runs a single command text through a fresh coordinator
// and prints the outcome. Business outcomes (not found, ambiguous,
// invalid) are normal output with exit status 0; only infrastructure
// failures become errors.
func submitOnce(cmd *cobra.Command, text string) error {
	a, err := setupApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	res, err := a.coord.Submit(cmd.Context(), text)
	if err != nil {
		return err
	}
	fmt.Println(res.Message)
	return nil
}

func runAdd(cmd *cobra.Command, args []string) error {
	return submitOnce(cmd, "add "+strings.Join(args, " "))
}

func runComplete(cmd *cobra.Command, args []string) error {
	return submitOnce(cmd, "complete "+strings.Join(args, " "))
}

func runDelete(cmd *cobra.Command, args []string) error {
	return submitOnce(cmd, "delete "+strings.Join(args, " "))
}

func runList(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	a, err := setupApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	res, err := a.coord.Submit(cmd.Context(), "list tasks")
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res.Tasks)
	}

	if len(res.Tasks) == 0 {
		fmt.Println(res.Message)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tSTATUS\tCREATED\tDESCRIPTION")
	for _, t := range res.Tasks {
		status := "pending"
		if t.Completed {
			status = "done"
		}
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
			t.ID, status, t.CreatedAt.Local().Format("2006-01-02 15:04"), t.Description)
	}
	return w.Flush()
}
