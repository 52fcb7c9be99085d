package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/inovacc/gameshelf/internal/collection"
	"github.com/inovacc/gameshelf/internal/model"
	"github.com/spf13/cobra"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all video games",
	Long: `Fetch the whole collection once and print it.

Examples:
  gameshelf list
  gameshelf list --deployment catalog
  gameshelf list --json`,
	Aliases: []string{"ls"},
	Args:    cobra.NoArgs,
	RunE:    runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")
}

func runList(cmd *cobra.Command, _ []string) error {
	ctrl, resolved, err := newController(app.logger)
	if err != nil {
		return err
	}

	state, err := ctrl.LoadAll(cmd.Context(), collection.NewState(resolved.Capability))
	if err != nil {
		return err
	}

	return renderList(cmd, state)
}

// renderList prints the snapshot. A read-only deployment whose load failed
// prints nothing but the error; a writable one still prints the (empty)
// table before reporting the failure.
func renderList(cmd *cobra.Command, state collection.State) error {
	out := cmd.OutOrStdout()

	if rf := state.Err(); rf != nil && state.Capability() == model.CapabilityReadOnly {
		return errors.New(rf.Cause())
	}

	if listJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")

		if err := enc.Encode(state.Records()); err != nil {
			return fmt.Errorf("failed to encode records: %w", err)
		}
	} else {
		printRecords(out, state.Records())
	}

	if rf := state.Err(); rf != nil {
		return rf
	}

	return nil
}
