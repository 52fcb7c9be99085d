package cmd

import (
	"fmt"

	"github.com/inovacc/gameshelf/internal/collection"
	"github.com/inovacc/gameshelf/internal/model"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Short:   "Delete a video game",
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(1),
	RunE:    runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	id := model.ParseID(args[0])

	ctrl, resolved, err := newController(app.logger)
	if err != nil {
		return err
	}

	state, err := ctrl.DeleteRecord(cmd.Context(), collection.NewState(resolved.Capability), id)
	if err != nil {
		return err
	}

	if rf := state.Err(); rf != nil {
		return rf
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted video game #%s\n", id)

	return nil
}
