package cmd

import (
	"fmt"

	"github.com/inovacc/gameshelf/internal/collection"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a video game",
	Long: `Add a video game to the collection. All four fields are required.

Examples:
  gameshelf add --title "Chrono Trigger" --platform SNES --developer Square --publisher Square`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

var addFields draftFlags

func init() {
	rootCmd.AddCommand(addCmd)

	addFields = bindDraftFlags(addCmd.Flags())
}

func runAdd(cmd *cobra.Command, _ []string) error {
	ctrl, resolved, err := newController(app.logger)
	if err != nil {
		return err
	}

	state, err := collection.NewState(resolved.Capability).BeginCreate()
	if err != nil {
		return err
	}

	state, _, err = addFields.apply(cmd.Flags(), state)
	if err != nil {
		return err
	}

	if missing := state.Draft().Missing(); len(missing) > 0 {
		return missingFieldsError(missing)
	}

	state, err = ctrl.SubmitDraft(cmd.Context(), state)
	if err != nil {
		return err
	}

	if rf := state.Err(); rf != nil {
		return rf
	}

	rec, _ := state.At(state.Len() - 1)

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added video game #%s\n", rec.ID)
	printRecord(cmd.OutOrStdout(), rec)

	return nil
}
