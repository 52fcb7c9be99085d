package cmd

import (
	"errors"
	"fmt"

	"github.com/inovacc/gameshelf/internal/collection"
	"github.com/inovacc/gameshelf/internal/model"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a video game",
	Long: `Replace fields of an existing video game. Only the given fields change;
the others keep their current values.

Examples:
  gameshelf edit 7 --platform DS
  gameshelf edit 7 --title "Doom II" --publisher "GT Interactive"`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

var editFields draftFlags

func init() {
	rootCmd.AddCommand(editCmd)

	editFields = bindDraftFlags(editCmd.Flags())
}

func runEdit(cmd *cobra.Command, args []string) error {
	id := model.ParseID(args[0])

	ctrl, resolved, err := newController(app.logger)
	if err != nil {
		return err
	}

	if !resolved.Capability.CanWrite() {
		return collection.ErrReadOnly
	}

	state, err := ctrl.LoadAll(cmd.Context(), collection.NewState(resolved.Capability))
	if err != nil {
		return err
	}

	if rf := state.Err(); rf != nil {
		return rf
	}

	rec, ok := state.Lookup(id)
	if !ok {
		return fmt.Errorf("video game #%s: %w", id, collection.ErrNotFound)
	}

	state, err = state.BeginEdit(rec)
	if err != nil {
		return err
	}

	state, changed, err := editFields.apply(cmd.Flags(), state)
	if err != nil {
		return err
	}

	if changed == 0 {
		return errors.New("nothing to change: pass at least one of --title, --platform, --developer, --publisher")
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

	updated, _ := state.Lookup(id)

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated video game #%s\n", id)
	printRecord(cmd.OutOrStdout(), updated)

	return nil
}
