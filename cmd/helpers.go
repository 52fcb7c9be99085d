package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/inovacc/gameshelf/internal/collection"
	"github.com/inovacc/gameshelf/internal/config"
	"github.com/inovacc/gameshelf/internal/gameapi"
	"github.com/inovacc/gameshelf/internal/model"
	"github.com/spf13/pflag"
)

// newController resolves the selected deployment and builds a controller
// backed by its API.
func newController(logger *slog.Logger) (*collection.Controller, config.Resolved, error) {
	resolved, err := app.cfg.Resolve(app.overrides)
	if err != nil {
		return nil, config.Resolved{}, err
	}

	client, err := gameapi.NewClient(resolved.BaseURL, gameapi.ClientOptions{
		Timeout: resolved.Timeout,
		Logger:  logger,
	})
	if err != nil {
		return nil, config.Resolved{}, err
	}

	ctrl := collection.NewController(client, collection.Options{Logger: logger})

	return ctrl, resolved, nil
}

// draftFlags holds one string flag per editable field.
type draftFlags map[model.Field]*string

// bindDraftFlags registers --title, --platform, --developer and --publisher.
func bindDraftFlags(fs *pflag.FlagSet) draftFlags {
	flags := draftFlags{}

	for _, f := range model.Fields {
		flags[f] = fs.String(string(f), "", fmt.Sprintf("Game %s", strings.ToLower(f.Label())))
	}

	return flags
}

// apply sets every field whose flag was given on the command line.
func (d draftFlags) apply(fs *pflag.FlagSet, s collection.State) (collection.State, int, error) {
	changed := 0

	for _, f := range model.Fields {
		if !fs.Changed(string(f)) {
			continue
		}

		next, err := s.SetField(f, *d[f])
		if err != nil {
			return s, changed, err
		}

		s = next
		changed++
	}

	return s, changed, nil
}

// missingFieldsError reports blank fields by flag name.
func missingFieldsError(missing []model.Field) error {
	names := make([]string, len(missing))
	for i, f := range missing {
		names[i] = "--" + string(f)
	}

	return fmt.Errorf("missing required fields: %s", strings.Join(names, ", "))
}

// printRecords writes records as an aligned table.
func printRecords(w io.Writer, records []model.GameRecord) {
	if len(records) == 0 {
		_, _ = fmt.Fprintln(w, "No video games found.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	_, _ = fmt.Fprintln(tw, "ID\tTITLE\tPLATFORM\tDEVELOPER\tPUBLISHER")
	_, _ = fmt.Fprintln(tw, "--\t-----\t--------\t---------\t---------")

	for _, r := range records {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			r.ID, truncateString(r.Title, 40), r.Platform,
			truncateString(r.Developer, 30), truncateString(r.Publisher, 30))
	}

	_ = tw.Flush()
}

// printRecord writes one record as labelled lines.
func printRecord(w io.Writer, r model.GameRecord) {
	_, _ = fmt.Fprintf(w, "  ID:        %s\n", r.ID)
	_, _ = fmt.Fprintf(w, "  Title:     %s\n", r.Title)
	_, _ = fmt.Fprintf(w, "  Platform:  %s\n", r.Platform)
	_, _ = fmt.Fprintf(w, "  Developer: %s\n", r.Developer)
	_, _ = fmt.Fprintf(w, "  Publisher: %s\n", r.Publisher)
}

// truncateString truncates a string to the specified length with ellipsis
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}

	if maxLen <= 3 {
		return string(r[:maxLen])
	}

	return string(r[:maxLen-3]) + "..."
}
