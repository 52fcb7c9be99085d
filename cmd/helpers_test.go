package cmd

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/inovacc/gameshelf/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{"short", "Doom", 10, "Doom"},
		{"exact", "Doom", 4, "Doom"},
		{"long", "The Legend of Zelda", 10, "The Leg..."},
		{"tiny limit", "Doom", 2, "Do"},
		{"multibyte", "ドラゴンクエスト", 5, "ドラ..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, truncateString(tt.input, tt.maxLen))
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{"", slog.LevelInfo, false},
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"verbose", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrintRecords(t *testing.T) {
	var buf bytes.Buffer

	printRecords(&buf, []model.GameRecord{
		{ID: model.ParseID("7"), Title: "Doom", Platform: "PC", Developer: "id Software", Publisher: "GT Interactive"},
	})

	out := buf.String()
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "TITLE")
	assert.Contains(t, out, "GT Interactive")

	buf.Reset()
	printRecords(&buf, nil)
	assert.Equal(t, "No video games found.\n", buf.String())
}

func TestMissingFieldsError(t *testing.T) {
	err := missingFieldsError([]model.Field{model.FieldPlatform, model.FieldPublisher})
	assert.EqualError(t, err, "missing required fields: --platform, --publisher")
}
