package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		text   string
		number bool
	}{
		{name: "number", input: `1`, text: "1", number: true},
		{name: "large number", input: `9007199254740993`, text: "9007199254740993", number: true},
		{name: "string", input: `"a1b2"`, text: "a1b2"},
		{name: "numeric string", input: `"42"`, text: "42"},
		{name: "null", input: `null`, text: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id RecordID

			require.NoError(t, json.Unmarshal([]byte(tt.input), &id))
			assert.Equal(t, tt.text, id.String())
			assert.Equal(t, tt.number, id.IsNumber())
		})
	}
}

func TestRecordID_UnmarshalJSON_Invalid(t *testing.T) {
	var id RecordID

	require.Error(t, json.Unmarshal([]byte(`{"x":1}`), &id))
	require.Error(t, json.Unmarshal([]byte(`true`), &id))
}

func TestRecordID_RoundTripKeepsForm(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{name: "leading zero string", id: `"007"`},
		{name: "plus sign string", id: `"+5"`},
		{name: "numeric string", id: `"42"`},
		{name: "number", id: `42`},
		{name: "negative number", id: `-3`},
		{name: "uuid string", id: `"3f2c9a1e-7b8d-4c6f-9e2a-1d5b8c7f0a34"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := `{"id":` + tt.id + `,"title":"Doom","platform":"PC","developer":"id Software","publisher":"GT Interactive"}`

			var rec GameRecord
			require.NoError(t, json.Unmarshal([]byte(payload), &rec))

			data, err := json.Marshal(rec)
			require.NoError(t, err)
			assert.JSONEq(t, payload, string(data))
		})
	}
}

func TestRecordID_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(GameRecord{ID: ParseID("7"), Title: "Chrono Trigger"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":7,"title":"Chrono Trigger","platform":"","developer":"","publisher":""}`, string(data))

	data, err = json.Marshal(ParseID("3f2c"))
	require.NoError(t, err)
	assert.Equal(t, `"3f2c"`, string(data))

	data, err = json.Marshal(StringID("42"))
	require.NoError(t, err)
	assert.Equal(t, `"42"`, string(data))

	data, err = json.Marshal(NoID)
	require.NoError(t, err)
	assert.Equal(t, `null`, string(data))
}

func TestParseID(t *testing.T) {
	tests := []struct {
		input  string
		number bool
	}{
		{input: "42", number: true},
		{input: "-1", number: true},
		{input: "0", number: true},
		{input: "007"},
		{input: "+5"},
		{input: "1e3"},
		{input: "abc"},
		{input: "99999999999999999999"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			id := ParseID(tt.input)
			assert.Equal(t, tt.input, id.String())
			assert.Equal(t, tt.number, id.IsNumber())

			data, err := json.Marshal(id)
			require.NoError(t, err)
			assert.True(t, json.Valid(data), "%s", data)
		})
	}
}

func TestRecordID_EqualIgnoresForm(t *testing.T) {
	assert.True(t, ParseID("42").Equal(StringID("42")))
	assert.False(t, ParseID("42").Equal(ParseID("042")))
	assert.True(t, NoID.IsZero())
	assert.False(t, StringID("x").IsZero())
}

func TestGameRecord_DecodeServerPayload(t *testing.T) {
	payload := `[{"id":1,"title":"Chrono Trigger","platform":"SNES","developer":"Square","publisher":"Square"}]`

	var records []GameRecord
	require.NoError(t, json.Unmarshal([]byte(payload), &records))
	require.Len(t, records, 1)

	assert.Equal(t, GameRecord{
		ID: ParseID("1"),
		Title:     "Chrono Trigger",
		Platform:  "SNES",
		Developer: "Square",
		Publisher: "Square",
	}, records[0])
}

func TestDraft_NeverEncodesID(t *testing.T) {
	rec := GameRecord{ID: ParseID("1"), Title: "Chrono Trigger", Platform: "SNES", Developer: "Square", Publisher: "Square"}

	data, err := json.Marshal(rec.Draft())
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.NotContains(t, fields, "id")
	assert.Len(t, fields, 4)
}

func TestDraft_WithAndGet(t *testing.T) {
	var d Draft

	for _, f := range Fields {
		var err error

		d, err = d.With(f, "v-"+string(f))
		require.NoError(t, err)
	}

	for _, f := range Fields {
		assert.Equal(t, "v-"+string(f), d.Get(f))
	}

	_, err := d.With(Field("rating"), "E")
	require.Error(t, err)
}

func TestDraft_Missing(t *testing.T) {
	d := Draft{Title: "Doom", Platform: "  ", Publisher: "id"}

	assert.Equal(t, []Field{FieldPlatform, FieldDeveloper}, d.Missing())
	assert.Empty(t, Draft{Title: "a", Platform: "b", Developer: "c", Publisher: "d"}.Missing())
	assert.True(t, Draft{}.IsZero())
}

func TestParseField(t *testing.T) {
	f, err := ParseField(" Title ")
	require.NoError(t, err)
	assert.Equal(t, FieldTitle, f)
	assert.Equal(t, "Title", f.Label())

	_, err = ParseField("id")
	require.Error(t, err)
}

func TestParseCapability(t *testing.T) {
	tests := []struct {
		input   string
		want    Capability
		wantErr bool
	}{
		{input: "crud", want: CapabilityCRUD},
		{input: "", want: CapabilityCRUD},
		{input: "read-only", want: CapabilityReadOnly},
		{input: "READONLY", want: CapabilityReadOnly},
		{input: "admin", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCapability(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.True(t, CapabilityCRUD.CanWrite())
	assert.False(t, CapabilityReadOnly.CanWrite())
}
