package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// RecordID is the server-assigned identifier of a game record.
//
// The client treats it as opaque. It decodes from either a JSON number or a
// JSON string and re-encodes in the form it was received. Ids compare by
// text with [RecordID.Equal].
type RecordID struct {
	text   string
	number bool
}

// NoID is the zero RecordID, used where a record has not been created yet.
var NoID = RecordID{}

// ParseID builds a RecordID from user or URL text. Canonical integers take
// the number form, anything else the string form.
func ParseID(s string) RecordID {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil && strconv.FormatInt(n, 10) == s {
		return RecordID{text: s, number: true}
	}

	return RecordID{text: s}
}

// StringID builds a RecordID that always encodes as a JSON string.
func StringID(s string) RecordID {
	return RecordID{text: s}
}

// IDFromInt64 builds a RecordID from a numeric key.
func IDFromInt64(n int64) RecordID {
	return RecordID{text: strconv.FormatInt(n, 10), number: true}
}

// IsZero reports whether the id is unset.
func (id RecordID) IsZero() bool {
	return id.text == ""
}

// Equal reports whether two ids have the same text, whatever their form.
func (id RecordID) Equal(other RecordID) bool {
	return id.text == other.text
}

// IsNumber reports whether the id encodes as a JSON number.
func (id RecordID) IsNumber() bool {
	return id.number
}

func (id RecordID) String() string {
	return id.text
}

// Int64 returns the id as an integer, for stores that key records by number.
func (id RecordID) Int64() (int64, bool) {
	n, err := strconv.ParseInt(id.text, 10, 64)
	if err != nil {
		return 0, false
	}

	return n, true
}

func (id RecordID) MarshalJSON() ([]byte, error) {
	if id.IsZero() {
		return []byte("null"), nil
	}

	if id.number {
		return []byte(id.text), nil
	}

	return json.Marshal(id.text)
}

func (id *RecordID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*id = NoID
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid record id: %w", err)
		}

		*id = StringID(s)

		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid record id %s: %w", data, err)
	}

	*id = RecordID{text: n.String(), number: true}

	return nil
}

// GameRecord is one item of the video game catalogue.
type GameRecord struct {
	// ID is assigned by the server and echoed back on creation
	ID RecordID `json:"id"`

	// Title is the game title
	Title string `json:"title"`

	// Platform is the system the game runs on (e.g., "SNES")
	Platform string `json:"platform"`

	// Developer is the studio that made the game
	Developer string `json:"developer"`

	// Publisher is the company that published the game
	Publisher string `json:"publisher"`
}

// Draft returns the four text fields of the record, without its id.
func (r GameRecord) Draft() Draft {
	return Draft{
		Title:     r.Title,
		Platform:  r.Platform,
		Developer: r.Developer,
		Publisher: r.Publisher,
	}
}

// Draft is the not-yet-submitted form of a record. It never carries an id,
// so it is also the body of create and update requests.
type Draft struct {
	Title     string `json:"title"`
	Platform  string `json:"platform"`
	Developer string `json:"developer"`
	Publisher string `json:"publisher"`
}

// IsZero reports whether every field is empty.
func (d Draft) IsZero() bool {
	return d == Draft{}
}

// Record combines the draft with an id.
func (d Draft) Record(id RecordID) GameRecord {
	return GameRecord{
		ID:        id,
		Title:     d.Title,
		Platform:  d.Platform,
		Developer: d.Developer,
		Publisher: d.Publisher,
	}
}

// Get returns the value of field f.
func (d Draft) Get(f Field) string {
	switch f {
	case FieldTitle:
		return d.Title
	case FieldPlatform:
		return d.Platform
	case FieldDeveloper:
		return d.Developer
	case FieldPublisher:
		return d.Publisher
	}

	return ""
}

// With returns a copy of the draft with field f set to value.
func (d Draft) With(f Field, value string) (Draft, error) {
	switch f {
	case FieldTitle:
		d.Title = value
	case FieldPlatform:
		d.Platform = value
	case FieldDeveloper:
		d.Developer = value
	case FieldPublisher:
		d.Publisher = value
	default:
		return d, fmt.Errorf("unknown field %q", string(f))
	}

	return d, nil
}

// Missing returns the fields that are blank, in form order.
func (d Draft) Missing() []Field {
	var out []Field

	for _, f := range Fields {
		if strings.TrimSpace(d.Get(f)) == "" {
			out = append(out, f)
		}
	}

	return out
}

// Field names one of the four editable text fields.
type Field string

const (
	FieldTitle     Field = "title"
	FieldPlatform  Field = "platform"
	FieldDeveloper Field = "developer"
	FieldPublisher Field = "publisher"
)

// Fields lists the editable fields in form order.
var Fields = []Field{FieldTitle, FieldPlatform, FieldDeveloper, FieldPublisher}

// Label returns the capitalized field name used as a column header.
func (f Field) Label() string {
	if f == "" {
		return ""
	}

	return strings.ToUpper(string(f[:1])) + string(f[1:])
}

// ParseField converts a field name (case-insensitive) to a Field.
func ParseField(s string) (Field, error) {
	f := Field(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Fields {
		if f == known {
			return f, nil
		}
	}

	return "", fmt.Errorf("unknown field %q (want one of title, platform, developer, publisher)", s)
}
