package store

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/inovacc/gameshelf/internal/model"
)

// ErrNotFound is returned when no record has the requested id.
var ErrNotFound = errors.New("record not found")

const (
	DriverBolt   = "bolt"
	DriverSQLite = "sqlite"
)

// Store defines the operations the dev API server needs.
type Store interface {
	Ping() error
	List() ([]model.GameRecord, error)
	Get(id model.RecordID) (*model.GameRecord, error)
	Create(draft model.Draft) (*model.GameRecord, error)
	Update(id model.RecordID, draft model.Draft) (*model.GameRecord, error)
	Delete(id model.RecordID) error
	Count() (int, error)
	Close() error
}

// Open opens the store for driver with its file inside dir.
func Open(driver, dir string) (Store, error) {
	switch driver {
	case DriverBolt, "":
		return NewBolt(filepath.Join(dir, "gameshelf.bolt"))
	case DriverSQLite:
		return NewSQLite(filepath.Join(dir, "gameshelf.db"))
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}
}

// Seed inserts drafts when the store is empty. It returns how many records
// were inserted.
func Seed(s Store, drafts []model.Draft) (int, error) {
	n, err := s.Count()
	if err != nil {
		return 0, err
	}

	if n > 0 {
		return 0, nil
	}

	for i, d := range drafts {
		if _, err := s.Create(d); err != nil {
			return i, fmt.Errorf("seeding %q: %w", d.Title, err)
		}
	}

	return len(drafts), nil
}

// SampleCatalog is the data `gameshelf server --seed` starts with.
var SampleCatalog = []model.Draft{
	{Title: "Chrono Trigger", Platform: "SNES", Developer: "Square", Publisher: "Square"},
	{Title: "Super Metroid", Platform: "SNES", Developer: "Nintendo R&D1", Publisher: "Nintendo"},
	{Title: "Doom", Platform: "PC", Developer: "id Software", Publisher: "GT Interactive"},
	{Title: "The Legend of Zelda: Ocarina of Time", Platform: "N64", Developer: "Nintendo EAD", Publisher: "Nintendo"},
	{Title: "Half-Life", Platform: "PC", Developer: "Valve", Publisher: "Sierra Studios"},
}
