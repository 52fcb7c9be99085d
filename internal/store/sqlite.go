package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/inovacc/gameshelf/internal/model"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS video_games (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	title     TEXT NOT NULL,
	platform  TEXT NOT NULL,
	developer TEXT NOT NULL,
	publisher TEXT NOT NULL
);`

// SQLite implements Store on a single SQLite file.
type SQLite struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLite opens (or creates) the SQLite database at dbPath.
func NewSQLite(dbPath string) (*SQLite, error) {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o700); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't handle multiple writers well
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) Ping() error {
	return s.db.Ping()
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) List() ([]model.GameRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT id, title, platform, developer, publisher FROM video_games ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing games: %w", err)
	}

	defer func() {
		_ = rows.Close()
	}()

	out := []model.GameRecord{}

	for rows.Next() {
		rec, err := scanGame(rows)
		if err != nil {
			return nil, err
		}

		out = append(out, *rec)
	}

	return out, rows.Err()
}

func (s *SQLite) Get(id model.RecordID) (*model.GameRecord, error) {
	n, ok := id.Int64()
	if !ok {
		return nil, ErrNotFound
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`SELECT id, title, platform, developer, publisher FROM video_games WHERE id = ?`, n)

	rec, err := scanGame(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}

	return rec, err
}

func (s *SQLite) Create(draft model.Draft) (*model.GameRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`INSERT INTO video_games (title, platform, developer, publisher) VALUES (?, ?, ?, ?)`,
		draft.Title, draft.Platform, draft.Developer, draft.Publisher)
	if err != nil {
		return nil, fmt.Errorf("inserting game: %w", err)
	}

	n, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	rec := draft.Record(model.IDFromInt64(n))

	return &rec, nil
}

func (s *SQLite) Update(id model.RecordID, draft model.Draft) (*model.GameRecord, error) {
	n, ok := id.Int64()
	if !ok {
		return nil, ErrNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`UPDATE video_games SET title = ?, platform = ?, developer = ?, publisher = ? WHERE id = ?`,
		draft.Title, draft.Platform, draft.Developer, draft.Publisher, n)
	if err != nil {
		return nil, fmt.Errorf("updating game: %w", err)
	}

	if err := requireAffected(res); err != nil {
		return nil, err
	}

	rec := draft.Record(model.IDFromInt64(n))

	return &rec, nil
}

func (s *SQLite) Delete(id model.RecordID) error {
	n, ok := id.Int64()
	if !ok {
		return ErrNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`DELETE FROM video_games WHERE id = ?`, n)
	if err != nil {
		return fmt.Errorf("deleting game: %w", err)
	}

	return requireAffected(res)
}

func (s *SQLite) Count() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM video_games`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting games: %w", err)
	}

	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGame(row rowScanner) (*model.GameRecord, error) {
	var (
		id  int64
		rec model.GameRecord
	)

	if err := row.Scan(&id, &rec.Title, &rec.Platform, &rec.Developer, &rec.Publisher); err != nil {
		return nil, err
	}

	rec.ID = model.IDFromInt64(id)

	return &rec, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if n == 0 {
		return ErrNotFound
	}

	return nil
}
