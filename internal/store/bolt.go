package store

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/inovacc/gameshelf/internal/model"
	"go.etcd.io/bbolt"
)

const boltBucketGames = "games" // key: uint64 id (big-endian) -> GameRecord JSON

type Bolt struct {
	db *bbolt.DB
}

// NewBolt opens (or creates) a bolt store at path.
func NewBolt(path string) (*Bolt, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening bolt database: %w", err)
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(boltBucketGames))
		return err
	}); err != nil {
		_ = db.Close()

		return nil, err
	}

	return &Bolt{db: db}, nil
}

func (b *Bolt) Ping() error {
	return b.db.View(func(tx *bbolt.Tx) error {
		return nil
	})
}

func (b *Bolt) Close() error {
	return b.db.Close()
}

func (b *Bolt) List() ([]model.GameRecord, error) {
	out := []model.GameRecord{}

	err := b.db.View(func(tx *bbolt.Tx) error {
		games := tx.Bucket([]byte(boltBucketGames))

		return games.ForEach(func(k, v []byte) error {
			var r model.GameRecord

			if err := json.Unmarshal(v, &r); err != nil {
				return err
			}

			out = append(out, r)

			return nil
		})
	})

	return out, err
}

func (b *Bolt) Get(id model.RecordID) (*model.GameRecord, error) {
	key, ok := boltKey(id)
	if !ok {
		return nil, ErrNotFound
	}

	var rec *model.GameRecord

	err := b.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket([]byte(boltBucketGames)).Get(key)
		if v == nil {
			return ErrNotFound
		}

		var r model.GameRecord
		if err := json.Unmarshal(v, &r); err != nil {
			return err
		}

		rec = &r

		return nil
	})

	return rec, err
}

func (b *Bolt) Create(draft model.Draft) (*model.GameRecord, error) {
	var rec model.GameRecord

	err := b.db.Update(func(tx *bbolt.Tx) error {
		games := tx.Bucket([]byte(boltBucketGames))

		seq, err := games.NextSequence()
		if err != nil {
			return err
		}

		rec = draft.Record(model.IDFromInt64(int64(seq)))

		data, err := json.Marshal(&rec)
		if err != nil {
			return err
		}

		return games.Put(uint64Key(seq), data)
	})
	if err != nil {
		return nil, err
	}

	return &rec, nil
}

func (b *Bolt) Update(id model.RecordID, draft model.Draft) (*model.GameRecord, error) {
	key, ok := boltKey(id)
	if !ok {
		return nil, ErrNotFound
	}

	n, _ := id.Int64()
	rec := draft.Record(model.IDFromInt64(n))

	data, err := json.Marshal(&rec)
	if err != nil {
		return nil, err
	}

	err = b.db.Update(func(tx *bbolt.Tx) error {
		games := tx.Bucket([]byte(boltBucketGames))

		if games.Get(key) == nil {
			return ErrNotFound
		}

		return games.Put(key, data)
	})
	if err != nil {
		return nil, err
	}

	return &rec, nil
}

func (b *Bolt) Delete(id model.RecordID) error {
	key, ok := boltKey(id)
	if !ok {
		return ErrNotFound
	}

	return b.db.Update(func(tx *bbolt.Tx) error {
		games := tx.Bucket([]byte(boltBucketGames))

		if games.Get(key) == nil {
			return ErrNotFound
		}

		return games.Delete(key)
	})
}

func (b *Bolt) Count() (int, error) {
	var n int

	err := b.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(boltBucketGames)).ForEach(func(_, _ []byte) error {
			n++
			return nil
		})
	})

	return n, err
}

func boltKey(id model.RecordID) ([]byte, bool) {
	n, ok := id.Int64()
	if !ok || n <= 0 {
		return nil, false
	}

	return uint64Key(uint64(n)), true
}

func uint64Key(n uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, n)

	return key
}
