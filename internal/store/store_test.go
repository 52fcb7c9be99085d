package store

import (
	"path/filepath"
	"testing"

	"github.com/inovacc/gameshelf/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStores(t *testing.T) map[string]Store {
	t.Helper()

	stores := map[string]Store{}

	for _, driver := range []string{DriverBolt, DriverSQLite} {
		st, err := Open(driver, t.TempDir())
		require.NoError(t, err, driver)

		t.Cleanup(func() {
			if err := st.Close(); err != nil {
				t.Logf("failed to close %s store: %v", driver, err)
			}
		})

		stores[driver] = st
	}

	return stores
}

var (
	chrono = model.Draft{Title: "Chrono Trigger", Platform: "SNES", Developer: "Square", Publisher: "Square"}
	doom   = model.Draft{Title: "Doom", Platform: "PC", Developer: "id Software", Publisher: "GT Interactive"}
	zelda  = model.Draft{Title: "Ocarina of Time", Platform: "N64", Developer: "Nintendo EAD", Publisher: "Nintendo"}
)

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open("postgres", t.TempDir())
	require.Error(t, err)
}

func TestStore_Ping(t *testing.T) {
	for name, st := range setupStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, st.Ping())
		})
	}
}

func TestStore_EmptyList(t *testing.T) {
	for name, st := range setupStores(t) {
		t.Run(name, func(t *testing.T) {
			records, err := st.List()
			require.NoError(t, err)
			assert.NotNil(t, records)
			assert.Empty(t, records)
		})
	}
}

func TestStore_CreateAssignsIncreasingIDs(t *testing.T) {
	for name, st := range setupStores(t) {
		t.Run(name, func(t *testing.T) {
			a, err := st.Create(chrono)
			require.NoError(t, err)

			b, err := st.Create(doom)
			require.NoError(t, err)

			assert.Equal(t, model.ParseID("1"), a.ID)
			assert.Equal(t, model.ParseID("2"), b.ID)
			assert.Equal(t, chrono, a.Draft())

			records, err := st.List()
			require.NoError(t, err)
			assert.Equal(t, []model.GameRecord{*a, *b}, records)
		})
	}
}

func TestStore_GetUpdateDelete(t *testing.T) {
	for name, st := range setupStores(t) {
		t.Run(name, func(t *testing.T) {
			created, err := st.Create(chrono)
			require.NoError(t, err)

			got, err := st.Get(created.ID)
			require.NoError(t, err)
			assert.Equal(t, created, got)

			changed := chrono
			changed.Title = "Chrono Trigger DS"

			updated, err := st.Update(created.ID, changed)
			require.NoError(t, err)
			assert.Equal(t, changed.Record(created.ID), *updated)

			got, err = st.Get(created.ID)
			require.NoError(t, err)
			assert.Equal(t, "Chrono Trigger DS", got.Title)

			require.NoError(t, st.Delete(created.ID))

			_, err = st.Get(created.ID)
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStore_NotFound(t *testing.T) {
	for name, st := range setupStores(t) {
		t.Run(name, func(t *testing.T) {
			for _, id := range []model.RecordID{model.ParseID("42"), model.ParseID("abc"), model.ParseID("-1"), model.NoID} {
				_, err := st.Get(id)
				assert.ErrorIs(t, err, ErrNotFound, "get %q", id)

				_, err = st.Update(id, doom)
				assert.ErrorIs(t, err, ErrNotFound, "update %q", id)

				assert.ErrorIs(t, st.Delete(id), ErrNotFound, "delete %q", id)
			}
		})
	}
}

func TestStore_DeleteKeepsOrder(t *testing.T) {
	for name, st := range setupStores(t) {
		t.Run(name, func(t *testing.T) {
			a, _ := st.Create(chrono)
			b, _ := st.Create(doom)
			c, _ := st.Create(zelda)

			require.NoError(t, st.Delete(b.ID))

			records, err := st.List()
			require.NoError(t, err)
			assert.Equal(t, []model.GameRecord{*a, *c}, records)

			n, err := st.Count()
			require.NoError(t, err)
			assert.Equal(t, 2, n)
		})
	}
}

func TestSeed(t *testing.T) {
	for name, st := range setupStores(t) {
		t.Run(name, func(t *testing.T) {
			n, err := Seed(st, SampleCatalog)
			require.NoError(t, err)
			assert.Equal(t, len(SampleCatalog), n)

			n, err = Seed(st, SampleCatalog)
			require.NoError(t, err)
			assert.Zero(t, n, "seeding a non-empty store is a no-op")

			count, err := st.Count()
			require.NoError(t, err)
			assert.Equal(t, len(SampleCatalog), count)
		})
	}
}

func TestBolt_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "games.bolt")

	db, err := NewBolt(path)
	require.NoError(t, err)

	created, err := db.Create(doom)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = NewBolt(path)
	require.NoError(t, err)

	defer func() {
		_ = db.Close()
	}()

	got, err := db.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	next, err := db.Create(zelda)
	require.NoError(t, err)
	assert.Equal(t, model.ParseID("2"), next.ID, "sequence survives reopen")
}
