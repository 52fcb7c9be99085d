package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/inovacc/gameshelf/internal/gameapi"
	"github.com/inovacc/gameshelf/internal/model"
	"github.com/inovacc/gameshelf/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestServer(t *testing.T) (*Server, store.Store) {
	t.Helper()

	st, err := store.Open(store.DriverBolt, t.TempDir())
	require.NoError(t, err)

	t.Cleanup(func() {
		if err := st.Close(); err != nil {
			t.Logf("failed to close store: %v", err)
		}
	})

	srv, err := New(st, DefaultConfig(), Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	require.NoError(t, err)

	return srv, st
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

const chronoJSON = `{"title":"Chrono Trigger","platform":"SNES","developer":"Square","publisher":"Square"}`

func TestHandleListGames_Empty(t *testing.T) {
	srv, _ := setupTestServer(t)

	rec := doRequest(t, srv.Handler(), http.MethodGet, gameapi.CollectionPath, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHandleCreateGame(t *testing.T) {
	srv, st := setupTestServer(t)

	rec := doRequest(t, srv.Handler(), http.MethodPost, gameapi.CollectionPath, chronoJSON)
	require.Equal(t, http.StatusCreated, rec.Code)

	var got model.GameRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.False(t, got.ID.IsZero())
	assert.Equal(t, "Chrono Trigger", got.Title)
	assert.Equal(t, gameapi.CollectionPath+"/"+got.ID.String(), rec.Header().Get("Location"))

	n, err := st.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestHandleCreateGame_IgnoresClientID(t *testing.T) {
	srv, _ := setupTestServer(t)

	body := `{"id":999,"title":"Doom","platform":"PC","developer":"id Software","publisher":"GT Interactive"}`
	rec := doRequest(t, srv.Handler(), http.MethodPost, gameapi.CollectionPath, body)
	require.Equal(t, http.StatusCreated, rec.Code)

	var got model.GameRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.NotEqual(t, "999", got.ID.String())
}

func TestHandleCreateGame_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed", `{"title":`},
		{"missing field", `{"title":"Doom","platform":"PC","developer":"id Software"}`},
		{"blank field", `{"title":"  ","platform":"PC","developer":"id","publisher":"GT"}`},
		{"wrong type", `{"title":1,"platform":"PC","developer":"id","publisher":"GT"}`},
		{"not an object", `[]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, st := setupTestServer(t)

			rec := doRequest(t, srv.Handler(), http.MethodPost, gameapi.CollectionPath, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var resp errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Error)

			n, err := st.Count()
			require.NoError(t, err)
			assert.Zero(t, n)
		})
	}
}

func TestHandleGetGame(t *testing.T) {
	srv, st := setupTestServer(t)

	created, err := st.Create(model.Draft{Title: "Doom", Platform: "PC", Developer: "id Software", Publisher: "GT Interactive"})
	require.NoError(t, err)

	rec := doRequest(t, srv.Handler(), http.MethodGet, gameapi.CollectionPath+"/"+created.ID.String(), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got model.GameRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, *created, got)
}

func TestHandleUpdateGame(t *testing.T) {
	srv, st := setupTestServer(t)

	created, err := st.Create(model.Draft{Title: "Chrono Trigger", Platform: "SNES", Developer: "Square", Publisher: "Square"})
	require.NoError(t, err)

	body := `{"title":"Chrono Trigger","platform":"DS","developer":"Square Enix","publisher":"Square Enix"}`
	rec := doRequest(t, srv.Handler(), http.MethodPut, gameapi.CollectionPath+"/"+created.ID.String(), body)
	require.Equal(t, http.StatusOK, rec.Code)

	stored, err := st.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "DS", stored.Platform)
	assert.Equal(t, created.ID, stored.ID)
}

func TestHandleDeleteGame(t *testing.T) {
	srv, st := setupTestServer(t)

	created, err := st.Create(model.Draft{Title: "Doom", Platform: "PC", Developer: "id Software", Publisher: "GT Interactive"})
	require.NoError(t, err)

	rec := doRequest(t, srv.Handler(), http.MethodDelete, gameapi.CollectionPath+"/"+created.ID.String(), "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	_, err = st.Get(created.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestHandlers_NotFound(t *testing.T) {
	tests := []struct {
		method string
		body   string
	}{
		{http.MethodGet, ""},
		{http.MethodPut, chronoJSON},
		{http.MethodDelete, ""},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			srv, _ := setupTestServer(t)

			for _, id := range []string{"42", "abc"} {
				rec := doRequest(t, srv.Handler(), tt.method, gameapi.CollectionPath+"/"+id, tt.body)
				assert.Equal(t, http.StatusNotFound, rec.Code, id)
				assert.JSONEq(t, `{"error":"video game not found"}`, rec.Body.String())
			}
		})
	}
}

func TestHandleHealth(t *testing.T) {
	srv, _ := setupTestServer(t)

	rec := doRequest(t, srv.Handler(), http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestRequestIDMiddleware(t *testing.T) {
	srv, _ := setupTestServer(t)
	h := srv.Handler()

	rec := doRequest(t, h, http.MethodGet, "/health", "")
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestCORSPreflight(t *testing.T) {
	srv, _ := setupTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, gameapi.CollectionPath, nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestServer_StartServesClient(t *testing.T) {
	st, err := store.Open(store.DriverBolt, t.TempDir())
	require.NoError(t, err)

	defer func() { _ = st.Close() }()

	cfg := DefaultConfig()
	cfg.Addr = "127.0.0.1:0"
	cfg.InfoPath = filepath.Join(t.TempDir(), InfoFileName)
	cfg.Driver = store.DriverBolt

	srv, err := New(st, cfg, Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() { done <- srv.Start(ctx) }()

	addrCtx, addrCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer addrCancel()

	addr, err := srv.Addr(addrCtx)
	require.NoError(t, err)

	info, err := ReadInfo(cfg.InfoPath)
	require.NoError(t, err)
	assert.Equal(t, addr, info.Address)
	assert.Equal(t, os.Getpid(), info.PID)

	client, err := gameapi.NewClient(info.URL(), gameapi.ClientOptions{})
	require.NoError(t, err)

	created, err := client.Create(context.Background(), model.Draft{Title: "Half-Life", Platform: "PC", Developer: "Valve", Publisher: "Sierra Studios"})
	require.NoError(t, err)

	records, err := client.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, created.ID, records[0].ID)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}

	_, err = ReadInfo(cfg.InfoPath)
	assert.ErrorIs(t, err, ErrNoServerInfo)
}
