package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/inovacc/gameshelf/internal/application"
	"github.com/inovacc/gameshelf/internal/model"
	"github.com/inovacc/gameshelf/internal/store"
)

const maxBodyBytes = 64 << 10

// errorResponse is the body of every non-2xx answer
type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleListGames(w http.ResponseWriter, _ *http.Request) {
	records, err := s.store.List()
	if err != nil {
		s.storeError(w, "list", err)
		return
	}

	s.writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(model.ParseID(r.PathValue("id")))
	if err != nil {
		s.storeError(w, "get", err)
		return
	}

	s.writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	draft, ok := s.readDraft(w, r)
	if !ok {
		return
	}

	rec, err := s.store.Create(draft)
	if err != nil {
		s.storeError(w, "create", err)
		return
	}

	w.Header().Set("Location", r.URL.Path+"/"+rec.ID.String())
	s.writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleUpdateGame(w http.ResponseWriter, r *http.Request) {
	draft, ok := s.readDraft(w, r)
	if !ok {
		return
	}

	rec, err := s.store.Update(model.ParseID(r.PathValue("id")), draft)
	if err != nil {
		s.storeError(w, "update", err)
		return
	}

	s.writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(model.ParseID(r.PathValue("id"))); err != nil {
		s.storeError(w, "delete", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	status := http.StatusOK
	body := map[string]string{"status": "ok", "version": application.Version}

	if err := s.store.Ping(); err != nil {
		status = http.StatusServiceUnavailable
		body["status"] = "unavailable"
	}

	s.writeJSON(w, status, body)
}

// readDraft validates the request body and decodes it. Any "id" the client
// sent is dropped: ids are assigned by the store.
func (s *Server) readDraft(w http.ResponseWriter, r *http.Request) (model.Draft, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.jsonError(w, "request body too large or unreadable", http.StatusBadRequest)
		return model.Draft{}, false
	}

	if err := s.validator.Validate(body); err != nil {
		s.jsonError(w, err.Error(), http.StatusBadRequest)
		return model.Draft{}, false
	}

	var draft model.Draft
	if err := json.Unmarshal(body, &draft); err != nil {
		s.jsonError(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return model.Draft{}, false
	}

	return draft, true
}

func (s *Server) storeError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, store.ErrNotFound) {
		s.jsonError(w, "video game not found", http.StatusNotFound)
		return
	}

	s.logger.Error("store operation failed", slog.String("op", op), slog.Any("error", err))
	s.jsonError(w, "internal error", http.StatusInternalServerError)
}

func (s *Server) jsonError(w http.ResponseWriter, msg string, status int) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("failed to write response", slog.Any("error", err))
	}
}
