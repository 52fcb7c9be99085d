package server

import (
	"net/http"

	"github.com/inovacc/gameshelf/internal/gameapi"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET "+gameapi.CollectionPath, s.handleListGames)
	mux.HandleFunc("POST "+gameapi.CollectionPath, s.handleCreateGame)
	mux.HandleFunc("GET "+gameapi.CollectionPath+"/{id}", s.handleGetGame)
	mux.HandleFunc("PUT "+gameapi.CollectionPath+"/{id}", s.handleUpdateGame)
	mux.HandleFunc("DELETE "+gameapi.CollectionPath+"/{id}", s.handleDeleteGame)

	// System
	mux.HandleFunc("GET /health", s.handleHealth)
}
