package handlers

import "github.com/go-chi/chi/v5"

// Handler is one API module. Register mounts its routes on the keyed /api router.
type Handler interface {
	Register(router chi.Router)
}
