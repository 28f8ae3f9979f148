package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/xw1nchester/tca-backend/internal/apperror"
	"github.com/xw1nchester/tca-backend/internal/business"
	businesshandler "github.com/xw1nchester/tca-backend/internal/business/handler"
	"github.com/xw1nchester/tca-backend/internal/handlers"
)

type unconfiguredHandler struct{}

// NewUnconfiguredHandler stands in for the database-backed modules when no
// database is configured: member routes answer 503 not_configured and the
// directory is empty.
func NewUnconfiguredHandler() handlers.Handler {
	return unconfiguredHandler{}
}

func (unconfiguredHandler) Register(router chi.Router) {
	notConfigured := apperror.Middleware(func(w http.ResponseWriter, r *http.Request) error {
		return apperror.ErrNotConfigured
	})

	router.Handle("/auth/*", notConfigured)
	router.Handle("/me/*", notConfigured)
	router.Handle("/upload/*", notConfigured)
	router.Get("/businesses/{id}", notConfigured)

	router.Get("/businesses", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, businesshandler.NewDirectoryResponse([]business.Profile{}))
	})
}
