package apperror

import (
	"errors"
	"net/http"

	"github.com/xw1nchester/tca-backend/internal/backend"
)

type handler func(w http.ResponseWriter, r *http.Request) error

func Middleware(h handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		err := h(w, r)

		var appErr *AppError
		if err != nil {
			if errors.As(err, &appErr) {
				w.WriteHeader(StatusOf(appErr))

				w.Write(appErr.Marshal())

				return
			}

			w.WriteHeader(http.StatusInternalServerError)
			w.Write(internalError().Marshal())
		}
	}
}

func StatusOf(err *AppError) int {
	switch err.Kind() {
	case backend.KindNoRow:
		return http.StatusNotFound
	case backend.KindUnauthorized:
		return http.StatusUnauthorized
	case backend.KindConflict, backend.KindUnconfirmed:
		return http.StatusConflict
	case backend.KindTableMissing, backend.KindNotConfigured:
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadRequest
	}
}
