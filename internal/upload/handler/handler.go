package uploadhandler

import (
	"context"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/xw1nchester/tca-backend/internal/apperror"
	jwtauth "github.com/xw1nchester/tca-backend/internal/auth/jwt"
	"github.com/xw1nchester/tca-backend/internal/handlers"
	"github.com/xw1nchester/tca-backend/internal/upload"
	"go.uber.org/zap"
)

const maxRequestSize = upload.MaxLogoSize + 1<<20

var ErrMissingFile = apperror.NewAppError("multipart field file is required")

//go:generate mockgen -source=handler.go -destination=mocks/mock.go -package=mockuploadservice
type Service interface {
	UploadLogo(ctx context.Context, userID string, reader io.Reader) (*upload.File, error)
}

type handler struct {
	service        Service
	authMiddleware func(http.Handler) http.Handler
	logger         *zap.Logger
}

func New(
	service Service,
	authMiddleware func(http.Handler) http.Handler,
	logger *zap.Logger,
) handlers.Handler {
	return &handler{
		service:        service,
		authMiddleware: authMiddleware,
		logger:         logger,
	}
}

func (h *handler) Register(router chi.Router) {
	router.Group(func(privateRouter chi.Router) {
		privateRouter.Use(h.authMiddleware)

		privateRouter.Post("/upload/logo", apperror.Middleware(h.uploadLogoHandler))
	})
}

// @Security	ApiKeyAuth
// @Tags		upload
// @Accept		multipart/form-data
// @Param		file	formData	file	true	"logo image, at most 2 MiB"
// @Success	200		{object}	upload.File
// @Failure	400,401	{object}	apperror.AppError
// @Router		/upload/logo [post]
func (h *handler) uploadLogoHandler(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		h.logger.Debug("failed to read multipart file", zap.Error(err))
		return ErrMissingFile
	}
	defer file.Close()

	h.logger.Info("logo upload", zap.String("filename", header.Filename), zap.Int64("size", header.Size))

	uploaded, err := h.service.UploadLogo(r.Context(), jwtauth.UserID(r.Context()), file)
	if err != nil {
		return err
	}

	render.JSON(w, r, uploaded)

	return nil
}
