package businesshandler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/xw1nchester/tca-backend/internal/apperror"
	jwtauth "github.com/xw1nchester/tca-backend/internal/auth/jwt"
	"github.com/xw1nchester/tca-backend/internal/business"
	"github.com/xw1nchester/tca-backend/internal/handlers"
	"go.uber.org/zap"
)

var validate = validator.New()

//go:generate mockgen -source=handler.go -destination=mocks/mock.go -package=mockbusinessservice
type Service interface {
	GetByOwner(ctx context.Context, userID string) (*business.Profile, error)
	GetByID(ctx context.Context, id string) (*business.Profile, error)
	Save(ctx context.Context, userID string, data business.Profile) (*business.Profile, error)
	Delete(ctx context.Context, userID string) error
	Search(ctx context.Context, term string, page int) ([]business.Profile, error)
}

type handler struct {
	service        Service
	authMiddleware func(http.Handler) http.Handler
	logger         *zap.Logger
}

func New(service Service, authMiddleware func(http.Handler) http.Handler, logger *zap.Logger) handlers.Handler {
	return &handler{
		service:        service,
		authMiddleware: authMiddleware,
		logger:         logger,
	}
}

func (h *handler) Register(router chi.Router) {
	router.Route("/me/business", func(privateRouter chi.Router) {
		privateRouter.Use(h.authMiddleware)
		privateRouter.Get("/", apperror.Middleware(h.getOwnHandler))
		privateRouter.Put("/", apperror.Middleware(h.saveOwnHandler))
		privateRouter.Delete("/", apperror.Middleware(h.deleteOwnHandler))
	})

	router.Route("/businesses", func(publicRouter chi.Router) {
		publicRouter.Get("/", apperror.Middleware(h.searchHandler))
		publicRouter.Get("/{id}", apperror.Middleware(h.getByIDHandler))
	})
}

// @Security	ApiKeyAuth
// @Tags		business
// @Success	200		{object}	business.Profile
// @Failure	401,404,503	{object}	apperror.AppError
// @Router		/me/business [get]
func (h *handler) getOwnHandler(w http.ResponseWriter, r *http.Request) error {
	profile, err := h.service.GetByOwner(r.Context(), jwtauth.UserID(r.Context()))
	if err != nil {
		return err
	}

	render.JSON(w, r, profile)

	return nil
}

// @Security	ApiKeyAuth
// @Tags		business
// @Param		request	body		ProfileRequest	true	"request body"
// @Success	200		{object}	business.Profile
// @Failure	400,401,503	{object}	apperror.AppError
// @Router		/me/business [put]
func (h *handler) saveOwnHandler(w http.ResponseWriter, r *http.Request) error {
	var dto ProfileRequest
	if err := render.DecodeJSON(r.Body, &dto); err != nil {
		h.logger.Debug(apperror.ErrDecodeBody.Error(), zap.Error(err))
		return apperror.ErrDecodeBody
	}

	if err := validate.Struct(dto); err != nil {
		return apperror.NewValidationErr(err.(validator.ValidationErrors))
	}

	userID := jwtauth.UserID(r.Context())

	saved, err := h.service.Save(r.Context(), userID, dto.ToDomain(userID))
	if err != nil {
		return err
	}

	render.JSON(w, r, saved)

	return nil
}

// @Security	ApiKeyAuth
// @Tags		business
// @Success	200
// @Failure	401,503	{object}	apperror.AppError
// @Router		/me/business [delete]
func (h *handler) deleteOwnHandler(w http.ResponseWriter, r *http.Request) error {
	return h.service.Delete(r.Context(), jwtauth.UserID(r.Context()))
}

// @Tags		business
// @Param		search	query		string	false	"name, email, city or state"
// @Param		page	query		int		false	"page number"
// @Success	200		{object}	DirectoryResponse
// @Router		/businesses [get]
func (h *handler) searchHandler(w http.ResponseWriter, r *http.Request) error {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	profiles, err := h.service.Search(r.Context(), r.URL.Query().Get("search"), page)
	if err != nil {
		return err
	}

	render.JSON(w, r, NewDirectoryResponse(profiles))

	return nil
}

// @Tags		business
// @Param		id	path		string	true	"profile id"
// @Success	200	{object}	business.Profile
// @Failure	404	{object}	apperror.AppError
// @Router		/businesses/{id} [get]
func (h *handler) getByIDHandler(w http.ResponseWriter, r *http.Request) error {
	profile, err := h.service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return err
	}

	profile.LogoURL = business.LogoURL(profile.LogoURL)

	render.JSON(w, r, profile)

	return nil
}
