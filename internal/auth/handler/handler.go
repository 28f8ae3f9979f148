package authhandler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/xw1nchester/tca-backend/internal/apperror"
	"github.com/xw1nchester/tca-backend/internal/auth"
	jwtauth "github.com/xw1nchester/tca-backend/internal/auth/jwt"
	"github.com/xw1nchester/tca-backend/internal/backend"
	"github.com/xw1nchester/tca-backend/internal/handlers"
	"go.uber.org/zap"
)

var validate = validator.New()

//go:generate mockgen -source=handler.go -destination=mocks/mock.go -package=mockauthservice
type Service interface {
	SignUp(ctx context.Context, dto auth.SignUpRequest, userAgent string) (*backend.Session, error)
	SignIn(ctx context.Context, dto auth.SignInRequest, userAgent string) (*backend.Session, error)
	Refresh(ctx context.Context, token string, userAgent string) (*backend.Session, error)
	SignOut(ctx context.Context, token string) error
	ResetPassword(ctx context.Context, dto auth.ResetPasswordRequest) error
	ConfirmPasswordReset(ctx context.Context, dto auth.ConfirmResetRequest) error
	GetUser(ctx context.Context, userID string) (*backend.Identity, error)
	UpdateUser(ctx context.Context, userID string, dto auth.UpdateUserRequest) (*backend.Identity, error)
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
	router.Route("/auth", func(authRouter chi.Router) {
		authRouter.Post("/sign-up", apperror.Middleware(h.signUpHandler))
		authRouter.Post("/sign-in", apperror.Middleware(h.signInHandler))
		authRouter.Post("/refresh", apperror.Middleware(h.refreshHandler))
		authRouter.Post("/sign-out", apperror.Middleware(h.signOutHandler))
		authRouter.Post("/reset-password", apperror.Middleware(h.resetPasswordHandler))
		authRouter.Post("/reset-password/confirm", apperror.Middleware(h.confirmResetHandler))

		authRouter.Group(func(privateRouter chi.Router) {
			privateRouter.Use(h.authMiddleware)

			privateRouter.Get("/user", apperror.Middleware(h.getUserHandler))
			privateRouter.Patch("/user", apperror.Middleware(h.updateUserHandler))
		})
	})
}

func decodeAndValidate(r *http.Request, dto any) error {
	if err := render.DecodeJSON(r.Body, dto); err != nil {
		return apperror.ErrDecodeBody
	}

	if err := validate.Struct(dto); err != nil {
		return apperror.NewValidationErr(err.(validator.ValidationErrors))
	}

	return nil
}

// @Tags		auth
// @Param		request	body		auth.SignUpRequest	true	"request body"
// @Success	200		{object}	backend.Session
// @Failure	400,409,500	{object}	apperror.AppError
// @Router		/auth/sign-up [post]
func (h *handler) signUpHandler(w http.ResponseWriter, r *http.Request) error {
	var dto auth.SignUpRequest
	if err := decodeAndValidate(r, &dto); err != nil {
		return err
	}

	session, err := h.service.SignUp(r.Context(), dto, r.Header.Get("User-Agent"))
	if err != nil {
		return err
	}

	render.JSON(w, r, session)

	return nil
}

// @Tags		auth
// @Param		request	body		auth.SignInRequest	true	"request body"
// @Success	200		{object}	backend.Session
// @Failure	400,500	{object}	apperror.AppError
// @Router		/auth/sign-in [post]
func (h *handler) signInHandler(w http.ResponseWriter, r *http.Request) error {
	var dto auth.SignInRequest
	if err := decodeAndValidate(r, &dto); err != nil {
		return err
	}

	session, err := h.service.SignIn(r.Context(), dto, r.Header.Get("User-Agent"))
	if err != nil {
		return err
	}

	render.JSON(w, r, session)

	return nil
}

// @Tags		auth
// @Param		request	body		auth.RefreshRequest	true	"request body"
// @Success	200		{object}	backend.Session
// @Failure	400,401,500	{object}	apperror.AppError
// @Router		/auth/refresh [post]
func (h *handler) refreshHandler(w http.ResponseWriter, r *http.Request) error {
	var dto auth.RefreshRequest
	if err := decodeAndValidate(r, &dto); err != nil {
		return err
	}

	session, err := h.service.Refresh(r.Context(), dto.RefreshToken, r.Header.Get("User-Agent"))
	if err != nil {
		return err
	}

	render.JSON(w, r, session)

	return nil
}

// @Tags		auth
// @Param		request	body	auth.RefreshRequest	true	"request body"
// @Success	200
// @Router		/auth/sign-out [post]
func (h *handler) signOutHandler(w http.ResponseWriter, r *http.Request) error {
	var dto auth.RefreshRequest
	if err := render.DecodeJSON(r.Body, &dto); err != nil || dto.RefreshToken == "" {
		return nil
	}

	return h.service.SignOut(r.Context(), dto.RefreshToken)
}

// @Tags		auth
// @Param		request	body	auth.ResetPasswordRequest	true	"request body"
// @Success	200
// @Failure	400,500	{object}	apperror.AppError
// @Router		/auth/reset-password [post]
func (h *handler) resetPasswordHandler(w http.ResponseWriter, r *http.Request) error {
	var dto auth.ResetPasswordRequest
	if err := decodeAndValidate(r, &dto); err != nil {
		return err
	}

	return h.service.ResetPassword(r.Context(), dto)
}

// @Tags		auth
// @Param		request	body	auth.ConfirmResetRequest	true	"request body"
// @Success	200
// @Failure	400,500	{object}	apperror.AppError
// @Router		/auth/reset-password/confirm [post]
func (h *handler) confirmResetHandler(w http.ResponseWriter, r *http.Request) error {
	var dto auth.ConfirmResetRequest
	if err := decodeAndValidate(r, &dto); err != nil {
		return err
	}

	return h.service.ConfirmPasswordReset(r.Context(), dto)
}

// @Security	ApiKeyAuth
// @Tags		auth
// @Success	200		{object}	backend.Identity
// @Failure	401,500	{object}	apperror.AppError
// @Router		/auth/user [get]
func (h *handler) getUserHandler(w http.ResponseWriter, r *http.Request) error {
	identity, err := h.service.GetUser(r.Context(), jwtauth.UserID(r.Context()))
	if err != nil {
		return err
	}

	render.JSON(w, r, identity)

	return nil
}

// @Security	ApiKeyAuth
// @Tags		auth
// @Param		request	body		auth.UpdateUserRequest	true	"request body"
// @Success	200		{object}	backend.Identity
// @Failure	400,401,500	{object}	apperror.AppError
// @Router		/auth/user [patch]
func (h *handler) updateUserHandler(w http.ResponseWriter, r *http.Request) error {
	var dto auth.UpdateUserRequest
	if err := decodeAndValidate(r, &dto); err != nil {
		return err
	}

	identity, err := h.service.UpdateUser(r.Context(), jwtauth.UserID(r.Context()), dto)
	if err != nil {
		return err
	}

	render.JSON(w, r, identity)

	return nil
}
