package sitehandler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/xw1nchester/tca-backend/internal/apperror"
	"github.com/xw1nchester/tca-backend/internal/handlers"
	"github.com/xw1nchester/tca-backend/internal/site"
	"go.uber.org/zap"
)

var validate = validator.New()

//go:generate mockgen -source=handler.go -destination=mocks/mock.go -package=mocksiteservice
type Service interface {
	Page(slug string) (*site.Page, error)
	Tiers() []site.Tier
	Awards() site.Awards
	SubmitNomination(ctx context.Context, dto site.NominationRequest) site.Receipt
	SubmitContact(ctx context.Context, dto site.ContactRequest) site.Receipt
}

type handler struct {
	service Service
	logger  *zap.Logger
}

func New(service Service, logger *zap.Logger) handlers.Handler {
	return &handler{
		service: service,
		logger:  logger,
	}
}

type TiersResponse struct {
	Tiers []site.Tier `json:"tiers"`
}

func (h *handler) Register(router chi.Router) {
	router.Route("/site", func(siteRouter chi.Router) {
		siteRouter.Get("/pages/{slug}", apperror.Middleware(h.pageHandler))
		siteRouter.Get("/membership", apperror.Middleware(h.tiersHandler))
		siteRouter.Get("/awards", apperror.Middleware(h.awardsHandler))
		siteRouter.Post("/awards/nominations", apperror.Middleware(h.nominationHandler))
		siteRouter.Post("/contact", apperror.Middleware(h.contactHandler))
	})
}

func (h *handler) decode(r *http.Request, dto any) error {
	if err := render.DecodeJSON(r.Body, dto); err != nil {
		h.logger.Debug(apperror.ErrDecodeBody.Error(), zap.Error(err))
		return apperror.ErrDecodeBody
	}

	if err := validate.Struct(dto); err != nil {
		return apperror.NewValidationErr(err.(validator.ValidationErrors))
	}

	return nil
}

// @Tags		site
// @Param		slug	path		string	true	"home, about or training"
// @Success	200		{object}	site.Page
// @Failure	404		{object}	apperror.AppError
// @Router		/site/pages/{slug} [get]
func (h *handler) pageHandler(w http.ResponseWriter, r *http.Request) error {
	page, err := h.service.Page(chi.URLParam(r, "slug"))
	if err != nil {
		return err
	}

	render.JSON(w, r, page)

	return nil
}

// @Tags		site
// @Success	200	{object}	TiersResponse
// @Router		/site/membership [get]
func (h *handler) tiersHandler(w http.ResponseWriter, r *http.Request) error {
	render.JSON(w, r, TiersResponse{Tiers: h.service.Tiers()})

	return nil
}

// @Tags		site
// @Success	200	{object}	site.Awards
// @Router		/site/awards [get]
func (h *handler) awardsHandler(w http.ResponseWriter, r *http.Request) error {
	render.JSON(w, r, h.service.Awards())

	return nil
}

// @Tags		site
// @Param		request	body		site.NominationRequest	true	"request body"
// @Success	202		{object}	site.Receipt
// @Failure	400		{object}	apperror.AppError
// @Router		/site/awards/nominations [post]
func (h *handler) nominationHandler(w http.ResponseWriter, r *http.Request) error {
	var dto site.NominationRequest
	if err := h.decode(r, &dto); err != nil {
		return err
	}

	receipt := h.service.SubmitNomination(r.Context(), dto)

	render.Status(r, http.StatusAccepted)
	render.JSON(w, r, receipt)

	return nil
}

// @Tags		site
// @Param		request	body		site.ContactRequest	true	"request body"
// @Success	202		{object}	site.Receipt
// @Failure	400		{object}	apperror.AppError
// @Router		/site/contact [post]
func (h *handler) contactHandler(w http.ResponseWriter, r *http.Request) error {
	var dto site.ContactRequest
	if err := h.decode(r, &dto); err != nil {
		return err
	}

	receipt := h.service.SubmitContact(r.Context(), dto)

	render.Status(r, http.StatusAccepted)
	render.JSON(w, r, receipt)

	return nil
}
