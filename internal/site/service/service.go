package siteservice

import (
	"context"
	"fmt"
	"html"
	"time"

	"github.com/google/uuid"
	"github.com/xw1nchester/tca-backend/internal/apperror"
	"github.com/xw1nchester/tca-backend/internal/backend"
	"github.com/xw1nchester/tca-backend/internal/mail"
	"github.com/xw1nchester/tca-backend/internal/site"
	"go.uber.org/zap"
)

var ErrPageNotFound = apperror.NewCodedError(backend.KindNoRow, "page not found")

//go:generate mockgen -destination=mocks/mock.go -package=mocksitemail . MailSender
type MailSender interface {
	Send(ctx context.Context, msg mail.Message) error
}

type service struct {
	pages      *site.Pages
	mailSender MailSender
	inbox      string
	logger     *zap.Logger
	now        func() time.Time
}

func New(pages *site.Pages, mailSender MailSender, inbox string, logger *zap.Logger) *service {
	return &service{
		pages:      pages,
		mailSender: mailSender,
		inbox:      inbox,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *service) Page(slug string) (*site.Page, error) {
	page, err := s.pages.Get(slug)
	if err != nil {
		return nil, ErrPageNotFound
	}

	return &page, nil
}

func (s *service) Tiers() []site.Tier {
	return site.Tiers
}

func (s *service) Awards() site.Awards {
	return site.Awards{
		Categories: site.AwardCategories,
		Winners:    site.Winners,
	}
}

// SubmitNomination acknowledges a nomination and notifies the association inbox.
// Nothing is stored.
func (s *service) SubmitNomination(ctx context.Context, dto site.NominationRequest) site.Receipt {
	receipt := s.receipt()

	s.logger.Info("award nomination received",
		zap.String("id", receipt.ID),
		zap.String("business", dto.BusinessName),
		zap.String("type", dto.BusinessType),
		zap.String("email", dto.Email),
	)

	s.notify(ctx, receipt, dto.Email, "Award nomination: "+dto.BusinessName, fmt.Sprintf(
		`<p><b>%s</b> (%s) was nominated by %s &lt;%s&gt;.</p><p>Years in business: %s</p><p>%s</p>`,
		html.EscapeString(dto.BusinessName),
		html.EscapeString(dto.BusinessType),
		html.EscapeString(dto.ContactName),
		html.EscapeString(dto.Email),
		html.EscapeString(dto.YearsInBusiness),
		html.EscapeString(dto.SpecialAchievements),
	))

	return receipt
}

func (s *service) SubmitContact(ctx context.Context, dto site.ContactRequest) site.Receipt {
	receipt := s.receipt()

	s.logger.Info("contact message received",
		zap.String("id", receipt.ID),
		zap.String("name", dto.Name),
		zap.String("email", dto.Email),
	)

	s.notify(ctx, receipt, dto.Email, "Contact form: "+dto.Name, fmt.Sprintf(
		`<p>From %s &lt;%s&gt;</p><p>%s</p>`,
		html.EscapeString(dto.Name),
		html.EscapeString(dto.Email),
		html.EscapeString(dto.Message),
	))

	return receipt
}

func (s *service) receipt() site.Receipt {
	return site.Receipt{
		ID:         uuid.NewString(),
		ReceivedAt: s.now().UTC(),
	}
}

// notify never fails the submission; delivery problems are only logged.
func (s *service) notify(ctx context.Context, receipt site.Receipt, replyTo, subject, body string) {
	if s.inbox == "" {
		return
	}

	if err := s.mailSender.Send(ctx, mail.Message{
		To:      []string{s.inbox},
		Subject: subject,
		HTML:    body,
		ReplyTo: replyTo,
	}); err != nil {
		s.logger.Error("unexpected error when sending form notification", zap.String("id", receipt.ID), zap.Error(err))
	}
}
