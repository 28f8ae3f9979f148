package businessservice

import (
	"context"
	"errors"
	"time"

	"github.com/xw1nchester/tca-backend/internal/apperror"
	"github.com/xw1nchester/tca-backend/internal/backend"
	"github.com/xw1nchester/tca-backend/internal/business"
	businessdb "github.com/xw1nchester/tca-backend/internal/business/db"
	"go.uber.org/zap"
)

const DefaultPageSize = 50

var ErrProfileNotFound = apperror.NewCodedError(backend.KindNoRow, "Company profile not found")

//go:generate mockgen -destination=mocks/mock.go -package=mockbusinessrepo . Repository
type Repository interface {
	GetByOwner(ctx context.Context, userID string) (*business.Profile, error)
	GetByID(ctx context.Context, id string) (*business.Profile, error)
	Upsert(ctx context.Context, data business.Profile) (*business.Profile, error)
	DeleteByOwner(ctx context.Context, userID string) error
	Search(ctx context.Context, term string, limit, offset int) ([]business.Profile, error)
}

type service struct {
	repository Repository
	logger     *zap.Logger
	now        func() time.Time
}

func New(repository Repository, logger *zap.Logger) *service {
	return &service{
		repository: repository,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *service) translate(err error, action string) error {
	switch {
	case errors.Is(err, businessdb.ErrProfileNotFound):
		return ErrProfileNotFound
	case errors.Is(err, businessdb.ErrTableMissing):
		s.logger.Warn("businesses table is missing", zap.String("action", action))
		return apperror.ErrTableMissing
	default:
		s.logger.Error("unexpected error when "+action, zap.Error(err))
		return err
	}
}

func (s *service) GetByOwner(ctx context.Context, userID string) (*business.Profile, error) {
	profile, err := s.repository.GetByOwner(ctx, userID)
	if err != nil {
		return nil, s.translate(err, "fetching business profile by owner")
	}

	return profile, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*business.Profile, error) {
	profile, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, s.translate(err, "fetching business profile by id")
	}

	return profile, nil
}

// Save upserts the owner's profile. Any client-side id is dropped so the
// stored row keeps its own.
func (s *service) Save(ctx context.Context, userID string, data business.Profile) (*business.Profile, error) {
	data.ID = ""
	data.UserID = userID
	data.Services = business.NormalizeServices(data.Services)
	if data.UpdatedAt.IsZero() {
		data.UpdatedAt = s.now().UTC()
	}

	saved, err := s.repository.Upsert(ctx, data)
	if err != nil {
		return nil, s.translate(err, "saving business profile")
	}

	return saved, nil
}

func (s *service) Delete(ctx context.Context, userID string) error {
	if err := s.repository.DeleteByOwner(ctx, userID); err != nil {
		return s.translate(err, "deleting business profile")
	}

	return nil
}

// Search backs the public directory. A missing table yields an empty list.
func (s *service) Search(ctx context.Context, term string, page int) ([]business.Profile, error) {
	if page < 1 {
		page = 1
	}

	profiles, err := s.repository.Search(ctx, term, DefaultPageSize, (page-1)*DefaultPageSize)
	if err != nil {
		if errors.Is(err, businessdb.ErrTableMissing) {
			s.logger.Warn("businesses table is missing, directory is empty")
			return []business.Profile{}, nil
		}
		s.logger.Error("unexpected error when searching business profiles", zap.Error(err))
		return nil, err
	}

	return profiles, nil
}
