package profile

import (
	"context"
	"errors"
	"time"

	"github.com/xw1nchester/tca-backend/internal/backend"
	"github.com/xw1nchester/tca-backend/internal/business"
	"go.uber.org/zap"
)

var ErrNothingToSave = errors.New("no profile loaded")

// Gateway persists edited profiles. One row per owner; the owner id is the conflict key.
type Gateway struct {
	profiles backend.Profiles
	now      func() time.Time
	logger   *zap.Logger
}

func NewGateway(profiles backend.Profiles, logger *zap.Logger) *Gateway {
	return &Gateway{
		profiles: profiles,
		now:      time.Now,
		logger:   logger,
	}
}

// Payload is the record sent to the store for entry. A provisional or temporary
// id never leaves the process; the store assigns the permanent one.
func (g *Gateway) Payload(ownerID string, entry Entry) business.Profile {
	payload := entry.Profile.Clone()
	payload.UserID = ownerID
	payload.Services = business.NormalizeServices(payload.Services)
	payload.UpdatedAt = g.now()

	if entry.Kind != KindPersisted || !payload.HasPermanentID() {
		payload.ID = ""
	}

	return payload
}

func (g *Gateway) Save(ctx context.Context, ownerID string, entry Entry) (Entry, error) {
	if !entry.Loaded() {
		return Entry{}, ErrNothingToSave
	}

	saved, err := g.profiles.Upsert(ctx, g.Payload(ownerID, entry))
	if err != nil {
		if backend.KindOf(err) == backend.KindTableMissing {
			g.logger.Warn("businesses table does not exist yet", zap.String("owner", ownerID))
			return Entry{Kind: KindSetupRequired}, err
		}

		g.logger.Error("unexpected error when saving business profile", zap.String("owner", ownerID), zap.Error(err))
		return Entry{}, err
	}

	return Entry{Kind: KindPersisted, Profile: *saved}, nil
}

// Delete removes the owner's stored profile. Provisional entries have nothing
// stored, so no call is made and deleted is false.
func (g *Gateway) Delete(ctx context.Context, ownerID string, entry Entry) (deleted bool, err error) {
	if entry.Kind != KindPersisted || !entry.Profile.HasPermanentID() {
		return false, nil
	}

	if err := g.profiles.DeleteByOwner(ctx, ownerID); err != nil {
		g.logger.Error("unexpected error when deleting business profile", zap.String("owner", ownerID), zap.Error(err))
		return false, err
	}

	return true, nil
}
