package profile

import (
	"context"
	"fmt"
	"time"

	"github.com/xw1nchester/tca-backend/internal/backend"
	"github.com/xw1nchester/tca-backend/internal/business"
	"go.uber.org/zap"
)

type Kind int

const (
	KindUnresolved Kind = iota
	KindSetupRequired
	// KindProvisional is a default profile synthesized in memory and never persisted.
	KindProvisional
	KindPersisted
)

func (k Kind) String() string {
	switch k {
	case KindSetupRequired:
		return "setup_required"
	case KindProvisional:
		return "provisional"
	case KindPersisted:
		return "persisted"
	default:
		return "unresolved"
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Entry is a profile tagged with where it came from.
type Entry struct {
	Kind    Kind             `json:"kind"`
	Profile business.Profile `json:"profile"`
}

func (e Entry) Loaded() bool {
	return e.Kind == KindProvisional || e.Kind == KindPersisted
}

type Resolver struct {
	profiles backend.Profiles
	now      func() time.Time
	logger   *zap.Logger
}

func NewResolver(profiles backend.Profiles, logger *zap.Logger) *Resolver {
	return &Resolver{
		profiles: profiles,
		now:      time.Now,
		logger:   logger,
	}
}

func (r *Resolver) Resolve(ctx context.Context, identity backend.Identity) Entry {
	existing, err := r.profiles.GetByOwner(ctx, identity.ID)
	if err != nil {
		switch backend.KindOf(err) {
		case backend.KindTableMissing:
			r.logger.Warn("businesses table does not exist yet", zap.String("owner", identity.ID))
			return Entry{Kind: KindSetupRequired}
		case backend.KindNoRow:
			r.logger.Info("business profile not found, creating local default profile", zap.String("owner", identity.ID))
		default:
			r.logger.Error("unexpected error when fetching business profile", zap.String("owner", identity.ID), zap.Error(err))
		}

		return r.Synthesize(identity)
	}

	if IsPlaceholder(existing.Name) {
		return Entry{Kind: KindPersisted, Profile: r.correctName(ctx, identity, *existing)}
	}

	return Entry{Kind: KindPersisted, Profile: *existing}
}

func (r *Resolver) correctName(ctx context.Context, identity backend.Identity, existing business.Profile) business.Profile {
	derived := DeriveName(identity.Email)
	if derived == "" {
		return existing
	}

	corrected := existing.Clone()
	corrected.Name = derived
	corrected.UserID = identity.ID
	corrected.UpdatedAt = r.now()

	saved, err := r.profiles.Upsert(ctx, corrected)
	if err != nil {
		r.logger.Warn("could not update placeholder company name", zap.String("owner", identity.ID), zap.Error(err))
		return corrected
	}

	return *saved
}

// Synthesize builds the default profile shown to a member who has none yet.
func (r *Resolver) Synthesize(identity backend.Identity) Entry {
	now := r.now()

	name := identity.CompanyName
	if name == "" {
		name = DefaultCompanyName
	}
	if IsPlaceholder(name) {
		if derived := DeriveName(identity.Email); derived != "" {
			name = derived
		}
	}

	return Entry{
		Kind: KindProvisional,
		Profile: business.Profile{
			ID:             fmt.Sprintf("%s%d", business.TempIDPrefix, now.UnixMilli()),
			UserID:         identity.ID,
			Name:           name,
			Website:        identity.BusinessLink,
			Phone:          identity.Phone,
			Email:          identity.Email,
			OperatingHours: business.DefaultHours(),
			Services:       []string{},
			Projects:       []string{},
			Reviews:        []business.Review{},
			CreatedAt:      now,
			UpdatedAt:      now,
		},
	}
}
