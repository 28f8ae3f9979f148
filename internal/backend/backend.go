// Package backend is the contract between the member-side lifecycle and whatever
// stores identities and business profiles. Implementations translate their own
// failures into *Error values with a Kind before returning.
package backend

import (
	"context"
	"time"

	"github.com/xw1nchester/tca-backend/internal/business"
)

const FreeTier = "free"

type Identity struct {
	ID                string     `json:"id"`
	Email             string     `json:"email"`
	CompanyName       string     `json:"companyName"`
	Phone             string     `json:"phone"`
	MembershipTier    string     `json:"membershipTier"`
	MembershipExpires *time.Time `json:"membershipExpires"`
	LogoURL           string     `json:"logoUrl"`
	BusinessLink      string     `json:"businessLink"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

func (i Identity) MembershipStatus(now time.Time) string {
	if i.MembershipTier == "" || i.MembershipTier == FreeTier {
		return "Free Member"
	}

	if i.MembershipExpires == nil {
		return "Yearly Member"
	}

	if i.MembershipExpires.Before(now) {
		return "Yearly Expired"
	}

	return "Yearly Active"
}

type Session struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
	User         Identity  `json:"user"`
}

func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

type EventType string

const (
	EventSignedIn       EventType = "SIGNED_IN"
	EventSignedOut      EventType = "SIGNED_OUT"
	EventTokenRefreshed EventType = "TOKEN_REFRESHED"
	EventUserUpdated    EventType = "USER_UPDATED"
)

// Event is delivered to OnSessionChange handlers. Session is nil after sign-out.
type Event struct {
	Type    EventType
	Session *Session
}

type Subscription interface {
	Unsubscribe()
}

type SignUpAttributes struct {
	CompanyName string `json:"companyName"`
	CompanyURL  string `json:"companyUrl,omitempty"`
}

type UserAttributes struct {
	CompanyName  *string `json:"companyName,omitempty"`
	BusinessLink *string `json:"businessLink,omitempty"`
	Phone        *string `json:"phone,omitempty"`
}

//go:generate mockgen -source=backend.go -destination=mocks/mock.go -package=mockbackend
type Auth interface {
	// GetSession returns nil, nil when no session is held.
	GetSession(ctx context.Context) (*Session, error)
	OnSessionChange(fn func(Event)) Subscription
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignUp(ctx context.Context, email, password string, attrs SignUpAttributes) (*Session, error)
	SignOut(ctx context.Context) error
	ResetPassword(ctx context.Context, email string) error
	GetUser(ctx context.Context) (*Identity, error)
	UpdateUser(ctx context.Context, attrs UserAttributes) (*Identity, error)
}

type Profiles interface {
	GetByOwner(ctx context.Context, ownerID string) (*business.Profile, error)
	// Upsert is keyed by Profile.UserID; one row per owner.
	Upsert(ctx context.Context, profile business.Profile) (*business.Profile, error)
	DeleteByOwner(ctx context.Context, ownerID string) error
}
