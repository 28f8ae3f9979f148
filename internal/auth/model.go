package auth

import (
	"time"

	"github.com/xw1nchester/tca-backend/internal/backend"
)

type User struct {
	ID                string
	Email             string
	PasswordHash      []byte
	CompanyName       string
	Phone             string
	MembershipTier    string
	MembershipExpires *time.Time
	LogoURL           string
	BusinessLink      string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (u User) Identity() backend.Identity {
	return backend.Identity{
		ID:                u.ID,
		Email:             u.Email,
		CompanyName:       u.CompanyName,
		Phone:             u.Phone,
		MembershipTier:    u.MembershipTier,
		MembershipExpires: u.MembershipExpires,
		LogoURL:           u.LogoURL,
		BusinessLink:      u.BusinessLink,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}

type SignUpRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	CompanyName string `json:"companyName" validate:"required"`
	CompanyURL  string `json:"companyUrl,omitempty" validate:"omitempty,url"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type ResetPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ConfirmResetRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

type UpdateUserRequest struct {
	CompanyName  *string `json:"companyName,omitempty" validate:"omitempty,min=1"`
	BusinessLink *string `json:"businessLink,omitempty"`
	Phone        *string `json:"phone,omitempty"`
}

func (r UpdateUserRequest) Attributes() backend.UserAttributes {
	return backend.UserAttributes{
		CompanyName:  r.CompanyName,
		BusinessLink: r.BusinessLink,
		Phone:        r.Phone,
	}
}
