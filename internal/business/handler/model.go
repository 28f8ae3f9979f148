package businesshandler

import (
	"time"

	"github.com/xw1nchester/tca-backend/internal/business"
	"github.com/xw1nchester/tca-backend/pkg/types"
)

type ReviewRequest struct {
	CustomerName string            `json:"customerName" validate:"required"`
	Rating       types.IntOrString `json:"rating" validate:"min=1,max=5"`
	Comment      string            `json:"comment"`
	Date         time.Time         `json:"date"`
}

type ProfileRequest struct {
	Name           string                  `json:"name" validate:"required"`
	Description    string                  `json:"description"`
	LogoURL        string                  `json:"logoUrl"`
	Website        string                  `json:"website" validate:"omitempty,url"`
	Phone          string                  `json:"phone"`
	Email          string                  `json:"email" validate:"omitempty,email"`
	Address        string                  `json:"address"`
	City           string                  `json:"city"`
	State          string                  `json:"state"`
	ZipCode        string                  `json:"zipCode"`
	OperatingHours business.OperatingHours `json:"operatingHours"`
	SocialMedia    business.SocialMedia    `json:"socialMedia"`
	Services       []string                `json:"services"`
	Projects       []string                `json:"projects"`
	InsuranceBond  string                  `json:"insuranceBond"`
	Reviews        []ReviewRequest         `json:"reviews" validate:"dive"`
	GooglePlaceID  string                  `json:"googlePlaceId"`
	UpdatedAt      time.Time               `json:"updatedAt"`
}

func (pr *ProfileRequest) ToDomain(userID string) business.Profile {
	reviews := make([]business.Review, len(pr.Reviews))
	for i, r := range pr.Reviews {
		reviews[i] = business.Review{
			CustomerName: r.CustomerName,
			Rating:       int(r.Rating),
			Comment:      r.Comment,
			Date:         r.Date,
		}
	}

	return business.Profile{
		UserID:         userID,
		Name:           pr.Name,
		Description:    pr.Description,
		LogoURL:        pr.LogoURL,
		Website:        pr.Website,
		Phone:          pr.Phone,
		Email:          pr.Email,
		Address:        pr.Address,
		City:           pr.City,
		State:          pr.State,
		ZipCode:        pr.ZipCode,
		OperatingHours: pr.OperatingHours,
		SocialMedia:    pr.SocialMedia,
		Services:       pr.Services,
		Projects:       pr.Projects,
		InsuranceBond:  pr.InsuranceBond,
		Reviews:        reviews,
		GooglePlaceID:  pr.GooglePlaceID,
		UpdatedAt:      pr.UpdatedAt,
	}
}

type DirectoryResponse struct {
	Businesses []business.Profile `json:"businesses"`
}

// NewDirectoryResponse drops logo references that cannot be shown to other visitors.
func NewDirectoryResponse(profiles []business.Profile) DirectoryResponse {
	for i := range profiles {
		profiles[i].LogoURL = business.LogoURL(profiles[i].LogoURL)
	}
	return DirectoryResponse{Businesses: profiles}
}
