package site

import "time"

type Tier struct {
	Name        string   `json:"name"`
	Price       string   `json:"price"`
	Period      string   `json:"period"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
	Popular     bool     `json:"popular"`
}

var Tiers = []Tier{
	{
		Name:        "Basic Membership",
		Price:       "$10",
		Period:      "per year",
		Description: "For individual providers starting out with the association",
		Features: []string{
			"Official TCA seal for your website",
			"Listing in the member directory",
			"Access to member resources",
			"Email support",
		},
	},
	{
		Name:        "Renewal",
		Price:       "$5",
		Period:      "per year",
		Description: "Keep your membership and its benefits",
		Features: []string{
			"Continued listing and seal usage",
			"Access to member resources",
			"Email support",
		},
	},
	{
		Name:        "Award Nomination",
		Price:       "$20",
		Period:      "one-time",
		Description: "Nominate your business for recognition based on reviews",
		Features: []string{
			"Business nomination for awards",
			"Review score evaluation",
			"Award certificate if selected",
		},
	},
	{
		Name:        "Training Subscription",
		Price:       "$30",
		Period:      "per month",
		Description: "All training materials and certifications",
		Features: []string{
			"Full training library access",
			"Video courses and PDFs",
			"Professional certifications",
			"Monthly webinars",
		},
		Popular: true,
	},
}

type AwardCategory struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

var AwardCategories = []AwardCategory{
	{Name: "Excellence in Services", Description: "Outstanding service providers"},
	{Name: "Outstanding Commercial Services", Description: "Excellence in commercial and industrial projects"},
	{Name: "Customer Service Champion", Description: "Exceptional customer service and client satisfaction"},
	{Name: "Innovation in Services", Description: "Innovative approaches, techniques or technologies"},
	{Name: "Sustainability & Green Practices", Description: "Eco-friendly and environmentally conscious practices"},
	{Name: "Rising Star Award", Description: "New businesses with exceptional early achievements"},
}

type Winner struct {
	Year     int     `json:"year"`
	Category string  `json:"category"`
	Company  string  `json:"company"`
	Location string  `json:"location"`
	Rating   float64 `json:"rating"`
	Reviews  int     `json:"reviews"`
}

var Winners = []Winner{
	{Year: 2024, Category: "Excellence in Services", Company: "Sparkle Services", Location: "New York, NY", Rating: 4.9, Reviews: 247},
	{Year: 2024, Category: "Outstanding Commercial Services", Company: "Elite Commercial Services", Location: "Los Angeles, CA", Rating: 4.8, Reviews: 189},
	{Year: 2024, Category: "Customer Service Champion", Company: "Fresh Start Services", Location: "Chicago, IL", Rating: 4.9, Reviews: 156},
	{Year: 2023, Category: "Innovation in Services", Company: "Green Home Solutions", Location: "Austin, TX", Rating: 4.7, Reviews: 134},
}

type Awards struct {
	Categories []AwardCategory `json:"categories"`
	Winners    []Winner        `json:"winners"`
}

type NominationRequest struct {
	BusinessName        string `json:"businessName" validate:"required"`
	ContactName         string `json:"contactName" validate:"required"`
	Email               string `json:"email" validate:"required,email"`
	Phone               string `json:"phone"`
	BusinessType        string `json:"businessType" validate:"required,oneof=cleaning plumbing electrical landscaping handyman other"`
	GoogleBusinessURL   string `json:"googleBusinessUrl" validate:"omitempty,url"`
	YearsInBusiness     string `json:"yearsInBusiness" validate:"required"`
	SpecialAchievements string `json:"specialAchievements"`
}

type ContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required"`
}

type Receipt struct {
	ID         string    `json:"id"`
	ReceivedAt time.Time `json:"receivedAt"`
}
