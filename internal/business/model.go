package business

import (
	"strings"
	"time"

	"github.com/xw1nchester/tca-backend/pkg/utils"
)

const (
	TempIDPrefix = "temp-"

	DefaultOpen  = "09:00"
	DefaultClose = "17:00"
)

var ServiceChecklist = []string{
	"Cleaning",
	"Commercial/office cleaning",
	"Carpet & upholstery cleaning",
	"Window washing",
	"Pressure washing",
	"Handyman services",
	"Plumbing",
	"Electrical services",
	"HVAC installation & maintenance",
	"Appliance repair",
	"Landscaping & lawn care",
	"Tree trimming & removal",
	"Snow removal",
	"Pool cleaning & maintenance",
	"Pest control",
	"Mold remediation",
	"Water damage restoration",
	"Deep sanitation & disinfection services",
	"Moving assistance (packing/unpacking)",
}

type DayHours struct {
	Open   string `json:"open"`
	Close  string `json:"close"`
	Closed bool   `json:"closed"`
}

func (d DayHours) Status() string {
	if d.Closed {
		return "Closed"
	}
	return d.Open + " - " + d.Close
}

type OperatingHours struct {
	Monday    DayHours `json:"monday"`
	Tuesday   DayHours `json:"tuesday"`
	Wednesday DayHours `json:"wednesday"`
	Thursday  DayHours `json:"thursday"`
	Friday    DayHours `json:"friday"`
	Saturday  DayHours `json:"saturday"`
	Sunday    DayHours `json:"sunday"`
}

// Day returns a pointer to the named day ("monday".."sunday"), or nil.
func (h *OperatingHours) Day(name string) *DayHours {
	switch strings.ToLower(name) {
	case "monday":
		return &h.Monday
	case "tuesday":
		return &h.Tuesday
	case "wednesday":
		return &h.Wednesday
	case "thursday":
		return &h.Thursday
	case "friday":
		return &h.Friday
	case "saturday":
		return &h.Saturday
	case "sunday":
		return &h.Sunday
	}
	return nil
}

func DefaultHours() OperatingHours {
	day := DayHours{Open: DefaultOpen, Close: DefaultClose}
	return OperatingHours{
		Monday:    day,
		Tuesday:   day,
		Wednesday: day,
		Thursday:  day,
		Friday:    day,
		Saturday:  day,
		Sunday:    day,
	}
}

type SocialMedia struct {
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`
	Twitter   string `json:"twitter"`
	Linkedin  string `json:"linkedin"`
	Thumbtack string `json:"thumbtack"`
	Yelp      string `json:"yelp"`
}

type Review struct {
	CustomerName string    `json:"customerName"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	Date         time.Time `json:"date"`
}

type Profile struct {
	ID             string         `json:"id,omitempty"`
	UserID         string         `json:"userId"`
	Name           string         `json:"name"`
	Description    string         `json:"description"`
	LogoURL        string         `json:"logoUrl"`
	Website        string         `json:"website"`
	Phone          string         `json:"phone"`
	Email          string         `json:"email"`
	Address        string         `json:"address"`
	City           string         `json:"city"`
	State          string         `json:"state"`
	ZipCode        string         `json:"zipCode"`
	OperatingHours OperatingHours `json:"operatingHours"`
	SocialMedia    SocialMedia    `json:"socialMedia"`
	Services       []string       `json:"services"`
	Projects       []string       `json:"projects"`
	InsuranceBond  string         `json:"insuranceBond"`
	Reviews        []Review       `json:"reviews"`
	GooglePlaceID  string         `json:"googlePlaceId"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// HasPermanentID reports whether the profile carries a server-assigned id.
func (p Profile) HasPermanentID() bool {
	return p.ID != "" && !strings.HasPrefix(p.ID, TempIDPrefix)
}

// Clone returns a copy that shares no slices with p. Empty slices stay empty
// rather than nil so they encode as [] and not null.
func (p Profile) Clone() Profile {
	c := p
	c.Services = cloneSlice(p.Services)
	c.Projects = cloneSlice(p.Projects)
	c.Reviews = cloneSlice(p.Reviews)
	return c
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	return append(make([]T, 0, len(in)), in...)
}

func IsKnownService(service string) bool {
	_, ok := canonicalService(service)
	return ok
}

// canonicalService returns the checklist spelling of service, matched case-insensitively.
func canonicalService(service string) (string, bool) {
	service = strings.TrimSpace(service)
	for _, s := range ServiceChecklist {
		if strings.EqualFold(s, service) {
			return s, true
		}
	}
	return "", false
}

// NormalizeServices trims entries, rewrites checklist entries in checklist
// spelling and drops blanks and case-insensitive duplicates, keeping input
// order. Entries that are not on the checklist are kept as written.
func NormalizeServices(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if canonical, ok := canonicalService(s); ok {
			out = append(out, canonical)
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return utils.UniqueFunc(out, strings.ToLower)
}

// LogoURL returns the displayable form of a stored logo reference, or "" when
// the reference cannot be shown (blob URLs only live in the browser that made them).
func LogoURL(raw string) string {
	switch {
	case raw == "":
		return ""
	case strings.HasPrefix(raw, "data:image/"):
		return raw
	case strings.HasPrefix(raw, "blob:"):
		return ""
	default:
		return raw
	}
}
