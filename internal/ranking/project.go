package ranking

import (
	"artisan/pkg/domain"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// URLResolver turns a stored media path into a public URL. Empty input must
// resolve to an empty string.
type URLResolver interface {
	URL(path string) string
}

// PortfolioView is a portfolio project as shown to clients.
type PortfolioView struct {
	Title       string   `json:"title"`
	Background  string   `json:"portfolio_bg"`
	PortfolioID string   `json:"portfolio_id"`
	Role        string   `json:"role"`
	Description string   `json:"project_description"`
	Images      []string `json:"project_images"`
}

// ClientView is the client-facing projection of a provider. It never carries
// credentials, OTP material, device identifiers or PINs.
type ClientView struct {
	ID            string          `json:"id"`
	ProfileID     string          `json:"profileid"`
	Name          string          `json:"name"`
	Username      string          `json:"username"`
	Email         string          `json:"email"`
	PhoneNumber   string          `json:"phonenumber"`
	Service       string          `json:"service"`
	Bio           string          `json:"bio"`
	Location      string          `json:"location"`
	State         string          `json:"state"`
	LGA           string          `json:"lga"`
	Experience    string          `json:"experience"`
	Rating        float64         `json:"rating"`
	Status        string          `json:"status"`
	ProfilePic    string          `json:"profilePic"`
	ServiceIcon   string          `json:"serviceIcon"`
	ServiceIconBg string          `json:"serviceIconbg"`
	Portfolio     []PortfolioView `json:"portfolio"`
	Verified      bool            `json:"verified"`
	Tier          int             `json:"tier"`
	LastSeenAt    *time.Time      `json:"last_seen_at"`
	CreatedAt     *time.Time      `json:"created_at"`
	UpdatedAt     *time.Time      `json:"updated_at"`
}

// Projector builds ClientViews.
type Projector struct {
	// Resolver resolves profile pictures and portfolio images.
	Resolver URLResolver
	// DefaultAvatar is used when the provider has no profile picture.
	DefaultAvatar string
}

// NewProjector returns a Projector using resolver and defaultAvatar.
func NewProjector(resolver URLResolver, defaultAvatar string) Projector {
	return Projector{Resolver: resolver, DefaultAvatar: defaultAvatar}
}

// Project converts p into its client view. It reads p only and returns the
// same output for the same input.
func (pr Projector) Project(p domain.Provider) ClientView {
	icon := IconFor(p.Service)

	portfolio := make([]PortfolioView, 0, len(p.Portfolio))
	for _, item := range p.Portfolio {
		portfolio = append(portfolio, pr.portfolio(item))
	}

	pic := pr.url(p.ProfilePic)
	if pic == "" {
		pic = pr.DefaultAvatar
	}

	id := p.ID.String()

	return ClientView{
		ID:            id,
		ProfileID:     id,
		Name:          p.DisplayName(),
		Username:      p.Username,
		Email:         p.Email,
		PhoneNumber:   p.PhoneNumber,
		Service:       serviceLabel(p.Service),
		Bio:           p.Bio,
		Location:      joinNonEmpty(", ", p.LGA, p.State),
		State:         p.State,
		LGA:           p.LGA,
		Experience:    p.YearsOfExperience,
		Rating:        p.Rating,
		Status:        string(p.Status),
		ProfilePic:    pic,
		ServiceIcon:   icon.Image,
		ServiceIconBg: icon.Background,
		Portfolio:     portfolio,
		Verified:      p.Verified(),
		Tier:          p.Tier,
		LastSeenAt:    timePtr(p.LastSeenAt),
		CreatedAt:     timePtr(p.CreatedAt),
		UpdatedAt:     timePtr(p.UpdatedAt),
	}
}

// ProjectAll projects every provider keeping the input order.
func (pr Projector) ProjectAll(providers []domain.Provider) []ClientView {
	out := make([]ClientView, 0, len(providers))
	for _, p := range providers {
		out = append(out, pr.Project(p))
	}

	return out
}

func (pr Projector) portfolio(item domain.Portfolio) PortfolioView {
	images := make([]string, 0, len(item.Images))
	for _, img := range item.Images {
		if u := pr.url(img); u != "" {
			images = append(images, u)
		}
	}

	return PortfolioView{
		Title:       item.Title,
		Background:  item.Background,
		PortfolioID: item.Code,
		Role:        item.Role,
		Description: item.Description,
		Images:      images,
	}
}

func (pr Projector) url(p string) string {
	if strings.TrimSpace(p) == "" {
		return ""
	}
	if pr.Resolver == nil {
		return p
	}

	return pr.Resolver.URL(p)
}

// serviceLabel upper-cases the first letter of the category, or returns
// "General" when there is none.
func serviceLabel(service string) string {
	if service == "" {
		return "General"
	}
	r, size := utf8.DecodeRuneInString(service)

	return string(unicode.ToUpper(r)) + service[size:]
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}

	return strings.Join(kept, sep)
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}

	return &t
}
