package tenant

import (
	"regexp"
	"strings"

	"github.com/travelhub/backend/internal/domain/shared"
)

// DefaultKey is the key of the shared catalog brand. Requests that carry no
// tenant hint resolve to it and new brands inherit its tours.
const DefaultKey = "default"

var keyPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{1,48}[a-z0-9]$`)

// Branding holds the storefront look of a brand
type Branding struct {
	SiteName       string `json:"site_name"`
	LogoURL        string `json:"logo_url"`
	FaviconURL     string `json:"favicon_url"`
	PrimaryColor   string `json:"primary_color"`
	SecondaryColor string `json:"secondary_color"`
}

// Contact holds the public contact details of a brand
type Contact struct {
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Tenant is one branded storefront sharing the common codebase and database
type Tenant struct {
	shared.BaseAggregateRoot
	Key       string
	Name      string
	Domain    string
	Branding  Branding
	Contact   Contact
	Currency  string
	Locale    string
	IsDefault bool
	IsActive  bool
}

// NewTenant creates an active tenant
func NewTenant(key, name, domain string) (*Tenant, error) {
	key = NormalizeKey(key)
	if err := validateKey(key); err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}

	t := &Tenant{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Key:               key,
		Name:              strings.TrimSpace(name),
		Domain:            NormalizeDomain(domain),
		Currency:          "USD",
		Locale:            "en",
		IsActive:          true,
		IsDefault:         key == DefaultKey,
	}
	t.Branding.SiteName = t.Name

	t.AddDomainEvent(NewTenantCreatedEvent(t))
	return t, nil
}

// Update changes the display name and domain
func (t *Tenant) Update(name, domain string) error {
	if err := validateName(name); err != nil {
		return err
	}
	t.Name = strings.TrimSpace(name)
	t.Domain = NormalizeDomain(domain)
	t.touch()
	return nil
}

// SetBranding replaces the branding block
func (t *Tenant) SetBranding(b Branding) error {
	for _, c := range []string{b.PrimaryColor, b.SecondaryColor} {
		if c != "" && !isHexColor(c) {
			return shared.NewDomainError("INVALID_COLOR", "Colors must be hex values like #1a2b3c")
		}
	}
	if b.SiteName == "" {
		b.SiteName = t.Name
	}
	t.Branding = b
	t.touch()
	return nil
}

// SetContact replaces the contact block
func (t *Tenant) SetContact(c Contact) {
	t.Contact = c
	t.touch()
}

// SetLocale sets currency and locale
func (t *Tenant) SetLocale(currency, locale string) error {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency != "" && len(currency) != 3 {
		return shared.NewDomainError("INVALID_CURRENCY", "Currency must be a 3-letter ISO code")
	}
	if currency != "" {
		t.Currency = currency
	}
	if locale = strings.TrimSpace(locale); locale != "" {
		t.Locale = locale
	}
	t.touch()
	return nil
}

// Activate enables the storefront
func (t *Tenant) Activate() {
	t.IsActive = true
	t.touch()
}

// Deactivate disables the storefront. The default brand cannot be disabled.
func (t *Tenant) Deactivate() error {
	if t.IsDefault {
		return shared.NewDomainError("DEFAULT_TENANT_REQUIRED", "The default tenant cannot be deactivated")
	}
	t.IsActive = false
	t.touch()
	return nil
}

// MarkDefault flags this tenant as the shared catalog owner
func (t *Tenant) MarkDefault() {
	t.IsDefault = true
	t.IsActive = true
	t.touch()
}

// BaseURL returns the storefront origin, or "" when no domain is set
func (t *Tenant) BaseURL() string {
	if t.Domain == "" {
		return ""
	}
	return "https://" + t.Domain
}

func (t *Tenant) touch() {
	t.Touch()
	t.IncrementVersion()
}

// NormalizeKey lower-cases and trims a tenant key
func NormalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// NormalizeDomain strips scheme, port and path from a host name
func NormalizeDomain(domain string) string {
	d := strings.ToLower(strings.TrimSpace(domain))
	d = strings.TrimPrefix(d, "https://")
	d = strings.TrimPrefix(d, "http://")
	if i := strings.IndexAny(d, "/?#"); i >= 0 {
		d = d[:i]
	}
	if i := strings.LastIndex(d, ":"); i >= 0 {
		d = d[:i]
	}
	return strings.TrimPrefix(d, "www.")
}

func validateKey(key string) error {
	if key == "" {
		return shared.NewDomainError("INVALID_TENANT_KEY", "Tenant key cannot be empty")
	}
	if !keyPattern.MatchString(key) {
		return shared.NewDomainError("INVALID_TENANT_KEY", "Tenant key must be 3-50 lowercase letters, digits or hyphens")
	}
	return nil
}

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_TENANT_NAME", "Tenant name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_TENANT_NAME", "Tenant name cannot exceed 200 characters")
	}
	return nil
}

func isHexColor(s string) bool {
	if len(s) != 7 && len(s) != 4 {
		return false
	}
	if s[0] != '#' {
		return false
	}
	for _, r := range s[1:] {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return true
}
