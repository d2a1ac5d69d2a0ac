package tenant

import (
	"strings"

	"github.com/google/uuid"
)

// Request hint names, in resolution priority order
const (
	QueryParam = "tenant"
	HeaderName = "X-Tenant-ID"
	CookieName = "tenant_id"
)

// Source names where a tenant key was found
const (
	SourceQuery   = "query"
	SourceHeader  = "header"
	SourceCookie  = "cookie"
	SourceHost    = "host"
	SourceDefault = "default"
)

// Hints carries the raw tenant hints read from one request
type Hints struct {
	Query  string
	Header string
	Cookie string
	Host   string
}

// Resolution is the outcome of reading hints
type Resolution struct {
	Key    string
	Source string
}

// Explicit reports whether the request named a tenant itself
func (r Resolution) Explicit() bool {
	return r.Source != SourceDefault
}

// ResolveKey picks the tenant key by priority: query parameter, header,
// cookie, then DefaultKey. Blank values are skipped. Host is not consulted
// here since mapping a host to a key needs the tenant table.
func ResolveKey(h Hints) Resolution {
	candidates := []struct {
		value  string
		source string
	}{
		{h.Query, SourceQuery},
		{h.Header, SourceHeader},
		{h.Cookie, SourceCookie},
	}
	for _, c := range candidates {
		if key := NormalizeKey(c.value); key != "" {
			return Resolution{Key: key, Source: c.source}
		}
	}
	return Resolution{Key: DefaultKey, Source: SourceDefault}
}

// Config is the storefront configuration served to clients and used to
// scope queries. IsFallback is set when no tenant row backs it.
type Config struct {
	TenantID   uuid.UUID `json:"tenant_id"`
	Key        string    `json:"key"`
	Name       string    `json:"name"`
	Domain     string    `json:"domain"`
	Branding   Branding  `json:"branding"`
	Contact    Contact   `json:"contact"`
	Currency   string    `json:"currency"`
	Locale     string    `json:"locale"`
	IsDefault  bool      `json:"is_default"`
	IsFallback bool      `json:"is_fallback"`
}

// ConfigFromTenant builds the served config of a stored tenant
func ConfigFromTenant(t *Tenant) Config {
	return Config{
		TenantID:  t.ID,
		Key:       t.Key,
		Name:      t.Name,
		Domain:    t.Domain,
		Branding:  t.Branding,
		Contact:   t.Contact,
		Currency:  t.Currency,
		Locale:    t.Locale,
		IsDefault: t.IsDefault,
	}
}

// FallbackConfig returns a copy of base marked as fallback for key.
// tenantID is the id queries are scoped to, usually the default tenant's.
func FallbackConfig(base Config, key string, tenantID uuid.UUID) Config {
	cfg := base
	if key = strings.TrimSpace(key); key != "" {
		cfg.Key = key
	}
	cfg.TenantID = tenantID
	cfg.IsFallback = true
	return cfg
}
