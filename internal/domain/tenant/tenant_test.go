package tenant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTenant(t *testing.T) {
	t.Run("creates active tenant with normalized key and domain", func(t *testing.T) {
		tn, err := NewTenant("  Sunny-Trips ", "Sunny Trips", "https://www.sunnytrips.com/")

		require.NoError(t, err)
		assert.Equal(t, "sunny-trips", tn.Key)
		assert.Equal(t, "sunnytrips.com", tn.Domain)
		assert.True(t, tn.IsActive)
		assert.False(t, tn.IsDefault)
		assert.Equal(t, "Sunny Trips", tn.Branding.SiteName)
		assert.Equal(t, "USD", tn.Currency)

		events := tn.GetDomainEvents()
		require.Len(t, events, 1)
		_, ok := events[0].(*TenantCreatedEvent)
		assert.True(t, ok)
	})

	t.Run("default key marks the tenant as default", func(t *testing.T) {
		tn, err := NewTenant(DefaultKey, "Main Brand", "")

		require.NoError(t, err)
		assert.True(t, tn.IsDefault)
		assert.Equal(t, "", tn.BaseURL())
	})

	t.Run("rejects invalid keys", func(t *testing.T) {
		for _, key := range []string{"", "ab", "has space", "-lead", "trail-", "under_score"} {
			_, err := NewTenant(key, "Name", "")
			assert.Error(t, err, key)
		}
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewTenant("brand", "  ", "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be empty")
	})
}

func TestTenant_Mutations(t *testing.T) {
	tn, err := NewTenant("brand", "Brand", "brand.travel")
	require.NoError(t, err)

	t.Run("update bumps version", func(t *testing.T) {
		before := tn.Version
		require.NoError(t, tn.Update("Brand Travel", "brand.travel:443"))
		assert.Equal(t, "Brand Travel", tn.Name)
		assert.Equal(t, "brand.travel", tn.Domain)
		assert.Equal(t, before+1, tn.Version)
		assert.Equal(t, "https://brand.travel", tn.BaseURL())
	})

	t.Run("branding colors must be hex", func(t *testing.T) {
		assert.Error(t, tn.SetBranding(Branding{PrimaryColor: "red"}))
		require.NoError(t, tn.SetBranding(Branding{PrimaryColor: "#ff0000", SecondaryColor: "#0f0"}))
		assert.Equal(t, "Brand Travel", tn.Branding.SiteName)
	})

	t.Run("currency must be ISO code", func(t *testing.T) {
		assert.Error(t, tn.SetLocale("EURO", ""))
		require.NoError(t, tn.SetLocale("eur", "de"))
		assert.Equal(t, "EUR", tn.Currency)
		assert.Equal(t, "de", tn.Locale)
	})

	t.Run("default tenant cannot be deactivated", func(t *testing.T) {
		def, err := NewTenant(DefaultKey, "Default", "")
		require.NoError(t, err)
		assert.Error(t, def.Deactivate())

		require.NoError(t, tn.Deactivate())
		assert.False(t, tn.IsActive)
		tn.Activate()
		assert.True(t, tn.IsActive)
	})
}

func TestNormalizeDomain(t *testing.T) {
	tests := map[string]string{
		"Example.COM":                 "example.com",
		"http://shop.example.com/x?y": "shop.example.com",
		"www.example.com:8080":        "example.com",
		"":                            "",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeDomain(in), in)
	}
}
