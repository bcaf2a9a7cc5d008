package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rootwave/site/internal/lead"
)

const (
	// DefaultPort is the default HTTP server port.
	DefaultPort = "8080"

	// DefaultBrand is the company name used in messages and file names.
	DefaultBrand = "RootWave"

	// DefaultSiteURL identifies the site as the source of a lead.
	DefaultSiteURL = "www.rootwave.org"

	// DefaultWhatsAppNumber receives sample requests.
	DefaultWhatsAppNumber = "917760021026"

	// DefaultVariant is the form shown on the landing page.
	DefaultVariant = "campaign"

	// DefaultWebhookTimeout bounds the single webhook attempt.
	DefaultWebhookTimeout = 15 * time.Second

	// DefaultRateLimit is the default form posts per minute per IP address.
	DefaultRateLimit = 30

	// DefaultSessionTTL is how long an idle visitor keeps their form state.
	DefaultSessionTTL = 30 * time.Minute
)

// Config holds the runtime settings. Flags override values read from a
// settings file, which override the defaults.
type Config struct {
	Port           string        `toml:"port"`
	Brand          string        `toml:"brand"`
	SiteURL        string        `toml:"site_url"`
	WhatsAppNumber string        `toml:"whatsapp_number"`
	Variant        string        `toml:"variant"`
	Campaign       string        `toml:"campaign"`
	WebhookURL     string        `toml:"webhook_url"`
	WebhookTimeout time.Duration `toml:"webhook_timeout"`
	FallbackDir    string        `toml:"fallback_dir"`
	ContentFile    string        `toml:"content_file"`
	RateLimit      int           `toml:"rate_limit"`
	SessionTTL     time.Duration `toml:"session_ttl"`
	// TrustProxy reads client IPs from X-Forwarded-For / X-Real-IP.
	TrustProxy     bool          `toml:"trust_proxy"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Port:           DefaultPort,
		Brand:          DefaultBrand,
		SiteURL:        DefaultSiteURL,
		WhatsAppNumber: DefaultWhatsAppNumber,
		Variant:        DefaultVariant,
		Campaign:       lead.DefaultCampaign,
		WebhookTimeout: DefaultWebhookTimeout,
		RateLimit:      DefaultRateLimit,
		SessionTTL:     DefaultSessionTTL,
	}
}

// LoadFile decodes a TOML settings file over the defaults. An empty path
// returns the defaults.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("reading settings file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("unknown settings keys: %v", undecoded)
	}
	return cfg, nil
}

// Validate checks the settings that cannot fall back to a default.
func (c Config) Validate() error {
	if c.Brand == "" {
		return errors.New("brand is required")
	}
	if c.WhatsAppNumber == "" {
		return errors.New("whatsapp number is required")
	}
	if _, ok := lead.VariantByName(c.Variant); !ok {
		return fmt.Errorf("unknown form variant %q", c.Variant)
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("rate limit must be positive, got %d", c.RateLimit)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("session ttl must be positive, got %s", c.SessionTTL)
	}
	return nil
}

// LeadSettings returns the values stamped onto every submission.
func (c Config) LeadSettings() lead.Settings {
	return lead.Settings{
		Brand:          c.Brand,
		SiteURL:        c.SiteURL,
		Campaign:       c.Campaign,
		WhatsAppNumber: c.WhatsAppNumber,
	}
}

// FormVariant returns the configured form variant, defaulting to campaign.
func (c Config) FormVariant() lead.Variant {
	if v, ok := lead.VariantByName(c.Variant); ok {
		return v
	}
	return lead.Campaign
}
