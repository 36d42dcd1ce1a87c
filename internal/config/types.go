package config

import (
	"time"

	"github.com/shopspring/decimal"
)

// Config is the top-level studio configuration, corresponding to .studio.yml.
type Config struct {
	Site    SiteConfig    `yaml:"site" koanf:"site"`
	Server  ServerConfig  `yaml:"server" koanf:"server"`
	Pricing PricingConfig `yaml:"pricing" koanf:"pricing"`
	Preview PreviewConfig `yaml:"preview" koanf:"preview"`
	Mail    MailConfig    `yaml:"mail" koanf:"mail"`
	Log     LogConfig     `yaml:"log" koanf:"log"`
}

// SiteConfig describes the public site and the static build.
type SiteConfig struct {
	Name          string   `yaml:"name" koanf:"name"`
	BaseURL       string   `yaml:"base_url" koanf:"base_url"`
	Email         string   `yaml:"email" koanf:"email"`
	Phone         string   `yaml:"phone" koanf:"phone"`
	OutputDir     string   `yaml:"output_dir" koanf:"output_dir"`
	AssetsDir     string   `yaml:"assets_dir" koanf:"assets_dir"`
	AssetPatterns []string `yaml:"asset_patterns" koanf:"asset_patterns"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port                 int  `yaml:"port" koanf:"port"`
	AllowAllOrigins      bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	ReadTimeoutSec       int  `yaml:"read_timeout_sec" koanf:"read_timeout_sec"`
	WriteTimeoutSec      int  `yaml:"write_timeout_sec" koanf:"write_timeout_sec"`
	ContactRatePerMinute int  `yaml:"contact_rate_per_minute" koanf:"contact_rate_per_minute"`
}

// PricingConfig holds calculator settings. Catalog prices are built in.
type PricingConfig struct {
	PerPageRate int64  `yaml:"per_page_rate" koanf:"per_page_rate"`
	Currency    string `yaml:"currency" koanf:"currency"`
}

// Rate returns the per-page rate as money.
func (p PricingConfig) Rate() decimal.Decimal {
	return decimal.NewFromInt(p.PerPageRate)
}

// PreviewConfig holds live preview settings.
type PreviewConfig struct {
	DebounceMS int `yaml:"debounce_ms" koanf:"debounce_ms"`
}

// Debounce returns the quiet period before a preview renders.
func (p PreviewConfig) Debounce() time.Duration {
	return time.Duration(p.DebounceMS) * time.Millisecond
}

// MailConfig holds the SMTP relay used for contact and order mail. With
// Enabled false, mail is written to the log instead.
type MailConfig struct {
	Enabled   bool   `yaml:"enabled" koanf:"enabled"`
	Host      string `yaml:"host" koanf:"host"`
	Port      int    `yaml:"port" koanf:"port"`
	Username  string `yaml:"username" koanf:"username"`
	Password  string `yaml:"password,omitempty" koanf:"password"`
	FromEmail string `yaml:"from_email" koanf:"from_email"`
	FromName  string `yaml:"from_name" koanf:"from_name"`
	ToEmail   string `yaml:"to_email" koanf:"to_email"`

	// WebhookURL, when set, also receives every submission as JSON.
	WebhookURL string `yaml:"webhook_url,omitempty" koanf:"webhook_url"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string `yaml:"level" koanf:"level"`
	Format string `yaml:"format" koanf:"format"`
}
