package config

// DefaultAssetPatterns are the static files copied into a site build.
var DefaultAssetPatterns = []string{
	"**/*.{png,jpg,jpeg,webp,svg,ico}",
	"**/*.{woff,woff2}",
	"robots.txt",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Site: SiteConfig{
			Name:          "Richman Studio",
			BaseURL:       "http://localhost:8080",
			Email:         "info@richmanstudio.ru",
			Phone:         "+71234567890",
			OutputDir:     "public",
			AssetsDir:     "assets",
			AssetPatterns: DefaultAssetPatterns,
		},
		Server: ServerConfig{
			Port:                 8080,
			ReadTimeoutSec:       15,
			WriteTimeoutSec:      60,
			ContactRatePerMinute: 5,
		},
		Pricing: PricingConfig{
			PerPageRate: 2000,
			Currency:    "₽",
		},
		Preview: PreviewConfig{
			DebounceMS: 300,
		},
		Mail: MailConfig{
			Port:     587,
			FromName: "Richman Studio",
			ToEmail:  "info@richmanstudio.ru",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
