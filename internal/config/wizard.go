package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// DefaultPath is where the wizard writes the configuration.
const DefaultPath = ".studio.yml"

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config, saved to path (DefaultPath when empty).
func RunWizard(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}
	fmt.Println("Welcome to studio! Let's configure your site.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Studio name.
	name, err := (&promptui.Prompt{Label: "Studio name", Default: cfg.Site.Name}).Run()
	if err != nil {
		return nil, fmt.Errorf("studio name: %w", err)
	}
	cfg.Site.Name = strings.TrimSpace(name)
	cfg.Mail.FromName = cfg.Site.Name

	// 2. Public contact email.
	email, err := (&promptui.Prompt{Label: "Public contact email", Default: cfg.Site.Email}).Run()
	if err != nil {
		return nil, fmt.Errorf("contact email: %w", err)
	}
	cfg.Site.Email = strings.TrimSpace(email)
	cfg.Mail.ToEmail = cfg.Site.Email

	// 3. Port.
	portStr, err := (&promptui.Prompt{
		Label:    "HTTP port",
		Default:  strconv.Itoa(cfg.Server.Port),
		Validate: validatePort,
	}).Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	// 4. Extra static assets.
	extra, err := (&promptui.Prompt{Label: "Extra asset patterns (comma-separated, leave blank for defaults)"}).Run()
	if err != nil {
		return nil, fmt.Errorf("asset patterns: %w", err)
	}
	if patterns := splitAndTrim(extra); len(patterns) > 0 {
		cfg.Site.AssetPatterns = append(append([]string(nil), DefaultAssetPatterns...), patterns...)
	}

	// 5. Mail delivery.
	modePrompt := promptui.Select{
		Label: "How should contact and order forms be delivered?",
		Items: []string{
			"log: print submissions to the server log",
			"smtp: send through an SMTP relay",
		},
	}
	modeIdx, _, err := modePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("mail mode: %w", err)
	}

	if modeIdx == 1 {
		cfg.Mail.Enabled = true
		if err := promptSMTP(&cfg.Mail); err != nil {
			return nil, err
		}
		fmt.Println("\nNote: put the relay password in .env as STUDIO_MAIL_PASSWORD.")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func promptSMTP(m *MailConfig) error {
	host, err := (&promptui.Prompt{Label: "SMTP host"}).Run()
	if err != nil {
		return fmt.Errorf("smtp host: %w", err)
	}
	m.Host = strings.TrimSpace(host)

	portStr, err := (&promptui.Prompt{Label: "SMTP port", Default: strconv.Itoa(m.Port), Validate: validatePort}).Run()
	if err != nil {
		return fmt.Errorf("smtp port: %w", err)
	}
	m.Port, _ = strconv.Atoi(portStr)

	user, err := (&promptui.Prompt{Label: "SMTP username (blank for none)"}).Run()
	if err != nil {
		return fmt.Errorf("smtp username: %w", err)
	}
	m.Username = strings.TrimSpace(user)

	from, err := (&promptui.Prompt{Label: "Sender address", Default: m.Username}).Run()
	if err != nil {
		return fmt.Errorf("sender address: %w", err)
	}
	m.FromEmail = strings.TrimSpace(from)
	return nil
}

func validatePort(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > 65535 {
		return fmt.Errorf("port must be a number between 1 and 65535")
	}
	return nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
