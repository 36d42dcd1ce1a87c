package server

import (
	"fmt"
	"time"

	"github.com/richmanstudio/studio/internal/config"
	"github.com/richmanstudio/studio/internal/contact"
	"github.com/richmanstudio/studio/internal/httpkit"
	"github.com/richmanstudio/studio/internal/logger"
	"github.com/richmanstudio/studio/internal/order"
	"github.com/richmanstudio/studio/internal/preview"
	"github.com/richmanstudio/studio/internal/quote"
	"github.com/richmanstudio/studio/internal/site"
	"github.com/richmanstudio/studio/internal/validate"
)

// NewFromConfig wires every feature from cfg: calculator, live preview,
// contact form, order wizard and site pages.
func NewFromConfig(cfg *config.Config, log *logger.Logger) (*Server, error) {
	if log == nil {
		log = logger.Discard()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	catalog := quote.DefaultCatalog()
	if err := catalog.Validate(); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}

	renderer, err := SiteRenderer(cfg)
	if err != nil {
		return nil, err
	}

	sender := MailSender(cfg, log)
	inbox := Inbox(cfg)
	limiter := httpkit.PerMinute(cfg.Server.ContactRatePerMinute, log)

	contactSvc := contact.NewService(sender, validate.New(), inbox, cfg.Site.Name, log)
	orderSvc := order.NewService(sender, order.Pricing{
		Catalog:     catalog,
		PerPageRate: cfg.Pricing.Rate(),
		Currency:    cfg.Pricing.Currency,
	}, inbox, cfg.Site.Name, log)

	delay := cfg.Preview.Debounce()
	if delay <= 0 {
		delay = preview.DefaultDelay
	}

	return New(
		Config{
			Port:         cfg.Server.Port,
			AllowAll:     cfg.Server.AllowAllOrigins,
			ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSec) * time.Second,
			WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSec) * time.Second,
		},
		log,
		site.NewHandler(renderer, cfg.Site.AssetsDir, log),
		quote.NewHandler(catalog, cfg.Pricing.Rate(), cfg.Pricing.Currency, cfg.Site.Name, log),
		preview.NewHandler(delay, log),
		contact.NewHandler(contactSvc, limiter, log),
		order.NewHandler(orderSvc, limiter, log),
	), nil
}

// SiteRenderer builds the page renderer for cfg from the built-in content.
func SiteRenderer(cfg *config.Config) (*site.Renderer, error) {
	pages, err := site.LoadPages(site.ContentFS())
	if err != nil {
		return nil, fmt.Errorf("loading pages: %w", err)
	}
	return site.NewRenderer(site.Options{
		Info: site.Info{
			Name:    cfg.Site.Name,
			BaseURL: cfg.Site.BaseURL,
			Email:   cfg.Site.Email,
			Phone:   cfg.Site.Phone,
		},
		Pages:       pages,
		Data:        site.DefaultData(),
		Catalog:     quote.DefaultCatalog(),
		PerPageRate: cfg.Pricing.Rate(),
		Currency:    cfg.Pricing.Currency,
	})
}

// MailSender returns an SMTP sender when mail is enabled and a log sender
// otherwise. A configured webhook receives a copy of every submission.
func MailSender(cfg *config.Config, log *logger.Logger) contact.Sender {
	primary := primarySender(cfg, log)
	if cfg.Mail.WebhookURL == "" {
		return primary
	}
	return contact.NewDispatcher(primary, log, contact.NewWebhookSender(cfg.Mail.WebhookURL))
}

func primarySender(cfg *config.Config, log *logger.Logger) contact.Sender {
	if !cfg.Mail.Enabled {
		return contact.NewLogSender(log)
	}
	return contact.NewSMTPSender(contact.SMTPConfig{
		Host:      cfg.Mail.Host,
		Port:      cfg.Mail.Port,
		Username:  cfg.Mail.Username,
		Password:  cfg.Mail.Password,
		FromEmail: cfg.Mail.FromEmail,
		FromName:  cfg.Mail.FromName,
	})
}

// Inbox is where contact and order mail is delivered.
func Inbox(cfg *config.Config) string {
	if cfg.Mail.ToEmail != "" {
		return cfg.Mail.ToEmail
	}
	return cfg.Site.Email
}
