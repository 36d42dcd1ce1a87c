package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/richmanstudio/studio/internal/logger"
)

// webhookPayload is the JSON body posted to webhook subscribers.
type webhookPayload struct {
	Subject     string   `json:"subject"`
	ReplyTo     string   `json:"reply_to,omitempty"`
	Body        string   `json:"body"`
	Attachments []string `json:"attachments,omitempty"`
	SentAt      string   `json:"sent_at"`
}

// WebhookSender posts each Mail as JSON to a URL, e.g. a CRM or chat relay.
// Attachments are listed by name only.
type WebhookSender struct {
	url    string
	client *http.Client
}

// NewWebhookSender creates a WebhookSender for url.
func NewWebhookSender(url string) *WebhookSender {
	return &WebhookSender{
		url: url,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Send POSTs m to the webhook URL.
func (s *WebhookSender) Send(ctx context.Context, m Mail) error {
	p := webhookPayload{
		Subject: m.Subject,
		ReplyTo: m.ReplyTo,
		Body:    m.Body,
		SentAt:  time.Now().UTC().Format(time.RFC3339),
	}
	for _, a := range m.Attachments {
		p.Attachments = append(p.Attachments, a.FileName)
	}
	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

// Dispatcher delivers through a primary Sender and copies every Mail to
// webhook subscribers. Only the primary's result is reported; webhook
// failures are logged.
type Dispatcher struct {
	primary  Sender
	webhooks []Sender
	log      *logger.Logger
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(primary Sender, log *logger.Logger, webhooks ...Sender) *Dispatcher {
	if log == nil {
		log = logger.Discard()
	}
	return &Dispatcher{primary: primary, webhooks: webhooks, log: log}
}

// Send delivers m through the primary sender, then the webhooks.
func (d *Dispatcher) Send(ctx context.Context, m Mail) error {
	if err := d.primary.Send(ctx, m); err != nil {
		return err
	}
	for _, w := range d.webhooks {
		if err := w.Send(ctx, m); err != nil {
			d.log.Warn("webhook delivery failed", "subject", m.Subject, "error", err)
		}
	}
	return nil
}
