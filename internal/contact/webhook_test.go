package contact

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWebhookSender(t *testing.T) {
	var got webhookPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decoding payload: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	err := NewWebhookSender(srv.URL).Send(context.Background(), Mail{
		To:          "inbox@studio.test",
		ReplyTo:     "anna@example.com",
		Subject:     "Заявка",
		Body:        "Нужен магазин",
		Attachments: []Attachment{{FileName: "estimate.xlsx", Content: []byte("x")}},
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if got.Subject != "Заявка" || got.ReplyTo != "anna@example.com" || got.Body != "Нужен магазин" {
		t.Errorf("payload = %+v", got)
	}
	if len(got.Attachments) != 1 || got.Attachments[0] != "estimate.xlsx" {
		t.Errorf("attachments = %v", got.Attachments)
	}
	if got.SentAt == "" {
		t.Error("sent_at is empty")
	}
}

func TestWebhookSenderErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	if err := NewWebhookSender(srv.URL).Send(context.Background(), Mail{Subject: "x"}); err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestDispatcher(t *testing.T) {
	t.Run("copies to webhooks", func(t *testing.T) {
		primary, hook := &recordingSender{}, &recordingSender{}
		d := NewDispatcher(primary, nil, hook)
		if err := d.Send(context.Background(), Mail{Subject: "a"}); err != nil {
			t.Fatalf("Send: %v", err)
		}
		if len(primary.sent) != 1 || len(hook.sent) != 1 {
			t.Errorf("primary=%d hook=%d, want 1 and 1", len(primary.sent), len(hook.sent))
		}
	})

	t.Run("webhook failure is not reported", func(t *testing.T) {
		primary := &recordingSender{}
		d := NewDispatcher(primary, nil, &recordingSender{err: errors.New("down")})
		if err := d.Send(context.Background(), Mail{Subject: "a"}); err != nil {
			t.Fatalf("Send: %v", err)
		}
		if len(primary.sent) != 1 {
			t.Errorf("primary sent = %d, want 1", len(primary.sent))
		}
	})

	t.Run("primary failure stops delivery", func(t *testing.T) {
		hook := &recordingSender{}
		d := NewDispatcher(&recordingSender{err: errors.New("smtp down")}, nil, hook)
		if err := d.Send(context.Background(), Mail{Subject: "a"}); err == nil {
			t.Fatal("expected primary error")
		}
		if len(hook.sent) != 0 {
			t.Errorf("hook sent = %d, want 0", len(hook.sent))
		}
	})
}
