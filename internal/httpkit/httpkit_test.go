package httpkit

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/richmanstudio/studio/internal/apperr"
	"github.com/richmanstudio/studio/internal/logger"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"validation", apperr.Validation("bad pages").WithDetails(map[string]string{"pages": "range"}), 422, "bad pages"},
		{"rate limited", apperr.RateLimited("slow down"), 429, "slow down"},
		{"unavailable", apperr.Unavailable("mail relay down", errors.New("dial")), 502, "mail relay down"},
		{"plain", errors.New("secret detail"), 500, "internal error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/x", nil)
			HandleError(rec, req, logger.Discard(), tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var resp ErrorResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Error != tt.wantMsg {
				t.Errorf("error = %q, want %q", resp.Error, tt.wantMsg)
			}
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid", `{"name":"a"}`, false},
		{"empty", ``, true},
		{"unknown field", `{"nope":1}`, true},
		{"trailing object", `{"name":"a"}{"name":"b"}`, true},
		{"malformed", `{"name":`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var p payload
			err := DecodeJSON(rec, req, &p)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if e, ok := apperr.As(err); !ok || e.Kind != apperr.KindBadRequest {
					t.Errorf("expected bad request error, got %v", err)
				}
			}
		})
	}
}

func TestIPRateLimiter(t *testing.T) {
	limiter := PerMinute(2, logger.Discard())
	handler := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	do := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/contact", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	for i := 0; i < 2; i++ {
		if code := do("10.0.0.1:1234"); code != http.StatusNoContent {
			t.Fatalf("request %d: status = %d", i, code)
		}
	}
	if code := do("10.0.0.1:5678"); code != http.StatusTooManyRequests {
		t.Errorf("third request status = %d, want 429", code)
	}
	if code := do("10.0.0.2:1234"); code != http.StatusNoContent {
		t.Errorf("other client status = %d, want 204", code)
	}
}

func TestPerMinuteDisabled(t *testing.T) {
	limiter := PerMinute(0, nil)
	for i := 0; i < 100; i++ {
		if !limiter.Allow("1.2.3.4") {
			t.Fatal("zero rate should disable limiting")
		}
	}
}
