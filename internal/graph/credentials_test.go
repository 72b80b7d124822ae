package graph

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkmuru/copilot-trans/internal/shared"
)

func TestCredential(t *testing.T) {
	t.Run("Zero Value Is Stale", func(t *testing.T) {
		if !(Credential{}).Stale() {
			t.Error("expected zero credential to be stale")
		}
	})

	t.Run("Fresh Token Is Not Stale", func(t *testing.T) {
		c := Credential{Token: "tok", AcquiredAt: time.Now()}
		if c.Stale() {
			t.Error("expected fresh credential to not be stale")
		}
	})

	t.Run("Stale After 50 Minutes", func(t *testing.T) {
		c := Credential{Token: "tok", AcquiredAt: time.Now().Add(-51 * time.Minute)}
		if !c.Stale() {
			t.Error("expected 51 minute old credential to be stale")
		}
	})

	t.Run("Not Stale Just Under The Limit", func(t *testing.T) {
		c := Credential{Token: "tok", AcquiredAt: time.Now().Add(-49 * time.Minute)}
		if c.Stale() {
			t.Error("expected 49 minute old credential to not be stale")
		}
	})
}

func TestCredentialProvider(t *testing.T) {
	t.Run("Acquire Success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("expected POST token exchange, got %s", r.Method)
			}
			if err := r.ParseForm(); err == nil {
				if got := r.Form.Get("grant_type"); got != "client_credentials" {
					t.Errorf("expected client_credentials grant, got %q", got)
				}
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"access_token":"abc123","token_type":"Bearer","expires_in":3599}`))
		}))
		defer server.Close()

		p := NewCredentialProvider("client", "secret", server.URL, shared.NewLogger(nil))
		credential, err := p.Acquire(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if credential.Token != "abc123" {
			t.Errorf("expected token 'abc123', got %q", credential.Token)
		}
		if credential.AcquiredAt.IsZero() {
			t.Error("expected acquisition timestamp to be set")
		}
		if credential.Stale() {
			t.Error("expected freshly acquired credential to not be stale")
		}
	})

	t.Run("Exchange Failure Wraps AuthFailed", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"invalid_client"}`, http.StatusUnauthorized)
		}))
		defer server.Close()

		p := NewCredentialProvider("client", "bad", server.URL, shared.NewLogger(nil))
		_, err := p.Acquire(context.Background())
		if !errors.Is(err, shared.ErrAuthFailed) {
			t.Errorf("expected ErrAuthFailed, got %v", err)
		}
	})

	t.Run("Empty Access Token Is An Error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"access_token":"","token_type":"Bearer"}`))
		}))
		defer server.Close()

		p := NewCredentialProvider("client", "secret", server.URL, shared.NewLogger(nil))
		_, err := p.Acquire(context.Background())
		if !errors.Is(err, shared.ErrAuthFailed) {
			t.Errorf("expected ErrAuthFailed for empty token, got %v", err)
		}
	})
}
