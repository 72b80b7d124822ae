package graph

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pkmuru/copilot-trans/internal/shared"
	"golang.org/x/oauth2/clientcredentials"
)

// CredentialMaxAge is how long an acquired token is trusted before the poller
// proactively re-acquires it.
const CredentialMaxAge = 50 * time.Minute

// defaultScope requests every application permission granted to the app
// registration, which is how app-only Graph tokens are scoped.
const defaultScope = "https://graph.microsoft.com/.default"

// Credential is an opaque bearer token plus its acquisition timestamp.
// Never persisted.
type Credential struct {
	Token      string
	AcquiredAt time.Time
}

// Stale reports whether the credential is missing or older than
// [CredentialMaxAge].
func (c Credential) Stale() bool {
	return c.Token == "" || time.Since(c.AcquiredAt) > CredentialMaxAge
}

// CredentialProvider acquires app-only bearer tokens through the OAuth2
// client-credential exchange.
type CredentialProvider struct {
	config *clientcredentials.Config
	logger *log.Logger
	now    func() time.Time
}

// NewCredentialProvider creates a provider for the given app registration.
// tokenURL is the tenant's v2.0 token endpoint.
func NewCredentialProvider(clientID, clientSecret, tokenURL string, logger *log.Logger) *CredentialProvider {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &CredentialProvider{
		config: &clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     tokenURL,
			Scopes:       []string{defaultScope},
		},
		logger: logger,
		now:    time.Now,
	}
}

// Acquire exchanges the client credentials for a fresh bearer token.
// Failures wrap [shared.ErrAuthFailed].
func (p *CredentialProvider) Acquire(ctx context.Context) (Credential, error) {
	token, err := p.config.Token(ctx)
	if err != nil {
		return Credential{}, fmt.Errorf("%w: token exchange: %v", shared.ErrAuthFailed, err)
	}

	if token.AccessToken == "" {
		return Credential{}, fmt.Errorf("%w: identity provider returned no usable token", shared.ErrAuthFailed)
	}

	credential := Credential{Token: token.AccessToken, AcquiredAt: p.now()}
	p.logger.Debug("acquired credential", "acquired_at", credential.AcquiredAt.Format(time.RFC3339))
	return credential, nil
}
