package common

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
)

// Credentials are the fixed, provider-specific parameters a construction
// strategy is created with. They never come from the per-request settings.
type Credentials struct {
	APIKey  string `yaml:"api_key,omitempty"`
	BaseURL string `yaml:"base_url,omitempty"`
	// BearerToken is sent by an oauth2 transport. It is used for local servers
	// sitting behind an authenticating proxy and takes precedence over APIKey
	// on the wire.
	BearerToken string `yaml:"bearer_token,omitempty"`
}

// ResolveBaseURL returns the configured base URL or def, without a trailing slash.
func (c Credentials) ResolveBaseURL(def string) string {
	base := c.BaseURL
	if base == "" {
		base = def
	}
	return strings.TrimRight(base, "/")
}

// HasBearerToken reports whether an oauth2 bearer transport is needed.
func (c Credentials) HasBearerToken() bool {
	return c.BearerToken != ""
}

// NewHTTPClient returns the HTTP client handed to the provider SDK, or nil when
// the SDK default is fine.
func NewHTTPClient(creds Credentials) *http.Client {
	if !creds.HasBearerToken() {
		return nil
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: creds.BearerToken,
		TokenType:   "Bearer",
	})
	return oauth2.NewClient(context.Background(), ts)
}
