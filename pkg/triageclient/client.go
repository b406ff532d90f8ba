// Package triageclient provides the main entry point for creating Triage API clients
package triageclient

import (
	"fmt"
	"strings"

	"github.com/myrtus0x0/triage/internal/client"
	"github.com/myrtus0x0/triage/pkg/triage"
)

// New creates a new Triage API client from the given configuration. The
// configuration is not modified; endpoint normalization happens on a copy.
func New(config *triage.Config) (triage.Client, error) {
	if config == nil || config.Token == "" {
		return nil, triage.ErrTokenRequired
	}

	normalized := *config

	if normalized.RootURL != "" {
		rootURL := strings.TrimRight(normalized.RootURL, "/")
		if !strings.HasPrefix(rootURL, "http://") && !strings.HasPrefix(rootURL, "https://") {
			rootURL = "https://" + rootURL
		}

		normalized.RootURL = rootURL
	}

	triageClient, err := client.New(&normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return triageClient, nil
}

// NewWithToken creates a client for the public Triage instance.
func NewWithToken(token string) (triage.Client, error) {
	return New(&triage.Config{Token: token})
}

// NewWithEndpoint creates a client for a private Triage instance.
func NewWithEndpoint(endpoint, token string) (triage.Client, error) {
	return New(&triage.Config{Token: token, RootURL: endpoint})
}
