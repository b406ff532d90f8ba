// Package client implements the triage.Client interface over the internal
// transport.
package client

import (
	"time"

	"github.com/myrtus0x0/triage/internal/auth"
	"github.com/myrtus0x0/triage/internal/constants"
	internalhttp "github.com/myrtus0x0/triage/internal/http"
	"github.com/myrtus0x0/triage/pkg/triage"
)

// Client implements the triage.Client interface.
var _ triage.Client = (*Client)(nil)

type Client struct {
	httpClient *internalhttp.Client
	baseURL    string
}

// New creates a Triage API client. The token is injected explicitly;
// credential discovery is the embedding application's concern.
func New(config *triage.Config) (*Client, error) {
	if config == nil || config.Token == "" {
		return nil, triage.ErrTokenRequired
	}

	rootURL := config.RootURL
	if rootURL == "" {
		rootURL = constants.DefaultRootURL
	}

	tokenManager := auth.NewStaticTokenManager(config.Token)
	httpClient := internalhttp.NewClient(rootURL, tokenManager, httpOptions(config)...)

	return &Client{
		httpClient: httpClient,
		baseURL:    rootURL,
	}, nil
}

// httpOptions builds transport options from config.
func httpOptions(config *triage.Config) []internalhttp.Option {
	var opts []internalhttp.Option

	if config.Logger != nil {
		opts = append(opts, internalhttp.WithLogger(&loggerAdapter{logger: config.Logger}))
	}

	if config.Debug {
		opts = append(opts, internalhttp.WithDebug(true))
	}

	if config.UserAgent != "" {
		opts = append(opts, internalhttp.WithUserAgent(config.UserAgent))
	}

	if config.HTTPClient != nil {
		opts = append(opts, internalhttp.WithHTTPClient(config.HTTPClient))
	}

	if config.RetryMax > 0 {
		retryWaitMin := 1 * time.Second
		retryWaitMax := 30 * time.Second

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		opts = append(opts, internalhttp.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	return opts
}

// loggerAdapter adapts triage.Logger to the transport's logger.
type loggerAdapter struct {
	logger triage.Logger
}

func (l *loggerAdapter) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, fields)
}

func (l *loggerAdapter) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, fields)
}

func (l *loggerAdapter) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, fields)
}

func (l *loggerAdapter) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, fields)
}
