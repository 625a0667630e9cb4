package config

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"time"
)

// HTTPClientConfig tunes the outbound client used for live probes.
// Pool sizing matters here: a busy checker fleet hammers many distinct
// hosts, and idle connection reuse is what keeps HEAD probes cheap.
type HTTPClientConfig struct {
	// RequestTimeout bounds a whole probe, body read included.
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"30s" validate:"min=1s"`

	DialTimeout time.Duration `envconfig:"DIAL_TIMEOUT" default:"30s"`
	KeepAlive   time.Duration `envconfig:"KEEP_ALIVE" default:"30s"`

	MaxIdleConns    int           `envconfig:"MAX_IDLE_CONNS" default:"100" validate:"min=1"`
	IdleConnTimeout time.Duration `envconfig:"IDLE_CONN_TIMEOUT" default:"90s"`

	TLSHandshakeTimeout   time.Duration `envconfig:"TLS_HANDSHAKE_TIMEOUT" default:"10s"`
	ExpectContinueTimeout time.Duration `envconfig:"EXPECT_CONTINUE_TIMEOUT" default:"1s"`

	// InsecureSkipVerify disables certificate verification, for checking
	// hosts with self-signed certificates. Rejected in production.
	InsecureSkipVerify bool `envconfig:"INSECURE_SKIP_VERIFY" default:"false"`
}

// Validate checks the HTTP client configuration is valid.
func (c *HTTPClientConfig) Validate(environment string) error {
	if environment == EnvironmentProduction && c.InsecureSkipVerify {
		return fmt.Errorf("http client certificate verification cannot be disabled in production environment")
	}
	return nil
}

// NewClient builds the probe client from the configuration.
// Redirects follow the default policy (up to 10), so a 3xx chain that
// resolves to a 2xx counts as success.
func (c *HTTPClientConfig) NewClient() *http.Client {
	dialer := &net.Dialer{
		Timeout:   c.DialTimeout,
		KeepAlive: c.KeepAlive,
	}

	return &http.Client{
		Timeout: c.RequestTimeout,
		Transport: &http.Transport{
			DialContext:           dialer.DialContext,
			ExpectContinueTimeout: c.ExpectContinueTimeout,
			ForceAttemptHTTP2:     true,
			IdleConnTimeout:       c.IdleConnTimeout,
			MaxIdleConns:          c.MaxIdleConns,
			TLSHandshakeTimeout:   c.TLSHandshakeTimeout,
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: c.InsecureSkipVerify,
			},
		},
	}
}
