package config

import "time"

// ServerConfig configures the HTTP check API server.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8080"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`

	ReadTimeout time.Duration `envconfig:"READ_TIMEOUT" default:"10s"`
	// WriteTimeout must exceed the probe client's request timeout, or a
	// slow origin would kill the response mid-flight.
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"60s"`
	IdleTimeout  time.Duration `envconfig:"IDLE_TIMEOUT" default:"120s"`
}

// Validate performs validation on the ServerConfig.
func (c *ServerConfig) Validate() error {
	if err := validatePort(c.Port, "server"); err != nil {
		return err
	}

	if err := validateHost(c.Host, "server"); err != nil {
		return err
	}

	return nil
}
