package server

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Config holds configuration for the HTTP/WebSocket server.
type Config struct {
	// Address is the address to listen on (e.g., ":8080" or "localhost:3000").
	// Default: ":8080".
	Address string

	// Base is the deployment base path (e.g., "/loja/"). Default: "/".
	Base string

	// ReadTimeout, WriteTimeout and IdleTimeout configure http.Server.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	// Default: 10 seconds.
	ShutdownTimeout time.Duration

	// WebSocket settings

	// ReadBufferSize is the WebSocket read buffer size.
	// Default: 4096.
	ReadBufferSize int

	// WriteBufferSize is the WebSocket write buffer size.
	// Default: 4096.
	WriteBufferSize int

	// MaxMessageSize is the maximum size of an incoming live frame.
	// Default: 4KB.
	MaxMessageSize int64

	// LiveIdleTimeout closes a live connection that sends nothing for this
	// long. Default: 5 minutes.
	LiveIdleTimeout time.Duration

	// CheckOrigin is called to validate the websocket request origin.
	// Default: SameOriginCheck.
	CheckOrigin func(r *http.Request) bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Address:         ":8080",
		Base:            "/",
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    15 * time.Second,
		IdleTimeout:     60 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		MaxMessageSize:  4 * 1024,
		LiveIdleTimeout: 5 * time.Minute,
		CheckOrigin:     SameOriginCheck,
	}
}

// withDefaults fills unset fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Address == "" {
		c.Address = d.Address
	}
	if c.Base == "" {
		c.Base = d.Base
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = d.ShutdownTimeout
	}
	if c.ReadBufferSize <= 0 {
		c.ReadBufferSize = d.ReadBufferSize
	}
	if c.WriteBufferSize <= 0 {
		c.WriteBufferSize = d.WriteBufferSize
	}
	if c.MaxMessageSize <= 0 {
		c.MaxMessageSize = d.MaxMessageSize
	}
	if c.LiveIdleTimeout <= 0 {
		c.LiveIdleTimeout = d.LiveIdleTimeout
	}
	if c.CheckOrigin == nil {
		c.CheckOrigin = d.CheckOrigin
	}
	return c
}

// validate checks settings withDefaults cannot fix.
func (c Config) validate() error {
	if !strings.HasPrefix(c.Base, "/") {
		return errors.New("server: base path must start with \"/\"")
	}
	if c.ReadTimeout < 0 || c.WriteTimeout < 0 || c.IdleTimeout < 0 {
		return errors.New("server: timeouts must not be negative")
	}
	return nil
}

// SameOriginCheck accepts websocket requests without an Origin header or
// whose Origin host matches the request host.
func SameOriginCheck(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, r.Host)
}

// liveWriteTimeout bounds a single websocket write.
func (c Config) liveWriteTimeout() time.Duration {
	if c.WriteTimeout > 0 {
		return c.WriteTimeout
	}
	return 10 * time.Second
}
