package http

import (
	"net"
	"net/http"
	"time"
)

type TransportFunc func(http.RoundTripper) http.RoundTripper

type httpConfig struct {
	connClientTimeout     time.Duration
	requestTimeout        time.Duration
	clientKeepAlive       time.Duration
	responseHeaderTimeout time.Duration
	idleConnTimeout       time.Duration
	transports            []TransportFunc
}

func defaultHTTPConfig() *httpConfig {
	return &httpConfig{
		connClientTimeout:     10 * time.Second,
		requestTimeout:        20 * time.Second,
		clientKeepAlive:       90 * time.Second,
		responseHeaderTimeout: 20 * time.Second,
		idleConnTimeout:       90 * time.Second,
	}
}

func newClient(opts ...HttpOpts) *http.Client {
	cfg := defaultHTTPConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	dialer := net.Dialer{
		Timeout:   cfg.connClientTimeout,
		KeepAlive: cfg.clientKeepAlive,
	}

	var transport http.RoundTripper = &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		MaxIdleConns:          20,
		MaxIdleConnsPerHost:   4,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: cfg.responseHeaderTimeout,
		IdleConnTimeout:       cfg.idleConnTimeout,
	}

	// first option wraps innermost
	for _, wrap := range cfg.transports {
		transport = wrap(transport)
	}

	return &http.Client{
		Timeout:   cfg.requestTimeout,
		Transport: transport,
	}
}
