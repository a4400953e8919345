package httpclient

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"
)

// NewClient creates an HTTP client with a bounded per-request timeout.
// The timeout covers the whole exchange, from dial to the last body byte.
// When insecure is true, TLS certificate verification is skipped; callers
// are expected to have surfaced a warning before opting in.
func NewClient(timeout time.Duration, insecure bool) *http.Client {
	if timeout < 0 {
		timeout = 0
	}

	dialer := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          8,
		MaxIdleConnsPerHost:   2,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	if insecure {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
