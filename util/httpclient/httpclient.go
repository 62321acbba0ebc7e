package httpclient

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"golang.org/x/net/http2"
)

type Options struct {
	// PingInterval makes the HTTP/2 transport ping an idle connection after
	// this long without frames and drop it when the ping is not answered.
	// Zero disables health checks.
	PingInterval time.Duration
	PreferIPv4   bool
}

// New returns a client for upstream calls. It sets no overall timeout, the
// caller's context bounds each request.
func New(opts Options) (*http.Client, error) {
	dialer := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	t1 := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	if opts.PreferIPv4 {
		t1.DialContext = func(ctx context.Context, _, addr string) (net.Conn, error) {
			return dialer.DialContext(ctx, "tcp4", addr)
		}
	}
	// keeps the proxy settings of t1 for HTTP/2 connections
	t2, err := http2.ConfigureTransports(t1)
	if err != nil {
		return nil, fmt.Errorf("failed to configure http2 transport: %w", err)
	}
	t2.ReadIdleTimeout = opts.PingInterval
	return &http.Client{Transport: t1}, nil
}
