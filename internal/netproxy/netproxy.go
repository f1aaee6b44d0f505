// Package netproxy builds HTTP clients and websocket dialers that route
// through an optional outbound proxy (http, https, socks5, socks5h)
package netproxy

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/net/proxy"
)

const (
	// DefaultHTTPTimeout covers Telegram long polling (60s) with headroom
	DefaultHTTPTimeout    = 90 * time.Second
	handshakeTimeout      = 45 * time.Second
	tlsHandshakeTimeout   = 10 * time.Second
	idleConnectionTimeout = 90 * time.Second
)

// Parse validates a proxy URL. Empty input means no proxy and returns nil.
func Parse(rawURL string) (*url.URL, error) {
	if rawURL == "" {
		return nil, nil
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse proxy url: %w", err)
	}
	switch u.Scheme {
	case "http", "https", "socks5", "socks5h":
	default:
		return nil, fmt.Errorf("unsupported proxy scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("proxy url %q has no host", rawURL)
	}
	return u, nil
}

func isSOCKS(u *url.URL) bool {
	return u.Scheme == "socks5" || u.Scheme == "socks5h"
}

func socksDialer(u *url.URL) (proxy.ContextDialer, error) {
	d, err := proxy.FromURL(u, proxy.Direct)
	if err != nil {
		return nil, fmt.Errorf("socks dialer: %w", err)
	}
	cd, ok := d.(proxy.ContextDialer)
	if !ok {
		return nil, fmt.Errorf("socks dialer %T does not support contexts", d)
	}
	return cd, nil
}

// HTTPClient returns a client for API calls. A nil proxy gives a direct client.
func HTTPClient(u *url.URL, timeout time.Duration) (*http.Client, error) {
	if timeout <= 0 {
		timeout = DefaultHTTPTimeout
	}
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		TLSHandshakeTimeout: tlsHandshakeTimeout,
		IdleConnTimeout:     idleConnectionTimeout,
		ForceAttemptHTTP2:   true,
	}

	switch {
	case u == nil:
	case isSOCKS(u):
		cd, err := socksDialer(u)
		if err != nil {
			return nil, err
		}
		transport.Proxy = nil
		transport.DialContext = cd.DialContext
	default:
		transport.Proxy = http.ProxyURL(u)
	}

	return &http.Client{Transport: transport, Timeout: timeout}, nil
}

// WebsocketDialer returns a dialer for gateway connections.
// A nil proxy gives a dialer equivalent to websocket.DefaultDialer.
func WebsocketDialer(u *url.URL) (*websocket.Dialer, error) {
	d := &websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: handshakeTimeout,
	}

	switch {
	case u == nil:
	case isSOCKS(u):
		cd, err := socksDialer(u)
		if err != nil {
			return nil, err
		}
		d.Proxy = nil
		d.NetDialContext = cd.DialContext
	default:
		d.Proxy = http.ProxyURL(u)
	}

	return d, nil
}
