// Package netx holds small networking helpers shared by the client transports.
package netx

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
)

var ErrInsecureEndpoint = errors.New("endpoint must use https")

// ValidateEndpoint parses raw and checks that it is an absolute https URL.
// Plain http is accepted only for loopback hosts, which keeps local
// development against a server on 127.0.0.1 possible.
func ValidateEndpoint(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("endpoint %q has no host", raw)
	}

	switch strings.ToLower(u.Scheme) {
	case "https":
		return u, nil
	case "http":
		if IsLoopback(u.Hostname()) {
			return u, nil
		}
		return nil, fmt.Errorf("%w: %s", ErrInsecureEndpoint, raw)
	default:
		return nil, fmt.Errorf("%w: unsupported scheme %q", ErrInsecureEndpoint, u.Scheme)
	}
}

// IsLoopback reports whether host is "localhost" or a loopback IP.
func IsLoopback(host string) bool {
	if strings.EqualFold(host, "localhost") {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

// ClientIP returns the host part of a "host:port" remote address, or the
// address unchanged when it has no port.
func ClientIP(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}
