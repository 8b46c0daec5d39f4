// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package httperrors explains failures to reach the TRIGGER service.
package httperrors

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"syscall"

	"github.com/pterm/pterm"
)

// Category classifies a network failure for presentation.
type Category string

const (
	Timeout           Category = "timeout"
	DNS               Category = "dns"
	ConnectionRefused Category = "connection_refused"
	TLS               Category = "tls"
	Server            Category = "server"
	Generic           Category = "generic"
)

// advice is the headline and the hints shown for one category. %s in headline is
// the failing stage; {host} in a hint is replaced by the service host.
type advice struct {
	headline string
	hints    []string
}

var advices = map[Category]advice{
	Timeout: {
		headline: "Timed out while %s",
		hints: []string{
			"Large tables can take a while; lower --limit or select fewer columns",
			"Raise TRIGGER_TIMEOUT (e.g. TRIGGER_TIMEOUT=2m) if the query is expected to be slow",
		},
	},
	DNS: {
		headline: "Cannot resolve the service address while %s",
		hints: []string{
			"Check that {host} is spelled correctly in TRIGGER_API_URL or config.json",
			"The service may only resolve from the university network or its VPN",
		},
	},
	ConnectionRefused: {
		headline: "Connection refused while %s",
		hints: []string{
			"Nothing is listening at {host}; check the port in TRIGGER_API_URL",
			"The service may be down for maintenance; try again later",
		},
	},
	TLS: {
		headline: "Secure connection failed while %s",
		hints: []string{
			"Use the https:// address of {host}, not a plain http:// port",
			"An intercepting proxy or a wrong system clock also breaks certificate checks",
		},
	},
	Server: {
		headline: "The TRIGGER service failed while %s",
		hints: []string{
			"The error is on the service side; your query and credentials are not the cause",
		},
	},
	Generic: {
		headline: "Cannot reach the TRIGGER service while %s",
		hints: []string{
			"Check that {host} is reachable from your network",
			"Run with --verbose to log the request",
		},
	},
}

// FormatNetworkError prints an explanation of err for host to the default pterm
// output and returns err wrapped.
func FormatNetworkError(err error, context, host string) error {
	if err == nil {
		return nil
	}
	category := Classify(err)
	a := advices[category]

	pterm.Println(pterm.FgRed.Sprint(fmt.Sprintf(a.headline, context)))
	for _, h := range a.hints {
		pterm.Println("  • " + strings.ReplaceAll(h, "{host}", host))
	}
	if category == Generic {
		pterm.Debug.Println("Technical details: " + abbreviate(err.Error(), 100))
	}
	pterm.Println()

	return fmt.Errorf("network error: %w", err)
}

// Classify returns the category FormatNetworkError presents err under.
func Classify(err error) Category {
	msg := strings.ToLower(err.Error())

	var netErr net.Error
	var dnsErr *net.DNSError
	var opErr *net.OpError
	switch {
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline exceeded"),
		errors.As(err, &netErr) && netErr.Timeout():
		return Timeout
	case errors.As(err, &dnsErr):
		return DNS
	case errors.As(err, &opErr) && errors.Is(opErr.Err, syscall.ECONNREFUSED),
		strings.Contains(msg, "connection refused"):
		return ConnectionRefused
	case containsAny(msg, "tls", "ssl", "certificate", "x509", "handshake"):
		return TLS
	case containsAny(msg, "500", "502", "503", "504", "internal server error",
		"bad gateway", "service unavailable"):
		return Server
	default:
		return Generic
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func abbreviate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// ExtractHostFromURL returns the host of urlStr, or "server" when it has none.
func ExtractHostFromURL(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil || u.Host == "" {
		return "server"
	}
	return u.Host
}
