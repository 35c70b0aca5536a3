package httpsconnector

import (
	"net"
	"net/url"
	"strings"
)

// needsTLS reports whether scheme requires a TLS handshake (spec.md
// §4.5 step 1: "scheme is https or wss").
func needsTLS(scheme string) bool {
	switch strings.ToLower(scheme) {
	case "https", "wss":
		return true
	default:
		return false
	}
}

// normalizeHost extracts and normalizes the SNI host from a URI's Host
// field: lowercased, and with surrounding brackets stripped from an
// IPv6 literal, since uTLS (like BoringSSL) rejects a bracketed literal
// as a ServerName (spec.md §4.5 step 3, §8 "Host [::1] is normalized to
// ::1 before TLS setup"). Adapted from the teacher's
// internal/netutil.AuthorityHostPort bracket check, without the IDNA
// step: this core never sees user-typed Unicode hostnames, only what
// the HTTP layer already resolved.
func normalizeHost(u *url.URL) (host string, err error) {
	host = u.Hostname()
	if host == "" {
		return "", &UriError{URI: u.String(), Reason: "missing host"}
	}
	host = strings.ToLower(host)
	if strings.HasPrefix(host, "[") && strings.HasSuffix(host, "]") {
		inner := host[1 : len(host)-1]
		if net.ParseIP(inner) == nil {
			return "", &UriError{URI: u.String(), Reason: "bracketed host is not a valid IPv6 literal"}
		}
		host = inner
	}
	return host, nil
}

// portOf returns the numeric port u.Port() declares, or the scheme's
// default (443 for https/wss, 80 otherwise) when none is given.
func portOf(u *url.URL) uint16 {
	if p := u.Port(); p != "" {
		if n, err := parsePort(p); err == nil {
			return n
		}
	}
	if needsTLS(u.Scheme) {
		return 443
	}
	return 80
}

func parsePort(s string) (uint16, error) {
	var n uint16
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, &UriError{URI: s, Reason: "non-numeric port"}
		}
		n = n*10 + uint16(r-'0')
	}
	return n, nil
}
