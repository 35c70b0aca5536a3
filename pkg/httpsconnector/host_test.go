package httpsconnector

import (
	"net/url"
	"testing"
)

func mustParseURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("url.Parse(%q): %v", raw, err)
	}
	return u
}

func TestNormalizeHostStripsIPv6Brackets(t *testing.T) {
	u := mustParseURL(t, "https://[::1]:8443/")
	host, err := normalizeHost(u)
	if err != nil {
		t.Fatalf("normalizeHost: %v", err)
	}
	if host != "::1" {
		t.Fatalf("host = %q, want ::1", host)
	}
}

func TestNormalizeHostLowercases(t *testing.T) {
	u := mustParseURL(t, "https://Example.COM/")
	host, err := normalizeHost(u)
	if err != nil {
		t.Fatalf("normalizeHost: %v", err)
	}
	if host != "example.com" {
		t.Fatalf("host = %q, want example.com", host)
	}
}

func TestNormalizeHostRejectsEmptyHost(t *testing.T) {
	u := mustParseURL(t, "https:///path")
	if _, err := normalizeHost(u); err == nil {
		t.Fatalf("expected a UriError for an empty host")
	} else if _, ok := err.(*UriError); !ok {
		t.Fatalf("error type = %T, want *UriError", err)
	}
}

func TestNeedsTLS(t *testing.T) {
	cases := map[string]bool{
		"http":  false,
		"ws":    false,
		"https": true,
		"wss":   true,
		"HTTPS": true,
	}
	for scheme, want := range cases {
		if got := needsTLS(scheme); got != want {
			t.Errorf("needsTLS(%q) = %v, want %v", scheme, got, want)
		}
	}
}

func TestPortOfDefaultsByScheme(t *testing.T) {
	if got := portOf(mustParseURL(t, "https://example.com/")); got != 443 {
		t.Errorf("portOf(https, no port) = %d, want 443", got)
	}
	if got := portOf(mustParseURL(t, "http://example.com/")); got != 80 {
		t.Errorf("portOf(http, no port) = %d, want 80", got)
	}
	if got := portOf(mustParseURL(t, "https://example.com:8443/")); got != 8443 {
		t.Errorf("portOf(explicit port) = %d, want 8443", got)
	}
}
