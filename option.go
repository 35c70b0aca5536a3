package reqtls

import (
	"io"

	utls "github.com/refraction-networking/utls"

	"github.com/imroc/reqtls/pkg/httpsconnector"
	"github.com/imroc/reqtls/pkg/impersonate"
	"github.com/imroc/reqtls/pkg/tlsconfig"
)

// clientConfig accumulates Option values before NewClient resolves the
// profile and builds the TLS context; it never escapes this package.
type clientConfig struct {
	profileOptions       impersonate.Options
	tlsOverride          func(*tlsconfig.TlsParameters)
	hooks                tlsconfig.ConnectHooks
	sessionCacheCapacity int
	transport            httpsconnector.Transport
	logger               Logger
}

func newClientConfig() *clientConfig {
	return &clientConfig{logger: &emptyLogger{}}
}

// Option customizes a Client at construction (spec.md §6: "ImpersonationId
// at client construction, plus three orthogonal flags").
type Option func(*clientConfig)

// WithSkipHTTP2 forces HTTP/1.1 by omitting "h2" from ALPN, regardless of
// what the profile declares.
func WithSkipHTTP2() Option {
	return func(c *clientConfig) { c.profileOptions.SkipHTTP2 = true }
}

// WithSkipHeaders opts out of the profile's default header initializer.
func WithSkipHeaders() Option {
	return func(c *clientConfig) { c.profileOptions.SkipHeaders = true }
}

// WithTlsOverride adjusts the resolved TlsParameters before the TLS
// context is built, e.g. to flip EnableECHGREASE or pin a permutation
// seed for a deterministic test (spec.md §6: "extension_overrides").
func WithTlsOverride(fn func(*tlsconfig.TlsParameters)) Option {
	return func(c *clientConfig) { c.tlsOverride = fn }
}

// WithConfigureConfig registers the per-connection hook that sees the
// realized *utls.Config and the dial URI before the handshake (spec.md
// §4.5, "Hooks").
func WithConfigureConfig(fn func(cfg *utls.Config, uri string) error) Option {
	return func(c *clientConfig) { c.hooks.ConfigureConfig = fn }
}

// WithConfigureHandle registers the per-connection hook that sees the
// realized *utls.UConn after ApplyPreset, for fields the Config can't
// reach (spec.md §4.5).
func WithConfigureHandle(fn func(conn *utls.UConn) error) Option {
	return func(c *clientConfig) { c.hooks.ConfigureHandle = fn }
}

// WithSessionCacheCapacity overrides the per-destination session cache
// size (default sessioncache.DefaultCapacity).
func WithSessionCacheCapacity(capacity int) Option {
	return func(c *clientConfig) { c.sessionCacheCapacity = capacity }
}

// WithTransport injects a custom plaintext transport in place of the
// default *net.Dialer-backed one, e.g. to route through a proxy; the
// proxy-URL parsing itself is the enclosing HTTP layer's job (spec.md
// §1, out of scope).
func WithTransport(t httpsconnector.Transport) Option {
	return func(c *clientConfig) { c.transport = t }
}

// WithLogger sets the Client's Logger; nil disables logging.
func WithLogger(l Logger) Option {
	return func(c *clientConfig) {
		if l == nil {
			l = &emptyLogger{}
		}
		c.logger = l
	}
}

// WithLogOutput is a convenience over WithLogger(NewLogger(w)).
func WithLogOutput(w io.Writer) Option {
	return func(c *clientConfig) { c.logger = NewLogger(w) }
}
