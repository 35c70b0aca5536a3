package tlsconfig

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"math/rand"
	"net"

	utls "github.com/refraction-networking/utls"

	"github.com/imroc/reqtls/pkg/sessioncache"
)

// BuildError reports that a TlsParameters value could not be turned into
// a uTLS ClientHelloSpec (spec.md §7, TlsBuildError). The only case
// that produces one is an empty cipher suite list: cipher, curve and
// ALPN values are not validated when the context is built, and a spec
// that uTLS rejects surfaces per connection as a SetupError from
// ApplyPreset instead.
type BuildError struct {
	Reason string
	Err    error
}

func (e *BuildError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("tlsconfig: build clienthello: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("tlsconfig: build clienthello: %s", e.Reason)
}

func (e *BuildError) Unwrap() error { return e.Err }

// SetupError reports a per-connection configuration failure: uTLS
// rejecting the ClientHelloSpec in ApplyPreset, or a ConfigureConfig/
// ConfigureHandle hook returning an error (spec.md §7, TlsSetupError).
type SetupError struct {
	Reason string
	Err    error
}

func (e *SetupError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("tlsconfig: connection setup: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("tlsconfig: connection setup: %s", e.Reason)
}

func (e *SetupError) Unwrap() error { return e.Err }

// ConnectHooks are the optional customization and observation points a
// connection's setup can invoke. ConfigureConfig sees the realized
// *utls.Config and the dial URI before the UConn is built;
// ConfigureHandle sees the *utls.UConn after construction, for fields
// the Config can't reach (e.g. uTLS resets some handshake state between
// Config and UConn). Both run synchronously; either failing aborts the
// connection with a SetupError (spec.md §4.5).
//
// OnSessionCacheResult and OnHandshakeFailure are the connector
// lifecycle events SPEC_FULL.md §2.1 describes the core as logging
// (cache hit/miss, handshake failure category); the root package wires
// them to its Logger rather than exposing them as client Options, since
// they report on the connection rather than customize it.
type ConnectHooks struct {
	ConfigureConfig func(cfg *utls.Config, uri string) error
	ConfigureHandle func(conn *utls.UConn) error

	OnSessionCacheResult func(key sessioncache.SessionKey, hit bool)
	OnHandshakeFailure   func(key sessioncache.SessionKey, category string, err error)
}

// Context is C2's reusable, process-lifetime output: one per client,
// shared by every connection it dials. Build once via NewContext; call
// NewConn once per connection.
type Context struct {
	params TlsParameters
	spec   utls.ClientHelloSpec
	cache  SessionStore
	hooks  ConnectHooks
}

// NewContext builds the reusable TLS context for a profile. Building the
// ClientHelloSpec is done once here, not per connection: per spec.md
// §4.2, "the context is built once per client; the factory is invoked
// once per connection."
func NewContext(params TlsParameters, cache SessionStore, hooks ConnectHooks) (*Context, error) {
	spec, err := buildClientHelloSpec(params)
	if err != nil {
		return nil, err
	}
	return &Context{
		params: params,
		spec:   *spec,
		cache:  cache,
		hooks:  hooks,
	}, nil
}

// NewConn builds the per-connection TLS configuration and drives the
// handshake over raw, the plaintext stream C5 already connected. host is
// the bracket-stripped, lowercased SNI value; uri is passed through to
// the ConfigureConfig hook for logging/policy decisions.
func (c *Context) NewConn(ctx context.Context, raw net.Conn, host string, port uint16, uri string) (*utls.UConn, error) {
	cfg := &utls.Config{
		ServerName:         host,
		InsecureSkipVerify: c.params.AcceptInvalidCerts,
	}

	key := sessioncache.SessionKey{Host: host, Port: port}

	if c.cache != nil {
		cfg.ClientSessionCache = &sessionCacheAdapter{key: key, store: c.cache, onResult: c.hooks.OnSessionCacheResult}
	}

	if c.hooks.ConfigureConfig != nil {
		if err := c.hooks.ConfigureConfig(cfg, uri); err != nil {
			return nil, &SetupError{Reason: "ConfigureConfig hook", Err: err}
		}
	}

	conn := utls.UClient(raw, cfg, utls.HelloCustom)
	spec := c.spec
	if c.params.Permutation == PermutationShuffle {
		spec = permuteExtensions(spec, c.connectionSeed())
	}
	if err := conn.ApplyPreset(&spec); err != nil {
		return nil, &SetupError{Reason: "apply ClientHelloSpec preset", Err: err}
	}

	if c.hooks.ConfigureHandle != nil {
		if err := c.hooks.ConfigureHandle(conn); err != nil {
			return nil, &SetupError{Reason: "ConfigureHandle hook", Err: err}
		}
	}

	if err := conn.HandshakeContext(ctx); err != nil {
		if c.hooks.OnHandshakeFailure != nil {
			c.hooks.OnHandshakeFailure(key, classifyHandshakeFailure(err), err)
		}
		return nil, err
	}

	return conn, nil
}

// sessionCacheAdapter implements utls.ClientSessionCache by forwarding
// directly to C4. It stands in for the new-session callback spec.md
// §4.2 describes: uTLS calls Put as soon as a NewSessionTicket message
// arrives, which is exactly when the Rust original's callback fires.
// The string key uTLS computes internally is ignored; this adapter is
// built fresh per connection (see NewConn) and already knows which
// sessioncache.SessionKey that connection is for, since cfg.ClientSessionCache
// is itself a per-connection slot. Go's binding gives every *utls.Config
// its own callback value, so there is no need for the Rust original's
// generic ex-data side table to recover the key inside the callback; it
// would just duplicate what this closure already carries.
type sessionCacheAdapter struct {
	key      sessioncache.SessionKey
	store    SessionStore
	onResult func(key sessioncache.SessionKey, hit bool)
}

func (a *sessionCacheAdapter) Get(string) (*utls.ClientSessionState, bool) {
	session, ok := a.store.Take(a.key)
	if a.onResult != nil {
		a.onResult(a.key, ok)
	}
	if !ok {
		return nil, false
	}
	state, ok := session.(*utls.ClientSessionState)
	return state, ok
}

func (a *sessionCacheAdapter) Put(_ string, cs *utls.ClientSessionState) {
	if cs == nil {
		return
	}
	a.store.Insert(a.key, cs)
}

// classifyHandshakeFailure buckets a raw handshake error into the
// coarse categories SPEC_FULL.md §2.1 describes the core as logging,
// without parsing TLS alert contents: "certificate" for anything the
// x509 verifier rejected, "protocol" for a malformed or unexpected
// record, "other" otherwise (most commonly a context cancellation or a
// peer reset mid-handshake).
func classifyHandshakeFailure(err error) string {
	var certErr x509.CertificateInvalidError
	var unknownAuthErr x509.UnknownAuthorityError
	var hostnameErr x509.HostnameError
	switch {
	case errors.As(err, &certErr), errors.As(err, &unknownAuthErr), errors.As(err, &hostnameErr):
		return "certificate"
	}
	var recordErr utls.RecordHeaderError
	if errors.As(err, &recordErr) {
		return "protocol"
	}
	var alertErr tls.AlertError
	if errors.As(err, &alertErr) {
		return "protocol"
	}
	return "other"
}

// connectionSeed returns the configured seed when pinned, otherwise a
// fresh one (spec.md §9, "Extension permutation determinism").
func (c *Context) connectionSeed() int64 {
	if c.params.Seed != 0 {
		return c.params.Seed
	}
	return rand.Int63()
}
