package reqtls

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"sync/atomic"

	"github.com/imroc/reqtls/pkg/http2policy"
	"github.com/imroc/reqtls/pkg/httpsconnector"
	"github.com/imroc/reqtls/pkg/impersonate"
	"github.com/imroc/reqtls/pkg/sessioncache"
	"github.com/imroc/reqtls/pkg/tlsconfig"
)

// Client is the composition root spec.md §2 describes: a profile
// resolved via C1, a reusable TLS context built by C2, a session cache
// (C4) shared by every connection it dials, and a connector (C5) tying
// a plaintext transport to that TLS context.
type Client struct {
	id      impersonate.Id
	profile impersonate.Profile
	cache   *sessioncache.Cache
	tls     *tlsconfig.Context
	conn    *httpsconnector.Connector
	log     Logger

	localAddr atomic.Pointer[net.Addr]
}

// NewClient resolves id via the profile registry (C1), builds the TLS
// context (C2) and session cache (C4), and wires a default *net.Dialer
// transport into the connector (C5). Options customize profile
// resolution, hooks and the session cache before the context is built.
func NewClient(id impersonate.Id, opts ...Option) (*Client, error) {
	cfg := newClientConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	profile, err := impersonate.Lookup(id, cfg.profileOptions)
	if err != nil {
		return nil, err
	}
	if cfg.tlsOverride != nil {
		cfg.tlsOverride(&profile.Tls)
	}

	cache := sessioncache.NewCache(cfg.sessionCacheCapacity)

	hooks := cfg.hooks
	hooks.OnSessionCacheResult = func(key sessioncache.SessionKey, hit bool) {
		if hit {
			logf(cfg.logger, "session cache hit for %s:%d", key.Host, key.Port)
		} else {
			logf(cfg.logger, "session cache miss for %s:%d", key.Host, key.Port)
		}
	}
	hooks.OnHandshakeFailure = func(key sessioncache.SessionKey, category string, err error) {
		logf(cfg.logger, "handshake failed for %s:%d (%s): %v", key.Host, key.Port, category, err)
	}

	tlsCtx, err := tlsconfig.NewContext(profile.Tls, cache, hooks)
	if err != nil {
		return nil, err
	}

	c := &Client{
		id:      id,
		profile: profile,
		cache:   cache,
		tls:     tlsCtx,
		log:     cfg.logger,
	}

	transport := cfg.transport
	if transport == nil {
		transport = &boundDialerTransport{client: c}
	}
	c.conn = httpsconnector.New(transport, tlsCtx)
	return c, nil
}

// Connect realizes spec.md §4.5: resolve rawurl, dial the plaintext
// transport, and, for https/wss, drive a handshake configured by the
// resolved profile. The connector always asks the transport (the
// default one or one injected via WithTransport) to dial "tcp".
func (c *Client) Connect(ctx context.Context, rawurl string) (httpsconnector.MaybeTlsStream, error) {
	dest, err := url.Parse(rawurl)
	if err != nil {
		return httpsconnector.MaybeTlsStream{}, &httpsconnector.UriError{URI: rawurl, Reason: err.Error()}
	}
	stream, err := c.conn.Connect(ctx, dest)
	if err != nil {
		if c.log != nil {
			logf(c.log, "connect %s: %v", rawurl, err)
		}
		return httpsconnector.MaybeTlsStream{}, err
	}
	return stream, nil
}

// Id reports the impersonation id this client was built with.
func (c *Client) Id() impersonate.Id { return c.id }

// Http2Settings returns the profile's HTTP/2 frame policy (C3), for an
// HTTP layer driving its own encoder over the stream Connect returns.
func (c *Client) Http2Settings() http2policy.Http2FrameSettings { return c.profile.Http2 }

// HeaderInitializer returns the profile's default header initializer, or
// nil if the profile (or WithSkipHeaders) opted out of one.
func (c *Client) HeaderInitializer() impersonate.HeaderInitializer { return c.profile.HeaderInitializer }

// SessionCacheLen reports the number of live (not-yet-taken) cached
// sessions; a test/diagnostic hook, not part of the control flow
// (spec.md §8 scenario 4: "observable via a test hook").
func (c *Client) SessionCacheLen() int { return c.cache.Len() }

// SetLocalAddr sets the local address subsequent Connect calls dial
// from; in-flight and already-established connections are unaffected
// (spec.md §8 scenario 5). Has no effect if a custom transport was
// supplied via WithTransport.
func (c *Client) SetLocalAddr(addr net.Addr) {
	c.localAddr.Store(&addr)
}

// boundDialerTransport is the default Transport: a *net.Dialer rebuilt
// per dial from the Client's current local-address setting, so changing
// it never reaches back into a connection already in progress.
type boundDialerTransport struct {
	client *Client
}

func (t *boundDialerTransport) DialContext(ctx context.Context, network, addr string) (httpsconnector.Conn, error) {
	d := &net.Dialer{}
	if p := t.client.localAddr.Load(); p != nil {
		d.LocalAddr = *p
	}
	conn, err := d.DialContext(ctx, network, addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s %s: %w", network, addr, err)
	}
	return conn, nil
}
