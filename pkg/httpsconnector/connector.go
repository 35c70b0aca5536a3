package httpsconnector

import (
	"context"
	"fmt"
	"net"
	"net/url"

	"github.com/imroc/reqtls/pkg/tlsconfig"
)

// Transport is the injected plaintext transport collaborator (spec.md
// §4.5, §6: "a plaintext transport service (the pluggable
// collaborator)"). Its contract is exactly net.Dialer.DialContext's.
type Transport interface {
	DialContext(ctx context.Context, network, addr string) (Conn, error)
}

// Connector composes a Transport and a *tlsconfig.Context into the
// service spec.md §4.5 describes: URI in, MaybeTlsStream out.
type Connector struct {
	transport Transport
	tls       *tlsconfig.Context
}

// New builds a Connector. tlsCtx is the profile's reusable TLS context
// from C2 (pkg/tlsconfig); it may be nil, in which case every
// destination is treated as plaintext regardless of scheme (used by
// callers that only ever dial http://).
func New(transport Transport, tlsCtx *tlsconfig.Context) *Connector {
	return &Connector{transport: transport, tls: tlsCtx}
}

// Connect realizes spec.md §4.5's algorithm: determine TLS need from the
// scheme, connect the plaintext transport, and, for https/wss, drive a
// TLS handshake configured by C2 over it.
func (c *Connector) Connect(ctx context.Context, dest *url.URL) (MaybeTlsStream, error) {
	host, err := normalizeHost(dest)
	if err != nil {
		return MaybeTlsStream{}, err
	}
	port := portOf(dest)
	addr := fmt.Sprintf("%s:%d", bracketIfIPv6(host), port)

	raw, err := c.transport.DialContext(ctx, "tcp", addr)
	if err != nil {
		return MaybeTlsStream{}, &TransportError{Err: err}
	}

	if !needsTLS(dest.Scheme) || c.tls == nil {
		return Plain(raw), nil
	}

	conn, err := c.tls.NewConn(ctx, raw, host, port, dest.String())
	if err != nil {
		_ = raw.Close()
		if _, ok := err.(*tlsconfig.SetupError); ok {
			return MaybeTlsStream{}, err
		}
		return MaybeTlsStream{}, &HandshakeError{Err: err}
	}

	return Https(conn), nil
}

// bracketIfIPv6 re-adds brackets for net.JoinHostPort-style dialing; the
// TLS layer needs the bare literal (normalizeHost strips it for SNI),
// but the plaintext dial address needs the bracketed form to be
// unambiguous with the port separator.
func bracketIfIPv6(host string) string {
	if ip := net.ParseIP(host); ip != nil && ip.To4() == nil {
		return "[" + host + "]"
	}
	return host
}
