// Package httpsconnector composes a plaintext transport, a profile's
// TLS context, and the session cache into a service from a destination
// URI to a MaybeTlsStream (spec.md §4.5, C5). It is the 40% share of the
// core spec.md §2 assigns it: the other four components exist to feed
// this one.
package httpsconnector

import (
	"crypto/tls"
	"net"

	utls "github.com/refraction-networking/utls"
)

// Conn is what a plaintext transport service must hand back so this
// package can drive a TLS handshake over it. Aliased directly to
// net.Conn (rather than redeclared, per the teacher's pkg/tls.Conn /
// pkg/tlsclient.Conn pattern) so *net.Dialer satisfies Transport with no
// adapter required.
type Conn = net.Conn

// MaybeTlsStream is the tagged union spec.md §3 describes: either a bare
// plaintext duplex stream, or one wrapped in TLS and annotated with the
// negotiated ALPN protocol.
type MaybeTlsStream struct {
	net.Conn
	isTLS     bool
	alpn      string
	tlsState  *tls.ConnectionState
}

// Plain wraps a plaintext connection. It is always what a http:// or
// ws:// destination produces (spec.md §4.5 step 1).
func Plain(conn net.Conn) MaybeTlsStream {
	return MaybeTlsStream{Conn: conn}
}

// Https wraps a TLS-negotiated connection, capturing uTLS's connection
// state so NegotiatedHTTP2 can report what ALPN selected.
func Https(conn *utls.UConn) MaybeTlsStream {
	state := conn.ConnectionState()
	std := tls.ConnectionState{
		Version:            state.Version,
		HandshakeComplete:  state.HandshakeComplete,
		CipherSuite:        state.CipherSuite,
		NegotiatedProtocol: state.NegotiatedProtocol,
		ServerName:         state.ServerName,
		PeerCertificates:   state.PeerCertificates,
	}
	return MaybeTlsStream{
		Conn:     conn,
		isTLS:    true,
		alpn:     state.NegotiatedProtocol,
		tlsState: &std,
	}
}

// IsTLS reports whether this stream is TLS-wrapped.
func (s MaybeTlsStream) IsTLS() bool { return s.isTLS }

// NegotiatedHTTP2 reports whether ALPN selected "h2" (spec.md §4.5 step
// 6: "h2 flag propagated to the HTTP layer's connection metadata").
func (s MaybeTlsStream) NegotiatedHTTP2() bool { return s.alpn == "h2" }

// ALPN returns the negotiated protocol, or "" for a plaintext stream or
// a TLS stream that negotiated none.
func (s MaybeTlsStream) ALPN() string { return s.alpn }

// ConnectionState returns the TLS connection state for a TLS-wrapped
// stream, or nil for a plaintext one.
func (s MaybeTlsStream) ConnectionState() *tls.ConnectionState { return s.tlsState }
