package httpsconnector

import (
	"context"
	"net"
)

// DialerTransport adapts a *net.Dialer to Transport, the default
// plaintext collaborator when a caller has no proxy or custom dial
// logic to inject.
type DialerTransport struct {
	Dialer *net.Dialer
}

// DialContext implements Transport.
func (t DialerTransport) DialContext(ctx context.Context, network, addr string) (Conn, error) {
	d := t.Dialer
	if d == nil {
		d = &net.Dialer{}
	}
	return d.DialContext(ctx, network, addr)
}
