/*
Package reqtls composes the impersonation profile registry, the TLS
settings builder, the HTTP/2 frame policy, the session cache and the
HTTPS connector into a single client-facing entry point: resolve a
browser Id once, then Connect any number of destinations through it.

	c, err := reqtls.NewClient(impersonate.Chrome117)
	if err != nil {
		log.Fatal(err)
	}
	stream, err := c.Connect(ctx, "https://tls.peet.ws:443")

The package itself performs no HTTP request/response handling; that is
the enclosing HTTP layer's job. What it guarantees is the wire shape of
the TLS handshake and the HTTP/2 preface for the destinations it
connects.
*/
package reqtls
