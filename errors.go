package reqtls

import (
	"github.com/imroc/reqtls/pkg/httpsconnector"
	"github.com/imroc/reqtls/pkg/impersonate"
	"github.com/imroc/reqtls/pkg/tlsconfig"
)

// The error taxonomy a Client's Connect can return, re-exported under
// this package so callers never need to import the component packages
// just to do an errors.As type switch.
type (
	// ProfileError is an unknown impersonation id or a malformed
	// override.
	ProfileError = impersonate.Error
	// TlsBuildError is a TLS context that cannot be built; only an empty
	// cipher suite list produces one. Cipher, curve and ALPN values are
	// not validated at build time.
	TlsBuildError = tlsconfig.BuildError
	// TlsSetupError is a per-connection configuration failure: the TLS
	// engine rejecting the built ClientHelloSpec, or a user hook
	// returning an error.
	TlsSetupError = tlsconfig.SetupError
	// TransportError is a plaintext connect failure from the injected
	// transport.
	TransportError = httpsconnector.TransportError
	// HandshakeError is a TLS protocol, certificate, or ALPN mismatch
	// failure.
	HandshakeError = httpsconnector.HandshakeError
	// UriError is a missing or unparsable host.
	UriError = httpsconnector.UriError
)
