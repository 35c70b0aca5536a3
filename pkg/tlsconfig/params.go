// Package tlsconfig turns a profile's declared TLS parameters into a
// concrete uTLS client configuration (spec.md §4.2, C2). It keeps no
// process-wide mutable state: each connection's session-cache adapter
// is built in NewConn already carrying the sessioncache.SessionKey it
// is dialing for, so uTLS's new-session callback needs no side table to
// recover the key (spec.md §9, "Ex-data attach").
package tlsconfig

import "github.com/imroc/reqtls/pkg/sessioncache"

// PermutationPolicy controls whether a ClientHello's extension order is
// randomized per connection (spec.md §3, "extension permutation
// policy").
type PermutationPolicy int

const (
	// PermutationNone transmits extensions in the fixed order
	// buildExtensions lays them out, every time.
	PermutationNone PermutationPolicy = iota
	// PermutationShuffle randomizes extension order on every
	// connection, seeded by Seed when non-zero so tests can pin it
	// (spec.md §9, "Extension permutation determinism").
	PermutationShuffle
)

// CertCompressionAlgo names a certificate compression algorithm by the
// same numbering TLS uses on the wire (RFC 8879).
type CertCompressionAlgo uint16

const (
	CertCompressionZlib   CertCompressionAlgo = 1
	CertCompressionBrotli CertCompressionAlgo = 2
	CertCompressionZstd   CertCompressionAlgo = 3
)

// TlsParameters is every knob that affects the bytes of the ClientHello
// and the TLS state machine (spec.md §3). Ordered slices are applied in
// the given order; implementations must never re-sort them.
type TlsParameters struct {
	MinVersion uint16
	MaxVersion uint16

	// CipherSuites is the TLS 1.2-and-below cipher list, ordered.
	CipherSuites []uint16
	// Tls13CipherSuites is the TLS 1.3 cipher list, ordered, advertised
	// ahead of CipherSuites in the ClientHello.
	Tls13CipherSuites []uint16
	// Curves is the supported-groups list, ordered (e.g. X25519,
	// P-256, P-384, or with a post-quantum hybrid prepended).
	Curves []uint16
	// SignatureAlgorithms is the signature_algorithms list, ordered.
	SignatureAlgorithms []uint16

	// ALPNProtocols is the ALPN protocol list, ordered (e.g. "h2",
	// "http/1.1"). Empty means no ALPN extension at all.
	ALPNProtocols []string
	// ALPSProtocols, when non-empty, advertises ALPS (spec.md §3:
	// "Chrome family"). Nil for families that never send it.
	ALPSProtocols []string

	Permutation PermutationPolicy
	// Seed pins PermutationShuffle's per-connection randomness. Zero
	// means "pick a fresh seed per connection".
	Seed int64

	EnableGREASE    bool
	EnableECHGREASE bool

	// PSKWithNoSession, when true, emits a pre_shared_key extension
	// with no ticket (spec.md §4.2: "required to match Safari's
	// ClientHello"). Never inferred from the profile family; set
	// explicitly per profile (spec.md §9, Open question).
	PSKWithNoSession bool
	PSKModes         []uint8

	RecordSizeLimit         uint16
	CertCompressionAlgos    []CertCompressionAlgo
	SessionTicketSupport    bool
	OCSPStapling            bool
	SignedCertTimestamps    bool
	AcceptInvalidCerts      bool
	ServerName              string
}

// SessionStore is the subset of sessioncache.Cache the per-connection
// setup consults. Narrowed to an interface so tests can substitute a
// fake without constructing a real cache.
type SessionStore interface {
	Insert(key sessioncache.SessionKey, session sessioncache.Session)
	Take(key sessioncache.SessionKey) (sessioncache.Session, bool)
}
