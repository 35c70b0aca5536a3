package impersonate

import (
	utls "github.com/refraction-networking/utls"

	"github.com/imroc/reqtls/pkg/tlsconfig"
)

// okHttpUserAgents gives each OkHttp id a distinct User-Agent; OkHttp
// has no HTTP/2 frame policy of its own since the family forces
// HTTP/1.1 (spec.md §4.1: "no HTTP/2 when skip_http2").
var okHttpUserAgents = map[Id]string{
	OkHttp3_9: "okhttp/3.9.0",
	OkHttp4:   "okhttp/4.9.3",
	OkHttp5:   "okhttp/5.0.0",
}

// okHttpProfile builds the OkHttp template (spec.md §4.1): no HTTP/2
// when skip_http2, curves X25519,P-256,P-384, no GREASE.
func okHttpProfile(id Id) Profile {
	return Profile{
		Id:        id,
		SkipHTTP2: true,
		Tls: tlsconfig.TlsParameters{
			Tls13CipherSuites: []uint16{
				utls.TLS_AES_128_GCM_SHA256,
				utls.TLS_AES_256_GCM_SHA384,
				utls.TLS_CHACHA20_POLY1305_SHA256,
			},
			CipherSuites: []uint16{
				utls.TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256,
				utls.TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256,
				utls.TLS_ECDHE_ECDSA_WITH_CHACHA20_POLY1305,
				utls.TLS_ECDHE_RSA_WITH_CHACHA20_POLY1305,
				utls.TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384,
				utls.TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384,
				utls.TLS_RSA_WITH_AES_128_GCM_SHA256,
				utls.TLS_RSA_WITH_AES_256_GCM_SHA384,
			},
			Curves: []uint16{
				uint16(utls.X25519),
				uint16(utls.CurveP256),
				uint16(utls.CurveP384),
			},
			SignatureAlgorithms: []uint16{
				uint16(utls.ECDSAWithP256AndSHA256),
				uint16(utls.PSSWithSHA256),
				uint16(utls.PKCS1WithSHA256),
				uint16(utls.ECDSAWithP384AndSHA384),
				uint16(utls.PSSWithSHA384),
				uint16(utls.PKCS1WithSHA384),
			},
			// ALPN is overwritten to ["http/1.1"] for every SkipHTTP2
			// profile by Lookup; declared here for completeness when a
			// caller inspects the raw table entry directly.
			ALPNProtocols:        []string{"http/1.1"},
			Permutation:          tlsconfig.PermutationNone,
			EnableGREASE:         false,
			SessionTicketSupport: true,
		},
		HeaderInitializer: func(h *OrderedHeaders) {
			h.Set("host", "")
			h.Set("connection", "Keep-Alive")
			h.Set("accept-encoding", "gzip")
			h.Set("user-agent", okHttpUserAgents[id])
		},
	}
}
