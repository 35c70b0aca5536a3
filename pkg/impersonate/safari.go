package impersonate

import (
	utls "github.com/refraction-networking/utls"

	"github.com/imroc/reqtls/pkg/http2policy"
	"github.com/imroc/reqtls/pkg/tlsconfig"
)

type safariVersionParams struct {
	userAgent          string
	h2InitialWindow    uint32
	h2ConnectionWindow uint32
	h2MaxConcurrent    uint32
}

// safariMacos15_3Params, safariIos17_4_1Params and safariIpad18Params
// carry the window sizes from the original implementation's per-version
// TlsSettings (original_source/src/tls/impersonate/safari/*.rs): desktop
// Safari and iPad share one window profile, iOS phones use a smaller
// one (spec.md §8 scenario 2: "initial stream window is 2097152").
func safariMacos15_3Params() safariVersionParams {
	return safariVersionParams{
		userAgent:          "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/15.3 Safari/605.1.15",
		h2InitialWindow:    4194304,
		h2ConnectionWindow: 10551295,
		h2MaxConcurrent:    100,
	}
}

func safariIos17_4_1Params() safariVersionParams {
	return safariVersionParams{
		userAgent:          "Mozilla/5.0 (iPhone; CPU iPhone OS 17_4_1 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4.1 Mobile/15E148 Safari/604.1",
		h2InitialWindow:    2097152,
		h2ConnectionWindow: 10551295,
		h2MaxConcurrent:    100,
	}
}

func safariIpad18Params() safariVersionParams {
	return safariVersionParams{
		userAgent:          "Mozilla/5.0 (iPad; CPU OS 18_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/18.0 Mobile/15E148 Safari/604.1",
		h2InitialWindow:    4194304,
		h2ConnectionWindow: 10551295,
		h2MaxConcurrent:    100,
	}
}

// safariProfile builds the Safari template (desktop and iOS, spec.md
// §4.1): curves X25519,P-256,P-384,P-521; extension permutation
// disabled; PSK-with-no-session enabled; ALPN h2,http/1.1; HEADERS
// pseudo-order :method,:scheme,:path,:authority.
func safariProfile(id Id, v safariVersionParams) Profile {
	return Profile{
		Id: id,
		Tls: tlsconfig.TlsParameters{
			Tls13CipherSuites: []uint16{
				utls.TLS_AES_128_GCM_SHA256,
				utls.TLS_AES_256_GCM_SHA384,
				utls.TLS_CHACHA20_POLY1305_SHA256,
			},
			CipherSuites: []uint16{
				utls.TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256,
				utls.TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256,
				utls.TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384,
				utls.TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384,
				utls.TLS_ECDHE_ECDSA_WITH_CHACHA20_POLY1305,
				utls.TLS_ECDHE_RSA_WITH_CHACHA20_POLY1305,
				utls.TLS_RSA_WITH_AES_128_GCM_SHA256,
				utls.TLS_RSA_WITH_AES_256_GCM_SHA384,
				utls.TLS_RSA_WITH_AES_128_CBC_SHA,
				utls.TLS_RSA_WITH_AES_256_CBC_SHA,
			},
			Curves: []uint16{
				uint16(utls.X25519),
				uint16(utls.CurveP256),
				uint16(utls.CurveP384),
				uint16(utls.CurveP521),
			},
			SignatureAlgorithms: []uint16{
				uint16(utls.ECDSAWithP256AndSHA256),
				uint16(utls.PSSWithSHA256),
				uint16(utls.PKCS1WithSHA256),
				uint16(utls.ECDSAWithP384AndSHA384),
				uint16(utls.ECDSAWithP521AndSHA512),
				uint16(utls.PSSWithSHA384),
				uint16(utls.PKCS1WithSHA384),
				uint16(utls.PSSWithSHA512),
				uint16(utls.PKCS1WithSHA512),
				uint16(utls.PKCS1WithSHA1),
			},
			ALPNProtocols: []string{"h2", "http/1.1"},
			Permutation:   tlsconfig.PermutationNone,
			// Required to match Safari's ClientHello (spec.md §4.2);
			// this is a per-profile flag, not inferred from the family
			// (spec.md §9, Open question).
			PSKWithNoSession:     true,
			PSKModes:             []uint8{utls.PskModeDHE},
			SessionTicketSupport: true,
			OCSPStapling:         true,
			CertCompressionAlgos: []tlsconfig.CertCompressionAlgo{tlsconfig.CertCompressionZlib},
		},
		Http2: http2policy.Http2FrameSettings{
			InitialStreamWindowSize:     u32(v.h2InitialWindow),
			InitialConnectionWindowSize: u32(v.h2ConnectionWindow),
			MaxConcurrentStreams:        u32(v.h2MaxConcurrent),
			SettingsOrder: []http2policy.SettingID{
				http2policy.SettingInitialWindowSize,
				http2policy.SettingMaxConcurrentStreams,
			},
			HeadersPseudoOrder: []string{":method", ":scheme", ":path", ":authority"},
			HeadersPriority: &http2policy.PriorityParam{
				StreamDep: 0,
				Exclusive: false,
				Weight:    254,
			},
		},
		HeaderInitializer: func(h *OrderedHeaders) {
			h.Set("accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
			h.Set("sec-fetch-site", "same-origin")
			h.Set("cookie", "")
			h.Set("sec-fetch-dest", "document")
			h.Set("accept-language", "en-US,en;q=0.9")
			h.Set("sec-fetch-mode", "navigate")
			h.Set("user-agent", v.userAgent)
			h.Set("accept-encoding", "gzip, deflate, br")
		},
	}
}
