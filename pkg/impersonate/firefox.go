package impersonate

import (
	utls "github.com/refraction-networking/utls"

	"github.com/imroc/reqtls/pkg/http2policy"
	"github.com/imroc/reqtls/pkg/tlsconfig"
)

type firefoxVersionParams struct {
	userAgent string
}

func firefox109Params() firefoxVersionParams {
	return firefoxVersionParams{userAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:109.0) Gecko/20100101 Firefox/109.0"}
}

func firefox117Params() firefoxVersionParams {
	return firefoxVersionParams{userAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:117.0) Gecko/20100101 Firefox/117.0"}
}

// firefoxProfile builds the Firefox template (spec.md §4.1): distinct
// cipher order, curves X25519,P-256,P-384,P-521,FFDHE2048,FFDHE3072; no
// ALPS; HEADERS pseudo-order :method,:path,:authority,:scheme. The
// standalone PRIORITY frames and their stream dependency tree are
// grounded on the teacher's firefoxPriorityFrames
// (client_impersonate.go): Firefox pre-declares a priority tree for its
// first few streams ahead of any HEADERS frame.
func firefoxProfile(id Id, v firefoxVersionParams) Profile {
	return Profile{
		Id: id,
		Tls: tlsconfig.TlsParameters{
			Tls13CipherSuites: []uint16{
				utls.TLS_AES_128_GCM_SHA256,
				utls.TLS_CHACHA20_POLY1305_SHA256,
				utls.TLS_AES_256_GCM_SHA384,
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
				uint16(utls.CurveP521),
				256, // FFDHE2048
				257, // FFDHE3072
			},
			SignatureAlgorithms: []uint16{
				uint16(utls.ECDSAWithP256AndSHA256),
				uint16(utls.ECDSAWithP384AndSHA384),
				uint16(utls.ECDSAWithP521AndSHA512),
				uint16(utls.PSSWithSHA256),
				uint16(utls.PSSWithSHA384),
				uint16(utls.PSSWithSHA512),
				uint16(utls.PKCS1WithSHA256),
				uint16(utls.PKCS1WithSHA384),
				uint16(utls.PKCS1WithSHA512),
			},
			ALPNProtocols:        []string{"h2", "http/1.1"},
			Permutation:          tlsconfig.PermutationNone,
			EnableGREASE:         false,
			PSKModes:             []uint8{utls.PskModeDHE},
			RecordSizeLimit:      0x4001,
			SessionTicketSupport: true,
			OCSPStapling:         true,
			CertCompressionAlgos: []tlsconfig.CertCompressionAlgo{tlsconfig.CertCompressionZlib, tlsconfig.CertCompressionBrotli, tlsconfig.CertCompressionZstd},
		},
		Http2: http2policy.Http2FrameSettings{
			HeaderTableSize:         u32(65536),
			InitialStreamWindowSize: u32(131072),
			MaxFrameSize:            u32(16384),
			SettingsOrder: []http2policy.SettingID{
				http2policy.SettingHeaderTableSize,
				http2policy.SettingInitialWindowSize,
				http2policy.SettingMaxFrameSize,
			},
			HeadersPseudoOrder: []string{":method", ":path", ":authority", ":scheme"},
			HeadersPriority: &http2policy.PriorityParam{
				StreamDep: 13,
				Exclusive: false,
				Weight:    41,
			},
			PriorityFrames: []http2policy.PriorityFrame{
				{StreamID: 3, PriorityParam: http2policy.PriorityParam{StreamDep: 0, Exclusive: false, Weight: 200}},
				{StreamID: 5, PriorityParam: http2policy.PriorityParam{StreamDep: 0, Exclusive: false, Weight: 100}},
				{StreamID: 7, PriorityParam: http2policy.PriorityParam{StreamDep: 0, Exclusive: false, Weight: 0}},
				{StreamID: 9, PriorityParam: http2policy.PriorityParam{StreamDep: 7, Exclusive: false, Weight: 0}},
				{StreamID: 11, PriorityParam: http2policy.PriorityParam{StreamDep: 3, Exclusive: false, Weight: 0}},
				{StreamID: 13, PriorityParam: http2policy.PriorityParam{StreamDep: 0, Exclusive: false, Weight: 240}},
			},
		},
		HeaderInitializer: func(h *OrderedHeaders) {
			h.Set("user-agent", v.userAgent)
			h.Set("accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8")
			h.Set("accept-language", "en-US,en;q=0.5")
			h.Set("accept-encoding", "gzip, deflate, br")
			h.Set("referer", "")
			h.Set("cookie", "")
			h.Set("upgrade-insecure-requests", "1")
			h.Set("sec-fetch-dest", "document")
			h.Set("sec-fetch-mode", "navigate")
			h.Set("sec-fetch-site", "same-origin")
			h.Set("sec-fetch-user", "?1")
			h.Set("te", "trailers")
		},
	}
}
