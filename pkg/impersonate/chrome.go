package impersonate

import (
	utls "github.com/refraction-networking/utls"

	"github.com/imroc/reqtls/pkg/http2policy"
	"github.com/imroc/reqtls/pkg/tlsconfig"
)

// chromeVersionParams is the per-version data the Chrome/Edge/Chromium
// family template (spec.md §4.1) is parameterized by; everything else
// (extension set, permutation, ALPS, pseudo-header order) is shared
// across the whole family.
type chromeVersionParams struct {
	userAgent           string
	secChUA             string
	curves              []uint16
	h2InitialWindow     uint32
	h2ConnectionWindow  uint32
	h2MaxHeaderListSize uint32
	h2EnablePush        bool
}

// chromeKyberCurves is the curve list Chrome 124+ advertises, leading
// with the post-quantum hybrid group (spec.md §4.1).
var chromeKyberCurves = []uint16{
	uint16(utls.X25519Kyber768Draft00),
	uint16(utls.X25519),
	uint16(utls.CurveP256),
	uint16(utls.CurveP384),
}

var chromeClassicCurves = []uint16{
	uint16(utls.X25519),
	uint16(utls.CurveP256),
	uint16(utls.CurveP384),
}

func chrome100Params() chromeVersionParams {
	return chromeVersionParams{
		userAgent:           "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/100.0.4896.127 Safari/537.36",
		secChUA:             `"Google Chrome";v="100", "Chromium";v="100", ";Not A Brand";v="99"`,
		curves:              chromeClassicCurves,
		h2InitialWindow:     6291456,
		h2ConnectionWindow:  15728640,
		h2MaxHeaderListSize: 262144,
		h2EnablePush:        false,
	}
}

func chrome110Params() chromeVersionParams {
	p := chrome100Params()
	p.userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/110.0.0.0 Safari/537.36"
	p.secChUA = `"Chromium";v="110", "Not A(Brand";v="24", "Google Chrome";v="110"`
	return p
}

// chrome117Params matches spec.md §8 scenario 1 exactly: SETTINGS
// HEADER_TABLE_SIZE=65536, ENABLE_PUSH=0, INITIAL_WINDOW_SIZE=6291456,
// MAX_HEADER_LIST_SIZE=262144, connection window 15728640.
func chrome117Params() chromeVersionParams {
	return chromeVersionParams{
		userAgent:           "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/117.0.0.0 Safari/537.36",
		secChUA:             `"Google Chrome";v="117", "Not;A=Brand";v="8", "Chromium";v="117"`,
		curves:              chromeClassicCurves,
		h2InitialWindow:     6291456,
		h2ConnectionWindow:  15728640,
		h2MaxHeaderListSize: 262144,
		h2EnablePush:        false,
	}
}

func chrome120Params() chromeVersionParams {
	p := chrome117Params()
	p.userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	p.secChUA = `"Not_A Brand";v="8", "Chromium";v="120", "Google Chrome";v="120"`
	return p
}

// chrome124Params is the first version to carry the Kyber hybrid curve
// (spec.md §4.1: "Kyber hybrid included from Chrome 124+").
func chrome124Params() chromeVersionParams {
	p := chrome120Params()
	p.userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
	p.secChUA = `"Chromium";v="124", "Not(A:Brand";v="99", "Google Chrome";v="124"`
	p.curves = chromeKyberCurves
	return p
}

func chrome131Params() chromeVersionParams {
	p := chrome124Params()
	p.userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"
	p.secChUA = `"Google Chrome";v="131", "Chromium";v="131", "Not_A Brand";v="24"`
	return p
}

// chromeProfile builds the shared Chrome/Edge/Chromium template (spec.md
// §4.1): TLS 1.3 suites then ECDHE suites with the GREASE placeholder
// first, extension permutation enabled, ALPS advertising h2,
// HEADERS pseudo-order :method,:authority,:scheme,:path.
func chromeProfile(id Id, v chromeVersionParams) Profile {
	return Profile{
		Id:  id,
		Tls: chromeTlsParams(v),
		Http2: http2policy.Http2FrameSettings{
			InitialStreamWindowSize:     u32(v.h2InitialWindow),
			InitialConnectionWindowSize: u32(v.h2ConnectionWindow),
			MaxHeaderListSize:           u32(v.h2MaxHeaderListSize),
			HeaderTableSize:             u32(65536),
			EnablePush:                  boolp(v.h2EnablePush),
			SettingsOrder: []http2policy.SettingID{
				http2policy.SettingHeaderTableSize,
				http2policy.SettingEnablePush,
				http2policy.SettingInitialWindowSize,
				http2policy.SettingMaxHeaderListSize,
			},
			HeadersPseudoOrder: []string{":method", ":authority", ":scheme", ":path"},
			HeadersPriority: &http2policy.PriorityParam{
				StreamDep: 0,
				Exclusive: true,
				Weight:    255,
			},
		},
		HeaderInitializer: chromeHeaderInitializer(v),
	}
}

// edgeProfile is the Chrome template with an "Edg/" suffixed user agent;
// Edge shares Chromium's TLS and HTTP/2 stack exactly (spec.md §4.1:
// "Chrome/Edge/Chromium template").
func edgeProfile(id Id, v chromeVersionParams) Profile {
	p := chromeProfile(id, v)
	edgeUA := v.userAgent + " Edg/120.0.0.0"
	p.HeaderInitializer = func(h *OrderedHeaders) {
		setChromeCommonHeaders(h, v)
		h.Set("user-agent", edgeUA)
	}
	return p
}

func chromeTlsParams(v chromeVersionParams) tlsconfig.TlsParameters {
	return tlsconfig.TlsParameters{
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
		},
		Curves: v.curves,
		SignatureAlgorithms: []uint16{
			uint16(utls.ECDSAWithP256AndSHA256),
			uint16(utls.PSSWithSHA256),
			uint16(utls.PKCS1WithSHA256),
			uint16(utls.ECDSAWithP384AndSHA384),
			uint16(utls.PSSWithSHA384),
			uint16(utls.PKCS1WithSHA384),
			uint16(utls.PSSWithSHA512),
			uint16(utls.PKCS1WithSHA512),
		},
		ALPNProtocols:        []string{"h2", "http/1.1"},
		ALPSProtocols:        []string{"h2"},
		Permutation:          tlsconfig.PermutationShuffle,
		EnableGREASE:         true,
		EnableECHGREASE:      true,
		RecordSizeLimit:      0x4001,
		CertCompressionAlgos: []tlsconfig.CertCompressionAlgo{tlsconfig.CertCompressionBrotli},
		SessionTicketSupport: true,
		OCSPStapling:         true,
		SignedCertTimestamps: true,
		PSKModes:             []uint8{utls.PskModeDHE},
	}
}

func chromeHeaderInitializer(v chromeVersionParams) HeaderInitializer {
	return func(h *OrderedHeaders) {
		setChromeCommonHeaders(h, v)
	}
}

func setChromeCommonHeaders(h *OrderedHeaders, v chromeVersionParams) {
	h.Set("host", "")
	h.Set("pragma", "no-cache")
	h.Set("cache-control", "no-cache")
	h.Set("sec-ch-ua", v.secChUA)
	h.Set("sec-ch-ua-mobile", "?0")
	h.Set("sec-ch-ua-platform", `"Windows"`)
	h.Set("upgrade-insecure-requests", "1")
	h.Set("user-agent", v.userAgent)
	h.Set("accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8,application/signed-exchange;v=b3;q=0.7")
	h.Set("sec-fetch-site", "none")
	h.Set("sec-fetch-mode", "navigate")
	h.Set("sec-fetch-user", "?1")
	h.Set("sec-fetch-dest", "document")
	h.Set("accept-encoding", "gzip, deflate, br")
	h.Set("accept-language", "en-US,en;q=0.9")
}
