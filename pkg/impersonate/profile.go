package impersonate

import (
	"fmt"

	"github.com/imroc/reqtls/pkg/http2policy"
	"github.com/imroc/reqtls/pkg/tlsconfig"
)

// Profile is the immutable bundle the registry returns for an id
// (spec.md §3, ImpersonationProfile).
type Profile struct {
	Id                Id
	Tls               tlsconfig.TlsParameters
	Http2             http2policy.Http2FrameSettings
	HeaderInitializer HeaderInitializer
	// SkipHTTP2 forces HTTP/1.1 by omitting "h2" from ALPN (OkHttp
	// variants).
	SkipHTTP2 bool
}

// Options are the per-resolution overrides spec.md §4.1's contract
// takes alongside the id: "(ImpersonationId, { skip_http2, skip_headers,
// extension_overrides })". extension_overrides is realized as
// TlsOverride, a function applied to the resolved TlsParameters before
// the profile is returned, since Go has no sum-of-optional-fields type
// that matches the original's ad hoc override bag.
type Options struct {
	SkipHTTP2    bool
	SkipHeaders  bool
	TlsOverride  func(*tlsconfig.TlsParameters)
}

// Error reports an unknown id or a malformed override (spec.md §7,
// ProfileError).
type Error struct {
	Id     Id
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("impersonate: %s: %q", e.Reason, e.Id)
}

type builderFunc func() Profile

// registry is the single table spec.md §9 ("Profile duplication")
// calls for: one row per id, built once at package init from the family
// templates below so "adding a new version is a table extension", not a
// new type or a new code path.
var registry = map[Id]builderFunc{
	Chrome100: func() Profile { return chromeProfile(Chrome100, chrome100Params()) },
	Chrome110: func() Profile { return chromeProfile(Chrome110, chrome110Params()) },
	Chrome117: func() Profile { return chromeProfile(Chrome117, chrome117Params()) },
	Chrome120: func() Profile { return chromeProfile(Chrome120, chrome120Params()) },
	Chrome124: func() Profile { return chromeProfile(Chrome124, chrome124Params()) },
	Chrome131: func() Profile { return chromeProfile(Chrome131, chrome131Params()) },

	Edge101: func() Profile { return edgeProfile(Edge101, chrome100Params()) },
	Edge106: func() Profile { return edgeProfile(Edge106, chrome110Params()) },
	Edge127: func() Profile { return edgeProfile(Edge127, chrome124Params()) },

	SafariMacos15_3: func() Profile { return safariProfile(SafariMacos15_3, safariMacos15_3Params()) },
	SafariIos17_4_1: func() Profile { return safariProfile(SafariIos17_4_1, safariIos17_4_1Params()) },
	SafariIpad18:    func() Profile { return safariProfile(SafariIpad18, safariIpad18Params()) },

	OkHttp3_9: func() Profile { return okHttpProfile(OkHttp3_9) },
	OkHttp4:   func() Profile { return okHttpProfile(OkHttp4) },
	OkHttp5:   func() Profile { return okHttpProfile(OkHttp5) },

	Firefox109: func() Profile { return firefoxProfile(Firefox109, firefox109Params()) },
	Firefox117: func() Profile { return firefoxProfile(Firefox117, firefox117Params()) },
}

// Lookup resolves an Id to a Profile (spec.md §4.1's contract). Pure; no
// I/O. Two calls with the same id and options yield structurally equal
// profiles (spec.md §8 invariant), since builderFunc always starts from
// the same static parameter tables.
func Lookup(id Id, opts Options) (Profile, error) {
	build, ok := registry[id]
	if !ok {
		return Profile{}, &Error{Id: id, Reason: "unknown impersonation id"}
	}
	p := build()

	if opts.TlsOverride != nil {
		opts.TlsOverride(&p.Tls)
	}
	if opts.SkipHTTP2 {
		p.SkipHTTP2 = true
	}
	if p.SkipHTTP2 {
		p.Tls.ALPNProtocols = []string{"http/1.1"}
	}
	if opts.SkipHeaders {
		p.HeaderInitializer = nil
	}
	return p, nil
}

// IDs returns the closed set of ids the registry knows about, in
// declaration order. Exported for registry-completeness tests and for
// callers building a selection UI.
func IDs() []Id {
	return []Id{
		Chrome100, Chrome110, Chrome117, Chrome120, Chrome124, Chrome131,
		Edge101, Edge106, Edge127,
		SafariMacos15_3, SafariIos17_4_1, SafariIpad18,
		OkHttp3_9, OkHttp4, OkHttp5,
		Firefox109, Firefox117,
	}
}
