package tlsconfig

import (
	"reflect"
	"testing"

	utls "github.com/refraction-networking/utls"
)

func chromeLikeParams() TlsParameters {
	return TlsParameters{
		Tls13CipherSuites: []uint16{utls.TLS_AES_128_GCM_SHA256, utls.TLS_AES_256_GCM_SHA384},
		CipherSuites:      []uint16{utls.TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256},
		Curves:            []uint16{uint16(utls.X25519), uint16(utls.CurveP256), uint16(utls.CurveP384)},
		SignatureAlgorithms: []uint16{
			uint16(utls.ECDSAWithP256AndSHA256),
			uint16(utls.PSSWithSHA256),
		},
		ALPNProtocols: []string{"h2", "http/1.1"},
		ALPSProtocols: []string{"h2"},
		EnableGREASE:  true,
	}
}

func TestBuildClientHelloSpecRejectsEmptyCipherList(t *testing.T) {
	if _, err := buildClientHelloSpec(TlsParameters{}); err == nil {
		t.Fatalf("expected an error for an empty cipher suite list")
	}
}

func TestBuildClientHelloSpecPreservesOrder(t *testing.T) {
	params := chromeLikeParams()
	spec, err := buildClientHelloSpec(params)
	if err != nil {
		t.Fatalf("buildClientHelloSpec: %v", err)
	}

	// GREASE is prepended, then the TLS 1.3 suites, then the rest, all
	// in the order TlsParameters declared (spec.md §4.2).
	want := []uint16{
		utls.GREASE_PLACEHOLDER,
		utls.TLS_AES_128_GCM_SHA256,
		utls.TLS_AES_256_GCM_SHA384,
		utls.TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256,
	}
	if !reflect.DeepEqual(spec.CipherSuites, want) {
		t.Fatalf("CipherSuites = %#v, want %#v", spec.CipherSuites, want)
	}
}

func TestBuildClientHelloSpecIsDeterministicWithoutPermutation(t *testing.T) {
	params := chromeLikeParams()
	a, err := buildClientHelloSpec(params)
	if err != nil {
		t.Fatalf("buildClientHelloSpec: %v", err)
	}
	b, err := buildClientHelloSpec(params)
	if err != nil {
		t.Fatalf("buildClientHelloSpec: %v", err)
	}
	if len(a.Extensions) != len(b.Extensions) {
		t.Fatalf("two builds produced different extension counts: %d vs %d", len(a.Extensions), len(b.Extensions))
	}
	for i := range a.Extensions {
		if reflect.TypeOf(a.Extensions[i]) != reflect.TypeOf(b.Extensions[i]) {
			t.Fatalf("extension %d type differs between builds: %T vs %T", i, a.Extensions[i], b.Extensions[i])
		}
	}
}

func TestPermuteExtensionsIsSeedDeterministic(t *testing.T) {
	params := chromeLikeParams()
	spec, err := buildClientHelloSpec(params)
	if err != nil {
		t.Fatalf("buildClientHelloSpec: %v", err)
	}

	a := permuteExtensions(*spec, 42)
	b := permuteExtensions(*spec, 42)

	for i := range a.Extensions {
		if reflect.TypeOf(a.Extensions[i]) != reflect.TypeOf(b.Extensions[i]) {
			t.Fatalf("same seed produced different order at index %d: %T vs %T", i, a.Extensions[i], b.Extensions[i])
		}
	}
}

func TestPermuteExtensionsDoesNotMutateInput(t *testing.T) {
	params := chromeLikeParams()
	spec, err := buildClientHelloSpec(params)
	if err != nil {
		t.Fatalf("buildClientHelloSpec: %v", err)
	}
	original := make([]utls.TLSExtension, len(spec.Extensions))
	copy(original, spec.Extensions)

	_ = permuteExtensions(*spec, 7)

	for i := range spec.Extensions {
		if reflect.TypeOf(spec.Extensions[i]) != reflect.TypeOf(original[i]) {
			t.Fatalf("permuteExtensions mutated the source spec's order at index %d", i)
		}
	}
}
