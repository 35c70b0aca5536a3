package tlsconfig

import (
	"math/rand"

	utls "github.com/refraction-networking/utls"
)

// buildClientHelloSpec renders a TlsParameters into a uTLS
// ClientHelloSpec (spec.md §4.2): cipher, curve, signature-algorithm and
// ALPN lists are applied in the given order, never re-sorted; GREASE and
// ECH-GREASE are inserted only when their flags are set; certificate
// compression algorithms are advertised in the order given.
func buildClientHelloSpec(p TlsParameters) (*utls.ClientHelloSpec, error) {
	if len(p.CipherSuites) == 0 && len(p.Tls13CipherSuites) == 0 {
		return nil, &BuildError{Reason: "cipher suite list is empty"}
	}

	ciphers := make([]uint16, 0, len(p.Tls13CipherSuites)+len(p.CipherSuites)+1)
	if p.EnableGREASE {
		ciphers = append(ciphers, utls.GREASE_PLACEHOLDER)
	}
	ciphers = append(ciphers, p.Tls13CipherSuites...)
	ciphers = append(ciphers, p.CipherSuites...)

	spec := &utls.ClientHelloSpec{
		TLSVersMin:         versionOr(p.MinVersion, utls.VersionTLS12),
		TLSVersMax:         versionOr(p.MaxVersion, utls.VersionTLS13),
		CipherSuites:       ciphers,
		CompressionMethods: []byte{0x00},
		Extensions:         buildExtensions(p),
	}
	return spec, nil
}

func versionOr(v, fallback uint16) uint16 {
	if v == 0 {
		return fallback
	}
	return v
}

func buildExtensions(p TlsParameters) []utls.TLSExtension {
	var ext []utls.TLSExtension

	ext = append(ext, &utls.SNIExtension{})
	ext = append(ext, &utls.UtlsExtendedMasterSecretExtension{})
	ext = append(ext, &utls.RenegotiationInfoExtension{Renegotiation: utls.RenegotiateOnceAsClient})

	curves := make([]utls.CurveID, 0, len(p.Curves)+1)
	if p.EnableGREASE {
		curves = append(curves, utls.GREASE_PLACEHOLDER)
	}
	for _, c := range p.Curves {
		curves = append(curves, utls.CurveID(c))
	}
	ext = append(ext, &utls.SupportedCurvesExtension{Curves: curves})
	ext = append(ext, &utls.SupportedPointsExtension{SupportedPoints: []byte{0x00}})

	if p.SessionTicketSupport {
		ext = append(ext, &utls.SessionTicketExtension{})
	}

	if len(p.ALPNProtocols) > 0 {
		ext = append(ext, &utls.ALPNExtension{AlpnProtocols: p.ALPNProtocols})
	}
	if len(p.ALPSProtocols) > 0 {
		ext = append(ext, &utls.ApplicationSettingsExtensionNew{SupportedProtocols: p.ALPSProtocols})
	}

	if p.OCSPStapling {
		ext = append(ext, &utls.StatusRequestExtension{})
	}

	sigAlgs := make([]utls.SignatureScheme, 0, len(p.SignatureAlgorithms))
	for _, a := range p.SignatureAlgorithms {
		sigAlgs = append(sigAlgs, utls.SignatureScheme(a))
	}
	if len(sigAlgs) > 0 {
		ext = append(ext, &utls.SignatureAlgorithmsExtension{SupportedSignatureAlgorithms: sigAlgs})
	}

	if p.SignedCertTimestamps {
		ext = append(ext, &utls.SCTExtension{})
	}

	keyShares := make([]utls.KeyShare, 0, len(p.Curves))
	if p.EnableGREASE {
		keyShares = append(keyShares, utls.KeyShare{Group: utls.GREASE_PLACEHOLDER})
	}
	for i, c := range p.Curves {
		if i >= 2 {
			break // only offer key shares for the most preferred groups
		}
		keyShares = append(keyShares, utls.KeyShare{Group: utls.CurveID(c)})
	}
	ext = append(ext, &utls.KeyShareExtension{KeyShares: keyShares})

	versions := make([]uint16, 0, 2)
	if p.EnableGREASE {
		versions = append(versions, utls.GREASE_PLACEHOLDER)
	}
	versions = append(versions, utls.VersionTLS13, utls.VersionTLS12)
	ext = append(ext, &utls.SupportedVersionsExtension{Versions: versions})

	if len(p.PSKModes) > 0 {
		ext = append(ext, &utls.PSKKeyExchangeModesExtension{Modes: p.PSKModes})
	}

	if p.RecordSizeLimit > 0 {
		ext = append(ext, &utls.FakeRecordSizeLimitExtension{Limit: p.RecordSizeLimit})
	}

	if len(p.CertCompressionAlgos) > 0 {
		algos := make([]utls.CertCompressionAlgo, 0, len(p.CertCompressionAlgos))
		for _, a := range p.CertCompressionAlgos {
			algos = append(algos, utls.CertCompressionAlgo(a))
		}
		ext = append(ext, &utls.UtlsCompressCertExtension{Algorithms: algos})
	}

	if p.EnableECHGREASE {
		ext = append(ext, utls.BoringGREASEECH())
	}

	// Safari requires a pre_shared_key extension with no ticket (spec.md
	// §4.2, §9): the flag is per-profile, never inferred from family.
	if p.PSKWithNoSession {
		ext = append(ext, &utls.UtlsPreSharedKeyExtension{})
	}

	if p.EnableGREASE {
		ext = append(ext, &utls.UtlsGREASEExtension{})
		ext = append(ext, &utls.UtlsPaddingExtension{GetPaddingLen: utls.BoringPaddingStyle})
	}

	return ext
}

// permuteExtensions returns a copy of spec with its Extensions shuffled
// by a seeded RNG (spec.md §3, "permute": deterministic shuffle seeded
// by a per-connection token). Extensions that must stay first or last
// per the ClientHello grammar (none in uTLS's model; GREASE/padding stay
// wherever buildExtensions put them) are left in place the way uTLS's
// own ShuffleChromeTLSExtensions pins GREASE and padding.
func permuteExtensions(spec utls.ClientHelloSpec, seed int64) utls.ClientHelloSpec {
	shuffled := make([]utls.TLSExtension, len(spec.Extensions))
	copy(shuffled, spec.Extensions)

	movable := make([]int, 0, len(shuffled))
	for i, ext := range shuffled {
		switch ext.(type) {
		case *utls.UtlsGREASEExtension, *utls.UtlsPaddingExtension:
			continue
		}
		movable = append(movable, i)
	}

	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(movable), func(i, j int) {
		a, b := movable[i], movable[j]
		shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
	})

	spec.Extensions = shuffled
	return spec
}
