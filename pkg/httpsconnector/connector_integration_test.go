package httpsconnector

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"math/big"
	"net"
	"net/url"
	"testing"
	"time"

	utls "github.com/refraction-networking/utls"

	"github.com/imroc/reqtls/pkg/sessioncache"
	"github.com/imroc/reqtls/pkg/tlsconfig"
)

// selfSignedServer starts a loopback TLS 1.3 server advertising ALPN
// h2/http/1.1 and returns its address. The server accepts connections
// for the lifetime of the test via t.Cleanup.
func selfSignedServer(t *testing.T) string {
	t.Helper()

	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "127.0.0.1"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
		IPAddresses:  []net.IP{net.ParseIP("127.0.0.1")},
		KeyUsage:     x509.KeyUsageDigitalSignature,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &priv.PublicKey, priv)
	if err != nil {
		t.Fatalf("CreateCertificate: %v", err)
	}
	cert := tls.Certificate{Certificate: [][]byte{der}, PrivateKey: priv}

	ln, err := tls.Listen("tcp", "127.0.0.1:0", &tls.Config{
		Certificates: []tls.Certificate{cert},
		NextProtos:   []string{"h2", "http/1.1"},
		MinVersion:   tls.VersionTLS13,
	})
	if err != nil {
		t.Fatalf("tls.Listen: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go func() {
				defer conn.Close()
				conn.(*tls.Conn).HandshakeContext(context.Background())
			}()
		}
	}()

	return ln.Addr().String()
}

func testProfileParams() tlsconfig.TlsParameters {
	return tlsconfig.TlsParameters{
		Tls13CipherSuites: []uint16{utls.TLS_AES_128_GCM_SHA256},
		CipherSuites:      []uint16{utls.TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256},
		Curves:            []uint16{uint16(utls.X25519), uint16(utls.CurveP256)},
		SignatureAlgorithms: []uint16{
			uint16(utls.ECDSAWithP256AndSHA256),
		},
		ALPNProtocols:        []string{"h2", "http/1.1"},
		SessionTicketSupport: true,
		AcceptInvalidCerts:   true,
	}
}

func TestConnectorNegotiatesHTTP2OverLoopbackTLS(t *testing.T) {
	addr := selfSignedServer(t)

	cache := sessioncache.NewCache(0)
	tlsCtx, err := tlsconfig.NewContext(testProfileParams(), cache, tlsconfig.ConnectHooks{})
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}
	conn := New(DialerTransport{}, tlsCtx)

	dest, _ := url.Parse("https://" + addr + "/")
	stream, err := conn.Connect(context.Background(), dest)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer stream.Close()

	if !stream.IsTLS() {
		t.Fatalf("stream is not TLS")
	}
	if !stream.NegotiatedHTTP2() {
		t.Fatalf("ALPN = %q, want h2", stream.ALPN())
	}
}

func TestConnectorPlaintextForHTTPScheme(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("net.Listen: %v", err)
	}
	defer ln.Close()
	go func() {
		for {
			c, err := ln.Accept()
			if err != nil {
				return
			}
			c.Close()
		}
	}()

	conn := New(DialerTransport{}, nil)
	dest, _ := url.Parse("http://" + ln.Addr().String() + "/")
	stream, err := conn.Connect(context.Background(), dest)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer stream.Close()

	if stream.IsTLS() {
		t.Fatalf("expected a plaintext stream for an http:// destination")
	}
}

func TestConnectorCachesSessionAndReconnects(t *testing.T) {
	addr := selfSignedServer(t)

	cache := sessioncache.NewCache(0)
	tlsCtx, err := tlsconfig.NewContext(testProfileParams(), cache, tlsconfig.ConnectHooks{})
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}
	conn := New(DialerTransport{}, tlsCtx)
	dest, _ := url.Parse("https://" + addr + "/")

	first, err := conn.Connect(context.Background(), dest)
	if err != nil {
		t.Fatalf("first Connect: %v", err)
	}
	first.Close()

	// Give the server goroutine a chance to flush the session ticket
	// before the second dial consults the cache.
	time.Sleep(50 * time.Millisecond)

	if cache.Len() == 0 {
		t.Skip("server did not emit a session ticket within the test window")
	}

	second, err := conn.Connect(context.Background(), dest)
	if err != nil {
		t.Fatalf("second Connect: %v", err)
	}
	defer second.Close()
	if !second.IsTLS() {
		t.Fatalf("second connection is not TLS")
	}
}
