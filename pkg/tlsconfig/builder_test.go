package tlsconfig

import (
	"testing"

	utls "github.com/refraction-networking/utls"

	"github.com/imroc/reqtls/pkg/sessioncache"
)

func TestSessionCacheAdapterRoundTrips(t *testing.T) {
	store := sessioncache.NewCache(0)
	key := sessioncache.SessionKey{Host: "example.com", Port: 443}
	adapter := &sessionCacheAdapter{key: key, store: store}

	if _, ok := adapter.Get("ignored"); ok {
		t.Fatalf("Get on an empty cache succeeded")
	}

	state := &utls.ClientSessionState{}
	adapter.Put("ignored", state)

	got, ok := adapter.Get("ignored")
	if !ok || got != state {
		t.Fatalf("Get after Put = (%v, %v), want the stored state", got, ok)
	}

	if _, ok := adapter.Get("ignored"); ok {
		t.Fatalf("second Get succeeded, want the session consumed by the first Take")
	}
}

func TestSessionCacheAdapterIgnoresNilPut(t *testing.T) {
	store := sessioncache.NewCache(0)
	key := sessioncache.SessionKey{Host: "example.com", Port: 443}
	adapter := &sessionCacheAdapter{key: key, store: store}

	adapter.Put("ignored", nil)

	if store.Len() != 0 {
		t.Fatalf("Len() = %d, want 0 after Put(nil)", store.Len())
	}
}
