package impersonate

// OrderedHeaders is a header container whose insertion order is the
// wire order (spec.md §3, ImpersonationProfile.header_initializer:
// "a deterministic function populating a header container with the
// profile's default headers in a fixed order"). Adapted from the
// teacher's internal/header order-key convention, which threads order
// through a context value instead; this package owns the value
// directly since it has no request object to attach a key to yet.
type OrderedHeaders struct {
	keys   []string
	values map[string]string
}

// NewOrderedHeaders returns an empty container.
func NewOrderedHeaders() *OrderedHeaders {
	return &OrderedHeaders{values: make(map[string]string)}
}

// Set appends key to the order on first use, or overwrites its value in
// place if already present.
func (h *OrderedHeaders) Set(key, value string) {
	if _, ok := h.values[key]; !ok {
		h.keys = append(h.keys, key)
	}
	h.values[key] = value
}

// Keys returns the header names in insertion order.
func (h *OrderedHeaders) Keys() []string {
	out := make([]string, len(h.keys))
	copy(out, h.keys)
	return out
}

// Get returns the value set for key, and whether it was set at all.
func (h *OrderedHeaders) Get(key string) (string, bool) {
	v, ok := h.values[key]
	return v, ok
}

// Len reports the number of distinct headers set.
func (h *OrderedHeaders) Len() int { return len(h.keys) }

// HeaderInitializer populates an OrderedHeaders with a profile's default
// headers, in the order spec.md §3/§8 require.
type HeaderInitializer func(h *OrderedHeaders)
