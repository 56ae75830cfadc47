package reconcile

import (
	"net/netip"
	"sort"
	"strings"
	"sync"

	"nb-init/core/transform"
)

// DeferralStore holds primary address assignments waiting for their address.
// Entries are keyed by host address, so "10.0.0.1" and "10.0.0.1/24" match.
// An entry is removed when it is taken; Drain empties the store.
type DeferralStore struct {
	mu      sync.Mutex
	pending map[string]transform.PrimaryAddress
}

// NewDeferralStore returns an empty store.
func NewDeferralStore() *DeferralStore {
	return &DeferralStore{pending: map[string]transform.PrimaryAddress{}}
}

// Put enqueues d. If another device already claimed the address, the earlier entry is
// replaced and returned.
func (s *DeferralStore) Put(d transform.PrimaryAddress) (transform.PrimaryAddress, bool) {
	key := addressKey(d.Address)

	s.mu.Lock()
	defer s.mu.Unlock()

	prev, replaced := s.pending[key]
	s.pending[key] = d
	return prev, replaced && prev.Device != d.Device
}

// Take removes and returns the entry for address.
func (s *DeferralStore) Take(address string) (transform.PrimaryAddress, bool) {
	key := addressKey(address)

	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.pending[key]
	if ok {
		delete(s.pending, key)
	}
	return d, ok
}

// Drain removes and returns every entry, ordered by address.
func (s *DeferralStore) Drain() []transform.PrimaryAddress {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]transform.PrimaryAddress, 0, len(s.pending))
	for _, d := range s.pending {
		out = append(out, d)
	}
	s.pending = map[string]transform.PrimaryAddress{}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Address < out[j].Address
	})
	return out
}

// Len returns the number of pending entries.
func (s *DeferralStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

func addressKey(address string) string {
	host, _, _ := strings.Cut(strings.TrimSpace(address), "/")
	if addr, err := netip.ParseAddr(host); err == nil {
		return addr.String()
	}
	return host
}
