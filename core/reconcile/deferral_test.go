package reconcile

import (
	"fmt"
	"sync"
	"testing"

	"nb-init/core/transform"

	"github.com/stretchr/testify/assert"
)

func TestDeferralStore_TakeRemoves(t *testing.T) {
	s := NewDeferralStore()
	s.Put(transform.PrimaryAddress{Address: "10.0.0.1/24", Device: "sw1"})

	d, ok := s.Take("10.0.0.1")
	assert.True(t, ok)
	assert.Equal(t, "sw1", d.Device)

	_, ok = s.Take("10.0.0.1/24")
	assert.False(t, ok)
	assert.Zero(t, s.Len())
}

func TestDeferralStore_Conflict(t *testing.T) {
	s := NewDeferralStore()

	_, conflict := s.Put(transform.PrimaryAddress{Address: "10.0.0.1/24", Device: "sw1"})
	assert.False(t, conflict)

	_, conflict = s.Put(transform.PrimaryAddress{Address: "10.0.0.1/24", Device: "sw1"})
	assert.False(t, conflict, "same device is not a conflict")

	prev, conflict := s.Put(transform.PrimaryAddress{Address: "10.0.0.1/32", Device: "sw2"})
	assert.True(t, conflict)
	assert.Equal(t, "sw1", prev.Device)

	d, _ := s.Take("10.0.0.1/24")
	assert.Equal(t, "sw2", d.Device)
}

func TestDeferralStore_Drain(t *testing.T) {
	s := NewDeferralStore()
	s.Put(transform.PrimaryAddress{Address: "10.0.0.2/24", Device: "b"})
	s.Put(transform.PrimaryAddress{Address: "10.0.0.1/24", Device: "a"})

	out := s.Drain()
	assert.Equal(t, []transform.PrimaryAddress{
		{Address: "10.0.0.1/24", Device: "a"},
		{Address: "10.0.0.2/24", Device: "b"},
	}, out)
	assert.Zero(t, s.Len())
}

func TestDeferralStore_Concurrent(t *testing.T) {
	s := NewDeferralStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Put(transform.PrimaryAddress{Address: fmt.Sprintf("10.0.1.%d/24", i), Device: "sw"})
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, s.Len())
}
