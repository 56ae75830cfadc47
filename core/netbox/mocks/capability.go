package mocks

import (
	"context"

	"nb-init/core/netbox"

	"github.com/stretchr/testify/mock"
)

// Capability is a mock implementation of netbox.Capability
type Capability struct {
	mock.Mock
}

func (m *Capability) Lookup(ctx context.Context, path string, filter netbox.Filter) (*netbox.Record, error) {
	args := m.Called(ctx, path, filter)
	if rec, ok := args.Get(0).(*netbox.Record); ok {
		return rec, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Capability) Create(ctx context.Context, path string, attrs map[string]any) (*netbox.Record, error) {
	args := m.Called(ctx, path, attrs)
	if rec, ok := args.Get(0).(*netbox.Record); ok {
		return rec, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Capability) Update(ctx context.Context, path string, id int, attrs map[string]any) (*netbox.Record, error) {
	args := m.Called(ctx, path, id, attrs)
	if rec, ok := args.Get(0).(*netbox.Record); ok {
		return rec, args.Error(1)
	}
	return nil, args.Error(1)
}
