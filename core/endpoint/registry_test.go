package endpoint

import (
	"context"
	"testing"

	"nb-init/core/catalog"
	"nb-init/core/netbox"
	"nb-init/core/netbox/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRegistry_CoversCatalog(t *testing.T) {
	reg := NewRegistry(new(mocks.Capability), catalog.Default())

	for _, tag := range catalog.Default().Tags() {
		ep, ok := reg.Get(tag)
		require.True(t, ok, tag)
		assert.Equal(t, tag, ep.Tag)
		assert.NotEmpty(t, ep.Path)
	}

	_, ok := reg.Get("widgets")
	assert.False(t, ok)
}

func TestEndpoint_DelegatesToCapability(t *testing.T) {
	ctx := context.Background()
	capability := new(mocks.Capability)
	reg := NewRegistry(capability, catalog.Default())

	ep, ok := reg.Get("devices")
	require.True(t, ok)
	assert.Equal(t, "dcim/devices", ep.Path)

	filter := netbox.Filter{"name": "sw1"}
	capability.On("Lookup", mock.Anything, "dcim/devices", filter).Return(&netbox.Record{ID: 3}, nil).Once()
	capability.On("Create", mock.Anything, "dcim/devices", map[string]any{"name": "sw2"}).Return(&netbox.Record{ID: 4}, nil).Once()
	capability.On("Update", mock.Anything, "dcim/devices", 4, map[string]any{"primary_ip4": 9}).Return(&netbox.Record{ID: 4}, nil).Once()

	rec, err := ep.Lookup(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, 3, rec.ID)

	rec, err = ep.Create(ctx, map[string]any{"name": "sw2"})
	require.NoError(t, err)
	assert.Equal(t, 4, rec.ID)

	_, err = ep.Update(ctx, 4, map[string]any{"primary_ip4": 9})
	require.NoError(t, err)

	capability.AssertExpectations(t)
}

func TestRegistry_InterfaceTemplatesEndpoint(t *testing.T) {
	reg := NewRegistry(new(mocks.Capability), catalog.Default())

	ep, ok := reg.Get("interface_templates")
	require.True(t, ok)
	assert.Equal(t, "dcim/interface-templates", ep.Path)
}
