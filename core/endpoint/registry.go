package endpoint

import (
	"context"

	"nb-init/core/catalog"
	"nb-init/core/netbox"
)

// Endpoint is the remote collection of one entity type.
type Endpoint struct {
	// Tag is the entity type served by this endpoint.
	Tag string
	// Path is the collection path relative to /api.
	Path string
	// Lookup returns the single object matching filter, or nil.
	Lookup func(ctx context.Context, filter netbox.Filter) (*netbox.Record, error)
	// Create submits a new object.
	Create func(ctx context.Context, attrs map[string]any) (*netbox.Record, error)
	// Update patches an existing object.
	Update func(ctx context.Context, id int, attrs map[string]any) (*netbox.Record, error)
}

// Registry maps entity tags to endpoints. It is read-only after construction.
type Registry struct {
	endpoints map[string]Endpoint
	catalog   *catalog.Catalog
}

// NewRegistry builds one endpoint per catalog entry on top of capability.
func NewRegistry(capability netbox.Capability, cat *catalog.Catalog) *Registry {
	r := &Registry{
		endpoints: make(map[string]Endpoint),
		catalog:   cat,
	}
	for _, d := range cat.Ordered() {
		r.endpoints[d.Tag] = bind(capability, d.Tag, d.Path)
	}
	return r
}

func bind(capability netbox.Capability, tag, path string) Endpoint {
	return Endpoint{
		Tag:  tag,
		Path: path,
		Lookup: func(ctx context.Context, filter netbox.Filter) (*netbox.Record, error) {
			return capability.Lookup(ctx, path, filter)
		},
		Create: func(ctx context.Context, attrs map[string]any) (*netbox.Record, error) {
			return capability.Create(ctx, path, attrs)
		},
		Update: func(ctx context.Context, id int, attrs map[string]any) (*netbox.Record, error) {
			return capability.Update(ctx, path, id, attrs)
		},
	}
}

// Get returns the endpoint for tag. ok is false for unsupported types.
func (r *Registry) Get(tag string) (Endpoint, bool) {
	ep, ok := r.endpoints[tag]
	return ep, ok
}

// Catalog returns the catalog the registry was built from.
func (r *Registry) Catalog() *catalog.Catalog {
	return r.catalog
}
