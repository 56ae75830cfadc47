// Package endpoint binds every catalog entry to the remote collection that stores it.
//
// A Registry is built once per session from an authenticated netbox.Capability and the
// catalog. It holds one Endpoint per supported tag: a small set of function values that
// close over the collection path, so callers never assemble paths themselves.
//
// # Usage
//
//	reg := endpoint.NewRegistry(session.Client, catalog.Default())
//	ep, ok := reg.Get("devices")
//	if !ok {
//	    // unsupported entity type, skip
//	}
//	rec, err := ep.Lookup(ctx, netbox.Filter{"name": "sw1"})
package endpoint
