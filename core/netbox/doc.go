// Package netbox implements the remote inventory capability over the NetBox REST API.
//
// The reconciliation engine only needs three operations on a collection:
//
//   - Lookup: filtered GET returning zero or one record.
//   - Create: POST of an attribute set returning the created record.
//   - Update: PATCH of an existing record, used for the primary address fix-up.
//
// These are exposed through the Capability interface so the engine and its tests never
// depend on HTTP. Client is the production implementation.
//
// # Sessions
//
// Open establishes a Session: it authenticates with an API token, or provisions a
// temporary token from a username and password, and verifies the service answers on
// /api/status/. Close releases a provisioned token. Callers defer Close right after a
// successful Open so the token is removed on every exit path.
//
// # Errors
//
// Transport failures are wrapped with ErrUnreachable. Non-2xx answers are returned as
// *APIError carrying the status code and body, which is how validation and conflict
// rejections surface.
//
// # Usage
//
//	sess, err := netbox.Open(ctx, cfg.Netbox, logger)
//	if err != nil {
//	    return err
//	}
//	defer sess.Close(context.Background())
//
//	rec, err := sess.Client.Lookup(ctx, "dcim/sites", netbox.Filter{"name": "dc1"})
package netbox
