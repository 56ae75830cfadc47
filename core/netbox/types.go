package netbox

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"

	"nb-init/core/utils"
)

// Capability is the contract the reconciliation engine consumes.
// Paths are collection paths relative to /api, e.g. "dcim/devices".
type Capability interface {
	// Lookup returns the single object matching filter, or nil when none matches.
	Lookup(ctx context.Context, path string, filter Filter) (*Record, error)
	// Create submits attrs to the collection and returns the created object.
	Create(ctx context.Context, path string, attrs map[string]any) (*Record, error)
	// Update patches the object with the given id.
	Update(ctx context.Context, path string, id int, attrs map[string]any) (*Record, error)
}

// Record is an object owned by NetBox. Only the id is needed by dependents.
type Record struct {
	ID         int
	Attributes map[string]any
}

// UnmarshalJSON decodes a NetBox object, keeping every field in Attributes.
func (r *Record) UnmarshalJSON(data []byte) error {
	var attrs map[string]any
	if err := json.Unmarshal(data, &attrs); err != nil {
		return err
	}

	id, ok := attrs["id"]
	if !ok {
		return fmt.Errorf("object has no id")
	}
	num, ok := id.(float64)
	if !ok {
		return fmt.Errorf("object id is %T, want number", id)
	}

	r.ID = int(num)
	r.Attributes = attrs
	return nil
}

// NestedID returns the id of a nested object attribute such as "primary_ip4".
// ok is false when the attribute is absent or null.
func (r *Record) NestedID(field string) (int, bool) {
	if r == nil {
		return 0, false
	}
	v := r.Attributes[field]
	if nested, ok := v.(map[string]any); ok {
		v = nested["id"]
	}
	return utils.AsID(v)
}

// Filter is a set of query parameters used by Lookup.
type Filter map[string]string

// Encode returns the filter as a query string with keys in sorted order.
func (f Filter) Encode() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := url.Values{}
	for _, k := range keys {
		values.Add(k, f[k])
	}
	return values.Encode()
}

// listResponse is the paginated envelope of NetBox list endpoints.
type listResponse struct {
	Count    int      `json:"count"`
	Next     *string  `json:"next"`
	Previous *string  `json:"previous"`
	Results  []Record `json:"results"`
}

// provisionedToken is the answer of /api/users/tokens/provision/.
type provisionedToken struct {
	ID  int    `json:"id"`
	Key string `json:"key"`
}
