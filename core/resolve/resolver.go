package resolve

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"nb-init/core/catalog"
	"nb-init/core/document"
	"nb-init/core/endpoint"
	"nb-init/core/netbox"

	"golang.org/x/sync/singleflight"
)

// ErrReferenceNotFound is returned when a referenced object does not exist.
var ErrReferenceNotFound = errors.New("reference not found")

// ID is an attribute value that already holds a remote id, such as the id of the
// parent a child record was declared under. Every other value is looked up by the
// target's unique key, numbers included.
type ID int

// Binding is one reference of a declared record to an object of another type.
type Binding struct {
	// Tag and Record identify the declaring record.
	Tag    string
	Record string
	// Field is the referencing attribute.
	Field string
	// Target is the tag of the referenced type.
	Target string
	// Value is the declared value, usually the target's unique key.
	Value any
	// Scope is added to the lookup filter.
	Scope netbox.Filter
}

// Error describes a failed binding.
type Error struct {
	Binding Binding
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %q: %s -> %s %v: %v", e.Binding.Tag, e.Binding.Record, e.Binding.Field, e.Binding.Target, e.Binding.Value, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Resolver resolves bindings through an endpoint registry.
type Resolver struct {
	registry *endpoint.Registry
	catalog  *catalog.Catalog
	group    singleflight.Group
}

// New creates a resolver over registry.
func New(registry *endpoint.Registry) *Resolver {
	return &Resolver{
		registry: registry,
		catalog:  registry.Catalog(),
	}
}

// Resolve returns the id of the object b refers to.
func (r *Resolver) Resolve(ctx context.Context, b Binding) (int, error) {
	if id, ok := b.Value.(ID); ok {
		return int(id), nil
	}
	if b.Value == nil {
		return 0, &Error{Binding: b, Err: fmt.Errorf("%w: empty value", ErrReferenceNotFound)}
	}

	name := fmt.Sprint(b.Value)
	key, ok := r.catalog.UniqueKeyOf(b.Target)
	if !ok {
		return 0, &Error{Binding: b, Err: fmt.Errorf("unsupported target type %q", b.Target)}
	}
	ep, ok := r.registry.Get(b.Target)
	if !ok {
		return 0, &Error{Binding: b, Err: fmt.Errorf("no endpoint for %q", b.Target)}
	}

	filter := netbox.Filter{key: name}
	for k, v := range b.Scope {
		filter[k] = v
	}

	flightKey := b.Target + "?" + filter.Encode()
	result, err, _ := r.group.Do(flightKey, func() (any, error) {
		rec, err := ep.Lookup(ctx, filter)
		if err != nil {
			return 0, err
		}
		if rec == nil {
			return 0, ErrReferenceNotFound
		}
		return rec.ID, nil
	})
	if err != nil {
		if errors.Is(err, netbox.ErrUnreachable) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return 0, err
		}
		return 0, &Error{Binding: b, Err: err}
	}
	return result.(int), nil
}

// ResolveRecord replaces every declared reference of rec with remote ids, in place.
// Values of type ID are taken as they are.
func (r *Resolver) ResolveRecord(ctx context.Context, rec *document.Record) error {
	d, ok := r.catalog.Lookup(rec.Tag)
	if !ok {
		return fmt.Errorf("unsupported entity type %q", rec.Tag)
	}

	for _, ref := range d.References {
		raw, ok := rec.Attributes.Get(ref.Field)
		if !ok || raw == nil {
			continue
		}

		scope, err := scopeFilter(rec, ref)
		if err != nil {
			return &Error{Binding: r.binding(rec, ref, raw, nil), Err: err}
		}

		if !ref.Many {
			id, err := r.Resolve(ctx, r.binding(rec, ref, raw, scope))
			if err != nil {
				return err
			}
			rec.Attributes.Set(ref.Field, id)
			continue
		}

		items, ok := raw.([]any)
		if !ok {
			items = []any{raw}
		}
		ids := make([]int, 0, len(items))
		for _, item := range items {
			id, err := r.Resolve(ctx, r.binding(rec, ref, item, scope))
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}
		rec.Attributes.Set(ref.Field, ids)
	}
	return nil
}

func (r *Resolver) binding(rec *document.Record, ref catalog.ReferenceField, value any, scope netbox.Filter) Binding {
	return Binding{
		Tag:    rec.Tag,
		Record: rec.Name,
		Field:  ref.Field,
		Target: ref.Target,
		Value:  value,
		Scope:  scope,
	}
}

// scopeFilter builds the lookup filter narrowing ref from rec's declared values. Names
// filter on the key itself, ID values on <key>_id.
func scopeFilter(rec *document.Record, ref catalog.ReferenceField) (netbox.Filter, error) {
	if len(ref.Scope) == 0 {
		return nil, nil
	}
	filter := netbox.Filter{}
	for key, source := range ref.Scope {
		v, ok := rec.Value(source)
		if !ok || v == nil {
			return nil, fmt.Errorf("%w: %s requires %s", ErrReferenceNotFound, ref.Field, source)
		}
		if id, ok := v.(ID); ok {
			filter[key+"_id"] = strconv.Itoa(int(id))
		} else {
			filter[key] = fmt.Sprint(v)
		}
	}
	return filter, nil
}
