package document

import "fmt"

// Record is one declared instance of an entity type.
type Record struct {
	// Tag is the entity type.
	Tag string
	// Name is the value of the type's unique key.
	Name string
	// Attributes are submitted to NetBox after transformation and resolution.
	Attributes *Attributes
	// Meta holds declared values that steer resolution but are not submitted.
	Meta map[string]any
}

// NewRecord creates a record with empty attributes.
func NewRecord(tag, name string) *Record {
	return &Record{
		Tag:        tag,
		Name:       name,
		Attributes: NewAttributes(),
		Meta:       map[string]any{},
	}
}

// Clone returns a deep enough copy for independent mutation of attributes and meta.
func (r *Record) Clone() *Record {
	c := &Record{
		Tag:        r.Tag,
		Name:       r.Name,
		Attributes: r.Attributes.Clone(),
		Meta:       make(map[string]any, len(r.Meta)),
	}
	for k, v := range r.Meta {
		c.Meta[k] = v
	}
	return c
}

// Value returns a declared value, checking Meta before Attributes.
func (r *Record) Value(key string) (any, bool) {
	if v, ok := r.Meta[key]; ok {
		return v, true
	}
	return r.Attributes.Get(key)
}

func (r *Record) String() string {
	return fmt.Sprintf("%s/%s", r.Tag, r.Name)
}

// Attributes is an insertion-ordered string keyed map.
type Attributes struct {
	keys   []string
	values map[string]any
}

// NewAttributes returns an empty set of attributes.
func NewAttributes() *Attributes {
	return &Attributes{values: map[string]any{}}
}

// Get returns the value stored under key.
func (a *Attributes) Get(key string) (any, bool) {
	v, ok := a.values[key]
	return v, ok
}

// Set stores value under key. A new key is appended to the order.
func (a *Attributes) Set(key string, value any) {
	if _, ok := a.values[key]; !ok {
		a.keys = append(a.keys, key)
	}
	a.values[key] = value
}

// Delete removes key and returns its former value.
func (a *Attributes) Delete(key string) (any, bool) {
	v, ok := a.values[key]
	if !ok {
		return nil, false
	}
	delete(a.values, key)
	for i, k := range a.keys {
		if k == key {
			a.keys = append(a.keys[:i:i], a.keys[i+1:]...)
			break
		}
	}
	return v, true
}

// Rename moves the value of from to to, keeping its position.
func (a *Attributes) Rename(from, to string) bool {
	v, ok := a.values[from]
	if !ok {
		return false
	}
	if _, exists := a.values[to]; exists {
		a.Delete(to)
	}
	delete(a.values, from)
	for i, k := range a.keys {
		if k == from {
			a.keys[i] = to
			break
		}
	}
	a.values[to] = v
	return true
}

// Keys returns the keys in declaration order.
func (a *Attributes) Keys() []string {
	out := make([]string, len(a.keys))
	copy(out, a.keys)
	return out
}

// Len returns the number of attributes.
func (a *Attributes) Len() int {
	return len(a.keys)
}

// Map returns a copy of the attributes as a plain map, ready to be encoded.
func (a *Attributes) Map() map[string]any {
	out := make(map[string]any, len(a.values))
	for k, v := range a.values {
		out[k] = v
	}
	return out
}

// Clone copies the attributes. Values are shared.
func (a *Attributes) Clone() *Attributes {
	c := &Attributes{
		keys:   make([]string, len(a.keys)),
		values: make(map[string]any, len(a.values)),
	}
	copy(c.keys, a.keys)
	for k, v := range a.values {
		c.values[k] = v
	}
	return c
}
