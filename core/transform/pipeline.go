package transform

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"nb-init/core/catalog"
	"nb-init/core/document"
	"nb-init/core/nametemplate"
)

// ErrTransform marks a record that could not be adapted for submission.
var ErrTransform = errors.New("transform failed")

// PrimaryAddress asks for Address to become the primary address of Device once it exists.
type PrimaryAddress struct {
	Address string
	Device  string
}

// Child is a record declared inside its parent. ParentField is set to the parent's
// remote id before the child is reconciled.
type Child struct {
	Record      *document.Record
	ParentField string
}

// Result is the outcome of Transform.
type Result struct {
	// Record is the transformed copy of the input record.
	Record *document.Record
	// Children are reconciled right after the parent.
	Children []Child
	// Deferrals are primary addresses to assign once both sides exist.
	Deferrals []PrimaryAddress
}

// Func transforms a record in place.
type Func func(res *Result) error

// FinalizeFunc adjusts a record whose references have been resolved.
type FinalizeFunc func(rec *document.Record) error

// Pipeline holds the per-tag transforms.
type Pipeline struct {
	catalog    *catalog.Catalog
	transforms map[string]Func
	finalizers map[string]FinalizeFunc
}

// New returns a pipeline with the NetBox transforms registered.
func New(cat *catalog.Catalog) *Pipeline {
	p := &Pipeline{
		catalog:    cat,
		transforms: map[string]Func{},
		finalizers: map[string]FinalizeFunc{},
	}

	p.Register("custom_fields", customFields, nil)
	p.Register("device_types", deviceTypes, nil)
	p.Register("devices", devices, nil)
	p.Register("ip_addresses", ipAddresses, finalizeIPAddress)
	p.Register("cables", nil, finalizeCable)

	return p
}

// Register sets the transform and finalizer of tag. Either may be nil.
func (p *Pipeline) Register(tag string, fn Func, finalize FinalizeFunc) {
	if fn != nil {
		p.transforms[tag] = fn
	}
	if finalize != nil {
		p.finalizers[tag] = finalize
	}
}

// Expand returns one record per name generated from rec's unique key. Records of
// non-templated types, and names without ranges, are returned as is.
func (p *Pipeline) Expand(rec *document.Record) ([]*document.Record, error) {
	d, ok := p.catalog.Lookup(rec.Tag)
	if !ok || !d.Templated || !nametemplate.HasRanges(rec.Name) {
		return []*document.Record{rec}, nil
	}

	names, err := nametemplate.Expand(rec.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrTransform, rec, err)
	}

	out := make([]*document.Record, 0, len(names))
	for _, name := range names {
		c := rec.Clone()
		c.Name = name
		c.Attributes.Set(d.UniqueKey, name)
		out = append(out, c)
	}
	return out, nil
}

// Transform returns a transformed copy of rec. rec itself is not modified.
func (p *Pipeline) Transform(rec *document.Record) (*Result, error) {
	res := &Result{Record: rec.Clone()}

	if d, ok := p.catalog.Lookup(rec.Tag); ok && d.Slugged {
		defaultSlug(res.Record)
	}

	if fn, ok := p.transforms[rec.Tag]; ok {
		if err := fn(res); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrTransform, rec, err)
		}
	}
	return res, nil
}

// Finalize runs the post-resolution step of rec's tag, if any.
func (p *Pipeline) Finalize(rec *document.Record) error {
	fn, ok := p.finalizers[rec.Tag]
	if !ok {
		return nil
	}
	if err := fn(rec); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrTransform, rec, err)
	}
	return nil
}

var nonSlug = regexp.MustCompile(`[^a-z0-9_]+`)

// Slugify lower-cases s and replaces every run of other characters with "-".
func Slugify(s string) string {
	slug := nonSlug.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(slug, "-")
}

func defaultSlug(rec *document.Record) {
	if _, ok := rec.Attributes.Get("slug"); ok {
		return
	}
	rec.Attributes.Set("slug", Slugify(rec.Name))
}
