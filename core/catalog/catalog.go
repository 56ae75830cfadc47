package catalog

import (
	"fmt"
	"sort"
	"sync"
)

// DefaultUniqueKey is the identifying attribute of most entity types.
const DefaultUniqueKey = "name"

// ReferenceField is an attribute whose declared value names an object of another type.
type ReferenceField struct {
	// Field is the attribute name in the declared record.
	Field string
	// Target is the tag of the referenced entity type.
	Target string
	// Many is set when the attribute holds a list of names.
	Many bool
	// Scope narrows the lookup of the target: filter key -> declared attribute supplying
	// the value. Used for objects that are only unique within a parent, e.g. an interface
	// within its device.
	Scope map[string]string
}

// Descriptor is the static metadata of one entity type.
type Descriptor struct {
	// Tag names the type and its document, e.g. "devices" for devices.yml.
	Tag string
	// Rank is the processing position; lower ranks are reconciled first.
	Rank int
	// UniqueKey is the attribute identifying an instance.
	UniqueKey string
	// Path is the NetBox collection path relative to /api.
	Path string
	// References lists the attributes resolved to remote ids before submission.
	References []ReferenceField
	// Scope lists reference attributes that are part of the identity of an instance.
	// Their resolved ids are added to the get-or-create lookup as <attr>_id.
	Scope []string
	// Slugged types get a slug derived from the unique key when none is declared.
	Slugged bool
	// Templated types accept a name template in the unique key, expanded into one
	// record per generated name.
	Templated bool
}

// Reference returns the reference declared for field.
func (d Descriptor) Reference(field string) (ReferenceField, bool) {
	for _, ref := range d.References {
		if ref.Field == field {
			return ref, true
		}
	}
	return ReferenceField{}, false
}

// SelfReferencing reports whether the type refers to itself (tree parents).
func (d Descriptor) SelfReferencing() bool {
	for _, ref := range d.References {
		if ref.Target == d.Tag {
			return true
		}
	}
	return false
}

// Catalog is an immutable, rank-ordered set of descriptors.
type Catalog struct {
	ordered []Descriptor
	byTag   map[string]Descriptor
}

// New builds a catalog from descriptors, assigning ranks by position.
// A descriptor without a UniqueKey uses DefaultUniqueKey.
func New(descriptors ...Descriptor) (*Catalog, error) {
	c := &Catalog{
		ordered: make([]Descriptor, 0, len(descriptors)),
		byTag:   make(map[string]Descriptor, len(descriptors)),
	}

	for i, d := range descriptors {
		if d.Tag == "" {
			return nil, fmt.Errorf("descriptor %d has no tag", i)
		}
		if _, dup := c.byTag[d.Tag]; dup {
			return nil, fmt.Errorf("duplicate entity type %q", d.Tag)
		}
		if d.UniqueKey == "" {
			d.UniqueKey = DefaultUniqueKey
		}
		d.Rank = i + 1
		c.ordered = append(c.ordered, d)
		c.byTag[d.Tag] = d
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Lookup returns the descriptor of tag. ok is false for unsupported types.
func (c *Catalog) Lookup(tag string) (Descriptor, bool) {
	d, ok := c.byTag[tag]
	return d, ok
}

// RankOf returns the processing rank of tag.
func (c *Catalog) RankOf(tag string) (int, bool) {
	d, ok := c.byTag[tag]
	return d.Rank, ok
}

// UniqueKeyOf returns the identifying attribute of tag.
func (c *Catalog) UniqueKeyOf(tag string) (string, bool) {
	d, ok := c.byTag[tag]
	return d.UniqueKey, ok
}

// Ordered returns the descriptors in ascending rank.
func (c *Catalog) Ordered() []Descriptor {
	out := make([]Descriptor, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// Tags returns the tags in ascending rank.
func (c *Catalog) Tags() []string {
	tags := make([]string, len(c.ordered))
	for i, d := range c.ordered {
		tags[i] = d.Tag
	}
	return tags
}

// Validate checks that every reference targets a known type of strictly lower rank,
// or the type itself.
func (c *Catalog) Validate() error {
	for _, d := range c.ordered {
		for _, ref := range d.References {
			target, ok := c.byTag[ref.Target]
			if !ok {
				return fmt.Errorf("%s.%s references unknown type %q", d.Tag, ref.Field, ref.Target)
			}
			if target.Tag != d.Tag && target.Rank >= d.Rank {
				return fmt.Errorf("%s (rank %d) references %s (rank %d) through %s: target must rank lower",
					d.Tag, d.Rank, target.Tag, target.Rank, ref.Field)
			}
		}
		for _, attr := range d.Scope {
			if _, ok := d.Reference(attr); !ok {
				return fmt.Errorf("%s scope attribute %q is not a reference", d.Tag, attr)
			}
		}
	}
	return nil
}

// SortByRank sorts tags in place by rank; unknown tags sort last, alphabetically.
func (c *Catalog) SortByRank(tags []string) {
	sort.SliceStable(tags, func(i, j int) bool {
		ri, iok := c.RankOf(tags[i])
		rj, jok := c.RankOf(tags[j])
		switch {
		case iok && jok:
			return ri < rj
		case iok != jok:
			return iok
		default:
			return tags[i] < tags[j]
		}
	})
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the NetBox catalog. It is built once and shared read-only.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := New(netboxDescriptors()...)
		if err != nil {
			panic(fmt.Sprintf("invalid built-in catalog: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}
