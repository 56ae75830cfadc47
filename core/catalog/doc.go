// Package catalog describes every entity type the seeder knows about.
//
// Each Descriptor carries the processing rank (dependency order), the attribute that
// uniquely identifies an instance, the NetBox collection path, the attributes that refer
// to other entity types and the attributes that narrow a get-or-create lookup.
//
// The catalog is exhaustive by construction: a tag that is not registered here is not
// supported, and callers must skip it rather than guess an endpoint.
//
// # Ordering
//
// Ranks follow the order in which the types are registered in Default. A reference to
// another type must target a strictly lower rank, which Validate enforces. A reference to
// the same type (a tree parent such as a region's parent region) is allowed; those stages
// are processed in declaration order by a single worker.
package catalog
