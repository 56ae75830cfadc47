// Package document turns declared seed documents into records.
//
// One document exists per entity type and is named after its tag: sites.yml holds the
// sites, devices.yml the devices, and so on. A document is either a mapping from instance
// name to attributes or a sequence of attribute mappings:
//
//	# mapping form: the key names the instance
//	sw1:
//	  site: dc1
//	  role: leaf
//
//	# sequence form: each item carries its unique key
//	- name: sw1
//	  site: dc1
//
// In mapping form the key fills the unique key when the entry does not declare it. In
// sequence form an entry without its unique key is skipped and reported in
// Document.Skipped.
//
// Attribute order is kept as declared. Documents are read from a Source: a local
// directory (DirSource) or an object storage bucket (BucketSource).
package document
