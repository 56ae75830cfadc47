// Package utils provides the value conversions shared by the document, resolution and
// NetBox packages, for values decoded from YAML or JSON.
package utils
