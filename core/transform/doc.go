// Package transform adapts declared records to what the NetBox API accepts.
//
// A Pipeline runs in three places around reference resolution:
//
//   - Expand fans out a record whose unique key holds a name template, such as
//     "ge-0/0/[0-47]", into one record per generated name.
//   - Transform runs before resolution. It renames attributes, moves values that only
//     steer resolution into Record.Meta, splits nested child records off the parent and
//     emits primary-address deferrals.
//   - Finalize runs after resolution, when references hold remote ids, and builds
//     attributes that need those ids (cable terminations, assigned object types).
//
// Tags without a registered transform pass through unchanged apart from slug
// defaulting for slugged types.
//
// Every failure wraps ErrTransform; the record is skipped and the run continues.
package transform
