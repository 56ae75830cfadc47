// Package resolve turns declared names into NetBox ids.
//
// Declared records refer to other objects by their unique key ("site: dc1"). Before a
// record is submitted, every reference attribute listed in its catalog descriptor is
// replaced by the id of the referenced object, found with a filtered lookup on the
// target's endpoint. Integer values are taken as ids already. List attributes resolve
// element by element.
//
// Nothing is cached between calls: dependents always see what NetBox holds. Concurrent
// identical lookups from parallel workers are collapsed with singleflight.
package resolve
