// Package reconcile converges NetBox toward a set of declared documents.
//
// A run only creates what is missing. It never updates or deletes existing objects,
// with one exception: a device's primary address, which can only be assigned once both
// the device and the address exist.
//
// # Architecture
//
// 1. Plan: BuildPlan lists the documents of the Source, flags tags without a catalog
// entry as unsupported, and loads one Stage per catalog entry in ascending rank.
//
// 2. Stages: a stage is a barrier. Every record of a stage is finished before the next
// stage starts, so references to lower ranks always resolve against objects that
// already exist. Records within a stage run on a bounded errgroup; stages of
// self-referencing types (regions, locations, ...) run on a single worker so parents
// declared earlier exist before their children.
//
// 3. Records: each record is expanded (name templates), transformed, resolved
// (names to ids), finalized, then looked up by its unique key and scope. A match is
// reported "present"; otherwise the record is created. Children declared inside a
// record (interface templates of a device type) are reconciled right after it.
//
// 4. Primary addresses: a device's primary address is kept in a DeferralStore. When the
// address is created or found present, the entry is taken and the device updated if
// its primary_ip4 or primary_ip6 differs. Entries left after the last stage are
// resolved against addresses that already exist remotely.
//
// # Failures
//
// Per-record failures (unresolved references, rejected creates, transform errors) are
// reported as items and never cross the record boundary. A NetBox transport failure
// (netbox.ErrUnreachable) or a cancelled context aborts the run.
//
// # Usage Example
//
//	spec := &reconcile.Spec{
//	    Registry: endpoint.NewRegistry(session.Client, catalog.Default()),
//	    Source:   document.DirSource{Dir: "./seed"},
//	}
//	report, err := reconcile.Run(ctx, spec, logger, reconcile.Options{Workers: 4})
package reconcile
