// Package journal persists seeding runs and their per-item outcomes.
//
// Journal implements reconcile.Recorder on top of GORM, so any database opened by
// core/database (MySQL or SQLite) can keep the history of runs. The HTTP API reads it
// back to list runs and show their items.
//
// # Tables
//
//   - nb_init_runs: one row per run, with the summary counters.
//   - nb_init_items: one row per item outcome, keyed by run id.
//
// # Usage
//
//	j := journal.New(db)
//	if err := j.Migrate(ctx); err != nil {
//	    return err
//	}
//	spec.Recorder = j
package journal
