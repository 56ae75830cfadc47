// Package seed exposes NetBox seed runs to the CLI and over HTTP.
//
// The Service opens a NetBox connection per run through a Connector, reconciles every
// document of its source and releases the connection when the run ends. Runs started
// over HTTP execute in the background, one at a time; their items are written to the
// run journal when one is configured.
//
// # HTTP Endpoints
//
//   - POST /seed : Starts a run (body may override dry_run, workers, tags).
//   - GET /seed/status : Active run id and the last finished report.
//   - GET /seed/runs : Journaled runs (supports ?limit=).
//   - GET /seed/runs/:id : One journaled run with its items.
//   - GET /seed/catalog : Supported entity types in processing order.
package seed
