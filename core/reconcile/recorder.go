package reconcile

import "context"

// Recorder receives the progress of a run, e.g. to persist it.
// Errors returned by a Recorder are logged and never stop the run.
type Recorder interface {
	// RunStarted is called once before the first stage.
	RunStarted(ctx context.Context, report *Report) error

	// ItemRecorded is called for every item outcome, possibly from several workers.
	ItemRecorded(ctx context.Context, runID string, item ItemResult) error

	// RunFinished is called once with the final report, including aborted runs.
	RunFinished(ctx context.Context, report *Report) error
}
