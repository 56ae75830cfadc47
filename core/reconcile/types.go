package reconcile

import (
	"errors"
	"time"

	"nb-init/core/document"
	"nb-init/core/endpoint"
	"nb-init/core/transform"
)

var (
	// ErrUnsupportedEntityType is reported for documents whose tag has no catalog entry.
	ErrUnsupportedEntityType = errors.New("unsupported entity type")
	// ErrDocumentMissing is reported when a supported type has no document.
	ErrDocumentMissing = document.ErrMissing
	// ErrDocumentMalformed is reported when a document is empty or of the wrong shape.
	ErrDocumentMalformed = document.ErrMalformed
	// ErrCreateFailed is reported when NetBox rejects a create.
	ErrCreateFailed = errors.New("create failed")
	// ErrUpdateFailed is reported when NetBox rejects the primary address update.
	ErrUpdateFailed = errors.New("update failed")
)

// Status is the outcome of one item.
type Status string

const (
	// StatusCreated means the object did not exist and was created.
	StatusCreated Status = "created"
	// StatusPresent means a matching object already existed; nothing was sent.
	StatusPresent Status = "present"
	// StatusWouldCreate is the dry-run counterpart of StatusCreated.
	StatusWouldCreate Status = "would create"
	// StatusUpdated means a device got its primary address assigned.
	StatusUpdated Status = "updated"
	// StatusWouldUpdate is the dry-run counterpart of StatusUpdated.
	StatusWouldUpdate Status = "would update"
	// StatusSkipped means the item was not processed (bad declaration).
	StatusSkipped Status = "skipped"
	// StatusFailed means processing was attempted and failed.
	StatusFailed Status = "failed"
)

// Spec bundles the collaborators of a run.
type Spec struct {
	// Registry maps tags to NetBox endpoints. Its catalog drives the ordering.
	Registry *endpoint.Registry

	// Source provides the declared documents.
	Source document.Source

	// Pipeline transforms records. If nil, transform.New is used.
	Pipeline *transform.Pipeline

	// Recorder receives run progress. Optional.
	Recorder Recorder
}

// Options controls a run.
type Options struct {
	// RunID identifies the run. Generated when empty.
	RunID string

	// Workers bounds concurrent records within a stage. Values below 1 mean 1.
	Workers int

	// DryRun performs lookups only and reports what would be created.
	DryRun bool

	// Tags restricts the run to these entity types. Empty means all.
	Tags []string
}

// ItemResult is the outcome of one record or primary address assignment.
type ItemResult struct {
	// Tag is the entity type.
	Tag string `json:"tag"`

	// Name is the unique key value of the record.
	Name string `json:"name"`

	// Status is the outcome.
	Status Status `json:"status"`

	// ID is the remote id, when known.
	ID int `json:"id,omitempty"`

	// Reason explains skipped and failed items.
	Reason string `json:"reason,omitempty"`

	// Err is the underlying error of skipped and failed items.
	Err error `json:"-"`
}

// StageResult describes how the document of one entity type was handled.
type StageResult struct {
	// Tag is the entity type.
	Tag string `json:"tag"`

	// Source is where the document was read from.
	Source string `json:"source,omitempty"`

	// Records counts the declared records, before template expansion.
	Records int `json:"records"`

	// Skipped is set when the whole document was skipped.
	Skipped bool `json:"skipped"`

	// Reason explains a skipped stage.
	Reason string `json:"reason,omitempty"`
}

// Summary provides aggregate counts of a run.
type Summary struct {
	Created     int `json:"created"`
	Present     int `json:"present"`
	WouldCreate int `json:"would_create"`
	Updated     int `json:"updated"`
	WouldUpdate int `json:"would_update"`
	Skipped     int `json:"skipped"`
	Failed      int `json:"failed"`
}

func (s *Summary) add(status Status) {
	switch status {
	case StatusCreated:
		s.Created++
	case StatusPresent:
		s.Present++
	case StatusWouldCreate:
		s.WouldCreate++
	case StatusUpdated:
		s.Updated++
	case StatusWouldUpdate:
		s.WouldUpdate++
	case StatusSkipped:
		s.Skipped++
	case StatusFailed:
		s.Failed++
	}
}

// Report is the result of a run.
type Report struct {
	// RunID identifies the run.
	RunID string `json:"run_id"`

	// DryRun is set when nothing was written.
	DryRun bool `json:"dry_run"`

	// StartedAt and FinishedAt bound the run.
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	// Stages lists every entity type considered, in processing order.
	Stages []StageResult `json:"stages"`

	// Items lists per-record outcomes in completion order.
	Items []ItemResult `json:"items"`

	// Summary aggregates Items.
	Summary Summary `json:"summary"`

	// Error is set when the run was aborted.
	Error string `json:"error,omitempty"`
}

// HasFailures reports whether any item failed or was skipped.
func (r *Report) HasFailures() bool {
	return r.Summary.Failed > 0 || r.Summary.Skipped > 0
}
