package seed

import (
	"nb-init/core/catalog"
	"nb-init/core/reconcile"
)

// RunRequest overrides the configured run options. Zero values keep the defaults.
type RunRequest struct {
	DryRun  *bool    `json:"dry_run,omitempty"`
	Workers int      `json:"workers,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}

func (r RunRequest) apply(defaults reconcile.Options) reconcile.Options {
	opts := defaults
	if r.DryRun != nil {
		opts.DryRun = *r.DryRun
	}
	if r.Workers > 0 {
		opts.Workers = r.Workers
	}
	if len(r.Tags) > 0 {
		opts.Tags = r.Tags
	}
	return opts
}

// RunAccepted is returned when a run is started.
type RunAccepted struct {
	RunID string `json:"run_id"`
}

// StatusResponse describes the active run and the last finished one.
type StatusResponse struct {
	Running bool              `json:"running"`
	RunID   string            `json:"run_id,omitempty"`
	Last    *reconcile.Report `json:"last,omitempty"`
}

// CatalogEntry describes one entity type.
type CatalogEntry struct {
	Tag        string   `json:"tag"`
	Rank       int      `json:"rank"`
	Path       string   `json:"path"`
	UniqueKey  string   `json:"unique_key"`
	References []string `json:"references,omitempty"`
}

func newCatalogEntry(d catalog.Descriptor) CatalogEntry {
	entry := CatalogEntry{Tag: d.Tag, Rank: d.Rank, Path: d.Path, UniqueKey: d.UniqueKey}
	for _, ref := range d.References {
		entry.References = append(entry.References, ref.Field+"->"+ref.Target)
	}
	return entry
}
