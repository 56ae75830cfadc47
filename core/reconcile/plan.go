package reconcile

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"nb-init/core/catalog"
	"nb-init/core/document"
)

// Stage is the work of one entity type.
type Stage struct {
	// Descriptor is the catalog entry of the type.
	Descriptor catalog.Descriptor

	// Document is the parsed document. Nil when Err is set.
	Document *document.Document

	// Err explains why the stage is skipped.
	Err error
}

// Plan is the ordered list of stages of a run.
type Plan struct {
	// Stages are in ascending rank.
	Stages []Stage

	// Unsupported lists document tags that have no catalog entry.
	Unsupported []string
}

// BuildPlan loads every document of the run and orders the stages by rank.
// It fails only when the source itself cannot be listed.
func BuildPlan(ctx context.Context, spec *Spec, opts Options) (*Plan, error) {
	cat := spec.Registry.Catalog()

	present, err := spec.Source.Tags(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	wanted := map[string]bool{}
	for _, tag := range opts.Tags {
		wanted[tag] = true
	}
	selected := func(tag string) bool {
		return len(wanted) == 0 || wanted[tag]
	}

	plan := &Plan{}
	for _, tag := range present {
		if _, ok := cat.Lookup(tag); !ok && selected(tag) {
			plan.Unsupported = append(plan.Unsupported, tag)
		}
	}
	for tag := range wanted {
		if _, ok := cat.Lookup(tag); !ok && !slices.Contains(plan.Unsupported, tag) {
			plan.Unsupported = append(plan.Unsupported, tag)
		}
	}
	cat.SortByRank(plan.Unsupported)

	for _, d := range cat.Ordered() {
		if !selected(d.Tag) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		stage := Stage{Descriptor: d}
		if slices.Contains(present, d.Tag) {
			stage.Document, stage.Err = document.Load(ctx, spec.Source, d.Tag, d.UniqueKey)
		} else {
			stage.Err = fmt.Errorf("%w: %s", ErrDocumentMissing, d.Tag)
		}
		if stage.Err != nil && !errors.Is(stage.Err, ErrDocumentMissing) && !errors.Is(stage.Err, ErrDocumentMalformed) {
			// Read failures other than absence or shape are reported as malformed.
			stage.Err = fmt.Errorf("%w: %w", ErrDocumentMalformed, stage.Err)
		}
		plan.Stages = append(plan.Stages, stage)
	}

	return plan, nil
}

// Records counts the records declared across all stages.
func (p *Plan) Records() int {
	n := 0
	for _, s := range p.Stages {
		if s.Document != nil {
			n += len(s.Document.Records)
		}
	}
	return n
}
