package cmd

import (
	"context"
	"fmt"

	"nb-init/core/config"
	"nb-init/core/database"
	"nb-init/core/document"
	"nb-init/core/journal"
	"nb-init/core/reconcile"
	"nb-init/core/storage"

	"go.uber.org/zap"
)

// newSource builds the document source selected by seed.source.
func newSource(cfg *config.Config) (document.Source, error) {
	switch cfg.Seed.Source {
	case reconcile.SourceDir, "":
		return document.DirSource{Dir: cfg.Seed.Dir}, nil
	case reconcile.SourceBucket:
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		return document.BucketSource{Client: client, Bucket: cfg.Storage.Bucket, Prefix: cfg.Seed.Prefix}, nil
	default:
		return nil, fmt.Errorf("unknown seed source %q (want %s or %s)", cfg.Seed.Source, reconcile.SourceDir, reconcile.SourceBucket)
	}
}

// openJournal connects the run journal when enabled. On failure it logs a warning
// and returns nil. The seed service closes the journal it is given.
func openJournal(ctx context.Context, cfg *config.Config, logg *zap.Logger) *journal.Journal {
	if !cfg.Database.Enabled {
		return nil
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		logg.Warn("Optional journal database connection failed", zap.Error(err))
		return nil
	}

	j := journal.New(db)
	if err := j.Migrate(ctx); err != nil {
		logg.Warn("Journal migration failed", zap.Error(err))
		if cerr := j.Close(); cerr != nil {
			logg.Warn("Failed to close journal database", zap.Error(cerr))
		}
		return nil
	}
	logg.Info("Run journal enabled", zap.String("driver", cfg.Database.Driver))
	return j
}
