package journal

import (
	"context"
	"errors"
	"fmt"

	"nb-init/core/database"
	"nb-init/core/reconcile"

	"gorm.io/gorm"
)

// ErrRunNotFound is returned by GetRun for unknown ids.
var ErrRunNotFound = errors.New("run not found")

// Journal stores runs in a database.
type Journal struct {
	db *gorm.DB
}

var _ reconcile.Recorder = (*Journal)(nil)

// New creates a journal on db. Call Migrate before first use.
func New(db *gorm.DB) *Journal {
	return &Journal{db: db}
}

// Migrate creates or extends the journal tables and checks that they hold the columns
// the journal writes.
func (j *Journal) Migrate(ctx context.Context) error {
	db := j.db.WithContext(ctx)
	if err := db.AutoMigrate(&Run{}, &Item{}); err != nil {
		return fmt.Errorf("failed to migrate journal: %w", err)
	}

	checks := map[string][]string{
		Run{}.TableName():  {"id", "status", "started_at", "finished_at", "failed"},
		Item{}.TableName(): {"run_id", "tag", "name", "status", "reason"},
	}
	for table, want := range checks {
		missing, err := database.MissingColumns(db, table, want)
		if err != nil {
			return err
		}
		if len(missing) > 0 {
			return fmt.Errorf("journal table %s lacks columns %v", table, missing)
		}
	}
	return nil
}

// Close releases the underlying database connection. A nil journal is a no-op.
func (j *Journal) Close() error {
	if j == nil {
		return nil
	}
	sqlDB, err := j.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// RunStarted implements reconcile.Recorder.
func (j *Journal) RunStarted(ctx context.Context, report *reconcile.Report) error {
	run := Run{
		ID:        report.RunID,
		DryRun:    report.DryRun,
		Status:    RunStatusRunning,
		StartedAt: report.StartedAt,
	}
	if err := j.db.WithContext(ctx).Create(&run).Error; err != nil {
		return fmt.Errorf("failed to journal run %s: %w", report.RunID, err)
	}
	return nil
}

// ItemRecorded implements reconcile.Recorder.
func (j *Journal) ItemRecorded(ctx context.Context, runID string, item reconcile.ItemResult) error {
	row := Item{
		RunID:    runID,
		Tag:      item.Tag,
		Name:     item.Name,
		Status:   string(item.Status),
		RemoteID: item.ID,
		Reason:   item.Reason,
	}
	if err := j.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to journal item %s/%s: %w", item.Tag, item.Name, err)
	}
	return nil
}

// RunFinished implements reconcile.Recorder.
func (j *Journal) RunFinished(ctx context.Context, report *reconcile.Report) error {
	status := RunStatusFinished
	if report.Error != "" {
		status = RunStatusAborted
	}
	finished := report.FinishedAt
	s := report.Summary

	err := j.db.WithContext(ctx).Model(&Run{ID: report.RunID}).Updates(map[string]any{
		"status":       status,
		"finished_at":  &finished,
		"created":      s.Created,
		"present":      s.Present,
		"would_create": s.WouldCreate,
		"updated":      s.Updated,
		"would_update": s.WouldUpdate,
		"skipped":      s.Skipped,
		"failed":       s.Failed,
		"error":        report.Error,
	}).Error
	if err != nil {
		return fmt.Errorf("failed to journal end of run %s: %w", report.RunID, err)
	}
	return nil
}

// ListRuns returns the most recent runs first, without items.
func (j *Journal) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	var runs []Run
	if err := j.db.WithContext(ctx).Order("started_at DESC").Limit(limit).Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

// GetRun returns a run with its items in recording order.
func (j *Journal) GetRun(ctx context.Context, id string) (*Run, error) {
	var run Run
	err := j.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&run, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run %s: %w", id, err)
	}
	return &run, nil
}
