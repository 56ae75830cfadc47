package seed

import (
	"context"
	"errors"
	"sync"
	"time"

	"nb-init/core/catalog"
	"nb-init/core/document"
	"nb-init/core/endpoint"
	"nb-init/core/journal"
	"nb-init/core/netbox"
	"nb-init/core/reconcile"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrRunInProgress is returned by Start while another run is active.
	ErrRunInProgress = errors.New("a seed run is already in progress")
	// ErrJournalDisabled is returned by history queries without a journal.
	ErrJournalDisabled = errors.New("run journal is disabled")
)

// Connector opens the NetBox capability of one run. Release is called once the run ends.
type Connector func(ctx context.Context) (capability netbox.Capability, release func(context.Context), err error)

// SessionConnector opens an authenticated session per run and closes it afterwards.
func SessionConnector(cfg netbox.Config, logger *zap.Logger) Connector {
	return func(ctx context.Context) (netbox.Capability, func(context.Context), error) {
		sess, err := netbox.Open(ctx, cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		return sess.Client, sess.Close, nil
	}
}

// Service runs seeds synchronously for the CLI and asynchronously for the HTTP API.
type Service struct {
	connect  Connector
	source   document.Source
	catalog  *catalog.Catalog
	journal  *journal.Journal
	defaults reconcile.Options
	logger   *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	running string
	last    *reconcile.Report
}

// NewService creates a seed service. j may be nil when the journal is disabled.
func NewService(connect Connector, source document.Source, j *journal.Journal, defaults reconcile.Options, logger *zap.Logger) *Service {
	ctx, cancel := context.WithCancel(context.Background())
	return &Service{
		connect:  connect,
		source:   source,
		catalog:  catalog.Default(),
		journal:  j,
		defaults: defaults,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Run connects to NetBox and reconciles every document. The connection is released on
// every exit path.
func (s *Service) Run(ctx context.Context, opts reconcile.Options) (*reconcile.Report, error) {
	capability, release, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer release(context.WithoutCancel(ctx))

	spec := &reconcile.Spec{
		Registry: endpoint.NewRegistry(capability, s.catalog),
		Source:   s.source,
	}
	if s.journal != nil {
		spec.Recorder = s.journal
	}
	return reconcile.Run(ctx, spec, s.logger, opts)
}

// Start launches a run in the background and returns its id.
func (s *Service) Start(req RunRequest) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running != "" {
		return "", ErrRunInProgress
	}

	opts := req.apply(s.defaults)
	opts.RunID = uuid.NewString()
	s.running = opts.RunID

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		started := time.Now()
		report, err := s.Run(s.ctx, opts)
		if report == nil {
			report = &reconcile.Report{
				RunID:      opts.RunID,
				DryRun:     opts.DryRun,
				StartedAt:  started,
				FinishedAt: time.Now(),
				Stages:     []reconcile.StageResult{},
				Items:      []reconcile.ItemResult{},
			}
		}
		if err != nil {
			s.logger.Error("Seed run failed", zap.String("run_id", opts.RunID), zap.Error(err))
			report.Error = err.Error()
		}

		s.mu.Lock()
		s.last = report
		s.running = ""
		s.mu.Unlock()
	}()

	return opts.RunID, nil
}

// Status returns the id of the active run, if any, and the last finished report.
func (s *Service) Status() (string, *reconcile.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running, s.last
}

// Wait blocks until background runs have finished.
func (s *Service) Wait() {
	s.wg.Wait()
}

// Close cancels background runs, waits for them and closes the journal.
func (s *Service) Close() {
	s.cancel()
	s.wg.Wait()
	if err := s.journal.Close(); err != nil {
		s.logger.Warn("Failed to close journal", zap.Error(err))
	}
}

// Runs lists journaled runs, most recent first.
func (s *Service) Runs(ctx context.Context, limit int) ([]journal.Run, error) {
	if s.journal == nil {
		return nil, ErrJournalDisabled
	}
	return s.journal.ListRuns(ctx, limit)
}

// GetRun returns a journaled run with its items.
func (s *Service) GetRun(ctx context.Context, id string) (*journal.Run, error) {
	if s.journal == nil {
		return nil, ErrJournalDisabled
	}
	return s.journal.GetRun(ctx, id)
}

// Catalog returns the entity types in processing order.
func (s *Service) Catalog() []catalog.Descriptor {
	return s.catalog.Ordered()
}
