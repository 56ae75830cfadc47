package seed

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"nb-init/core/database"
	"nb-init/core/document"
	"nb-init/core/journal"
	"nb-init/core/netbox"
	"nb-init/core/netbox/mocks"
	"nb-init/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeSeed(t *testing.T, files map[string]string) document.Source {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return document.DirSource{Dir: dir}
}

// fakeConnector hands out capability and counts releases.
func fakeConnector(capability netbox.Capability, released *atomic.Int32) Connector {
	return func(context.Context) (netbox.Capability, func(context.Context), error) {
		return capability, func(context.Context) { released.Add(1) }, nil
	}
}

func newCreatingCapability() *mocks.Capability {
	m := new(mocks.Capability)
	m.On("Lookup", mock.Anything, "extras/tags", mock.Anything).Return(nil, nil)
	m.On("Create", mock.Anything, "extras/tags", mock.Anything).Return(&netbox.Record{ID: 7}, nil)
	return m
}

func setupJournal(t *testing.T) *journal.Journal {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	j := journal.New(db)
	require.NoError(t, j.Migrate(context.Background()))
	return j
}

func TestService_Run(t *testing.T) {
	var released atomic.Int32
	capability := newCreatingCapability()
	src := writeSeed(t, map[string]string{"tags.yml": "prod:\n  color: ff0000\n"})

	svc := NewService(fakeConnector(capability, &released), src, nil, reconcile.Options{Tags: []string{"tags"}}, zap.NewNop())
	defer svc.Close()

	report, err := svc.Run(context.Background(), reconcile.Options{Tags: []string{"tags"}})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Summary.Created)
	assert.Equal(t, int32(1), released.Load())

	capability.AssertCalled(t, "Create", mock.Anything, "extras/tags", map[string]any{"name": "prod", "color": "ff0000", "slug": "prod"})
}

func TestService_RunConnectFailure(t *testing.T) {
	connect := func(context.Context) (netbox.Capability, func(context.Context), error) {
		return nil, nil, netbox.ErrUnreachable
	}
	svc := NewService(connect, writeSeed(t, nil), nil, reconcile.Options{}, zap.NewNop())
	defer svc.Close()

	report, err := svc.Run(context.Background(), reconcile.Options{})
	assert.ErrorIs(t, err, netbox.ErrUnreachable)
	assert.Nil(t, report)
}

func TestService_StartRecordsLastReport(t *testing.T) {
	var released atomic.Int32
	src := writeSeed(t, map[string]string{"tags.yml": "prod: {}\n"})
	j := setupJournal(t)

	svc := NewService(fakeConnector(newCreatingCapability(), &released), src, j, reconcile.Options{Tags: []string{"tags"}}, zap.NewNop())
	defer svc.Close()

	id, err := svc.Start(RunRequest{})
	require.NoError(t, err)
	svc.Wait()

	running, last := svc.Status()
	assert.Empty(t, running)
	require.NotNil(t, last)
	assert.Equal(t, id, last.RunID)
	assert.Equal(t, 1, last.Summary.Created)

	run, err := svc.GetRun(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, journal.RunStatusFinished, run.Status)
	require.Len(t, run.Items, 1)
	assert.Equal(t, "prod", run.Items[0].Name)

	runs, err := svc.Runs(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestService_StartRejectsConcurrentRun(t *testing.T) {
	gate := make(chan struct{})
	connect := func(ctx context.Context) (netbox.Capability, func(context.Context), error) {
		<-gate
		return nil, nil, errors.New("no netbox")
	}
	svc := NewService(connect, writeSeed(t, nil), nil, reconcile.Options{}, zap.NewNop())
	defer svc.Close()

	id, err := svc.Start(RunRequest{})
	require.NoError(t, err)

	_, err = svc.Start(RunRequest{})
	assert.ErrorIs(t, err, ErrRunInProgress)

	running, _ := svc.Status()
	assert.Equal(t, id, running)

	close(gate)
	svc.Wait()

	_, last := svc.Status()
	require.NotNil(t, last)
	assert.Equal(t, "no netbox", last.Error)
}

func TestService_JournalDisabled(t *testing.T) {
	svc := NewService(nil, writeSeed(t, nil), nil, reconcile.Options{}, zap.NewNop())
	defer svc.Close()

	_, err := svc.Runs(context.Background(), 10)
	assert.ErrorIs(t, err, ErrJournalDisabled)
	_, err = svc.GetRun(context.Background(), "x")
	assert.ErrorIs(t, err, ErrJournalDisabled)
}

func TestService_CloseReleasesJournal(t *testing.T) {
	j := setupJournal(t)
	svc := NewService(nil, writeSeed(t, nil), j, reconcile.Options{}, zap.NewNop())

	svc.Close()
	_, err := j.ListRuns(context.Background(), 10)
	assert.Error(t, err)
}

func TestRunRequest_Apply(t *testing.T) {
	defaults := reconcile.Options{Workers: 2, Tags: []string{"sites"}}
	dry := true

	opts := RunRequest{}.apply(defaults)
	assert.Equal(t, defaults, opts)

	opts = RunRequest{DryRun: &dry, Workers: 5, Tags: []string{"racks"}}.apply(defaults)
	assert.True(t, opts.DryRun)
	assert.Equal(t, 5, opts.Workers)
	assert.Equal(t, []string{"racks"}, opts.Tags)
}
