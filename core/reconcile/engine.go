package reconcile

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"nb-init/core/catalog"
	"nb-init/core/document"
	"nb-init/core/netbox"
	"nb-init/core/resolve"
	"nb-init/core/transform"
	"nb-init/core/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Run reconciles every declared document of spec.Source into NetBox, in rank order.
//
// Per-record failures are reported in the returned Report and never stop the run. The
// run is aborted when NetBox becomes unreachable or ctx is done; the partial report is
// returned together with that error.
func Run(ctx context.Context, spec *Spec, logger *zap.Logger, opts Options) (*Report, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.RunID == "" {
		opts.RunID = uuid.NewString()
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}

	pipeline := spec.Pipeline
	if pipeline == nil {
		pipeline = transform.New(spec.Registry.Catalog())
	}

	r := &run{
		spec:     spec,
		opts:     opts,
		logger:   logger.With(zap.String("run_id", opts.RunID)),
		catalog:  spec.Registry.Catalog(),
		pipeline: pipeline,
		resolver: resolve.New(spec.Registry),
		deferred: NewDeferralStore(),
		planned:  map[string]map[string]struct{}{},
		report: &Report{
			RunID:     opts.RunID,
			DryRun:    opts.DryRun,
			StartedAt: time.Now(),
			Stages:    []StageResult{},
			Items:     []ItemResult{},
		},
	}

	r.logger.Info("Starting run", zap.Bool("dry_run", opts.DryRun), zap.Int("workers", opts.Workers))
	if spec.Recorder != nil {
		if err := spec.Recorder.RunStarted(context.WithoutCancel(ctx), r.report); err != nil {
			r.logger.Warn("Failed to record run start", zap.Error(err))
		}
	}

	err := r.execute(ctx)
	r.finish(ctx, err)
	return r.report, err
}

type run struct {
	spec     *Spec
	opts     Options
	logger   *zap.Logger
	catalog  *catalog.Catalog
	pipeline *transform.Pipeline
	resolver *resolve.Resolver
	deferred *DeferralStore

	mu      sync.Mutex
	report  *Report
	planned map[string]map[string]struct{}
}

// parentRef binds a child record to the id of the record that declared it.
// id is 0 when the parent only would be created.
type parentRef struct {
	field string
	id    int
}

func (r *run) execute(ctx context.Context) error {
	plan, err := BuildPlan(ctx, r.spec, r.opts)
	if err != nil {
		return err
	}

	for _, tag := range plan.Unsupported {
		err := fmt.Errorf("%w: %s", ErrUnsupportedEntityType, tag)
		r.logger.Warn("Skipping document", zap.String("tag", tag), zap.Error(err))
		r.addStage(StageResult{Tag: tag, Skipped: true, Reason: err.Error()})
	}

	for _, stage := range plan.Stages {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.runStage(ctx, stage); err != nil {
			return err
		}
	}

	return r.sweep(ctx)
}

func (r *run) runStage(ctx context.Context, stage Stage) error {
	d := stage.Descriptor

	if stage.Err != nil {
		r.logger.Warn("Skipping document", zap.String("tag", d.Tag), zap.Error(stage.Err))
		r.addStage(StageResult{Tag: d.Tag, Skipped: true, Reason: stage.Err.Error()})
		return nil
	}

	doc := stage.Document
	r.addStage(StageResult{Tag: d.Tag, Source: doc.Source, Records: len(doc.Records)})
	for _, reason := range doc.Skipped {
		r.addItem(ctx, ItemResult{
			Tag:    d.Tag,
			Status: StatusSkipped,
			Reason: reason,
			Err:    ErrDocumentMalformed,
		})
	}

	workers := r.opts.Workers
	if d.SelfReferencing() {
		workers = 1
	}

	r.logger.Info("Reconciling stage",
		zap.String("tag", d.Tag),
		zap.Int("rank", d.Rank),
		zap.Int("records", len(doc.Records)),
		zap.Int("workers", workers),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, rec := range doc.Records {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			return r.declared(gctx, d, rec)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// declared reconciles one declared record and everything it expands to.
// Only fatal errors are returned.
func (r *run) declared(ctx context.Context, d catalog.Descriptor, rec *document.Record) error {
	records, err := r.pipeline.Expand(rec)
	if err != nil {
		return r.fail(ctx, rec, StatusSkipped, err)
	}
	for _, e := range records {
		if err := r.reconcile(ctx, d, e, nil); err != nil {
			return err
		}
	}
	return nil
}

// reconcile is the get-or-create of a single concrete record.
func (r *run) reconcile(ctx context.Context, d catalog.Descriptor, rec *document.Record, parent *parentRef) error {
	if err := ctx.Err(); err != nil {
		return r.fail(ctx, rec, StatusFailed, err)
	}

	res, err := r.pipeline.Transform(rec)
	if err != nil {
		return r.fail(ctx, rec, StatusSkipped, err)
	}
	work := res.Record

	if parent != nil {
		if parent.id == 0 {
			r.markPlanned(d.Tag, work.Name)
			r.addItem(ctx, ItemResult{Tag: d.Tag, Name: work.Name, Status: StatusWouldCreate})
			return nil
		}
		work.Attributes.Set(parent.field, resolve.ID(parent.id))
	}

	if err := r.resolver.ResolveRecord(ctx, work); err != nil {
		if r.dependsOnPlanned(err) {
			r.markPlanned(d.Tag, work.Name)
			r.addItem(ctx, ItemResult{Tag: d.Tag, Name: work.Name, Status: StatusWouldCreate, Reason: err.Error()})
			return r.afterSuccess(ctx, d, work, res, 0)
		}
		return r.fail(ctx, work, StatusFailed, err)
	}

	if err := r.pipeline.Finalize(work); err != nil {
		return r.fail(ctx, work, StatusSkipped, err)
	}

	ep, ok := r.spec.Registry.Get(d.Tag)
	if !ok {
		return r.fail(ctx, work, StatusSkipped, fmt.Errorf("%w: %s", ErrUnsupportedEntityType, d.Tag))
	}

	existing, err := ep.Lookup(ctx, lookupFilter(d, work))
	if err != nil {
		return r.fail(ctx, work, StatusFailed, fmt.Errorf("lookup: %w", err))
	}

	var id int
	switch {
	case existing != nil:
		id = existing.ID
		r.addItem(ctx, ItemResult{Tag: d.Tag, Name: work.Name, Status: StatusPresent, ID: id})
	case r.opts.DryRun:
		r.markPlanned(d.Tag, work.Name)
		r.addItem(ctx, ItemResult{Tag: d.Tag, Name: work.Name, Status: StatusWouldCreate})
	default:
		created, err := ep.Create(ctx, work.Attributes.Map())
		if err != nil {
			return r.fail(ctx, work, StatusFailed, fmt.Errorf("%w: %w", ErrCreateFailed, err))
		}
		id = created.ID
		r.addItem(ctx, ItemResult{Tag: d.Tag, Name: work.Name, Status: StatusCreated, ID: id})
	}

	return r.afterSuccess(ctx, d, work, res, id)
}

// afterSuccess handles what depends on the record existing: primary address deferrals
// and nested children. id is 0 when the record only would be created.
func (r *run) afterSuccess(ctx context.Context, d catalog.Descriptor, work *document.Record, res *transform.Result, id int) error {
	for _, def := range res.Deferrals {
		if prev, conflict := r.deferred.Put(def); conflict {
			r.logger.Warn("Primary address claimed twice, keeping the latest",
				zap.String("address", def.Address),
				zap.String("device", def.Device),
				zap.String("replaced_device", prev.Device),
			)
		}
	}

	if d.Tag == "ip_addresses" {
		if err := r.drain(ctx, work.Name, id); err != nil {
			return err
		}
	}

	for _, child := range res.Children {
		cd, ok := r.catalog.Lookup(child.Record.Tag)
		if !ok {
			r.fail(ctx, child.Record, StatusSkipped, fmt.Errorf("%w: %s", ErrUnsupportedEntityType, child.Record.Tag))
			continue
		}
		expanded, err := r.pipeline.Expand(child.Record)
		if err != nil {
			if ferr := r.fail(ctx, child.Record, StatusSkipped, err); ferr != nil {
				return ferr
			}
			continue
		}
		for _, c := range expanded {
			if err := r.reconcile(ctx, cd, c, &parentRef{field: child.ParentField, id: id}); err != nil {
				return err
			}
		}
	}
	return nil
}

// drain assigns the primary address waiting for address, if any.
func (r *run) drain(ctx context.Context, address string, addressID int) error {
	def, ok := r.deferred.Take(address)
	if !ok {
		return nil
	}
	return r.assignPrimary(ctx, def, addressID)
}

// assignPrimary sets the device's primary_ip4 or primary_ip6 to addressID unless it
// already points there.
func (r *run) assignPrimary(ctx context.Context, def transform.PrimaryAddress, addressID int) error {
	device := document.NewRecord("devices", def.Device)

	family, err := transform.AddressFamily(def.Address)
	if err != nil {
		return r.fail(ctx, device, StatusFailed, err)
	}
	field := fmt.Sprintf("primary_ip%d", family)

	ep, ok := r.spec.Registry.Get("devices")
	if !ok {
		return r.fail(ctx, device, StatusSkipped, fmt.Errorf("%w: devices", ErrUnsupportedEntityType))
	}

	dev, err := ep.Lookup(ctx, netbox.Filter{"name": def.Device})
	if err != nil {
		return r.fail(ctx, device, StatusFailed, fmt.Errorf("lookup: %w", err))
	}
	if dev == nil {
		if r.opts.DryRun && r.isPlanned("devices", def.Device) {
			r.addItem(ctx, ItemResult{Tag: "devices", Name: def.Device, Status: StatusWouldUpdate, Reason: field + " " + def.Address})
			return nil
		}
		return r.fail(ctx, device, StatusFailed, fmt.Errorf("%w: device %q for primary address %s",
			resolve.ErrReferenceNotFound, def.Device, def.Address))
	}

	if current, ok := dev.NestedID(field); ok && addressID != 0 && current == addressID {
		r.addItem(ctx, ItemResult{Tag: "devices", Name: def.Device, Status: StatusPresent, ID: dev.ID, Reason: field + " " + def.Address})
		return nil
	}

	if r.opts.DryRun {
		r.addItem(ctx, ItemResult{Tag: "devices", Name: def.Device, Status: StatusWouldUpdate, ID: dev.ID, Reason: field + " " + def.Address})
		return nil
	}

	if _, err := ep.Update(ctx, dev.ID, map[string]any{field: addressID}); err != nil {
		return r.fail(ctx, device, StatusFailed, fmt.Errorf("%w: %w", ErrUpdateFailed, err))
	}
	r.addItem(ctx, ItemResult{Tag: "devices", Name: def.Device, Status: StatusUpdated, ID: dev.ID, Reason: field + " " + def.Address})
	return nil
}

// sweep resolves deferrals whose address was not declared in this run.
func (r *run) sweep(ctx context.Context) error {
	pending := r.deferred.Drain()
	if len(pending) == 0 {
		return nil
	}
	r.logger.Info("Assigning remaining primary addresses", zap.Int("count", len(pending)))

	ep, ok := r.spec.Registry.Get("ip_addresses")
	if !ok {
		return fmt.Errorf("%w: ip_addresses", ErrUnsupportedEntityType)
	}

	for _, def := range pending {
		device := document.NewRecord("devices", def.Device)
		if err := ctx.Err(); err != nil {
			return err
		}

		addr, err := ep.Lookup(ctx, netbox.Filter{"address": def.Address})
		if err != nil {
			if ferr := r.fail(ctx, device, StatusFailed, fmt.Errorf("lookup: %w", err)); ferr != nil {
				return ferr
			}
			continue
		}
		if addr == nil {
			if r.opts.DryRun && r.isPlanned("devices", def.Device) {
				r.addItem(ctx, ItemResult{Tag: "devices", Name: def.Device, Status: StatusWouldUpdate, Reason: "primary address " + def.Address})
				continue
			}
			err := fmt.Errorf("%w: primary address %s of device %q", resolve.ErrReferenceNotFound, def.Address, def.Device)
			if ferr := r.fail(ctx, device, StatusFailed, err); ferr != nil {
				return ferr
			}
			continue
		}

		if err := r.assignPrimary(ctx, def, addr.ID); err != nil {
			return err
		}
	}
	return nil
}

// fail reports rec and returns err only when it must abort the run.
func (r *run) fail(ctx context.Context, rec *document.Record, status Status, err error) error {
	r.addItem(ctx, ItemResult{
		Tag:    rec.Tag,
		Name:   rec.Name,
		Status: status,
		Reason: err.Error(),
		Err:    err,
	})
	if isFatal(ctx, err) {
		return err
	}
	return nil
}

func isFatal(ctx context.Context, err error) bool {
	return errors.Is(err, netbox.ErrUnreachable) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) ||
		ctx.Err() != nil
}

// dependsOnPlanned reports whether a resolution failure only concerns an object that
// this dry run would create.
func (r *run) dependsOnPlanned(err error) bool {
	if !r.opts.DryRun {
		return false
	}
	var rerr *resolve.Error
	if !errors.As(err, &rerr) || !errors.Is(err, resolve.ErrReferenceNotFound) {
		return false
	}
	return r.isPlanned(rerr.Binding.Target, fmt.Sprint(rerr.Binding.Value))
}

func (r *run) markPlanned(tag, name string) {
	if tag == "ip_addresses" {
		name = addressKey(name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.planned[tag] == nil {
		r.planned[tag] = map[string]struct{}{}
	}
	r.planned[tag][name] = struct{}{}
}

func (r *run) isPlanned(tag, name string) bool {
	if tag == "ip_addresses" {
		name = addressKey(name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.planned[tag][name]
	return ok
}

func (r *run) addStage(s StageResult) {
	r.mu.Lock()
	r.report.Stages = append(r.report.Stages, s)
	r.mu.Unlock()
}

func (r *run) addItem(ctx context.Context, item ItemResult) {
	r.mu.Lock()
	r.report.Items = append(r.report.Items, item)
	r.report.Summary.add(item.Status)
	r.mu.Unlock()

	fields := []zap.Field{
		zap.String("tag", item.Tag),
		zap.String("name", item.Name),
		zap.String("status", string(item.Status)),
	}
	if item.ID != 0 {
		fields = append(fields, zap.Int("id", item.ID))
	}
	switch item.Status {
	case StatusFailed, StatusSkipped:
		if item.Err != nil {
			fields = append(fields, zap.Error(item.Err))
		} else {
			fields = append(fields, zap.String("reason", item.Reason))
		}
		r.logger.Warn("Item not reconciled", fields...)
	default:
		if item.Reason != "" {
			fields = append(fields, zap.String("detail", item.Reason))
		}
		r.logger.Info("Item reconciled", fields...)
	}

	if r.spec.Recorder != nil {
		if err := r.spec.Recorder.ItemRecorded(context.WithoutCancel(ctx), r.report.RunID, item); err != nil {
			r.logger.Warn("Failed to record item", zap.Error(err))
		}
	}
}

func (r *run) finish(ctx context.Context, err error) {
	r.mu.Lock()
	r.report.FinishedAt = time.Now()
	if err != nil {
		r.report.Error = err.Error()
	}
	s := r.report.Summary
	r.mu.Unlock()

	fields := []zap.Field{
		zap.Int("created", s.Created),
		zap.Int("present", s.Present),
		zap.Int("would_create", s.WouldCreate),
		zap.Int("updated", s.Updated),
		zap.Int("would_update", s.WouldUpdate),
		zap.Int("skipped", s.Skipped),
		zap.Int("failed", s.Failed),
		zap.Duration("duration", r.report.FinishedAt.Sub(r.report.StartedAt)),
	}
	if err != nil {
		r.logger.Error("Run aborted", append(fields, zap.Error(err))...)
	} else {
		r.logger.Info("Run finished", fields...)
	}

	if r.spec.Recorder != nil {
		if rerr := r.spec.Recorder.RunFinished(context.WithoutCancel(ctx), r.report); rerr != nil {
			r.logger.Warn("Failed to record run end", zap.Error(rerr))
		}
	}
}

// lookupFilter identifies rec: its unique key plus the resolved ids of the type's scope
// attributes. An absent scope attribute matches objects without that parent.
func lookupFilter(d catalog.Descriptor, rec *document.Record) netbox.Filter {
	filter := netbox.Filter{d.UniqueKey: rec.Name}
	for _, attr := range d.Scope {
		if id, ok := idOf(rec.Attributes, attr); ok {
			filter[attr+"_id"] = strconv.Itoa(id)
		} else {
			filter[attr+"_id"] = "null"
		}
	}
	return filter
}

func idOf(attrs *document.Attributes, key string) (int, bool) {
	v, ok := attrs.Get(key)
	if !ok {
		return 0, false
	}
	return utils.AsID(v)
}
