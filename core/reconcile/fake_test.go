package reconcile

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"nb-init/core/document"
	"nb-init/core/netbox"
)

// fakeNetBox is an in-memory Capability. Objects keep references as ids; filters on a
// relation key by name ("device=sw1") are matched through relations.
type fakeNetBox struct {
	mu         sync.Mutex
	nextID     int
	objects    map[string][]map[string]any
	creates    []string
	updates    []string
	failCreate map[string]error
	err        error
}

var relations = map[string]string{
	"device":      "dcim/devices",
	"device_type": "dcim/device-types",
}

var _ netbox.Capability = (*fakeNetBox)(nil)

func newFakeNetBox() *fakeNetBox {
	return &fakeNetBox{
		objects:    map[string][]map[string]any{},
		failCreate: map[string]error{},
	}
}

func (f *fakeNetBox) Lookup(ctx context.Context, path string, filter netbox.Filter) (*netbox.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}

	var found []map[string]any
	for _, obj := range f.objects[path] {
		if f.matches(obj, filter) {
			found = append(found, obj)
		}
	}
	switch len(found) {
	case 0:
		return nil, nil
	case 1:
		return toRecord(found[0]), nil
	default:
		return nil, netbox.ErrMultipleResults
	}
}

func (f *fakeNetBox) Create(ctx context.Context, path string, attrs map[string]any) (*netbox.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if err, ok := f.failCreate[path]; ok {
		return nil, err
	}

	f.nextID++
	obj := map[string]any{}
	for k, v := range attrs {
		obj[k] = v
	}
	obj["id"] = f.nextID
	f.objects[path] = append(f.objects[path], obj)
	f.creates = append(f.creates, path+" "+label(obj))
	return toRecord(obj), nil
}

func (f *fakeNetBox) Update(ctx context.Context, path string, id int, attrs map[string]any) (*netbox.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}

	for _, obj := range f.objects[path] {
		if obj["id"] == id {
			keys := make([]string, 0, len(attrs))
			for k, v := range attrs {
				obj[k] = v
				keys = append(keys, k)
			}
			sort.Strings(keys)
			f.updates = append(f.updates, fmt.Sprintf("%s %s %s", path, label(obj), strings.Join(keys, ",")))
			return toRecord(obj), nil
		}
	}
	return nil, &netbox.APIError{Method: "PATCH", Path: path, StatusCode: 404}
}

// seed stores an object as if it already existed remotely.
func (f *fakeNetBox) seed(path string, attrs map[string]any) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	obj := map[string]any{"id": f.nextID}
	for k, v := range attrs {
		obj[k] = v
	}
	f.objects[path] = append(f.objects[path], obj)
	return f.nextID
}

func (f *fakeNetBox) object(path, name string) map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, obj := range f.objects[path] {
		if label(obj) == name {
			return obj
		}
	}
	return nil
}

func (f *fakeNetBox) createCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.creates)
}

func (f *fakeNetBox) matches(obj map[string]any, filter netbox.Filter) bool {
	for k, want := range filter {
		if attr, ok := strings.CutSuffix(k, "_id"); ok {
			v, has := obj[attr]
			if want == "null" {
				if has && v != nil {
					return false
				}
				continue
			}
			if !has || fmt.Sprint(v) != want {
				return false
			}
			continue
		}

		v := obj[k]
		if rel, ok := relations[k]; ok {
			if id, isID := v.(int); isID {
				v = f.nameOf(rel, id)
			}
		}
		if fmt.Sprint(v) != want {
			return false
		}
	}
	return true
}

func (f *fakeNetBox) nameOf(path string, id int) any {
	for _, obj := range f.objects[path] {
		if obj["id"] == id {
			return label(obj)
		}
	}
	return nil
}

func label(obj map[string]any) string {
	for _, key := range []string{"name", "model", "address", "prefix", "label", "cid", "asn"} {
		if v, ok := obj[key]; ok {
			return fmt.Sprint(v)
		}
	}
	return fmt.Sprint(obj["id"])
}

func toRecord(obj map[string]any) *netbox.Record {
	attrs := make(map[string]any, len(obj))
	for k, v := range obj {
		attrs[k] = v
	}
	return &netbox.Record{ID: obj["id"].(int), Attributes: attrs}
}

// memSource serves documents from memory.
type memSource map[string]string

func (m memSource) Read(_ context.Context, tag string) ([]byte, string, error) {
	data, ok := m[tag]
	if !ok {
		return nil, "", fmt.Errorf("%w: %s", document.ErrMissing, tag)
	}
	return []byte(data), "mem://" + tag + ".yml", nil
}

func (m memSource) Tags(_ context.Context) ([]string, error) {
	tags := make([]string, 0, len(m))
	for tag := range m {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags, nil
}

// recorderStub counts Recorder calls.
type recorderStub struct {
	mu       sync.Mutex
	started  int
	finished int
	items    []ItemResult
}

func (s *recorderStub) RunStarted(context.Context, *Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started++
	return nil
}

func (s *recorderStub) ItemRecorded(_ context.Context, _ string, item ItemResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, item)
	return nil
}

func (s *recorderStub) RunFinished(context.Context, *Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finished++
	return nil
}
