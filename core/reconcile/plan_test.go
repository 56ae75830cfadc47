package reconcile

import (
	"context"
	"errors"
	"testing"

	"nb-init/core/catalog"
	"nb-init/core/document"
	"nb-init/core/endpoint"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecord(tag, name string, kv ...any) *document.Record {
	r := document.NewRecord(tag, name)
	for i := 0; i+1 < len(kv); i += 2 {
		r.Attributes.Set(kv[i].(string), kv[i+1])
	}
	return r
}

type failingSource struct{}

func (failingSource) Read(context.Context, string) ([]byte, string, error) {
	return nil, "", errors.New("unreadable")
}

func (failingSource) Tags(context.Context) ([]string, error) {
	return nil, errors.New("permission denied")
}

func TestBuildPlan(t *testing.T) {
	spec := newSpec(newFakeNetBox(), memSource{
		"devices": "sw1:\n",
		"sites":   "dc1:\n",
		"widgets": "w:\n",
		"gadgets": "g:\n",
	})

	plan, err := BuildPlan(context.Background(), spec, Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"gadgets", "widgets"}, plan.Unsupported)
	assert.Len(t, plan.Stages, len(catalog.Default().Tags()))
	assert.Equal(t, 2, plan.Records())

	for i := 1; i < len(plan.Stages); i++ {
		assert.Less(t, plan.Stages[i-1].Descriptor.Rank, plan.Stages[i].Descriptor.Rank)
	}

	for _, s := range plan.Stages {
		switch s.Descriptor.Tag {
		case "sites", "devices":
			assert.NoError(t, s.Err)
			assert.NotNil(t, s.Document)
		default:
			assert.ErrorIs(t, s.Err, ErrDocumentMissing)
		}
	}
}

func TestBuildPlan_TagFilter(t *testing.T) {
	spec := newSpec(newFakeNetBox(), memSource{"sites": "dc1:\n", "devices": "sw1:\n"})

	plan, err := BuildPlan(context.Background(), spec, Options{Tags: []string{"devices", "sites", "widgets"}})
	require.NoError(t, err)

	require.Len(t, plan.Stages, 2)
	assert.Equal(t, "sites", plan.Stages[0].Descriptor.Tag)
	assert.Equal(t, "devices", plan.Stages[1].Descriptor.Tag)
	assert.Equal(t, []string{"widgets"}, plan.Unsupported)
}

func TestBuildPlan_SourceFailure(t *testing.T) {
	spec := &Spec{
		Registry: endpoint.NewRegistry(newFakeNetBox(), catalog.Default()),
		Source:   failingSource{},
	}

	_, err := BuildPlan(context.Background(), spec, Options{})
	assert.Error(t, err)
}
