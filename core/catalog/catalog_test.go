package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	c := Default()
	require.NotNil(t, c)
	assert.NoError(t, c.Validate())
	assert.Len(t, c.Tags(), 47)
}

func TestDefault_Order(t *testing.T) {
	c := Default()

	before := [][2]string{
		{"tags", "devices"},
		{"sites", "devices"},
		{"device_types", "interface_templates"},
		{"devices", "interfaces"},
		{"interfaces", "ip_addresses"},
		{"vlan_groups", "vlans"},
		{"interfaces", "cables"},
		{"contact_groups", "contacts"},
	}
	for _, pair := range before {
		a, ok := c.RankOf(pair[0])
		require.True(t, ok, pair[0])
		b, ok := c.RankOf(pair[1])
		require.True(t, ok, pair[1])
		assert.Less(t, a, b, "%s must precede %s", pair[0], pair[1])
	}

	tags := c.Tags()
	assert.Equal(t, "custom_fields", tags[0])
	assert.Equal(t, "contacts", tags[len(tags)-1])
}

func TestDefault_UniqueKeys(t *testing.T) {
	c := Default()

	tests := map[string]string{
		"asns":         "asn",
		"ip_addresses": "address",
		"device_types": "model",
		"prefixes":     "prefix",
		"aggregates":   "prefix",
		"circuits":     "cid",
		"cables":       "label",
		"sites":        "name",
		"interfaces":   "name",
	}
	for tag, want := range tests {
		got, ok := c.UniqueKeyOf(tag)
		require.True(t, ok, tag)
		assert.Equal(t, want, got, tag)
	}
}

func TestDefault_UnknownTag(t *testing.T) {
	c := Default()

	_, ok := c.Lookup("widgets")
	assert.False(t, ok)
	_, ok = c.RankOf("widgets")
	assert.False(t, ok)
	_, ok = c.UniqueKeyOf("primary_ips")
	assert.False(t, ok)
}

func TestDefault_SelfReferencing(t *testing.T) {
	c := Default()

	for _, tag := range []string{"regions", "site_groups", "tenant_groups", "locations", "contact_groups"} {
		d, ok := c.Lookup(tag)
		require.True(t, ok)
		assert.True(t, d.SelfReferencing(), tag)
	}

	d, _ := c.Lookup("devices")
	assert.False(t, d.SelfReferencing())
}

func TestDescriptor_Reference(t *testing.T) {
	d, ok := Default().Lookup("ip_addresses")
	require.True(t, ok)

	ref, ok := d.Reference("assigned_object_id")
	require.True(t, ok)
	assert.Equal(t, "interfaces", ref.Target)
	assert.Equal(t, map[string]string{"device": "device"}, ref.Scope)

	_, ok = d.Reference("description")
	assert.False(t, ok)
}

func TestNew_RejectsForwardReference(t *testing.T) {
	_, err := New(
		Descriptor{Tag: "devices", References: []ReferenceField{{Field: "site", Target: "sites"}}},
		Descriptor{Tag: "sites"},
	)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "must rank lower")
}

func TestNew_RejectsUnknownTarget(t *testing.T) {
	_, err := New(Descriptor{Tag: "devices", References: []ReferenceField{{Field: "site", Target: "sites"}}})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown type")
}

func TestNew_RejectsDuplicates(t *testing.T) {
	_, err := New(Descriptor{Tag: "sites"}, Descriptor{Tag: "sites"})
	assert.Error(t, err)
}

func TestNew_RejectsScopeWithoutReference(t *testing.T) {
	_, err := New(Descriptor{Tag: "interfaces", Scope: []string{"device"}})
	assert.Error(t, err)
}

func TestNew_AssignsRanksAndDefaults(t *testing.T) {
	c, err := New(
		Descriptor{Tag: "sites"},
		Descriptor{Tag: "regions", UniqueKey: "slug", References: []ReferenceField{{Field: "parent", Target: "regions"}}},
	)
	require.NoError(t, err)

	d, _ := c.Lookup("sites")
	assert.Equal(t, 1, d.Rank)
	assert.Equal(t, DefaultUniqueKey, d.UniqueKey)

	d, _ = c.Lookup("regions")
	assert.Equal(t, 2, d.Rank)
	assert.Equal(t, "slug", d.UniqueKey)
}

func TestSortByRank(t *testing.T) {
	c := Default()

	tags := []string{"widgets", "interfaces", "sites", "abc", "custom_fields"}
	c.SortByRank(tags)

	assert.Equal(t, []string{"custom_fields", "sites", "interfaces", "abc", "widgets"}, tags)
}
