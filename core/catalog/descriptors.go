package catalog

func ref(field, target string) ReferenceField {
	return ReferenceField{Field: field, Target: target}
}

func refs(field, target string) ReferenceField {
	return ReferenceField{Field: field, Target: target, Many: true}
}

var tagsRef = refs("tags", "tags")

// netboxDescriptors lists the supported types in dependency order.
func netboxDescriptors() []Descriptor {
	return []Descriptor{
		// Extras
		{Tag: "custom_fields", Path: "extras/custom-fields"},
		{Tag: "custom_links", Path: "extras/custom-links"},
		{Tag: "tags", Path: "extras/tags", Slugged: true},
		{Tag: "config_templates", Path: "extras/config-templates", References: []ReferenceField{tagsRef}},
		{Tag: "webhooks", Path: "extras/webhooks", References: []ReferenceField{tagsRef}},

		// Tenancy
		{Tag: "tenant_groups", Path: "tenancy/tenant-groups", Slugged: true, References: []ReferenceField{
			ref("parent", "tenant_groups"), tagsRef,
		}},
		{Tag: "tenants", Path: "tenancy/tenants", Slugged: true, References: []ReferenceField{
			ref("group", "tenant_groups"), tagsRef,
		}},

		// Organization
		{Tag: "site_groups", Path: "dcim/site-groups", Slugged: true, References: []ReferenceField{
			ref("parent", "site_groups"), tagsRef,
		}},
		{Tag: "regions", Path: "dcim/regions", Slugged: true, References: []ReferenceField{
			ref("parent", "regions"), tagsRef,
		}},
		{Tag: "rirs", Path: "ipam/rirs", Slugged: true, References: []ReferenceField{tagsRef}},
		{Tag: "asns", Path: "ipam/asns", UniqueKey: "asn", References: []ReferenceField{
			ref("rir", "rirs"), ref("tenant", "tenants"), tagsRef,
		}},
		{Tag: "sites", Path: "dcim/sites", Slugged: true, References: []ReferenceField{
			ref("region", "regions"), ref("group", "site_groups"), ref("tenant", "tenants"),
			refs("asns", "asns"), tagsRef,
		}},
		{Tag: "locations", Path: "dcim/locations", Slugged: true, Scope: []string{"site"}, References: []ReferenceField{
			ref("site", "sites"), ref("parent", "locations"), ref("tenant", "tenants"), tagsRef,
		}},
		{Tag: "rack_roles", Path: "dcim/rack-roles", Slugged: true, References: []ReferenceField{tagsRef}},
		{Tag: "racks", Path: "dcim/racks", Scope: []string{"site"}, References: []ReferenceField{
			ref("site", "sites"), ref("location", "locations"), ref("role", "rack_roles"),
			ref("tenant", "tenants"), tagsRef,
		}},
		{Tag: "power_panels", Path: "dcim/power-panels", Scope: []string{"site"}, References: []ReferenceField{
			ref("site", "sites"), ref("location", "locations"), tagsRef,
		}},
		{Tag: "power_feeds", Path: "dcim/power-feeds", Scope: []string{"power_panel"}, References: []ReferenceField{
			ref("power_panel", "power_panels"), ref("rack", "racks"), tagsRef,
		}},

		// Device types
		{Tag: "manufacturers", Path: "dcim/manufacturers", Slugged: true, References: []ReferenceField{tagsRef}},
		{Tag: "platforms", Path: "dcim/platforms", Slugged: true, References: []ReferenceField{
			ref("manufacturer", "manufacturers"), ref("config_template", "config_templates"), tagsRef,
		}},
		{Tag: "device_roles", Path: "dcim/device-roles", Slugged: true, References: []ReferenceField{
			ref("config_template", "config_templates"), tagsRef,
		}},
		{Tag: "device_types", Path: "dcim/device-types", UniqueKey: "model", Slugged: true, References: []ReferenceField{
			ref("manufacturer", "manufacturers"), ref("default_platform", "platforms"), tagsRef,
		}},
		{Tag: "interface_templates", Path: "dcim/interface-templates", Templated: true, Scope: []string{"device_type"}, References: []ReferenceField{
			ref("device_type", "device_types"),
		}},

		// Virtualization clusters
		{Tag: "cluster_types", Path: "virtualization/cluster-types", Slugged: true, References: []ReferenceField{tagsRef}},
		{Tag: "cluster_groups", Path: "virtualization/cluster-groups", Slugged: true, References: []ReferenceField{tagsRef}},
		{Tag: "clusters", Path: "virtualization/clusters", References: []ReferenceField{
			ref("type", "cluster_types"), ref("group", "cluster_groups"), ref("site", "sites"),
			ref("tenant", "tenants"), tagsRef,
		}},

		// VLANs
		{Tag: "prefix_vlan_roles", Path: "ipam/roles", Slugged: true, References: []ReferenceField{tagsRef}},
		{Tag: "vlan_groups", Path: "ipam/vlan-groups", Slugged: true, References: []ReferenceField{tagsRef}},
		{Tag: "vlans", Path: "ipam/vlans", Scope: []string{"group"}, References: []ReferenceField{
			ref("site", "sites"), ref("group", "vlan_groups"), ref("tenant", "tenants"),
			ref("role", "prefix_vlan_roles"), tagsRef,
		}},

		// Devices
		{Tag: "devices", Path: "dcim/devices", References: []ReferenceField{
			ref("device_type", "device_types"), ref("role", "device_roles"), ref("site", "sites"),
			ref("location", "locations"), ref("rack", "racks"), ref("platform", "platforms"),
			ref("tenant", "tenants"), ref("cluster", "clusters"), tagsRef,
		}},
		{Tag: "interfaces", Path: "dcim/interfaces", Templated: true, Scope: []string{"device"}, References: []ReferenceField{
			ref("device", "devices"), ref("untagged_vlan", "vlans"), refs("tagged_vlans", "vlans"), tagsRef,
		}},

		// Routing
		{Tag: "route_targets", Path: "ipam/route-targets", References: []ReferenceField{
			ref("tenant", "tenants"), tagsRef,
		}},
		{Tag: "vrfs", Path: "ipam/vrfs", References: []ReferenceField{
			ref("tenant", "tenants"), refs("import_targets", "route_targets"),
			refs("export_targets", "route_targets"), tagsRef,
		}},
		{Tag: "aggregates", Path: "ipam/aggregates", UniqueKey: "prefix", References: []ReferenceField{
			ref("rir", "rirs"), ref("tenant", "tenants"), tagsRef,
		}},

		// Virtual machines
		{Tag: "virtual_machines", Path: "virtualization/virtual-machines", References: []ReferenceField{
			ref("cluster", "clusters"), ref("site", "sites"), ref("role", "device_roles"),
			ref("platform", "platforms"), ref("tenant", "tenants"), ref("device", "devices"), tagsRef,
		}},
		{Tag: "virtualization_interfaces", Path: "virtualization/interfaces", Templated: true, Scope: []string{"virtual_machine"}, References: []ReferenceField{
			ref("virtual_machine", "virtual_machines"), ref("untagged_vlan", "vlans"),
			refs("tagged_vlans", "vlans"), ref("vrf", "vrfs"), tagsRef,
		}},

		// Addressing
		{Tag: "prefixes", Path: "ipam/prefixes", UniqueKey: "prefix", Scope: []string{"vrf"}, References: []ReferenceField{
			ref("site", "sites"), ref("vrf", "vrfs"), ref("vlan", "vlans"), ref("role", "prefix_vlan_roles"),
			ref("tenant", "tenants"), tagsRef,
		}},
		{Tag: "ip_addresses", Path: "ipam/ip-addresses", UniqueKey: "address", Scope: []string{"vrf"}, References: []ReferenceField{
			ref("vrf", "vrfs"), ref("tenant", "tenants"), tagsRef,
			{Field: "assigned_object_id", Target: "interfaces", Scope: map[string]string{"device": "device"}},
		}},

		// Services
		{Tag: "services", Path: "ipam/services", Scope: []string{"device", "virtual_machine"}, References: []ReferenceField{
			ref("device", "devices"), ref("virtual_machine", "virtual_machines"),
			refs("ipaddresses", "ip_addresses"), tagsRef,
		}},
		{Tag: "service_templates", Path: "ipam/service-templates", References: []ReferenceField{tagsRef}},

		// Circuits
		{Tag: "providers", Path: "circuits/providers", Slugged: true, References: []ReferenceField{
			refs("asns", "asns"), tagsRef,
		}},
		{Tag: "circuit_types", Path: "circuits/circuit-types", Slugged: true, References: []ReferenceField{tagsRef}},
		{Tag: "circuits", Path: "circuits/circuits", UniqueKey: "cid", References: []ReferenceField{
			ref("provider", "providers"), ref("type", "circuit_types"), ref("tenant", "tenants"), tagsRef,
		}},

		// Cabling
		{Tag: "cables", Path: "dcim/cables", UniqueKey: "label", References: []ReferenceField{
			{Field: "a_interface", Target: "interfaces", Scope: map[string]string{"device": "a_device"}},
			{Field: "b_interface", Target: "interfaces", Scope: map[string]string{"device": "b_device"}},
			ref("tenant", "tenants"), tagsRef,
		}},

		// Config contexts
		{Tag: "config_contexts", Path: "extras/config-contexts", References: []ReferenceField{
			refs("regions", "regions"), refs("site_groups", "site_groups"), refs("sites", "sites"),
			refs("locations", "locations"), refs("device_types", "device_types"), refs("roles", "device_roles"),
			refs("platforms", "platforms"), refs("cluster_types", "cluster_types"),
			refs("cluster_groups", "cluster_groups"), refs("clusters", "clusters"),
			refs("tenant_groups", "tenant_groups"), refs("tenants", "tenants"), refs("tags", "tags"),
		}},

		// Contacts
		{Tag: "contact_groups", Path: "tenancy/contact-groups", Slugged: true, References: []ReferenceField{
			ref("parent", "contact_groups"), tagsRef,
		}},
		{Tag: "contact_roles", Path: "tenancy/contact-roles", Slugged: true, References: []ReferenceField{tagsRef}},
		{Tag: "contacts", Path: "tenancy/contacts", References: []ReferenceField{
			ref("group", "contact_groups"), tagsRef,
		}},
	}
}
