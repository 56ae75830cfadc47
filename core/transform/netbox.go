package transform

import (
	"fmt"
	"net/netip"
	"sort"
	"strings"

	"nb-init/core/document"
	"nb-init/core/utils"
)

const interfaceObjectType = "dcim.interface"

func customFields(res *Result) error {
	res.Record.Attributes.Rename("on_objects", "object_types")
	return nil
}

// deviceTypes splits nested interface declarations into interface_templates children.
func deviceTypes(res *Result) error {
	raw, ok := res.Record.Attributes.Delete("interfaces")
	if !ok || raw == nil {
		return nil
	}

	items, ok := raw.([]any)
	if !ok {
		return fmt.Errorf("interfaces must be a list, got %T", raw)
	}

	for i, item := range items {
		fields, ok := item.(map[string]any)
		if !ok {
			return fmt.Errorf("interfaces[%d] must be a mapping", i)
		}
		name, ok := fields["name"].(string)
		if !ok || name == "" {
			return fmt.Errorf("interfaces[%d] has no name", i)
		}

		child := document.NewRecord("interface_templates", name)
		child.Attributes.Set("name", name)
		for _, k := range sortedKeys(fields) {
			if k == "name" || k == "device_type" {
				continue
			}
			child.Attributes.Set(k, fields[k])
		}
		res.Children = append(res.Children, Child{Record: child, ParentField: "device_type"})
	}
	return nil
}

// devices defers primary_address until the address exists.
func devices(res *Result) error {
	raw, ok := res.Record.Attributes.Delete("primary_address")
	if !ok || raw == nil {
		return nil
	}
	address, ok := raw.(string)
	if !ok || address == "" {
		return fmt.Errorf("primary_address must be an address string")
	}
	res.Deferrals = append(res.Deferrals, PrimaryAddress{Address: address, Device: res.Record.Name})
	return nil
}

// ipAddresses moves the owning device into Meta and turns interface into the assigned
// object reference, scoped by that device.
func ipAddresses(res *Result) error {
	rec := res.Record

	if device, ok := rec.Attributes.Delete("device"); ok && device != nil {
		rec.Meta["device"] = device
	}

	if _, ok := rec.Attributes.Get("interface"); ok {
		if _, hasDevice := rec.Meta["device"]; !hasDevice {
			return fmt.Errorf("interface requires device")
		}
		rec.Attributes.Rename("interface", "assigned_object_id")
	}

	raw, ok := rec.Attributes.Delete("primary")
	if !ok {
		return nil
	}
	primary, ok := utils.AsBool(raw)
	if !ok {
		return fmt.Errorf("primary must be a boolean, got %T", raw)
	}
	if !primary {
		return nil
	}
	device, ok := rec.Meta["device"].(string)
	if !ok || device == "" {
		return fmt.Errorf("primary requires device")
	}
	res.Deferrals = append(res.Deferrals, PrimaryAddress{Address: rec.Name, Device: device})
	return nil
}

func finalizeIPAddress(rec *document.Record) error {
	if _, ok := rec.Attributes.Get("assigned_object_id"); ok {
		rec.Attributes.Set("assigned_object_type", interfaceObjectType)
	}
	return nil
}

// finalizeCable builds the termination lists from the resolved interface ids.
func finalizeCable(rec *document.Record) error {
	for _, side := range []string{"a", "b"} {
		rec.Attributes.Delete(side + "_device")

		raw, ok := rec.Attributes.Delete(side + "_interface")
		if !ok {
			if _, declared := rec.Attributes.Get(side + "_terminations"); declared {
				continue
			}
			return fmt.Errorf("%s_interface is required", side)
		}
		id, ok := raw.(int)
		if !ok {
			return fmt.Errorf("%s_interface is not resolved", side)
		}
		rec.Attributes.Set(side+"_terminations", []map[string]any{
			{"object_type": interfaceObjectType, "object_id": id},
		})
	}
	return nil
}

// AddressFamily returns 4 or 6 for an address in CIDR or plain notation.
func AddressFamily(address string) (int, error) {
	host, _, _ := strings.Cut(address, "/")
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid address %q", ErrTransform, address)
	}
	if addr.Is4() {
		return 4, nil
	}
	return 6, nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
