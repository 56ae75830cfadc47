// Package nametemplate expands bracket-range naming patterns into concrete names.
//
// A template is plain text with zero or more numeric ranges written as [a-b]:
//
//	Ethernet[27-32]/1     -> Ethernet27/1 ... Ethernet32/1
//	Ethernet[1-2]/[1-2]   -> Ethernet1/1, Ethernet1/2, Ethernet2/1, Ethernet2/2
//	GigabitEthernet0/1    -> GigabitEthernet0/1
//
// Names are produced in lexicographic product order over the ranges as they appear,
// leftmost range varying slowest. A range whose lower bound exceeds its upper bound is
// empty, so the whole expansion is empty. Brackets that do not contain a dash are kept
// as literal text.
//
// # Usage
//
//	names, err := nametemplate.Expand("xe-0/0/[0-47]")
//	if err != nil {
//	    return err
//	}
package nametemplate
