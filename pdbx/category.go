package pdbx

import "github.com/BurntSushi/cif"

// categoryLoop retrieves the loop containing the data tag "key". If the
// category is present in item form instead (a single row is not required
// to be a loop in CIF), a one-row loop is fabricated from the items named
// by "key" and "others". Nil is returned when the category is absent
// entirely.
//
// The purpose of this function is to abstract over whether some data set
// in a PDBx/mmCIF file is represented as a loop or not. A file with a
// single helix, for example, may declare struct_conf as plain items.
func categoryLoop(b *cif.DataBlock, key string, others ...string) *cif.Loop {
	if loop, ok := b.Loops[key]; ok {
		return loop
	}
	if _, ok := b.Items[key]; !ok {
		return nil
	}

	tags := append([]string{key}, others...)
	loop := &cif.Loop{
		Columns: make(map[string]int, len(tags)),
		Values:  make([]cif.ValueLoop, 0, len(tags)),
	}
	for _, tag := range tags {
		v, ok := b.Items[tag]
		if !ok {
			continue
		}
		switch raw := v.Raw().(type) {
		case string:
			loop.Values = append(loop.Values, cif.AsValues([]string{raw}))
		case int:
			loop.Values = append(loop.Values, cif.AsValues([]int{raw}))
		case float64:
			loop.Values = append(loop.Values, cif.AsValues([]float64{raw}))
		default:
			continue
		}
		loop.Columns[tag] = len(loop.Values) - 1
	}
	return loop
}
