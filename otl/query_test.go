// SPDX-License-Identifier: GPL-3.0-or-later

package otl

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/otfdecode/sfnt/font/tag"
)

func TestLookupsForScriptLangFeature(t *testing.T) {
	latn := tag.Make("latn")
	trk := tag.Make("TRK ")
	liga := tag.Make("liga")
	kern := tag.Make("kern")

	scripts := ScriptList{
		latn: &Script{
			DefaultLangSys: &LangSys{
				RequiredFeatureIndex: 0xFFFF,
				FeatureIndices:       []uint16{0, 1},
			},
			LangSyses: map[tag.Tag]*LangSys{
				trk: {
					RequiredFeatureIndex: 2,
					FeatureIndices:       []uint16{1},
				},
			},
		},
	}
	features := FeatureList{
		&Feature{Tag: liga, LookupListIndices: []uint16{3, 1}},
		&Feature{Tag: kern, LookupListIndices: []uint16{5}},
		&Feature{Tag: liga, LookupListIndices: []uint16{1, 7}},
	}

	got := LookupsFor(scripts, features, latn, tag.Make("ROM "), liga)
	if diff := cmp.Diff([]uint16{1, 3}, got); diff != "" {
		t.Errorf("default LangSys liga lookups mismatch (-want +got):\n%s", diff)
	}

	// TRK reaches liga only through its required feature (index 2);
	// its other feature (index 1) is kern and contributes nothing.
	got = LookupsFor(scripts, features, latn, trk, liga)
	if diff := cmp.Diff([]uint16{1, 7}, got); diff != "" {
		t.Errorf("TRK liga lookups mismatch (-want +got):\n%s", diff)
	}

	if got := LookupsFor(scripts, features, latn, trk, tag.Make("smcp")); got != nil {
		t.Errorf("smcp lookups = %v, want nil", got)
	}
	if got := LookupsFor(scripts, features, tag.Make("grek"), trk, liga); got != nil {
		t.Errorf("grek lookups = %v, want nil (no DFLT script present)", got)
	}
}

func TestLookupTypeCounts(t *testing.T) {
	lookups := []*Lookup{
		{Type: 1}, {Type: 4}, {Type: 1}, nil, {Type: 6},
	}
	got := LookupTypeCounts(lookups)
	want := map[uint16]int{1: 2, 4: 1, 6: 1}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LookupTypeCounts mismatch (-want +got):\n%s", diff)
	}
}
