// SPDX-License-Identifier: GPL-3.0-or-later

package otl

import (
	"golang.org/x/exp/slices"

	"github.com/otfdecode/sfnt/font/tag"
)

// LangSysFor returns the language system selected by script and lang:
// the script's explicitly tagged language system if present, otherwise
// the script's default language system, otherwise the same search under
// the "DFLT" script. Returns nil if nothing matches.
func (sl ScriptList) LangSysFor(script, lang tag.Tag) *LangSys {
	if s, ok := sl[script]; ok {
		if ls, ok := s.LangSyses[lang]; ok {
			return ls
		}
		if s.DefaultLangSys != nil {
			return s.DefaultLangSys
		}
	}
	dflt := tag.Make("DFLT")
	if script == dflt {
		return nil
	}
	return sl.LangSysFor(dflt, lang)
}

// LookupsFor resolves the lookup-list indices activated by the feature
// tagged feature under script/lang: the language system's feature
// indices (plus its required feature, whatever its tag) are filtered
// against the feature list, and the surviving features' lookup indices
// are returned sorted and deduplicated. A nil result means the
// script/lang pair selects no language system, or no matching feature.
func LookupsFor(sl ScriptList, fl FeatureList, script, lang, feature tag.Tag) []uint16 {
	ls := sl.LangSysFor(script, lang)
	if ls == nil {
		return nil
	}

	var out []uint16
	add := func(idx uint16) {
		if int(idx) >= len(fl) {
			return
		}
		f := fl[idx]
		if f.Tag != feature {
			return
		}
		out = append(out, f.LookupListIndices...)
	}
	if req, ok := ls.RequiredFeature(); ok {
		add(req)
	}
	for _, idx := range ls.FeatureIndices {
		add(idx)
	}
	if out == nil {
		return nil
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// LookupTypeCounts tallies how many lookups of each type a lookup list
// carries. Handy for summarizing a font's layout capabilities.
func LookupTypeCounts(lookups []*Lookup) map[uint16]int {
	counts := make(map[uint16]int)
	for _, l := range lookups {
		if l == nil {
			continue
		}
		counts[l.Type]++
	}
	return counts
}
