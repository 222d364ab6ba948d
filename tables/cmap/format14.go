// SPDX-License-Identifier: GPL-3.0-or-later

package cmap

import (
	"sort"

	"github.com/otfdecode/sfnt/font/sfntutil"
	"github.com/otfdecode/sfnt/reader"
)

// VariationSelectorRecord describes how one variation selector
// modifies base character lookups: a set of codepoints with a glyph
// chosen independently of the main cmap subtables ("non-default"),
// and a set whose glyph is whatever the main subtables already
// produce ("default", carried only as ranges for completeness).
type VariationSelectorRecord struct {
	VarSelector        rune
	DefaultRanges      []UnicodeRange
	NonDefaultMappings map[rune]uint16
}

// UnicodeRange is an inclusive [Start, Start+AdditionalCount] run of
// codepoints, as stored in a Default UVS table.
type UnicodeRange struct {
	Start           rune
	AdditionalCount uint8
}

// VariationSequences is the decoded format 14 "cmap" subtable.
type VariationSequences struct {
	Records []VariationSelectorRecord
}

// Lookup resolves (base, selector) to a glyph ID, consulting the
// non-default mapping first and falling back to signalling that the
// caller should use its ordinary cmap lookup for `base` when the pair
// is only listed in a default range.
func (vs *VariationSequences) Lookup(base, selector rune) (gid uint16, useDefault bool, found bool) {
	for _, rec := range vs.Records {
		if rec.VarSelector != selector {
			continue
		}
		if g, ok := rec.NonDefaultMappings[base]; ok {
			return g, false, true
		}
		for _, rng := range rec.DefaultRanges {
			if base >= rng.Start && base <= rng.Start+rune(rng.AdditionalCount) {
				return 0, true, true
			}
		}
		return 0, false, false
	}
	return 0, false, false
}

func readFormat14(r *reader.R) (*VariationSequences, error) {
	data, err := r.ReadBytes(r.Len())
	if err != nil {
		return nil, err
	}
	if len(data) < 10 {
		return nil, sfntutil.ErrUnexpectedEOF
	}
	numRecords := int(be32(data[6:]))
	if 10+numRecords*11 > len(data) {
		return nil, sfntutil.ErrUnexpectedEOF
	}

	vs := &VariationSequences{}
	for i := 0; i < numRecords; i++ {
		base := 10 + i*11
		varSelector := rune(uint32(data[base])<<16 | uint32(data[base+1])<<8 | uint32(data[base+2]))
		defaultOffset := be32(data[base+3:])
		nonDefaultOffset := be32(data[base+7:])

		rec := VariationSelectorRecord{VarSelector: varSelector}
		if defaultOffset != 0 {
			rec.DefaultRanges = readDefaultUVSTable(data, int(defaultOffset))
		}
		if nonDefaultOffset != 0 {
			rec.NonDefaultMappings = readNonDefaultUVSTable(data, int(nonDefaultOffset))
		}
		vs.Records = append(vs.Records, rec)
	}

	sort.Slice(vs.Records, func(i, j int) bool {
		return vs.Records[i].VarSelector < vs.Records[j].VarSelector
	})
	return vs, nil
}

func readDefaultUVSTable(data []byte, offset int) []UnicodeRange {
	if offset+4 > len(data) {
		return nil
	}
	numRanges := int(be32(data[offset:]))
	start := offset + 4
	if start+numRanges*4 > len(data) {
		return nil
	}
	ranges := make([]UnicodeRange, numRanges)
	for i := range ranges {
		base := start + i*4
		startUnicode := uint32(data[base])<<16 | uint32(data[base+1])<<8 | uint32(data[base+2])
		ranges[i] = UnicodeRange{Start: rune(startUnicode), AdditionalCount: data[base+3]}
	}
	return ranges
}

func readNonDefaultUVSTable(data []byte, offset int) map[rune]uint16 {
	if offset+4 > len(data) {
		return nil
	}
	numMappings := int(be32(data[offset:]))
	start := offset + 4
	if start+numMappings*5 > len(data) {
		return nil
	}
	m := make(map[rune]uint16, numMappings)
	for i := 0; i < numMappings; i++ {
		base := start + i*5
		unicode := uint32(data[base])<<16 | uint32(data[base+1])<<8 | uint32(data[base+2])
		gid := be16(data[base+3:])
		m[rune(unicode)] = gid
	}
	return m
}
