// SPDX-License-Identifier: GPL-3.0-or-later

package otl

import (
	"github.com/otfdecode/sfnt/reader"
)

// LookupFlag holds the bits that modify how a lookup is applied to a
// glyph sequence (right-to-left, ignore-base/ligature/mark glyphs,
// mark-attachment-type filtering). Decoded but not interpreted here:
// applying these flags is a shaping-engine concern, out of scope.
type LookupFlag uint16

const (
	FlagRightToLeft         LookupFlag = 0x0001
	FlagIgnoreBaseGlyphs    LookupFlag = 0x0002
	FlagIgnoreLigatures     LookupFlag = 0x0004
	FlagIgnoreMarks         LookupFlag = 0x0008
	FlagUseMarkFilteringSet LookupFlag = 0x0010
	FlagMarkAttachTypeMask  LookupFlag = 0xFF00
)

// Lookup is one entry of a LookupList: a type, a flag, and the
// type-specific decoded subtables (as produced by the caller's
// SubtableReader).
type Lookup struct {
	Type             uint16
	Flag             LookupFlag
	MarkFilteringSet uint16
	Subtables        []interface{}
}

// SubtableReader decodes one subtable of lookupType from r, whose
// window runs from the subtable's own start to the end of the enclosing
// Lookup table's window, so offsets inside the subtable are relative to
// its own start.
type SubtableReader func(lookupType uint16, r *reader.R) (interface{}, error)

// ReadLookupList decodes a Lookup List Table, dispatching subtable
// decoding to read for each lookup's type.
func ReadLookupList(r *reader.R, read SubtableReader) ([]*Lookup, error) {
	count, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	offsets, err := r.ReadUint16Array(int(count))
	if err != nil {
		return nil, err
	}

	lookups := make([]*Lookup, len(offsets))
	for i, off := range offsets {
		if off == 0 {
			continue
		}
		sub, err := r.SubWindow(int(off), r.Len()-int(off))
		if err != nil {
			continue
		}
		l, err := readLookupTable(sub, read)
		if err != nil {
			continue
		}
		lookups[i] = l
	}
	return lookups, nil
}

func readLookupTable(r *reader.R, read SubtableReader) (*Lookup, error) {
	lookupType, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	flag, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	subTableCount, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	offsets, err := r.ReadUint16Array(int(subTableCount))
	if err != nil {
		return nil, err
	}
	var markFilteringSet uint16
	if LookupFlag(flag)&FlagUseMarkFilteringSet != 0 {
		markFilteringSet, err = r.ReadUint16()
		if err != nil {
			return nil, err
		}
	}

	l := &Lookup{Type: lookupType, Flag: LookupFlag(flag), MarkFilteringSet: markFilteringSet}
	for _, off := range offsets {
		if off == 0 {
			continue
		}
		sub, err := r.SubWindow(int(off), r.Len()-int(off))
		if err != nil {
			continue
		}
		decoded, err := read(lookupType, sub)
		if err != nil {
			continue // a bad subtable must not take down the lookup
		}
		l.Subtables = append(l.Subtables, decoded)
	}
	return l, nil
}

// SequenceLookupRecord (called SubstLookupRecord for GSUB in the
// OpenType spec, and reused unchanged by GPOS contextual lookups) is
// the action attached to one position of a contextual rule: apply the
// lookup at LookupListIndex to the glyph at SequenceIndex.
type SequenceLookupRecord struct {
	SequenceIndex   uint16
	LookupListIndex uint16
}

// ReadSequenceLookupRecords decodes count consecutive
// SequenceLookupRecords.
func ReadSequenceLookupRecords(r *reader.R, count int) ([]SequenceLookupRecord, error) {
	out := make([]SequenceLookupRecord, count)
	for i := range out {
		seqIdx, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		lookupIdx, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		out[i] = SequenceLookupRecord{SequenceIndex: seqIdx, LookupListIndex: lookupIdx}
	}
	return out, nil
}

// ReadUint16ArrayField is a convenience used by both GSUB and GPOS
// contextual/chaining formats to read a count-prefixed uint16 array
// (glyph sequences, class sequences, coverage offset lists).
func ReadUint16ArrayField(r *reader.R) ([]uint16, error) {
	count, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	return r.ReadUint16Array(int(count))
}

// ReadCoverages resolves a list of Coverage-table offsets (relative to
// the calling sub-reader's own start, e.g. a format-3 contextual
// lookup's backtrack/input/lookahead coverage arrays) into decoded
// Coverage values.
func ReadCoverages(r *reader.R, offsets []uint16) ([]Coverage, error) {
	out := make([]Coverage, len(offsets))
	for i, off := range offsets {
		sub, err := r.SubWindow(int(off), r.Len()-int(off))
		if err != nil {
			continue
		}
		cov, err := ReadCoverage(sub)
		if err != nil {
			continue
		}
		out[i] = cov
	}
	return out, nil
}
