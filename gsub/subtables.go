// SPDX-License-Identifier: GPL-3.0-or-later

package gsub

import (
	"github.com/otfdecode/sfnt/font/sfntutil"
	"github.com/otfdecode/sfnt/otl"
	"github.com/otfdecode/sfnt/reader"
)

// Extension lookup type. An extension subtable must not wrap another
// extension subtable.
const extensionLookupType = 7

// Single is GSUB lookup type 1: replace each covered glyph with
// exactly one other glyph.
//
// Format 1 stores a constant delta added to the glyph ID; format 2
// stores an explicit substitute list, one per coverage index.
type Single struct {
	Format       uint16
	Coverage     otl.Coverage
	DeltaGlyphID int16    // format 1
	Substitute   []uint16 // format 2, indexed by coverage index
}

// Lookup looks up the substitute for gid, returning (0, false) if gid
// is not covered.
func (s *Single) Lookup(gid uint16) (uint16, bool) {
	idx := s.Coverage.Index(gid)
	if idx < 0 {
		return 0, false
	}
	if s.Format == 1 {
		return uint16(int32(gid) + int32(s.DeltaGlyphID)), true
	}
	if idx >= len(s.Substitute) {
		return 0, false
	}
	return s.Substitute[idx], true
}

func readSingle(r *reader.R) (interface{}, error) {
	format, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	covOff, err := r.ReadOffset16()
	if err != nil {
		return nil, err
	}
	s := &Single{Format: format}
	switch format {
	case 1:
		delta, err := r.ReadInt16()
		if err != nil {
			return nil, err
		}
		s.DeltaGlyphID = delta
	case 2:
		glyphCount, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		s.Substitute, err = r.ReadUint16Array(int(glyphCount))
		if err != nil {
			return nil, err
		}
	default:
		return nil, &sfntutil.UnsupportedFormatError{Where: "GSUB Single", Format: int(format)}
	}
	if covOff != 0 {
		if sub, err := r.SubWindow(int(covOff), r.Len()-int(covOff)); err == nil {
			s.Coverage, _ = otl.ReadCoverage(sub)
		}
	}
	return s, nil
}

// Multiple is GSUB lookup type 2: replace each covered glyph with a
// non-empty sequence of glyphs.
type Multiple struct {
	Coverage  otl.Coverage
	Sequences [][]uint16 // indexed by coverage index
}

func readMultiple(r *reader.R) (interface{}, error) {
	format, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	if format != 1 {
		return nil, &sfntutil.UnsupportedFormatError{Where: "GSUB Multiple", Format: int(format)}
	}
	covOff, err := r.ReadOffset16()
	if err != nil {
		return nil, err
	}
	seqOffsets, err := otl.ReadUint16ArrayField(r)
	if err != nil {
		return nil, err
	}
	m := &Multiple{Sequences: make([][]uint16, len(seqOffsets))}
	if covOff != 0 {
		if sub, err := r.SubWindow(int(covOff), r.Len()-int(covOff)); err == nil {
			m.Coverage, _ = otl.ReadCoverage(sub)
		}
	}
	for i, off := range seqOffsets {
		if off == 0 {
			continue
		}
		sub, err := r.SubWindow(int(off), r.Len()-int(off))
		if err != nil {
			continue
		}
		glyphs, err := otl.ReadUint16ArrayField(sub)
		if err != nil || len(glyphs) == 0 {
			continue
		}
		m.Sequences[i] = glyphs
	}
	return m, nil
}

// Alternate is GSUB lookup type 3: each covered glyph has a set of
// alternate glyphs a higher-level consumer may choose among.
type Alternate struct {
	Coverage   otl.Coverage
	Alternates [][]uint16 // indexed by coverage index
}

func readAlternate(r *reader.R) (interface{}, error) {
	format, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	if format != 1 {
		return nil, &sfntutil.UnsupportedFormatError{Where: "GSUB Alternate", Format: int(format)}
	}
	covOff, err := r.ReadOffset16()
	if err != nil {
		return nil, err
	}
	setOffsets, err := otl.ReadUint16ArrayField(r)
	if err != nil {
		return nil, err
	}
	a := &Alternate{Alternates: make([][]uint16, len(setOffsets))}
	if covOff != 0 {
		if sub, err := r.SubWindow(int(covOff), r.Len()-int(covOff)); err == nil {
			a.Coverage, _ = otl.ReadCoverage(sub)
		}
	}
	for i, off := range setOffsets {
		if off == 0 {
			continue
		}
		sub, err := r.SubWindow(int(off), r.Len()-int(off))
		if err != nil {
			continue
		}
		glyphs, err := otl.ReadUint16ArrayField(sub)
		if err != nil {
			continue
		}
		a.Alternates[i] = glyphs
	}
	return a, nil
}

// Ligature is one ligature substitution: a multi-component sequence
// collapses to a single glyph.
type Ligature struct {
	Glyph      uint16
	Components []uint16 // the glyphs after the first; len = componentCount-1
}

// LigatureSet is GSUB lookup type 4: per first-component-glyph
// coverage, the ligatures that may start with it.
type LigatureSet struct {
	Coverage  otl.Coverage
	Ligatures [][]Ligature // indexed by coverage index
}

func readLigatureSet(r *reader.R) (interface{}, error) {
	format, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	if format != 1 {
		return nil, &sfntutil.UnsupportedFormatError{Where: "GSUB Ligature", Format: int(format)}
	}
	covOff, err := r.ReadOffset16()
	if err != nil {
		return nil, err
	}
	setOffsets, err := otl.ReadUint16ArrayField(r)
	if err != nil {
		return nil, err
	}
	ls := &LigatureSet{Ligatures: make([][]Ligature, len(setOffsets))}
	if covOff != 0 {
		if sub, err := r.SubWindow(int(covOff), r.Len()-int(covOff)); err == nil {
			ls.Coverage, _ = otl.ReadCoverage(sub)
		}
	}
	for i, off := range setOffsets {
		if off == 0 {
			continue
		}
		sub, err := r.SubWindow(int(off), r.Len()-int(off))
		if err != nil {
			continue
		}
		ligOffsets, err := otl.ReadUint16ArrayField(sub)
		if err != nil {
			continue
		}
		ligs := make([]Ligature, 0, len(ligOffsets))
		for _, loff := range ligOffsets {
			if loff == 0 {
				continue
			}
			lsub, err := sub.SubWindow(int(loff), sub.Len()-int(loff))
			if err != nil {
				continue
			}
			glyph, err := lsub.ReadUint16()
			if err != nil {
				continue
			}
			componentCount, err := lsub.ReadUint16()
			if err != nil || componentCount == 0 {
				continue
			}
			components, err := lsub.ReadUint16Array(int(componentCount) - 1)
			if err != nil {
				continue
			}
			ligs = append(ligs, Ligature{Glyph: glyph, Components: components})
		}
		ls.Ligatures[i] = ligs
	}
	return ls, nil
}

// ReverseChainingSingle is GSUB lookup type 8: a single-glyph
// substitution applied right-to-left with backtrack/lookahead
// context, used for Arabic/Hebrew-style final-form substitutions that
// cannot be expressed as an ordinary forward rule.
type ReverseChainingSingle struct {
	Coverage          otl.Coverage
	BacktrackCoverage []otl.Coverage
	LookaheadCoverage []otl.Coverage
	Substitute        []uint16 // indexed by coverage index
}

func readReverseChainingSingle(r *reader.R) (interface{}, error) {
	format, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	if format != 1 {
		return nil, &sfntutil.UnsupportedFormatError{Where: "GSUB ReverseChainingSingle", Format: int(format)}
	}
	covOff, err := r.ReadOffset16()
	if err != nil {
		return nil, err
	}
	backtrackOffsets, err := otl.ReadUint16ArrayField(r)
	if err != nil {
		return nil, err
	}
	lookaheadOffsets, err := otl.ReadUint16ArrayField(r)
	if err != nil {
		return nil, err
	}
	glyphCount, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	substitute, err := r.ReadUint16Array(int(glyphCount))
	if err != nil {
		return nil, err
	}
	rc := &ReverseChainingSingle{Substitute: substitute}
	if covOff != 0 {
		if sub, err := r.SubWindow(int(covOff), r.Len()-int(covOff)); err == nil {
			rc.Coverage, _ = otl.ReadCoverage(sub)
		}
	}
	rc.BacktrackCoverage, _ = otl.ReadCoverages(r, backtrackOffsets)
	rc.LookaheadCoverage, _ = otl.ReadCoverages(r, lookaheadOffsets)
	return rc, nil
}

// Extension wraps a subtable of another lookup type whose offset
// would not otherwise fit a 16-bit field (GSUB lookup type 7).
type Extension struct {
	ExtensionLookupType uint16
	Subtable            interface{}
}

func readExtension(r *reader.R) (interface{}, error) {
	format, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	if format != 1 {
		return nil, &sfntutil.UnsupportedFormatError{Where: "GSUB Extension", Format: int(format)}
	}
	extType, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	extOff, err := r.ReadOffset32()
	if err != nil {
		return nil, err
	}
	if extType == extensionLookupType {
		return nil, &sfntutil.UnsupportedLookupTypeError{Where: "GSUB Extension (self-reference)", Type: int(extType)}
	}
	sub, err := r.SubWindow(int(extOff), r.Len()-int(extOff))
	if err != nil {
		return nil, err
	}
	inner, err := readSubtable(extType, sub)
	if err != nil {
		return nil, err
	}
	return &Extension{ExtensionLookupType: extType, Subtable: inner}, nil
}

func readSubtable(lookupType uint16, r *reader.R) (interface{}, error) {
	switch lookupType {
	case 1:
		return readSingle(r)
	case 2:
		return readMultiple(r)
	case 3:
		return readAlternate(r)
	case 4:
		return readLigatureSet(r)
	case 5:
		return otl.ReadSequenceContext(r)
	case 6:
		return otl.ReadChainedSequenceContext(r)
	case 7:
		return readExtension(r)
	case 8:
		return readReverseChainingSingle(r)
	default:
		return nil, &sfntutil.UnsupportedLookupTypeError{Where: "GSUB", Type: int(lookupType)}
	}
}
