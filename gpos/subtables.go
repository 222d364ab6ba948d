// SPDX-License-Identifier: GPL-3.0-or-later

package gpos

import (
	"github.com/otfdecode/sfnt/font/sfntutil"
	"github.com/otfdecode/sfnt/otl"
	"github.com/otfdecode/sfnt/reader"
)

const extensionLookupType = 9

// SinglePositioning is GPOS lookup type 1: apply one ValueRecord to
// every covered glyph (format 1), or an individually-chosen
// ValueRecord per coverage index (format 2).
type SinglePositioning struct {
	Format   uint16
	Coverage otl.Coverage
	Value    *otl.ValueRecord   // format 1
	Values   []*otl.ValueRecord // format 2, indexed by coverage index
}

func readSinglePositioning(r *reader.R) (interface{}, error) {
	format, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	covOff, err := r.ReadOffset16()
	if err != nil {
		return nil, err
	}
	valueFormat, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	s := &SinglePositioning{Format: format}
	switch format {
	case 1:
		s.Value, err = otl.ReadValueRecord(r, valueFormat, r)
		if err != nil {
			return nil, err
		}
	case 2:
		count, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		s.Values = make([]*otl.ValueRecord, count)
		for i := range s.Values {
			s.Values[i], err = otl.ReadValueRecord(r, valueFormat, r)
			if err != nil {
				return nil, err
			}
		}
	default:
		return nil, &sfntutil.UnsupportedFormatError{Where: "GPOS Single", Format: int(format)}
	}
	if covOff != 0 {
		if sub, err := r.SubWindow(int(covOff), r.Len()-int(covOff)); err == nil {
			s.Coverage, _ = otl.ReadCoverage(sub)
		}
	}
	return s, nil
}

// PairValue is one second-glyph entry of a PairSet (format 1).
type PairValue struct {
	SecondGlyph uint16
	Value1      *otl.ValueRecord
	Value2      *otl.ValueRecord
}

// PairClassRecord is one (class1, class2) cell of a format-2 pair
// positioning table.
type PairClassRecord struct {
	Value1 *otl.ValueRecord
	Value2 *otl.ValueRecord
}

// PairPositioning is GPOS lookup type 2: adjust the positions of two
// consecutive glyphs, either by explicit glyph pair (format 1) or by
// glyph-class pair (format 2, e.g. kerning classes).
type PairPositioning struct {
	Format       uint16
	Coverage     otl.Coverage
	PairSets     [][]PairValue // format 1, indexed by coverage index
	ClassDef1    otl.ClassDef  // format 2
	ClassDef2    otl.ClassDef
	Class1Count  uint16
	Class2Count  uint16
	ClassRecords []PairClassRecord // format 2, row-major [class1*Class2Count+class2]
}

func readPairPositioning(r *reader.R) (interface{}, error) {
	format, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	covOff, err := r.ReadOffset16()
	if err != nil {
		return nil, err
	}
	valueFormat1, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	valueFormat2, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	p := &PairPositioning{Format: format}
	switch format {
	case 1:
		setOffsets, err := otl.ReadUint16ArrayField(r)
		if err != nil {
			return nil, err
		}
		p.PairSets = make([][]PairValue, len(setOffsets))
		for i, off := range setOffsets {
			if off == 0 {
				continue
			}
			sub, err := r.SubWindow(int(off), r.Len()-int(off))
			if err != nil {
				continue
			}
			count, err := sub.ReadUint16()
			if err != nil {
				continue
			}
			values := make([]PairValue, 0, count)
			for j := 0; j < int(count); j++ {
				second, err := sub.ReadUint16()
				if err != nil {
					break
				}
				v1, err := otl.ReadValueRecord(sub, valueFormat1, sub)
				if err != nil {
					break
				}
				v2, err := otl.ReadValueRecord(sub, valueFormat2, sub)
				if err != nil {
					break
				}
				values = append(values, PairValue{SecondGlyph: second, Value1: v1, Value2: v2})
			}
			p.PairSets[i] = values
		}
	case 2:
		classDef1Off, err := r.ReadOffset16()
		if err != nil {
			return nil, err
		}
		classDef2Off, err := r.ReadOffset16()
		if err != nil {
			return nil, err
		}
		class1Count, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		class2Count, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		p.Class1Count, p.Class2Count = class1Count, class2Count
		p.ClassRecords = make([]PairClassRecord, int(class1Count)*int(class2Count))
		for i := range p.ClassRecords {
			v1, err := otl.ReadValueRecord(r, valueFormat1, r)
			if err != nil {
				return nil, err
			}
			v2, err := otl.ReadValueRecord(r, valueFormat2, r)
			if err != nil {
				return nil, err
			}
			p.ClassRecords[i] = PairClassRecord{Value1: v1, Value2: v2}
		}
		if classDef1Off != 0 {
			if sub, err := r.SubWindow(int(classDef1Off), r.Len()-int(classDef1Off)); err == nil {
				p.ClassDef1, _ = otl.ReadClassDef(sub)
			}
		}
		if classDef2Off != 0 {
			if sub, err := r.SubWindow(int(classDef2Off), r.Len()-int(classDef2Off)); err == nil {
				p.ClassDef2, _ = otl.ReadClassDef(sub)
			}
		}
	default:
		return nil, &sfntutil.UnsupportedFormatError{Where: "GPOS Pair", Format: int(format)}
	}
	if covOff != 0 {
		if sub, err := r.SubWindow(int(covOff), r.Len()-int(covOff)); err == nil {
			p.Coverage, _ = otl.ReadCoverage(sub)
		}
	}
	return p, nil
}

// Class looks up the (class1, class2) cell for a format-2 table, or
// nil if out of range.
func (p *PairPositioning) Class(class1, class2 uint16) *PairClassRecord {
	if p.Format != 2 || class1 >= p.Class1Count || class2 >= p.Class2Count {
		return nil
	}
	return &p.ClassRecords[int(class1)*int(p.Class2Count)+int(class2)]
}

// EntryExit is one glyph's cursive-attachment anchors: where another
// glyph may attach to this one's entry point, and where this glyph
// attaches to the previous glyph's exit point.
type EntryExit struct {
	Entry *otl.Anchor
	Exit  *otl.Anchor
}

// CursivePositioning is GPOS lookup type 3: connects consecutive
// glyphs by their entry/exit anchor points, used for cursive scripts.
type CursivePositioning struct {
	Coverage   otl.Coverage
	EntryExits []EntryExit // indexed by coverage index
}

func readCursivePositioning(r *reader.R) (interface{}, error) {
	format, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	if format != 1 {
		return nil, &sfntutil.UnsupportedFormatError{Where: "GPOS Cursive", Format: int(format)}
	}
	covOff, err := r.ReadOffset16()
	if err != nil {
		return nil, err
	}
	count, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	c := &CursivePositioning{EntryExits: make([]EntryExit, count)}
	for i := range c.EntryExits {
		entryOff, err := r.ReadOffset16()
		if err != nil {
			return nil, err
		}
		exitOff, err := r.ReadOffset16()
		if err != nil {
			return nil, err
		}
		if entryOff != 0 {
			if sub, err := r.SubWindow(int(entryOff), r.Len()-int(entryOff)); err == nil {
				c.EntryExits[i].Entry, _ = otl.ReadAnchor(sub)
			}
		}
		if exitOff != 0 {
			if sub, err := r.SubWindow(int(exitOff), r.Len()-int(exitOff)); err == nil {
				c.EntryExits[i].Exit, _ = otl.ReadAnchor(sub)
			}
		}
	}
	if covOff != 0 {
		if sub, err := r.SubWindow(int(covOff), r.Len()-int(covOff)); err == nil {
			c.Coverage, _ = otl.ReadCoverage(sub)
		}
	}
	return c, nil
}

// readAnchorArray reads a BaseRecord/LigatureComponent-style row of
// markClassCount anchor offsets, all relative to base's own start.
func readAnchorArray(r, base *reader.R, markClassCount int) ([]*otl.Anchor, error) {
	anchors := make([]*otl.Anchor, markClassCount)
	for i := range anchors {
		off, err := r.ReadOffset16()
		if err != nil {
			return nil, err
		}
		if off == 0 {
			continue
		}
		sub, err := base.SubWindow(int(off), base.Len()-int(off))
		if err != nil {
			continue
		}
		anchors[i], _ = otl.ReadAnchor(sub)
	}
	return anchors, nil
}

// MarkToBasePositioning is GPOS lookup type 4: attach a mark glyph to
// a base glyph's class-specific anchor.
type MarkToBasePositioning struct {
	MarkCoverage   otl.Coverage
	BaseCoverage   otl.Coverage
	MarkClassCount uint16
	Marks          otl.MarkArray
	BaseAnchors    [][]*otl.Anchor // [baseCoverageIndex][markClass]
}

func readMarkToBase(r *reader.R) (interface{}, error) {
	format, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	if format != 1 {
		return nil, &sfntutil.UnsupportedFormatError{Where: "GPOS MarkToBase", Format: int(format)}
	}
	markCovOff, err := r.ReadOffset16()
	if err != nil {
		return nil, err
	}
	baseCovOff, err := r.ReadOffset16()
	if err != nil {
		return nil, err
	}
	markClassCount, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	markArrayOff, err := r.ReadOffset16()
	if err != nil {
		return nil, err
	}
	baseArrayOff, err := r.ReadOffset16()
	if err != nil {
		return nil, err
	}
	m := &MarkToBasePositioning{MarkClassCount: markClassCount}
	if markCovOff != 0 {
		if sub, err := r.SubWindow(int(markCovOff), r.Len()-int(markCovOff)); err == nil {
			m.MarkCoverage, _ = otl.ReadCoverage(sub)
		}
	}
	if baseCovOff != 0 {
		if sub, err := r.SubWindow(int(baseCovOff), r.Len()-int(baseCovOff)); err == nil {
			m.BaseCoverage, _ = otl.ReadCoverage(sub)
		}
	}
	if markArrayOff != 0 {
		if sub, err := r.SubWindow(int(markArrayOff), r.Len()-int(markArrayOff)); err == nil {
			m.Marks, _ = otl.ReadMarkArray(sub)
		}
	}
	if baseArrayOff != 0 {
		sub, err := r.SubWindow(int(baseArrayOff), r.Len()-int(baseArrayOff))
		if err == nil {
			baseCount, err := sub.ReadUint16()
			if err == nil {
				m.BaseAnchors = make([][]*otl.Anchor, baseCount)
				for i := range m.BaseAnchors {
					m.BaseAnchors[i], _ = readAnchorArray(sub, sub, int(markClassCount))
				}
			}
		}
	}
	return m, nil
}

// LigatureAttach holds, per ligature component, the anchors available
// for each mark class.
type LigatureAttach [][]*otl.Anchor // [component][markClass]

// MarkToLigaturePositioning is GPOS lookup type 5: attach a mark
// glyph to one component of a ligature glyph.
type MarkToLigaturePositioning struct {
	MarkCoverage     otl.Coverage
	LigatureCoverage otl.Coverage
	MarkClassCount   uint16
	Marks            otl.MarkArray
	Ligatures        []LigatureAttach // indexed by ligature coverage index
}

func readMarkToLigature(r *reader.R) (interface{}, error) {
	format, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	if format != 1 {
		return nil, &sfntutil.UnsupportedFormatError{Where: "GPOS MarkToLigature", Format: int(format)}
	}
	markCovOff, err := r.ReadOffset16()
	if err != nil {
		return nil, err
	}
	ligCovOff, err := r.ReadOffset16()
	if err != nil {
		return nil, err
	}
	markClassCount, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	markArrayOff, err := r.ReadOffset16()
	if err != nil {
		return nil, err
	}
	ligArrayOff, err := r.ReadOffset16()
	if err != nil {
		return nil, err
	}
	m := &MarkToLigaturePositioning{MarkClassCount: markClassCount}
	if markCovOff != 0 {
		if sub, err := r.SubWindow(int(markCovOff), r.Len()-int(markCovOff)); err == nil {
			m.MarkCoverage, _ = otl.ReadCoverage(sub)
		}
	}
	if ligCovOff != 0 {
		if sub, err := r.SubWindow(int(ligCovOff), r.Len()-int(ligCovOff)); err == nil {
			m.LigatureCoverage, _ = otl.ReadCoverage(sub)
		}
	}
	if markArrayOff != 0 {
		if sub, err := r.SubWindow(int(markArrayOff), r.Len()-int(markArrayOff)); err == nil {
			m.Marks, _ = otl.ReadMarkArray(sub)
		}
	}
	if ligArrayOff != 0 {
		sub, err := r.SubWindow(int(ligArrayOff), r.Len()-int(ligArrayOff))
		if err == nil {
			ligCount, err := sub.ReadUint16()
			if err == nil {
				attachOffsets, err := sub.ReadUint16Array(int(ligCount))
				if err == nil {
					m.Ligatures = make([]LigatureAttach, ligCount)
					for i, off := range attachOffsets {
						if off == 0 {
							continue
						}
						asub, err := sub.SubWindow(int(off), sub.Len()-int(off))
						if err != nil {
							continue
						}
						componentCount, err := asub.ReadUint16()
						if err != nil {
							continue
						}
						attach := make(LigatureAttach, componentCount)
						for c := range attach {
							attach[c], _ = readAnchorArray(asub, asub, int(markClassCount))
						}
						m.Ligatures[i] = attach
					}
				}
			}
		}
	}
	return m, nil
}

// MarkToMarkPositioning is GPOS lookup type 6: attach a mark glyph to
// another mark glyph, e.g. stacking diacritics.
type MarkToMarkPositioning struct {
	Mark1Coverage  otl.Coverage
	Mark2Coverage  otl.Coverage
	MarkClassCount uint16
	Mark1Array     otl.MarkArray
	Mark2Anchors   [][]*otl.Anchor // [mark2CoverageIndex][markClass]
}

func readMarkToMark(r *reader.R) (interface{}, error) {
	format, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	if format != 1 {
		return nil, &sfntutil.UnsupportedFormatError{Where: "GPOS MarkToMark", Format: int(format)}
	}
	mark1CovOff, err := r.ReadOffset16()
	if err != nil {
		return nil, err
	}
	mark2CovOff, err := r.ReadOffset16()
	if err != nil {
		return nil, err
	}
	markClassCount, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	mark1ArrayOff, err := r.ReadOffset16()
	if err != nil {
		return nil, err
	}
	mark2ArrayOff, err := r.ReadOffset16()
	if err != nil {
		return nil, err
	}
	m := &MarkToMarkPositioning{MarkClassCount: markClassCount}
	if mark1CovOff != 0 {
		if sub, err := r.SubWindow(int(mark1CovOff), r.Len()-int(mark1CovOff)); err == nil {
			m.Mark1Coverage, _ = otl.ReadCoverage(sub)
		}
	}
	if mark2CovOff != 0 {
		if sub, err := r.SubWindow(int(mark2CovOff), r.Len()-int(mark2CovOff)); err == nil {
			m.Mark2Coverage, _ = otl.ReadCoverage(sub)
		}
	}
	if mark1ArrayOff != 0 {
		if sub, err := r.SubWindow(int(mark1ArrayOff), r.Len()-int(mark1ArrayOff)); err == nil {
			m.Mark1Array, _ = otl.ReadMarkArray(sub)
		}
	}
	if mark2ArrayOff != 0 {
		sub, err := r.SubWindow(int(mark2ArrayOff), r.Len()-int(mark2ArrayOff))
		if err == nil {
			mark2Count, err := sub.ReadUint16()
			if err == nil {
				m.Mark2Anchors = make([][]*otl.Anchor, mark2Count)
				for i := range m.Mark2Anchors {
					m.Mark2Anchors[i], _ = readAnchorArray(sub, sub, int(markClassCount))
				}
			}
		}
	}
	return m, nil
}

// Extension wraps a subtable of another lookup type whose offset
// would not otherwise fit a 16-bit field (GPOS lookup type 9).
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
		return nil, &sfntutil.UnsupportedFormatError{Where: "GPOS Extension", Format: int(format)}
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
		return nil, &sfntutil.UnsupportedLookupTypeError{Where: "GPOS Extension (self-reference)", Type: int(extType)}
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
		return readSinglePositioning(r)
	case 2:
		return readPairPositioning(r)
	case 3:
		return readCursivePositioning(r)
	case 4:
		return readMarkToBase(r)
	case 5:
		return readMarkToLigature(r)
	case 6:
		return readMarkToMark(r)
	case 7:
		return otl.ReadSequenceContext(r)
	case 8:
		return otl.ReadChainedSequenceContext(r)
	case 9:
		return readExtension(r)
	default:
		return nil, &sfntutil.UnsupportedLookupTypeError{Where: "GPOS", Type: int(lookupType)}
	}
}
