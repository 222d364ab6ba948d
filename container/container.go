// SPDX-License-Identifier: GPL-3.0-or-later

// Package container implements the top-level sfnt/OpenType container
// loader: scalar-type classification, TrueType Collection dispatch, table
// directory construction, checksum verification, and dependency-ordered
// table parsing.
package container

import (
	"fmt"

	"github.com/otfdecode/sfnt/font/sfntutil"
	"github.com/otfdecode/sfnt/font/tag"
	"github.com/otfdecode/sfnt/reader"
)

// Scaler type tags recognized at the start of a single font.
const (
	ScalerTrueType = 0x00010000
	ScalerCFF      = 0x4F54544F // "OTTO"
	ScalerApple    = 0x74727565 // "true"
	ScalerTTC      = 0x74746366 // "ttcf"
)

// Meta is the directory-entry metadata for one table, plus whether its
// stored checksum matched the computed one.
type Meta struct {
	Tag           tag.Tag
	Checksum      uint32
	Offset        uint32
	Length        uint32
	ChecksumValid bool
}

// Table is one directory entry together with its parse result. Parsed is
// nil if no parser is registered for the tag or if parsing failed; in
// either case Data still holds the raw table bytes and Err (if non-nil)
// explains why Parsed is absent.
type Table struct {
	Meta   Meta
	Data   []byte
	Parsed interface{}
	Err    error
}

// Font is a single sfnt resource: a table directory plus the parsed
// tables reachable from it. A Font is built once by Open and is
// thereafter immutable; it is safe to use concurrently once Open has
// returned, but must not be shared across goroutines while still being
// built.
type Font struct {
	buf        []byte
	ScalerType uint32
	Tags       []tag.Tag // file order
	Tables     map[tag.Tag]*Table

	Diagnostics []sfntutil.Diagnostic
}

// Collection is an ordered TrueType Collection (TTC) of member fonts.
// Member fonts may alias tables in the shared buffer.
type Collection struct {
	MajorVersion uint16
	MinorVersion uint16
	Fonts        []*Font
}

// Parser decodes the table named by entry.Tag from r (a cursor windowed
// to exactly [entry.Offset, entry.Offset+entry.Length)) and may consult
// f for already-parsed dependency tables.
type Parser func(r *reader.R, entry Meta, f *Font) (interface{}, error)

var registry = map[tag.Tag]Parser{}

// Register installs the parser used for table t. Table packages call
// this from an init function; the registry is global because a Font's
// directory is only known at Open time, not at compile time.
func Register(t tag.Tag, p Parser) {
	registry[t] = p
}

// priority lists the tags that must be parsed before all others, in
// order, because later parsers read fields they expose (hmtx, vmtx and
// post read maxp.numGlyphs; many tables read head.indexToLocFormat or
// head.unitsPerEm). hhea and vhea are not listed: they are parsed in
// directory order, which puts them before hmtx and vmtx when the
// directory is sorted by tag.
var priority = []string{"head", "maxp", "OS/2"}

// Open classifies buf and parses either a single Font or a Collection.
// The returned error is non-nil only for conditions that prevent any
// table from being read at all (unrecognized scalar type, truncated
// directory); per-table failures are instead recorded as Diagnostics on
// the resulting Font(s).
func Open(buf []byte) (*Font, *Collection, error) {
	if len(buf) < 4 {
		return nil, nil, sfntutil.ErrUnexpectedEOF
	}
	r := reader.New(buf)
	tagBytes, err := r.ReadBytes(4)
	if err != nil {
		return nil, nil, err
	}
	scalerType := uint32(tagBytes[0])<<24 | uint32(tagBytes[1])<<16 | uint32(tagBytes[2])<<8 | uint32(tagBytes[3])

	if scalerType == ScalerTTC {
		coll, err := openCollection(buf)
		return nil, coll, err
	}

	switch scalerType {
	case ScalerTrueType, ScalerCFF, ScalerApple:
	default:
		return nil, nil, fmt.Errorf("sfnt: unrecognized scaler type 0x%08X", scalerType)
	}

	f, err := openFont(buf, 0, scalerType)
	return f, nil, err
}

func openCollection(buf []byte) (*Collection, error) {
	r := reader.New(buf)
	if err := r.Skip(4); err != nil {
		return nil, err
	}
	major, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	minor, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	numFonts, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}

	offsets := make([]uint32, numFonts)
	for i := range offsets {
		off, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}
		offsets[i] = off
	}

	coll := &Collection{MajorVersion: major, MinorVersion: minor}
	for _, off := range offsets {
		sub := reader.New(buf)
		if err := sub.SeekAbs(int(off)); err != nil {
			return nil, err
		}
		tagBytes, err := sub.ReadBytes(4)
		if err != nil {
			return nil, err
		}
		scalerType := uint32(tagBytes[0])<<24 | uint32(tagBytes[1])<<16 | uint32(tagBytes[2])<<8 | uint32(tagBytes[3])
		switch scalerType {
		case ScalerTrueType, ScalerCFF, ScalerApple:
		default:
			return nil, fmt.Errorf("sfnt: collection member at %d: unrecognized scaler type 0x%08X", off, scalerType)
		}
		f, err := openFont(buf, int(off), scalerType)
		if err != nil {
			return nil, err
		}
		coll.Fonts = append(coll.Fonts, f)
	}
	return coll, nil
}

// openFont reads a single font's table directory starting at base and
// parses its tables in dependency order.
func openFont(buf []byte, base int, scalerType uint32) (*Font, error) {
	r := reader.New(buf)
	if err := r.SeekAbs(base + 4); err != nil {
		return nil, err
	}
	numTables, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	// searchRange, entrySelector, rangeShift: not needed for decoding.
	if err := r.Skip(6); err != nil {
		return nil, err
	}

	f := &Font{
		buf:        buf,
		ScalerType: scalerType,
		Tables:     make(map[tag.Tag]*Table, numTables),
	}

	entries := make([]Meta, 0, numTables)
	for i := 0; i < int(numTables); i++ {
		tagBytes, err := r.ReadBytes(4)
		if err != nil {
			return nil, err
		}
		t, _ := tag.FromBytes(tagBytes)
		checksum, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}
		offset, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}
		length, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}
		if int(offset)+int(length) > len(buf) {
			f.Diagnostics = append(f.Diagnostics, sfntutil.Diagnostic{
				Table:   t.String(),
				Message: "table extends beyond end of buffer, skipped",
			})
			continue
		}
		entries = append(entries, Meta{Tag: t, Checksum: checksum, Offset: offset, Length: length})
		f.Tags = append(f.Tags, t)
	}

	order := parseOrder(entries)
	for _, entry := range order {
		data := buf[entry.Offset : entry.Offset+entry.Length]
		entry.ChecksumValid = verifyChecksum(data, entry)
		if !entry.ChecksumValid {
			f.Diagnostics = append(f.Diagnostics, sfntutil.Diagnostic{
				Table:   entry.Tag.String(),
				Message: "checksum mismatch",
			})
		}

		tbl := &Table{Meta: entry, Data: data}
		if p, ok := registry[entry.Tag]; ok {
			parsed, perr := p(reader.NewWindow(buf, int(entry.Offset), int(entry.Offset+entry.Length)), entry, f)
			if perr != nil {
				tbl.Err = perr
				f.Diagnostics = append(f.Diagnostics, sfntutil.Diagnostic{
					Table:   entry.Tag.String(),
					Message: "parse failed",
					Err:     perr,
				})
			} else {
				tbl.Parsed = parsed
			}
		}
		f.Tables[entry.Tag] = tbl
	}

	return f, nil
}

// parseOrder returns entries in priority order (head, maxp, OS/2 first,
// each if present) followed by the remaining entries in file order.
func parseOrder(entries []Meta) []Meta {
	byTag := make(map[string]Meta, len(entries))
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		byTag[e.Tag.String()] = e
	}

	out := make([]Meta, 0, len(entries))
	for _, name := range priority {
		if e, ok := byTag[name]; ok {
			out = append(out, e)
			seen[name] = true
		}
	}
	for _, e := range entries {
		if !seen[e.Tag.String()] {
			out = append(out, e)
		}
	}
	return out
}

// verifyChecksum computes the stored sfnt table checksum algorithm: the
// sum, modulo 2^32, of the table's bytes interpreted as big-endian
// uint32s with the final word zero-padded. The head table is special:
// its own checkSumAdjustment field (at table offset 8) is excluded from
// the comparison (per the OpenType spec, the field holds a value chosen
// so that the checksum of the whole font equals a fixed constant, which
// this decoder does not attempt to verify; only the per-table sum
// excluding that field is checked).
func verifyChecksum(data []byte, entry Meta) bool {
	var sum uint32
	isHead := entry.Tag.String() == "head"
	for i := 0; i < len(data); i += 4 {
		var word uint32
		for j := 0; j < 4; j++ {
			var b byte
			if i+j < len(data) {
				b = data[i+j]
			}
			word = word<<8 | uint32(b)
		}
		if isHead && i == 8 {
			continue
		}
		sum += word
	}
	return sum == entry.Checksum
}

// Find returns the parsed value registered for tag t, or nil and false
// if the table is absent or failed to parse.
func (f *Font) Find(t tag.Tag) (interface{}, bool) {
	tbl, ok := f.Tables[t]
	if !ok || tbl.Parsed == nil {
		return nil, false
	}
	return tbl.Parsed, true
}

// RawTable returns the raw bytes of table t, or nil and false if absent.
func (f *Font) RawTable(t tag.Tag) ([]byte, bool) {
	tbl, ok := f.Tables[t]
	if !ok {
		return nil, false
	}
	return tbl.Data, true
}

// Has reports whether every named tag is present in the directory.
func (f *Font) Has(tags ...tag.Tag) bool {
	for _, t := range tags {
		if _, ok := f.Tables[t]; !ok {
			return false
		}
	}
	return true
}

// Buffer returns the full underlying byte buffer the font was parsed
// from. Table parsers use this to resolve offsets that are relative to
// the whole file rather than to their own table (none currently are,
// but cross-table references such as name-table string storage are
// relative to the name table's own start, reachable via entry.Offset).
func (f *Font) Buffer() []byte { return f.buf }
