// SPDX-License-Identifier: GPL-3.0-or-later

package cff

import (
	"strconv"

	"github.com/otfdecode/sfnt/font/sfntutil"
)

// Dict operator codes. Two-byte ("escape") operators are folded into
// a single key as 0x0c00|op2, mirroring how the byte stream itself
// prefixes them with byte 12.
const (
	opVersion        = 0
	opNotice         = 1
	opFullName       = 2
	opFamilyName     = 3
	opWeight         = 4
	opFontBBox       = 5
	opBlueValues     = 6
	opOtherBlues     = 7
	opFamilyBlues    = 8
	opFamilyOther    = 9
	opStdHW          = 10
	opStdVW          = 11
	opUniqueID       = 13
	opXUID           = 14
	opCharset        = 15
	opEncoding       = 16
	opCharStrings    = 17
	opPrivate        = 18
	opSubrs          = 19
	opDefaultWidthX  = 20
	opNominalWidthX  = 21
	opVsIndex        = 22 // CFF2 charstring/DICT operand default
	opBlend          = 23 // CFF2
	opVariationStore = 24 // CFF2 top DICT

	escape           = 0x0c00
	opCopyright      = escape | 0
	opIsFixedPitch   = escape | 1
	opCharstringType = escape | 6
	opFontMatrix     = escape | 7
	opROS            = escape | 30
	opCIDFontVersion = escape | 31
	opCIDCount       = escape | 34
	opFDArray        = escape | 36
	opFDSelect       = escape | 37
	opFontName       = escape | 38
)

// Dict is a decoded CFF/CFF2 DICT: operator code to operand list. All
// numeric operands are stored as float64; the real-number encoding
// used by the format cannot otherwise distinguish intent.
type Dict map[uint16][]float64

// Int returns the single integer operand of op, or (0, false) if op
// is absent.
func (d Dict) Int(op uint16) (int32, bool) {
	v, ok := d[op]
	if !ok || len(v) == 0 {
		return 0, false
	}
	return int32(v[0]), true
}

// IntDefault returns the single integer operand of op, or def if
// absent.
func (d Dict) IntDefault(op uint16, def int32) int32 {
	v, ok := d.Int(op)
	if !ok {
		return def
	}
	return v
}

// Ints returns all operands of op as integers.
func (d Dict) Ints(op uint16) []int32 {
	v, ok := d[op]
	if !ok {
		return nil
	}
	out := make([]int32, len(v))
	for i, x := range v {
		out[i] = int32(x)
	}
	return out
}

// readDict decodes a CFF/CFF2 DICT from a raw byte slice (DICTs are
// embedded inline in Top/Font/Private DICT INDEX entries, not read
// through the cursor directly, so this operates on []byte rather than
// *reader.R).
func readDict(buf []byte) (Dict, error) {
	d := Dict{}
	var stack []float64
	for len(buf) > 0 {
		b0 := buf[0]
		switch {
		case b0 == 12:
			if len(buf) < 2 {
				return nil, &sfntutil.InvalidDictEncodingError{Reason: "truncated escape operator"}
			}
			d[0x0c00|uint16(buf[1])] = stack
			stack = nil
			buf = buf[2:]
		case b0 <= 24: // 22-24 are the CFF2 vsindex/blend/vstore operators
			d[uint16(b0)] = stack
			stack = nil
			buf = buf[1:]
		case b0 == 28:
			if len(buf) < 3 {
				return nil, &sfntutil.InvalidDictEncodingError{Reason: "truncated int16 operand"}
			}
			v := int16(uint16(buf[1])<<8 | uint16(buf[2]))
			stack = append(stack, float64(v))
			buf = buf[3:]
		case b0 == 29:
			if len(buf) < 5 {
				return nil, &sfntutil.InvalidDictEncodingError{Reason: "truncated int32 operand"}
			}
			v := int32(uint32(buf[1])<<24 | uint32(buf[2])<<16 | uint32(buf[3])<<8 | uint32(buf[4]))
			stack = append(stack, float64(v))
			buf = buf[5:]
		case b0 == 30:
			rest, v, err := decodeReal(buf[1:])
			if err != nil {
				return nil, err
			}
			stack = append(stack, v)
			buf = rest
		case b0 == 25 || b0 == 26 || b0 == 27, b0 == 31, b0 == 255:
			return nil, &sfntutil.InvalidDictEncodingError{Reason: "reserved DICT byte " + strconv.Itoa(int(b0))}
		case b0 <= 246:
			stack = append(stack, float64(int32(b0)-139))
			buf = buf[1:]
		case b0 <= 250:
			if len(buf) < 2 {
				return nil, &sfntutil.InvalidDictEncodingError{Reason: "truncated short operand"}
			}
			stack = append(stack, float64(int32(b0)*256+int32(buf[1])+(108-247*256)))
			buf = buf[2:]
		default: // 251..254
			if len(buf) < 2 {
				return nil, &sfntutil.InvalidDictEncodingError{Reason: "truncated short operand"}
			}
			stack = append(stack, float64(-int32(b0)*256-int32(buf[1])-(108-251*256)))
			buf = buf[2:]
		}
	}
	return d, nil
}

// decodeReal decodes a CFF real-number operand (nibble-packed decimal,
// terminator nibble 0xf) following the leading 0x1e byte already
// consumed by the caller.
func decodeReal(buf []byte) ([]byte, float64, error) {
	var s []byte
	first := true
	var next byte
	for {
		var nibble byte
		if first {
			if len(buf) == 0 {
				return nil, 0, &sfntutil.InvalidDictEncodingError{Reason: "truncated real number"}
			}
			next, buf = buf[0], buf[1:]
			nibble = next >> 4
			next &= 0x0f
			first = false
		} else {
			nibble = next
			first = true
		}
		switch nibble {
		case 0xa:
			s = append(s, '.')
		case 0xb:
			s = append(s, 'e')
		case 0xc:
			s = append(s, 'e', '-')
		case 0xd:
			return nil, 0, &sfntutil.InvalidDictEncodingError{Reason: "reserved real-number nibble"}
		case 0xe:
			s = append(s, '-')
		case 0xf:
			v, err := strconv.ParseFloat(string(s), 64)
			if err != nil {
				return nil, 0, &sfntutil.InvalidDictEncodingError{Reason: "malformed real number"}
			}
			return buf, v, nil
		default:
			s = append(s, '0'+nibble)
		}
	}
}
