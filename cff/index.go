// SPDX-License-Identifier: GPL-3.0-or-later

package cff

import (
	"github.com/otfdecode/sfnt/font/sfntutil"
	"github.com/otfdecode/sfnt/reader"
)

// Index is a decoded CFF INDEX structure: an ordered sequence of
// variable-length binary records (Name, Top DICT, String, Global
// Subr, CharStrings, Local Subr INDEXes all share this layout).
type Index [][]byte

// readIndex decodes a CFF1 INDEX: a 16-bit count followed by an
// offset array whose element width (1-4 bytes) is itself a field.
// Offsets are 1-based, so offSize bytes are read count+1 times and
// the first entry always equals 1.
func readIndex(r *reader.R) (Index, error) {
	count, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	return readIndexBody(r, int(count))
}

// readIndex2 decodes a CFF2 INDEX, identical to readIndex except the
// count field is 32 bits.
func readIndex2(r *reader.R) (Index, error) {
	count, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	return readIndexBody(r, int(count))
}

func readIndexBody(r *reader.R, count int) (Index, error) {
	if count == 0 {
		return nil, nil
	}
	offSize, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	if offSize < 1 || offSize > 4 {
		return nil, &sfntutil.UnsupportedFormatError{Where: "CFF INDEX offSize", Format: int(offSize)}
	}
	offsets := make([]uint32, count+1)
	for i := range offsets {
		v, err := readOffsetN(r, int(offSize))
		if err != nil {
			return nil, err
		}
		offsets[i] = v
	}
	if offsets[0] != 1 {
		return nil, &sfntutil.InvalidDictEncodingError{Reason: "CFF INDEX first offset is not 1"}
	}
	dataStart := r.Pos()
	buf := r.Buffer()
	out := make(Index, count)
	for i := 0; i < count; i++ {
		start, end := offsets[i], offsets[i+1]
		if end < start {
			return nil, &sfntutil.OffsetOutOfRangeError{Table: "CFF INDEX", Offset: int(end), Extent: int(start)}
		}
		recStart, recEnd := dataStart+int(start)-1, dataStart+int(end)-1
		if recEnd > len(buf) {
			return nil, &sfntutil.OffsetOutOfRangeError{Table: "CFF INDEX", Offset: recEnd, Extent: len(buf)}
		}
		out[i] = buf[recStart:recEnd]
	}
	if err := r.SeekAbs(dataStart + int(offsets[count]) - 1); err != nil {
		return nil, err
	}
	return out, nil
}

func readOffsetN(r *reader.R, n int) (uint32, error) {
	buf, err := r.ReadBytes(n)
	if err != nil {
		return 0, err
	}
	var v uint32
	for _, b := range buf {
		v = v<<8 | uint32(b)
	}
	return v, nil
}
