// SPDX-License-Identifier: GPL-3.0-or-later

package cff

import "github.com/otfdecode/sfnt/reader"

// Private is a decoded Private DICT: the subset of operators relevant
// to CharString interpretation (hint widths and local subroutines).
// Other Private DICT operators (BlueValues, StdHW, ...) are rendering
// hints outside this decoder's scope and are not retained beyond the
// raw Dict.
type Private struct {
	Dict          Dict
	DefaultWidthX float64
	NominalWidthX float64
	LocalSubrs    Index
}

// readPrivate decodes a Private DICT from buf (the bytes at the Top/Font
// DICT's "Private" operator offset, of the declared size) and, if the
// DICT names a local Subrs INDEX, reads it too. The Subrs offset is
// relative to the start of the Private DICT itself, per the CFF spec.
// cff2 selects the 32-bit INDEX count CFF2 uses for local subrs.
func readPrivate(buf []byte, fileData []byte, privateStart int, cff2 bool) (*Private, error) {
	d, err := readDict(buf)
	if err != nil {
		return nil, err
	}
	p := &Private{
		Dict:          d,
		DefaultWidthX: firstOr(d, opDefaultWidthX, 0),
		NominalWidthX: firstOr(d, opNominalWidthX, 0),
	}
	if subrsOff, ok := d.Int(opSubrs); ok && subrsOff > 0 {
		abs := privateStart + int(subrsOff)
		if abs >= 0 && abs <= len(fileData) {
			r := reader.New(fileData[abs:])
			var idx Index
			if cff2 {
				idx, err = readIndex2(r)
			} else {
				idx, err = readIndex(r)
			}
			if err == nil {
				p.LocalSubrs = idx
			}
		}
	}
	return p, nil
}

func firstOr(d Dict, op uint16, def float64) float64 {
	v, ok := d[op]
	if !ok || len(v) == 0 {
		return def
	}
	return v[0]
}
