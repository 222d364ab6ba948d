// SPDX-License-Identifier: GPL-3.0-or-later

// Package name decodes the sfnt "name" table: a set of localized string
// records (copyright, family, full name, ...) keyed by platform,
// encoding, language, and name identifier.
package name

import (
	"unicode/utf16"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/language"

	"github.com/otfdecode/sfnt/container"
	"github.com/otfdecode/sfnt/font/tag"
	"github.com/otfdecode/sfnt/reader"
)

// Well-known name IDs, for use with Best. Best and the BCP-47 Lang
// resolution accept any name ID, not only these.
const (
	IDCopyright      = 0
	IDFamily         = 1
	IDSubfamily      = 2
	IDUniqueID       = 3
	IDFullName       = 4
	IDVersion        = 5
	IDPostScriptName = 6
	IDTrademark      = 7
	IDManufacturer   = 8
	IDDesigner       = 9
	IDDescription    = 10
	IDLicense        = 13
)

// Record is one decoded entry of the "name" table.
type Record struct {
	PlatformID uint16
	EncodingID uint16
	LanguageID uint16
	NameID     uint16
	Value      string
	// Lang is the best-effort BCP-47 tag for LanguageID, resolved via
	// golang.org/x/text/language for the Windows platform (3) and a
	// fixed Apple LCID table for the Macintosh platform (1); it is the
	// undetermined tag for language IDs this package does not recognize.
	Lang language.Tag
}

// LangTagRecord is one entry of the format-1 langTagRecord array: a
// UTF-16BE language identifier string used when LanguageID >= 0x8000.
type LangTagRecord struct {
	LanguageID uint16
	Tag        string
}

// Info is the decoded content of the "name" table.
type Info struct {
	Format         uint16
	Records        []Record
	LangTagRecords []LangTagRecord
}

// Best returns the value of the first record for nameID using a
// preferred-platform ranking (Windows/Unicode BMP, then Unicode, then
// Macintosh Roman), or "" if no record carries that name ID.
func (info *Info) Best(nameID uint16) string {
	rank := func(r Record) int {
		switch {
		case r.PlatformID == 3 && r.EncodingID == 1:
			return 0
		case r.PlatformID == 0:
			return 1
		case r.PlatformID == 1 && r.EncodingID == 0:
			return 2
		default:
			return 3
		}
	}
	best := -1
	bestRank := 4
	for i, r := range info.Records {
		if r.NameID != nameID {
			continue
		}
		if rk := rank(r); rk < bestRank {
			bestRank = rk
			best = i
		}
	}
	if best < 0 {
		return ""
	}
	return info.Records[best].Value
}

func init() {
	container.Register(tag.Make("name"), func(r *reader.R, entry container.Meta, f *container.Font) (interface{}, error) {
		return Read(r)
	})
}

// Read decodes a "name" table from r.
func Read(r *reader.R) (*Info, error) {
	format, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	count, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	storageOffset, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}

	type rawRecord struct {
		platformID, encodingID, languageID, nameID, length, offset uint16
	}
	raw := make([]rawRecord, count)
	for i := range raw {
		var rec rawRecord
		if rec.platformID, err = r.ReadUint16(); err != nil {
			return nil, err
		}
		if rec.encodingID, err = r.ReadUint16(); err != nil {
			return nil, err
		}
		if rec.languageID, err = r.ReadUint16(); err != nil {
			return nil, err
		}
		if rec.nameID, err = r.ReadUint16(); err != nil {
			return nil, err
		}
		if rec.length, err = r.ReadUint16(); err != nil {
			return nil, err
		}
		if rec.offset, err = r.ReadUint16(); err != nil {
			return nil, err
		}
		raw[i] = rec
	}

	info := &Info{Format: format}

	if format == 1 {
		langTagCount, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		for i := 0; i < int(langTagCount); i++ {
			length, err := r.ReadUint16()
			if err != nil {
				return nil, err
			}
			offset, err := r.ReadUint16()
			if err != nil {
				return nil, err
			}
			data, err := readStorageBytes(r, int(storageOffset), int(offset), int(length))
			if err != nil {
				continue
			}
			info.LangTagRecords = append(info.LangTagRecords, LangTagRecord{
				LanguageID: 0x8000 + uint16(i),
				Tag:        decodeUTF16BE(data),
			})
		}
	}

	for _, rec := range raw {
		data, err := readStorageBytes(r, int(storageOffset), int(rec.offset), int(rec.length))
		if err != nil {
			continue
		}

		var val string
		switch rec.platformID {
		case 0, 3: // Unicode, Windows: UTF-16BE
			val = decodeUTF16BE(data)
		case 1: // Macintosh
			if rec.encodingID != 0 {
				continue
			}
			val = decodeMacRoman(data)
		default: // best-effort ASCII
			val = string(data)
		}
		if val == "" {
			continue
		}
		info.Records = append(info.Records, Record{
			PlatformID: rec.platformID,
			EncodingID: rec.encodingID,
			LanguageID: rec.languageID,
			NameID:     rec.nameID,
			Value:      val,
			Lang:       resolveLang(rec.platformID, rec.languageID),
		})
	}

	return info, nil
}

// readStorageBytes reads length bytes at storageOffset+recordOffset,
// both relative to the name table's own start (i.e. the reader's
// window), without disturbing r's current position.
func readStorageBytes(r *reader.R, storageOffset, recordOffset, length int) ([]byte, error) {
	r.Save()
	defer func() { _ = r.Restore() }()
	if err := r.Seek(storageOffset + recordOffset); err != nil {
		return nil, err
	}
	return r.ReadBytes(length)
}

func decodeUTF16BE(data []byte) string {
	if len(data)%2 != 0 {
		data = data[:len(data)-1]
	}
	units := make([]uint16, len(data)/2)
	for i := range units {
		units[i] = uint16(data[2*i])<<8 | uint16(data[2*i+1])
	}
	return string(utf16.Decode(units))
}

func decodeMacRoman(data []byte) string {
	out, err := charmap.Macintosh.NewDecoder().Bytes(data)
	if err != nil {
		return string(data)
	}
	return string(out)
}

func resolveLang(platformID, languageID uint16) language.Tag {
	switch platformID {
	case 3:
		if t, ok := windowsLCID[languageID]; ok {
			return t
		}
	case 1:
		if t, ok := macLCID[languageID]; ok {
			return t
		}
	}
	return language.Und
}
