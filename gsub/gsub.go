// SPDX-License-Identifier: GPL-3.0-or-later

// Package gsub decodes the OpenType Layout "GSUB" table: script,
// feature and lookup lists plus all eight substitution lookup types,
// each format represented as a tagged Go variant matching the byte
// stream's own format discriminant.
package gsub

import (
	"github.com/otfdecode/sfnt/container"
	"github.com/otfdecode/sfnt/font/sfntutil"
	"github.com/otfdecode/sfnt/font/tag"
	"github.com/otfdecode/sfnt/otl"
	"github.com/otfdecode/sfnt/reader"
)

// Table is the decoded content of a "GSUB" table.
type Table struct {
	MajorVersion, MinorVersion uint16
	Scripts                    otl.ScriptList
	Features                   otl.FeatureList
	Lookups                    []*otl.Lookup

	// FeatureVariationsOffset holds the (currently opaque) 1.1
	// FeatureVariations offset; interpreting per-variation feature
	// substitutions requires the font's variation axes, out of scope
	// for a static decode.
	FeatureVariationsOffset uint32
}

func init() {
	container.Register(tag.Make("GSUB"), func(r *reader.R, entry container.Meta, f *container.Font) (interface{}, error) {
		return Read(r)
	})
}

// Read decodes a "GSUB" table from r.
func Read(r *reader.R) (*Table, error) {
	major, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	minor, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	if major != 1 || (minor != 0 && minor != 1) {
		return nil, &sfntutil.UnsupportedFormatError{Where: "GSUB", Format: int(major)*100 + int(minor)}
	}
	scriptListOff, err := r.ReadOffset16()
	if err != nil {
		return nil, err
	}
	featureListOff, err := r.ReadOffset16()
	if err != nil {
		return nil, err
	}
	lookupListOff, err := r.ReadOffset16()
	if err != nil {
		return nil, err
	}
	var featureVariationsOff uint32
	if minor == 1 {
		featureVariationsOff, err = r.ReadOffset32()
		if err != nil {
			return nil, err
		}
	}

	t := &Table{MajorVersion: major, MinorVersion: minor, FeatureVariationsOffset: featureVariationsOff}

	if scriptListOff != 0 {
		sub, err := r.SubWindow(int(scriptListOff), r.Len()-int(scriptListOff))
		if err == nil {
			t.Scripts, _ = otl.ReadScriptList(sub)
		}
	}
	if featureListOff != 0 {
		sub, err := r.SubWindow(int(featureListOff), r.Len()-int(featureListOff))
		if err == nil {
			t.Features, _ = otl.ReadFeatureList(sub)
		}
	}
	if lookupListOff != 0 {
		sub, err := r.SubWindow(int(lookupListOff), r.Len()-int(lookupListOff))
		if err == nil {
			t.Lookups, err = otl.ReadLookupList(sub, readSubtable)
			if err != nil {
				return nil, err
			}
		}
	}
	return t, nil
}
