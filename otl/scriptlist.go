// SPDX-License-Identifier: GPL-3.0-or-later

package otl

import (
	"github.com/otfdecode/sfnt/font/sfntutil"
	"github.com/otfdecode/sfnt/font/tag"
	"github.com/otfdecode/sfnt/reader"
)

// noRequiredFeature is the sentinel LangSys.RequiredFeatureIndex value
// meaning "this script/language has no required feature".
const noRequiredFeature = 0xFFFF

// LangSys is one "Script" table's language-system record: the set of
// features that apply for one script/language combination.
type LangSys struct {
	LookupOrderOffset    uint16 // reserved, always 0 in practice
	RequiredFeatureIndex uint16 // 0xFFFF if none
	FeatureIndices       []uint16
}

// Script is one entry of the ScriptList: a default language system
// plus zero or more explicitly tagged ones.
type Script struct {
	DefaultLangSys *LangSys
	LangSyses      map[tag.Tag]*LangSys
}

// ScriptList is the decoded "Script List Table": every script tag
// present in the font mapped to its language systems.
type ScriptList map[tag.Tag]*Script

// ReadScriptList decodes a Script List Table. r must be windowed to
// the enclosing GSUB/GPOS header's extent, since script table offsets
// are relative to the ScriptList's own start; callers pass a
// sub-cursor seeked to that start.
func ReadScriptList(r *reader.R) (ScriptList, error) {
	count, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	type scriptRecord struct {
		tag    tag.Tag
		offset uint16
	}
	recs := make([]scriptRecord, count)
	for i := range recs {
		tb, err := r.ReadBytes(4)
		if err != nil {
			return nil, err
		}
		t, _ := tag.FromBytes(tb)
		off, err := r.ReadOffset16()
		if err != nil {
			return nil, err
		}
		recs[i] = scriptRecord{t, off}
	}

	list := ScriptList{}
	for _, rec := range recs {
		if rec.offset == 0 {
			continue
		}
		sub, err := r.SubWindow(int(rec.offset), r.Len()-int(rec.offset))
		if err != nil {
			continue
		}
		sc, err := readScriptTable(sub)
		if err != nil {
			continue
		}
		list[rec.tag] = sc
	}
	return list, nil
}

func readScriptTable(r *reader.R) (*Script, error) {
	defaultOff, err := r.ReadOffset16()
	if err != nil {
		return nil, err
	}
	langSysCount, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	type langSysRecord struct {
		tag    tag.Tag
		offset uint16
	}
	recs := make([]langSysRecord, langSysCount)
	for i := range recs {
		tb, err := r.ReadBytes(4)
		if err != nil {
			return nil, err
		}
		t, _ := tag.FromBytes(tb)
		off, err := r.ReadOffset16()
		if err != nil {
			return nil, err
		}
		recs[i] = langSysRecord{t, off}
	}

	sc := &Script{LangSyses: map[tag.Tag]*LangSys{}}
	if defaultOff != 0 {
		sub, err := r.SubWindow(int(defaultOff), r.Len()-int(defaultOff))
		if err == nil {
			sc.DefaultLangSys, _ = readLangSys(sub)
		}
	}
	for _, rec := range recs {
		if rec.offset == 0 {
			continue
		}
		sub, err := r.SubWindow(int(rec.offset), r.Len()-int(rec.offset))
		if err != nil {
			continue
		}
		ls, err := readLangSys(sub)
		if err != nil {
			continue
		}
		sc.LangSyses[rec.tag] = ls
	}
	return sc, nil
}

func readLangSys(r *reader.R) (*LangSys, error) {
	lookupOrder, err := r.ReadOffset16()
	if err != nil {
		return nil, err
	}
	required, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	count, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	indices, err := r.ReadUint16Array(int(count))
	if err != nil {
		return nil, err
	}
	return &LangSys{LookupOrderOffset: lookupOrder, RequiredFeatureIndex: required, FeatureIndices: indices}, nil
}

// Feature is one entry of the FeatureList: the tag plus the indices
// into the LookupList that implement it.
type Feature struct {
	Tag                 tag.Tag
	FeatureParamsOffset uint16
	LookupListIndices   []uint16
}

// FeatureList is the decoded "Feature List Table", in file order (a
// tag may legitimately repeat, e.g. stylistic-set variants keyed by
// script, so this is a slice rather than a map).
type FeatureList []*Feature

// ReadFeatureList decodes a Feature List Table.
func ReadFeatureList(r *reader.R) (FeatureList, error) {
	count, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	type featureRecord struct {
		tag    tag.Tag
		offset uint16
	}
	recs := make([]featureRecord, count)
	for i := range recs {
		tb, err := r.ReadBytes(4)
		if err != nil {
			return nil, err
		}
		t, _ := tag.FromBytes(tb)
		off, err := r.ReadOffset16()
		if err != nil {
			return nil, err
		}
		recs[i] = featureRecord{t, off}
	}

	list := make(FeatureList, 0, count)
	for _, rec := range recs {
		if rec.offset == 0 {
			list = append(list, &Feature{Tag: rec.tag})
			continue
		}
		sub, err := r.SubWindow(int(rec.offset), r.Len()-int(rec.offset))
		if err != nil {
			continue
		}
		f, err := readFeatureTable(sub)
		if err != nil {
			continue
		}
		f.Tag = rec.tag
		list = append(list, f)
	}
	return list, nil
}

func readFeatureTable(r *reader.R) (*Feature, error) {
	paramsOff, err := r.ReadOffset16()
	if err != nil {
		return nil, err
	}
	count, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	indices, err := r.ReadUint16Array(int(count))
	if err != nil {
		return nil, err
	}
	return &Feature{FeatureParamsOffset: paramsOff, LookupListIndices: indices}, nil
}

// RequiredFeature reports whether ls declares a required feature and
// returns its index.
func (ls *LangSys) RequiredFeature() (uint16, bool) {
	if ls == nil || ls.RequiredFeatureIndex == noRequiredFeature {
		return 0, false
	}
	return ls.RequiredFeatureIndex, true
}

var errUnsupportedVersion = &sfntutil.UnsupportedFormatError{Where: "GSUB/GPOS header", Format: -1}
