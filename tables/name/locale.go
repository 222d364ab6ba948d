// SPDX-License-Identifier: GPL-3.0-or-later

package name

import "golang.org/x/text/language"

// windowsLCID maps the Windows platform's LCID-derived language IDs (as
// used in the "name" table's languageID field) to BCP-47 tags, for the
// subset of locales common in real-world fonts.
var windowsLCID = map[uint16]language.Tag{
	0x0409: language.AmericanEnglish,
	0x0809: language.BritishEnglish,
	0x0c09: language.MustParse("en-AU"),
	0x040c: language.French,
	0x0407: language.German,
	0x0410: language.Italian,
	0x0416: language.BrazilianPortuguese,
	0x0816: language.EuropeanPortuguese,
	0x0c0a: language.LatinAmericanSpanish,
	0x040a: language.Spanish,
	0x0411: language.Japanese,
	0x0412: language.Korean,
	0x0804: language.SimplifiedChinese,
	0x0404: language.TraditionalChinese,
	0x0419: language.Russian,
	0x0413: language.Dutch,
	0x041d: language.Swedish,
	0x0414: language.MustParse("nb"),
	0x0406: language.Danish,
	0x040b: language.Finnish,
	0x0415: language.Polish,
	0x0408: language.Greek,
	0x041f: language.Turkish,
}

// macLCID maps the Macintosh platform's classic language codes to
// BCP-47 tags, for the subset common in real-world fonts.
var macLCID = map[uint16]language.Tag{
	0:  language.AmericanEnglish,
	1:  language.French,
	2:  language.German,
	3:  language.Italian,
	4:  language.Dutch,
	5:  language.Swedish,
	6:  language.Spanish,
	7:  language.Danish,
	11: language.Japanese,
	12: language.Arabic,
	23: language.Russian,
	33: language.Korean,
	19: language.SimplifiedChinese,
	53: language.SimplifiedChinese,
	45: language.TraditionalChinese,
}
