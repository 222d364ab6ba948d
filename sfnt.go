// SPDX-License-Identifier: GPL-3.0-or-later

// Package sfnt is the single-import entry point for the decoder: it
// blank-imports every table package (the generic tables, the GSUB/GPOS
// OpenType Layout decoders, and the CFF/CFF2 decoders) so that
// container.Open returns a Font with every supported tag already
// parsed, without callers having to enumerate the sub-packages
// themselves. Callers who only need a subset of tables (say, just
// head/maxp/cmap for a glyph-id lookup) may instead import container
// plus the specific tables/* packages they need and skip this package
// entirely; Register is a plain map keyed by tag, so partial imports
// are just as supported as this bundle.
package sfnt

import (
	"github.com/otfdecode/sfnt/container"

	_ "github.com/otfdecode/sfnt/cff"
	_ "github.com/otfdecode/sfnt/gpos"
	_ "github.com/otfdecode/sfnt/gsub"
	_ "github.com/otfdecode/sfnt/tables/base"
	_ "github.com/otfdecode/sfnt/tables/cmap"
	_ "github.com/otfdecode/sfnt/tables/dsig"
	_ "github.com/otfdecode/sfnt/tables/gdef"
	_ "github.com/otfdecode/sfnt/tables/head"
	_ "github.com/otfdecode/sfnt/tables/hhea"
	_ "github.com/otfdecode/sfnt/tables/hmtx"
	_ "github.com/otfdecode/sfnt/tables/maxp"
	_ "github.com/otfdecode/sfnt/tables/name"
	_ "github.com/otfdecode/sfnt/tables/os2"
	_ "github.com/otfdecode/sfnt/tables/post"
	_ "github.com/otfdecode/sfnt/tables/vhea"
	_ "github.com/otfdecode/sfnt/tables/vmtx"
	_ "github.com/otfdecode/sfnt/tables/vorg"
)

// Font and Collection are re-exported so callers of this package never
// need to import container directly.
type (
	Font       = container.Font
	Collection = container.Collection
)

// Open classifies buf (a whole font file or TrueType Collection) and
// parses it into a Font or a Collection, with every table package this
// module ships already registered. See container.Open for the full
// contract.
func Open(buf []byte) (*Font, *Collection, error) {
	return container.Open(buf)
}
