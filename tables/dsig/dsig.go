// SPDX-License-Identifier: GPL-3.0-or-later

// Package dsig decodes the sfnt "DSIG" table: digital-signature
// records. The PKCS#7 payload is retained as opaque bytes; signature
// verification is out of scope.
package dsig

import (
	"github.com/otfdecode/sfnt/container"
	"github.com/otfdecode/sfnt/font/sfntutil"
	"github.com/otfdecode/sfnt/font/tag"
	"github.com/otfdecode/sfnt/reader"
)

// Signature is one decoded signature record.
type Signature struct {
	Format  uint32
	Payload []byte // PKCS#7 data, bytes after the 12-byte record header
}

// Info is the decoded content of the "DSIG" table.
type Info struct {
	Version    uint32
	Flags      uint16
	Signatures []Signature
}

func init() {
	container.Register(tag.Make("DSIG"), func(r *reader.R, entry container.Meta, f *container.Font) (interface{}, error) {
		return Read(r)
	})
}

// Read decodes a "DSIG" table from r.
func Read(r *reader.R) (*Info, error) {
	info := &Info{}
	var err error
	if info.Version, err = r.ReadUint32(); err != nil {
		return nil, err
	}
	numSignatures, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	if info.Flags, err = r.ReadUint16(); err != nil {
		return nil, err
	}

	type record struct {
		format uint32
		length uint32
		offset uint32
	}
	records := make([]record, numSignatures)
	for i := range records {
		var rec record
		if rec.format, err = r.ReadUint32(); err != nil {
			return nil, err
		}
		if rec.length, err = r.ReadUint32(); err != nil {
			return nil, err
		}
		if rec.offset, err = r.ReadOffset32(); err != nil {
			return nil, err
		}
		records[i] = rec
	}

	const headerSize = 12
	for _, rec := range records {
		if rec.length < headerSize {
			return nil, &sfntutil.OffsetOutOfRangeError{Table: "DSIG", Offset: int(rec.offset), Extent: r.Len()}
		}
		sig, err := r.SubWindow(int(rec.offset), int(rec.length))
		if err != nil {
			return nil, err
		}
		if err := sig.Skip(headerSize); err != nil {
			return nil, err
		}
		payload, err := sig.ReadBytes(sig.Remaining())
		if err != nil {
			return nil, err
		}
		info.Signatures = append(info.Signatures, Signature{Format: rec.format, Payload: payload})
	}
	return info, nil
}
