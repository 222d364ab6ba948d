// SPDX-License-Identifier: GPL-3.0-or-later

// Package sfntutil collects the error types and per-table diagnostics
// shared by the container loader and the individual table parsers.
package sfntutil

import "fmt"

// ErrUnexpectedEOF indicates a read would advance past the end of the
// enclosing table or buffer.
var ErrUnexpectedEOF = fmt.Errorf("sfnt: unexpected end of data")

// InvalidMagicError indicates a table's required magic number did not
// match, e.g. head.magicNumber.
type InvalidMagicError struct {
	Table string
	Got   uint32
	Want  uint32
}

func (err *InvalidMagicError) Error() string {
	return fmt.Sprintf("sfnt: %s: invalid magic number 0x%08X (want 0x%08X)", err.Table, err.Got, err.Want)
}

// OffsetOutOfRangeError indicates a resolved offset fell outside the
// extent of the table or structure it is relative to.
type OffsetOutOfRangeError struct {
	Table  string
	Offset int
	Extent int
}

func (err *OffsetOutOfRangeError) Error() string {
	return fmt.Sprintf("sfnt: %s: offset %d out of range [0, %d]", err.Table, err.Offset, err.Extent)
}

// UnsupportedFormatError indicates a format/version discriminant fell
// outside the set this decoder implements.
type UnsupportedFormatError struct {
	Where  string
	Format int
}

func (err *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("sfnt: %s: unsupported format %d", err.Where, err.Format)
}

// UnsupportedLookupTypeError indicates a GSUB/GPOS lookup type or CFF
// FDSelect format outside the defined set.
type UnsupportedLookupTypeError struct {
	Where string
	Type  int
}

func (err *UnsupportedLookupTypeError) Error() string {
	return fmt.Sprintf("sfnt: %s: unsupported lookup type %d", err.Where, err.Type)
}

// InvalidDictEncodingError indicates a malformed CFF DICT operator or
// operand byte stream.
type InvalidDictEncodingError struct {
	Reason string
}

func (err *InvalidDictEncodingError) Error() string {
	return "sfnt: invalid DICT encoding: " + err.Reason
}

// MissingDependencyError indicates a table parser needed another table
// that was absent from the font (e.g. hmtx without hhea/maxp).
type MissingDependencyError struct {
	Table   string
	Depends string
}

func (err *MissingDependencyError) Error() string {
	return fmt.Sprintf("sfnt: %s: missing required dependency table %q", err.Table, err.Depends)
}

// RecursiveSubroutineError indicates a CharString subroutine call
// referenced a subroutine already active on the call stack. The VM
// emits this as a diagnostic and skips the call rather than aborting
// the glyph.
type RecursiveSubroutineError struct {
	Index int
}

func (err *RecursiveSubroutineError) Error() string {
	return fmt.Sprintf("sfnt: charstring: recursive subroutine call to index %d", err.Index)
}

// SubroutineDepthExceededError indicates a CharString program nested
// callsubr/callgsubr more than the Type 2 depth limit of 10.
type SubroutineDepthExceededError struct{}

func (err *SubroutineDepthExceededError) Error() string {
	return "sfnt: charstring: subroutine call depth exceeded"
}

// ErrNoTable indicates a requested table tag is absent from the font's
// directory.
type ErrNoTable struct {
	Name string
}

func (err *ErrNoTable) Error() string {
	return "sfnt: missing " + err.Name + " table in font"
}

// IsMissing reports whether err indicates a missing table.
func IsMissing(err error) bool {
	_, missing := err.(*ErrNoTable)
	return missing
}

// Diagnostic records a non-fatal problem encountered while parsing one
// table. A Font carries a slice of these alongside its successfully
// parsed tables; per-table failures never abort the overall load.
type Diagnostic struct {
	Table   string
	Message string
	Err     error
}

func (d Diagnostic) String() string {
	if d.Err != nil {
		return fmt.Sprintf("%s: %s: %s", d.Table, d.Message, d.Err)
	}
	return fmt.Sprintf("%s: %s", d.Table, d.Message)
}
