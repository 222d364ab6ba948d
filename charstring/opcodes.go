// SPDX-License-Identifier: GPL-3.0-or-later

package charstring

// opcode is a Type 2 CharString operator, with two-byte ("escape")
// operators folded into a single value as 0x0c00|op2, mirroring the
// 12-prefixed encoding the byte stream itself uses.
type opcode uint16

const (
	opHstem      opcode = 1
	opVstem      opcode = 3
	opVmoveto    opcode = 4
	opRlineto    opcode = 5
	opHlineto    opcode = 6
	opVlineto    opcode = 7
	opRrcurveto  opcode = 8
	opCallsubr   opcode = 10
	opReturn     opcode = 11
	opEndchar    opcode = 14
	opVsindex    opcode = 15 // CFF2
	opBlend      opcode = 16 // CFF2
	opHstemhm    opcode = 18
	opHintmask   opcode = 19
	opCntrmask   opcode = 20
	opRmoveto    opcode = 21
	opHmoveto    opcode = 22
	opVstemhm    opcode = 23
	opRcurveline opcode = 24
	opRlinecurve opcode = 25
	opVvcurveto  opcode = 26
	opHhcurveto  opcode = 27
	opCallgsubr  opcode = 29
	opVhcurveto  opcode = 30
	opHvcurveto  opcode = 31

	escape       = 0x0c00
	opDotsection = escape | 0
	opAnd        = escape | 3
	opOr         = escape | 4
	opNot        = escape | 5
	opAbs        = escape | 9
	opAdd        = escape | 10
	opSub        = escape | 11
	opDiv        = escape | 12
	opNeg        = escape | 14
	opEq         = escape | 15
	opDrop       = escape | 18
	opPut        = escape | 20
	opGet        = escape | 21
	opIfelse     = escape | 22
	opRandom     = escape | 23
	opMul        = escape | 24
	opSqrt       = escape | 26
	opDup        = escape | 27
	opExch       = escape | 28
	opIndex      = escape | 29
	opRoll       = escape | 30
	opHflex      = escape | 34
	opFlex       = escape | 35
	opHflex1     = escape | 36
	opFlex1      = escape | 37
)
