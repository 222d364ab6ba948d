// SPDX-License-Identifier: GPL-3.0-or-later

package otl

import (
	"github.com/otfdecode/sfnt/font/sfntutil"
	"github.com/otfdecode/sfnt/reader"
)

// SequenceRule is one rule of a SequenceRuleSet (GSUB/GPOS contextual
// lookup format 1): match the current glyph plus Input (by glyph ID),
// then apply Actions.
type SequenceRule struct {
	Input   []uint16 // glyph IDs of the sequence after the first glyph
	Actions []SequenceLookupRecord
}

// SequenceContext1 is contextual lookup format 1: per-coverage-index
// rule sets matched by exact glyph ID sequence.
type SequenceContext1 struct {
	Coverage Coverage
	RuleSets [][]SequenceRule // indexed by coverage index
}

// ClassSequenceRule is one rule of a ClassSequenceRuleSet: like
// SequenceRule but matching class values from a ClassDef rather than
// glyph IDs directly.
type ClassSequenceRule struct {
	Input   []uint16 // class values of the sequence after the first glyph
	Actions []SequenceLookupRecord
}

// SequenceContext2 is contextual lookup format 2: glyphs are first
// mapped through ClassDef, then matched by class-value sequence.
type SequenceContext2 struct {
	Coverage Coverage
	ClassDef ClassDef
	RuleSets [][]ClassSequenceRule // indexed by the first glyph's class
}

// SequenceContext3 is contextual lookup format 3: the rule is encoded
// directly as a list of per-position Coverage tables (one for every
// glyph in the input sequence) rather than indirected through a rule
// set.
type SequenceContext3 struct {
	InputCoverage []Coverage
	Actions       []SequenceLookupRecord
}

func readSequenceRuleSet(r *reader.R) ([]SequenceLookupRecord, []uint16, error) {
	glyphCount, err := r.ReadUint16()
	if err != nil {
		return nil, nil, err
	}
	substCount, err := r.ReadUint16()
	if err != nil {
		return nil, nil, err
	}
	var input []uint16
	if glyphCount > 0 {
		input, err = r.ReadUint16Array(int(glyphCount) - 1)
		if err != nil {
			return nil, nil, err
		}
	}
	recs, err := ReadSequenceLookupRecords(r, int(substCount))
	if err != nil {
		return nil, nil, err
	}
	return recs, input, nil
}

// ReadSequenceContext decodes a contextual-substitution/positioning
// subtable (GSUB lookup type 5 / GPOS lookup type 7), dispatching on
// its format byte. The returned value is one of *SequenceContext1,
// *SequenceContext2, or *SequenceContext3.
func ReadSequenceContext(r *reader.R) (interface{}, error) {
	format, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	switch format {
	case 1:
		covOff, err := r.ReadOffset16()
		if err != nil {
			return nil, err
		}
		ruleSetOffsets, err := ReadUint16ArrayField(r)
		if err != nil {
			return nil, err
		}
		sc := &SequenceContext1{}
		if covOff != 0 {
			if sub, err := r.SubWindow(int(covOff), r.Len()-int(covOff)); err == nil {
				sc.Coverage, _ = ReadCoverage(sub)
			}
		}
		sc.RuleSets = make([][]SequenceRule, len(ruleSetOffsets))
		for i, off := range ruleSetOffsets {
			if off == 0 {
				continue
			}
			sub, err := r.SubWindow(int(off), r.Len()-int(off))
			if err != nil {
				continue
			}
			count, err := sub.ReadUint16()
			if err != nil {
				continue
			}
			ruleOffsets, err := sub.ReadUint16Array(int(count))
			if err != nil {
				continue
			}
			rules := make([]SequenceRule, 0, count)
			for _, roff := range ruleOffsets {
				if roff == 0 {
					continue
				}
				rsub, err := sub.SubWindow(int(roff), sub.Len()-int(roff))
				if err != nil {
					continue
				}
				actions, input, err := readSequenceRuleSet(rsub)
				if err != nil {
					continue
				}
				rules = append(rules, SequenceRule{Input: input, Actions: actions})
			}
			sc.RuleSets[i] = rules
		}
		return sc, nil

	case 2:
		covOff, err := r.ReadOffset16()
		if err != nil {
			return nil, err
		}
		classDefOff, err := r.ReadOffset16()
		if err != nil {
			return nil, err
		}
		ruleSetOffsets, err := ReadUint16ArrayField(r)
		if err != nil {
			return nil, err
		}
		sc := &SequenceContext2{}
		if covOff != 0 {
			if sub, err := r.SubWindow(int(covOff), r.Len()-int(covOff)); err == nil {
				sc.Coverage, _ = ReadCoverage(sub)
			}
		}
		if classDefOff != 0 {
			if sub, err := r.SubWindow(int(classDefOff), r.Len()-int(classDefOff)); err == nil {
				sc.ClassDef, _ = ReadClassDef(sub)
			}
		}
		sc.RuleSets = make([][]ClassSequenceRule, len(ruleSetOffsets))
		for i, off := range ruleSetOffsets {
			if off == 0 {
				continue
			}
			sub, err := r.SubWindow(int(off), r.Len()-int(off))
			if err != nil {
				continue
			}
			count, err := sub.ReadUint16()
			if err != nil {
				continue
			}
			ruleOffsets, err := sub.ReadUint16Array(int(count))
			if err != nil {
				continue
			}
			rules := make([]ClassSequenceRule, 0, count)
			for _, roff := range ruleOffsets {
				if roff == 0 {
					continue
				}
				rsub, err := sub.SubWindow(int(roff), sub.Len()-int(roff))
				if err != nil {
					continue
				}
				actions, input, err := readSequenceRuleSet(rsub)
				if err != nil {
					continue
				}
				rules = append(rules, ClassSequenceRule{Input: input, Actions: actions})
			}
			sc.RuleSets[i] = rules
		}
		return sc, nil

	case 3:
		glyphCount, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		substCount, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		covOffsets, err := r.ReadUint16Array(int(glyphCount))
		if err != nil {
			return nil, err
		}
		actions, err := ReadSequenceLookupRecords(r, int(substCount))
		if err != nil {
			return nil, err
		}
		covs, err := ReadCoverages(r, covOffsets)
		if err != nil {
			return nil, err
		}
		return &SequenceContext3{InputCoverage: covs, Actions: actions}, nil

	default:
		return nil, &sfntutil.UnsupportedFormatError{Where: "SequenceContext", Format: int(format)}
	}
}

// ChainedSequenceRule is one rule of a chained contextual lookup
// (format 1): Backtrack (glyphs preceding the match, stored in
// reverse/logical order per spec), Input, Lookahead, and the actions
// to apply.
type ChainedSequenceRule struct {
	Backtrack []uint16
	Input     []uint16
	Lookahead []uint16
	Actions   []SequenceLookupRecord
}

// ChainedSequenceContext1 is chained contextual lookup format 1.
type ChainedSequenceContext1 struct {
	Coverage Coverage
	RuleSets [][]ChainedSequenceRule
}

// ChainedClassSequenceRule is one rule of a chained contextual lookup
// (format 2), matching class values rather than glyph IDs.
type ChainedClassSequenceRule struct {
	Backtrack []uint16
	Input     []uint16
	Lookahead []uint16
	Actions   []SequenceLookupRecord
}

// ChainedSequenceContext2 is chained contextual lookup format 2.
type ChainedSequenceContext2 struct {
	Coverage          Coverage
	BacktrackClassDef ClassDef
	InputClassDef     ClassDef
	LookaheadClassDef ClassDef
	RuleSets          [][]ChainedClassSequenceRule
}

// ChainedSequenceContext3 is chained contextual lookup format 3: the
// rule is encoded directly as backtrack/input/lookahead Coverage
// lists plus the actions, with no rule-set indirection.
type ChainedSequenceContext3 struct {
	BacktrackCoverage []Coverage
	InputCoverage     []Coverage
	LookaheadCoverage []Coverage
	Actions           []SequenceLookupRecord
}

// ReadChainedSequenceContext decodes a chaining-contextual
// substitution/positioning subtable (GSUB lookup type 6 / GPOS lookup
// type 8). The returned value is one of *ChainedSequenceContext1,
// *ChainedSequenceContext2, or *ChainedSequenceContext3.
func ReadChainedSequenceContext(r *reader.R) (interface{}, error) {
	format, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	switch format {
	case 1:
		covOff, err := r.ReadOffset16()
		if err != nil {
			return nil, err
		}
		ruleSetOffsets, err := ReadUint16ArrayField(r)
		if err != nil {
			return nil, err
		}
		sc := &ChainedSequenceContext1{}
		if covOff != 0 {
			if sub, err := r.SubWindow(int(covOff), r.Len()-int(covOff)); err == nil {
				sc.Coverage, _ = ReadCoverage(sub)
			}
		}
		sc.RuleSets = make([][]ChainedSequenceRule, len(ruleSetOffsets))
		for i, off := range ruleSetOffsets {
			if off == 0 {
				continue
			}
			sub, err := r.SubWindow(int(off), r.Len()-int(off))
			if err != nil {
				continue
			}
			count, err := sub.ReadUint16()
			if err != nil {
				continue
			}
			ruleOffsets, err := sub.ReadUint16Array(int(count))
			if err != nil {
				continue
			}
			rules := make([]ChainedSequenceRule, 0, count)
			for _, roff := range ruleOffsets {
				if roff == 0 {
					continue
				}
				rsub, err := sub.SubWindow(int(roff), sub.Len()-int(roff))
				if err != nil {
					continue
				}
				rule, err := readChainedRule(rsub)
				if err != nil {
					continue
				}
				rules = append(rules, rule)
			}
			sc.RuleSets[i] = rules
		}
		return sc, nil

	case 2:
		covOff, err := r.ReadOffset16()
		if err != nil {
			return nil, err
		}
		backtrackDefOff, err := r.ReadOffset16()
		if err != nil {
			return nil, err
		}
		inputDefOff, err := r.ReadOffset16()
		if err != nil {
			return nil, err
		}
		lookaheadDefOff, err := r.ReadOffset16()
		if err != nil {
			return nil, err
		}
		ruleSetOffsets, err := ReadUint16ArrayField(r)
		if err != nil {
			return nil, err
		}
		sc := &ChainedSequenceContext2{}
		resolveClassDef := func(off uint16) ClassDef {
			if off == 0 {
				return nil
			}
			sub, err := r.SubWindow(int(off), r.Len()-int(off))
			if err != nil {
				return nil
			}
			cd, _ := ReadClassDef(sub)
			return cd
		}
		if covOff != 0 {
			if sub, err := r.SubWindow(int(covOff), r.Len()-int(covOff)); err == nil {
				sc.Coverage, _ = ReadCoverage(sub)
			}
		}
		sc.BacktrackClassDef = resolveClassDef(backtrackDefOff)
		sc.InputClassDef = resolveClassDef(inputDefOff)
		sc.LookaheadClassDef = resolveClassDef(lookaheadDefOff)
		sc.RuleSets = make([][]ChainedClassSequenceRule, len(ruleSetOffsets))
		for i, off := range ruleSetOffsets {
			if off == 0 {
				continue
			}
			sub, err := r.SubWindow(int(off), r.Len()-int(off))
			if err != nil {
				continue
			}
			count, err := sub.ReadUint16()
			if err != nil {
				continue
			}
			ruleOffsets, err := sub.ReadUint16Array(int(count))
			if err != nil {
				continue
			}
			rules := make([]ChainedClassSequenceRule, 0, count)
			for _, roff := range ruleOffsets {
				if roff == 0 {
					continue
				}
				rsub, err := sub.SubWindow(int(roff), sub.Len()-int(roff))
				if err != nil {
					continue
				}
				rule, err := readChainedRule(rsub)
				if err != nil {
					continue
				}
				rules = append(rules, ChainedClassSequenceRule(rule))
			}
			sc.RuleSets[i] = rules
		}
		return sc, nil

	case 3:
		backtrackOffsets, err := ReadUint16ArrayField(r)
		if err != nil {
			return nil, err
		}
		inputOffsets, err := ReadUint16ArrayField(r)
		if err != nil {
			return nil, err
		}
		lookaheadOffsets, err := ReadUint16ArrayField(r)
		if err != nil {
			return nil, err
		}
		substCount, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		actions, err := ReadSequenceLookupRecords(r, int(substCount))
		if err != nil {
			return nil, err
		}
		backtrack, err := ReadCoverages(r, backtrackOffsets)
		if err != nil {
			return nil, err
		}
		input, err := ReadCoverages(r, inputOffsets)
		if err != nil {
			return nil, err
		}
		lookahead, err := ReadCoverages(r, lookaheadOffsets)
		if err != nil {
			return nil, err
		}
		return &ChainedSequenceContext3{
			BacktrackCoverage: backtrack,
			InputCoverage:     input,
			LookaheadCoverage: lookahead,
			Actions:           actions,
		}, nil

	default:
		return nil, &sfntutil.UnsupportedFormatError{Where: "ChainedSequenceContext", Format: int(format)}
	}
}

func readChainedRule(r *reader.R) (ChainedSequenceRule, error) {
	backtrackCount, err := r.ReadUint16()
	if err != nil {
		return ChainedSequenceRule{}, err
	}
	backtrack, err := r.ReadUint16Array(int(backtrackCount))
	if err != nil {
		return ChainedSequenceRule{}, err
	}
	inputGlyphCount, err := r.ReadUint16()
	if err != nil {
		return ChainedSequenceRule{}, err
	}
	var input []uint16
	if inputGlyphCount > 0 {
		input, err = r.ReadUint16Array(int(inputGlyphCount) - 1)
		if err != nil {
			return ChainedSequenceRule{}, err
		}
	}
	lookaheadCount, err := r.ReadUint16()
	if err != nil {
		return ChainedSequenceRule{}, err
	}
	lookahead, err := r.ReadUint16Array(int(lookaheadCount))
	if err != nil {
		return ChainedSequenceRule{}, err
	}
	substCount, err := r.ReadUint16()
	if err != nil {
		return ChainedSequenceRule{}, err
	}
	actions, err := ReadSequenceLookupRecords(r, int(substCount))
	if err != nil {
		return ChainedSequenceRule{}, err
	}
	return ChainedSequenceRule{Backtrack: backtrack, Input: input, Lookahead: lookahead, Actions: actions}, nil
}
