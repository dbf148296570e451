// Copyright 2026 The Faldisco Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package align

// Alignment type labels, written verbatim into the field-alignments
// output table (spec.md §6). The "mvf" spelling in the last constant
// is not a typo we introduced; it matches the literal label the
// original implementation and spec.md both use.
const (
	TypeExactMatch            = "exact match"
	TypeAlignment             = "alignment"
	TypeSparseExactMatch      = "sparse exact match"
	TypeSparseAlignment       = "sparse alignment"
	TypeSparseNonMFVAlignment = "sparse non-mvf alignment"
)

// Match is a candidate field correspondence produced during the
// update phases, before the ResultSelector reduces the bag of
// candidates per target field down to a representative set.
type Match struct {
	RefField    string
	TargetField string
	Type        string
	Strength    float64
}

// ValueWitness records the most-frequent target value observed for one
// reference value, for an emitted alignment or sparse-alignment Match.
type ValueWitness struct {
	RefField, TargetField string
	RefValue, TargetValue string
	AlignmentCount        int
	MisalignmentCount     int
}

// FieldAlignmentRow is one row of the field-alignments output table.
type FieldAlignmentRow struct {
	ReferenceTableNamespace string
	ReferenceTableName      string
	ReferenceFieldName      string
	TargetTableNamespace    string
	TargetTableName         string
	TargetFieldName         string
	AlignmentType           string
	AlignmentStrength       float64
}

// ValueAlignmentRow is one row of the value-alignments output table.
type ValueAlignmentRow struct {
	ReferenceTableNamespace string
	ReferenceTableName      string
	ReferenceFieldName      string
	TargetTableNamespace    string
	TargetTableName         string
	TargetFieldName         string
	ReferenceFieldValue     string
	TargetFieldValue        string
	AlignmentType           string
	AlignmentCount          int
	MisalignmentCount       int
}

// ProfileRow is one row of the field-profiles output table.
type ProfileRow struct {
	TableNamespace string
	TableName      string
	FieldName      string
	Cardinality    int
	Selectivity    float64
	MinValue       string
	MaxValue       string
	MinLen         int
	MaxLen         int
	MFVCount       int
	NumRows        int
	IsUnique       bool
	IsSparse       bool
	IsConstant     bool
}

// Tables names the two tables being aligned, carried through to the
// output rows (the core engine itself never inspects these values).
type Tables struct {
	RefNamespace    string
	RefTable        string
	TargetNamespace string
	TargetTable     string
}

// Results is the complete output of one engine run.
type Results struct {
	FieldAlignments []FieldAlignmentRow
	ValueAlignments []ValueAlignmentRow
	Profiles        []ProfileRow
}

// matchBag collects candidate Matches keyed by target field, then by
// reference field, then by alignment type, preserving the order in
// which target and reference fields were first seen so that the
// ResultSelector's tie-breaking is deterministic. Alignment types are
// not order-tracked; see alignmentTypesFor.
type matchBag struct {
	targets      map[string]*targetBag
	targetOrder  []string
}

type targetBag struct {
	refs     map[string]map[string]float64
	refOrder []string
}

func newMatchBag() *matchBag {
	return &matchBag{targets: make(map[string]*targetBag)}
}

func (b *matchBag) add(ref, target, kind string, strength float64) {
	tb, ok := b.targets[target]
	if !ok {
		tb = &targetBag{refs: make(map[string]map[string]float64)}
		b.targets[target] = tb
		b.targetOrder = append(b.targetOrder, target)
	}
	al, ok := tb.refs[ref]
	if !ok {
		al = make(map[string]float64)
		tb.refs[ref] = al
		tb.refOrder = append(tb.refOrder, ref)
	}
	al[kind] = strength
}

// targetFields returns the target fields with at least one candidate
// match, in first-seen order.
func (b *matchBag) targetFields() []string {
	return append([]string(nil), b.targetOrder...)
}

// refsFor returns the candidate reference fields for target, in
// first-seen order. Use strengths for each one's alignment-type/strength
// map.
func (b *matchBag) refsFor(target string) []string {
	tb, ok := b.targets[target]
	if !ok {
		return nil
	}
	return append([]string(nil), tb.refOrder...)
}

func (b *matchBag) strengths(target, ref string) map[string]float64 {
	tb, ok := b.targets[target]
	if !ok {
		return nil
	}
	return tb.refs[ref]
}

// alignmentTypesFor returns the alignment types recorded for
// (target, ref), in the fixed order exact match, alignment, sparse
// exact match, sparse alignment, sparse non-mvf alignment.
func (b *matchBag) alignmentTypesFor(target, ref string) []string {
	tb, ok := b.targets[target]
	if !ok {
		return nil
	}
	// Types aren't separately ordered; reconstruct by the only two
	// orders the engine can produce them in (exact match before
	// alignment, per update phase ordering).
	al := tb.refs[ref]
	var order []string
	for _, t := range []string{TypeExactMatch, TypeAlignment, TypeSparseExactMatch, TypeSparseAlignment, TypeSparseNonMFVAlignment} {
		if _, ok := al[t]; ok {
			order = append(order, t)
		}
	}
	return order
}

// generateWitnesses builds one ValueWitness per distinct reference
// value observed for (rf, tf) in co, per spec.md §4.6.
func generateWitnesses(co *CoOccurrenceTable, rf, tf string) []ValueWitness {
	var out []ValueWitness
	for _, rval := range co.RefValues(rf, tf) {
		maxCount := 0
		maxTval := ""
		trows := 0
		for _, tval := range co.TargetValues(rf, tf, rval) {
			count := co.Count(rf, tf, rval, tval)
			if count > maxCount {
				maxCount = count
				maxTval = tval
			}
			trows += count
		}
		out = append(out, ValueWitness{
			RefField:          rf,
			TargetField:       tf,
			RefValue:          rval,
			TargetValue:       maxTval,
			AlignmentCount:    maxCount,
			MisalignmentCount: trows - maxCount,
		})
	}
	return out
}

// generateSparseWitnesses is generateWitnesses's sparse counterpart:
// rows where the reference value is the reference MFV, or the argmax
// target value is the target MFV, are suppressed.
func generateSparseWitnesses(co *CoOccurrenceTable, rf, tf, refMFV, targetMFV string) []ValueWitness {
	var out []ValueWitness
	for _, rval := range co.RefValues(rf, tf) {
		if rval == refMFV {
			continue
		}
		maxCount := 0
		maxTval := ""
		trows := 0
		for _, tval := range co.TargetValues(rf, tf, rval) {
			count := co.Count(rf, tf, rval, tval)
			if count > maxCount {
				maxCount = count
				maxTval = tval
			}
			trows += count
		}
		if maxTval == targetMFV {
			continue
		}
		out = append(out, ValueWitness{
			RefField:          rf,
			TargetField:       tf,
			RefValue:          rval,
			TargetValue:       maxTval,
			AlignmentCount:    maxCount,
			MisalignmentCount: trows - maxCount,
		})
	}
	return out
}
