// Copyright 2026 The Faldisco Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package align

// ResultSelector reduces the bag of candidate Matches the update
// phases produce, per target field, down to the representative set
// described in spec.md §4.6: the strongest exact match (if any), the
// strongest alignment that beats it, and any other candidate whose
// strength-to-selectivity ratio keeps pace with the winner.
//
// The sparse path (dedupSparseField) differs from the non-sparse path
// in ways that look asymmetric on a first read. That asymmetry is
// carried over deliberately from the original selector this package is
// grounded on: the sparse path never populates its "other candidates"
// list or updates its running best-ratio while scanning matches, so
// every sparse field's secondary-candidate pass is a no-op. DESIGN.md
// lists the sparse path's other preserved quirks.
type ResultSelector struct {
	Profiles map[string]FieldProfile
	AlignCo  *CoOccurrenceTable
	SparseCo *CoOccurrenceTable
	Config   Config
}

// Select walks every target field with at least one candidate Match
// and returns the field-alignment and value-alignment rows the bag
// reduces to.
func (s *ResultSelector) Select(bag *matchBag) ([]FieldAlignmentRow, []ValueAlignmentRow) {
	var rows []FieldAlignmentRow
	var vals []ValueAlignmentRow
	for _, target := range bag.targetFields() {
		var r []FieldAlignmentRow
		var v []ValueAlignmentRow
		if s.Profiles[target].IsSparse(s.Config) {
			r, v = s.dedupSparseField(bag, target)
		} else {
			r, v = s.dedupField(bag, target)
		}
		rows = append(rows, r...)
		vals = append(vals, v...)
	}
	return rows, vals
}

func safeRatio(strength, selectivity float64) float64 {
	if selectivity == 0 {
		return 0
	}
	return strength / selectivity
}

func (s *ResultSelector) dedupField(bag *matchBag, target string) ([]FieldAlignmentRow, []ValueAlignmentRow) {
	var maxExact, maxAlign, maxRatio float64
	minSelectivity := 1.0
	var topExact, topAlign, other []string

	for _, r := range bag.refsFor(target) {
		al := bag.strengths(target, r)
		for _, kind := range bag.alignmentTypesFor(target, r) {
			strength := al[kind]
			if kind == TypeExactMatch {
				switch {
				case strength > maxExact:
					maxExact = strength
					topExact = []string{r}
				case strength == maxExact:
					topExact = append(topExact, r)
				}
				continue
			}
			if strength <= maxExact {
				continue
			}
			selectivity := s.Profiles[r].Selectivity
			if ratio := safeRatio(strength, selectivity); ratio >= maxRatio {
				maxRatio = ratio
				other = append(other, r)
			}
			switch {
			case strength > maxAlign || (strength == maxAlign && selectivity < minSelectivity):
				maxAlign = strength
				topAlign = []string{r}
				minSelectivity = selectivity
			case strength == maxAlign && selectivity == minSelectivity:
				topAlign = append(topAlign, r)
			}
		}
	}

	return s.addFieldResults(bag, target, maxExact, maxAlign, minSelectivity, maxRatio, topExact, topAlign, other)
}

func (s *ResultSelector) addFieldResults(bag *matchBag, target string, maxExact, maxAlign, minSelectivity, maxRatio float64, topExact, topAlign, other []string) ([]FieldAlignmentRow, []ValueAlignmentRow) {
	rows, vals := s.addMatches(bag, topExact, target, TypeExactMatch, maxExact)

	if maxExact < maxAlign {
		r, v := s.addMatches(bag, topAlign, target, TypeAlignment, maxAlign)
		rows = append(rows, r...)
		vals = append(vals, v...)

		dedupedOther := filterOutDups(other, append(append([]string(nil), topAlign...), topExact...))
		r, v = s.processOtherAlignments(bag, dedupedOther, maxAlign, maxExact, maxRatio, target, TypeAlignment)
		rows = append(rows, r...)
		vals = append(vals, v...)
	}

	return rows, vals
}

func (s *ResultSelector) processOtherAlignments(bag *matchBag, other []string, maxAlignmentStrength, maxExact, maxRatio float64, target, kind string) ([]FieldAlignmentRow, []ValueAlignmentRow) {
	threshold := maxRatio - s.Config.AlignmentSelectivityRatioThreshold
	var rows []FieldAlignmentRow
	var vals []ValueAlignmentRow
	for _, r := range other {
		strength := bag.strengths(target, r)[kind]
		if strength <= maxExact {
			continue
		}
		selectivity := s.Profiles[r].Selectivity
		if safeRatio(strength, selectivity) < threshold {
			continue
		}
		row, v := s.addMatch(r, target, kind, strength)
		rows = append(rows, row)
		vals = append(vals, v...)
	}
	return rows, vals
}

func (s *ResultSelector) dedupSparseField(bag *matchBag, target string) ([]FieldAlignmentRow, []ValueAlignmentRow) {
	var maxExact, maxAlign, maxNonMFV, maxRatio float64
	minSelectivity := 1.0
	var topExact, topAlign, topNonMFV, other []string

	for _, r := range bag.refsFor(target) {
		al := bag.strengths(target, r)
		for _, kind := range bag.alignmentTypesFor(target, r) {
			strength := al[kind]
			switch kind {
			case TypeSparseExactMatch:
				switch {
				case strength > maxExact:
					maxExact = strength
					topExact = []string{r}
				case strength == maxExact:
					topExact = append(topExact, r)
				}
			case TypeSparseAlignment:
				if strength <= maxExact {
					continue
				}
				if strength > maxAlign {
					maxAlign = strength
					topAlign = []string{r}
				} else if strength > maxNonMFV {
					topAlign = append(topAlign, r)
				}
			case TypeSparseNonMFVAlignment:
				if strength <= maxAlign {
					continue
				}
				if strength > maxNonMFV {
					maxNonMFV = strength
					topNonMFV = []string{r}
				} else if strength > maxNonMFV {
					topNonMFV = append(topNonMFV, r)
				}
			}
		}
	}

	return s.addSparseFieldResults(bag, target, maxExact, maxAlign, minSelectivity, maxRatio, maxNonMFV, topExact, topAlign, other, topNonMFV)
}

func (s *ResultSelector) addSparseFieldResults(bag *matchBag, target string, maxExact, maxAlign, minSelectivity, maxRatio, maxNonMFV float64, topExact, topAlign, other, topNonMFV []string) ([]FieldAlignmentRow, []ValueAlignmentRow) {
	var rows []FieldAlignmentRow
	var vals []ValueAlignmentRow

	if maxNonMFV > maxExact && maxNonMFV > maxAlign && maxNonMFV > 0 {
		r, v := s.addMatches(bag, topNonMFV, target, TypeSparseNonMFVAlignment, maxNonMFV)
		rows = append(rows, r...)
		vals = append(vals, v...)
	}

	r, v := s.addMatches(bag, topExact, target, TypeSparseExactMatch, maxExact)
	rows = append(rows, r...)
	vals = append(vals, v...)

	if maxExact < maxAlign {
		r, v = s.addMatches(bag, topAlign, target, TypeSparseAlignment, maxAlign)
		rows = append(rows, r...)
		vals = append(vals, v...)

		dedupedOther := filterOutDups(other, append(append([]string(nil), topAlign...), topExact...))
		r, v = s.processOtherAlignments(bag, dedupedOther, maxAlign, maxExact, maxRatio, target, TypeSparseAlignment)
		rows = append(rows, r...)
		vals = append(vals, v...)
	}

	return rows, vals
}

// addMatches emits one FieldAlignmentRow (and, for kinds that carry
// value evidence, its ValueAlignmentRows) per ref in refs.
func (s *ResultSelector) addMatches(bag *matchBag, refs []string, target, kind string, strength float64) ([]FieldAlignmentRow, []ValueAlignmentRow) {
	var rows []FieldAlignmentRow
	var vals []ValueAlignmentRow
	for _, r := range refs {
		row, v := s.addMatch(r, target, kind, strength)
		rows = append(rows, row)
		vals = append(vals, v...)
	}
	return rows, vals
}

func (s *ResultSelector) addMatch(ref, target, kind string, strength float64) (FieldAlignmentRow, []ValueAlignmentRow) {
	row := FieldAlignmentRow{
		ReferenceFieldName: ref,
		TargetFieldName:    target,
		AlignmentType:      kind,
		AlignmentStrength:  strength,
	}

	var witnesses []ValueWitness
	switch kind {
	case TypeAlignment:
		witnesses = generateWitnesses(s.AlignCo, ref, target)
	case TypeSparseAlignment:
		witnesses = generateSparseWitnesses(s.SparseCo, ref, target, s.Profiles[ref].MFV, s.Profiles[target].MFV)
	}

	var vals []ValueAlignmentRow
	for _, w := range witnesses {
		vals = append(vals, ValueAlignmentRow{
			ReferenceFieldName: w.RefField,
			TargetFieldName:    w.TargetField,
			ReferenceFieldValue: w.RefValue,
			TargetFieldValue:    w.TargetValue,
			AlignmentType:       kind,
			AlignmentCount:      w.AlignmentCount,
			MisalignmentCount:   w.MisalignmentCount,
		})
	}
	return row, vals
}

// filterOutDups returns the elements of list1, in order, that are not
// present in list2, with duplicates within list1 itself collapsed.
func filterOutDups(list1, list2 []string) []string {
	exclude := make(map[string]bool, len(list2))
	for _, v := range list2 {
		exclude[v] = true
	}
	seen := make(map[string]bool, len(list1))
	var out []string
	for _, v := range list1 {
		if exclude[v] || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
