// Copyright 2026 The Faldisco Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package align

// FieldClass is the shape bucket a field falls into once its profile
// is known.
type FieldClass int

const (
	ClassConstant FieldClass = iota
	ClassUnique
	ClassSparse
	ClassAlignable
)

// ClassifyField buckets field by its profile. Sparseness takes
// precedence over uniqueness: a unique sparse field (e.g. a mostly-one
// value column with a handful of one-off outliers) is still treated as
// sparse, per spec.md §4.2.
func ClassifyField(fp FieldProfile, cfg Config) FieldClass {
	if fp.IsConstant(cfg) {
		return ClassConstant
	}
	if fp.IsSparse(cfg) {
		return ClassSparse
	}
	if fp.IsUnique(cfg) {
		return ClassUnique
	}
	return ClassAlignable
}

// classifyFields partitions fields into alignable, unique, and sparse
// buckets using profiles. Constant fields are dropped.
func classifyFields(fields []string, profiles map[string]FieldProfile, cfg Config) (alignable, unique, sparse []string) {
	for _, f := range fields {
		switch ClassifyField(profiles[f], cfg) {
		case ClassAlignable:
			alignable = append(alignable, f)
		case ClassUnique:
			unique = append(unique, f)
		case ClassSparse:
			sparse = append(sparse, f)
		}
	}
	return alignable, unique, sparse
}

// canPairExactMatch reports whether rf and tf's length and value
// ranges overlap closely enough that an exact-match comparison between
// them is worth tabulating (spec.md §4.2).
func canPairExactMatch(rp, tp FieldProfile) bool {
	lengthsOverlap := rp.MinLen <= tp.MaxLen && tp.MinLen <= rp.MaxLen
	if !lengthsOverlap || !rp.HasRange || !tp.HasRange {
		return false
	}
	return rp.MinVal <= tp.MaxVal && tp.MinVal <= rp.MaxVal
}

// Combinations holds the four candidate-pair sets the Classifier
// produces, and the field profiles they're grounded on.
type Combinations struct {
	Profiles map[string]FieldProfile

	Alignment           *CombinationSet
	ExactMatch          *CombinationSet
	SparseAlignment     *CombinationSet
	AlignmentExactMatch *CombinationSet
}

// Classify profiles every reference and target field and enumerates
// the four candidate-pair sets described in spec.md §4.2.
func Classify(sample *Sample, cfg Config) *Combinations {
	profiles := ProfileFields(sample.Rows, sample.RefFields)
	for k, v := range ProfileFields(sample.Rows, sample.TargetFields) {
		profiles[k] = v
	}

	alignRef, uniqueRef, sparseRef := classifyFields(sample.RefFields, profiles, cfg)
	alignTarget, uniqueTarget, sparseTarget := classifyFields(sample.TargetFields, profiles, cfg)

	c := &Combinations{
		Profiles:            profiles,
		Alignment:           NewCombinationSet(),
		ExactMatch:          NewCombinationSet(),
		SparseAlignment:     NewCombinationSet(),
		AlignmentExactMatch: NewCombinationSet(),
	}

	addPairs(c.Alignment, c.AlignmentExactMatch, alignRef, alignTarget, profiles)
	addPairs(c.SparseAlignment, c.AlignmentExactMatch, sparseRef, sparseTarget, profiles)
	addExactOnlyPairs(c.ExactMatch, uniqueRef, uniqueTarget, profiles)

	return c
}

// addPairs populates the cross product of refs x targets into set
// (unconditionally) and, for every pair that also passes
// canPairExactMatch, into exact.
func addPairs(set, exact *CombinationSet, refs, targets []string, profiles map[string]FieldProfile) {
	for _, r := range refs {
		for _, t := range targets {
			set.Add(r, t)
			if canPairExactMatch(profiles[r], profiles[t]) {
				exact.Add(r, t)
			}
		}
	}
}

// addExactOnlyPairs populates exact with the cross product of
// unique refs x unique targets, filtered by canPairExactMatch.
func addExactOnlyPairs(exact *CombinationSet, refs, targets []string, profiles map[string]FieldProfile) {
	for _, r := range refs {
		for _, t := range targets {
			if canPairExactMatch(profiles[r], profiles[t]) {
				exact.Add(r, t)
			}
		}
	}
}
