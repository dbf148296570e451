// Copyright 2026 The Faldisco Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package align

import "testing"

func TestClassifyFieldPrecedence(t *testing.T) {
	cfg := DefaultConfig()

	// Sparse takes precedence over unique: a field that's mostly one
	// value but has many one-off outliers is sparse, not unique.
	fp := FieldProfile{NumRows: 1000, Cardinality: 900, MFVCount: 960, Selectivity: 0.9}
	if got := ClassifyField(fp, cfg); got != ClassSparse {
		t.Errorf("ClassifyField = %v, want ClassSparse", got)
	}
}

func TestClassifyHonorsConstantFirst(t *testing.T) {
	cfg := DefaultConfig()
	fp := FieldProfile{NumRows: 1000, Cardinality: 1, MFVCount: 1000, Selectivity: 0.001}
	if got := ClassifyField(fp, cfg); got != ClassConstant {
		t.Errorf("ClassifyField = %v, want ClassConstant", got)
	}
}

func TestCanPairExactMatch(t *testing.T) {
	overlap := FieldProfile{MinLen: 1, MaxLen: 3, HasRange: true, MinVal: "a", MaxVal: "m"}
	noOverlap := FieldProfile{MinLen: 10, MaxLen: 20, HasRange: true, MinVal: "z1", MaxVal: "z9"}
	if canPairExactMatch(overlap, noOverlap) {
		t.Error("fields with disjoint length ranges should not pair")
	}

	disjointValues := FieldProfile{MinLen: 1, MaxLen: 3, HasRange: true, MinVal: "n", MaxVal: "z"}
	if canPairExactMatch(overlap, disjointValues) {
		t.Error("fields with disjoint value ranges should not pair")
	}

	noRange := FieldProfile{MinLen: 1, MaxLen: 3, HasRange: false}
	if canPairExactMatch(overlap, noRange) {
		t.Error("a field with no range (all special values) should never pair")
	}
}

func TestClassifyBuildsFourCombinationSets(t *testing.T) {
	cfg := DefaultConfig()
	codes := []string{"A", "A", "A", "A", "A", "B", "B", "B", "C", "C"}
	var rows []Row
	for i, c := range codes {
		rows = append(rows, Row{"r_j__k": string(rune('0' + i)), "r__code": c, "t__code": c})
	}
	sample := &Sample{Rows: rows, RefFields: []string{"r__code"}, TargetFields: []string{"t__code"}, JoinField: "r_j__k"}

	combos := Classify(sample, cfg)
	if !combos.Alignment.Exists("r__code", "t__code") {
		t.Error("expected r__code/t__code in Alignment set")
	}
	if !combos.AlignmentExactMatch.Exists("r__code", "t__code") {
		t.Error("expected r__code/t__code in AlignmentExactMatch set (overlapping ranges)")
	}
	if combos.ExactMatch.Size() != 0 || combos.SparseAlignment.Size() != 0 {
		t.Errorf("ExactMatch/SparseAlignment sizes = %d/%d, want 0/0 for an alignable (not unique, not sparse) pair", combos.ExactMatch.Size(), combos.SparseAlignment.Size())
	}
}
