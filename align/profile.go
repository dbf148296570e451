// Copyright 2026 The Faldisco Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package align

import "sort"

// FieldProfile summarizes the values a single field takes across a
// Sample: how many rows it has, how many distinct values (including
// one bucket per observed special value), which value is most
// frequent, and the length/value bounds of its non-special values.
type FieldProfile struct {
	NumRows     int
	Cardinality int
	Selectivity float64
	MFV         string
	MFVCount    int

	// MinLen and MaxLen are -1 when every value observed was special.
	MinLen, MaxLen int

	// MinVal and MaxVal are absent (HasRange == false) when every
	// value observed was special.
	MinVal, MaxVal string
	HasRange       bool
}

// IsConstant reports whether the field is constant: cardinality at
// most one, or its most-frequent value covers more than
// ConstantValueThreshold of all rows.
func (fp FieldProfile) IsConstant(cfg Config) bool {
	if fp.Cardinality <= 1 {
		return true
	}
	return float64(fp.MFVCount)/float64(fp.NumRows) > cfg.ConstantValueThreshold
}

// IsSparse reports whether the field is sparse: not constant, but its
// most-frequent value covers more than SparseValueThreshold of all
// rows.
func (fp FieldProfile) IsSparse(cfg Config) bool {
	if fp.IsConstant(cfg) {
		return false
	}
	return float64(fp.MFVCount)/float64(fp.NumRows) > cfg.SparseValueThreshold
}

// IsUnique reports whether the field is unique: its selectivity
// exceeds UniqueSelectivityThreshold, or it would after discounting
// the rows occupied by the most-frequent value.
func (fp FieldProfile) IsUnique(cfg Config) bool {
	if fp.Selectivity > cfg.UniqueSelectivityThreshold {
		return true
	}
	denom := fp.NumRows - fp.MFVCount
	if denom > 0 && float64(fp.Cardinality-1)/float64(denom) > cfg.UniqueSelectivityThreshold {
		return true
	}
	return false
}

// Profile computes the FieldProfile for field across every row of the
// sample. It requires field to be present on every row and num_rows
// >= 1 (spec.md §4.1).
func Profile(rows []Row, field string) FieldProfile {
	sorted := make([]Row, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i][field] < sorted[j][field]
	})

	numRows := len(sorted)
	var (
		prev         string
		havePrev     bool
		currentCount int
		cardinality  int
		mfv          string
		mfvCount     int
		minLen       = -1
		maxLen       = -1
		minVal       string
		maxVal       string
		haveRange    bool
		val          string
	)

	finalizeRun := func(value string, count int) {
		if count > mfvCount {
			mfvCount = count
			mfv = value
		}
	}
	trackRange := func(value string) {
		if IsSpecialValue(value) {
			return
		}
		n := len(value)
		if minLen == -1 || n < minLen {
			minLen = n
		}
		if maxLen == -1 || n > maxLen {
			maxLen = n
		}
		if !haveRange || value < minVal {
			minVal = value
		}
		if !haveRange || value > maxVal {
			maxVal = value
		}
		haveRange = true
	}

	for _, r := range sorted {
		val = r[field]
		if !havePrev || prev != val {
			cardinality++
			if havePrev {
				finalizeRun(prev, currentCount)
			}
			prev = val
			havePrev = true
			trackRange(val)
			currentCount = 1
		} else {
			currentCount++
		}
	}
	if havePrev {
		trackRange(val)
		finalizeRun(prev, currentCount)
	}

	selectivity := 0.0
	if numRows > 0 {
		selectivity = float64(cardinality) / float64(numRows)
	}

	return FieldProfile{
		NumRows:     numRows,
		Cardinality: cardinality,
		Selectivity: selectivity,
		MFV:         mfv,
		MFVCount:    mfvCount,
		MinLen:      minLen,
		MaxLen:      maxLen,
		MinVal:      minVal,
		MaxVal:      maxVal,
		HasRange:    haveRange,
	}
}

// ProfileFields profiles every named field over rows, returning a
// profile keyed by the (prefixed) field name.
func ProfileFields(rows []Row, fields []string) map[string]FieldProfile {
	profiles := make(map[string]FieldProfile, len(fields))
	for _, f := range fields {
		profiles[f] = Profile(rows, f)
	}
	return profiles
}
