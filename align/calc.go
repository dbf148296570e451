// Copyright 2026 The Faldisco Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package align

// CalcAlignment scores a non-sparse candidate pair (rf, tf) against
// its co-occurrence data, per spec.md §4.5.1. It returns alignment
// strength (the fraction of non-unique reference rows whose target
// value matches the argmax target value for that reference value),
// exact-match strength, and value-match strength. checkExact
// indicates whether (rf, tf) is in the alignment-exact-match
// combination set.
func CalcAlignment(co *CoOccurrenceTable, rf, tf string, profiles map[string]FieldProfile, checkExact bool, cfg Config) (alignment, exactStrength, valueMatchStrength float64) {
	targetMFV := ""
	if tp := profiles[tf]; tp.Cardinality > 2 {
		targetMFV = tp.MFV
	}

	var alignedRows, matchingRows, totalRows, nonUniqueRows, totalValues, matchingValues int

	for _, rval := range co.RefValues(rf, tf) {
		tvals := co.TargetValues(rf, tf, rval)
		maxCount := 0
		maxTval := ""
		trows := 0
		for _, tval := range tvals {
			count := co.Count(rf, tf, rval, tval)
			if count > maxCount {
				maxCount = count
				maxTval = tval
			}
			if checkExact && rval == tval {
				matchingRows += count
			}
			trows += count
			totalRows += count
		}
		totalValues += len(tvals)

		matched := len(tvals) == 1 ||
			maxTval == targetMFV ||
			(float64(maxCount) > float64(trows)*cfg.AlignmentValueRowMatchThreshold && cfg.AlignmentValueRowMatchThreshold > 0)
		if matched {
			matchingValues++
		}
		if trows > 1 {
			nonUniqueRows += trows
			alignedRows += maxCount
		}
	}

	return ratio(alignedRows, nonUniqueRows), ratio(matchingRows, totalRows), ratio(matchingValues, totalValues)
}

// CalcSparseAlignment scores a sparse candidate pair (rf, tf), per
// spec.md §4.5.2. In addition to the three components CalcAlignment
// returns, it reports the non-MFV row alignment: leaving out rows where
// rf and tf are both at their most-frequent value, the fraction of the
// remaining rows where both are away from it.
func CalcSparseAlignment(co *CoOccurrenceTable, rf, tf string, profiles map[string]FieldProfile, checkExact bool, cfg Config) (alignment, exactStrength, valueMatchStrength, nonMFVRowAlignment float64) {
	rp, tp := profiles[rf], profiles[tf]
	refMFV, targetMFV := rp.MFV, tp.MFV
	isUnique := rp.IsUnique(cfg) || tp.IsUnique(cfg)

	var alignedRows, matchingRows, totalRows, totalValues, matchingValues, mismatches int

	for _, rval := range co.RefValues(rf, tf) {
		tvalsSeen := co.TargetValues(rf, tf, rval)
		maxCount := 0
		trows := 0
		tvals := 0
		for _, tval := range tvalsSeen {
			count := co.Count(rf, tf, rval, tval)
			bothMFV := rval == refMFV && tval == targetMFV
			oneIsMFV := rval == refMFV || tval == targetMFV
			if oneIsMFV {
				if !bothMFV {
					mismatches += count
					totalRows += count
					trows += count
				}
				continue
			}
			if checkExact && rval == tval {
				matchingRows += count
			}
			if !isUnique && count > maxCount {
				maxCount = count
			}
			totalRows += count
			trows += count
			tvals++
		}
		totalValues += tvals

		if !isUnique {
			matched := tvals == 1 ||
				(float64(maxCount) > float64(trows)*cfg.AlignmentValueRowMatchThreshold && cfg.AlignmentValueRowMatchThreshold > 0)
			if matched {
				matchingValues++
			}
			alignedRows += maxCount
		}
	}

	return ratio(alignedRows, totalRows), ratio(matchingRows, totalRows), ratio(matchingValues, totalValues), ratio(totalRows-mismatches, totalRows)
}

// ratio returns num/den, or 0 if den is zero, per the degenerate-pair
// handling in spec.md §4.6/§7.
func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
