// Copyright 2026 The Faldisco Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report summarizes and charts an engine run's output: the
// distribution of field selectivity across a table's profile, and the
// distribution of alignment strength across emitted matches.
package report

import (
	"fmt"

	"github.com/aclements/go-moremath/stats"
	"github.com/fieldalign/faldisco/align"
)

// Summary is a small statistical digest of a set of values, computed
// the way benchmath's Sample wraps go-moremath's stats.Sample.
type Summary struct {
	N      int
	Mean   float64
	StdDev float64
	Median float64
	P25    float64
	P75    float64
}

// Summarize computes a Summary over values. It returns the zero
// Summary if values is empty.
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}
	s := stats.Sample{Xs: append([]float64(nil), values...)}
	return Summary{
		N:      len(values),
		Mean:   s.Mean(),
		StdDev: s.StdDev(),
		Median: s.Percentile(0.5),
		P25:    s.Percentile(0.25),
		P75:    s.Percentile(0.75),
	}
}

// SelectivitySummary summarizes the selectivity of every field in
// profiles.
func SelectivitySummary(profiles []align.ProfileRow) Summary {
	values := make([]float64, len(profiles))
	for i, p := range profiles {
		values[i] = p.Selectivity
	}
	return Summarize(values)
}

// StrengthSummary summarizes the alignment strength of every emitted
// field alignment.
func StrengthSummary(rows []align.FieldAlignmentRow) Summary {
	values := make([]float64, len(rows))
	for i, r := range rows {
		values[i] = r.AlignmentStrength
	}
	return Summarize(values)
}

// String renders the Summary the way a log line or report footer
// would: "n=12 mean=0.342 median=0.310 p25=0.110 p75=0.560 stddev=0.201".
func (s Summary) String() string {
	return fmt.Sprintf("n=%d mean=%.3f median=%.3f p25=%.3f p75=%.3f stddev=%.3f",
		s.N, s.Mean, s.Median, s.P25, s.P75, s.StdDev)
}
