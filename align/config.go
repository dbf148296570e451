// Copyright 2026 The Faldisco Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package align

// Config holds the tunables that govern sampling, field classification,
// and match emission. The zero Config is not ready for use; call
// DefaultConfig to get one with every threshold set, then override the
// fields the caller cares about.
type Config struct {
	// SampleSize bounds how many rows the upstream sampler should read.
	// The core engine itself places no limit on the Sample it is given.
	SampleSize int

	// KeyMinValueCount and KeyMaxValueCount bound the join-key
	// multiplicity the upstream sampler should admit.
	KeyMinValueCount int
	KeyMaxValueCount int

	// ConstantValueThreshold, SparseValueThreshold, and
	// UniqueSelectivityThreshold classify fields (see FieldClass).
	ConstantValueThreshold    float64
	SparseValueThreshold      float64
	UniqueSelectivityThreshold float64

	// FieldExactMatchThreshold, FieldRowAlignmentThreshold,
	// FieldValueAlignmentThreshold, and
	// FieldSparseNonMFVAlignmentThreshold gate which candidate Matches
	// the Engine emits.
	FieldExactMatchThreshold            float64
	FieldRowAlignmentThreshold          float64
	FieldValueAlignmentThreshold        float64
	FieldSparseNonMFVAlignmentThreshold float64

	// AlignmentSelectivityRatioThreshold relaxes the ResultSelector's
	// secondary-emission rule for "other alignments".
	AlignmentSelectivityRatioThreshold float64

	// AlignmentValueRowMatchThreshold is the alpha of the standard and
	// sparse alignment calculators.
	AlignmentValueRowMatchThreshold float64

	// Trace, when non-empty, names reference/target field names (with
	// their r__/t__ prefixes) for which the Engine should log extra
	// detail. Left nil, no tracing happens.
	Trace map[string]bool

	// Logf receives the trace lines for (rf, tf) pairs where either
	// field is named in Trace, following faldisco_globals.py's
	// TRACE_FIELDS_ANY. Left nil, the Engine stays silent: the core
	// package imports no logging library of its own, and callers like
	// cmd/faldisco wire this to log.Printf.
	Logf func(format string, args ...interface{})
}

// DefaultConfig returns the configuration described in spec.md §6.
func DefaultConfig() Config {
	return Config{
		SampleSize:       2000,
		KeyMinValueCount: 1,
		KeyMaxValueCount: 1,

		ConstantValueThreshold:     0.99,
		SparseValueThreshold:       0.95,
		UniqueSelectivityThreshold: 0.8,

		FieldExactMatchThreshold:            0.4,
		FieldRowAlignmentThreshold:          0.4,
		FieldValueAlignmentThreshold:        0.6,
		FieldSparseNonMFVAlignmentThreshold: 0.9,

		AlignmentSelectivityRatioThreshold: 0.0,
		AlignmentValueRowMatchThreshold:    0.3,
	}
}

func (c Config) traced(name string) bool {
	return c.Trace[name]
}

// tracePair logs a trace line for (rf, tf) if either field is named in
// c.Trace and a Logf hook is configured; it is a no-op otherwise.
func (c Config) tracePair(rf, tf, format string, args ...interface{}) {
	if c.Logf == nil || (!c.traced(rf) && !c.traced(tf)) {
		return
	}
	c.Logf("faldisco: trace %s/%s: "+format, append([]interface{}{rf, tf}, args...)...)
}
