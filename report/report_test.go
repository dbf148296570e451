// Copyright 2026 The Faldisco Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"path/filepath"
	"testing"

	"github.com/fieldalign/faldisco/align"
)

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.N != 0 {
		t.Errorf("N = %d, want 0 for an empty series", s.N)
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{1, 2, 3, 4, 5})
	if s.N != 5 {
		t.Errorf("N = %d, want 5", s.N)
	}
	if s.Mean != 3 {
		t.Errorf("Mean = %v, want 3", s.Mean)
	}
}

func TestSelectivitySummary(t *testing.T) {
	profiles := []align.ProfileRow{{Selectivity: 0.2}, {Selectivity: 0.8}}
	s := SelectivitySummary(profiles)
	if s.N != 2 {
		t.Errorf("N = %d, want 2", s.N)
	}
	if s.Mean != 0.5 {
		t.Errorf("Mean = %v, want 0.5", s.Mean)
	}
}

func TestHistogram(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hist.png")
	if err := Histogram("test", []float64{0.1, 0.2, 0.3, 0.4, 0.5}, 5, path); err != nil {
		t.Fatalf("Histogram() error = %v", err)
	}
}

func TestHistogramEmptyIsError(t *testing.T) {
	if err := Histogram("test", nil, 5, filepath.Join(t.TempDir(), "x.png")); err == nil {
		t.Fatal("expected an error charting an empty series")
	}
}
