// Copyright 2026 The Faldisco Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"fmt"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/fieldalign/faldisco/align"
)

// Histogram renders a PNG histogram of values to path, following the
// plotting style benchseries.Chart uses for benchmark trend charts:
// a single gonum/v1/plot Plot with one plotter.Values series.
func Histogram(title string, values []float64, bins int, path string) error {
	if len(values) == 0 {
		return fmt.Errorf("report: cannot chart an empty %q series", title)
	}

	p := plot.New()
	p.Title.Text = title

	hist, err := plotter.NewHist(plotter.Values(values), bins)
	if err != nil {
		return fmt.Errorf("report: building histogram for %q: %w", title, err)
	}
	p.Add(hist)

	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("report: saving %q: %w", path, err)
	}
	return nil
}

// Charts renders the two standard charts for one engine run --
// field selectivity across the profile table, and alignment strength
// across the field-alignments table -- as PNGs in dir.
func Charts(dir string, results *align.Results, bins int) ([]string, error) {
	selectivity := make([]float64, len(results.Profiles))
	for i, p := range results.Profiles {
		selectivity[i] = p.Selectivity
	}
	strength := make([]float64, len(results.FieldAlignments))
	for i, r := range results.FieldAlignments {
		strength[i] = r.AlignmentStrength
	}

	var paths []string
	if len(selectivity) > 0 {
		path := filepath.Join(dir, "selectivity.png")
		if err := Histogram("field selectivity", selectivity, bins, path); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	if len(strength) > 0 {
		path := filepath.Join(dir, "alignment_strength.png")
		if err := Histogram("alignment strength", strength, bins, path); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
