// Copyright 2026 The Faldisco Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fieldalign/faldisco/align"
)

func TestSplitTableSpec(t *testing.T) {
	tests := []struct {
		spec        string
		wantNS      string
		wantTable   string
		wantErr     bool
	}{
		{"prod.users", "prod", "users", false},
		{"users", "", "", true},
		{"prod.", "", "", true},
		{".users", "", "", true},
	}
	for _, tt := range tests {
		ns, table, err := splitTableSpec(tt.spec)
		if (err != nil) != tt.wantErr {
			t.Errorf("splitTableSpec(%q) error = %v, wantErr %v", tt.spec, err, tt.wantErr)
			continue
		}
		if err == nil && (ns != tt.wantNS || table != tt.wantTable) {
			t.Errorf("splitTableSpec(%q) = (%q, %q), want (%q, %q)", tt.spec, ns, table, tt.wantNS, tt.wantTable)
		}
	}
}

func TestWriteOutput(t *testing.T) {
	dir := t.TempDir()
	results := &align.Results{
		FieldAlignments: []align.FieldAlignmentRow{
			{ReferenceFieldName: "a", TargetFieldName: "a", AlignmentType: align.TypeExactMatch, AlignmentStrength: 1},
		},
		Profiles: []align.ProfileRow{
			{FieldName: "a", Cardinality: 100, NumRows: 100},
		},
	}

	paths, err := writeOutput(dir, results)
	if err != nil {
		t.Fatalf("writeOutput: %v", err)
	}
	want := []string{"field_alignments.csv", "value_alignments.csv", "profiles.csv"}
	if len(paths) != len(want) {
		t.Fatalf("writeOutput returned %d paths, want %d", len(paths), len(want))
	}
	for i, name := range want {
		if filepath.Base(paths[i]) != name {
			t.Errorf("paths[%d] = %q, want basename %q", i, paths[i], name)
		}
		if _, err := os.Stat(paths[i]); err != nil {
			t.Errorf("stat %s: %v", paths[i], err)
		}
	}
}
