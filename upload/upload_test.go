// Copyright 2026 The Faldisco Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package upload

import "testing"

func TestObjectName(t *testing.T) {
	tests := []struct {
		prefix, path, want string
	}{
		{"", "/tmp/out/field_alignments.csv", "field_alignments.csv"},
		{"runs/2026-07-31", "/tmp/out/field_alignments.csv", "runs/2026-07-31/field_alignments.csv"},
		{"runs/2026-07-31", "value_alignments.csv", "runs/2026-07-31/value_alignments.csv"},
	}
	for _, tt := range tests {
		if got := objectName(tt.prefix, tt.path); got != tt.want {
			t.Errorf("objectName(%q, %q) = %q, want %q", tt.prefix, tt.path, got, tt.want)
		}
	}
}
