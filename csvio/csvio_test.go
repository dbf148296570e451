// Copyright 2026 The Faldisco Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package csvio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fieldalign/faldisco/align"
)

func TestReadSample(t *testing.T) {
	input := "r_j__id,r__code,t__code\n" +
		"1,A,A\n" +
		"2,B,B\n"

	sample, err := ReadSample(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadSample() error = %v", err)
	}
	if sample.JoinField != "r_j__id" {
		t.Errorf("JoinField = %q, want r_j__id", sample.JoinField)
	}
	if len(sample.RefFields) != 1 || sample.RefFields[0] != "r__code" {
		t.Errorf("RefFields = %v, want [r__code]", sample.RefFields)
	}
	if len(sample.TargetFields) != 1 || sample.TargetFields[0] != "t__code" {
		t.Errorf("TargetFields = %v, want [t__code]", sample.TargetFields)
	}
	if len(sample.Rows) != 2 {
		t.Fatalf("Rows = %v, want 2 rows", sample.Rows)
	}
	if sample.Rows[0]["r__code"] != "A" || sample.Rows[1]["t__code"] != "B" {
		t.Errorf("row values not read correctly: %+v", sample.Rows)
	}
}

func TestWriteFieldAlignments(t *testing.T) {
	rows := []align.FieldAlignmentRow{
		{
			ReferenceTableNamespace: "ns", ReferenceTableName: "orders", ReferenceFieldName: "id",
			TargetTableNamespace: "ns", TargetTableName: "shipments", TargetFieldName: "order_id",
			AlignmentType: align.TypeExactMatch, AlignmentStrength: 1,
		},
	}
	var buf bytes.Buffer
	if err := WriteFieldAlignments(&buf, rows); err != nil {
		t.Fatalf("WriteFieldAlignments() error = %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "reference_table_namespace,reference_table_name,reference_field_name,") {
		t.Errorf("unexpected header: %q", out)
	}
	if !strings.Contains(out, "exact match,1") {
		t.Errorf("expected alignment type and strength in output, got %q", out)
	}
}

func TestWriteProfilesBooleanEncoding(t *testing.T) {
	rows := []align.ProfileRow{
		{TableNamespace: "ns", TableName: "t", FieldName: "f", IsUnique: true, IsSparse: false, IsConstant: false},
	}
	var buf bytes.Buffer
	if err := WriteProfiles(&buf, rows); err != nil {
		t.Fatalf("WriteProfiles() error = %v", err)
	}
	if !strings.Contains(buf.String(), ",y,n,n") {
		t.Errorf("expected y/n boolean encoding, got %q", buf.String())
	}
}
