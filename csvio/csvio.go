// Copyright 2026 The Faldisco Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package csvio reads the joined sample and writes the three output
// tables (field alignments, value alignments, profiles) as delimited
// text. It is the one adapter in this repository built entirely on
// the standard library: no third-party CSV library appears anywhere
// in the retrieved example pack, so encoding/csv is used directly
// rather than adopting one gratuitously. See DESIGN.md.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/fieldalign/faldisco/align"
)

// ReadSample reads a joined sample from r. The first row must be a
// header naming every column; the join-key, reference, and target
// columns are identified by their r_j__/r__/t__ prefixes.
func ReadSample(r io.Reader) (*align.Sample, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("csvio: empty sample file")
		}
		return nil, fmt.Errorf("csvio: reading header: %w", err)
	}
	header = append([]string(nil), header...)

	sample := &align.Sample{}
	for _, col := range header {
		switch {
		case len(col) >= len(align.JoinPrefix) && col[:len(align.JoinPrefix)] == align.JoinPrefix:
			sample.JoinField = col
		case len(col) >= len(align.RefPrefix) && col[:len(align.RefPrefix)] == align.RefPrefix:
			sample.RefFields = append(sample.RefFields, col)
		case len(col) >= len(align.TargetPrefix) && col[:len(align.TargetPrefix)] == align.TargetPrefix:
			sample.TargetFields = append(sample.TargetFields, col)
		}
	}

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csvio: reading row: %w", err)
		}
		row := make(align.Row, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		sample.Rows = append(sample.Rows, row)
	}

	return sample, nil
}

var fieldAlignmentHeader = []string{
	"reference_table_namespace", "reference_table_name", "reference_field_name",
	"target_table_namespace", "target_table_name", "target_field_name",
	"alignment_type", "alignment_strength",
}

// WriteFieldAlignments writes the field-alignments table, in the
// column order spec.md §6 requires.
func WriteFieldAlignments(w io.Writer, rows []align.FieldAlignmentRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(fieldAlignmentHeader); err != nil {
		return fmt.Errorf("csvio: writing header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			r.ReferenceTableNamespace, r.ReferenceTableName, r.ReferenceFieldName,
			r.TargetTableNamespace, r.TargetTableName, r.TargetFieldName,
			r.AlignmentType, strconv.FormatFloat(r.AlignmentStrength, 'f', -1, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("csvio: writing row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

var valueAlignmentHeader = []string{
	"reference_table_namespace", "reference_table_name", "reference_field_name",
	"target_table_namespace", "target_table_name", "target_field_name",
	"reference_field_value", "target_field_value",
	"alignment_type", "alignment_count", "misalignment_count",
}

// WriteValueAlignments writes the value-alignments table, in the
// column order spec.md §6 requires.
func WriteValueAlignments(w io.Writer, rows []align.ValueAlignmentRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(valueAlignmentHeader); err != nil {
		return fmt.Errorf("csvio: writing header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			r.ReferenceTableNamespace, r.ReferenceTableName, r.ReferenceFieldName,
			r.TargetTableNamespace, r.TargetTableName, r.TargetFieldName,
			r.ReferenceFieldValue, r.TargetFieldValue,
			r.AlignmentType, strconv.Itoa(r.AlignmentCount), strconv.Itoa(r.MisalignmentCount),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("csvio: writing row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

var profileHeader = []string{
	"table_namespace", "table_name", "field_name", "cardinality", "selectivity",
	"min_value", "max_value", "min_len", "max_len", "mfv_count", "num_rows",
	"is_unique", "is_sparse", "is_constant",
}

// WriteProfiles writes the profiles table, in the column order
// spec.md §6 requires. Boolean columns are encoded "y"/"n".
func WriteProfiles(w io.Writer, rows []align.ProfileRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(profileHeader); err != nil {
		return fmt.Errorf("csvio: writing header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			r.TableNamespace, r.TableName, r.FieldName,
			strconv.Itoa(r.Cardinality), strconv.FormatFloat(r.Selectivity, 'f', -1, 64),
			r.MinValue, r.MaxValue,
			strconv.Itoa(r.MinLen), strconv.Itoa(r.MaxLen),
			strconv.Itoa(r.MFVCount), strconv.Itoa(r.NumRows),
			yn(r.IsUnique), yn(r.IsSparse), yn(r.IsConstant),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("csvio: writing row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func yn(b bool) string {
	if b {
		return "y"
	}
	return "n"
}
