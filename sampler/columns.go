// Copyright 2026 The Faldisco Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sampler

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// SupportedTypes lists the information_schema data_type values the
// sampler will profile, following faldisco.py's SUPPORTED_TYPES set:
// short textual and integral types worth comparing as strings. Large
// blob/text types and floating point types are excluded, the same way
// the original skips them to avoid comparing noisy or unbounded
// values.
var SupportedTypes = map[string]bool{
	"char":      true,
	"varchar":   true,
	"text":      true,
	"int":       true,
	"bigint":    true,
	"smallint":  true,
	"tinyint":   true,
	"date":      true,
	"datetime":  true,
	"timestamp": true,
}

// Columns returns the sampleable column names for namespace.table:
// those whose information_schema data_type is in SupportedTypes and
// whose name doesn't trip IsIgnoredColumn.
func Columns(ctx context.Context, db *sql.DB, namespace, table string) ([]string, error) {
	rows, err := db.QueryContext(ctx, `
		select column_name, data_type
		from information_schema.columns
		where table_schema = ? and table_name = ?
		order by ordinal_position
	`, namespace, table)
	if err != nil {
		return nil, fmt.Errorf("sampler: listing columns for %s.%s: %w", namespace, table, err)
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var name, dataType string
		if err := rows.Scan(&name, &dataType); err != nil {
			return nil, fmt.Errorf("sampler: scanning column metadata: %w", err)
		}
		if IsIgnoredColumn(name) {
			continue
		}
		if !SupportedTypes[strings.ToLower(dataType)] {
			continue
		}
		cols = append(cols, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sampler: iterating column metadata: %w", err)
	}
	return cols, nil
}
