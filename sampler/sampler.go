// Copyright 2026 The Faldisco Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sampler loads a joined sample of a reference and target
// table from a SQL database. It generates the join query with
// text/template, the way golang.org/x/perf/storage/db builds its
// CREATE TABLE statements, and supports mysql, sqlite3 (for tests and
// local fixtures), and Cloud SQL via its dialer.
package sampler

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"
	"text/template"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"

	"github.com/fieldalign/faldisco/align"
)

// Column names the sampler never selects, following faldisco.py's
// IGNORED_NAMES: these are partition/sharding columns, not data
// columns worth aligning.
var IgnoredColumnNames = map[string]bool{
	"ds":    true,
	"shard": true,
}

// IsIgnoredColumn reports whether name should be skipped when
// building the sample, per IgnoredColumnNames and the "contains json"
// rule faldisco.py applies to avoid sampling serialized blob columns.
func IsIgnoredColumn(name string) bool {
	if IgnoredColumnNames[name] {
		return true
	}
	return strings.Contains(strings.ToLower(name), "json")
}

// Options configures one sampling run.
type Options struct {
	RefNamespace, RefTable       string
	TargetNamespace, TargetTable string
	JoinKey                      string

	// RefColumns and TargetColumns name the columns to sample from
	// each side, after IsIgnoredColumn filtering has already been
	// applied by the caller.
	RefColumns, TargetColumns []string

	// Partition, if non-empty, is applied as a `ds = 'Partition'`
	// predicate on both sides of the join, per faldisco's original
	// partitioned-table query shape.
	Partition string

	SampleSize       int
	KeyMinValueCount int
	KeyMaxValueCount int
}

type queryData struct {
	RefNamespace, RefTable       string
	TargetNamespace, TargetTable string
	JoinKey                      string
	RefColumns, TargetColumns    []string
	Partition                    string
	SampleSize                   int
	KeyMinValueCount             int
	KeyMaxValueCount             int
}

// queryTmpl mirrors storage/db.go's createTmpl: a single text/template
// evaluated with a struct of named fields, rather than string
// concatenation.
var queryTmpl = template.Must(template.New("sample").Parse(`
with key_counts as (
	select r.{{.JoinKey}}, count(*) as numrows
	from {{.RefNamespace}}.{{.RefTable}} r
	join {{.TargetNamespace}}.{{.TargetTable}} t on r.{{.JoinKey}} = t.{{.JoinKey}}
	{{if .Partition}}where r.ds = '{{.Partition}}' and t.ds = '{{.Partition}}'{{end}}
	group by r.{{.JoinKey}}
)
select r.{{.JoinKey}} as r_j__{{.JoinKey}}
{{range .RefColumns}}, case when r.{{.}} is null then 'FALDISCO_NULL'
	when cast(r.{{.}} as char) = '' then 'FALDISCO_EMPTY'
	else cast(r.{{.}} as char) end as r__{{.}}
{{end}}
{{range .TargetColumns}}, case when t.{{.}} is null then 'FALDISCO_NULL'
	when cast(t.{{.}} as char) = '' then 'FALDISCO_EMPTY'
	else cast(t.{{.}} as char) end as t__{{.}}
{{end}}
from {{.RefNamespace}}.{{.RefTable}} r
join {{.TargetNamespace}}.{{.TargetTable}} t on r.{{.JoinKey}} = t.{{.JoinKey}}
join key_counts k on r.{{.JoinKey}} = k.{{.JoinKey}}
where k.numrows >= {{.KeyMinValueCount}} and k.numrows <= {{.KeyMaxValueCount}}
{{if .Partition}}and r.ds = '{{.Partition}}' and t.ds = '{{.Partition}}'{{end}}
limit {{.SampleSize}}
`))

// Query renders the join query for opts.
func Query(opts Options) (string, error) {
	var buf bytes.Buffer
	if err := queryTmpl.Execute(&buf, queryData{
		RefNamespace: opts.RefNamespace, RefTable: opts.RefTable,
		TargetNamespace: opts.TargetNamespace, TargetTable: opts.TargetTable,
		JoinKey:          opts.JoinKey,
		RefColumns:       opts.RefColumns,
		TargetColumns:    opts.TargetColumns,
		Partition:        opts.Partition,
		SampleSize:       opts.SampleSize,
		KeyMinValueCount: opts.KeyMinValueCount,
		KeyMaxValueCount: opts.KeyMaxValueCount,
	}); err != nil {
		return "", fmt.Errorf("sampler: rendering query: %w", err)
	}
	return buf.String(), nil
}

// Open opens a database connection. driverName is typically "mysql"
// or "sqlite3"; a dataSourceName of the form "cloudsql(<instance>)/..."
// is handled transparently, because this package imports
// github.com/GoogleCloudPlatform/cloudsql-proxy/proxy/dialers/mysql for
// its init-time dialer registration (see cloudsql.go).
func Open(driverName, dataSourceName string) (*sql.DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("sampler: opening %s database: %w", driverName, err)
	}
	return db, nil
}

// Sample runs opts's query against db and returns the resulting
// align.Sample.
func Sample(ctx context.Context, db *sql.DB, opts Options) (*align.Sample, error) {
	query, err := Query(opts)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("sampler: running query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("sampler: reading columns: %w", err)
	}

	sample := &align.Sample{JoinField: "r_j__" + opts.JoinKey}
	for _, c := range opts.RefColumns {
		sample.RefFields = append(sample.RefFields, "r__"+c)
	}
	for _, c := range opts.TargetColumns {
		sample.TargetFields = append(sample.TargetFields, "t__"+c)
	}

	scan := make([]sql.NullString, len(cols))
	ptrs := make([]interface{}, len(cols))
	for i := range scan {
		ptrs[i] = &scan[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("sampler: scanning row: %w", err)
		}
		row := make(align.Row, len(cols))
		for i, c := range cols {
			if scan[i].Valid {
				row[c] = scan[i].String
			} else {
				row[c] = align.NullValue
			}
		}
		sample.Rows = append(sample.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sampler: iterating rows: %w", err)
	}

	return sample, nil
}
