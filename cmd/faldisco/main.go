// Copyright 2026 The Faldisco Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Faldisco discovers semantic field alignments between a reference
// table and a target table joined on a shared key.
//
// Usage:
//
//	faldisco [options] <ref_ns.ref_table> <target_ns.target_table> <ref_join_key> [target_join_key]
//
// faldisco connects to a database, samples a join of the two named
// tables on ref_join_key (used as the column name on both sides; a
// differing target_join_key is accepted but only logged), profiles every field
// on both sides, and writes three output tables to -out: field
// alignments, value alignments, and field profiles.
//
// If -bucket is set, the three output files (and, with -charts, the
// rendered PNGs) are also copied to that GCS bucket under -prefix.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/fieldalign/faldisco/align"
	"github.com/fieldalign/faldisco/csvio"
	"github.com/fieldalign/faldisco/report"
	"github.com/fieldalign/faldisco/sampler"
	"github.com/fieldalign/faldisco/upload"
)

var (
	flagDriver  = flag.String("driver", "mysql", "database/sql `driver` to dial with: mysql or sqlite3")
	flagDSN     = flag.String("dsn", "", "database/sql data source `name` to connect with")
	flagOut     = flag.String("out", "faldisco_output", "output `directory` for the three result tables")
	flagCharts  = flag.Bool("charts", false, "render selectivity/alignment-strength histograms alongside the tables")
	flagBucket  = flag.String("bucket", "", "optional GCS `bucket` to copy output files to")
	flagPrefix  = flag.String("prefix", "", "object key `prefix` to use within -bucket")
	flagCreds   = flag.String("creds", "", "optional GCS credentials `file`; defaults to application-default credentials")
	flagPartition = flag.String("partition", "", "optional `ds` partition value to restrict the join to")
	flagTrace   = flag.String("trace", "", "comma-separated r__/t__ `fields` to log extra detail for")

	flagSampleSize   = flag.Int("sample-size", 0, "max sample rows (0 keeps the default of 2000)")
	flagKeyMinCount  = flag.Int("key-min-count", 0, "min join-key multiplicity to admit (0 keeps the default of 1)")
	flagKeyMaxCount  = flag.Int("key-max-count", 0, "max join-key multiplicity to admit (0 keeps the default of 1)")
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: faldisco [options] <ref_ns.ref_table> <target_ns.target_table> <ref_join_key> [target_join_key]

options:
`)
	flag.PrintDefaults()
	os.Exit(2)
}

func main() {
	log.SetPrefix("faldisco: ")
	log.SetFlags(0)
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 3 && flag.NArg() != 4 {
		usage()
	}
	refSpec, targetSpec, refJoinKey := flag.Arg(0), flag.Arg(1), flag.Arg(2)
	targetJoinKey := refJoinKey
	if flag.NArg() == 4 {
		targetJoinKey = flag.Arg(3)
	}

	refNS, refTable, err := splitTableSpec(refSpec)
	if err != nil {
		log.Fatal(err)
	}
	targetNS, targetTable, err := splitTableSpec(targetSpec)
	if err != nil {
		log.Fatal(err)
	}

	cfg := align.DefaultConfig()
	if *flagSampleSize > 0 {
		cfg.SampleSize = *flagSampleSize
	}
	if *flagKeyMinCount > 0 {
		cfg.KeyMinValueCount = *flagKeyMinCount
	}
	if *flagKeyMaxCount > 0 {
		cfg.KeyMaxValueCount = *flagKeyMaxCount
	}
	if *flagTrace != "" {
		cfg.Trace = make(map[string]bool)
		for _, f := range strings.Split(*flagTrace, ",") {
			cfg.Trace[strings.TrimSpace(f)] = true
		}
		cfg.Logf = log.Printf
	}

	ctx := context.Background()
	if err := run(ctx, cfg, refNS, refTable, targetNS, targetTable, refJoinKey, targetJoinKey); err != nil {
		log.Fatal(err)
	}
}

func splitTableSpec(spec string) (namespace, table string, err error) {
	parts := strings.SplitN(spec, ".", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("faldisco: %q is not of the form namespace.table", spec)
	}
	return parts[0], parts[1], nil
}

func run(ctx context.Context, cfg align.Config, refNS, refTable, targetNS, targetTable, refJoinKey, targetJoinKey string) error {
	if *flagDSN == "" {
		return fmt.Errorf("faldisco: -dsn is required")
	}

	db, err := sampler.Open(*flagDriver, *flagDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	sample, err := loadSample(ctx, db, cfg, refNS, refTable, targetNS, targetTable, refJoinKey, targetJoinKey)
	if err != nil {
		return err
	}

	results, err := align.Run(sample, align.Tables{
		RefNamespace: refNS, RefTable: refTable,
		TargetNamespace: targetNS, TargetTable: targetTable,
	}, cfg)
	if err != nil {
		return err
	}

	log.Printf("sampled %d rows, emitted %d field alignments, %d value alignments",
		len(sample.Rows), len(results.FieldAlignments), len(results.ValueAlignments))

	paths, err := writeOutput(*flagOut, results)
	if err != nil {
		return err
	}

	if *flagCharts {
		chartPaths, err := report.Charts(*flagOut, results, 20)
		if err != nil {
			return err
		}
		paths = append(paths, chartPaths...)
		log.Printf("field selectivity: %s", report.SelectivitySummary(results.Profiles))
		log.Printf("alignment strength: %s", report.StrengthSummary(results.FieldAlignments))
	}

	if *flagBucket != "" {
		if err := uploadOutput(ctx, paths); err != nil {
			return err
		}
	}

	return nil
}

// loadSample lists sampleable columns on both sides of the join and
// runs sampler.Sample against db, following faldisco.py's
// metadata_obj.reflect()-then-filter flow.
func loadSample(ctx context.Context, db *sql.DB, cfg align.Config, refNS, refTable, targetNS, targetTable, refJoinKey, targetJoinKey string) (*align.Sample, error) {
	refCols, err := sampler.Columns(ctx, db, refNS, refTable)
	if err != nil {
		return nil, err
	}
	targetCols, err := sampler.Columns(ctx, db, targetNS, targetTable)
	if err != nil {
		return nil, err
	}

	opts := sampler.Options{
		RefNamespace: refNS, RefTable: refTable,
		TargetNamespace: targetNS, TargetTable: targetTable,
		JoinKey:          refJoinKey,
		RefColumns:       refCols,
		TargetColumns:    targetCols,
		Partition:        *flagPartition,
		SampleSize:       cfg.SampleSize,
		KeyMinValueCount: cfg.KeyMinValueCount,
		KeyMaxValueCount: cfg.KeyMaxValueCount,
	}
	if targetJoinKey != refJoinKey {
		log.Printf("target join key %q differs from reference join key %q; only one join key is used per run", targetJoinKey, refJoinKey)
	}

	return sampler.Sample(ctx, db, opts)
}

func writeOutput(dir string, results *align.Results) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("faldisco: creating output directory: %w", err)
	}

	type writer struct {
		name string
		fn   func(f *os.File) error
	}
	writers := []writer{
		{"field_alignments.csv", func(f *os.File) error { return csvio.WriteFieldAlignments(f, results.FieldAlignments) }},
		{"value_alignments.csv", func(f *os.File) error { return csvio.WriteValueAlignments(f, results.ValueAlignments) }},
		{"profiles.csv", func(f *os.File) error { return csvio.WriteProfiles(f, results.Profiles) }},
	}

	var paths []string
	for _, w := range writers {
		path := filepath.Join(dir, w.name)
		f, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("faldisco: creating %s: %w", path, err)
		}
		err = w.fn(f)
		closeErr := f.Close()
		if err != nil {
			return nil, fmt.Errorf("faldisco: writing %s: %w", path, err)
		}
		if closeErr != nil {
			return nil, fmt.Errorf("faldisco: closing %s: %w", path, closeErr)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func uploadOutput(ctx context.Context, paths []string) error {
	u, err := upload.NewUploader(ctx, *flagBucket, *flagPrefix, *flagCreds)
	if err != nil {
		return err
	}
	defer u.Close()

	if err := u.UploadAll(ctx, paths); err != nil {
		return err
	}
	log.Printf("uploaded %d files to gs://%s/%s", len(paths), *flagBucket, *flagPrefix)
	return nil
}
