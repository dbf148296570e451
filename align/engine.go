// Copyright 2026 The Faldisco Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package align

// Run executes the full field-alignment discovery pipeline against
// sample: profiling and classifying every field, tabulating
// co-occurrence over the sample's rows, scoring every candidate pair,
// and reducing the candidates to a final result set.
func Run(sample *Sample, tables Tables, cfg Config) (*Results, error) {
	if err := sample.Validate(); err != nil {
		return nil, err
	}

	combos := Classify(sample, cfg)
	profileRows := buildProfileRows(sample, combos.Profiles, tables, cfg)

	if len(sample.Rows) == 0 {
		return &Results{Profiles: profileRows}, nil
	}

	alignCo := NewCoOccurrenceTable()
	sparseCo := NewCoOccurrenceTable()
	exact := NewExactCounter()

	for _, row := range sample.Rows {
		processRowCoOccurrence(row, combos.Alignment, alignCo)
		processRowExactMatch(row, combos.ExactMatch, exact)
		processRowCoOccurrence(row, combos.SparseAlignment, sparseCo)
	}

	bag := newMatchBag()
	updateAlignments(combos, alignCo, bag, cfg)
	updateExactMatches(combos, exact, len(sample.Rows), bag, cfg)
	updateSparseAlignments(combos, sparseCo, bag, cfg)

	selector := &ResultSelector{Profiles: combos.Profiles, AlignCo: alignCo, SparseCo: sparseCo, Config: cfg}
	fieldRows, valueRows := selector.Select(bag)

	return &Results{
		FieldAlignments: finalizeFieldAlignmentRows(fieldRows, tables),
		ValueAlignments: finalizeValueAlignmentRows(valueRows, tables),
		Profiles:        profileRows,
	}, nil
}

// processRowCoOccurrence tabulates one row's values into co for every
// candidate pair in set.
func processRowCoOccurrence(row Row, set *CombinationSet, co *CoOccurrenceTable) {
	for _, ref := range set.Refs() {
		rval := row[ref]
		for _, target := range set.Targets(ref) {
			co.Add(ref, target, rval, row[target])
		}
	}
}

// processRowExactMatch tabulates one row's matches into exact for
// every candidate pair in set.
func processRowExactMatch(row Row, set *CombinationSet, exact *ExactCounter) {
	for _, ref := range set.Refs() {
		rval := row[ref]
		for _, target := range set.Targets(ref) {
			if rval == row[target] {
				exact.Increment(ref, target, 1)
			}
		}
	}
}

// updateAlignments scores every candidate pair in combos.Alignment and
// records the matches that clear their thresholds.
func updateAlignments(combos *Combinations, co *CoOccurrenceTable, bag *matchBag, cfg Config) {
	for _, ref := range combos.Alignment.Refs() {
		for _, target := range combos.Alignment.Targets(ref) {
			checkExact := combos.AlignmentExactMatch.Exists(ref, target)
			alignment, exactStrength, valueStrength := CalcAlignment(co, ref, target, combos.Profiles, checkExact, cfg)
			cfg.tracePair(ref, target, "alignment=%.4f exact=%.4f value=%.4f checkExact=%v", alignment, exactStrength, valueStrength, checkExact)

			if checkExact && exactStrength >= cfg.FieldExactMatchThreshold {
				bag.add(ref, target, TypeExactMatch, exactStrength)
			}
			if alignment >= exactStrength && alignment > cfg.FieldRowAlignmentThreshold && valueStrength > cfg.FieldValueAlignmentThreshold {
				bag.add(ref, target, TypeAlignment, alignment)
			}
		}
	}
}

// updateExactMatches scores every candidate pair in combos.ExactMatch
// (the unique x unique combinations, which carry no row-alignment
// signal of their own) and records the matches that clear their
// threshold.
func updateExactMatches(combos *Combinations, exact *ExactCounter, numRows int, bag *matchBag, cfg Config) {
	for _, ref := range combos.ExactMatch.Refs() {
		for _, target := range combos.ExactMatch.Targets(ref) {
			strength := ratio(exact.Count(ref, target), numRows)
			cfg.tracePair(ref, target, "exact-match strength=%.4f", strength)
			if strength >= cfg.FieldExactMatchThreshold {
				bag.add(ref, target, TypeExactMatch, strength)
			}
		}
	}
}

// updateSparseAlignments scores every candidate pair in
// combos.SparseAlignment and records the matches that clear their
// thresholds.
func updateSparseAlignments(combos *Combinations, co *CoOccurrenceTable, bag *matchBag, cfg Config) {
	for _, ref := range combos.SparseAlignment.Refs() {
		for _, target := range combos.SparseAlignment.Targets(ref) {
			checkExact := combos.AlignmentExactMatch.Exists(ref, target)
			alignment, exactStrength, valueStrength, nonMFV := CalcSparseAlignment(co, ref, target, combos.Profiles, checkExact, cfg)
			cfg.tracePair(ref, target, "sparse alignment=%.4f exact=%.4f value=%.4f nonMFV=%.4f checkExact=%v", alignment, exactStrength, valueStrength, nonMFV, checkExact)

			if checkExact && exactStrength >= cfg.FieldExactMatchThreshold {
				bag.add(ref, target, TypeSparseExactMatch, exactStrength)
			}
			if alignment >= exactStrength && alignment > cfg.FieldRowAlignmentThreshold && valueStrength > cfg.FieldValueAlignmentThreshold {
				bag.add(ref, target, TypeSparseAlignment, alignment)
			} else if nonMFV > cfg.FieldSparseNonMFVAlignmentThreshold {
				bag.add(ref, target, TypeSparseNonMFVAlignment, nonMFV)
			}
		}
	}
}

func buildProfileRows(sample *Sample, profiles map[string]FieldProfile, tables Tables, cfg Config) []ProfileRow {
	var rows []ProfileRow
	for _, f := range sample.RefFields {
		rows = append(rows, profileRow(tables.RefNamespace, tables.RefTable, f, profiles[f], cfg))
	}
	for _, f := range sample.TargetFields {
		rows = append(rows, profileRow(tables.TargetNamespace, tables.TargetTable, f, profiles[f], cfg))
	}
	return rows
}

func profileRow(namespace, table, field string, fp FieldProfile, cfg Config) ProfileRow {
	return ProfileRow{
		TableNamespace: namespace,
		TableName:      table,
		FieldName:      StripPrefix(field),
		Cardinality:    fp.Cardinality,
		Selectivity:    fp.Selectivity,
		MinValue:       fp.MinVal,
		MaxValue:       fp.MaxVal,
		MinLen:         fp.MinLen,
		MaxLen:         fp.MaxLen,
		MFVCount:       fp.MFVCount,
		NumRows:        fp.NumRows,
		IsUnique:       fp.IsUnique(cfg),
		IsSparse:       fp.IsSparse(cfg),
		IsConstant:     fp.IsConstant(cfg),
	}
}

func finalizeFieldAlignmentRows(rows []FieldAlignmentRow, tables Tables) []FieldAlignmentRow {
	for i := range rows {
		rows[i].ReferenceTableNamespace = tables.RefNamespace
		rows[i].ReferenceTableName = tables.RefTable
		rows[i].ReferenceFieldName = StripPrefix(rows[i].ReferenceFieldName)
		rows[i].TargetTableNamespace = tables.TargetNamespace
		rows[i].TargetTableName = tables.TargetTable
		rows[i].TargetFieldName = StripPrefix(rows[i].TargetFieldName)
	}
	return rows
}

func finalizeValueAlignmentRows(rows []ValueAlignmentRow, tables Tables) []ValueAlignmentRow {
	for i := range rows {
		rows[i].ReferenceTableNamespace = tables.RefNamespace
		rows[i].ReferenceTableName = tables.RefTable
		rows[i].ReferenceFieldName = StripPrefix(rows[i].ReferenceFieldName)
		rows[i].TargetTableNamespace = tables.TargetNamespace
		rows[i].TargetTableName = tables.TargetTable
		rows[i].TargetFieldName = StripPrefix(rows[i].TargetFieldName)
	}
	return rows
}
