package analysis

import (
	"churnmate/domain/dataset"
)

// summarySampleSize is how many leading rows the summary carries for preview
const summarySampleSize = 3

// Summarize computes descriptive statistics over a dataset. It never fails
// for a well-formed table and has no side effects: row count, original
// column order, total missing-cell count, and the first rows as a preview.
func Summarize(ds *dataset.Dataset) dataset.Summary {
	columns := make([]string, len(ds.Columns))
	copy(columns, ds.Columns)

	missing := 0
	for _, row := range ds.Rows {
		for i := range ds.Columns {
			if i >= len(row) || dataset.IsMissing(row[i]) {
				missing++
			}
		}
	}

	sampleLen := summarySampleSize
	if len(ds.Rows) < sampleLen {
		sampleLen = len(ds.Rows)
	}
	samples := make([][]string, sampleLen)
	for i := 0; i < sampleLen; i++ {
		row := make([]string, len(ds.Rows[i]))
		copy(row, ds.Rows[i])
		samples[i] = row
	}

	return dataset.Summary{
		RowCount:          ds.RowCount(),
		ColumnNames:       columns,
		MissingValueCount: missing,
		SampleRows:        samples,
	}
}
