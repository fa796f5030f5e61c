package analysis

import (
	"strings"

	"github.com/montanaflynn/stats"

	"churnmate/domain/dataset"
	"churnmate/internal/errors"
)

// OutcomeMapping declares how outcome-column vocabulary maps onto 0/1.
// The mapping is injected configuration, never inferred from cell types.
type OutcomeMapping map[string]float64

// DefaultOutcomeMapping covers the Yes/No vocabulary and plain 0/1 encodings
func DefaultOutcomeMapping() OutcomeMapping {
	return OutcomeMapping{
		"yes": 1,
		"no":  0,
		"1":   1,
		"0":   0,
	}
}

// lookup matches case-insensitively after trimming surrounding whitespace
func (m OutcomeMapping) lookup(cell string) (float64, bool) {
	v, ok := m[strings.ToLower(strings.TrimSpace(cell))]
	return v, ok
}

// ComputeChurn computes churn and retention rates from the designated
// outcome column.
//
// Failure modes are all typed and recoverable:
//   - MissingColumn when the column is absent
//   - EmptyDataset when the table has zero rows (the mean is undefined)
//   - InvalidOutcomeValue when a cell falls outside the declared mapping;
//     values are never silently coerced to NaN
func ComputeChurn(ds *dataset.Dataset, column string, mapping OutcomeMapping) (dataset.ChurnMetrics, error) {
	if mapping == nil {
		mapping = DefaultOutcomeMapping()
	}

	values, ok := ds.Column(column)
	if !ok {
		return dataset.ChurnMetrics{}, errors.MissingColumn(column)
	}
	if len(values) == 0 {
		return dataset.ChurnMetrics{}, errors.EmptyDataset()
	}

	mapped := make([]float64, len(values))
	for i, cell := range values {
		v, ok := mapping.lookup(cell)
		if !ok {
			return dataset.ChurnMetrics{}, errors.InvalidOutcomeValue(column, cell, i)
		}
		mapped[i] = v
	}

	mean, err := stats.Mean(mapped)
	if err != nil {
		return dataset.ChurnMetrics{}, errors.Wrap(err, "failed to compute churn mean")
	}

	churnRate := mean * 100
	return dataset.ChurnMetrics{
		ChurnRate:     churnRate,
		RetentionRate: 100 - churnRate,
	}, nil
}
