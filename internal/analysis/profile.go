package analysis

import (
	"context"
	"sort"
	"strconv"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"churnmate/domain/dataset"
)

// minProfileSamples is the minimum number of parseable values a column
// needs before a numeric profile is worth reporting
const minProfileSamples = 2

// ProfileDataset builds per-column numeric profiles and pairwise Pearson
// correlations between numeric columns. Non-numeric columns are skipped.
// Columns are profiled concurrently; output order is deterministic
// (dataset column order).
func ProfileDataset(ctx context.Context, ds *dataset.Dataset) (dataset.Profile, error) {
	numeric := extractNumericColumns(ds)

	profiles := make([]*dataset.ColumnProfile, len(numeric))
	g, _ := errgroup.WithContext(ctx)

	for i, col := range numeric {
		g.Go(func() error {
			p, err := profileColumn(col.name, col.values, col.missing)
			if err != nil {
				return err
			}
			profiles[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return dataset.Profile{}, err
	}

	profile := dataset.Profile{}
	for _, p := range profiles {
		if p != nil {
			profile.Columns = append(profile.Columns, *p)
		}
	}
	profile.Correlations = correlate(numeric)
	return profile, nil
}

type numericColumn struct {
	name    string
	values  []float64 // parseable cells only
	rows    []int     // row index of each value
	missing int
}

// extractNumericColumns keeps columns where every non-missing cell parses
// as a number. Mixed columns are treated as categorical and skipped.
func extractNumericColumns(ds *dataset.Dataset) []numericColumn {
	var cols []numericColumn
	for _, name := range ds.Columns {
		cells, _ := ds.Column(name)
		col := numericColumn{name: name}
		numeric := true
		for row, cell := range cells {
			if dataset.IsMissing(cell) {
				col.missing++
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				numeric = false
				break
			}
			col.values = append(col.values, v)
			col.rows = append(col.rows, row)
		}
		if numeric && len(col.values) >= minProfileSamples {
			cols = append(cols, col)
		}
	}
	return cols
}

func profileColumn(name string, values []float64, missing int) (*dataset.ColumnProfile, error) {
	mean, err := stats.Mean(values)
	if err != nil {
		return nil, err
	}
	stdDev, err := stats.StandardDeviation(values)
	if err != nil {
		return nil, err
	}
	min, err := stats.Min(values)
	if err != nil {
		return nil, err
	}
	max, err := stats.Max(values)
	if err != nil {
		return nil, err
	}
	median, err := stats.Median(values)
	if err != nil {
		return nil, err
	}
	q25, err := stats.Percentile(values, 25)
	if err != nil {
		return nil, err
	}
	q75, err := stats.Percentile(values, 75)
	if err != nil {
		return nil, err
	}

	return &dataset.ColumnProfile{
		Name:         name,
		Count:        len(values),
		MissingCount: missing,
		Mean:         mean,
		StdDev:       stdDev,
		Min:          min,
		Max:          max,
		Median:       median,
		Q25:          q25,
		Q75:          q75,
	}, nil
}

// correlate computes Pearson correlation for each numeric column pair over
// the rows where both columns have a value
func correlate(cols []numericColumn) []dataset.Correlation {
	var out []dataset.Correlation
	for i := 0; i < len(cols); i++ {
		for j := i + 1; j < len(cols); j++ {
			xs, ys := alignPair(cols[i], cols[j])
			if len(xs) < minProfileSamples {
				continue
			}
			out = append(out, dataset.Correlation{
				ColumnA:     cols[i].name,
				ColumnB:     cols[j].name,
				Coefficient: stat.Correlation(xs, ys, nil),
			})
		}
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].ColumnA != out[b].ColumnA {
			return out[a].ColumnA < out[b].ColumnA
		}
		return out[a].ColumnB < out[b].ColumnB
	})
	return out
}

func alignPair(a, b numericColumn) ([]float64, []float64) {
	byRow := make(map[int]float64, len(b.values))
	for k, row := range b.rows {
		byRow[row] = b.values[k]
	}
	var xs, ys []float64
	for k, row := range a.rows {
		if v, ok := byRow[row]; ok {
			xs = append(xs, a.values[k])
			ys = append(ys, v)
		}
	}
	return xs, ys
}
