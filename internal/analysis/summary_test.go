package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"churnmate/domain/dataset"
)

func customerDataset() *dataset.Dataset {
	return dataset.New(
		[]string{"CustomerID", "Age", "Churn"},
		[][]string{
			{"C001", "34", "No"},
			{"C002", "", "Yes"},
			{"C003", "27", "No"},
			{"C004", "45", "No"},
			{"C005", "51", "Yes"},
		},
	)
}

func TestSummarize(t *testing.T) {
	ds := customerDataset()

	summary := Summarize(ds)

	assert.Equal(t, 5, summary.RowCount)
	assert.Equal(t, []string{"CustomerID", "Age", "Churn"}, summary.ColumnNames)
	assert.Equal(t, 1, summary.MissingValueCount)
	require.Len(t, summary.SampleRows, 3)
	assert.Equal(t, []string{"C001", "34", "No"}, summary.SampleRows[0])
	assert.Equal(t, []string{"C002", "", "Yes"}, summary.SampleRows[1])
}

func TestSummarizeSampleShorterThanThree(t *testing.T) {
	ds := dataset.New([]string{"A"}, [][]string{{"1"}, {"2"}})

	summary := Summarize(ds)

	assert.Equal(t, 2, summary.RowCount)
	assert.Len(t, summary.SampleRows, 2)
}

func TestSummarizeEmptyDataset(t *testing.T) {
	ds := dataset.New([]string{"A", "B"}, nil)

	summary := Summarize(ds)

	assert.Equal(t, 0, summary.RowCount)
	assert.Equal(t, 0, summary.MissingValueCount)
	assert.Empty(t, summary.SampleRows)
	assert.Equal(t, []string{"A", "B"}, summary.ColumnNames)
}

func TestSummarizeWorksWithoutOutcomeColumn(t *testing.T) {
	ds := dataset.New([]string{"CustomerID", "Age"}, [][]string{{"C001", "34"}})

	summary := Summarize(ds)
	assert.Equal(t, 1, summary.RowCount)

	_, err := ComputeChurn(ds, "Churn", nil)
	assert.Error(t, err)
}

func TestSummarizeCountsWhitespaceAsMissing(t *testing.T) {
	ds := dataset.New([]string{"A", "B"}, [][]string{{" ", "x"}, {"", "\t"}})

	summary := Summarize(ds)
	assert.Equal(t, 3, summary.MissingValueCount)
}

func TestSummarizeIdempotent(t *testing.T) {
	ds := customerDataset()

	first := Summarize(ds)
	second := Summarize(ds)

	assert.Equal(t, first, second)
}

func TestSummarizeDoesNotAliasDataset(t *testing.T) {
	ds := customerDataset()

	summary := Summarize(ds)
	summary.SampleRows[0][0] = "tampered"
	summary.ColumnNames[0] = "tampered"

	assert.Equal(t, "C001", ds.Rows[0][0])
	assert.Equal(t, "CustomerID", ds.Columns[0])
}
