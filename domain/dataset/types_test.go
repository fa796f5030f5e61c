package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDatasetLifecycle(t *testing.T) {
	ds := New([]string{"A"}, [][]string{{"1"}})

	assert.False(t, ds.ID.String() == "")
	assert.Equal(t, StatusProcessing, ds.Status)
	assert.False(t, ds.IsReady())

	ds.MarkReady()
	assert.True(t, ds.IsReady())
	assert.Empty(t, ds.ErrorMessage)

	ds.MarkFailed("profiling broke")
	assert.False(t, ds.IsReady())
	assert.Equal(t, StatusFailed, ds.Status)
	assert.Equal(t, "profiling broke", ds.ErrorMessage)
}

func TestColumnAccess(t *testing.T) {
	ds := New(
		[]string{"CustomerID", "Churn"},
		[][]string{
			{"C001", "No"},
			{"C002", "Yes"},
			{"C003"}, // short row
		},
	)

	assert.Equal(t, 3, ds.RowCount())
	assert.Equal(t, 1, ds.ColumnIndex("Churn"))
	assert.Equal(t, -1, ds.ColumnIndex("Missing"))
	assert.True(t, ds.HasColumn("CustomerID"))
	assert.False(t, ds.HasColumn("customerid"))

	churn, ok := ds.Column("Churn")
	require.True(t, ok)
	assert.Equal(t, []string{"No", "Yes", ""}, churn)

	_, ok = ds.Column("Missing")
	assert.False(t, ok)
}

func TestIsMissing(t *testing.T) {
	assert.True(t, IsMissing(""))
	assert.True(t, IsMissing("   "))
	assert.True(t, IsMissing("\t"))
	assert.False(t, IsMissing("0"))
	assert.False(t, IsMissing("No"))
}

func TestGetDisplayName(t *testing.T) {
	ds := New([]string{"A"}, nil)
	assert.Equal(t, "untitled dataset", ds.GetDisplayName())

	ds.OriginalFilename = "customers.csv"
	assert.Equal(t, "customers.csv", ds.GetDisplayName())
}
