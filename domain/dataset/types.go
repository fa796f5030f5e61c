package dataset

import (
	"strings"

	"churnmate/domain/core"
)

// DatasetStatus represents the processing state of a dataset
type DatasetStatus string

const (
	StatusProcessing DatasetStatus = "processing"
	StatusReady      DatasetStatus = "ready"
	StatusFailed     DatasetStatus = "failed"
)

// Dataset is an in-memory table of rows by named columns. Cells are kept as
// raw text; numeric coercion is the consumer's job. A dataset is read-only
// after load; a re-upload replaces it wholesale.
type Dataset struct {
	ID      core.DatasetID `json:"id"`
	Columns []string       `json:"columns"`
	Rows    [][]string     `json:"rows"`

	// File information
	OriginalFilename string `json:"original_filename"`
	FileSize         int64  `json:"file_size"`
	Source           string `json:"source"` // "upload", "sample"

	Status       DatasetStatus `json:"status"`
	ErrorMessage string        `json:"error_message,omitempty"`

	UploadedAt core.Timestamp `json:"uploaded_at"`
}

// New creates a dataset from parsed header and rows. The dataset starts in
// the processing state; the loader marks it ready once parsing completes.
func New(columns []string, rows [][]string) *Dataset {
	return &Dataset{
		ID:         core.DatasetID(core.NewID()),
		Columns:    columns,
		Rows:       rows,
		Source:     "upload",
		Status:     StatusProcessing,
		UploadedAt: core.Now(),
	}
}

// MarkReady records that the dataset parsed cleanly and is ready for analysis
func (d *Dataset) MarkReady() {
	d.Status = StatusReady
	d.ErrorMessage = ""
}

// MarkFailed records an analysis failure without discarding the dataset
func (d *Dataset) MarkFailed(message string) {
	d.Status = StatusFailed
	d.ErrorMessage = message
}

// RowCount returns the number of data rows (the header is not a row)
func (d *Dataset) RowCount() int {
	return len(d.Rows)
}

// ColumnIndex returns the position of the named column, or -1 when absent
func (d *Dataset) ColumnIndex(name string) int {
	for i, col := range d.Columns {
		if col == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the named column exists
func (d *Dataset) HasColumn(name string) bool {
	return d.ColumnIndex(name) >= 0
}

// Column returns all cells of the named column in row order.
// Rows shorter than the header yield empty cells.
func (d *Dataset) Column(name string) ([]string, bool) {
	idx := d.ColumnIndex(name)
	if idx < 0 {
		return nil, false
	}
	values := make([]string, len(d.Rows))
	for i, row := range d.Rows {
		if idx < len(row) {
			values[i] = row[idx]
		}
	}
	return values, true
}

// IsMissing reports whether a cell value counts as missing
func IsMissing(cell string) bool {
	return strings.TrimSpace(cell) == ""
}

// IsReady returns true if the dataset is ready for analysis
func (d *Dataset) IsReady() bool {
	return d.Status == StatusReady
}

// GetDisplayName returns the original filename or a placeholder
func (d *Dataset) GetDisplayName() string {
	if d.OriginalFilename != "" {
		return d.OriginalFilename
	}
	return "untitled dataset"
}

// Summary holds descriptive statistics over a dataset
type Summary struct {
	RowCount          int        `json:"row_count"`
	ColumnNames       []string   `json:"column_names"`
	MissingValueCount int        `json:"missing_value_count"`
	SampleRows        [][]string `json:"sample_rows"`
}

// ChurnMetrics is the derived churn/retention pair, both in percent.
// RetentionRate is always 100 - ChurnRate.
type ChurnMetrics struct {
	ChurnRate     float64 `json:"churn_rate"`
	RetentionRate float64 `json:"retention_rate"`
}

// ColumnProfile holds summary statistics for a single numeric column
type ColumnProfile struct {
	Name         string  `json:"name"`
	Count        int     `json:"count"`
	MissingCount int     `json:"missing_count"`
	Mean         float64 `json:"mean"`
	StdDev       float64 `json:"std_dev"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	Median       float64 `json:"median"`
	Q25          float64 `json:"q25"`
	Q75          float64 `json:"q75"`
}

// Correlation is a Pearson correlation between two numeric columns
type Correlation struct {
	ColumnA     string  `json:"column_a"`
	ColumnB     string  `json:"column_b"`
	Coefficient float64 `json:"coefficient"`
}

// Profile aggregates numeric column profiles and their pairwise correlations
type Profile struct {
	Columns      []ColumnProfile `json:"columns"`
	Correlations []Correlation   `json:"correlations"`
}
