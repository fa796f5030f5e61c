package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"churnmate/domain/dataset"
	"churnmate/internal"
	"churnmate/ports"
)

// DataReader parses uploaded CSV and XLSX files into the in-memory dataset
// model. The first row is always treated as headers.
type DataReader struct {
	log *internal.Logger
}

// NewDataReader creates a reader that handles both CSV and Excel uploads
func NewDataReader() ports.TabularReader {
	return &DataReader{log: internal.NewLogger("DataReader")}
}

// Read parses the uploaded file. The file type is taken from the filename
// extension; anything that is not .xlsx is read as CSV.
func (r *DataReader) Read(src io.Reader, filename string) (*dataset.Dataset, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	r.log.Debug("reading %s upload: %s", ext, filename)

	var records [][]string
	var err error
	switch ext {
	case ".xlsx", ".xlsm":
		records, err = readExcel(src)
	default:
		records, err = readCSV(src)
	}
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("file %s contains no header row", filename)
	}

	columns := trimAll(records[0])
	rows := make([][]string, 0, len(records)-1)
	for _, record := range records[1:] {
		rows = append(rows, normalizeRow(record, len(columns)))
	}

	ds := dataset.New(columns, rows)
	ds.OriginalFilename = filename
	ds.MarkReady()
	r.log.Info("parsed %s: %d columns, %d rows", filename, len(columns), len(rows))
	return ds, nil
}

func readCSV(src io.Reader) ([][]string, error) {
	reader := csv.NewReader(src)
	// Ragged rows are tolerated and normalized against the header.
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	return records, nil
}

func readExcel(src io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("excel file has no sheets")
	}

	// First sheet only, matching the CSV single-table model.
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	return rows, nil
}

// normalizeRow pads or truncates a record to the header width so every row
// snapshot preserves column order
func normalizeRow(record []string, width int) []string {
	row := make([]string, width)
	for i := 0; i < width && i < len(record); i++ {
		row[i] = record[i]
	}
	return row
}

func trimAll(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = strings.TrimSpace(c)
	}
	return out
}
