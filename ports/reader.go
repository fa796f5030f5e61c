package ports

import (
	"io"

	"churnmate/domain/dataset"
)

// TabularReader parses an uploaded tabular file (first row = headers) into
// the in-memory dataset model. Implementations must not retain the reader.
type TabularReader interface {
	Read(r io.Reader, filename string) (*dataset.Dataset, error)
}
