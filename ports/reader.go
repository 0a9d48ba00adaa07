package ports

import (
	"context"

	"edustat/domain/dataset"
)

// DatasetReader loads a tabular file into a Dataset. Failures are I/O errors,
// never partial datasets.
type DatasetReader interface {
	Read(ctx context.Context, path string) (*dataset.Dataset, error)
}
