package report

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"edustat/domain/core"
	"edustat/domain/stats"
)

// IndependentTTestTemplate is the file name of the independent t-test layout
const IndependentTTestTemplate = "indttest.html"

// FileTemplateSource loads report layouts from a directory
type FileTemplateSource struct {
	dir string
}

// NewFileTemplateSource reads templates from dir
func NewFileTemplateSource(dir string) *FileTemplateSource {
	return &FileTemplateSource{dir: dir}
}

// Template returns the layout for a test kind. Only the independent t-test
// has one.
func (s *FileTemplateSource) Template(name stats.TestName) (string, error) {
	if name != stats.TestIndependentT {
		return "", core.NewUnsupportedResultError(string(name))
	}

	path := filepath.Join(s.dir, IndependentTTestTemplate)
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", core.NewMissingResourceError("report template", path, nil)
		}
		return "", fmt.Errorf("failed to read report template %s: %w", path, err)
	}
	return string(b), nil
}

// UUIDGenerator draws a random v4 uuid rendered as 32 hex characters
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return core.NewID().String()
}
