package excel

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"edustat/domain/core"
	"edustat/domain/dataset"
	"edustat/internal"
	"edustat/internal/errors"

	"github.com/xuri/excelize/v2"
)

// Supported file types
const (
	FileTypeCSV  = "csv"
	FileTypeXLSX = "xlsx"
	FileTypeJSON = "json"
)

// DataReader loads CSV, Excel and JSON column files into a dataset
type DataReader struct {
	logger *internal.Logger
}

// NewDataReader creates a new data reader that handles CSV, Excel and JSON files
func NewDataReader(logger *internal.Logger) *DataReader {
	if logger == nil {
		logger = internal.NewNopLogger()
	}
	return &DataReader{logger: logger}
}

// FileType maps a path to one of the supported file types by extension
func FileType(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv", ".txt":
		return FileTypeCSV, nil
	case ".xlsx", ".xlsm":
		return FileTypeXLSX, nil
	case ".json":
		return FileTypeJSON, nil
	default:
		return "", fmt.Errorf("%w: unsupported file type %q", core.ErrMalformedInput, ext)
	}
}

// Read loads the file at path. The first row of a CSV or Excel file holds the
// column names; a JSON file holds an array of {"name", "values"} columns.
func (r *DataReader) Read(ctx context.Context, path string) (*dataset.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fileType, err := FileType(path)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err != nil {
		return nil, errors.NotFound(strings.ToUpper(fileType)+" file "+path, err)
	}

	start := time.Now()
	var ds *dataset.Dataset
	switch fileType {
	case FileTypeCSV:
		ds, err = r.readCSVFile(path)
	case FileTypeXLSX:
		ds, err = r.readExcelFile(path)
	case FileTypeJSON:
		ds, err = r.readJSONFile(path)
	}
	if err != nil {
		return nil, err
	}

	r.logger.Debug("[DataReader] %s file %s loaded in %.2fms (%d columns, %d rows)",
		strings.ToUpper(fileType), path, float64(time.Since(start).Nanoseconds())/1e6, len(ds.Names()), ds.Len())
	return ds, nil
}

// ReadUpload parses an in-memory file, choosing the format by file name
func (r *DataReader) ReadUpload(filename string, in io.Reader) (*dataset.Dataset, error) {
	fileType, err := FileType(filename)
	if err != nil {
		return nil, err
	}
	switch fileType {
	case FileTypeCSV:
		return r.ReadCSV(in)
	case FileTypeXLSX:
		return r.ReadExcel(in)
	default:
		return r.ReadJSON(in)
	}
}

// readExcelFile reads the first sheet of a workbook
func (r *DataReader) readExcelFile(path string) (*dataset.Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open Excel file %s", path)
	}
	defer f.Close()
	return r.firstSheet(f)
}

// ReadExcel reads the first sheet of a workbook stream
func (r *DataReader) ReadExcel(in io.Reader) (*dataset.Dataset, error) {
	f, err := excelize.OpenReader(in)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open Excel workbook: %v", core.ErrMalformedInput, err)
	}
	defer f.Close()
	return r.firstSheet(f)
}

func (r *DataReader) firstSheet(f *excelize.File) (*dataset.Dataset, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", core.ErrMalformedInput)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return r.processRows(rows)
}

func (r *DataReader) readCSVFile(path string) (*dataset.Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open CSV file %s", path)
	}
	defer file.Close()
	return r.ReadCSV(file)
}

// ReadCSV parses comma-separated rows with a header line
func (r *DataReader) ReadCSV(in io.Reader) (*dataset.Dataset, error) {
	reader := csv.NewReader(in)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read CSV: %v", core.ErrMalformedInput, err)
	}
	return r.processRows(rows)
}

func (r *DataReader) readJSONFile(path string) (*dataset.Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open JSON file %s", path)
	}
	defer file.Close()
	return r.ReadJSON(file)
}

// ReadJSON decodes an ordered array of columns
func (r *DataReader) ReadJSON(in io.Reader) (*dataset.Dataset, error) {
	dec := json.NewDecoder(in)
	dec.UseNumber()
	var columns []dataset.ColumnData
	if err := dec.Decode(&columns); err != nil {
		return nil, fmt.Errorf("%w: failed to decode JSON columns: %v", core.ErrMalformedInput, err)
	}
	return dataset.FromColumns(columns)
}

// processRows turns a header row plus data rows into a dataset
func (r *DataReader) processRows(rows [][]string) (*dataset.Dataset, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: file must have at least a header row and one data row", core.ErrMalformedInput)
	}
	return dataset.FromRows(rows[0], rows[1:])
}
