package excel

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"edustat/domain/core"
	apperrors "edustat/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRead_CSV(t *testing.T) {
	path := writeFile(t, "scores.csv", "class,score\nA,1\nA,2\nB,\nB,6\n")

	ds, err := NewDataReader(nil).Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []string{"class", "score"}, ds.Names())
	assert.Equal(t, 4, ds.Len())

	score, err := ds.Column("score")
	require.NoError(t, err)
	assert.True(t, score.IsNumeric())
	assert.True(t, score.Values[2].Missing())
}

func TestRead_Excel(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"class", "score"},
		{"A", 1.5},
		{"B", 3},
		{"A", 2},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	path := filepath.Join(t.TempDir(), "scores.xlsx")
	require.NoError(t, f.SaveAs(path))

	ds, err := NewDataReader(nil).Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 3, ds.Len())

	score, err := ds.Column("score")
	require.NoError(t, err)
	values, err := score.Floats()
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, 3, 2}, values)
}

func TestRead_JSON(t *testing.T) {
	path := writeFile(t, "scores.json", `[
		{"name": "class", "values": ["A", "B", "A"]},
		{"name": "score", "values": [1, 2.5, null]}
	]`)

	ds, err := NewDataReader(nil).Read(context.Background(), path)
	require.NoError(t, err)
	score, err := ds.Column("score")
	require.NoError(t, err)
	assert.Equal(t, 2.5, score.Values[1].Number)
	assert.True(t, score.Values[2].Missing())
}

func TestRead_Errors(t *testing.T) {
	r := NewDataReader(nil)

	_, err := r.Read(context.Background(), filepath.Join(t.TempDir(), "missing.csv"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Equal(t, apperrors.CodeNotFound, apperrors.GetCode(err))

	_, err = r.Read(context.Background(), "scores.parquet")
	assert.True(t, errors.Is(err, core.ErrMalformedInput))

	_, err = r.Read(context.Background(), writeFile(t, "header.csv", "a,b\n"))
	assert.True(t, errors.Is(err, core.ErrMalformedInput))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.Read(ctx, "scores.csv")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReadCSV_RaggedRows(t *testing.T) {
	ds, err := NewDataReader(nil).ReadCSV(strings.NewReader("a,b,c\n1,2\n3,4,5\n"))
	require.NoError(t, err)
	c, err := ds.Column("c")
	require.NoError(t, err)
	assert.True(t, c.Values[0].Missing())

	_, err = NewDataReader(nil).ReadCSV(strings.NewReader("a\n1,2\n"))
	assert.True(t, errors.Is(err, core.ErrMalformedInput))
}

func TestReadUpload(t *testing.T) {
	r := NewDataReader(nil)

	ds, err := r.ReadUpload("Scores.CSV", strings.NewReader("x,y\n1,2\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, ds.Names())

	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "x"))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", 4))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	ds, err = r.ReadUpload("scores.xlsx", buf)
	require.NoError(t, err)
	assert.Equal(t, 1, ds.Len())

	_, err = r.ReadUpload("scores.xlsx", strings.NewReader("not a workbook"))
	assert.True(t, errors.Is(err, core.ErrMalformedInput))
}
