package spreadsheet

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func TestParseHeadersAndCells(t *testing.T) {
	content := buildWorkbook(t, [][]interface{}{
		{"Matric Number", "Course Code", "Score"},
		{"ND/CS/001", "COS101", 72},
		{"ND/CS/002", "COS101", 55},
	})

	rows, err := Parse(content)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "ND/CS/001", rows[0].Get("Matric Number"))
	assert.Equal(t, "COS101", rows[0].Get("course code")) // header lookup is case-insensitive
	assert.Equal(t, "72", rows[0].Get("Score"))
	assert.Equal(t, "55", rows[1].Get("score"))
}

func TestParseShortRowsPadEmpty(t *testing.T) {
	content := buildWorkbook(t, [][]interface{}{
		{"matric", "score", "grade"},
		{"ND/CS/003", 40}, // grade column absent
	})

	rows, err := Parse(content)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0].Get("grade"))
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse([]byte("not a workbook"))
	assert.Error(t, err)
}
