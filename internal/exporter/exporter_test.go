package exporter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talkincode/productcards/internal/domain"
)

var sample = []domain.Product{
	{ID: 1700000000000, Name: "Mug", Image: "", Price: 9.5, Info: ""},
	{ID: 1700000000001, Name: "Cup", Image: "http://img/cup.png", Price: 12, Info: "blue"},
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]string{"": FormatJSON, "CSV": FormatCSV, " xlsx ": FormatXLSX, "json": FormatJSON} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("pdf")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sample))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "id,name,image,price,info", lines[0])
	assert.Equal(t, "1700000000000,Mug,,9.5,", lines[1])
	assert.Equal(t, "1700000000001,Cup,http://img/cup.png,12,blue", lines[2])
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sample))
	assert.JSONEq(t, `[
		{"id":1700000000000,"name":"Mug","image":"","price":9.5,"info":""},
		{"id":1700000000001,"name":"Cup","image":"http://img/cup.png","price":12,"info":"blue"}
	]`, buf.String())
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(FormatXLSX, &buf, sample))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	assert.Equal(t, "Name", f.GetCellValue(sheetName, "B1"))
	assert.Equal(t, "Mug", f.GetCellValue(sheetName, "B2"))
	assert.Equal(t, "blue", f.GetCellValue(sheetName, "E3"))
}

func TestWrite_Unsupported(t *testing.T) {
	assert.ErrorIs(t, Write("pdf", &bytes.Buffer{}, sample), ErrUnsupportedFormat)
}
