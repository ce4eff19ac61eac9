// Package exporter writes the product collection out as CSV, XLSX or JSON.
package exporter

import (
	"fmt"
	"io"
	"strings"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
	"github.com/talkincode/productcards/internal/catalog"
	"github.com/talkincode/productcards/internal/domain"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatJSON = "json"
)

const sheetName = "Sheet1"

var xlsxHeader = []string{"ID", "Name", "Image", "Price", "Info"}

// ErrUnsupportedFormat is returned for an unknown export format
var ErrUnsupportedFormat = errors.New("exporter: unsupported format")

// ParseFormat normalizes a user supplied format name
func ParseFormat(name string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(name)); f {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatCSV, FormatXLSX:
		return f, nil
	default:
		return "", errors.Wrapf(ErrUnsupportedFormat, "%q", name)
	}
}

// ContentType returns the MIME type of an export format
func ContentType(format string) string {
	switch format {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/json; charset=utf-8"
	}
}

// Write dispatches on format
func Write(format string, w io.Writer, products []domain.Product) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, products)
	case FormatXLSX:
		return WriteXLSX(w, products)
	case FormatJSON:
		return WriteJSON(w, products)
	default:
		return errors.Wrapf(ErrUnsupportedFormat, "%q", format)
	}
}

// WriteCSV writes a header row followed by one row per product
func WriteCSV(w io.Writer, products []domain.Product) error {
	if products == nil {
		products = []domain.Product{}
	}
	return errors.Wrap(gocsv.Marshal(products, w), "export csv")
}

// WriteXLSX writes a single-sheet workbook
func WriteXLSX(w io.Writer, products []domain.Product) error {
	f := excelize.NewFile()
	for i, title := range xlsxHeader {
		f.SetCellValue(sheetName, cellName(i, 1), title)
	}
	for r, p := range products {
		row := r + 2
		f.SetCellValue(sheetName, cellName(0, row), p.ID)
		f.SetCellValue(sheetName, cellName(1, row), p.Name)
		f.SetCellValue(sheetName, cellName(2, row), p.Image)
		f.SetCellValue(sheetName, cellName(3, row), p.Price)
		f.SetCellValue(sheetName, cellName(4, row), p.Info)
	}
	return errors.Wrap(f.Write(w), "export xlsx")
}

// WriteJSON writes the collection in its persisted layout
func WriteJSON(w io.Writer, products []domain.Product) error {
	data, err := catalog.EncodeProducts(products)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return errors.Wrap(err, "export json")
}

// cellName maps a zero-based column and one-based row to an A1 reference.
// Only the five product columns are ever addressed.
func cellName(col, row int) string {
	return fmt.Sprintf("%c%d", 'A'+col, row)
}
