package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/traditionalchinese"

	"github.com/ndewijer/Nexus-Wealth-Backend/internal/apperrors"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadFile parses an uploaded file into a Table, choosing the format from the
// file name's extension. The first row is the header row.
func ReadFile(name string, r io.Reader) (Table, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return ReadCSV(r)
	case ".xlsx", ".xlsm":
		return ReadXLSX(r)
	case ".xls":
		return Table{}, fmt.Errorf("%w: legacy .xls workbooks cannot be read, save the file as .xlsx or .csv", apperrors.ErrUnsupportedFormat)
	default:
		return Table{}, fmt.Errorf("%w: %s", apperrors.ErrUnsupportedFormat, filepath.Ext(name))
	}
}

// ReadCSV parses CSV data. Input that is not valid UTF-8 is decoded as Big5
// (code page 950), the encoding spreadsheet tools in Taiwan export by default.
func ReadCSV(r io.Reader) (Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Table{}, fmt.Errorf("failed to read csv: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	if !utf8.Valid(data) {
		data, err = traditionalchinese.Big5.NewDecoder().Bytes(data)
		if err != nil {
			return Table{}, fmt.Errorf("failed to decode csv as big5: %w", err)
		}
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("failed to parse csv: %w", err)
	}
	return toTable(records), nil
}

// ReadXLSX parses the first worksheet of a workbook.
func ReadXLSX(r io.Reader) (Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Table{}, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Table{}, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return Table{}, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return toTable(rows), nil
}

func toTable(records [][]string) Table {
	if len(records) == 0 {
		return Table{}
	}
	return Table{Headers: records[0], Rows: records[1:]}
}
