package tabular

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/xuri/excelize/v2"
)

var (
	// ErrUnsupportedFormat is returned when an uploaded file is not supported.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrEmptyFile is returned for zero-length uploads.
	ErrEmptyFile = errors.New("file is empty")

	byteOrderMark = []byte{0xEF, 0xBB, 0xBF}
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Row is one source record: raw string values keyed by source column
// name, plus the 1-based position in the original file. The header row
// occupies position 1, so the first data row reports position 2.
type Row struct {
	Position int
	Values   map[string]string
}

// Get returns the raw value for a source column, trimmed. Absent
// columns yield the empty string.
func (r Row) Get(column string) string {
	return strings.TrimSpace(r.Values[column])
}

// Table is the parsed form of an uploaded tabular file.
type Table struct {
	Headers []string
	Rows    []Row
	// Errors lists structural problems found while parsing. A non-empty
	// list means the file must not be imported.
	Errors []string
}

// Parse turns an uploaded file into a header list and an ordered
// sequence of rows. The format is picked by file extension, with
// content sniffing as a fallback for extensionless uploads.
func Parse(fileName string, payload []byte) (Table, error) {
	if len(payload) == 0 {
		return Table{}, ErrEmptyFile
	}

	switch detectFormat(fileName, payload) {
	case "csv":
		return parseCSV(payload)
	case "xlsx":
		return parseXLSX(payload)
	default:
		return Table{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(fileName))
	}
}

func detectFormat(fileName string, payload []byte) string {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".csv":
		return "csv"
	case ".xlsx":
		return "xlsx"
	}

	mime := mimetype.Detect(payload)
	switch {
	case mime.Is(xlsxMIME):
		return "xlsx"
	case mime.Is("text/csv"), mime.Is("text/plain"):
		return "csv"
	}
	return ""
}

func parseCSV(payload []byte) (Table, error) {
	reader := bufio.NewReader(bytes.NewReader(payload))
	if prefix, err := reader.Peek(len(byteOrderMark)); err == nil && bytes.Equal(prefix, byteOrderMark) {
		_, _ = reader.Discard(len(byteOrderMark))
	}

	csvReader := csv.NewReader(reader)
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("failed to read csv: %w", err)
	}

	return buildTable(records)
}

func parseXLSX(payload []byte) (Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(payload))
	if err != nil {
		return Table{}, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Table{}, errors.New("excel file has no sheets")
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return Table{}, fmt.Errorf("failed to read rows from xlsx: %w", err)
	}

	return buildTable(records)
}

func buildTable(records [][]string) (Table, error) {
	if len(records) == 0 {
		return Table{}, errors.New("no rows found in file")
	}

	headers := make([]string, 0, len(records[0]))
	seen := make(map[string]bool, len(records[0]))
	var parseErrors []string
	for i, raw := range records[0] {
		header := strings.TrimSpace(raw)
		if header == "" {
			parseErrors = append(parseErrors, fmt.Sprintf("column %d has an empty header", i+1))
			continue
		}
		if seen[header] {
			parseErrors = append(parseErrors, fmt.Sprintf("duplicate column %q", header))
			continue
		}
		seen[header] = true
		headers = append(headers, header)
	}
	if len(headers) == 0 {
		return Table{}, errors.New("no header row detected")
	}

	rows := make([]Row, 0, len(records)-1)
	for rowIdx, record := range records[1:] {
		values := make(map[string]string, len(headers))
		for colIdx, header := range records[0] {
			header = strings.TrimSpace(header)
			if header == "" || colIdx >= len(record) {
				continue
			}
			values[header] = record[colIdx]
		}
		rows = append(rows, Row{
			// header occupies position 1
			Position: rowIdx + 2,
			Values:   values,
		})
	}

	return Table{Headers: headers, Rows: rows, Errors: parseErrors}, nil
}
