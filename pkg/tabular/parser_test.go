package tabular

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestParse_CSV(t *testing.T) {
	payload := []byte("First Name,Last Name\nJane,Doe\nJohn,Smith\n")

	table, err := Parse("contacts.csv", payload)
	require.NoError(t, err)
	require.Empty(t, table.Errors)
	require.Equal(t, []string{"First Name", "Last Name"}, table.Headers)
	require.Len(t, table.Rows, 2)

	require.Equal(t, 2, table.Rows[0].Position)
	require.Equal(t, 3, table.Rows[1].Position)
	require.Equal(t, "Jane", table.Rows[0].Get("First Name"))
	require.Equal(t, "Smith", table.Rows[1].Get("Last Name"))
}

func TestParse_CSVStripsByteOrderMark(t *testing.T) {
	payload := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Name\nAcme\n")...)

	table, err := Parse("companies.csv", payload)
	require.NoError(t, err)
	require.Equal(t, []string{"Name"}, table.Headers)
	require.Equal(t, "Acme", table.Rows[0].Get("Name"))
}

func TestParse_CSVRaggedRows(t *testing.T) {
	payload := []byte("A,B,C\n1,2\n4,5,6,7\n")

	table, err := Parse("data.csv", payload)
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
	require.Equal(t, "", table.Rows[0].Get("C"))
	require.Equal(t, "6", table.Rows[1].Get("C"))
}

func TestParse_EmptyFile(t *testing.T) {
	_, err := Parse("contacts.csv", nil)
	require.ErrorIs(t, err, ErrEmptyFile)
}

func TestParse_UnsupportedFormat(t *testing.T) {
	_, err := Parse("photo.png", []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A})
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestParse_ExtensionlessCSVIsSniffed(t *testing.T) {
	table, err := Parse("upload", []byte("Name,City\nAcme,Oslo\n"))
	require.NoError(t, err)
	require.Equal(t, []string{"Name", "City"}, table.Headers)
}

func TestParse_DuplicateAndEmptyHeadersAreParseErrors(t *testing.T) {
	payload := []byte("Name,,Name\nAcme,x,y\n")

	table, err := Parse("companies.csv", payload)
	require.NoError(t, err)
	require.Equal(t, []string{"Name"}, table.Headers)
	require.Len(t, table.Errors, 2)
	require.Contains(t, table.Errors[0], "empty header")
	require.Contains(t, table.Errors[1], `duplicate column "Name"`)
}

func TestParse_XLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]string{"Name", "SKU"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]string{"Widget", "W-1"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]string{"Gadget", "G-1"}))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	table, err := Parse("products.xlsx", buf.Bytes())
	require.NoError(t, err)
	require.Equal(t, []string{"Name", "SKU"}, table.Headers)
	require.Len(t, table.Rows, 2)
	require.Equal(t, 2, table.Rows[0].Position)
	require.Equal(t, "Widget", table.Rows[0].Get("Name"))
	require.Equal(t, "G-1", table.Rows[1].Get("SKU"))
}

func TestRowGet_TrimsValues(t *testing.T) {
	row := Row{Position: 2, Values: map[string]string{"Name": "  Acme  "}}
	require.Equal(t, "Acme", row.Get("Name"))
	require.Equal(t, "", row.Get("Missing"))
}
