package feed

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultColumns() Columns {
	return Config{
		KeyColumn:   "Код",
		NameColumn:  "Модель",
		PriceColumn: "Цена",
		StockColumn: "Количество",
	}.Columns()
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatCSV, DetectFormat("feeds/stock.csv"))
	assert.Equal(t, FormatJSON, DetectFormat("feeds/stock.JSON"))
	assert.Equal(t, FormatYAML, DetectFormat("https://example.com/stock.yml?token=1"))
	assert.Equal(t, FormatCSV, DetectFormat("stock"))
}

func TestDecode_CSV(t *testing.T) {
	data := "\xef\xbb\xbfКод;Модель;Цена;Количество\n" +
		"GA-2100;G-Shock GA-2100;5'990.00 руб.;>10\n" +
		";;;\n" +
		"AE-1200;Casio AE-1200;2990;1\n"

	rows, err := Decode(strings.NewReader(data), DecodeOptions{Format: FormatCSV, Columns: defaultColumns(), Delimiter: ';'})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "GA-2100", rows[0].Key)
	assert.Equal(t, "G-Shock GA-2100", rows[0].Name)
	assert.Equal(t, "5'990.00 руб.", rows[0].Price)
	assert.Equal(t, ">10", rows[0].Stock)
	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, 4, rows[1].Line)
}

func TestDecode_CSVSkipRows(t *testing.T) {
	data := "Остатки на складе\nДата: 01.01.2024\nКод,Модель,Цена,Количество\nA1,Watch,100,5\n"

	rows, err := Decode(strings.NewReader(data), DecodeOptions{Columns: defaultColumns(), SkipRows: 2})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "A1", rows[0].Key)
}

func TestDecode_CSVMissingColumn(t *testing.T) {
	_, err := Decode(strings.NewReader("Код,Модель,Цена\nA,B,1\n"), DecodeOptions{Columns: defaultColumns()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Количество")
}

func TestDecode_CSVEmpty(t *testing.T) {
	rows, err := Decode(strings.NewReader(""), DecodeOptions{Columns: defaultColumns()})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestDecode_JSON(t *testing.T) {
	data := `[{"Код": 12345, "Модель": "Watch", "Цена": 99.9, "Количество": 3},
	          {"Код": "B-1", "Модель": "Other", "Цена": "10", "Количество": ">10"}]`

	rows, err := Decode(strings.NewReader(data), DecodeOptions{Format: FormatJSON, Columns: defaultColumns()})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "12345", rows[0].Key)
	assert.Equal(t, 99.9, rows[0].Price)
	assert.Equal(t, float64(3), rows[0].Stock)
	assert.Equal(t, "B-1", rows[1].Key)
}

func TestDecode_YAML(t *testing.T) {
	data := "- Код: A-1\n  Модель: Watch\n  Цена: 1200\n  Количество: 4\n"

	rows, err := Decode(strings.NewReader(data), DecodeOptions{Format: FormatYAML, Columns: defaultColumns()})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "A-1", rows[0].Key)
	assert.Equal(t, "Watch", rows[0].Name)
	assert.NotNil(t, rows[0].Price)
}

func TestDecode_Errors(t *testing.T) {
	_, err := Decode(strings.NewReader("{"), DecodeOptions{Format: FormatJSON})
	assert.Error(t, err)

	_, err = Decode(strings.NewReader(""), DecodeOptions{Format: "xls"})
	assert.ErrorContains(t, err, "unsupported feed format")
}

func TestParseDelimiter(t *testing.T) {
	assert.Equal(t, ',', parseDelimiter(""))
	assert.Equal(t, ';', parseDelimiter(";"))
	assert.Equal(t, '\t', parseDelimiter(`\t`))
}
