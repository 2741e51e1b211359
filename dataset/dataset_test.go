package dataset

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ByLCY/barcoder/label"
)

// writeBook 写入工作簿，cells 的键为单元格坐标，如 "B2"。
func writeBook(t *testing.T, cells map[string]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for cell, v := range cells {
		require.NoError(t, f.SetCellValue("Sheet1", cell, v))
	}
	path := filepath.Join(t.TempDir(), "data.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadBox(t *testing.T) {
	path := writeBook(t, map[string]any{
		"B1": "Количество", "C1": "Артикул", "D1": "ШК",
		"B2": 12, "C2": "AB-1", "D2": int64(4601234567890),
		"B3": 3, "C3": "AB-2", // ШК пуст
		"B4": "много", "C4": "AB-3", "D4": "X-1",
		"B5": 1, "C5": 778, "D5": "ZX-0001",
	})

	ds, err := Read(path, label.CategoryBox)
	require.NoError(t, err)

	assert.Equal(t, []string{"Количество", "Артикул", "ШК"}, ds.Columns)
	require.Len(t, ds.Correct, 2)
	assert.Equal(t, label.BoxRecord{Common: label.Common{SKU: "AB-1", Quantity: 12, Barcode: "4601234567890"}}, ds.Correct[0])
	assert.Equal(t, label.BoxRecord{Common: label.Common{SKU: "778", Quantity: 1, Barcode: "ZX-0001"}}, ds.Correct[1])

	assert.Equal(t, []int{3, 4}, ds.IncorrectRows)
	require.Len(t, ds.Incorrect, 2)
	assert.Equal(t, "AB-2", ds.Incorrect[0].Base().SKU)
	assert.Equal(t, 0, ds.Incorrect[1].Base().Quantity)
}

func TestReadProduct(t *testing.T) {
	path := writeBook(t, map[string]any{
		"A1": "Накладная",
		"A4": "№", "B4": "Артикул", "C4": "Товары", "D4": "Количество", "F4": "ШК",
		"A5": 1, "B5": "KR-7", "C5": "Кружка керамическая", "D5": 4, "F5": "4006381333931",
		"A6": 2, "B6": "KR-8", "C6": "", "D6": 1, "F6": "036000291452",
		"A7": 3, "B7": "KR-9", "C7": "Ложка", "D7": 2.0, "F7": 96385074,
	})

	ds, err := Read(path, label.CategoryProduct)
	require.NoError(t, err)

	assert.Equal(t, []string{"№", "Артикул", "Товары", "Количество", "ШК"}, ds.Columns)
	require.Len(t, ds.Correct, 2)
	assert.Equal(t, label.ProductRecord{
		Index:  1,
		Name:   "Кружка керамическая",
		Common: label.Common{SKU: "KR-7", Quantity: 4, Barcode: "4006381333931"},
	}, ds.Correct[0])
	third := ds.Correct[1].(label.ProductRecord)
	assert.Equal(t, 2, third.Quantity)
	assert.Equal(t, "96385074", third.Barcode)
	assert.Equal(t, []int{6}, ds.IncorrectRows)
}

func TestReadEmptySheet(t *testing.T) {
	path := writeBook(t, map[string]any{"A1": "Накладная", "A4": "№"})
	_, err := Read(path, label.CategoryProduct)
	assert.ErrorIs(t, err, label.ErrData)
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "none.xlsx"), label.CategoryBox)
	assert.ErrorIs(t, err, label.ErrData)
}

func TestNormalizeNumber(t *testing.T) {
	cases := map[string]string{
		"":                   "",
		"AB-1":               "AB-1",
		"123.0":              "123",
		"4.601234567890E+12": "4601234567890",
		"12.5":               "12.5",
	}
	for in, want := range cases {
		assert.Equal(t, want, normalizeNumber(in), in)
	}
}

func TestParseInt(t *testing.T) {
	assert.Equal(t, 5, parseInt("5"))
	assert.Equal(t, 5, parseInt("5.0"))
	assert.Equal(t, 0, parseInt("5.5"))
	assert.Equal(t, 0, parseInt("много"))
	assert.Equal(t, 0, parseInt(""))
}
