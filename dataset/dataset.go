// Package dataset 从 Excel 工作簿读取标签数据。
package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ByLCY/barcoder/label"
)

// column 是数据列：1 起始的列号与显示名。
type column struct {
	index int
	name  string
}

// model 描述某类别的表格结构。
type model struct {
	startRow int
	columns  []column
}

var models = map[label.Category]model{
	label.CategoryProduct: {
		startRow: 5,
		columns: []column{
			{1, "№"},
			{2, "Артикул"},
			{3, "Товары"},
			{4, "Количество"},
			{6, "ШК"},
		},
	},
	label.CategoryBox: {
		startRow: 2,
		columns: []column{
			{2, "Количество"},
			{3, "Артикул"},
			{4, "ШК"},
		},
	},
}

// Dataset 是读取结果。Correct 中的记录所有字段均已填写，可直接用于渲染。
type Dataset struct {
	Category      label.Category
	Columns       []string
	Correct       []label.Record
	Incorrect     []label.Record
	IncorrectRows []int // 1 起始的行号，与 Incorrect 一一对应
}

// Read 读取工作簿的活动工作表。
func Read(path string, cat label.Category) (*Dataset, error) {
	m, ok := models[cat]
	if !ok {
		return nil, fmt.Errorf("%w: 未知的标签类别 %s", label.ErrData, cat)
	}
	wb, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: 打开 %s 失败: %w", label.ErrData, path, err)
	}
	defer wb.Close()

	sheet := wb.GetSheetName(wb.GetActiveSheetIndex())
	if sheet == "" {
		sheets := wb.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: 工作簿中没有任何工作表", label.ErrData)
		}
		sheet = sheets[0]
	}

	rows, err := wb.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: 读取工作表 %s 失败: %w", label.ErrData, sheet, err)
	}
	if len(rows) < m.startRow {
		return nil, fmt.Errorf("%w: 工作表 %s 为空或行数不足", label.ErrData, sheet)
	}

	ds := &Dataset{Category: cat}
	for _, c := range m.columns {
		ds.Columns = append(ds.Columns, c.name)
	}
	for i := m.startRow - 1; i < len(rows); i++ {
		values := make([]string, len(m.columns))
		for j, c := range m.columns {
			if c.index-1 < len(rows[i]) {
				values[j] = strings.TrimSpace(rows[i][c.index-1])
			}
		}
		rec := makeRecord(cat, values)
		if rec.Complete() {
			ds.Correct = append(ds.Correct, rec)
		} else {
			ds.Incorrect = append(ds.Incorrect, rec)
			ds.IncorrectRows = append(ds.IncorrectRows, i+1)
		}
	}
	return ds, nil
}

func makeRecord(cat label.Category, v []string) label.Record {
	if cat == label.CategoryBox {
		return label.BoxRecord{Common: label.Common{
			Quantity: parseInt(v[0]),
			SKU:      normalizeNumber(v[1]),
			Barcode:  normalizeNumber(v[2]),
		}}
	}
	return label.ProductRecord{
		Index: parseInt(v[0]),
		Common: label.Common{
			SKU:      normalizeNumber(v[1]),
			Quantity: parseInt(v[3]),
			Barcode:  normalizeNumber(v[4]),
		},
		Name: v[2],
	}
}

// parseInt 解析整数单元格，"5" 与 "5.0" 均可；无法解析或非整数时返回 0，记录因此被判为不完整。
func parseInt(s string) int {
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0
	}
	return int(f)
}

// normalizeNumber 将以数值形式存储的条码或货号（如 "4.601234567890E+12"、"123.0"）还原为整数文本。
func normalizeNumber(s string) string {
	if s == "" || !strings.ContainsAny(s, ".eE") {
		return s
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return s
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
