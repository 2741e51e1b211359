package label

import "strconv"

// Common 是两种记录共有的字段。
type Common struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
	Barcode  string `json:"barcode"`
}

// Base 返回共有字段，BoxRecord 与 ProductRecord 通过嵌入获得该方法。
func (c Common) Base() Common { return c }

// Record 是一行输入数据，只有 BoxRecord 与 ProductRecord 两种实现。
type Record interface {
	Base() Common
	// Fields 返回用于文本模板插值的字段。
	Fields() map[string]any
	// Complete 报告所有字段是否已填写。
	Complete() bool
}

// BoxRecord 箱标数据。
type BoxRecord struct {
	Common
}

// ProductRecord 商品标签数据。
type ProductRecord struct {
	Common
	Index int    `json:"index"`
	Name  string `json:"name"`
}

func (r BoxRecord) Fields() map[string]any {
	return map[string]any{
		"sku":      r.SKU,
		"quantity": r.Quantity,
		"barcode":  r.Barcode,
	}
}

func (r BoxRecord) Complete() bool { return r.Common.complete() }

func (r ProductRecord) Fields() map[string]any {
	return map[string]any{
		"index":    r.Index,
		"sku":      r.SKU,
		"name":     r.Name,
		"quantity": r.Quantity,
		"barcode":  r.Barcode,
	}
}

func (r ProductRecord) Complete() bool {
	return r.Common.complete() && r.Index != 0 && r.Name != ""
}

func (c Common) complete() bool {
	return c.SKU != "" && c.Quantity != 0 && c.Barcode != ""
}

// Describe 返回用于日志与进度展示的记录标识。
func Describe(r Record) string {
	if r == nil {
		return ""
	}
	b := r.Base()
	if p, ok := r.(ProductRecord); ok {
		return strconv.Itoa(p.Index) + ":" + b.SKU
	}
	return b.SKU
}
