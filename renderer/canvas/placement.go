package canvasrenderer

import (
	"fmt"

	"github.com/ByLCY/barcoder/binding"
	"github.com/ByLCY/barcoder/label"
	"github.com/ByLCY/barcoder/textlayout"
)

// 箱标最后 4 位数字的放大倍数。
const boxTailScale = 1.8

// boxTailDigits 是箱标单独放大的尾部位数。
const boxTailDigits = 4

// Align 文本水平对齐方式。
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
)

// TextRun 是一段已定位的文本，Y 为基线（原点在页面左下角，单位 mm）。
type TextRun struct {
	Content string     `json:"content"`
	X       float64    `json:"x"`
	Y       float64    `json:"y"`
	Font    label.Font `json:"font"`
	Align   Align      `json:"align"`
}

// Placement 记录一页标签上条码与文本的最终位置，用于绘制与调试输出。
type Placement struct {
	Page     int       `json:"page"`
	SKU      string    `json:"sku"`
	Width    float64   `json:"width"`
	Height   float64   `json:"height"`
	BarcodeX float64   `json:"barcodeX"`
	BarcodeY float64   `json:"barcodeY"`
	Symbol   Symbol    `json:"symbol"`
	Texts    []TextRun `json:"texts"`
}

// Measurers 为字体提供宽度测量。
type Measurers interface {
	Measurer(f label.Font) (textlayout.Measurer, error)
}

// CenterOffset 返回宽度为 width 的元素在容器内水平居中时的左边距。
func CenterOffset(container, width float64) float64 {
	return (container - width) / 2
}

// plan 计算一页标签的布局。记录与骨架类型必须与标签类别匹配。
func plan(lbl label.Label, layout label.Layout, rec label.Record, sym Symbol, m Measurers) (Placement, error) {
	pl := Placement{
		SKU:      rec.Base().SKU,
		Width:    lbl.Size.Width,
		Height:   lbl.Size.Height,
		BarcodeX: CenterOffset(lbl.Size.Width, sym.Width),
		Symbol:   sym,
	}
	captions := lbl.Captions.WithDefaults()

	var err error
	switch r := rec.(type) {
	case label.BoxRecord:
		box, ok := layout.(label.BoxLayout)
		if !ok || lbl.Category != label.CategoryBox {
			return Placement{}, fmt.Errorf("箱标记录 %s 与标签 %s（%s）不匹配", r.SKU, lbl.Name, lbl.Category)
		}
		err = planBox(&pl, box, r, captions, m)
	case label.ProductRecord:
		product, ok := layout.(label.ProductLayout)
		if !ok || lbl.Category != label.CategoryProduct {
			return Placement{}, fmt.Errorf("商品记录 %s 与标签 %s（%s）不匹配", r.SKU, lbl.Name, lbl.Category)
		}
		err = planProduct(&pl, product, r, captions, m)
	default:
		return Placement{}, fmt.Errorf("未知的记录类型 %T", rec)
	}
	if err != nil {
		return Placement{}, err
	}
	return pl, nil
}

// planBox：条码上方打印条码数值（后 4 位放大），条码下方打印 "数量 шт. Арт.:sku"。
func planBox(pl *Placement, layout label.BoxLayout, rec label.BoxRecord, captions label.Captions, m Measurers) error {
	font := layout.Font
	margin := layout.Margin
	pl.BarcodeY = margin + font.SizeMM()

	head, tail := splitTail(rec.Barcode, boxTailDigits)
	headFont := layout.ValueFont
	tailFont := headFont.WithSize(headFont.Size * boxTailScale)
	headM, err := m.Measurer(headFont)
	if err != nil {
		return err
	}
	tailM, err := m.Measurer(tailFont)
	if err != nil {
		return err
	}
	headWidth := headM.TextWidth(head)
	total := headWidth + tailM.TextWidth(tail)

	vx := CenterOffset(pl.Width, total)
	vy := pl.BarcodeY + pl.Symbol.Height + margin/2
	pl.Texts = append(pl.Texts,
		TextRun{Content: head, X: vx, Y: vy, Font: headFont, Align: AlignLeft},
		TextRun{Content: tail, X: vx + headWidth, Y: vy, Font: tailFont, Align: AlignLeft},
		TextRun{Content: binding.Record(captions.Footer, rec), X: pl.Width / 2, Y: margin, Font: font, Align: AlignCenter},
	)
	return nil
}

// planProduct：Code128 时在底部打印条码原值；条码上方自上而下为 Арт.、折行后的名称，末行追加数量。
func planProduct(pl *Placement, layout label.ProductLayout, rec label.ProductRecord, captions label.Captions, m Measurers) error {
	font := layout.Font
	size := font.SizeMM()
	margin := layout.Margin
	pl.BarcodeY = margin
	if pl.Symbol.Family == label.FamilyCode128 {
		pl.Texts = append(pl.Texts, TextRun{Content: rec.Barcode, X: pl.Width / 2, Y: margin, Font: font, Align: AlignCenter})
		pl.BarcodeY += size
	}

	measurer, err := m.Measurer(font)
	if err != nil {
		return err
	}
	lines := []string{binding.Record(captions.SKU, rec)}
	lines = append(lines, textlayout.Wrap(rec.Name, pl.Width-3*margin, measurer, textlayout.DefaultMaxLines)...)
	lines[len(lines)-1] += binding.Record(captions.Quantity, rec)

	top := pl.BarcodeY + pl.Symbol.Height + size*float64(len(lines))
	for n, ln := range lines {
		pl.Texts = append(pl.Texts, TextRun{
			Content: ln,
			X:       pl.Width / 2,
			Y:       top - size*float64(n),
			Font:    font,
			Align:   AlignCenter,
		})
	}
	return nil
}

// splitTail 将值拆为 "前部 + 空格" 与最后 n 个字符。
func splitTail(value string, n int) (string, string) {
	runes := []rune(value)
	if len(runes) <= n {
		return "", value
	}
	cut := len(runes) - n
	return string(runes[:cut]) + " ", string(runes[cut:])
}
