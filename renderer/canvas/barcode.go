package canvasrenderer

import (
	"fmt"
	"strings"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/boombuler/barcode/ean"
	"github.com/tdewolff/canvas"

	"github.com/ByLCY/barcoder/label"
)

// 各码制左右静区宽度（模块数）。
var quietZones = map[label.Family][2]int{
	label.FamilyCode128: {10, 10},
	label.FamilyEAN13:   {11, 7},
	label.FamilyUPCA:    {11, 7},
	label.FamilyEAN8:    {7, 7},
}

// Symbol 是已编码的条码图形，尺寸单位为 mm。
// EAN/UPC 码制在条下方打印人眼可读数字，TextHeight 为该区域高度。
type Symbol struct {
	Family     label.Family `json:"family"`
	Value      string       `json:"value"`
	Modules    []bool       `json:"-"`
	Quiet      [2]int       `json:"quiet"`
	BarWidth   float64      `json:"barWidth"`
	BarHeight  float64      `json:"barHeight"`
	TextHeight float64      `json:"textHeight"`
	Font       label.Font   `json:"font"`
	Width      float64      `json:"width"`
	Height     float64      `json:"height"`
}

// encodeSymbol 使用 boombuler/barcode 计算模块序列并求出图形尺寸。
func encodeSymbol(fam label.Family, value string, barWidth, barHeight float64, font label.Font) (Symbol, error) {
	if barWidth <= 0 || barHeight <= 0 {
		return Symbol{}, fmt.Errorf("条码尺寸无效: barWidth=%g barHeight=%g", barWidth, barHeight)
	}
	var (
		bc  barcode.Barcode
		err error
	)
	switch fam {
	case label.FamilyCode128:
		bc, err = code128.Encode(value)
	case label.FamilyEAN13, label.FamilyEAN8, label.FamilyUPCA:
		var payload string
		payload, err = eanPayload(fam, value)
		if err == nil {
			bc, err = ean.Encode(payload)
		}
	default:
		return Symbol{}, fmt.Errorf("不支持的条码类型 %s", fam)
	}
	if err != nil {
		return Symbol{}, fmt.Errorf("编码 %s 条码 %q 失败: %w", fam, value, err)
	}
	printed := value
	if fam != label.FamilyCode128 {
		// 可读数字使用重新计算校验位后的内容
		printed = bc.Content()
		if fam == label.FamilyUPCA {
			printed = strings.TrimPrefix(printed, "0")
		}
	}

	bounds := bc.Bounds()
	modules := make([]bool, 0, bounds.Dx())
	for x := bounds.Min.X; x < bounds.Max.X; x++ {
		r, g, b, _ := bc.At(x, bounds.Min.Y).RGBA()
		modules = append(modules, r == 0 && g == 0 && b == 0)
	}

	quiet := quietZones[fam]
	sym := Symbol{
		Family:    fam,
		Value:     printed,
		Modules:   modules,
		Quiet:     quiet,
		BarWidth:  barWidth,
		BarHeight: barHeight,
		Font:      font,
		Width:     float64(quiet[0]+len(modules)+quiet[1]) * barWidth,
	}
	if fam != label.FamilyCode128 {
		sym.TextHeight = font.SizeMM()
	}
	sym.Height = sym.BarHeight + sym.TextHeight
	return sym, nil
}

// eanDigits 是各码制不含校验位的数字个数。
var eanDigits = map[label.Family]int{
	label.FamilyEAN13: 12,
	label.FamilyUPCA:  11,
	label.FamilyEAN8:  7,
}

// eanPayload 去掉最后一位校验位，由编码器重新计算；不校验原值的校验位。
// UPC-A 以前导 0 的 EAN-13 编码。
func eanPayload(fam label.Family, value string) (string, error) {
	n := eanDigits[fam]
	if len(value) != n+1 {
		return "", fmt.Errorf("%s 需要 %d 位数字", fam, n+1)
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("%s 只能包含数字", fam)
		}
	}
	payload := value[:n]
	if fam == label.FamilyUPCA {
		payload = "0" + payload
	}
	return payload, nil
}

// bars 返回合并后的深色条：每项为 [起始模块, 模块数]。
func (s Symbol) bars() [][2]int {
	var out [][2]int
	start := -1
	for i, dark := range s.Modules {
		switch {
		case dark && start < 0:
			start = i
		case !dark && start >= 0:
			out = append(out, [2]int{start, i - start})
			start = -1
		}
	}
	if start >= 0 {
		out = append(out, [2]int{start, len(s.Modules) - start})
	}
	return out
}

// drawSymbol 在 (x, y) 处绘制条码，y 为图形底边（坐标原点在页面左下角）。
func drawSymbol(ctx *canvas.Context, sym Symbol, x, y float64, face *canvas.FontFace) {
	ctx.SetFillColor(canvas.Black)
	ctx.SetStrokeColor(canvas.Transparent)
	left := x + float64(sym.Quiet[0])*sym.BarWidth
	for _, bar := range sym.bars() {
		bx := left + float64(bar[0])*sym.BarWidth
		ctx.DrawPath(bx, y+sym.TextHeight, canvas.Rectangle(float64(bar[1])*sym.BarWidth, sym.BarHeight))
	}
	if sym.TextHeight > 0 && face != nil {
		// 数字基线留出约 1/4 字高给下行部
		baseline := y + sym.TextHeight*0.25
		ctx.DrawText(x+sym.Width/2, baseline, canvas.NewTextLine(face, sym.Value, canvas.Center))
	}
}
