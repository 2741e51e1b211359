package canvasrenderer

import (
	"math"
	"testing"

	"github.com/ByLCY/barcoder/label"
)

var digitsFont = label.Font{Name: "GoRegular", Path: "builtin:goregular", Size: 8}

func TestEncodeSymbolModuleCounts(t *testing.T) {
	cases := []struct {
		fam     label.Family
		value   string
		modules int
	}{
		{label.FamilyEAN13, "4006381333931", 95},
		{label.FamilyUPCA, "036000291452", 95},
		{label.FamilyEAN8, "96385074", 67},
	}
	for _, c := range cases {
		sym, err := encodeSymbol(c.fam, c.value, 0.33, 20, digitsFont)
		if err != nil {
			t.Fatalf("%s %s: %v", c.fam, c.value, err)
		}
		if len(sym.Modules) != c.modules {
			t.Fatalf("%s: got %d modules, want %d", c.fam, len(sym.Modules), c.modules)
		}
		wantWidth := float64(sym.Quiet[0]+c.modules+sym.Quiet[1]) * 0.33
		if math.Abs(sym.Width-wantWidth) > 1e-9 {
			t.Fatalf("%s: width=%g want %g", c.fam, sym.Width, wantWidth)
		}
		// EAN/UPC 在条下方留出可读数字区域
		if math.Abs(sym.Height-(20+digitsFont.SizeMM())) > 1e-9 {
			t.Fatalf("%s: height=%g", c.fam, sym.Height)
		}
	}
}

func TestEncodeSymbolCode128(t *testing.T) {
	sym, err := encodeSymbol(label.FamilyCode128, "AB-12/x", 0.25, 15, digitsFont)
	if err != nil {
		t.Fatalf("encode error: %v", err)
	}
	if len(sym.Modules) == 0 {
		t.Fatalf("no modules encoded")
	}
	if sym.TextHeight != 0 || sym.Height != 15 {
		t.Fatalf("Code128 不带可读数字区域: textHeight=%g height=%g", sym.TextHeight, sym.Height)
	}
	want := float64(20+len(sym.Modules)) * 0.25
	if math.Abs(sym.Width-want) > 1e-9 {
		t.Fatalf("width=%g want %g", sym.Width, want)
	}
	// 条码以深色条开始和结束
	if !sym.Modules[0] || !sym.Modules[len(sym.Modules)-1] {
		t.Fatalf("Code128 应以条开始并以条结束")
	}
}

func TestEncodeSymbolErrors(t *testing.T) {
	if _, err := encodeSymbol(label.FamilyCode128, "Артикул", 0.3, 10, digitsFont); err == nil {
		t.Fatalf("Code128 不能编码西里尔字母")
	}
	if _, err := encodeSymbol(label.FamilyEAN13, "4006381333931", 0, 10, digitsFont); err == nil {
		t.Fatalf("条宽为 0 应报错")
	}
}

func TestEncodeSymbolRecomputesCheckDigit(t *testing.T) {
	cases := []struct {
		fam     label.Family
		value   string
		printed string
	}{
		{label.FamilyEAN13, "4006381333932", "4006381333931"},
		{label.FamilyEAN13, "4006381333931", "4006381333931"},
		{label.FamilyUPCA, "036000291459", "036000291452"},
		{label.FamilyEAN8, "96385070", "96385074"},
	}
	for _, c := range cases {
		sym, err := encodeSymbol(c.fam, c.value, 0.33, 20, digitsFont)
		if err != nil {
			t.Fatalf("%s %s: 校验位错误不应导致编码失败: %v", c.fam, c.value, err)
		}
		if sym.Value != c.printed {
			t.Fatalf("%s %s: printed %q, want %q", c.fam, c.value, sym.Value, c.printed)
		}
	}

	good, _ := encodeSymbol(label.FamilyEAN13, "4006381333931", 0.33, 20, digitsFont)
	bad, _ := encodeSymbol(label.FamilyEAN13, "4006381333932", 0.33, 20, digitsFont)
	if len(good.Modules) != len(bad.Modules) {
		t.Fatalf("module count differs")
	}
	for i := range good.Modules {
		if good.Modules[i] != bad.Modules[i] {
			t.Fatalf("module %d differs: 校验位应被重新计算", i)
		}
	}
}

func TestEncodeSymbolEANRequiresDigits(t *testing.T) {
	if _, err := encodeSymbol(label.FamilyEAN13, "40063813339", 0.33, 20, digitsFont); err == nil {
		t.Fatalf("长度不符应报错")
	}
	if _, err := encodeSymbol(label.FamilyEAN8, "9638507A", 0.33, 20, digitsFont); err == nil {
		t.Fatalf("非数字应报错")
	}
}

func TestSymbolBarsMergeRuns(t *testing.T) {
	sym := Symbol{Modules: []bool{true, true, false, true, false, false, true}}
	bars := sym.bars()
	want := [][2]int{{0, 2}, {3, 1}, {6, 1}}
	if len(bars) != len(want) {
		t.Fatalf("got %v, want %v", bars, want)
	}
	for i := range want {
		if bars[i] != want[i] {
			t.Fatalf("got %v, want %v", bars, want)
		}
	}
}
