package label

import (
	"errors"
	"math"
	"testing"
)

func productGeometry() Geometry {
	return Geometry{
		Font:           Font{Name: "Body", Path: "builtin:goregular", Size: 9},
		BarWidth:       0.33,
		BarHeightRatio: 0.4,
		Margin:         2,
	}
}

func TestValidateBoxRequiresCode128(t *testing.T) {
	l := Label{
		Name:     "box-100x70",
		Category: CategoryBox,
		Size:     Size{Width: 100, Height: 70},
		Layouts: map[Family]Layout{
			FamilyEAN13: BoxLayout{Geometry: productGeometry(), ValueFont: Font{Name: "Body", Size: 12}},
		},
	}
	err := l.Validate()
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("缺少 CODE128 骨架应返回配置错误，got %v", err)
	}

	l.Layouts[FamilyCode128] = BoxLayout{Geometry: productGeometry(), ValueFont: Font{Name: "Body", Size: 12}}
	if err := l.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRejectsMismatchedLayoutKind(t *testing.T) {
	l := Label{
		Name:     "58x40",
		Category: CategoryProduct,
		Size:     Size{Width: 58, Height: 40},
		Layouts: map[Family]Layout{
			FamilyCode128: BoxLayout{Geometry: productGeometry()},
		},
	}
	if err := l.Validate(); !errors.Is(err, ErrConfiguration) {
		t.Fatalf("商品标签使用箱标骨架应报错，got %v", err)
	}
}

func TestLabelFontsDeduplicated(t *testing.T) {
	g := productGeometry()
	l := Label{
		Name:     "58x40",
		Category: CategoryProduct,
		Size:     Size{Width: 58, Height: 40},
		Layouts: map[Family]Layout{
			FamilyCode128: ProductLayout{Geometry: g},
			FamilyEAN13:   ProductLayout{Geometry: g},
		},
	}
	if got := len(l.Fonts()); got != 1 {
		t.Fatalf("expected 1 font, got %d", got)
	}
}

func TestCaptionsWithDefaults(t *testing.T) {
	c := Captions{SKU: "SKU ${sku}"}.WithDefaults()
	if c.SKU != "SKU ${sku}" {
		t.Fatalf("自定义模板被覆盖: %q", c.SKU)
	}
	if c.Quantity != DefaultCaptions().Quantity || c.Footer != DefaultCaptions().Footer {
		t.Fatalf("默认模板未填充: %+v", c)
	}
}

func TestRecordComplete(t *testing.T) {
	if (BoxRecord{Common{SKU: "A1", Quantity: 0, Barcode: "123"}}).Complete() {
		t.Fatalf("数量为 0 的记录不应视为完整")
	}
	p := ProductRecord{Common: Common{SKU: "A1", Quantity: 2, Barcode: "123"}, Index: 1, Name: "Кружка"}
	if !p.Complete() {
		t.Fatalf("完整记录被判为不完整")
	}
	p.Name = ""
	if p.Complete() {
		t.Fatalf("缺少名称的记录不应视为完整")
	}
}

func TestParseLength(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"2", 2},
		{"2mm", 2},
		{"0.5cm", 5},
		{"1in", 25.4},
		{"12pt", 12 * PtToMm},
	}
	for _, c := range cases {
		l, err := ParseLength(c.in)
		if err != nil {
			t.Fatalf("ParseLength(%q) error: %v", c.in, err)
		}
		if diff := math.Abs(l.MM() - c.want); diff > 1e-9 {
			t.Fatalf("ParseLength(%q).MM() = %g, want %g", c.in, l.MM(), c.want)
		}
	}
	if _, err := ParseLength("abc"); !errors.Is(err, ErrConfiguration) {
		t.Fatalf("非法长度应返回配置错误，got %v", err)
	}
}

// pt↔mm 往返换算误差应极小。
func TestPtMmRoundTrip(t *testing.T) {
	for _, pt := range []float64{0, 1, 9, 12, 72} {
		back := Length{Value: pt, Unit: UnitPT}.MM() * MmToPt
		if diff := math.Abs(back - pt); diff > 1e-9 {
			t.Fatalf("pt→mm→pt 往返误差过大: in=%g back=%g", pt, back)
		}
	}
}
