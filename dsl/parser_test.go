package dsl_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/ByLCY/barcoder/dsl"
	"github.com/ByLCY/barcoder/label"
)

const sampleDSL = `
// 商品标签
label "58x40" product 58mm 40mm {
  caption-sku: "SKU ${sku}"

  layout CODE128 {
    font: "GoRegular" 9
    bar-width: 0.33mm
    bar-height-ratio: 0.45
    margin: 2mm
  }

  /* EAN 系列共用参数 */
  layout EAN13 {
    font: "GoMono" 8pt; bar-width: 0.3
    bar-height-ratio: 0.4
    margin: 0.2cm
  }
}

# 箱标
label "box" box 10cm 7cm {
  layout CODE128 {
    font: "GoRegular"
    value-font: "GoBold" 14
    bar-width: 0.4mm
    bar-height-ratio: 0.4
    margin: 4
  }
}
`

func TestParseDocument(t *testing.T) {
	doc, err := dsl.ParseString(sampleDSL)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(doc.Labels) != 2 {
		t.Fatalf("expected 2 labels, got %d", len(doc.Labels))
	}

	product := doc.Labels[0]
	if product.Name != "58x40" || product.Category != "product" {
		t.Fatalf("unexpected header: %+v", product)
	}
	size, err := product.Size()
	if err != nil {
		t.Fatalf("size: %v", err)
	}
	if size != (label.Size{Width: 58, Height: 40}) {
		t.Fatalf("unexpected size %+v", size)
	}

	props := product.Properties()
	if len(props) != 1 || props[0].Key != "caption-sku" {
		t.Fatalf("expected caption property, got %+v", props)
	}
	if text, err := props[0].Text(); err != nil || text != "SKU ${sku}" {
		t.Fatalf("caption text = %q, %v", text, err)
	}

	layouts := product.Layouts()
	if len(layouts) != 2 {
		t.Fatalf("expected 2 layouts, got %d", len(layouts))
	}
	if layouts[0].Family != "CODE128" || layouts[1].Family != "EAN13" {
		t.Fatalf("unexpected families %s %s", layouts[0].Family, layouts[1].Family)
	}
	if len(layouts[1].Properties) != 4 {
		t.Fatalf("semicolon separated properties not parsed: %d", len(layouts[1].Properties))
	}

	box := doc.Labels[1]
	size, err = box.Size()
	if err != nil {
		t.Fatalf("size: %v", err)
	}
	if size != (label.Size{Width: 100, Height: 70}) {
		t.Fatalf("unexpected box size %+v", size)
	}
}

func TestPropertyValues(t *testing.T) {
	doc, err := dsl.ParseString(sampleDSL)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	props := map[string]*dsl.Property{}
	for _, p := range doc.Labels[0].Layouts()[1].Properties {
		props[p.Key] = p
	}

	name, size, err := props["font"].Font()
	if err != nil || name != "GoMono" || size != 8 {
		t.Fatalf("font = %q %v %v", name, size, err)
	}
	bw, err := props["bar-width"].Length()
	if err != nil || bw.MM() != 0.3 {
		t.Fatalf("bar-width = %v %v", bw, err)
	}
	ratio, err := props["bar-height-ratio"].Number()
	if err != nil || ratio != 0.4 {
		t.Fatalf("ratio = %v %v", ratio, err)
	}
	margin, err := props["margin"].Length()
	if err != nil || math.Abs(margin.MM()-2) > 1e-9 {
		t.Fatalf("margin = %v %v", margin, err)
	}

	boxProps := map[string]*dsl.Property{}
	for _, p := range doc.Labels[1].Layouts()[0].Properties {
		boxProps[p.Key] = p
	}
	name, size, err = boxProps["font"].Font()
	if err != nil || name != "GoRegular" || size != 0 {
		t.Fatalf("font without size = %q %v %v", name, size, err)
	}
	name, size, err = boxProps["value-font"].Font()
	if err != nil || name != "GoBold" || size != 14 {
		t.Fatalf("value-font = %q %v %v", name, size, err)
	}
}

func TestPropertyTypeErrors(t *testing.T) {
	doc, err := dsl.ParseString(`label "x" box 10mm 10mm { margin: "wide"; font: 12 }`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	props := doc.Labels[0].Properties()
	if _, err := props[0].Length(); !errors.Is(err, label.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if _, _, err := props[1].Font(); !errors.Is(err, label.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if _, err := props[1].Text(); err == nil || !strings.Contains(err.Error(), "font") {
		t.Fatalf("expected error naming the key, got %v", err)
	}
}

func TestParseErrors(t *testing.T) {
	cases := map[string]string{
		"missing size":  `label "x" box 10mm { }`,
		"unclosed":      `label "x" box 10mm 10mm { layout CODE128 { margin: 2 }`,
		"missing value": `label "x" box 10mm 10mm { margin: }`,
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := dsl.ParseString(input); err == nil {
				t.Fatalf("expected parse error")
			}
		})
	}
}

func TestParseEmptyDocument(t *testing.T) {
	doc, err := dsl.Parse("empty.label", strings.NewReader("\n// nothing\n"))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(doc.Labels) != 0 {
		t.Fatalf("expected no labels, got %d", len(doc.Labels))
	}
}
