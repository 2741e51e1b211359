package binding

import (
	"testing"

	"github.com/ByLCY/barcoder/label"
)

func TestDefaultCaptions(t *testing.T) {
	rec := label.BoxRecord{Common: label.Common{SKU: "AB-12", Quantity: 24, Barcode: "4601234567890"}}
	c := label.DefaultCaptions()

	if got := Record(c.Footer, rec); got != "24 шт. Арт.:AB-12" {
		t.Fatalf("footer = %q", got)
	}
	if got := Record(c.SKU, rec); got != "Арт.:AB-12" {
		t.Fatalf("sku = %q", got)
	}
	if got := Record(c.Quantity, rec); got != " 24 шт." {
		t.Fatalf("quantity = %q", got)
	}
}

func TestInterpolateKeepsUnknownPlaceholder(t *testing.T) {
	got := Interpolate("${name} / ${missing}", map[string]any{"name": "Кружка"})
	if got != "Кружка / ${missing}" {
		t.Fatalf("got %q", got)
	}
}

func TestInterpolateCaseInsensitiveFallback(t *testing.T) {
	got := Interpolate("${SKU}", map[string]any{"sku": "X1"})
	if got != "X1" {
		t.Fatalf("got %q", got)
	}
}

func TestPlaceholders(t *testing.T) {
	names := Placeholders("${quantity} шт. Арт.:${ sku }")
	if len(names) != 2 || names[0] != "quantity" || names[1] != "sku" {
		t.Fatalf("got %v", names)
	}
}
