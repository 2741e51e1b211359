package fonts

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ByLCY/barcoder/label"
)

func TestBuiltinFontsLoad(t *testing.T) {
	list := Builtin()
	if len(list) != 3 {
		t.Fatalf("expected 3 builtin fonts, got %d", len(list))
	}
	for _, f := range list {
		data, err := Load(f.Path)
		if err != nil {
			t.Fatalf("Load(%s) error: %v", f.Path, err)
		}
		if len(data) == 0 {
			t.Fatalf("builtin font %s is empty", f.Name)
		}
	}
}

func TestScanListsTTFOnly(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"Arial.ttf", "Bold.TTF", "readme.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.ttf"), 0o755); err != nil {
		t.Fatal(err)
	}

	list, err := Scan(dir)
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 fonts, got %d: %+v", len(list), list)
	}
	if list[0].Name != "Arial" || list[0].Size != DefaultSize {
		t.Fatalf("unexpected first font: %+v", list[0])
	}
	if _, ok := Find(list, "Bold"); !ok {
		t.Fatalf("Bold not found")
	}
}

func TestScanMissingDir(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "nope"))
	if !errors.Is(err, label.ErrConfiguration) {
		t.Fatalf("缺失目录应返回配置错误，got %v", err)
	}
}

func TestLoadUnknownBuiltin(t *testing.T) {
	if _, err := Load("builtin:comic"); err == nil {
		t.Fatalf("未知内置字体应报错")
	}
}
