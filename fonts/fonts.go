// Package fonts 提供字体来源：内置 Go 字体与字体目录扫描。
package fonts

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/ByLCY/barcoder/label"
)

// DefaultSize 是扫描得到的字体的默认字号（pt）。
const DefaultSize = 10

// BuiltinPrefix 标识内置字体路径，例如 "builtin:goregular"。
const BuiltinPrefix = "builtin:"

var builtin = map[string][]byte{
	"goregular": goregular.TTF,
	"gobold":    gobold.TTF,
	"gomono":    gomono.TTF,
}

var builtinNames = map[string]string{
	"goregular": "GoRegular",
	"gobold":    "GoBold",
	"gomono":    "GoMono",
}

// Builtin 返回内置字体列表（覆盖拉丁与西里尔字母）。
func Builtin() []label.Font {
	keys := make([]string, 0, len(builtin))
	for k := range builtin {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]label.Font, 0, len(keys))
	for _, k := range keys {
		out = append(out, label.Font{Name: builtinNames[k], Path: BuiltinPrefix + k, Size: DefaultSize})
	}
	return out
}

// Scan 列出目录下的 .ttf 字体，逻辑名为去掉扩展名的文件名。
// 同名字体不去重，按文件名排序返回。
func Scan(dir string) ([]label.Font, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: 读取字体目录 %s 失败: %w", label.ErrConfiguration, dir, err)
	}
	var out []label.Font
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if !strings.EqualFold(ext, ".ttf") {
			continue
		}
		out = append(out, label.Font{
			Name: strings.TrimSuffix(e.Name(), ext),
			Path: filepath.Join(dir, e.Name()),
			Size: DefaultSize,
		})
	}
	return out, nil
}

// Load 返回字体字节，path 可写为 "builtin:goregular" 或文件路径。
func Load(path string) ([]byte, error) {
	if name, ok := strings.CutPrefix(path, BuiltinPrefix); ok {
		data, ok := builtin[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("找不到内置字体 %s", path)
		}
		return data, nil
	}
	if path == "" {
		return nil, fmt.Errorf("字体路径为空")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取字体 %s 失败: %w", path, err)
	}
	return data, nil
}

// Find 按逻辑名查找字体，返回第一个匹配项。
func Find(all []label.Font, name string) (label.Font, bool) {
	for _, f := range all {
		if f.Name == name && f.Path != "" {
			return f, true
		}
	}
	return label.Font{}, false
}
