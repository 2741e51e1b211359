package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ByLCY/barcoder/dsl"
	"github.com/ByLCY/barcoder/label"
	"github.com/ByLCY/barcoder/layout"
)

// Catalog 是按类别组织的标签模板集合，加载后只读。
type Catalog struct {
	labels map[label.Category][]label.Label
}

// LoadCatalog 读取 <dir>/box 与 <dir>/product 下的骨架文件（.yaml/.yml/.label），
// 并用 fontList 解析字体。任何错误都是 label.ErrConfiguration。
func LoadCatalog(dir string, fontList []label.Font) (*Catalog, error) {
	c := &Catalog{labels: map[label.Category][]label.Label{}}
	for _, cat := range label.Categories() {
		labels, err := loadCategory(filepath.Join(dir, cat.String()), cat, fontList)
		if err != nil {
			return nil, err
		}
		c.labels[cat] = labels
	}
	return c, nil
}

func loadCategory(dir string, cat label.Category, fontList []label.Font) ([]label.Label, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: 读取模板目录失败: %w", label.ErrConfiguration, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var out []label.Label
	seen := map[string]string{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		opts := layout.BuildOptions{Fonts: fontList, Category: cat, Source: path}

		var labels []label.Label
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".yaml", ".yml":
			lbl, err := decodeYAMLFile(path, opts)
			if err != nil {
				return nil, err
			}
			labels = []label.Label{lbl}
		case ".label":
			labels, err = buildDSLFile(path, opts)
			if err != nil {
				return nil, err
			}
		default:
			continue
		}

		for _, lbl := range labels {
			if prev, dup := seen[lbl.Name]; dup {
				return nil, fmt.Errorf("%w: 标签 %s 同时定义于 %s 与 %s", label.ErrConfiguration, lbl.Name, prev, path)
			}
			seen[lbl.Name] = path
			out = append(out, lbl)
		}
	}
	return out, nil
}

func decodeYAMLFile(path string, opts layout.BuildOptions) (label.Label, error) {
	f, err := os.Open(path)
	if err != nil {
		return label.Label{}, fmt.Errorf("%w: %w", label.ErrConfiguration, err)
	}
	defer f.Close()
	return layout.DecodeYAML(f, opts)
}

func buildDSLFile(path string, opts layout.BuildOptions) ([]label.Label, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", label.ErrConfiguration, err)
	}
	defer f.Close()
	doc, err := dsl.Parse(path, f)
	if err != nil {
		return nil, fmt.Errorf("%w: 解析 DSL 失败: %w", label.ErrConfiguration, err)
	}
	return layout.Build(doc, opts)
}

// Labels 返回某类别的全部标签，按文件名顺序。
func (c *Catalog) Labels(cat label.Category) []label.Label {
	return append([]label.Label(nil), c.labels[cat]...)
}

// Find 按名称查找标签。
func (c *Catalog) Find(cat label.Category, name string) (label.Label, bool) {
	for _, lbl := range c.labels[cat] {
		if lbl.Name == name {
			return lbl, true
		}
	}
	return label.Label{}, false
}

// Categories 返回所有类别。
func (c *Catalog) Categories() []label.Category { return label.Categories() }

// QuantityModes 返回所有数量模式。
func (c *Catalog) QuantityModes() []label.QuantityMode { return label.QuantityModes() }
