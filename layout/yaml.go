package layout

import (
	"bytes"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/ByLCY/barcoder/label"
)

// yamlLabel 是 YAML 骨架文件的结构，每个文件一个标签。
//
//	name: 58x40
//	size: {width: 58, height: 40}
//	layouts:
//	  - CODE128:
//	      font: {name: Roboto, size: 9}
//	      bar_width: 0.33
//	      bar_height_ratio: 0.45
//	      margin: 2
type yamlLabel struct {
	Name     string `yaml:"name"`
	Category string `yaml:"category"`
	Size     struct {
		Width  *yamlLength `yaml:"width"`
		Height *yamlLength `yaml:"height"`
	} `yaml:"size"`
	Layouts  []map[string]yamlLayout `yaml:"layouts"`
	Captions label.Captions          `yaml:"captions"`
}

type yamlLayout struct {
	Font           *yamlFont   `yaml:"font"`
	ValueFont      *yamlFont   `yaml:"font_barcode_value"`
	BarWidth       *yamlLength `yaml:"bar_width"`
	BarHeightRatio *float64    `yaml:"bar_height_ratio"`
	Margin         *yamlLength `yaml:"margin"`
}

type yamlFont struct {
	Name string  `yaml:"name"`
	Size float64 `yaml:"size"`
}

// yamlLength 接受纯数字（mm）或带单位的字符串，如 "2mm"、"0.5cm"。
type yamlLength struct {
	label.Length
}

func (l *yamlLength) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("第 %d 行: 长度必须是标量", node.Line)
	}
	v, err := label.ParseLength(node.Value)
	if err != nil {
		return fmt.Errorf("第 %d 行: %w", node.Line, err)
	}
	l.Length = v
	return nil
}

// DecodeYAML 读取一个 YAML 骨架文件。类别由 category 字段或 opts.Category 决定。
func DecodeYAML(r io.Reader, opts BuildOptions) (label.Label, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return label.Label{}, opts.errorf("读取失败: %v", err)
	}
	var doc yamlLabel
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return label.Label{}, opts.errorf("YAML 解析失败: %v", err)
	}

	cat := opts.Category
	if doc.Category != "" {
		c, err := label.ParseCategory(doc.Category)
		if err != nil {
			return label.Label{}, opts.wrap(err)
		}
		if cat == 0 {
			cat = c
		} else if c != cat {
			return label.Label{}, opts.errorf("标签 %s 属于 %s，但位于 %s 目录", doc.Name, c, cat)
		}
	}
	if cat == 0 {
		return label.Label{}, opts.errorf("标签 %s 缺少类别", doc.Name)
	}
	if doc.Size.Width == nil || doc.Size.Height == nil {
		return label.Label{}, opts.errorf("标签 %s 缺少尺寸", doc.Name)
	}

	lbl := label.Label{
		Name:     doc.Name,
		Category: cat,
		Size:     label.Size{Width: doc.Size.Width.MM(), Height: doc.Size.Height.MM()},
		Captions: doc.Captions,
	}

	var skeletons []skeleton
	for _, entry := range doc.Layouts {
		for key, yl := range entry {
			fam, err := label.ParseFamily(key)
			if err != nil {
				return label.Label{}, opts.wrap(err)
			}
			skeletons = append(skeletons, yl.skeleton(fam))
		}
	}
	return assemble(lbl, skeletons, opts)
}

func (y yamlLayout) skeleton(fam label.Family) skeleton {
	s := skeleton{family: fam, barHeightRatio: y.BarHeightRatio}
	if y.Font != nil {
		s.font = &fontRef{Name: y.Font.Name, Size: y.Font.Size}
	}
	if y.ValueFont != nil {
		s.valueFont = &fontRef{Name: y.ValueFont.Name, Size: y.ValueFont.Size}
	}
	if y.BarWidth != nil {
		mm := y.BarWidth.MM()
		s.barWidth = &mm
	}
	if y.Margin != nil {
		mm := y.Margin.MM()
		s.margin = &mm
	}
	return s
}
