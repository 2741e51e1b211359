package layout

import (
	"fmt"
	"strings"

	"github.com/ByLCY/barcoder/binding"
	"github.com/ByLCY/barcoder/fonts"
	"github.com/ByLCY/barcoder/label"
)

// fontRef 是配置中对字体的引用：逻辑名与可选字号（pt）。
type fontRef struct {
	Name string
	Size float64
}

// skeleton 是 DSL 与 YAML 两种写法解析后的共同中间形态。
type skeleton struct {
	family         label.Family
	font           *fontRef
	valueFont      *fontRef
	barWidth       *float64
	barHeightRatio *float64
	margin         *float64
}

// resolveFont 按名称查找字体；未写字号时使用字体的默认字号。
func resolveFont(ref fontRef, opts BuildOptions) (label.Font, error) {
	f, ok := fonts.Find(opts.Fonts, ref.Name)
	if !ok || f.Path == "" {
		return label.Font{}, opts.errorf("未找到字体 %s", ref.Name)
	}
	if ref.Size > 0 {
		f.Size = ref.Size
	}
	if f.Size <= 0 {
		f.Size = fonts.DefaultSize
	}
	return f, nil
}

// build 将骨架转换为对应类别的 label.Layout。
func (s skeleton) build(cat label.Category, opts BuildOptions) (label.Layout, error) {
	switch {
	case s.font == nil:
		return nil, opts.errorf("%s 骨架缺少 font", s.family)
	case s.barWidth == nil:
		return nil, opts.errorf("%s 骨架缺少 bar-width", s.family)
	case s.barHeightRatio == nil:
		return nil, opts.errorf("%s 骨架缺少 bar-height-ratio", s.family)
	case s.margin == nil:
		return nil, opts.errorf("%s 骨架缺少 margin", s.family)
	}

	font, err := resolveFont(*s.font, opts)
	if err != nil {
		return nil, err
	}
	g := label.Geometry{
		Font:           font,
		BarWidth:       *s.barWidth,
		BarHeightRatio: *s.barHeightRatio,
		Margin:         *s.margin,
	}

	switch cat {
	case label.CategoryProduct:
		if s.valueFont != nil {
			return nil, opts.errorf("商品标签的 %s 骨架不支持 value-font", s.family)
		}
		return label.ProductLayout{Geometry: g}, nil
	case label.CategoryBox:
		if s.valueFont == nil {
			return nil, opts.errorf("箱标的 %s 骨架缺少 value-font", s.family)
		}
		vf, err := resolveFont(*s.valueFont, opts)
		if err != nil {
			return nil, err
		}
		return label.BoxLayout{Geometry: g, ValueFont: vf}, nil
	default:
		return nil, opts.errorf("未知的标签类别 %s", cat)
	}
}

// assemble 组装并校验标签。
func assemble(lbl label.Label, skeletons []skeleton, opts BuildOptions) (label.Label, error) {
	if opts.Category != 0 && lbl.Category != opts.Category {
		return label.Label{}, opts.errorf("标签 %s 属于 %s，但位于 %s 目录", lbl.Name, lbl.Category, opts.Category)
	}
	lbl.Layouts = make(map[label.Family]label.Layout, len(skeletons))
	for _, s := range skeletons {
		if _, dup := lbl.Layouts[s.family]; dup {
			return label.Label{}, opts.errorf("标签 %s 重复定义 %s 骨架", lbl.Name, s.family)
		}
		layout, err := s.build(lbl.Category, opts)
		if err != nil {
			return label.Label{}, err
		}
		lbl.Layouts[s.family] = layout
	}
	lbl.Captions = lbl.Captions.WithDefaults()
	if err := checkCaptions(lbl); err != nil {
		return label.Label{}, opts.wrap(err)
	}
	if err := lbl.Validate(); err != nil {
		return label.Label{}, opts.wrap(err)
	}
	return lbl, nil
}

// checkCaptions 确认文本模板只引用该类别记录具有的字段。
func checkCaptions(lbl label.Label) error {
	var sample label.Record = label.BoxRecord{}
	if lbl.Category == label.CategoryProduct {
		sample = label.ProductRecord{}
	}
	fields := sample.Fields()
	for _, tmpl := range []string{lbl.Captions.SKU, lbl.Captions.Quantity, lbl.Captions.Footer} {
		for _, name := range binding.Placeholders(tmpl) {
			if _, ok := fields[strings.ToLower(name)]; !ok {
				return fmt.Errorf("%w: 标签 %s 的文本模板引用了未知字段 %s", label.ErrConfiguration, lbl.Name, name)
			}
		}
	}
	return nil
}
