// Package layout 将标签骨架（.label DSL 或 YAML）构建为已解析字体的 label.Label。
package layout

import (
	"github.com/ByLCY/barcoder/dsl"
	"github.com/ByLCY/barcoder/label"
)

// Build 根据 DSL AST 生成标签模板，字体在此阶段解析为文件路径。
func Build(doc *dsl.Document, opts BuildOptions) ([]label.Label, error) {
	if doc == nil {
		return nil, opts.errorf("文档为空")
	}
	out := make([]label.Label, 0, len(doc.Labels))
	seen := map[string]struct{}{}
	for _, decl := range doc.Labels {
		lbl, err := buildLabel(decl, opts)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[lbl.Name]; dup {
			return nil, opts.errorf("标签 %s 重复定义", lbl.Name)
		}
		seen[lbl.Name] = struct{}{}
		out = append(out, lbl)
	}
	return out, nil
}

func buildLabel(decl *dsl.LabelDecl, opts BuildOptions) (label.Label, error) {
	cat, err := label.ParseCategory(decl.Category)
	if err != nil {
		return label.Label{}, opts.wrap(err)
	}
	size, err := decl.Size()
	if err != nil {
		return label.Label{}, opts.wrap(err)
	}
	lbl := label.Label{Name: string(decl.Name), Category: cat, Size: size}

	for _, p := range decl.Properties() {
		text, err := p.Text()
		if err != nil {
			return label.Label{}, err
		}
		switch p.Key {
		case "caption-sku":
			lbl.Captions.SKU = text
		case "caption-quantity":
			lbl.Captions.Quantity = text
		case "caption-footer":
			lbl.Captions.Footer = text
		default:
			return label.Label{}, opts.errorf("%s: 未知属性 %s", p.Pos, p.Key)
		}
	}

	var skeletons []skeleton
	for _, ld := range decl.Layouts() {
		s, err := dslSkeleton(ld, opts)
		if err != nil {
			return label.Label{}, err
		}
		skeletons = append(skeletons, s)
	}
	return assemble(lbl, skeletons, opts)
}

func dslSkeleton(ld *dsl.LayoutDecl, opts BuildOptions) (skeleton, error) {
	fam, err := label.ParseFamily(ld.Family)
	if err != nil {
		return skeleton{}, opts.wrap(err)
	}
	s := skeleton{family: fam}
	for _, p := range ld.Properties {
		switch p.Key {
		case "font", "value-font":
			name, size, err := p.Font()
			if err != nil {
				return skeleton{}, err
			}
			ref := &fontRef{Name: name, Size: size}
			if p.Key == "font" {
				s.font = ref
			} else {
				s.valueFont = ref
			}
		case "bar-width", "margin":
			l, err := p.Length()
			if err != nil {
				return skeleton{}, err
			}
			mm := l.MM()
			if p.Key == "bar-width" {
				s.barWidth = &mm
			} else {
				s.margin = &mm
			}
		case "bar-height-ratio":
			v, err := p.Number()
			if err != nil {
				return skeleton{}, err
			}
			s.barHeightRatio = &v
		default:
			return skeleton{}, opts.errorf("%s: 未知属性 %s", p.Pos, p.Key)
		}
	}
	return s, nil
}
