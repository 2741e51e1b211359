package dsl

import (
	"fmt"
	"strconv"

	"github.com/ByLCY/barcoder/label"
)

func (p *Property) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s: %s", label.ErrConfiguration, p.Pos, p.Key, fmt.Sprintf(format, args...))
}

// Text 读取单个字符串值。
func (p *Property) Text() (string, error) {
	if len(p.Values) != 1 || p.Values[0].Type != "String" {
		return "", p.errorf("需要一个字符串")
	}
	return p.Values[0].Value, nil
}

// Number 读取不带单位的数值。
func (p *Property) Number() (float64, error) {
	if len(p.Values) != 1 || p.Values[0].Type != "Number" {
		return 0, p.errorf("需要一个数值")
	}
	f, err := strconv.ParseFloat(p.Values[0].Value, 64)
	if err != nil {
		return 0, p.errorf("无法解析数值 %q", p.Values[0].Raw)
	}
	return f, nil
}

// Length 读取长度，纯数字按 mm 处理。
func (p *Property) Length() (label.Length, error) {
	if len(p.Values) != 1 || p.Values[0].Type != "Number" {
		return label.Length{}, p.errorf("需要一个长度")
	}
	l, err := label.ParseLength(p.Values[0].Value)
	if err != nil {
		return label.Length{}, p.errorf("%v", err)
	}
	return l, nil
}

// Font 读取 `"名称" 字号`，字号可省略（返回 0），单位为 pt。
func (p *Property) Font() (name string, size float64, err error) {
	if len(p.Values) == 0 || len(p.Values) > 2 || p.Values[0].Type != "String" {
		return "", 0, p.errorf("需要 \"字体名\" [字号]")
	}
	name = p.Values[0].Value
	if len(p.Values) == 1 {
		return name, 0, nil
	}
	v := p.Values[1]
	if v.Type != "Number" {
		return "", 0, p.errorf("字号必须是数值")
	}
	l, err := label.ParseLength(v.Value)
	if err != nil {
		return "", 0, p.errorf("%v", err)
	}
	// 字号未写单位时按 pt 处理
	if l.Unit == label.UnitNone {
		return name, l.Value, nil
	}
	return name, l.PT(), nil
}

// Size 返回标签的物理尺寸（mm）。
func (l *LabelDecl) Size() (label.Size, error) {
	w, err := label.ParseLength(l.Width)
	if err != nil {
		return label.Size{}, fmt.Errorf("%s: 宽度: %w", l.Pos, err)
	}
	h, err := label.ParseLength(l.Height)
	if err != nil {
		return label.Size{}, fmt.Errorf("%s: 高度: %w", l.Pos, err)
	}
	return label.Size{Width: w.MM(), Height: h.MM()}, nil
}
