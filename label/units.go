package label

import (
	"fmt"
	"strconv"
	"strings"
)

// pt 与 mm 的换算常量。
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
)

// Unit 表示长度在配置中书写时的单位。
type Unit int

const (
	UnitNone Unit = iota // 未写单位，按 mm 处理
	UnitMM
	UnitCM
	UnitIN
	UnitPT
)

func (u Unit) String() string {
	switch u {
	case UnitMM:
		return "mm"
	case UnitCM:
		return "cm"
	case UnitIN:
		return "in"
	case UnitPT:
		return "pt"
	default:
		return ""
	}
}

// Length 保留数值与原始单位。
type Length struct {
	Value float64
	Unit  Unit
}

// MM 将长度换算为毫米；未写单位时视为毫米。
func (l Length) MM() float64 {
	switch l.Unit {
	case UnitCM:
		return l.Value * 10
	case UnitIN:
		return l.Value * 25.4
	case UnitPT:
		return l.Value * PtToMm
	default:
		return l.Value
	}
}

// PT 将长度换算为点；未写单位时视为毫米。
func (l Length) PT() float64 {
	if l.Unit == UnitPT {
		return l.Value
	}
	return l.MM() * MmToPt
}

var unitSuffixes = []struct {
	s string
	u Unit
}{{"mm", UnitMM}, {"cm", UnitCM}, {"in", UnitIN}, {"pt", UnitPT}}

// ParseLength 解析 "2mm"、"0.5cm"、"9pt" 或纯数字。
func ParseLength(value string) (Length, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return Length{}, fmt.Errorf("%w: 长度为空", ErrConfiguration)
	}
	unit := UnitNone
	for _, suf := range unitSuffixes {
		if strings.HasSuffix(v, suf.s) {
			unit = suf.u
			v = strings.TrimSpace(strings.TrimSuffix(v, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return Length{}, fmt.Errorf("%w: 无法解析长度 %q", ErrConfiguration, value)
	}
	return Length{Value: f, Unit: unit}, nil
}
