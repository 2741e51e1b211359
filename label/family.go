package label

import (
	"fmt"
	"strings"
)

// Family 条码码制。
type Family int

const (
	FamilyCode128 Family = iota + 1
	FamilyEAN13
	FamilyUPCA
	FamilyEAN8
)

// Families 按固定顺序返回所有码制。
func Families() []Family { return []Family{FamilyCode128, FamilyEAN13, FamilyUPCA, FamilyEAN8} }

// String 返回骨架文件中使用的码制键名。
func (f Family) String() string {
	switch f {
	case FamilyCode128:
		return "CODE128"
	case FamilyEAN13:
		return "EAN13"
	case FamilyUPCA:
		return "UPCA"
	case FamilyEAN8:
		return "EAN8"
	default:
		return fmt.Sprintf("family(%d)", int(f))
	}
}

// MarshalText 使码制可作为 JSON 键。
func (f Family) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

// ParseFamily 解析码制键名，忽略大小写与 "-"/"_"。
func ParseFamily(s string) (Family, error) {
	key := strings.NewReplacer("-", "", "_", "").Replace(strings.ToUpper(strings.TrimSpace(s)))
	for _, f := range Families() {
		if f.String() == key {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: 未知的条码类型 %q", ErrConfiguration, s)
}

// RecognizeFamily 按条码值推断码制：全数字且长度为 8/12/13 时分别为 EAN-8/UPC-A/EAN-13，其余一律 Code128。
func RecognizeFamily(value string) Family {
	if value == "" {
		return FamilyCode128
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return FamilyCode128
		}
	}
	switch len(value) {
	case 8:
		return FamilyEAN8
	case 12:
		return FamilyUPCA
	case 13:
		return FamilyEAN13
	default:
		return FamilyCode128
	}
}

// FamilyFor 返回记录在该类别下使用的码制：箱标固定为 Code128。
func FamilyFor(c Category, value string) Family {
	if c == CategoryBox {
		return FamilyCode128
	}
	return RecognizeFamily(value)
}

func normalizeName(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
