// Package textlayout 提供基于字体度量的折行与宽度测量。
package textlayout

import "strings"

// ReservedSuffix 是折行时为数量后缀预留的占位文本（3 位数量 + 单位）。
// 最后一行之后会追加实际数量，因此测量每一行时都把它算进去。
const ReservedSuffix = " XXXшт."

// DefaultMaxLines 是商品名称最多保留的行数。
const DefaultMaxLines = 3

// Measurer 返回文本在某个字体与字号下的宽度（mm）。*canvas.FontFace 满足该接口。
type Measurer interface {
	TextWidth(s string) float64
}

// MeasureFunc 把普通函数适配为 Measurer。
type MeasureFunc func(s string) float64

func (f MeasureFunc) TextWidth(s string) float64 { return f(s) }

// Wrap 按空白分词并贪心拼行：当前行加上 ReservedSuffix 的宽度必须严格小于 limit。
// 已闭合行数达到 maxLines 时立即返回，剩余单词被丢弃；
// 词用尽后，最后一行只有在加上后缀仍放得下时才保留。
func Wrap(text string, limit float64, m Measurer, maxLines int) []string {
	if maxLines <= 0 {
		maxLines = DefaultMaxLines
	}
	var lines []string
	var current []string
	for _, word := range strings.Fields(text) {
		if fits(join(current, word), limit, m) {
			current = append(current, word)
		} else {
			lines = append(lines, strings.Join(current, " "))
			current = []string{word}
		}
		if len(lines) == maxLines {
			return lines
		}
	}
	if last := strings.Join(current, " "); fits(last, limit, m) {
		lines = append(lines, last)
	}
	return lines
}

func fits(line string, limit float64, m Measurer) bool {
	return m.TextWidth(line+ReservedSuffix) < limit
}

func join(words []string, next string) string {
	if len(words) == 0 {
		return next
	}
	return strings.Join(words, " ") + " " + next
}
