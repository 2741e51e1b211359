// Package binding 将记录字段插入标签文本模板。
package binding

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ByLCY/barcoder/label"
)

var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Interpolate 将文本中的 ${name} 替换为 fields 中的值。
// 字段不存在时保留原占位符。
func Interpolate(text string, fields map[string]any) string {
	if len(fields) == 0 {
		return text
	}
	return exprPattern.ReplaceAllStringFunc(text, func(match string) string {
		groups := exprPattern.FindStringSubmatch(match)
		if len(groups) < 2 {
			return match
		}
		name := strings.TrimSpace(groups[1])
		if name == "" {
			return match
		}
		val, ok := lookup(fields, name)
		if !ok {
			return match
		}
		return fmt.Sprint(val)
	})
}

// Record 使用记录的字段插值模板。
func Record(text string, rec label.Record) string {
	if rec == nil {
		return text
	}
	return Interpolate(text, rec.Fields())
}

// Placeholders 返回模板中出现的字段名，按出现顺序。
func Placeholders(text string) []string {
	var names []string
	for _, groups := range exprPattern.FindAllStringSubmatch(text, -1) {
		if name := strings.TrimSpace(groups[1]); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// lookup 先精确匹配，再忽略大小写匹配。
func lookup(fields map[string]any, name string) (any, bool) {
	if v, ok := fields[name]; ok {
		return v, true
	}
	for k, v := range fields {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return nil, false
}
