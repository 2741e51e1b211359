package layout

import (
	"errors"
	"fmt"

	"github.com/ByLCY/barcoder/label"
)

// BuildOptions 配置骨架构建：可用字体与期望类别。
type BuildOptions struct {
	Fonts []label.Font
	// Category 非零时要求标签属于该类别（目录决定类别）。
	Category label.Category
	// Source 为来源文件名，只用于错误信息。
	Source string
}

func (o BuildOptions) errorf(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if o.Source != "" {
		msg = o.Source + ": " + msg
	}
	return fmt.Errorf("%w: %s", label.ErrConfiguration, msg)
}

// wrap 为已包含错误类别的错误补充来源文件名。
func (o BuildOptions) wrap(err error) error {
	if !errors.Is(err, label.ErrConfiguration) {
		return o.errorf("%v", err)
	}
	if o.Source == "" {
		return err
	}
	return fmt.Errorf("%s: %w", o.Source, err)
}
