package label

import "errors"

// 错误类别。具体错误通过 fmt.Errorf("%w: ...: %w", Err*, cause) 同时包装类别与原因，
// 调用方使用 errors.Is 判断。
var (
	// ErrConfiguration 标签骨架或字体定义错误，启动阶段即终止。
	ErrConfiguration = errors.New("配置错误")
	// ErrData 输入数据格式错误，在批处理之前被过滤。
	ErrData = errors.New("数据错误")
	// ErrDraw 单条记录绘制失败，批处理继续。
	ErrDraw = errors.New("标签绘制失败")
	// ErrSave 文档无法保存，整批失败。
	ErrSave = errors.New("PDF 保存失败")
)
