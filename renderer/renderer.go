package renderer

import "github.com/ByLCY/barcoder/label"

// Renderer 将记录绘制为标签页面，并在最后一次性保存为文档。
// Draw 的任何失败都包装为 label.ErrDraw，Save 的失败包装为 label.ErrSave。
type Renderer interface {
	Draw(rec label.Record) error
	Save() error
}
