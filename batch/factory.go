package batch

import (
	"github.com/ByLCY/barcoder/label"
	"github.com/ByLCY/barcoder/renderer"
	canvasrenderer "github.com/ByLCY/barcoder/renderer/canvas"
)

// DefaultFactory 创建 canvas 渲染器并注册标签用到的字体与请求中的字体。
func DefaultFactory(req Request) (renderer.Renderer, error) {
	return CanvasFactory(canvasrenderer.DocumentMeta{}, nil)(req)
}

// CanvasFactory 返回使用 meta 作为文档元信息的 canvas 渲染器工厂。
// Subject 为空时使用标签类别；created 非空时在渲染器就绪后被调用，便于调用方保留引用。
func CanvasFactory(meta canvasrenderer.DocumentMeta, created func(*canvasrenderer.Renderer)) Factory {
	return func(req Request) (renderer.Renderer, error) {
		m := meta
		if m.Subject == "" {
			m.Subject = req.Category.Title()
		}
		r, err := canvasrenderer.NewRenderer(canvasrenderer.Options{
			Path:  req.Path,
			Label: req.Label,
			Mode:  req.Mode,
			Meta:  m,
		})
		if err != nil {
			return nil, err
		}
		if err := r.RegisterFonts(UniqueFonts(req.Label.Fonts(), req.Fonts)); err != nil {
			return nil, err
		}
		if created != nil {
			created(r)
		}
		return r, nil
	}
}

// UniqueFonts 合并字体列表并按名称去重，先出现的优先。
// 字体目录扫描不去重，同名字体在这里解决。
func UniqueFonts(lists ...[]label.Font) []label.Font {
	seen := map[string]struct{}{}
	var out []label.Font
	for _, list := range lists {
		for _, f := range list {
			if f.Name == "" {
				continue
			}
			if _, ok := seen[f.Name]; ok {
				continue
			}
			seen[f.Name] = struct{}{}
			out = append(out, f)
		}
	}
	return out
}
