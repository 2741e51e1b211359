package canvasrenderer

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/barcoder/fonts"
	"github.com/ByLCY/barcoder/label"
	"github.com/ByLCY/barcoder/renderer"
	"github.com/ByLCY/barcoder/textlayout"
)

// Renderer 使用 github.com/tdewolff/canvas 绘制标签，每个实例对应一个输出文档。
// 页面先保存在内存中，Save 时一次性写出 PDF。实例不支持并发调用 Draw。
type Renderer struct {
	path  string
	label label.Label
	mode  label.QuantityMode
	meta  DocumentMeta

	fontMu   sync.Mutex
	families map[string]*canvas.FontFamily
	faces    map[faceKey]*canvas.FontFace

	pages      []*canvas.Canvas
	placements []Placement
}

var (
	_ renderer.Renderer = (*Renderer)(nil)
	_ Measurers         = (*Renderer)(nil)
)

type faceKey struct {
	name string
	size float64
}

// Options 配置渲染器。
type Options struct {
	Path  string
	Label label.Label
	Mode  label.QuantityMode
	Meta  DocumentMeta
}

// DocumentMeta 保存 PDF 元信息。
type DocumentMeta struct {
	Title    string
	Author   string
	Subject  string
	Creator  string
	Keywords string
}

// NewRenderer 校验标签模板并创建渲染器。字体需随后通过 RegisterFonts 注册。
func NewRenderer(opts Options) (*Renderer, error) {
	if opts.Path == "" {
		return nil, fmt.Errorf("%w: 缺少输出路径", label.ErrConfiguration)
	}
	if err := opts.Label.Validate(); err != nil {
		return nil, err
	}
	mode := opts.Mode
	if mode == 0 {
		mode = label.QuantityShort
	}
	meta := opts.Meta
	if meta.Title == "" {
		meta.Title = opts.Label.Name
	}
	if meta.Creator == "" {
		meta.Creator = "barcoder"
	}
	return &Renderer{
		path:     opts.Path,
		label:    opts.Label,
		mode:     mode,
		meta:     meta,
		families: map[string]*canvas.FontFamily{},
		faces:    map[faceKey]*canvas.FontFace{},
	}, nil
}

// RegisterFonts 加载字体文件并按逻辑名注册。同一实例中每个名称只能注册一次。
func (r *Renderer) RegisterFonts(list []label.Font) error {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()
	for _, f := range list {
		if f.Name == "" {
			return fmt.Errorf("%w: 字体缺少名称（%s）", label.ErrConfiguration, f.Path)
		}
		if _, ok := r.families[f.Name]; ok {
			return fmt.Errorf("%w: 字体 %s 重复注册", label.ErrConfiguration, f.Name)
		}
		data, err := fonts.Load(f.Path)
		if err != nil {
			return fmt.Errorf("%w: %w", label.ErrConfiguration, err)
		}
		family := canvas.NewFontFamily(f.Name)
		if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
			return fmt.Errorf("%w: 加载字体 %s 失败: %w", label.ErrConfiguration, f.Name, err)
		}
		r.families[f.Name] = family
	}
	return nil
}

// Draw 绘制一条记录：数量模式为 full 时按记录数量绘制多页，否则绘制一页。
// 任何失败都包装为 label.ErrDraw；失败前已完成的页面保留在文档中。
func (r *Renderer) Draw(rec label.Record) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %s: %v", label.ErrDraw, label.Describe(rec), p)
		}
	}()
	if rec == nil {
		return fmt.Errorf("%w: 记录为空", label.ErrDraw)
	}
	if err := r.drawLabel(rec); err != nil {
		return fmt.Errorf("%w: %s: %w", label.ErrDraw, label.Describe(rec), err)
	}
	return nil
}

func (r *Renderer) drawLabel(rec label.Record) error {
	base := rec.Base()
	fam := label.FamilyFor(r.label.Category, base.Barcode)
	layout, ok := r.label.Layout(fam)
	if !ok {
		return fmt.Errorf("标签 %s 没有 %s 骨架", r.label.Name, fam)
	}
	g := layout.Base()

	copies := r.mode.Copies(base.Quantity)
	if copies < 0 {
		return fmt.Errorf("数量无效: %d", base.Quantity)
	}

	sym, err := encodeSymbol(fam, base.Barcode, g.BarWidth, r.label.Size.Height*g.BarHeightRatio, g.Font)
	if err != nil {
		return err
	}
	for i := 0; i < copies; i++ {
		pl, err := plan(r.label, layout, rec, sym, r)
		if err != nil {
			return err
		}
		pl.Page = len(r.pages) + 1

		c := canvas.New(r.label.Size.Width, r.label.Size.Height)
		ctx := canvas.NewContext(c) // 默认坐标系原点在左下角，y 轴向上
		if err := r.paint(ctx, pl); err != nil {
			return err
		}
		r.pages = append(r.pages, c)
		r.placements = append(r.placements, pl)
	}
	return nil
}

func (r *Renderer) paint(ctx *canvas.Context, pl Placement) error {
	var digits *canvas.FontFace
	if pl.Symbol.TextHeight > 0 {
		face, err := r.face(pl.Symbol.Font)
		if err != nil {
			return err
		}
		digits = face
	}
	drawSymbol(ctx, pl.Symbol, pl.BarcodeX, pl.BarcodeY, digits)

	for _, run := range pl.Texts {
		face, err := r.face(run.Font)
		if err != nil {
			return err
		}
		align := canvas.Left
		if run.Align == AlignCenter {
			align = canvas.Center
		}
		ctx.DrawText(run.X, run.Y, canvas.NewTextLine(face, run.Content, align))
	}
	return nil
}

// Save 将已绘制的页面写入 PDF。先写入同目录下的临时文件，成功后再重命名为目标文件。
// 没有页面时写出只含一张空白页的文档；ErrSave 只表示写入失败。
func (r *Renderer) Save() error {
	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: 创建输出目录失败: %w", label.ErrSave, err)
	}
	tmp, err := os.CreateTemp(dir, ".barcoder-*.pdf")
	if err != nil {
		return fmt.Errorf("%w: 创建临时文件失败: %w", label.ErrSave, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	w, h := r.label.Size.Width, r.label.Size.Height
	writer := pdf.New(tmp, w, h, nil)
	writer.SetInfo(r.meta.Title, r.meta.Subject, r.meta.Keywords, r.meta.Author, r.meta.Creator)
	for i, c := range r.pages {
		if i > 0 {
			writer.NewPage(w, h)
		}
		c.RenderTo(writer)
	}
	if err := writer.Close(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: 写入 PDF 失败: %w", label.ErrSave, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %w", label.ErrSave, err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("%w: 写入 PDF 文件失败: %w", label.ErrSave, err)
	}
	return nil
}

// PageCount 返回已绘制的页数。
func (r *Renderer) PageCount() int { return len(r.pages) }

// Placements 返回每一页的布局副本。
func (r *Renderer) Placements() []Placement {
	out := make([]Placement, len(r.placements))
	copy(out, r.placements)
	return out
}

// Measurer 实现 Measurers，返回字体在其字号下的字面（宽度单位 mm）。
func (r *Renderer) Measurer(f label.Font) (textlayout.Measurer, error) {
	face, err := r.face(f)
	if err != nil {
		return nil, err
	}
	return face, nil
}

func (r *Renderer) face(f label.Font) (*canvas.FontFace, error) {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()
	key := faceKey{name: f.Name, size: f.Size}
	if face, ok := r.faces[key]; ok {
		return face, nil
	}
	family, ok := r.families[f.Name]
	if !ok {
		return nil, fmt.Errorf("字体 %s 未注册", f.Name)
	}
	face := family.Face(f.Size, canvas.Black, canvas.FontRegular, canvas.FontNormal)
	r.faces[key] = face
	return face, nil
}
