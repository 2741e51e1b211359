package label

// 该文件定义标签模板（尺寸、条码族与对应骨架参数），供配置加载、渲染与批处理共用。

import "fmt"

// Category 标签类别：商品标签或箱标。
type Category int

const (
	CategoryProduct Category = iota + 1
	CategoryBox
)

func (c Category) String() string {
	switch c {
	case CategoryProduct:
		return "product"
	case CategoryBox:
		return "box"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// Title 返回类别的展示名称。
func (c Category) Title() string {
	switch c {
	case CategoryProduct:
		return "Товарная этикетка"
	case CategoryBox:
		return "Маркировка коробов"
	default:
		return c.String()
	}
}

// Categories 按固定顺序返回所有类别。
func Categories() []Category { return []Category{CategoryProduct, CategoryBox} }

// ParseCategory 解析 "product"/"box"（大小写不敏感）。
func ParseCategory(s string) (Category, error) {
	switch normalizeName(s) {
	case "product":
		return CategoryProduct, nil
	case "box":
		return CategoryBox, nil
	}
	return 0, fmt.Errorf("%w: 未知的标签类别 %q", ErrConfiguration, s)
}

// QuantityMode 决定每条记录绘制一次还是按数量绘制多次。
type QuantityMode int

const (
	QuantityShort QuantityMode = iota + 1
	QuantityFull
)

func (m QuantityMode) String() string {
	switch m {
	case QuantityShort:
		return "short"
	case QuantityFull:
		return "full"
	default:
		return fmt.Sprintf("quantity-mode(%d)", int(m))
	}
}

// Title 返回数量模式的展示名称。
func (m QuantityMode) Title() string {
	switch m {
	case QuantityShort:
		return "Печать без учета кол-ва наименования"
	case QuantityFull:
		return "Печать с учетом кол-ва наименований (По файлу)"
	default:
		return m.String()
	}
}

// QuantityModes 按固定顺序返回所有数量模式。
func QuantityModes() []QuantityMode { return []QuantityMode{QuantityShort, QuantityFull} }

// ParseQuantityMode 解析 "short"/"full"。
func ParseQuantityMode(s string) (QuantityMode, error) {
	switch normalizeName(s) {
	case "short":
		return QuantityShort, nil
	case "full":
		return QuantityFull, nil
	}
	return 0, fmt.Errorf("%w: 未知的数量模式 %q", ErrConfiguration, s)
}

// Copies 返回记录在该模式下需要绘制的份数。
func (m QuantityMode) Copies(quantity int) int {
	if m == QuantityFull {
		return quantity
	}
	return 1
}

// Size 标签物理尺寸（mm）。
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Font 描述可用字体：逻辑名、文件路径（或 builtin:<name>）与字号（pt）。
type Font struct {
	Name string  `json:"name"`
	Path string  `json:"path"`
	Size float64 `json:"size"`
}

// WithSize 返回同一字体的另一字号副本。
func (f Font) WithSize(size float64) Font {
	f.Size = size
	return f
}

// SizeMM 返回字号对应的毫米高度。
func (f Font) SizeMM() float64 { return f.Size * PtToMm }

// Geometry 是所有骨架共有的绘制参数，长度单位均为 mm。
type Geometry struct {
	Font           Font    `json:"font"`
	BarWidth       float64 `json:"barWidth"`
	BarHeightRatio float64 `json:"barHeightRatio"`
	Margin         float64 `json:"margin"`
}

// Base 返回共有参数，ProductLayout 与 BoxLayout 通过嵌入获得该方法。
func (g Geometry) Base() Geometry { return g }

// Layout 是某条码族下的标签骨架，只有 ProductLayout 与 BoxLayout 两种实现。
type Layout interface {
	Base() Geometry
	layout()
}

// ProductLayout 商品标签骨架。
type ProductLayout struct {
	Geometry
}

// BoxLayout 箱标骨架，ValueFont 用于打印条码数值。
type BoxLayout struct {
	Geometry
	ValueFont Font `json:"valueFont"`
}

func (ProductLayout) layout() {}
func (BoxLayout) layout()     {}

// Captions 是标签上的文本模板，占位符由 binding 包替换。
type Captions struct {
	SKU      string `json:"sku" yaml:"sku"`
	Quantity string `json:"quantity" yaml:"quantity"`
	Footer   string `json:"footer" yaml:"footer"`
}

// DefaultCaptions 返回默认文本模板。
func DefaultCaptions() Captions {
	return Captions{
		SKU:      "Арт.:${sku}",
		Quantity: " ${quantity} шт.",
		Footer:   "${quantity} шт. Арт.:${sku}",
	}
}

// WithDefaults 为空模板填充默认值。
func (c Captions) WithDefaults() Captions {
	def := DefaultCaptions()
	if c.SKU == "" {
		c.SKU = def.SKU
	}
	if c.Quantity == "" {
		c.Quantity = def.Quantity
	}
	if c.Footer == "" {
		c.Footer = def.Footer
	}
	return c
}

// Label 是一个命名的标签模板。加载后只读。
type Label struct {
	Name     string            `json:"name"`
	Category Category          `json:"category"`
	Size     Size              `json:"size"`
	Layouts  map[Family]Layout `json:"-"`
	Captions Captions          `json:"captions"`
}

// Layout 返回指定条码族的骨架。
func (l Label) Layout(f Family) (Layout, bool) {
	layout, ok := l.Layouts[f]
	return layout, ok
}

// Fonts 返回骨架引用的全部字体（按出现顺序去重，键为 name+path）。
func (l Label) Fonts() []Font {
	var out []Font
	seen := map[string]bool{}
	add := func(f Font) {
		key := f.Name + "|" + f.Path
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, f)
	}
	for _, fam := range Families() {
		layout, ok := l.Layouts[fam]
		if !ok {
			continue
		}
		add(layout.Base().Font)
		if box, ok := layout.(BoxLayout); ok {
			add(box.ValueFont)
		}
	}
	return out
}

// Validate 检查模板完整性：尺寸为正、骨架类型与类别一致、箱标必须提供 Code128 骨架。
func (l Label) Validate() error {
	if l.Name == "" {
		return fmt.Errorf("%w: 标签缺少名称", ErrConfiguration)
	}
	if l.Size.Width <= 0 || l.Size.Height <= 0 {
		return fmt.Errorf("%w: 标签 %s 尺寸无效 %gx%g", ErrConfiguration, l.Name, l.Size.Width, l.Size.Height)
	}
	if len(l.Layouts) == 0 {
		return fmt.Errorf("%w: 标签 %s 没有任何骨架", ErrConfiguration, l.Name)
	}
	for fam, layout := range l.Layouts {
		g := layout.Base()
		if g.BarWidth <= 0 || g.BarHeightRatio <= 0 || g.Margin < 0 || g.Font.Size <= 0 {
			return fmt.Errorf("%w: 标签 %s 的 %s 骨架参数无效", ErrConfiguration, l.Name, fam)
		}
		switch layout.(type) {
		case ProductLayout:
			if l.Category != CategoryProduct {
				return fmt.Errorf("%w: 标签 %s 的 %s 骨架与类别 %s 不符", ErrConfiguration, l.Name, fam, l.Category)
			}
		case BoxLayout:
			if l.Category != CategoryBox {
				return fmt.Errorf("%w: 标签 %s 的 %s 骨架与类别 %s 不符", ErrConfiguration, l.Name, fam, l.Category)
			}
		}
	}
	if l.Category == CategoryBox {
		if _, ok := l.Layouts[FamilyCode128]; !ok {
			return fmt.Errorf("%w: 箱标 %s 缺少 %s 骨架", ErrConfiguration, l.Name, FamilyCode128)
		}
	}
	return nil
}
