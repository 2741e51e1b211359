// Package dsl 解析 .label 标签骨架文件。
//
//	label "58x40" product 58mm 40mm {
//	  caption-sku: "Арт.:${sku}"
//	  layout CODE128 {
//	    font: "GoRegular" 9
//	    bar-width: 0.33mm
//	    bar-height-ratio: 0.45
//	    margin: 2mm
//	  }
//	}
package dsl

import (
	"fmt"
	"io"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	dslLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		{Name: "Number", Pattern: `(?:\d+\.\d+|\d+)(?:pt|mm|cm|in)?`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Symbol", Pattern: `[][(),.=+\-*/%<>!?;:]`},
		{Name: "LBrace", Pattern: `{`},
		{Name: "RBrace", Pattern: `}`},
	})

	tokenNames       = invertSymbols(dslLexer.Symbols())
	newlineTokenType = mustTokenType("Newline")
	lbraceTokenType  = mustTokenType("LBrace")
	rbraceTokenType  = mustTokenType("RBrace")
	symbolTokenType  = mustTokenType("Symbol")
	stringTokenType  = mustTokenType("String")

	documentParser = participle.MustBuild[Document](
		participle.Lexer(dslLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment", "HashComment"),
	)
)

// Document 是一个 .label 文件，可包含多个标签。
type Document struct {
	Labels []*LabelDecl `parser:"Newline* ( @@ Newline* )*"`
}

// LabelDecl 声明一个标签: 名称、类别与物理尺寸。
type LabelDecl struct {
	Pos      lexer.Position `parser:"" json:"-"`
	Name     StringLiteral  `parser:"'label' @String"`
	Category string         `parser:"@Ident"`
	Width    string         `parser:"@Number"`
	Height   string         `parser:"@Number"`
	Entries  []*Entry       `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// Entry 是标签块中的一项：条码族骨架或属性。
type Entry struct {
	Layout   *LayoutDecl `parser:"  @@"`
	Property *Property   `parser:"| @@"`
}

// LayoutDecl 描述某条码族的骨架参数。
type LayoutDecl struct {
	Pos        lexer.Position `parser:"" json:"-"`
	Family     string         `parser:"'layout' @Ident"`
	Properties []*Property    `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// Property 使用冒号语法 (key: value...)。
type Property struct {
	Pos    lexer.Position `parser:"" json:"-"`
	Key    string         `parser:"@Ident ':'"`
	Values []*Lexeme      `parser:"@@+"`
}

// Layouts 返回标签块中的骨架声明。
func (l *LabelDecl) Layouts() []*LayoutDecl {
	var out []*LayoutDecl
	for _, e := range l.Entries {
		if e.Layout != nil {
			out = append(out, e.Layout)
		}
	}
	return out
}

// Properties 返回标签块中的属性。
func (l *LabelDecl) Properties() []*Property {
	var out []*Property
	for _, e := range l.Entries {
		if e.Property != nil {
			out = append(out, e.Property)
		}
	}
	return out
}

// Lexeme captures a single lexical token.
type Lexeme struct {
	Type  string         `json:"type"`
	Value string         `json:"value"`
	Raw   string         `json:"raw"`
	Pos   lexer.Position `json:"-"`
}

// Parse implements participle.Parseable so Lexeme can act as a grammar atom.
func (l *Lexeme) Parse(lex *lexer.PeekingLexer) error {
	tok := lex.Peek()
	if shouldStopArg(tok) {
		return participle.NextMatch
	}

	lexeme, err := consumeLexeme(lex)
	if err != nil {
		return err
	}
	*l = *lexeme
	return nil
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Parse parses DSL content from an io.Reader. name 用于错误信息中的位置。
func Parse(name string, r io.Reader) (*Document, error) {
	return documentParser.Parse(name, r)
}

// ParseString parses DSL content from a string.
func ParseString(input string) (*Document, error) {
	return documentParser.ParseString("", input)
}

// consumeLexeme reads the next non-terminating token and converts it to a Lexeme.
func consumeLexeme(lex *lexer.PeekingLexer) (*Lexeme, error) {
	tok := lex.Next()
	if tok.EOF() {
		return nil, participle.NextMatch
	}

	lexeme, err := newLexeme(*tok)
	if err != nil {
		return nil, err
	}
	return &lexeme, nil
}

func shouldStopArg(tok *lexer.Token) bool {
	if tok == nil || tok.EOF() {
		return true
	}
	switch tok.Type {
	case newlineTokenType, rbraceTokenType, lbraceTokenType:
		return true
	case symbolTokenType:
		return tok.Value == ";"
	default:
		return false
	}
}

func newLexeme(tok lexer.Token) (Lexeme, error) {
	name, ok := tokenNames[tok.Type]
	if !ok {
		name = fmt.Sprintf("#%d", tok.Type)
	}
	val := tok.Value
	if tok.Type == stringTokenType {
		unquoted, err := strconv.Unquote(tok.Value)
		if err != nil {
			return Lexeme{}, err
		}
		val = unquoted
	}

	return Lexeme{
		Type:  name,
		Value: val,
		Raw:   tok.Value,
		Pos:   tok.Pos,
	}, nil
}

func invertSymbols(symbols map[string]lexer.TokenType) map[lexer.TokenType]string {
	out := make(map[lexer.TokenType]string, len(symbols))
	for name, tt := range symbols {
		out[tt] = name
	}
	return out
}

func mustTokenType(name string) lexer.TokenType {
	symbols := dslLexer.Symbols()
	tt, ok := symbols[name]
	if !ok {
		panic(fmt.Sprintf("token %s not defined", name))
	}
	return tt
}
