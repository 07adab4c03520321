// Package palette defines the style categories glyphs are painted with and
// the colour tables that map each category to a concrete colour.
package palette

import (
	"sort"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Index is a style category. The token classifier assigns one to every
// glyph; the renderer looks it up in a Palette.
type Index uint8

const (
	Default Index = iota
	Keyword
	Number
	String
	CharLiteral
	Punctuation
	Preprocessor
	Identifier
	KnownIdentifier
	PreprocIdentifier
	Comment
	MultiLineComment
	Background
	Cursor
	Selection
	ErrorMarker
	Breakpoint
	LineNumber
	CurrentLineFill
	CurrentLineFillInactive
	CurrentLineEdge
	Max
)

var indexNames = [Max]string{
	"default", "keyword", "number", "string", "char-literal", "punctuation",
	"preprocessor", "identifier", "known-identifier", "preproc-identifier",
	"comment", "multi-line-comment", "background", "cursor", "selection",
	"error-marker", "breakpoint", "line-number", "current-line-fill",
	"current-line-fill-inactive", "current-line-edge",
}

func (i Index) String() string {
	if i < Max {
		return indexNames[i]
	}
	return "invalid"
}

// Palette is an immutable colour table. Values are passed around by copy.
type Palette struct {
	Name   string
	Colors [Max]tcell.Color
}

func (p Palette) Color(i Index) tcell.Color {
	if i >= Max {
		return p.Colors[Default]
	}
	return p.Colors[i]
}

// Resolve returns the colour a glyph is drawn with. Comment flags win over
// the token category; preprocessor glyphs get the average of the token
// colour and the preprocessor colour.
func (p Palette) Resolve(i Index, comment, blockComment, preproc bool) tcell.Color {
	switch {
	case comment:
		return p.Colors[Comment]
	case blockComment:
		return p.Colors[MultiLineComment]
	case preproc:
		return average(p.Color(i), p.Colors[Preprocessor])
	}
	return p.Color(i)
}

func average(a, b tcell.Color) tcell.Color {
	return fromColorful(toColorful(a).BlendRgb(toColorful(b), 0.5))
}

func toColorful(c tcell.Color) colorful.Color {
	r, g, b := c.RGB()
	if r < 0 {
		return colorful.Color{}
	}
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

func fromColorful(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// fromABGR converts a packed 0xAABBGGRR value. Translucent entries are
// composited over bg since terminal colours carry no alpha channel.
func fromABGR(v uint32, bg colorful.Color) tcell.Color {
	c := colorful.Color{
		R: float64(v&0xff) / 255,
		G: float64(v>>8&0xff) / 255,
		B: float64(v>>16&0xff) / 255,
	}
	if a := float64(v>>24) / 255; a < 1 {
		c = bg.BlendRgb(c, a)
	}
	return fromColorful(c)
}

func build(name string, table [Max]uint32) Palette {
	p := Palette{Name: name}
	bg := colorful.Color{
		R: float64(table[Background]&0xff) / 255,
		G: float64(table[Background]>>8&0xff) / 255,
		B: float64(table[Background]>>16&0xff) / 255,
	}
	for i, v := range table {
		p.Colors[i] = fromABGR(v, bg)
	}
	return p
}

var presets = map[string]func() Palette{
	"dark":       Dark,
	"light":      Light,
	"retro-blue": RetroBlue,
}

// Named returns the preset palette registered under name.
func Named(name string) (Palette, bool) {
	fn, ok := presets[name]
	if !ok {
		return Palette{}, false
	}
	return fn(), true
}

// Names lists the preset palette names in sorted order.
func Names() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func Dark() Palette {
	return build("dark", [Max]uint32{
		0xff7f7f7f, // default
		0xffd69c56, // keyword
		0xff00ff00, // number
		0xff7070e0, // string
		0xff70a0e0, // char literal
		0xffffffff, // punctuation
		0xff408080, // preprocessor
		0xffaaaaaa, // identifier
		0xff9bc64d, // known identifier
		0xffc040a0, // preproc identifier
		0xff206020, // comment
		0xff406020, // multi-line comment
		0xff101010, // background
		0xffe0e0e0, // cursor
		0x80a06020, // selection
		0x800020ff, // error marker
		0x40f08000, // breakpoint
		0xff707000, // line number
		0x40000000, // current line fill
		0x40808080, // current line fill (inactive)
		0x40a0a0a0, // current line edge
	})
}

func Light() Palette {
	return build("light", [Max]uint32{
		0xff7f7f7f,
		0xffff0c06,
		0xff008000,
		0xff2020a0,
		0xff304070,
		0xff000000,
		0xff406060,
		0xff404040,
		0xff606010,
		0xffc040a0,
		0xff205020,
		0xff405020,
		0xffffffff,
		0xff000000,
		0x80600000,
		0xa00010ff,
		0x80f08000,
		0xff505000,
		0x40000000,
		0x40808080,
		0x40000000,
	})
}

func RetroBlue() Palette {
	return build("retro-blue", [Max]uint32{
		0xff00ffff,
		0xffffff00,
		0xff00ff00,
		0xff808000,
		0xff808000,
		0xffffffff,
		0xff008000,
		0xff00ffff,
		0xffffffff,
		0xffff00ff,
		0xff808080,
		0xff404040,
		0xff800000,
		0xff0080ff,
		0x80ffff00,
		0xa00000ff,
		0x80ff8000,
		0xff808000,
		0x40000000,
		0x40808080,
		0x40000000,
	})
}
