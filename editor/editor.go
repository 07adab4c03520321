// Package editor is an embeddable code editing engine. An Editor owns a
// glyph buffer, its undo log and colorizer, and turns host intents into
// edits and abstract draw commands. It is not safe for concurrent use; a
// host drives it from one goroutine, once per interaction cycle.
package editor

import (
	"go.uber.org/zap"

	"texteditor/buffer"
	"texteditor/clipboardx"
	"texteditor/config"
	"texteditor/highlight"
	"texteditor/palette"
)

type SelectionMode int

const (
	Normal SelectionMode = iota
	Word
	Line
)

func (m SelectionMode) String() string {
	switch m {
	case Word:
		return "word"
	case Line:
		return "line"
	}
	return "normal"
}

type Editor struct {
	buf       *buffer.Buffer
	undo      *buffer.UndoLog
	colorizer *highlight.Colorizer
	clipboard clipboardx.Clipboard
	measure   Measurer
	log       *zap.Logger
	palette   palette.Palette

	state buffer.EditorState
	// Raw drag anchors. state.Selection is always their normalized form.
	interactiveStart, interactiveEnd buffer.Coordinates
	selectionMode                    SelectionMode

	overwrite       bool
	expandTabs      bool
	showWhitespace  bool
	showLineNumbers bool
	lineSpacing     float64
	leftMargin      float64

	cursorPositionChanged bool
	scrollToCursor        bool
	scrollToTop           bool

	// View is the host-owned viewport. Layout and EnsureCursorVisible
	// adjust its scroll offsets.
	View Viewport
}

type options struct {
	log        *zap.Logger
	clipboard  clipboardx.Clipboard
	measure    Measurer
	lang       *highlight.LanguageDefinition
	palette    *palette.Palette
	leftMargin float64
}

type Option func(*options)

func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.log = l }
}

func WithClipboard(c clipboardx.Clipboard) Option {
	return func(o *options) { o.clipboard = c }
}

func WithMeasurer(m Measurer) Option {
	return func(o *options) { o.measure = m }
}

// WithLanguage overrides the language named in the config.
func WithLanguage(d *highlight.LanguageDefinition) Option {
	return func(o *options) { o.lang = d }
}

// WithPalette overrides the palette named in the config.
func WithPalette(p palette.Palette) Option {
	return func(o *options) { o.palette = &p }
}

// WithLeftMargin sets the gap between line numbers and text.
func WithLeftMargin(m float64) Option {
	return func(o *options) { o.leftMargin = max(0, m) }
}

// New builds an editor holding one empty line. A nil cfg means
// config.Default().
func New(cfg *config.Config, opts ...Option) *Editor {
	if cfg == nil {
		cfg = config.Default()
	}
	o := options{leftMargin: 10}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = zap.NewNop()
	}
	if o.clipboard == nil {
		o.clipboard = &clipboardx.Memory{}
	}
	if o.measure == nil {
		o.measure = MonospaceMeasurer{CellWidth: 1}
	}
	if o.lang == nil {
		o.lang = languageFor(cfg.Language, o.log)
	}
	pal := cfg.ColorPalette()
	if o.palette != nil {
		pal = *o.palette
	}

	e := &Editor{
		buf:             buffer.New(cfg.TabSize),
		undo:            buffer.NewUndoLog(cfg.UndoLimit),
		clipboard:       o.clipboard,
		measure:         o.measure,
		log:             o.log,
		palette:         pal,
		showWhitespace:  cfg.ShowWhitespace,
		showLineNumbers: cfg.ShowLineNumbers,
		lineSpacing:     lineSpacing(cfg.LineSpacing),
		leftMargin:      o.leftMargin,
		View:            Viewport{Width: 80, Height: 24, LineHeight: 1, Focused: true},
	}
	e.buf.ReadOnly = cfg.ReadOnly
	e.colorizer = highlight.NewColorizer(e.buf, o.lang, o.log)
	e.colorizer.Enabled = cfg.ColorizerEnabled
	e.buf.OnChange = e.colorizer.Colorize
	return e
}

func languageFor(name string, log *zap.Logger) *highlight.LanguageDefinition {
	if name != "" {
		d, err := highlight.Preset(name)
		if err == nil {
			return d
		}
		log.Warn("language not available, using C++", zap.String("language", name), zap.Error(err))
	}
	return highlight.CPlusPlus()
}

func lineSpacing(v float64) float64 {
	if v <= 0 {
		return 1
	}
	return v
}

// ApplyConfig maps recognised options onto a running editor. Text, undo
// history and markers are kept.
func (e *Editor) ApplyConfig(cfg *config.Config) {
	e.SetTabSize(cfg.TabSize)
	e.SetReadOnly(cfg.ReadOnly)
	e.expandTabs = cfg.ExpandTabs
	e.SetColorizerEnabled(cfg.ColorizerEnabled)
	e.showWhitespace = cfg.ShowWhitespace
	e.showLineNumbers = cfg.ShowLineNumbers
	e.lineSpacing = lineSpacing(cfg.LineSpacing)
	e.palette = cfg.ColorPalette()
	e.undo.SetLimit(cfg.UndoLimit)
	if cfg.Language != "" {
		if d, err := highlight.Preset(cfg.Language); err == nil {
			if cur := e.LanguageDefinition(); cur == nil || cur.Name != d.Name {
				e.SetLanguageDefinition(d)
			}
		} else {
			e.log.Warn("language not available", zap.String("language", cfg.Language), zap.Error(err))
		}
	}
}

// Update runs one interaction cycle: change flags are reset, intents are
// applied in order and the colorizer gets one step of work.
func (e *Editor) Update(intents ...Intent) {
	e.buf.TextChanged = false
	e.cursorPositionChanged = false
	for _, in := range intents {
		e.HandleIntent(in)
	}
	e.colorizer.Advance()
}

func (e *Editor) IsTextChanged() bool           { return e.buf.TextChanged }
func (e *Editor) IsCursorPositionChanged() bool { return e.cursorPositionChanged }

// ColorizerPending reports whether further Update calls would still
// recolor something.
func (e *Editor) ColorizerPending() bool {
	return e.colorizer.Enabled && e.colorizer.Language() != nil && e.colorizer.Pending()
}

func (e *Editor) SetLanguageDefinition(d *highlight.LanguageDefinition) {
	e.colorizer.SetLanguage(d)
	if d != nil {
		e.log.Debug("language changed", zap.String("language", d.Name))
	}
}

func (e *Editor) LanguageDefinition() *highlight.LanguageDefinition {
	return e.colorizer.Language()
}

func (e *Editor) SetPalette(p palette.Palette) { e.palette = p }
func (e *Editor) Palette() palette.Palette     { return e.palette }

func (e *Editor) SetTabSize(n int) { e.buf.SetTabSize(n) }
func (e *Editor) TabSize() int     { return e.buf.TabSize() }

func (e *Editor) SetReadOnly(v bool) { e.buf.ReadOnly = v }
func (e *Editor) IsReadOnly() bool   { return e.buf.ReadOnly }

// SetExpandTabs makes the tab key and selection indent insert spaces.
func (e *Editor) SetExpandTabs(v bool) { e.expandTabs = v }
func (e *Editor) IsExpandingTabs() bool { return e.expandTabs }

func (e *Editor) SetOverwrite(v bool) { e.overwrite = v }
func (e *Editor) IsOverwrite() bool   { return e.overwrite }

// SetColorizerEnabled switches style painting. While disabled, glyphs
// draw in the default colour and word boundaries fall back to whitespace.
func (e *Editor) SetColorizerEnabled(v bool) { e.colorizer.Enabled = v }
func (e *Editor) IsColorizerEnabled() bool   { return e.colorizer.Enabled }

func (e *Editor) SetShowWhitespace(v bool) { e.showWhitespace = v }
func (e *Editor) IsShowingWhitespace() bool { return e.showWhitespace }

func (e *Editor) SetShowLineNumbers(v bool) { e.showLineNumbers = v }

func (e *Editor) SelectionMode() SelectionMode { return e.selectionMode }

// Buffer exposes the underlying storage for read access. Mutating it
// directly bypasses the undo log.
func (e *Editor) Buffer() *buffer.Buffer { return e.buf }
