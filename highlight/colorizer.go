package highlight

import (
	"math"

	"go.uber.org/zap"

	"texteditor/buffer"
	"texteditor/palette"
)

// Colorizer keeps glyph styles of a buffer up to date. Edits widen a dirty
// line range through Colorize; each Advance call then re-scans comments if
// needed and re-tokenizes one chunk of the range.
type Colorizer struct {
	buf  *buffer.Buffer
	lang *LanguageDefinition
	log  *zap.Logger

	Enabled bool

	rangeMin, rangeMax int
	checkComments      bool
	scratch            []byte
}

func NewColorizer(b *buffer.Buffer, lang *LanguageDefinition, log *zap.Logger) *Colorizer {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Colorizer{
		buf:      b,
		lang:     lang,
		log:      log,
		Enabled:  true,
		rangeMin: math.MaxInt,
	}
	c.Colorize(0, -1)
	return c
}

func (c *Colorizer) Language() *LanguageDefinition { return c.lang }

// SetLanguage swaps the definition and schedules the whole buffer.
func (c *Colorizer) SetLanguage(d *LanguageDefinition) {
	c.lang = d
	c.Colorize(0, -1)
}

// Colorize marks lines [from, from+lines) dirty. A negative count extends
// to the end of the buffer. The comment scan is always re-armed.
func (c *Colorizer) Colorize(from, lines int) {
	n := len(c.buf.Lines)
	to := n
	if lines >= 0 {
		to = min(n, from+lines)
	}
	c.rangeMin = max(0, min(c.rangeMin, from))
	c.rangeMax = max(c.rangeMin, max(c.rangeMax, to))
	c.checkComments = true
}

// Range returns the pending dirty range. It is empty when min >= max.
func (c *Colorizer) Range() (int, int) { return c.rangeMin, c.rangeMax }

func (c *Colorizer) Pending() bool {
	return c.checkComments || c.rangeMin < c.rangeMax
}

// Advance runs one cooperative step.
func (c *Colorizer) Advance() {
	if !c.Enabled || c.lang == nil || len(c.buf.Lines) == 0 {
		return
	}
	if c.checkComments {
		ScanComments(c.buf, c.lang)
		c.checkComments = false
		c.log.Debug("comment scan", zap.Int("lines", len(c.buf.Lines)))
	}
	if c.rangeMin >= c.rangeMax {
		return
	}
	to := min(c.rangeMin+c.lang.chunkLines(), c.rangeMax)
	from := c.rangeMin
	c.ColorizeRange(from, to)
	c.rangeMin = to
	if c.rangeMin >= c.rangeMax {
		c.rangeMin = math.MaxInt
		c.rangeMax = 0
	}
	c.log.Debug("colorized chunk",
		zap.Int("from", from),
		zap.Int("to", to),
		zap.Int("remaining", max(0, c.rangeMax-c.rangeMin)))
}

// Flush advances until nothing is pending.
func (c *Colorizer) Flush() {
	if !c.Enabled || c.lang == nil {
		return
	}
	for c.Pending() {
		c.Advance()
	}
}

// ColorizeRange re-tokenizes lines [from, to) immediately.
func (c *Colorizer) ColorizeRange(from, to int) {
	to = max(0, min(len(c.buf.Lines), to))
	for i := max(0, from); i < to; i++ {
		c.colorizeLine(c.buf.Lines[i])
	}
}

func (c *Colorizer) colorizeLine(line buffer.Line) {
	if len(line) == 0 {
		return
	}
	text := c.scratch[:0]
	for i := range line {
		text = append(text, line[i].Char)
		line[i].Color = palette.Default
	}
	c.scratch = text

	tok := c.lang.Tokenizer
	if tok == nil {
		return
	}
	for pos := 0; pos < len(text); {
		begin, end, cat, ok := tok.Next(text, pos)
		if !ok || end <= pos {
			pos++
			continue
		}
		begin = max(begin, pos)
		if cat == palette.Identifier && !line[begin].Comment && !line[begin].BlockComment {
			cat = c.lang.Classify(string(text[begin:end]), line[begin].Preprocessor)
		}
		for k := begin; k < end; k++ {
			line[k].Color = cat
		}
		pos = end
	}
}
