// Package highlight classifies buffer glyphs into palette categories. A
// LanguageDefinition supplies the lexical tables and a Tokenizer; the
// Colorizer applies them to a buffer a bounded chunk at a time.
package highlight

import (
	"errors"
	"strings"

	"texteditor/palette"
)

var ErrUnknownLanguage = errors.New("unknown language")

// Identifier carries the hover text a host may show for a known name.
type Identifier struct {
	Declaration string
}

// LanguageDefinition is built once and then only read. Share it freely
// between editors.
type LanguageDefinition struct {
	Name string

	Keywords           map[string]struct{}
	Identifiers        map[string]Identifier
	PreprocIdentifiers map[string]Identifier

	CommentStart, CommentEnd   string
	CommentStart2, CommentEnd2 string
	SingleLineComment          string
	SingleLineComment2         string

	PreprocChar     byte
	CaseSensitive   bool
	AutoIndentation bool

	Tokenizer Tokenizer
}

// NewLanguage returns an empty definition. Set CaseSensitive through this
// constructor since lookup tables are folded as they are filled.
func NewLanguage(name string, caseSensitive bool, tok Tokenizer) *LanguageDefinition {
	return &LanguageDefinition{
		Name:               name,
		Keywords:           make(map[string]struct{}),
		Identifiers:        make(map[string]Identifier),
		PreprocIdentifiers: make(map[string]Identifier),
		PreprocChar:        '#',
		CaseSensitive:      caseSensitive,
		Tokenizer:          tok,
	}
}

func (d *LanguageDefinition) fold(s string) string {
	if d.CaseSensitive {
		return s
	}
	return strings.ToUpper(s)
}

func (d *LanguageDefinition) AddKeywords(words ...string) {
	for _, w := range words {
		if w != "" {
			d.Keywords[d.fold(w)] = struct{}{}
		}
	}
}

func (d *LanguageDefinition) AddIdentifiers(declaration string, names ...string) {
	for _, n := range names {
		d.Identifiers[d.fold(n)] = Identifier{Declaration: declaration}
	}
}

func (d *LanguageDefinition) AddPreprocIdentifiers(declaration string, names ...string) {
	for _, n := range names {
		d.PreprocIdentifiers[d.fold(n)] = Identifier{Declaration: declaration}
	}
}

// Classify refines an identifier token. Inside preprocessor lines only
// preprocessor identifiers are recognised.
func (d *LanguageDefinition) Classify(word string, preproc bool) palette.Index {
	key := d.fold(word)
	if preproc {
		if _, ok := d.PreprocIdentifiers[key]; ok {
			return palette.PreprocIdentifier
		}
		return palette.Identifier
	}
	if _, ok := d.Keywords[key]; ok {
		return palette.Keyword
	}
	if _, ok := d.Identifiers[key]; ok {
		return palette.KnownIdentifier
	}
	if _, ok := d.PreprocIdentifiers[key]; ok {
		return palette.PreprocIdentifier
	}
	return palette.Identifier
}

// Lookup finds the declaration of a known or preprocessor identifier.
func (d *LanguageDefinition) Lookup(word string) (Identifier, bool) {
	key := d.fold(word)
	if id, ok := d.Identifiers[key]; ok {
		return id, true
	}
	id, ok := d.PreprocIdentifiers[key]
	return id, ok
}

func (d *LanguageDefinition) chunkLines() int {
	if d.Tokenizer == nil {
		return regexChunkLines
	}
	return d.Tokenizer.ChunkLines()
}
