package highlight

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"texteditor/palette"
)

type chromaToken struct {
	begin, end int
	cat        palette.Index
}

// ChromaTokenizer drives a chroma lexer one line at a time. The lexer sees
// no context from neighbouring lines; the comment scanner covers the
// constructs that span lines.
type ChromaTokenizer struct {
	lexer chroma.Lexer

	line   string
	tokens []chromaToken
}

func NewChromaTokenizer(lexer chroma.Lexer) *ChromaTokenizer {
	return &ChromaTokenizer{lexer: chroma.Coalesce(lexer)}
}

func (t *ChromaTokenizer) Next(text []byte, pos int) (int, int, palette.Index, bool) {
	if pos == 0 || string(text) != t.line {
		t.tokenise(text)
	}
	for _, tok := range t.tokens {
		if tok.end <= pos {
			continue
		}
		return max(tok.begin, pos), tok.end, tok.cat, true
	}
	return 0, 0, palette.Default, false
}

func (t *ChromaTokenizer) tokenise(text []byte) {
	t.line = string(text)
	t.tokens = t.tokens[:0]
	iter, err := t.lexer.Tokenise(nil, t.line)
	if err != nil {
		return
	}
	off := 0
	for _, tok := range iter.Tokens() {
		end := min(off+len(tok.Value), len(text))
		if end > off {
			t.tokens = append(t.tokens, chromaToken{begin: off, end: end, cat: tokenCategory(tok.Type)})
		}
		off = end
	}
}

func (*ChromaTokenizer) ChunkLines() int { return regexChunkLines }

func tokenCategory(t chroma.TokenType) palette.Index {
	switch {
	case t.InCategory(chroma.Keyword):
		return palette.Keyword

	case t == chroma.NameBuiltin || t == chroma.NameBuiltinPseudo:
		return palette.KnownIdentifier

	case t == chroma.CommentPreproc || t == chroma.CommentPreprocFile:
		return palette.Preprocessor

	case t.InCategory(chroma.Comment):
		return palette.Comment

	case t == chroma.LiteralStringChar:
		return palette.CharLiteral

	case t.InSubCategory(chroma.LiteralString):
		return palette.String

	case t.InSubCategory(chroma.LiteralNumber):
		return palette.Number

	case t.InCategory(chroma.Name):
		return palette.Identifier

	case t.InCategory(chroma.Operator) || t == chroma.Punctuation:
		return palette.Punctuation

	default:
		return palette.Default
	}
}

// ChromaLanguage builds a definition around the chroma lexer registered
// under name. Comment markers come from a small table of well known
// syntaxes; other languages still get chroma's own comment tokens.
func ChromaLanguage(name string) (*LanguageDefinition, error) {
	lexer := lexers.Get(name)
	if lexer == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, name)
	}
	cfg := lexer.Config()
	d := NewLanguage(cfg.Name, !cfg.CaseInsensitive, NewChromaTokenizer(lexer))
	if m, ok := chromaComments[strings.ToLower(cfg.Name)]; ok {
		d.SingleLineComment = m.single
		d.CommentStart, d.CommentEnd = m.start, m.end
	}
	d.AutoIndentation = true
	return d, nil
}

var chromaComments = map[string]struct{ single, start, end string }{
	"go":         {"//", "/*", "*/"},
	"rust":       {"//", "/*", "*/"},
	"java":       {"//", "/*", "*/"},
	"javascript": {"//", "/*", "*/"},
	"typescript": {"//", "/*", "*/"},
	"python":     {"#", "", ""},
	"bash":       {"#", "", ""},
	"yaml":       {"#", "", ""},
	"toml":       {"#", "", ""},
}

var presetExtensions = map[string]string{
	".c":   "c",
	".h":   "c",
	".cc":  "c++",
	".cpp": "c++",
	".cxx": "c++",
	".hpp": "c++",
	".lua": "lua",
	".sql": "sql",
}

// DetectLanguage maps a file name to a preset name, or failing that to the
// name of a chroma lexer. It returns "" when nothing matches.
func DetectLanguage(filename string) string {
	if name, ok := presetExtensions[strings.ToLower(filepath.Ext(filename))]; ok {
		return name
	}
	lexer := lexers.Match(filename)
	if lexer == nil {
		return ""
	}
	config := lexer.Config()
	if config == nil {
		return ""
	}
	return config.Name
}
