package highlight

import (
	"fmt"
	"time"

	"github.com/dlclark/regexp2"

	"texteditor/palette"
)

const (
	funcChunkLines  = 10000
	regexChunkLines = 10
)

// Tokenizer finds the next token in a line. Next looks at text[pos:] and
// reports the span [begin, end) of the token found there along with its
// category; ok is false when nothing matches at pos.
type Tokenizer interface {
	Next(text []byte, pos int) (begin, end int, cat palette.Index, ok bool)
	// ChunkLines is how many lines the colorizer may process per cycle.
	ChunkLines() int
}

// TokenizeFunc adapts a hand written scanner. Hand written scanners are
// cheap so they get a large per-cycle budget.
type TokenizeFunc func(text []byte, pos int) (begin, end int, cat palette.Index, ok bool)

func (f TokenizeFunc) Next(text []byte, pos int) (int, int, palette.Index, bool) {
	return f(text, pos)
}

func (TokenizeFunc) ChunkLines() int { return funcChunkLines }

// Rule pairs a pattern with the category of the text it matches.
type Rule struct {
	Pattern  string
	Category palette.Index
}

type compiledRule struct {
	re  *regexp2.Regexp
	cat palette.Index
}

// RegexTokenizer matches a table of rules anchored at the current position
// and keeps the longest match. Earlier rules win ties.
type RegexTokenizer struct {
	rules []compiledRule
}

const regexTimeout = 50 * time.Millisecond

func NewRegexTokenizer(rules []Rule) (*RegexTokenizer, error) {
	t := &RegexTokenizer{rules: make([]compiledRule, 0, len(rules))}
	for _, r := range rules {
		re, err := regexp2.Compile(`^(?:`+r.Pattern+`)`, regexp2.None)
		if err != nil {
			return nil, fmt.Errorf("compile %q: %w", r.Pattern, err)
		}
		re.MatchTimeout = regexTimeout
		t.rules = append(t.rules, compiledRule{re: re, cat: r.Category})
	}
	return t, nil
}

// MustRegexTokenizer is NewRegexTokenizer for tables known at compile time.
func MustRegexTokenizer(rules []Rule) *RegexTokenizer {
	t, err := NewRegexTokenizer(rules)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *RegexTokenizer) Next(text []byte, pos int) (int, int, palette.Index, bool) {
	if pos >= len(text) {
		return 0, 0, palette.Default, false
	}
	s := string(text[pos:])
	best, cat := 0, palette.Default
	for _, r := range t.rules {
		m, err := r.re.FindStringMatch(s)
		if err != nil || m == nil {
			continue
		}
		if n := len(m.String()); n > best {
			best, cat = n, r.cat
		}
	}
	if best == 0 {
		return 0, 0, palette.Default, false
	}
	return pos, min(pos+best, len(text)), cat, true
}

func (*RegexTokenizer) ChunkLines() int { return regexChunkLines }
