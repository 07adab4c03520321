package highlight

import "texteditor/palette"

// TokenizeCStyle scans C-like lexemes: string and character literals,
// identifiers, numbers and single-character punctuation. Leading blanks are
// skipped; a line ending in blanks yields an empty Default token.
var TokenizeCStyle = TokenizeFunc(tokenizeCStyle)

func tokenizeCStyle(text []byte, pos int) (int, int, palette.Index, bool) {
	for pos < len(text) && (text[pos] == ' ' || text[pos] == '\t') {
		pos++
	}
	if pos == len(text) {
		return pos, pos, palette.Default, true
	}
	if end, ok := scanQuoted(text, pos, '"'); ok {
		return pos, end, palette.String, true
	}
	if end, ok := scanQuoted(text, pos, '\''); ok {
		return pos, end, palette.CharLiteral, true
	}
	if end, ok := scanIdentifier(text, pos); ok {
		return pos, end, palette.Identifier, true
	}
	if end, ok := scanNumber(text, pos); ok {
		return pos, end, palette.Number, true
	}
	if isPunctuation(text[pos]) {
		return pos, pos + 1, palette.Punctuation, true
	}
	return 0, 0, palette.Default, false
}

// scanQuoted matches a literal delimited by q. A backslash before q does
// not close it. Unterminated literals do not match.
func scanQuoted(text []byte, p int, q byte) (int, bool) {
	if text[p] != q {
		return 0, false
	}
	for p++; p < len(text); p++ {
		switch {
		case text[p] == q:
			return p + 1, true
		case text[p] == '\\' && p+1 < len(text) && text[p+1] == q:
			p++
		}
	}
	return 0, false
}

func isIdentStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isHexDigit(c byte) bool {
	return isDigit(c) || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

func scanIdentifier(text []byte, p int) (int, bool) {
	if !isIdentStart(text[p]) {
		return 0, false
	}
	for p++; p < len(text) && (isIdentStart(text[p]) || isDigit(text[p])); p++ {
	}
	return p, true
}

// scanNumber accepts an optional sign, decimal, hex (0x) and binary (0b)
// integers, a fraction, an exponent and the usual f / uUlL suffixes.
func scanNumber(text []byte, p int) (int, bool) {
	c := text[p]
	hasNumber := isDigit(c)
	if c != '+' && c != '-' && !hasNumber {
		return 0, false
	}
	p++
	for p < len(text) && isDigit(text[p]) {
		hasNumber = true
		p++
	}
	if !hasNumber {
		return 0, false
	}

	isFloat, isHex, isBinary := false, false, false
	if p < len(text) {
		switch text[p] {
		case '.':
			isFloat = true
			for p++; p < len(text) && isDigit(text[p]); p++ {
			}
		case 'x', 'X':
			isHex = true
			for p++; p < len(text) && isHexDigit(text[p]); p++ {
			}
		case 'b', 'B':
			isBinary = true
			for p++; p < len(text) && (text[p] == '0' || text[p] == '1'); p++ {
			}
		}
	}

	if !isHex && !isBinary {
		if p < len(text) && (text[p] == 'e' || text[p] == 'E') {
			isFloat = true
			p++
			if p < len(text) && (text[p] == '+' || text[p] == '-') {
				p++
			}
			digits := false
			for p < len(text) && isDigit(text[p]) {
				digits = true
				p++
			}
			if !digits {
				return 0, false
			}
		}
		if p < len(text) && text[p] == 'f' {
			p++
		}
	}

	if !isFloat {
		for p < len(text) && (text[p] == 'u' || text[p] == 'U' || text[p] == 'l' || text[p] == 'L') {
			p++
		}
	}
	return p, true
}

func isPunctuation(c byte) bool {
	switch c {
	case '[', ']', '{', '}', '!', '%', '^', '&', '*', '(', ')', '-', '+',
		'=', '~', '|', '<', '>', '?', ':', '/', ';', ',', '.':
		return true
	}
	return false
}
