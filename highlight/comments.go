package highlight

import "texteditor/buffer"

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func hasPrefixAt(line buffer.Line, i int, marker string) bool {
	if marker == "" || i+len(marker) > len(line) {
		return false
	}
	for k := 0; k < len(marker); k++ {
		if line[i+k].Char != marker[k] {
			return false
		}
	}
	return true
}

// matchAny returns the length of the first marker found at i, or 0.
func matchAny(line buffer.Line, i int, markers ...string) int {
	for _, m := range markers {
		if hasPrefixAt(line, i, m) {
			return len(m)
		}
	}
	return 0
}

// ScanComments walks the whole buffer and sets the Comment, BlockComment
// and Preprocessor flags of every glyph. Block comments may span any number
// of lines so the scan always starts at the top.
//
// A single-line comment or preprocessor line ends with its line unless the
// line ends in a backslash. A string only ends at its closing quote, so an
// unterminated string hides comment markers on the lines after it. A
// doubled quote inside a string is part of the string.
func ScanComments(b *buffer.Buffer, d *LanguageDefinition) {
	var (
		inBlock, inString, inSingle, inPreproc bool
		concatenate                            bool
	)
	for ln := range b.Lines {
		line := b.Lines[ln]
		if !concatenate {
			inSingle = false
			inPreproc = false
		}
		concatenate = len(line) > 0 && line[len(line)-1].Char == '\\'
		firstChar := true

		mark := func(from, to int, single, block bool) {
			for k := from; k < to && k < len(line); k++ {
				line[k].Comment = single
				line[k].BlockComment = block
				line[k].Preprocessor = inPreproc
			}
		}

		for i := 0; i < len(line); {
			c := line[i].Char
			step := min(b.CharLen(c), len(line)-i)
			if c != d.PreprocChar && !isSpace(c) {
				firstChar = false
			}

			switch {
			case inBlock:
				if n := matchAny(line, i, d.CommentEnd, d.CommentEnd2); n > 0 {
					mark(i, i+n, false, true)
					inBlock = false
					i += n
					continue
				}
				mark(i, i+step, false, true)

			case inString:
				switch {
				case c == '"' && i+1 < len(line) && line[i+1].Char == '"':
					step = 2
				case c == '"':
					inString = false
				case c == '\\':
					step = min(2, len(line)-i)
				}
				mark(i, i+step, false, false)

			case inSingle:
				mark(i, i+step, true, false)

			default:
				if firstChar && c == d.PreprocChar {
					inPreproc = true
				}
				if c == '\\' {
					step = min(2, len(line)-i)
					mark(i, i+step, false, false)
					break
				}
				if c == '"' {
					inString = true
					mark(i, i+step, false, false)
					break
				}
				if n := matchAny(line, i, d.CommentStart, d.CommentStart2); n > 0 {
					inBlock = true
					mark(i, i+n, false, true)
					i += n
					continue
				}
				if matchAny(line, i, d.SingleLineComment, d.SingleLineComment2) > 0 {
					inSingle = true
					mark(i, i+step, true, false)
					break
				}
				mark(i, i+step, false, false)
			}
			i += step
		}
	}
}
