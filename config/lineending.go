package config

import "strings"

const (
	LineEndingLF   = "lf"
	LineEndingCRLF = "crlf"
	LineEndingCR   = "cr"
)

// DetectLineEnding reports the style of the first line break in data, or
// "" when there is none.
func DetectLineEnding(data []byte) string {
	for i, c := range data {
		switch c {
		case '\n':
			return LineEndingLF
		case '\r':
			if i+1 < len(data) && data[i+1] == '\n' {
				return LineEndingCRLF
			}
			return LineEndingCR
		}
	}
	return ""
}

// DecodeText turns file contents into the "\n" separated text the editor
// holds.
func DecodeText(data []byte) string {
	text := string(data)
	if DetectLineEnding(data) == LineEndingCR {
		text = strings.ReplaceAll(text, "\r", "\n")
	}
	return text
}

// EncodeText converts editor text into its on-disk form using LineEnding
// and FinalNewline.
func (c *Config) EncodeText(text string) []byte {
	if c.FinalNewline && text != "" && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	switch c.LineEnding {
	case LineEndingCRLF:
		text = strings.ReplaceAll(text, "\n", "\r\n")
	case LineEndingCR:
		text = strings.ReplaceAll(text, "\n", "\r")
	}
	return []byte(text)
}
