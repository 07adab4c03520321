package buffer

// DecodeTable maps a lead byte to the number of bytes in the character it
// starts. Continuation bytes are never consulted as leads by the mapper.
type DecodeTable [256]uint8

// Len returns the byte length of the character starting with c.
func (t *DecodeTable) Len(c byte) int {
	return int(t[c])
}

// Legacy accepts the pre-RFC 3629 five and six byte forms (0xF8-0xFD).
// It is the default so buffers behave the same on any byte input.
var Legacy = func() DecodeTable {
	var t DecodeTable
	for i := range t {
		c := byte(i)
		switch {
		case c&0xFE == 0xFC:
			t[i] = 6
		case c&0xFC == 0xF8:
			t[i] = 5
		case c&0xF8 == 0xF0:
			t[i] = 4
		case c&0xF0 == 0xE0:
			t[i] = 3
		case c&0xE0 == 0xC0:
			t[i] = 2
		default:
			t[i] = 1
		}
	}
	return t
}()

// Strict only recognises lead bytes that can start a valid UTF-8 sequence.
var Strict = func() DecodeTable {
	var t DecodeTable
	for i := range t {
		c := byte(i)
		switch {
		case c >= 0xF0 && c <= 0xF4:
			t[i] = 4
		case c >= 0xE0 && c <= 0xEF:
			t[i] = 3
		case c >= 0xC2 && c <= 0xDF:
			t[i] = 2
		default:
			t[i] = 1
		}
	}
	return t
}()
