package pytok

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isIdentStart(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_'
}

func isIdentPart(b byte) bool { return isIdentStart(b) || isDigit(b) }

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// isSpaceChar reports ASCII whitespace, newline included.
func isSpaceChar(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// isRadixDigit reports whether b is a digit of the given radix
// (2, 8 or 16).
func isRadixDigit(b byte, radix int) bool {
	switch radix {
	case 2:
		return b == '0' || b == '1'
	case 8:
		return b >= '0' && b <= '7'
	case 16:
		return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
	}
	return false
}

// escapeChar translates the character following a backslash inside a
// string literal. The second result is false when the escape has no
// translation; the caller then keeps the backslash and the character
// verbatim.
func escapeChar(b byte) (byte, bool) {
	switch b {
	case 'n':
		return '\n', true
	case 't':
		return '\t', true
	case 'r':
		return '\r', true
	case '\\':
		return '\\', true
	case '\'':
		return '\'', true
	case '"':
		return '"', true
	case '0':
		return 0, true
	}
	return 0, false
}
