// Package grammar provides byte classification shared by both parsers.
package grammar

// IsWhitespace reports whether char is insignificant whitespace in the JSON
// grammar.
func IsWhitespace(char byte) bool {
	switch char {
	case ' ', '\t', '\r', '\n':
		return true
	default:
		return false
	}
}

func IsDigit(char byte) bool {
	return char >= '0' && char <= '9'
}

// token holds the tchar set: visible ASCII minus delimiters, the only bytes
// allowed in an HTTP field name.
var token = func() (table [256]bool) {
	for char := byte('0'); char <= '9'; char++ {
		table[char] = true
	}

	for char := byte('a'); char <= 'z'; char++ {
		table[char] = true
	}

	for char := byte('A'); char <= 'Z'; char++ {
		table[char] = true
	}

	for _, char := range []byte("!#$%&'*+-.^_`|~") {
		table[char] = true
	}

	return table
}()

// IsToken reports whether char may appear in an HTTP field name.
func IsToken(char byte) bool {
	return token[char]
}
