package hexconv

// Halfbyte maps a hex digit to its value, or 0xFF if the byte is not a hex
// digit at all.
var Halfbyte = func() (table [256]byte) {
	for i := range table {
		table[i] = 0xFF
	}

	for char := byte('0'); char <= '9'; char++ {
		table[char] = char - '0'
	}

	for char := byte('a'); char <= 'f'; char++ {
		table[char] = char - 'a' + 0xa
	}

	for char := byte('A'); char <= 'F'; char++ {
		table[char] = char - 'A' + 0xA
	}

	return table
}()
