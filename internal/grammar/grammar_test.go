package grammar

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsWhitespace(t *testing.T) {
	for _, char := range []byte{' ', '\t', '\r', '\n'} {
		require.True(t, IsWhitespace(char))
	}

	for _, char := range []byte{0, 'a', '0', '{', 0x0B, 0x0C} {
		require.False(t, IsWhitespace(char))
	}
}

func TestIsToken(t *testing.T) {
	for _, char := range []byte("Content-Length_09!#$%&'*+.^`|~z") {
		require.True(t, IsToken(char), string(char))
	}

	for _, char := range []byte("()<>@,;:\\\"/[]?={} \t\r\n") {
		require.False(t, IsToken(char), string(char))
	}

	require.False(t, IsToken(0x00))
	require.False(t, IsToken(0x7F))
	require.False(t, IsToken(0x80))
}
