package strutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLStripWS(t *testing.T) {
	require.Equal(t, "hello", LStripWS("hello"))
	require.Equal(t, "hello", LStripWS("  \thello"))
	require.Equal(t, "hello  ", LStripWS(" hello  "))
	require.Equal(t, "", LStripWS("  \t "))
	require.Equal(t, "", LStripWS(""))
}

func TestRStripWS(t *testing.T) {
	require.Equal(t, "hello", RStripWS("hello"))
	require.Equal(t, "hello", RStripWS("hello \t "))
	require.Equal(t, "  hello", RStripWS("  hello "))
	require.Equal(t, "", RStripWS("  \t "))
	require.Equal(t, "", RStripWS(""))
}
