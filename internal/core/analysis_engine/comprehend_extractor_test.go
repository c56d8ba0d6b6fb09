package analysis_engine

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateUTF8(t *testing.T) {
	assert.Equal(t, "short", truncateUTF8("short", 100))
	assert.Equal(t, "abc", truncateUTF8("abcdef", 3))

	// "é" is 2 bytes; a cut at 4 would land mid-rune.
	s := "abcéf"
	got := truncateUTF8(s, 4)
	assert.Equal(t, "abc", got)
	assert.True(t, utf8.ValidString(got))

	// Multi-byte text cut anywhere stays valid UTF-8 and within the limit.
	long := strings.Repeat("日本語", 100)
	for _, max := range []int{1, 2, 3, 4, 5, 10, 299} {
		got := truncateUTF8(long, max)
		assert.True(t, utf8.ValidString(got), "max=%d", max)
		assert.LessOrEqual(t, len(got), max, "max=%d", max)
	}
}
