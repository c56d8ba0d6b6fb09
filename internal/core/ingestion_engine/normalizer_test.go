package ingestion_engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCollapsesWhitespace(t *testing.T) {
	in := "Jane   Doe\t\tEngineer\n\n\n\nPython    and   SQL"
	out := Normalize(in)
	assert.Equal(t, "Jane Doe Engineer\n\nPython and SQL", out)
}

func TestNormalizeLineEndings(t *testing.T) {
	out := Normalize("line one\r\nline two\rline three")
	assert.Equal(t, "line one\nline two\nline three", out)
}

func TestNormalizeStripsControlCharacters(t *testing.T) {
	out := Normalize("abc\x00\x07def\tgh\nij")
	assert.Equal(t, "abcdef gh\nij", out)
}

func TestNormalizeTrims(t *testing.T) {
	assert.Equal(t, "text", Normalize("  \n\n  text \t \n\n "))
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("some text"))
	assert.False(t, IsValid(""))
	assert.False(t, IsValid("   \n\t  "))
}
