package targets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeFirstBackslashOnly(t *testing.T) {
	assert.Equal(t, `a\\b\c`, EscapeFirstBackslashOnly(`a\b\c`))
	assert.Equal(t, "no-backslash", EscapeFirstBackslashOnly("no-backslash"))
	assert.Equal(t, `\\`, EscapeFirstBackslashOnly(`\`))
}

func TestTranslateFlagsSortsAscendingAndDrops(t *testing.T) {
	table := FlagTable{'i': "i", 'm': "m", 'u': "a", 'y': "", 'g': "s"}
	assert.Equal(t, "is", TranslateFlags("gi", table))
	assert.Equal(t, "", TranslateFlags("y", table))
	assert.Equal(t, "aim", TranslateFlags("uim", table))
}

func TestEscapeQuoted(t *testing.T) {
	assert.Equal(t, `it\'s`, EscapeQuoted("it's", '\''))
	assert.Equal(t, `a\\b`, EscapeQuoted(`a\b`, '\''))
}
