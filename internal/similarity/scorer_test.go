package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "hello world", Normalize("  Hello\n\tWORLD \r\n"))
	assert.Equal(t, "zażółć gęślą", Normalize("ZAŻÓŁĆ   gęślą"))
	assert.Equal(t, "", Normalize(" \n "))
}
