package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	SetLanguage("en-US")
	assert.Equal(t, "1,048,576 instructions", From("%d instructions", 1048576))

	SetLanguage("de-DE")
	assert.Equal(t, "1.048.576 instructions", From("%d instructions", 1048576))

	SetLanguage("en-US")
}
