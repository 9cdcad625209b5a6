package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewModelCatalog(t *testing.T) {
	t.Run("valid catalog", func(t *testing.T) {
		c, err := NewModelCatalog("b", []string{"a", " b ", "a", ""})
		require.NoError(t, err)
		assert.Equal(t, "b", c.Default())
		assert.Equal(t, []string{"a", "b"}, c.Models())
	})

	t.Run("empty default selects first model", func(t *testing.T) {
		c, err := NewModelCatalog("", []string{"x", "y"})
		require.NoError(t, err)
		assert.Equal(t, "x", c.Default())
	})

	t.Run("empty list", func(t *testing.T) {
		_, err := NewModelCatalog("a", nil)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("default not allowed", func(t *testing.T) {
		_, err := NewModelCatalog("z", []string{"a"})
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestModelCatalog(t *testing.T) {
	c := DefaultCatalog()

	assert.Equal(t, "gemini-2.5-flash", c.Default())
	assert.True(t, c.Contains("gemini-1.5-pro"))
	assert.False(t, c.Contains("gemini-ultra"))
	assert.Equal(t, "gemini-2.5-flash", c.Resolve(""))
	assert.Equal(t, "gemini-2.5-flash", c.Resolve("  "))
	assert.Equal(t, "gemini-1.5-pro", c.Resolve("gemini-1.5-pro"))

	assert.NoError(t, c.Validate("gemini-1.5-flash"))

	err := c.Validate("gemini-ultra")
	ce := requireKind(t, err, KindInvalidRequest)
	assert.Equal(t, "Invalid model. Supported models: gemini-2.5-flash, gemini-1.5-flash, gemini-1.5-pro", ce.Message)

	models := c.Models()
	models[0] = "mutated"
	assert.Equal(t, "gemini-2.5-flash", c.Models()[0], "Models should return a copy")
}
