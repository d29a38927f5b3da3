package condition

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateSimple(t *testing.T) {
	props := map[string]string{"widgetType": "movies", "icon": ""}

	t.Run("empty condition is always true", func(t *testing.T) {
		assert.True(t, Evaluate("", props))
		assert.True(t, Evaluate("   ", props))
	})

	t.Run("bare identifier checks non-empty", func(t *testing.T) {
		assert.True(t, Evaluate("widgetType", props))
		assert.False(t, Evaluate("icon", props))
		assert.False(t, Evaluate("missing", props))
	})

	t.Run("equality", func(t *testing.T) {
		assert.True(t, Evaluate("widgetType=movies", props))
		assert.False(t, Evaluate("widgetType=tvshows", props))
	})

	t.Run("empty operator", func(t *testing.T) {
		assert.True(t, Evaluate("icon EMPTY", props))
		assert.False(t, Evaluate("widgetType EMPTY", props))
	})

	t.Run("contains", func(t *testing.T) {
		assert.True(t, Evaluate("widgetType~mov", props))
		assert.False(t, Evaluate("widgetType~xyz", props))
	})

	t.Run("in list", func(t *testing.T) {
		assert.True(t, Evaluate("widgetType IN movies,tvshows", props))
		assert.False(t, Evaluate("widgetType IN music,tvshows", props))
	})
}

func TestEvaluateBooleanAlgebra(t *testing.T) {
	props := map[string]string{"widgetType": "movies", "limit": "10"}

	t.Run("and", func(t *testing.T) {
		assert.True(t, Evaluate("widgetType=movies + limit=10", props))
		assert.False(t, Evaluate("widgetType=movies + limit=5", props))
	})

	t.Run("or", func(t *testing.T) {
		assert.True(t, Evaluate("widgetType=tvshows | widgetType=movies", props))
	})

	t.Run("not", func(t *testing.T) {
		assert.True(t, Evaluate("!widgetType=tvshows", props))
		assert.False(t, Evaluate("!widgetType=movies", props))
	})

	t.Run("brackets override precedence", func(t *testing.T) {
		assert.True(t, Evaluate("[widgetType=tvshows | widgetType=movies] + limit=10", props))
	})

	t.Run("keyword form is equivalent to symbol form", func(t *testing.T) {
		assert.Equal(t,
			Evaluate("widgetType=movies + limit=10", props),
			Evaluate("widgetType=movies AND limit=10", props))
		assert.Equal(t,
			Evaluate("widgetType=tvshows | widgetType=movies", props),
			Evaluate("widgetType=tvshows OR widgetType=movies", props))
	})
}

func TestEvaluateCompactOR(t *testing.T) {
	props := map[string]string{"widgetType": "tvshows"}

	t.Run("chain carries the property across bare values", func(t *testing.T) {
		assert.True(t, Evaluate("widgetType=movies | tvshows | episodes", props))
	})

	t.Run("chain resets on a fresh property", func(t *testing.T) {
		assert.Equal(t, "prop=a | other=b", ExpandCompactOR("prop=a | other=b"))
	})
}

func TestEvaluateMalformedIsFalse(t *testing.T) {
	assert.False(t, Evaluate("[unclosed", nil))
	assert.False(t, Evaluate("++", nil))
}
