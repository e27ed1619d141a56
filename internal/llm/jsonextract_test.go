package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstJSONObjectBare(t *testing.T) {
	obj, ok := FirstJSONObject([]byte(`{"a":1}`))
	require.True(t, ok)
	assert.Equal(t, `{"a":1}`, string(obj))
}

func TestFirstJSONObjectWrappedInProse(t *testing.T) {
	obj, ok := FirstJSONObject([]byte(`Claro, aquí va: {"a":{"b":2}} y eso sería todo.`))
	require.True(t, ok)
	assert.Equal(t, `{"a":{"b":2}}`, string(obj))
}

func TestFirstJSONObjectBracesInsideStrings(t *testing.T) {
	obj, ok := FirstJSONObject([]byte(`{"note":"uses {curly} braces","x":1}`))
	require.True(t, ok)
	assert.Equal(t, `{"note":"uses {curly} braces","x":1}`, string(obj))
}

func TestFirstJSONObjectEscapedQuote(t *testing.T) {
	obj, ok := FirstJSONObject([]byte(`{"q":"dijo \"hola\" y {chao}"}`))
	require.True(t, ok)
	assert.Equal(t, `{"q":"dijo \"hola\" y {chao}"}`, string(obj))
}

func TestFirstJSONObjectNone(t *testing.T) {
	_, ok := FirstJSONObject([]byte("sin objetos por aquí"))
	assert.False(t, ok)

	_, ok = FirstJSONObject([]byte(`{"never":"closed"`))
	assert.False(t, ok)
}
