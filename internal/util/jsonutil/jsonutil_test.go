package jsonutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripCodeFence(t *testing.T) {
	cases := map[string]string{
		"{\"a\":1}":                   "{\"a\":1}",
		"  ```json\n{\"a\":1}\n```  ": "{\"a\":1}",
		"```\n{\"a\":1}\n```":         "{\"a\":1}",
		"```JSON\n{\"a\":1}```":       "{\"a\":1}",
		"```{\"a\":1}```":             "{\"a\":1}",
		"plain text":                  "plain text",
	}
	for in, want := range cases {
		assert.Equal(t, want, StripCodeFence(in), "input %q", in)
	}
}

func TestParseObject(t *testing.T) {
	obj, err := ParseObject("```json\n{\"risks\":[\"x\"]}\n```")
	require.NoError(t, err)
	assert.Equal(t, []any{"x"}, obj["risks"])

	obj, err = ParseObject(`"{\"a\":1}"`)
	require.NoError(t, err)
	assert.Equal(t, float64(1), obj["a"])

	_, err = ParseObject("[1,2]")
	assert.ErrorIs(t, err, ErrNotObject)

	_, err = ParseObject("not json at all")
	assert.Error(t, err)

	_, err = ParseObject(`"just a string"`)
	assert.ErrorIs(t, err, ErrNotObject)
}

func TestUnmarshalFlex_BOM(t *testing.T) {
	var v map[string]int
	require.NoError(t, UnmarshalFlex([]byte("\xef\xbb\xbf {\"a\":2}"), &v))
	assert.Equal(t, 2, v["a"])
}

func TestMarshalNoEscape(t *testing.T) {
	b, err := MarshalNoEscape(map[string]string{"k": "<a&b>"})
	require.NoError(t, err)
	assert.Equal(t, `{"k":"<a&b>"}`, string(b))
}
