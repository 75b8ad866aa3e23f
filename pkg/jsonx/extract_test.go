package jsonx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_JSONFence(t *testing.T) {
	got, err := Extract("```json\n{\"a\":1}\n```")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(got))
}

func TestExtract_BareFence(t *testing.T) {
	got, err := Extract("```\n{\"a\":1}\n```")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(got))
}

func TestExtract_NoFence(t *testing.T) {
	got, err := Extract(`{"a":1}`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(got))
}

func TestExtract_FirstFencePairWins(t *testing.T) {
	raw := "```json\n{\"a\":1}\n```\nmore prose\n```json\n{\"b\":2}\n```"
	got, err := Extract(raw)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(got))
}

func TestExtract_ProseAroundUnfencedJSONFails(t *testing.T) {
	_, err := Extract(`Here you go: {"a":1} hope that helps!`)
	assert.ErrorIs(t, err, ErrUnparsable)
}

func TestExtract_Failures(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: ""},
		{name: "whitespace", raw: "   \n\t"},
		{name: "not json", raw: "not json at all"},
		{name: "fenced garbage", raw: "```json\noops\n```"},
		{name: "truncated object", raw: "```json\n{\"a\":\n```"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Extract(tc.raw)
			assert.ErrorIs(t, err, ErrUnparsable)
		})
	}
}

func TestDecode(t *testing.T) {
	var out struct {
		A int `json:"a"`
	}
	require.NoError(t, Decode("```json\n{\"a\":7}\n```", &out))
	assert.Equal(t, 7, out.A)

	require.ErrorIs(t, Decode(`{"a": "seven"}`, &out), ErrUnparsable)
}

func TestExtract_ArrayPayload(t *testing.T) {
	got, err := Extract("```json\n[{\"q\":\"x\"}]\n```")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"q":"x"}]`, string(got))
}
