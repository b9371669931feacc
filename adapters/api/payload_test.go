package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teamcomp/domain/boss"
)

func TestParsePayload_MissingFieldsDefaultEmpty(t *testing.T) {
	payload, err := ParsePayload([]byte(`{"title": "Arlo"}`))
	require.NoError(t, err)

	assert.Equal(t, &boss.Payload{Title: "Arlo"}, payload)
	assert.Empty(t, payload.Headers)
	assert.Empty(t, payload.Rows)
	assert.False(t, payload.HasImages())
}

func TestParsePayload_MistypedFields(t *testing.T) {
	payload, err := ParsePayload([]byte(`{
		"title": 7,
		"headers": "not a list",
		"rows": [["a", 2, null, {"x": 1}], "oops"],
		"header_images": {"0": "a.png"},
		"body_images": [[null, true]]
	}`))
	require.NoError(t, err)

	assert.Equal(t, "7", payload.Title)
	assert.Nil(t, payload.Headers)
	assert.Equal(t, [][]string{{"a", "2", "", ""}, nil}, payload.Rows)
	assert.Nil(t, payload.HeaderImages)
	assert.Equal(t, [][]string{{"", "true"}}, payload.BodyImages)
	assert.True(t, payload.HasImages())
}

func TestParsePayload_NonObjectIsEmpty(t *testing.T) {
	payload, err := ParsePayload([]byte(`[1, 2, 3]`))
	require.NoError(t, err)
	assert.Equal(t, &boss.Payload{}, payload)
}

func TestParsePayload_InvalidJSON(t *testing.T) {
	_, err := ParsePayload([]byte(`{"title": `))
	assert.Error(t, err)
}
