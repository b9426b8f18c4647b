package shared

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type patch struct {
	Description Optional[*string] `json:"description"`
}

func TestOptional_UnmarshalJSON(t *testing.T) {
	var absent patch
	require.NoError(t, json.Unmarshal([]byte(`{}`), &absent))
	assert.False(t, absent.Description.Set)

	var null patch
	require.NoError(t, json.Unmarshal([]byte(`{"description":null}`), &null))
	assert.True(t, null.Description.Set)
	assert.Nil(t, null.Description.Value)

	var value patch
	require.NoError(t, json.Unmarshal([]byte(`{"description":"films"}`), &value))
	assert.True(t, value.Description.Set)
	require.NotNil(t, value.Description.Value)
	assert.Equal(t, "films", *value.Description.Value)
}

func TestOptional_MarshalJSON(t *testing.T) {
	films := "films"
	body, err := json.Marshal(patch{Description: Some(&films)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"description":"films"}`, string(body))

	body, err = json.Marshal(patch{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"description":null}`, string(body))
}
