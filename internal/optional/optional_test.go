package optional

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

type patch struct {
	Name   Value[string]   `json:"name"`
	Amount Value[float64]  `json:"amount"`
	Tags   Value[[]string] `json:"tags"`
}

func TestValue_UnmarshalJSON(t *testing.T) {
	t.Run("missing_keys_stay_unset", func(t *testing.T) {
		var p patch
		require.NoError(t, json.Unmarshal([]byte(`{}`), &p))
		require.False(t, p.Name.IsSet())
		require.False(t, p.Amount.IsSet())
	})

	t.Run("null_is_absent", func(t *testing.T) {
		var p patch
		require.NoError(t, json.Unmarshal([]byte(`{"name":null}`), &p))
		require.False(t, p.Name.IsSet())
	})

	t.Run("empty_string_is_set", func(t *testing.T) {
		var p patch
		require.NoError(t, json.Unmarshal([]byte(`{"name":""}`), &p))
		v, ok := p.Name.Get()
		require.True(t, ok)
		require.Equal(t, "", v)
	})

	t.Run("zero_is_set", func(t *testing.T) {
		var p patch
		require.NoError(t, json.Unmarshal([]byte(`{"amount":0,"tags":[]}`), &p))
		require.True(t, p.Amount.IsSet())
		require.Equal(t, 0.0, p.Amount.OrElse(5))
		require.True(t, p.Tags.IsSet())
	})

	t.Run("type_mismatch_errors", func(t *testing.T) {
		var p patch
		require.Error(t, json.Unmarshal([]byte(`{"amount":"ten"}`), &p))
	})
}

func TestValue_OrElse(t *testing.T) {
	var v Value[int]
	require.Equal(t, 7, v.OrElse(7))
	require.Equal(t, 3, Some(3).OrElse(7))
}
