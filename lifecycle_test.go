package locator_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junioryono/locator"
)

func TestLifecycle(t *testing.T) {
	t.Run("constants", func(t *testing.T) {
		assert.Equal(t, locator.Lifecycle(0), locator.Transient)
		assert.Equal(t, locator.Lifecycle(1), locator.Cached)
		assert.Equal(t, locator.Lifecycle(2), locator.OneTime)
	})

	t.Run("String", func(t *testing.T) {
		tests := []struct {
			lifecycle locator.Lifecycle
			expected  string
		}{
			{locator.Transient, "Transient"},
			{locator.Cached, "Cached"},
			{locator.OneTime, "OneTime"},
			{locator.Lifecycle(999), "Unknown(999)"},
		}

		for _, tt := range tests {
			assert.Equal(t, tt.expected, tt.lifecycle.String())
		}
	})

	t.Run("IsValid", func(t *testing.T) {
		assert.True(t, locator.Transient.IsValid())
		assert.True(t, locator.OneTime.IsValid())
		assert.False(t, locator.Lifecycle(-1).IsValid())
		assert.False(t, locator.Lifecycle(3).IsValid())
	})

	t.Run("text round trip", func(t *testing.T) {
		for _, l := range []locator.Lifecycle{locator.Transient, locator.Cached, locator.OneTime} {
			text, err := l.MarshalText()
			require.NoError(t, err)

			var got locator.Lifecycle
			require.NoError(t, got.UnmarshalText(text))
			assert.Equal(t, l, got)
		}
	})

	t.Run("lowercase names", func(t *testing.T) {
		var l locator.Lifecycle
		require.NoError(t, l.UnmarshalText([]byte("cached")))
		assert.Equal(t, locator.Cached, l)
		require.NoError(t, l.UnmarshalText([]byte("one_time")))
		assert.Equal(t, locator.OneTime, l)
	})

	t.Run("invalid text", func(t *testing.T) {
		var l locator.Lifecycle
		err := l.UnmarshalText([]byte("forever"))

		var lerr locator.LifecycleError
		require.ErrorAs(t, err, &lerr)
		assert.Equal(t, "forever", lerr.Value)
	})

	t.Run("JSON", func(t *testing.T) {
		type wrapper struct {
			Lifecycle locator.Lifecycle `json:"lifecycle"`
		}

		data, err := json.Marshal(wrapper{Lifecycle: locator.Cached})
		require.NoError(t, err)
		assert.JSONEq(t, `{"lifecycle":"Cached"}`, string(data))

		var w wrapper
		require.NoError(t, json.Unmarshal([]byte(`{"lifecycle":"OneTime"}`), &w))
		assert.Equal(t, locator.OneTime, w.Lifecycle)

		assert.Error(t, json.Unmarshal([]byte(`{"lifecycle":3}`), &w))
	})
}

func TestReleasePolicy(t *testing.T) {
	t.Run("String", func(t *testing.T) {
		assert.Equal(t, "on_success", locator.ReleaseOnSuccess.String())
		assert.Equal(t, "on_attempt", locator.ReleaseOnAttempt.String())
		assert.Equal(t, "unknown(7)", locator.ReleasePolicy(7).String())
	})

	t.Run("UnmarshalText", func(t *testing.T) {
		var p locator.ReleasePolicy
		require.NoError(t, p.UnmarshalText([]byte("on_attempt")))
		assert.Equal(t, locator.ReleaseOnAttempt, p)

		require.NoError(t, p.UnmarshalText([]byte("")))
		assert.Equal(t, locator.ReleaseOnSuccess, p)

		var perr locator.ReleasePolicyError
		assert.ErrorAs(t, p.UnmarshalText([]byte("never")), &perr)
	})
}
