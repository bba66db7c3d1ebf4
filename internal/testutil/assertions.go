package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junioryono/locator"
)

// AssertResolvable resolves key and requires it to succeed.
func AssertResolvable(t *testing.T, r *locator.Registry, key locator.Key, param any) any {
	t.Helper()
	value, ok, err := r.Resolve(key, param)
	require.NoError(t, err, "failed to resolve %s", key)
	require.True(t, ok, "%s is not registered", key)
	return value
}

// AssertNotRegistered checks that key resolves to nothing.
func AssertNotRegistered(t *testing.T, r *locator.Registry, key locator.Key) {
	t.Helper()
	value, ok, err := r.Resolve(key, nil)
	assert.NoError(t, err)
	assert.False(t, ok, "%s should not be registered", key)
	assert.Nil(t, value)
}

// AssertKeysMatch checks that two key sets hold the same keys in any order.
func AssertKeysMatch(t *testing.T, expected, actual []locator.Key) {
	t.Helper()
	assert.ElementsMatch(t, expected, actual)
}
