package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseID(t *testing.T) {
	id, ok := ParseID("42")
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)

	for _, bad := range []string{"", "abc", "0", "-1", "1.5", "1e3"} {
		_, ok := ParseID(bad)
		assert.False(t, ok, "expected %q to be rejected", bad)
	}
}

func TestGetEnvVariable(t *testing.T) {
	t.Setenv("UTILS_TEST_KEY", "set")
	assert.Equal(t, "set", GetEnvVariable("UTILS_TEST_KEY", "default"))
	assert.Equal(t, "default", GetEnvVariable("UTILS_TEST_MISSING", "default"))
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("UTILS_TEST_INT", "7")
	assert.Equal(t, 7, GetEnvInt("UTILS_TEST_INT", 3))

	t.Setenv("UTILS_TEST_INT", "not-a-number")
	assert.Equal(t, 3, GetEnvInt("UTILS_TEST_INT", 3))
}
