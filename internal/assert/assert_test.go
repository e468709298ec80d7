package assert

import (
	"errors"
	"testing"

	"github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqual(t *testing.T) {
	t.Run("passes", func(t *testing.T) {
		assert.NoError(t, Equal(31, 31))
	})

	t.Run("failure shows expected and actual", func(t *testing.T) {
		err := Equal(31, 30, "days in %s", "APRIL")
		f, ok := AsFailure(err)
		require.True(t, ok)
		assert.Equal(t, 31, f.Expected)
		assert.Equal(t, 30, f.Actual)
		assert.Equal(t, "days in APRIL", f.Description)
		assert.Contains(t, f.Message, "<int>: 30")
		assert.Contains(t, f.Message, "<int>: 31")
		assert.Contains(t, err.Error(), "days in APRIL")
	})
}

func TestTrueFalse(t *testing.T) {
	assert.NoError(t, True(true))
	assert.NoError(t, False(false))

	_, ok := AsFailure(True(false))
	assert.True(t, ok)
	_, ok = AsFailure(False(true))
	assert.True(t, ok)
}

func TestContains(t *testing.T) {
	assert.NoError(t, Contains([]string{"a", "b"}, "b"))
	_, ok := AsFailure(Contains([]string{"a", "b"}, "c"))
	assert.True(t, ok)
}

func TestThat_MatcherErrorIsNotAFailure(t *testing.T) {
	err := That("not a bool", gomega.BeTrue())
	require.Error(t, err)
	_, ok := AsFailure(err)
	assert.False(t, ok)
}

func TestFirst(t *testing.T) {
	boom := errors.New("boom")
	assert.NoError(t, First(nil, nil))
	assert.Equal(t, boom, First(nil, boom, errors.New("later")))
}
