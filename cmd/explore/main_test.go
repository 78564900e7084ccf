package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgs(t *testing.T) {
	t.Run("Width and height", func(t *testing.T) {
		w, h, seed, err := parseArgs([]string{"12", "8"})
		require.NoError(t, err)
		assert.Equal(t, 12, w)
		assert.Equal(t, 8, h)
		assert.Zero(t, seed)
	})

	t.Run("With seed", func(t *testing.T) {
		_, _, seed, err := parseArgs([]string{"3", "3", "42"})
		require.NoError(t, err)
		assert.Equal(t, int64(42), seed)
	})

	for _, args := range [][]string{
		nil,
		{"5"},
		{"5", "5", "1", "extra"},
		{"five", "5"},
		{"5", "5.5"},
		{"5", "5", "seed"},
	} {
		_, _, _, err := parseArgs(args)
		assert.Error(t, err, "%v", args)
	}
}
