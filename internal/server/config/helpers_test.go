package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// unsetenv removes variables after t.Setenv has recorded their original values.
func unsetenv(t *testing.T, names ...string) {
	t.Helper()
	for _, n := range names {
		require.NoError(t, os.Unsetenv(n))
	}
}
