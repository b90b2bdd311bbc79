package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	for _, json := range []bool{false, true} {
		for _, debug := range []bool{false, true} {
			log, err := New(json, debug)
			require.NoError(t, err)
			require.NotNil(t, log)
			if debug {
				assert.True(t, log.Core().Enabled(-1), "debug level should be enabled")
			} else {
				assert.False(t, log.Core().Enabled(-1), "debug level should be disabled")
			}
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		limit    int
		expected string
	}{
		{"short stays", "hello", 10, "hello"},
		{"exact limit", "hello", 5, "hello"},
		{"truncated", "hello world", 5, "hello..."},
		{"trims whitespace", "  hi  ", 10, "hi"},
		{"zero limit", "hello", 0, ""},
		{"multibyte safe", "héllo wörld", 6, "héllo ..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Truncate(tt.in, tt.limit))
		})
	}
}
