package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/go-kit/log/level"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerFilters(t *testing.T) {
	testCases := []struct {
		level    string
		expected []string
	}{
		{"debug", []string{"d", "i", "w", "e"}},
		{"info", []string{"i", "w", "e"}},
		{"", []string{"i", "w", "e"}},
		{"WARN", []string{"w", "e"}},
		{"error", []string{"e"}},
		{"none", nil},
	}
	for _, tc := range testCases {
		t.Run("level-"+tc.level, func(t *testing.T) {
			lvl, err := ParseLevel(tc.level)
			require.NoError(t, err)

			var buf bytes.Buffer
			logger := NewLogger(&buf, lvl)
			_ = level.Debug(logger).Log("msg", "d")
			_ = level.Info(logger).Log("msg", "i")
			_ = level.Warn(logger).Log("msg", "w")
			_ = level.Error(logger).Log("msg", "e")

			var got []string
			for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
				if line == "" {
					continue
				}
				entry := map[string]any{}
				require.NoError(t, json.Unmarshal([]byte(line), &entry))
				assert.Contains(t, entry, "ts")
				assert.Contains(t, entry, "caller")
				got = append(got, entry["msg"].(string))
			}
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestParseLevelInvalid(t *testing.T) {
	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestGlobalLogger(t *testing.T) {
	assert.NotNil(t, GlobalLogger())
	assert.Same(t, GlobalLogger(), GlobalLogger())
}
