package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestTruncateForLog(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{name: "short string untouched", in: "hello", limit: 10, want: "hello"},
		{name: "trims whitespace", in: "  hello  ", limit: 10, want: "hello"},
		{name: "truncates with ellipsis", in: "abcdefgh", limit: 3, want: "abc..."},
		{name: "counts runes not bytes", in: "héllo wörld", limit: 5, want: "héllo..."},
		{name: "zero limit", in: "anything", limit: 0, want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, TruncateForLog(tc.in, tc.limit))
		})
	}
}

func TestNew(t *testing.T) {
	log, err := New(true, true)
	require.NoError(t, err)
	require.NotNil(t, log)
	assert.True(t, log.Core().Enabled(zapcore.DebugLevel), "debug level should be enabled")

	log, err = New(false, false)
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel), "debug level should be disabled")
}
