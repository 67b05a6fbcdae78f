package cli

import (
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadConfig(t *testing.T, source string) config {
	t.Helper()

	r, err := resolve(t.Context())(strings.NewReader(source))
	require.NoError(t, err)

	c, ok := r.(config)
	require.True(t, ok)

	return c
}

func TestResolve(t *testing.T) {
	c := loadConfig(t, `
<$> flags <$!>
log_level: <<debug>>
log_pretty: False
depth: 2 ** 3
print <<ignored>>
`)

	assert.Equal(t, config{
		"log_level":  "debug",
		"log_pretty": "false",
		"depth":      "8",
	}, c)
}

func TestResolve_InvalidConfig(t *testing.T) {
	for name, source := range map[string]string{
		"lex":     "log_level: ~",
		"parse":   "log_level <<debug>>",
		"runtime": "log_level: missing",
	} {
		t.Run(name, func(t *testing.T) {
			assert.Empty(t, loadConfig(t, source))
		})
	}
}

func TestConfig_Resolve(t *testing.T) {
	c := config{"log_level": "warn", "pretty": "true"}

	tests := []struct {
		flag string
		want any
	}{
		{"log-level", "warn"},
		{"pretty", "true"},
		{"log-format", nil},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			flag := &kong.Flag{Value: &kong.Value{Name: tt.flag}}

			got, err := c.Resolve(nil, nil, flag)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.NoError(t, c.Validate(nil))
}
