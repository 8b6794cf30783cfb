package config

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected func(*Config)
		wantErr  bool
	}{
		{
			name: "sqlite path and hashing",
			args: []string{"--sqlite-path", "/tmp/a.db", "--hash", "bcrypt"},
			expected: func(c *Config) {
				c.SQLitePath = "/tmp/a.db"
				c.PasswordHashing = "bcrypt"
			},
		},
		{
			name: "redis db number",
			args: []string{"--storage", "redis", "--redis-db", "5"},
			expected: func(c *Config) {
				c.StorageDriver = DriverRedis
				c.RedisDB = 5
			},
		},
		{
			name:     "no flags keeps values",
			args:     nil,
			expected: func(c *Config) {},
		},
		{
			name:    "bad number",
			args:    []string{"--redis-db", "abc"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := newFlagSetNoParse()
			err := fs.Parse(tt.args)
			if tt.wantErr {
				// pflag rejects non-integers for Int flags during Parse.
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			cfg := defaults()
			require.NoError(t, parseFlags(cfg, fs))

			want := defaults()
			tt.expected(want)
			assert.Empty(t, cmp.Diff(want, cfg))
		})
	}
}
