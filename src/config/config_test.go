// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv(EnvFile, "")
	t.Setenv(EnvKey, "")

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
	assert.Equal(t, TransformIdentity, c.Packet.Transform)
	assert.Equal(t, "M", c.Lines.Command)
	assert.Equal(t, DefaultCompressLevel, c.Packet.CompressLevel)
}

func TestLoadFormats(t *testing.T) {
	t.Setenv(EnvKey, "")

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "yaml",
			file: "cvs.yaml",
			content: `pool:
  maxSegments: 64
packet:
  transform: xchacha20
  key: hunter2
  compressLevel: 6
lines:
  command: E
  charset: windows-1252
log:
  format: json
  level: debug
`,
		},
		{
			name: "yml upper case",
			file: "CVS.YML",
			content: `pool: {maxSegments: 64}
packet: {transform: xchacha20, key: hunter2, compressLevel: 6}
lines: {command: E, charset: windows-1252}
log: {format: json, level: debug}
`,
		},
		{
			name: "json",
			file: "cvs.json",
			content: `{"pool":{"maxSegments":64},
"packet":{"transform":"xchacha20","key":"hunter2","compressLevel":6},
"lines":{"command":"E","charset":"windows-1252"},
"log":{"format":"json","level":"debug"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Load(writeFile(t, tt.file, tt.content))
			require.NoError(t, err)
			assert.Equal(t, 64, c.Pool.MaxSegments)
			assert.Equal(t, TransformXChaCha20, c.Packet.Transform)
			assert.Equal(t, "hunter2", c.Packet.Key)
			assert.Equal(t, 6, c.Packet.CompressLevel)
			assert.Equal(t, "E", c.Lines.Command)
			assert.Equal(t, "windows-1252", c.Lines.Charset)
			assert.Equal(t, LogFormatJSON, c.Log.Format)
			assert.Equal(t, "debug", c.Log.Level)
		})
	}
}

func TestLoadSanitizes(t *testing.T) {
	path := writeFile(t, "bad.yaml", `pool: {maxSegments: -3}
packet: {transform: rot13, compressLevel: 12}
lines: {command: MM}
log: {format: xml, level: ""}
`)
	c, err := Load(path)
	require.NoError(t, err)
	assert.Zero(t, c.Pool.MaxSegments)
	assert.Equal(t, TransformIdentity, c.Packet.Transform)
	assert.Equal(t, DefaultCompressLevel, c.Packet.CompressLevel)
	assert.Equal(t, "M", c.Lines.Command)
	assert.Equal(t, LogFormatText, c.Log.Format)
	assert.Equal(t, "info", c.Log.Level)
}

func TestLoadEnvironment(t *testing.T) {
	path := writeFile(t, "env.json", `{"packet":{"transform":"xchacha20"}}`)
	t.Setenv(EnvFile, path)
	t.Setenv(EnvKey, "from-env")

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, TransformXChaCha20, c.Packet.Transform)
	assert.Equal(t, "from-env", c.Packet.Key)

	keyed := writeFile(t, "keyed.json", `{"packet":{"key":"from-file"}}`)
	c, err = Load(keyed)
	require.NoError(t, err)
	assert.Equal(t, "from-file", c.Packet.Key, "file key wins over the environment")
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
		want string
	}{
		{
			name: "missing file",
			path: func(t *testing.T) string { return filepath.Join(t.TempDir(), "none.json") },
			want: "failed to read config file",
		},
		{
			name: "bad json",
			path: func(t *testing.T) string { return writeFile(t, "bad.json", "{") },
			want: "failed to parse JSON config file",
		},
		{
			name: "bad yaml",
			path: func(t *testing.T) string { return writeFile(t, "bad.yaml", "pool: [") },
			want: "failed to parse YAML config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path(t))
			assert.ErrorContains(t, err, tt.want)
		})
	}
}
