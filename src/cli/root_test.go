// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli_test

import (
	"context"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/H0llyW00dzZ/cvs-transport/src/buffer"
	"github.com/H0llyW00dzZ/cvs-transport/src/cli"
	"github.com/H0llyW00dzZ/cvs-transport/src/config"
	"github.com/H0llyW00dzZ/cvs-transport/src/internal/charset"
	"github.com/H0llyW00dzZ/cvs-transport/src/logger"
	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteCancelled(t *testing.T) {
	t.Setenv(config.EnvFile, "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	log := logger.NewCLILogger()
	log.SetOutput(&strings.Builder{})
	cmd := cli.NewRootCommand("test", log)
	cmd.SetArgs([]string{"pack"})
	cmd.SetIn(strings.NewReader("data"))
	cmd.SetOut(&strings.Builder{})

	err := cmd.ExecuteContext(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestVersionFlag(t *testing.T) {
	res := run(t, nil, "--version")
	require.NoError(t, res.err)
	assert.Contains(t, string(res.out), "test")
}

func TestPackUnpackRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		args []string
		size int
	}{
		{"identity empty", nil, 0},
		{"identity small", nil, 11},
		{"identity multi segment", nil, 3*buffer.SegmentCapacity + 17},
		{"xchacha20", []string{"--transform", "xchacha20", "--key", "hunter2"}, 10000},
		{"deflate", []string{"--compress"}, 20000},
		{"deflate stored", []string{"--compress", "--level", "0"}, 5000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := pattern(tt.size)

			packed := run(t, data, append([]string{"pack"}, tt.args...)...)
			require.NoError(t, packed.err)
			assert.Contains(t, packed.log, fmt.Sprintf("packed %d bytes", tt.size))

			unpacked := run(t, packed.out, append([]string{"unpack"}, tt.args...)...)
			require.NoError(t, unpacked.err)
			assert.Equal(t, string(data), string(unpacked.out))
		})
	}
}

func TestPackWireFormat(t *testing.T) {
	res := run(t, []byte("hello"), "pack")
	require.NoError(t, res.err)
	assert.Equal(t, []byte{0, 7, 0, 5, 'h', 'e', 'l', 'l', 'o'}, res.out)
}

func TestPackKeyRequired(t *testing.T) {
	res := run(t, []byte("x"), "pack", "--transform", "xchacha20")
	assert.ErrorIs(t, res.err, cli.ErrKeyRequired)
}

func TestPackUnknownTransform(t *testing.T) {
	res := run(t, []byte("x"), "pack", "--transform", "rot13")
	assert.ErrorIs(t, res.err, cli.ErrUnknownTransform)
}

func TestUnpackWrongKey(t *testing.T) {
	packed := run(t, pattern(100), "pack", "--transform", "xchacha20", "--key", "right")
	require.NoError(t, packed.err)

	res := run(t, packed.out, "unpack", "--transform", "xchacha20", "--key", "wrong")
	assert.Error(t, res.err)
}

func TestPackPoolExhausted(t *testing.T) {
	res := run(t, pattern(4*buffer.SegmentCapacity), "--max-segments", "1", "pack")
	assert.ErrorIs(t, res.err, buffer.ErrOutOfMemory)
}

func TestPackFiles(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "plain")
	wire := filepath.Join(dir, "wire")
	back := filepath.Join(dir, "back")
	data := pattern(9000)
	require.NoError(t, os.WriteFile(plain, data, 0o600))

	require.NoError(t, run(t, nil, "pack", "-i", plain, "-o", wire).err)
	require.NoError(t, run(t, nil, "unpack", "-i", wire, "-o", back).err)

	got, err := os.ReadFile(back)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestMissingInputFile(t *testing.T) {
	res := run(t, nil, "pack", "-i", filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, res.err, os.ErrNotExist)
}

func TestInspect(t *testing.T) {
	data := pattern(2*buffer.SegmentCapacity + 1808)
	packed := run(t, data, "pack")
	require.NoError(t, packed.err)

	res := run(t, packed.out, "inspect")
	require.NoError(t, res.err)
	report := strings.ToUpper(string(res.out))

	last := append([]byte{0x07, 0x10}, data[2*buffer.SegmentCapacity:]...)
	assert.Contains(t, report, "WIRE LENGTH")
	assert.Contains(t, report, "4098")
	assert.Contains(t, report, "1810")
	assert.Contains(t, report, strings.ToUpper(fmt.Sprintf("%016x", xxhash.Sum64(last))))
	assert.Contains(t, report, "SEGMENTS")
}

func TestInspectTruncated(t *testing.T) {
	res := run(t, []byte{0, 9, 0, 7, 'a'}, "inspect")
	assert.ErrorIs(t, res.err, cli.ErrTruncatedFrame)
}

func TestInspectBadFrame(t *testing.T) {
	// The decoded length claims more than the frame carries.
	res := run(t, []byte{0, 3, 0, 9, 'a'}, "inspect")
	require.NoError(t, res.err)
	assert.Contains(t, string(res.out), "protocol")
}

func TestLines(t *testing.T) {
	tests := []struct {
		name string
		args []string
		in   string
		want string
	}{
		{"default command", nil, "a\nbb\n", "M a\nM bb\n"},
		{"trailing partial line", []string{"--command", "E"}, "one\ntwo", "E one\nE two\n"},
		{"empty input", nil, "", ""},
		{"windows-1252", []string{"--charset", "windows-1252"}, "caf\xe9\nna\xefve", "M café\nM naïve\n"},
		{"long line", nil, strings.Repeat("x", 3*buffer.SegmentCapacity) + "\n", "M " + strings.Repeat("x", 3*buffer.SegmentCapacity) + "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := run(t, []byte(tt.in), append([]string{"lines"}, tt.args...)...)
			require.NoError(t, res.err)
			assert.Equal(t, tt.want, string(res.out))
		})
	}
}

func TestLinesErrors(t *testing.T) {
	res := run(t, []byte("x\n"), "lines", "--command", "EE")
	assert.ErrorIs(t, res.err, cli.ErrCommandByte)

	res = run(t, []byte("x\n"), "lines", "--charset", "no-such-charset")
	assert.ErrorIs(t, res.err, charset.ErrUnknown)
}

func TestLinesFromConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("lines:\n  command: E\n"), 0o600))

	res := run(t, []byte("boom\n"), "--config", path, "lines")
	require.NoError(t, res.err)
	assert.Equal(t, "E boom\n", string(res.out))
}

func TestCountedEncode(t *testing.T) {
	res := run(t, []byte("hello"), "counted")
	require.NoError(t, res.err)

	want := binary.NativeEndian.AppendUint32(nil, 5)
	want = append(want, "hello"...)
	want = binary.NativeEndian.AppendUint32(want, uint32(0xffffffff))
	assert.Equal(t, want, res.out)
}

func TestCountedRoundTrip(t *testing.T) {
	data := pattern(3*buffer.SegmentCapacity + 5)
	enc := run(t, data, "counted", "--special", "-7")
	require.NoError(t, enc.err)

	dec := run(t, enc.out, "counted", "--decode")
	require.NoError(t, dec.err)
	assert.Equal(t, data, dec.out)
	assert.Contains(t, dec.log, "special count -7")
}

func TestCountedTruncated(t *testing.T) {
	in := binary.NativeEndian.AppendUint32(nil, 10)
	in = append(in, "short"...)
	res := run(t, in, "counted", "-d")
	assert.ErrorIs(t, res.err, cli.ErrTruncatedRecord)
}

func TestCountedSpecialMustBeNegative(t *testing.T) {
	res := run(t, nil, "counted", "--special", "0")
	assert.Error(t, res.err)
}

func TestStructuredLogFormat(t *testing.T) {
	res := run(t, []byte("abc"), "--log-format", "json", "pack")
	require.NoError(t, res.err)
	assert.Contains(t, res.log, `"message":"packed 3 bytes`)
}

func TestInvalidConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))

	res := run(t, nil, "--config", path, "pack")
	assert.Error(t, res.err)
}
