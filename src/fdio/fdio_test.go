// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

//go:build unix

package fdio_test

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/H0llyW00dzZ/cvs-transport/src/buffer"
	"github.com/H0llyW00dzZ/cvs-transport/src/fdio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

// pipe returns read and write backends over a fresh pipe.
func pipe(t *testing.T) (*fdio.Backend, *fdio.Backend) {
	t.Helper()
	fds := make([]int, 2)
	require.NoError(t, unix.Pipe(fds))

	r, err := fdio.NewBackend(fds[0])
	require.NoError(t, err)
	w, err := fdio.NewBackend(fds[1])
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = r.Shutdown()
		_ = w.Shutdown()
	})
	return r, w
}

func TestNewBackendRejectsNegative(t *testing.T) {
	_, err := fdio.NewBackend(-1)
	assert.Error(t, err)
}

func TestBlockingRoundTrip(t *testing.T) {
	r, w := pipe(t)
	pool := buffer.NewPool()
	out := buffer.New(w, buffer.WithPool(pool))
	in := buffer.New(r, buffer.WithPool(pool))

	_, err := out.WriteString("first line\nsecond line\n")
	require.NoError(t, err)
	require.NoError(t, out.Flush(false))
	require.NoError(t, w.Shutdown())

	line, err := in.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "first line", string(line))
	line, err = in.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "second line", string(line))
	_, err = in.ReadLine()
	assert.ErrorIs(t, err, io.EOF)
}

func TestNonblockingInput(t *testing.T) {
	r, w := pipe(t)
	in := buffer.New(r, buffer.WithPool(buffer.NewPool()))
	require.NoError(t, in.SetBlocking(false))

	// Nothing ready is transient, not an error.
	n, err := in.InputData()
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = w.Output([]byte("ready"))
	require.NoError(t, err)
	n, err = in.InputData()
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	require.NoError(t, w.Shutdown())
	_, err = in.InputData()
	assert.ErrorIs(t, err, io.EOF)
}

func TestNonblockingWaitsForNeed(t *testing.T) {
	r, w := pipe(t)
	require.NoError(t, r.SetBlocking(false))

	go func() {
		time.Sleep(20 * time.Millisecond)
		_, _ = w.Output([]byte("abcd"))
	}()

	p := make([]byte, 16)
	n, err := r.Input(p, 4)
	require.NoError(t, err)
	assert.Equal(t, "abcd", string(p[:n]))
}

func TestNonblockingPartialWrite(t *testing.T) {
	r, w := pipe(t)
	out := buffer.New(w, buffer.WithPool(buffer.NewPool()))
	require.NoError(t, out.SetBlocking(false))

	data := bytes.Repeat([]byte("p"), 1<<20)
	_, err := out.Write(data)
	require.NoError(t, err)
	require.NoError(t, out.SendOutput())
	pending := out.Len()
	assert.Positive(t, pending, "a full pipe must leave output queued")
	assert.Less(t, pending, len(data))

	// Drain the pipe and finish in blocking mode.
	done := make(chan []byte)
	go func() {
		var got []byte
		p := make([]byte, 64<<10)
		for {
			n, err := r.Input(p, 1)
			got = append(got, p[:n]...)
			if err != nil {
				done <- got
				return
			}
		}
	}()
	require.NoError(t, out.Flush(true))
	assert.True(t, out.IsEmpty())
	assert.False(t, out.Blocking())
	require.NoError(t, w.Shutdown())
	assert.Equal(t, data, <-done)
}

func TestShutdown(t *testing.T) {
	r, _ := pipe(t)
	require.NoError(t, r.Shutdown())
	require.NoError(t, r.Shutdown())

	_, err := r.Input(make([]byte, 1), 1)
	assert.ErrorIs(t, err, fdio.ErrClosed)
	assert.ErrorIs(t, r.SetBlocking(false), fdio.ErrClosed)
	assert.NoError(t, r.Flush())
}
