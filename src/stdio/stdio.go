// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package stdio adapts synchronous byte streams, such as a process's
// standard input and output, to the [buffer.Backend] contract.
//
// The backend never goes nonblocking. Reads of a single byte go through the
// stream's own [bufio.Reader] without extra look-ahead; larger reads pull as
// much as is ready up to the segment room offered. Output writes every byte
// or fails: a synchronous stream does not short-write.
package stdio

import (
	"bufio"
	"fmt"
	"io"

	"github.com/H0llyW00dzZ/cvs-transport/src/buffer"
)

// Backend is a blocking [buffer.Backend] over an [io.Reader] or [io.Writer].
type Backend struct {
	buffer.Unsupported

	r *bufio.Reader
	w *bufio.Writer
	c io.Closer
}

// NewReader returns an input buffer reading from r.
func NewReader(r io.Reader, opts ...buffer.Option) *buffer.Buffer {
	return buffer.New(NewInputBackend(r), opts...)
}

// NewWriter returns an output buffer writing to w. Flushing the buffer
// flushes the underlying stream.
func NewWriter(w io.Writer, opts ...buffer.Option) *buffer.Buffer {
	return buffer.New(NewOutputBackend(w), opts...)
}

// NewInputBackend wraps r. If r is also an [io.Closer] it is closed on
// Shutdown.
func NewInputBackend(r io.Reader) *Backend {
	b := &Backend{r: bufio.NewReaderSize(r, buffer.SegmentCapacity)}
	b.c, _ = r.(io.Closer)
	return b
}

// NewOutputBackend wraps w. If w is also an [io.Closer] it is closed on
// Shutdown after a final flush.
func NewOutputBackend(w io.Writer) *Backend {
	b := &Backend{w: bufio.NewWriterSize(w, buffer.SegmentCapacity)}
	b.c, _ = w.(io.Closer)
	return b
}

// Input reads at least need bytes into p. A need of one reads a single
// byte; zero takes a single read of whatever the stream has.
func (b *Backend) Input(p []byte, need int) (int, error) {
	if b.r == nil {
		return 0, buffer.ErrUnsupported
	}
	if len(p) == 0 {
		return 0, nil
	}
	if need <= 0 {
		n, err := b.r.Read(p)
		if err == io.EOF && n > 0 {
			err = nil
		}
		return n, err
	}
	if need == 1 {
		c, err := b.r.ReadByte()
		if err != nil {
			return 0, err
		}
		p[0] = c
		return 1, nil
	}

	n, err := io.ReadAtLeast(b.r, p, min(need, len(p)))
	// Take whatever else the stream already holds, without blocking.
	for err == nil && n < len(p) && b.r.Buffered() > 0 {
		var m int
		m, err = b.r.Read(p[n:])
		n += m
	}
	if err == io.ErrUnexpectedEOF || (err == io.EOF && n > 0) {
		err = nil
	}
	return n, err
}

// Output writes all of p.
func (b *Backend) Output(p []byte) (int, error) {
	if b.w == nil {
		return 0, buffer.ErrUnsupported
	}
	n, err := b.w.Write(p)
	if err != nil {
		return n, fmt.Errorf("stdio: write: %w", err)
	}
	return n, nil
}

// Flush pushes buffered output to the stream. It is a no-op for input.
func (b *Backend) Flush() error {
	if b.w == nil {
		return nil
	}
	if err := b.w.Flush(); err != nil {
		return fmt.Errorf("stdio: flush: %w", err)
	}
	return nil
}

// Shutdown flushes pending output and closes the stream when it can be
// closed.
func (b *Backend) Shutdown() error {
	if err := b.Flush(); err != nil {
		return err
	}
	if b.c != nil {
		return b.c.Close()
	}
	return nil
}
