// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package transform

import (
	"errors"
	"fmt"
	"io"

	"github.com/H0llyW00dzZ/cvs-transport/src/buffer"
	"github.com/H0llyW00dzZ/cvs-transport/src/internal/helper/gc"
	"github.com/H0llyW00dzZ/cvs-transport/src/packet"
	"github.com/klauspost/compress/flate"
)

// Deflater compresses an output stream one chunk at a time. Each Translate
// call emits a sync-flushed deflate block, so the receiver can decode
// everything sent so far. It keeps state between calls and must be used for
// exactly one stream.
type Deflater struct {
	w    *flate.Writer
	sink gc.Buffer
}

// NewDeflater returns a deflater at level, which must be
// [flate.DefaultCompression] or between [flate.NoCompression] and
// [flate.BestCompression].
func NewDeflater(level int) (*Deflater, error) {
	if level != flate.DefaultCompression && (level < flate.NoCompression || level > flate.BestCompression) {
		return nil, fmt.Errorf("%w: %d", ErrLevel, level)
	}
	sink := gc.Default.Get()
	sink.Reset()
	w, err := flate.NewWriter(sink, level)
	if err != nil {
		gc.Default.Put(sink)
		return nil, fmt.Errorf("transform: %w", err)
	}
	return &Deflater{w: w, sink: sink}, nil
}

// Translate compresses in and writes the flushed block to out.
func (d *Deflater) Translate(in, out []byte) (int, error) {
	d.sink.Reset()
	if _, err := d.w.Write(in); err != nil {
		return 0, fmt.Errorf("transform: deflate: %w", err)
	}
	if err := d.w.Flush(); err != nil {
		return 0, fmt.Errorf("transform: deflate flush: %w", err)
	}
	if d.sink.Len() > len(out) {
		return 0, fmt.Errorf("%w: deflate produced %d bytes from %d", packet.ErrSlopExceeded, d.sink.Len(), len(in))
	}
	return copy(out, d.sink.Bytes()), nil
}

// Close ends the stream, writing the final block to dst, and releases the
// deflater's scratch. The deflater cannot be used afterwards.
func (d *Deflater) Close(dst io.Writer) error {
	d.sink.Reset()
	if err := d.w.Close(); err != nil {
		return fmt.Errorf("transform: deflate close: %w", err)
	}
	_, err := d.sink.WriteTo(dst)
	d.sink.Reset()
	gc.Default.Put(d.sink)
	return err
}

// Inflater is an input [buffer.Backend] that decompresses a deflate stream
// read from an inner buffer. It only works in blocking mode.
type Inflater struct {
	buffer.Unsupported

	inner *buffer.Buffer
	r     io.ReadCloser
}

// NewInflater returns a buffer yielding the decompressed contents of inner.
func NewInflater(inner *buffer.Buffer, opts ...buffer.Option) *buffer.Buffer {
	opts = append([]buffer.Option{buffer.WithPool(inner.Pool())}, opts...)
	return buffer.New(NewInflaterBackend(inner), opts...)
}

// NewInflaterBackend returns the backend used by [NewInflater].
func NewInflaterBackend(inner *buffer.Buffer) *Inflater {
	return &Inflater{inner: inner, r: flate.NewReader(inner)}
}

// Input decompresses at least need bytes, and at least one, into p.
func (f *Inflater) Input(p []byte, need int) (int, error) {
	n, err := io.ReadAtLeast(f.r, p, min(max(need, 1), len(p)))
	switch {
	case err == nil:
		return n, nil
	case errors.Is(err, io.ErrUnexpectedEOF) && n > 0:
		return n, nil
	case errors.Is(err, io.EOF):
		return n, io.EOF
	default:
		return n, fmt.Errorf("transform: inflate: %w", err)
	}
}

// SetBlocking accepts only blocking mode.
func (f *Inflater) SetBlocking(block bool) error {
	if !block {
		return buffer.ErrUnsupported
	}
	return f.inner.SetBlocking(true)
}

// Shutdown closes the decompressor and shuts down the inner buffer.
func (f *Inflater) Shutdown() error {
	return errors.Join(f.r.Close(), f.inner.Shutdown())
}
