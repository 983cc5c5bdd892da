// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

//go:build unix

package fdio

import (
	"errors"
	"fmt"
	"io"

	"github.com/H0llyW00dzZ/cvs-transport/src/buffer"
	"golang.org/x/sys/unix"
)

// Backend performs I/O directly on a file descriptor.
type Backend struct {
	fd          int
	nonblocking bool
	closed      bool
}

// NewBackend wraps fd. The descriptor is assumed to be in blocking mode.
func NewBackend(fd int) (*Backend, error) {
	if fd < 0 {
		return nil, fmt.Errorf("fdio: invalid descriptor %d", fd)
	}
	return &Backend{fd: fd}, nil
}

// New returns a buffer on top of fd.
func New(fd int, opts ...buffer.Option) (*buffer.Buffer, error) {
	be, err := NewBackend(fd)
	if err != nil {
		return nil, err
	}
	return buffer.New(be, opts...), nil
}

// Fd returns the wrapped descriptor.
func (b *Backend) Fd() int { return b.fd }

// Input reads into p until at least need bytes have arrived. In
// nonblocking mode it returns what is ready once need is satisfied, and
// polls for readability while it is not.
func (b *Backend) Input(p []byte, need int) (int, error) {
	if b.closed {
		return 0, ErrClosed
	}
	got := 0
	for got < len(p) {
		n, err := unix.Read(b.fd, p[got:])
		switch {
		case errors.Is(err, unix.EINTR):
			continue
		case errors.Is(err, unix.EAGAIN):
			if got >= need {
				return got, nil
			}
			if err := b.waitReadable(); err != nil {
				return got, err
			}
			continue
		case err != nil:
			return got, fmt.Errorf("fdio: read: %w", err)
		case n == 0:
			if got > 0 {
				return got, nil
			}
			return 0, io.EOF
		}
		got += n
		if got >= need && (!b.nonblocking || need > 0) {
			return got, nil
		}
	}
	return got, nil
}

func (b *Backend) waitReadable() error {
	fds := []unix.PollFd{{Fd: int32(b.fd), Events: unix.POLLIN}}
	for {
		_, err := unix.Poll(fds, -1)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			return fmt.Errorf("fdio: poll: %w", err)
		}
		return nil
	}
}

// Output writes p. In blocking mode it loops until everything is written;
// in nonblocking mode it stops as soon as the descriptor would block.
func (b *Backend) Output(p []byte) (int, error) {
	if b.closed {
		return 0, ErrClosed
	}
	written := 0
	for written < len(p) {
		n, err := unix.Write(b.fd, p[written:])
		switch {
		case errors.Is(err, unix.EINTR):
			continue
		case errors.Is(err, unix.EAGAIN):
			return written, nil
		case err != nil:
			return written, fmt.Errorf("fdio: write: %w", err)
		}
		written += n
		if b.nonblocking {
			return written, nil
		}
	}
	return written, nil
}

// Flush is a no-op: writes go straight to the descriptor.
func (b *Backend) Flush() error { return nil }

// SetBlocking toggles O_NONBLOCK on the descriptor.
func (b *Backend) SetBlocking(block bool) error {
	if b.closed {
		return ErrClosed
	}
	if err := unix.SetNonblock(b.fd, !block); err != nil {
		return fmt.Errorf("fdio: set nonblock: %w", err)
	}
	b.nonblocking = !block
	return nil
}

// Shutdown closes the descriptor. Later calls do nothing.
func (b *Backend) Shutdown() error {
	if b.closed {
		return nil
	}
	b.closed = true
	if err := unix.Close(b.fd); err != nil {
		return fmt.Errorf("fdio: close: %w", err)
	}
	return nil
}
