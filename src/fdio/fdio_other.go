// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

//go:build !unix

package fdio

import "github.com/H0llyW00dzZ/cvs-transport/src/buffer"

// Backend is unavailable on this platform.
type Backend struct {
	buffer.Unsupported
}

// NewBackend reports [buffer.ErrUnsupported].
func NewBackend(int) (*Backend, error) { return nil, buffer.ErrUnsupported }

// New reports [buffer.ErrUnsupported].
func New(int, ...buffer.Option) (*buffer.Buffer, error) { return nil, buffer.ErrUnsupported }

// Fd returns -1.
func (*Backend) Fd() int { return -1 }
