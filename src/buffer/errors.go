// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package buffer

import "errors"

var (
	// ErrNoBackend is returned by I/O operations on a buffer created without a backend.
	ErrNoBackend = errors.New("buffer: no backend")
	// ErrUnsupported is returned by a backend that does not provide a capability.
	ErrUnsupported = errors.New("buffer: operation not supported by backend")
	// ErrOutOfMemory is returned when the segment pool is exhausted and the
	// memory-error handler chose to report it instead of terminating.
	ErrOutOfMemory = errors.New("buffer: out of memory")
)
