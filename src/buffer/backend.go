// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package buffer

// Backend performs the raw I/O for a [Buffer].
//
// Input reads into p, which is the free tail capacity of a segment. It must
// transfer at least need bytes unless the stream ends, fails, or the backend
// is in nonblocking mode, in which case fewer bytes (including zero) may be
// returned with a nil error. End of stream is reported as [io.EOF].
//
// Output writes a prefix of p and returns how much was taken. A short count
// with a nil error is only permitted in nonblocking mode.
//
// Flush pushes any data buffered inside the backend itself. SetBlocking
// switches the backend between blocking and nonblocking mode. Shutdown
// releases the backend's transport.
type Backend interface {
	Input(p []byte, need int) (int, error)
	Output(p []byte) (int, error)
	Flush() error
	SetBlocking(block bool) error
	Shutdown() error
}

// Unsupported is embedded by backends to fill in the capabilities they do
// not provide. Every method except Shutdown returns [ErrUnsupported];
// Shutdown is a no-op.
type Unsupported struct{}

// Input reports [ErrUnsupported].
func (Unsupported) Input([]byte, int) (int, error) { return 0, ErrUnsupported }

// Output reports [ErrUnsupported].
func (Unsupported) Output([]byte) (int, error) { return 0, ErrUnsupported }

// Flush reports [ErrUnsupported].
func (Unsupported) Flush() error { return ErrUnsupported }

// SetBlocking reports [ErrUnsupported].
func (Unsupported) SetBlocking(bool) error { return ErrUnsupported }

// Shutdown does nothing.
func (Unsupported) Shutdown() error { return nil }
