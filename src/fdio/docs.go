// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package fdio provides a [buffer.Backend] over a raw file descriptor, such
// as one end of a pipe or a connected socket, that can switch into
// nonblocking mode.
//
// In nonblocking mode a read or write that would block returns a short
// count with a nil error, so the owning buffer can be driven from an
// external poll loop. When the caller still needs a minimum number of bytes
// the backend waits for readability itself.
//
// The backend is only available on Unix systems; elsewhere every
// constructor returns [buffer.ErrUnsupported].
package fdio
