// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package buffer

import (
	"fmt"
	"os"
)

// MemoryErrorHandler is invoked when a [Buffer] cannot obtain a segment from
// its pool. A handler either terminates the process or returns the error
// the failed operation should report.
type MemoryErrorHandler func(b *Buffer) error

// exit is replaced in tests.
var exit = os.Exit

// AbortOnMemoryError is the default handler. It prints a diagnostic to
// stderr and exits the process with status 1.
func AbortOnMemoryError(b *Buffer) error {
	fmt.Fprintln(os.Stderr, "out of memory in buffer")
	exit(1)
	return ErrOutOfMemory
}

// ReturnMemoryError reports exhaustion as [ErrOutOfMemory] so the caller can
// degrade gracefully. Bytes appended before the failure stay queued.
func ReturnMemoryError(*Buffer) error { return ErrOutOfMemory }
