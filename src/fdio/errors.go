// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package fdio

import "errors"

// ErrClosed is returned by operations on a backend after Shutdown.
var ErrClosed = errors.New("fdio: descriptor closed")
