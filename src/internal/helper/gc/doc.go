// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package gc provides reusable byte buffer pooling to reduce garbage collection overhead.
// It abstracts the [bytebufferpool] library so scratch memory for compression sinks
// and rendered CLI output is recycled instead of reallocated per call.
//
// Segment memory for transport buffers is managed separately by the buffer package;
// this pool is for variable-sized scratch that does not fit a fixed segment.
//
// [bytebufferpool]: https://github.com/valyala/bytebufferpool
package gc
