// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package buffer implements the segmented byte buffer that carries every
// client/server stream of the transport.
//
// A [Buffer] is an ordered chain of fixed-size [Segment] values drawn from a
// shared [Pool]. Application code appends records to the tail, and the
// buffer drains them through a pluggable [Backend] (a stdio stream, a
// nonblocking descriptor, or a packetizing decorator around another buffer).
// Input flows the other way: the backend fills tail segments and callers
// extract lines, counted records, or zero-copy views from the head.
//
// Segments are owned by exactly one buffer at a time. Operations such as
// [CopyLines], [CopyCounted] and [Buffer.AppendBuffer] move whole segments
// between buffers by relinking the chain rather than copying bytes.
//
// Buffer is NOT safe for concurrent use. Use one Buffer per stream direction.
// The segment Pool is safe for concurrent use.
package buffer
