// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package packet frames the bytes of an inner [buffer.Buffer] into
// self-describing, length-prefixed packets and runs each packet's payload
// through a transform such as encryption or compression.
//
// Wire format, per packet:
//
//	[u16 big-endian wire length][wire length bytes of transformed payload]
//
// The transformed payload decodes to a block whose first two bytes are the
// big-endian length of the real data that follows. This lets a transform
// grow its output by up to [Slop] bytes and still be undone exactly.
//
// A packetizer is either an input or an output decorator, never both. The
// raw output variant ([NewRawOutput]) skips both length headers and is meant
// for stream transforms that keep their own framing, such as deflate.
//
// Protocol violations reported by the input side mean a corrupted peer or a
// mismatched transform; the connection must be torn down.
package packet
