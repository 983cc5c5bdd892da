// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// cvs-transport is a command-line tool that moves byte streams through the
// segmented buffer stack used by a CVS client/server connection.
//
// # Installation
//
// Install with Go 1.25.5 or later:
//
//	go install github.com/H0llyW00dzZ/cvs-transport/cmd/cvs-transport@latest
//
// # Usage
//
//	cvs-transport [GLOBAL FLAGS] COMMAND [FLAGS]
//
// # Global Flags
//
//	    --config        Configuration file (.json, .yaml, .yml)
//	    --log-format    text or json
//	    --log-level     debug, info, warn, error (json logs)
//	    --max-segments  Cap on pooled segments, 0 for unlimited
//
// # Commands
//
//	pack     Packetize stdin with identity or xchacha20, or deflate it
//	unpack   Reverse pack
//	inspect  Print a markdown table of the frames of a packetized stream
//	lines    Relay lines as "<command> <line>", optionally from another charset
//	counted  Frame stdin as host-order counted records, or decode them with -d
//
// # Examples
//
// Encrypt a stream and decode it again:
//
//	cvs-transport pack --transform xchacha20 --key secret < plain > wire
//	cvs-transport unpack --transform xchacha20 --key secret < wire > plain
//
// Relay a child's stderr as protocol error lines:
//
//	make 2>&1 | cvs-transport lines --command E
//
// Diagnostics are written to stderr, so stdout only ever carries the stream.
package main
