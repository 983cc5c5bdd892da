// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package cli provides the command-line interface for cvs-transport.
// It implements a Cobra-based CLI that moves standard input to standard output
// through the segmented buffer stack: packetizing and unpacketizing streams with
// an optional encryption or compression transform, inspecting raw packet frames,
// relaying text lines with a command prefix, and framing counted records.
// The package handles file I/O, context cancellation, and integrates with the
// logger package for human-readable or structured diagnostics.
package cli
