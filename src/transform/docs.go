// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package transform provides the payload transforms used with packetizing
// buffers.
//
//   - [Identity] passes payloads through unchanged.
//   - [AEAD] encrypts each packet with XChaCha20-Poly1305 under a random
//     nonce carried in the packet.
//   - [Deflater] compresses an output stream for the raw, unframed variant
//     of the packetizer; [Inflater] is the matching input backend.
package transform
