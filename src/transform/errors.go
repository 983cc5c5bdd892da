// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package transform

import "errors"

var (
	// ErrShortPacket is returned when an encrypted packet is too small to
	// hold a nonce and tag.
	ErrShortPacket = errors.New("transform: packet too short")
	// ErrKeySize is returned for a key that is not 32 bytes.
	ErrKeySize = errors.New("transform: key must be 32 bytes")
	// ErrLevel is returned for an unsupported compression level.
	ErrLevel = errors.New("transform: invalid compression level")
)
