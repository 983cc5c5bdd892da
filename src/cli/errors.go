// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import "errors"

var (
	// ErrKeyRequired is returned when xchacha20 is selected without a key.
	ErrKeyRequired = errors.New("a key is required for the xchacha20 transform (use --key or CVS_TRANSPORT_KEY)")
	// ErrUnknownTransform is returned for a transform name that is not supported.
	ErrUnknownTransform = errors.New("unknown transform")
	// ErrCommandByte is returned when the line command is not a single byte.
	ErrCommandByte = errors.New("command must be a single byte")
	// ErrTruncatedRecord is returned when a counted stream ends inside a record.
	ErrTruncatedRecord = errors.New("stream ended inside a counted record")
	// ErrTruncatedFrame is returned when inspect reaches end of input inside a frame.
	ErrTruncatedFrame = errors.New("stream ended inside a frame")
)
