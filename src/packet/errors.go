// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package packet

import "errors"

var (
	// ErrProtocolViolation is returned when a received packet decodes to a
	// length that does not fit inside it.
	ErrProtocolViolation = errors.New("packet: protocol violation")
	// ErrSlopExceeded is returned when an output transform grows a packet by
	// more than Slop bytes.
	ErrSlopExceeded = errors.New("packet: transform exceeded slop")
	// ErrNotPacketizer is returned by SetWrap for a buffer whose backend is
	// not a Packetizer.
	ErrNotPacketizer = errors.New("packet: buffer is not packetizing")
)
