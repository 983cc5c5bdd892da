// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package buffer

import "encoding/binary"

// CountSize is the width of a counted-record header.
//
// Counted records carry a host-order int32. They are only valid between
// processes on the same machine (a local pipe) and must never cross a link
// whose peers may disagree on byte order.
const CountSize = 4

// prependCount pushes a segment holding count in front of the chain.
func (b *Buffer) prependCount(count int32) error {
	s, err := b.newSegment()
	if err != nil {
		return err
	}
	binary.NativeEndian.PutUint32(s.data, uint32(count))
	s.n = CountSize

	s.next = b.head
	b.head = s
	if b.tail == nil {
		b.tail = s
	}
	return b.SendOutput()
}

// SendCounted prefixes the queued bytes with their length as a counted
// record and sends everything. Nothing is sent when the buffer is empty.
func (b *Buffer) SendCounted() error {
	size := b.Len()
	if size == 0 {
		return nil
	}
	return b.prependCount(int32(size))
}

// SendSpecialCount sends a bare negative count, an out-of-band marker that
// [CopyCounted] reports through its special result.
func (b *Buffer) SendSpecialCount(count int32) error {
	return b.prependCount(count)
}

// CopyCounted moves complete counted records from src to dst.
//
// Each record is a [CountSize] header followed by that many payload bytes.
// Payload spans covering whole segments are relinked onto dst; a partial
// trailing segment is copied and its cursor advanced. Headers are consumed
// and never reach dst.
//
// Returns:
//   - need: how many more bytes src must receive before the next record can
//     be moved; nothing of an incomplete record is consumed
//   - special: the value of a negative count, which stops the copy after
//     consuming only its header; zero otherwise
//   - err: memory-error handler result if a partial copy could not allocate
func CopyCounted(dst, src *Buffer) (need int, special int32, err error) {
	for {
		var hdr [CountSize]byte
		need = CountSize
		filled := 0
		var s *Segment
		for s = src.head; s != nil; s = s.next {
			if s.n >= need {
				copy(hdr[filled:], s.Bytes()[:need])
				break
			}
			filled += copy(hdr[filled:], s.Bytes())
			need -= s.n
		}
		if s == nil {
			return need, 0, nil
		}

		count := int32(binary.NativeEndian.Uint32(hdr[:]))
		start, startOff := s, need

		var stop *Segment
		stopWant := 0
		if count < 0 {
			stop = start
		} else {
			need = int(count) - (start.n - startOff)
			if need <= 0 {
				stop, stopWant = start, int(count)
			} else {
				for s = start.next; s != nil; s = s.next {
					if need <= s.n {
						break
					}
					need -= s.n
				}
				if s == nil {
					return need, 0, nil
				}
				stop, stopWant = s, need
			}
		}

		// Drop the header bytes and every segment that held only header.
		start.consume(startOff)
		if start.n == 0 {
			start = start.next
		}
		if stop.n == stopWant {
			stop = stop.next
			stopWant = 0
		}
		for src.head != start {
			h := src.head
			src.head = h.next
			src.pool.Put(h)
		}
		if src.head == nil {
			src.tail = nil
		}

		if count < 0 {
			return 0, count, nil
		}

		if start != stop {
			last := start
			for last.next != stop {
				last = last.next
			}
			src.head = stop
			if stop == nil {
				src.tail = nil
			}
			dst.AppendChain(Chain{Head: start, Tail: last})
		}

		if stopWant > 0 {
			if _, err := dst.Write(stop.Bytes()[:stopWant]); err != nil {
				return 0, 0, err
			}
			stop.consume(stopWant)
		}
	}
}
