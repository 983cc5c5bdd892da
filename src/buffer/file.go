// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package buffer

import (
	"errors"
	"io"
)

// ReadFile loads exactly size bytes from r into a detached chain of
// segments taken from pool. Nothing is appended to any buffer, so a caller
// can decide between [Buffer.AppendChain] and discarding. On failure every
// segment read so far goes back to the pool.
//
// Pool exhaustion is reported as [ErrOutOfMemory] rather than through a
// memory-error handler. A short file is reported as [io.ErrUnexpectedEOF].
func ReadFile(r io.Reader, size int64, pool *Pool) (Chain, error) {
	var c Chain
	for size > 0 {
		s := pool.Get()
		if s == nil {
			pool.PutChain(c.Head)
			return Chain{}, ErrOutOfMemory
		}
		c.append(s)

		get := int(min(size, SegmentCapacity))
		n, err := io.ReadFull(r, s.data[:get])
		s.n = n
		if err != nil {
			pool.PutChain(c.Head)
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			return Chain{}, err
		}
		size -= int64(get)
	}
	return c, nil
}

// ReadFileToEOF loads everything r yields into a detached chain.
func ReadFileToEOF(r io.Reader, pool *Pool) (Chain, error) {
	var c Chain
	for {
		s := pool.Get()
		if s == nil {
			pool.PutChain(c.Head)
			return Chain{}, ErrOutOfMemory
		}

		n, err := io.ReadFull(r, s.data)
		s.n = n
		if n > 0 {
			c.append(s)
		} else {
			pool.Put(s)
		}
		switch {
		case err == nil:
		case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
			return c, nil
		default:
			pool.PutChain(c.Head)
			return Chain{}, err
		}
	}
}

func (c *Chain) append(s *Segment) {
	s.next = nil
	if c.Head == nil {
		c.Head = s
	} else {
		c.Tail.next = s
	}
	c.Tail = s
}
