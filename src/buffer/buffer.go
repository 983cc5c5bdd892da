// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package buffer

import (
	"fmt"
	"io"
)

// Buffer queues the pending bytes of one stream direction as a chain of
// segments and moves them through its [Backend].
//
// Invariant: head and tail are both nil, or tail is the last segment
// reachable from head and tail.next is nil.
type Buffer struct {
	head        *Segment
	tail        *Segment
	nonblocking bool
	backend     Backend
	pool        *Pool
	memoryError MemoryErrorHandler
	inputErr    error
}

// Option configures a [Buffer].
type Option func(*Buffer)

// WithPool attaches the buffer to p instead of [DefaultPool].
func WithPool(p *Pool) Option {
	return func(b *Buffer) {
		if p != nil {
			b.pool = p
		}
	}
}

// WithMemoryErrorHandler replaces [AbortOnMemoryError].
func WithMemoryErrorHandler(h MemoryErrorHandler) Option {
	return func(b *Buffer) {
		if h != nil {
			b.memoryError = h
		}
	}
}

// New creates a buffer in blocking mode on top of backend. A nil backend
// gives a passive buffer that can only accumulate and hand over segments.
func New(backend Backend, opts ...Option) *Buffer {
	b := &Buffer{
		backend:     backend,
		memoryError: AbortOnMemoryError,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.pool == nil {
		b.pool = DefaultPool()
	}
	return b
}

// NewNonIO creates a buffer with no backend.
func NewNonIO(opts ...Option) *Buffer { return New(nil, opts...) }

// Backend returns the backend the buffer was created with.
func (b *Buffer) Backend() Backend { return b.backend }

// Pool returns the segment pool the buffer draws from.
func (b *Buffer) Pool() *Pool { return b.pool }

// Blocking reports whether the buffer is in blocking mode.
func (b *Buffer) Blocking() bool { return !b.nonblocking }

// MemoryError runs the configured memory-error handler and returns its result.
func (b *Buffer) MemoryError() error { return b.memoryError(b) }

// newSegment takes a segment from the pool or runs the memory-error handler.
func (b *Buffer) newSegment() (*Segment, error) {
	s := b.pool.Get()
	if s == nil {
		return nil, b.MemoryError()
	}
	return s, nil
}

// link appends a single fresh segment to the chain.
func (b *Buffer) link(s *Segment) {
	if b.head == nil {
		b.head = s
	} else {
		b.tail.next = s
	}
	s.next = nil
	b.tail = s
}

// Write appends p to the tail, filling the current tail segment before
// taking new ones. On pool exhaustion the bytes already appended stay
// queued and the count of those bytes is returned with the handler's error.
func (b *Buffer) Write(p []byte) (int, error) {
	written := 0
	if b.tail != nil {
		n := copy(b.tail.Room(), p)
		b.tail.n += n
		written += n
		p = p[n:]
	}
	for len(p) > 0 {
		s, err := b.newSegment()
		if err != nil {
			return written, err
		}
		b.link(s)
		n := copy(s.data, p)
		s.n = n
		written += n
		p = p[n:]
	}
	return written, nil
}

// WriteString appends s.
func (b *Buffer) WriteString(s string) (int, error) {
	if b.tail != nil && len(b.tail.Room()) >= len(s) {
		n := copy(b.tail.Room(), s)
		b.tail.n += n
		return n, nil
	}
	return b.Write([]byte(s))
}

// WriteByte appends a single byte.
func (b *Buffer) WriteByte(c byte) error {
	if b.tail != nil && !b.tail.full() {
		b.tail.data[b.tail.off+b.tail.n] = c
		b.tail.n++
		return nil
	}
	_, err := b.Write([]byte{c})
	return err
}

// IsEmpty reports whether no live bytes are queued. Segments left with zero
// length after partial consumption do not count.
func (b *Buffer) IsEmpty() bool {
	for s := b.head; s != nil; s = s.next {
		if s.n > 0 {
			return false
		}
	}
	return true
}

// Len returns the number of live bytes queued.
func (b *Buffer) Len() int { return ChainLength(b.head) }

// MemSize returns the segment memory held by the buffer, live or not.
func (b *Buffer) MemSize() int {
	mem := 0
	for s := b.head; s != nil; s = s.next {
		mem += SegmentCapacity
	}
	return mem
}

// discard returns the whole chain to the pool.
func (b *Buffer) discard() {
	b.pool.PutChain(b.head)
	b.head = nil
	b.tail = nil
}

// SendOutput writes queued segments through the backend until the chain is
// empty or, in nonblocking mode, the backend takes less than offered.
//
// On a backend error the entire pending chain is discarded, since a partial
// protocol state cannot be resumed.
func (b *Buffer) SendOutput() error {
	if b.backend == nil {
		return ErrNoBackend
	}

	for b.head != nil {
		s := b.head
		if s.n > 0 {
			n, err := b.backend.Output(s.Bytes())
			if err != nil {
				b.discard()
				return err
			}
			if n != s.n {
				s.consume(n)
				if !b.nonblocking {
					return fmt.Errorf("buffer: partial write in blocking mode: %w", io.ErrShortWrite)
				}
				return nil
			}
		}
		b.head = s.next
		b.pool.Put(s)
	}
	b.tail = nil
	return nil
}

// Flush sends the queued output and flushes the backend. With block set a
// nonblocking buffer is switched to blocking mode for the duration of the
// flush and restored afterwards.
func (b *Buffer) Flush(block bool) error {
	if b.backend == nil {
		return ErrNoBackend
	}

	nonblocking := b.nonblocking
	if nonblocking && block {
		if err := b.SetBlocking(true); err != nil {
			return err
		}
	}

	err := b.SendOutput()
	if err == nil {
		err = b.backend.Flush()
	}

	if nonblocking && block {
		if blockErr := b.SetBlocking(false); err == nil {
			err = blockErr
		}
	}
	return err
}

// SetBlocking puts the buffer in blocking or nonblocking mode. It returns
// nil without touching the backend when the buffer is already in the
// requested mode.
func (b *Buffer) SetBlocking(block bool) error {
	if block == !b.nonblocking {
		return nil
	}
	if b.backend == nil {
		return ErrNoBackend
	}
	if err := b.backend.SetBlocking(block); err != nil {
		return err
	}
	b.nonblocking = !block
	return nil
}

// Shutdown shuts down the backend, if any.
func (b *Buffer) Shutdown() error {
	if b.backend == nil {
		return nil
	}
	return b.backend.Shutdown()
}

// Release returns every segment to the pool. The buffer stays usable.
func (b *Buffer) Release() { b.discard() }

// AppendChain links a detached chain onto the tail in constant time. The
// buffer takes ownership of every segment in c.
func (b *Buffer) AppendChain(c Chain) {
	if c.Head == nil {
		return
	}
	if b.head == nil {
		b.head = c.Head
	} else {
		b.tail.next = c.Head
	}
	c.Tail.next = nil
	b.tail = c.Tail
}

// AppendBuffer moves all of src's segments onto b. src is left empty.
func (b *Buffer) AppendBuffer(src *Buffer) {
	b.AppendChain(Chain{Head: src.head, Tail: src.tail})
	src.head = nil
	src.tail = nil
}

// Detach removes and returns the whole chain. The caller owns the segments.
func (b *Buffer) Detach() Chain {
	c := Chain{Head: b.head, Tail: b.tail}
	b.head = nil
	b.tail = nil
	return c
}

// Head returns the first segment of the chain for read-only inspection.
func (b *Buffer) Head() *Segment { return b.head }
