// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package buffer

const (
	// SegmentCapacity is the fixed size of every segment's backing array.
	SegmentCapacity = 4096

	// AllocBatch is how many segments the pool allocates when it runs dry.
	AllocBatch = 16
)

// Segment is one fixed-capacity node of a buffer chain. The live bytes are
// data[off:off+n]; everything after them is free room for appends.
type Segment struct {
	data []byte
	off  int
	n    int
	next *Segment
	pool *Pool // owner; released segments always go back here
}

// Bytes returns the live bytes of the segment.
func (s *Segment) Bytes() []byte { return s.data[s.off : s.off+s.n] }

// Len returns the number of live bytes.
func (s *Segment) Len() int { return s.n }

// Next returns the following segment in the chain.
func (s *Segment) Next() *Segment { return s.next }

// Room returns the unused capacity after the live bytes. Bytes written there
// become live only after [Segment.Commit].
func (s *Segment) Room() []byte { return s.data[s.off+s.n:] }

// Commit marks n bytes of [Segment.Room] as live.
func (s *Segment) Commit(n int) {
	if n < 0 || s.off+s.n+n > len(s.data) {
		panic("buffer: segment commit out of range")
	}
	s.n += n
}

func (s *Segment) full() bool { return s.off+s.n == len(s.data) }

// consume drops n live bytes from the front.
func (s *Segment) consume(n int) {
	s.off += n
	s.n -= n
}

func (s *Segment) reset() {
	clear(s.data)
	s.off = 0
	s.n = 0
	s.next = nil
}

// Chain is a detached run of segments from head to tail. Ownership of a
// chain moves as a unit with [Buffer.AppendChain].
type Chain struct {
	Head *Segment
	Tail *Segment
}

// ChainOf returns a one-segment chain.
func ChainOf(s *Segment) Chain {
	s.next = nil
	return Chain{Head: s, Tail: s}
}

// Len returns the number of live bytes in the chain.
func (c Chain) Len() int { return ChainLength(c.Head) }

// ChainLength sums the live bytes of the segments starting at head.
func ChainLength(head *Segment) int {
	size := 0
	for s := head; s != nil; s = s.next {
		size += s.n
	}
	return size
}
