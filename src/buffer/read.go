// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package buffer

import "bytes"

// growTail makes sure the tail segment has free room, linking a new segment
// when the chain is empty or the tail is full.
func (b *Buffer) growTail() error {
	if b.tail != nil && !b.tail.full() {
		return nil
	}
	s, err := b.newSegment()
	if err != nil {
		return err
	}
	b.link(s)
	return nil
}

// InputData reads whatever the backend can deliver right now, filling tail
// segments until a read returns less than the room offered. It returns the
// number of bytes added. This is meant for nonblocking buffers.
func (b *Buffer) InputData() (int, error) {
	if b.backend == nil {
		return 0, ErrNoBackend
	}

	count := 0
	for {
		if err := b.growTail(); err != nil {
			return count, err
		}
		room := b.tail.Room()
		n, err := b.backend.Input(room, 0)
		b.tail.n += n
		count += n
		if err != nil {
			return count, err
		}
		if n < len(room) {
			return count, nil
		}
	}
}

// ReadLine returns the bytes up to the first '\n', without the newline, in
// a newly allocated slice. Segments scanned past are returned to the pool.
// When no complete line is queued ReadLine pulls more from the backend, at
// least one byte at a time, until a newline arrives. End of stream is
// reported as [io.EOF]; a trailing partial line stays queued.
func (b *Buffer) ReadLine() ([]byte, error) {
	if b.backend == nil {
		return nil, ErrNoBackend
	}

	for {
		if line, ok := b.takeLine(); ok {
			return line, nil
		}

		for {
			if err := b.growTail(); err != nil {
				return nil, err
			}
			t := b.tail
			room := t.Room()
			n, err := b.backend.Input(room, 1)
			t.n += n
			if err != nil {
				return nil, err
			}
			if n == 1 {
				if room[0] == '\n' {
					break
				}
			} else if bytes.IndexByte(room[:n], '\n') >= 0 {
				break
			}
		}
	}
}

// takeLine extracts the first complete line, if one is queued.
func (b *Buffer) takeLine() ([]byte, bool) {
	size := 0
	var nl *Segment
	idx := -1
	for s := b.head; s != nil; s = s.next {
		if i := bytes.IndexByte(s.Bytes(), '\n'); i >= 0 {
			nl, idx = s, i
			size += i
			break
		}
		size += s.n
	}
	if nl == nil {
		return nil, false
	}

	line := make([]byte, size)
	p := 0
	for s := b.head; s != nl; {
		next := s.next
		p += copy(line[p:], s.Bytes())
		b.pool.Put(s)
		s = next
	}
	copy(line[p:], nl.Bytes()[:idx])
	nl.consume(idx + 1)
	b.head = nl
	return line, true
}

// ReadData returns up to want bytes from the head segment without copying.
// The backend is asked for more only when nothing is queued, so the result
// may be shorter than want even when more data exists further down the
// chain; callers loop. An empty result with a nil error means a nonblocking
// backend had nothing to offer.
//
// An error that arrives together with data is returned by the next call
// that finds nothing queued.
//
// The returned slice aliases segment memory and is valid only until the
// next call on the buffer.
func (b *Buffer) ReadData(want int) ([]byte, error) {
	if b.backend == nil {
		return nil, ErrNoBackend
	}

	for b.head != nil && b.head.n == 0 {
		s := b.head
		b.head = s.next
		if b.head == nil {
			b.tail = nil
		}
		b.pool.Put(s)
	}

	if b.head == nil {
		if err := b.inputErr; err != nil {
			b.inputErr = nil
			return nil, err
		}
		s, err := b.newSegment()
		if err != nil {
			return nil, err
		}
		b.link(s)

		n, err := b.backend.Input(s.data, min(want, SegmentCapacity))
		s.n = n
		if err != nil {
			if n == 0 {
				return nil, err
			}
			// Hand out the bytes now and report the error next time.
			b.inputErr = err
		}
	}

	h := b.head
	if want < h.n {
		view := h.data[h.off : h.off+want]
		h.consume(want)
		return view, nil
	}
	view := h.Bytes()
	h.consume(h.n)
	return view, nil
}

// Read implements [io.Reader] on top of [Buffer.ReadData].
func (b *Buffer) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	data, err := b.ReadData(len(p))
	n := copy(p, data)
	return n, err
}
