// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package packet

import (
	"cmp"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/H0llyW00dzZ/cvs-transport/src/buffer"
	"github.com/bytedance/gopkg/lang/mcache"
)

// Packetizer is the [buffer.Backend] of a packetizing buffer. Exactly one
// of its transforms is set.
type Packetizer struct {
	inner *buffer.Buffer
	in    InputTransform
	out   OutputTransform
	raw   bool

	// Input side. When translated is false, hold[:holdSize] is a packet
	// still arriving, wire header included. When translated is true, it is
	// decoded payload at hold[holdOff:] not yet handed to the caller.
	hold       []byte
	holdSize   int
	holdOff    int
	translated bool
	scratch    [buffer.SegmentCapacity + Slop]byte

	// Output side.
	framed  [buffer.SegmentCapacity + HeaderSize]byte
	encoded [buffer.SegmentCapacity + Slop + 2*HeaderSize]byte
}

var _ buffer.Backend = (*Packetizer)(nil)

// NewInput returns a buffer that reads packets from inner and yields their
// decoded payload. The buffer shares inner's pool unless opts say otherwise.
func NewInput(inner *buffer.Buffer, t InputTransform, opts ...buffer.Option) *buffer.Buffer {
	p := &Packetizer{
		inner: inner,
		in:    t,
		hold:  make([]byte, buffer.SegmentCapacity+Slop+HeaderSize),
	}
	return buffer.New(p, withInnerPool(inner, opts)...)
}

// NewOutput returns a buffer whose output is framed into packets, encoded
// with t and queued on inner.
func NewOutput(inner *buffer.Buffer, t OutputTransform, opts ...buffer.Option) *buffer.Buffer {
	p := &Packetizer{inner: inner, out: t}
	return buffer.New(p, withInnerPool(inner, opts)...)
}

// NewRawOutput is like [NewOutput] but writes the transform's output as is,
// with neither the wire nor the decoded length header.
func NewRawOutput(inner *buffer.Buffer, t OutputTransform, opts ...buffer.Option) *buffer.Buffer {
	p := &Packetizer{inner: inner, out: t, raw: true}
	return buffer.New(p, withInnerPool(inner, opts)...)
}

func withInnerPool(inner *buffer.Buffer, opts []buffer.Option) []buffer.Option {
	return append([]buffer.Option{buffer.WithPool(inner.Pool())}, opts...)
}

// SetWrap points the packetizing buffer b at a new inner buffer. Held
// partial input is kept.
func SetWrap(b *buffer.Buffer, inner *buffer.Buffer) error {
	p, ok := b.Backend().(*Packetizer)
	if !ok {
		return ErrNotPacketizer
	}
	p.SetWrap(inner)
	return nil
}

// SetWrap replaces the inner buffer.
func (p *Packetizer) SetWrap(inner *buffer.Buffer) { p.inner = inner }

// Inner returns the wrapped buffer.
func (p *Packetizer) Inner() *buffer.Buffer { return p.inner }

// Input decodes packets from the inner buffer into data until at least need
// bytes have been produced. Decoded bytes that do not fit are held for the
// next call.
func (p *Packetizer) Input(data []byte, need int) (int, error) {
	if p.in == nil {
		return 0, buffer.ErrUnsupported
	}
	if len(data) == 0 {
		return 0, nil
	}

	got := 0
	if p.translated && p.holdSize > 0 {
		if p.holdSize > len(data) {
			n := copy(data, p.hold[p.holdOff:])
			p.holdOff += n
			p.holdSize -= n
			return n, nil
		}
		got = copy(data, p.hold[p.holdOff:p.holdOff+p.holdSize])
		p.holdSize, p.holdOff, p.translated = 0, 0, false
		need -= got
	}

	for need > 0 || got == 0 {
		if p.holdSize < HeaderSize {
			view, err := p.inner.ReadData(HeaderSize - p.holdSize)
			if err != nil {
				return got, p.readError(err)
			}
			if len(view) == 0 {
				return got, nil
			}
			p.holdSize += copy(p.hold[p.holdSize:HeaderSize], view)
			if p.holdSize < HeaderSize {
				continue
			}
		}

		count := int(binary.BigEndian.Uint16(p.hold))
		if count < HeaderSize {
			return got, fmt.Errorf("%w: wire length %d", ErrProtocolViolation, count)
		}
		if count+HeaderSize > len(p.hold) {
			grown := make([]byte, count+HeaderSize)
			copy(grown, p.hold[:p.holdSize])
			p.hold = grown
		}

		want := count - (p.holdSize - HeaderSize)
		view, err := p.inner.ReadData(want)
		if err != nil {
			return got, p.readError(err)
		}
		if len(view) == 0 {
			return got, nil
		}
		if len(view) < want {
			p.holdSize += copy(p.hold[p.holdSize:], view)
			continue
		}

		// A packet read in one piece is decoded straight from the view.
		in := view
		if p.holdSize > HeaderSize {
			copy(p.hold[p.holdSize:], view)
			in = p.hold[HeaderSize : HeaderSize+count]
		}

		n, err := p.decode(in, data[got:])
		if err != nil {
			return got, err
		}
		got += n
		need -= n
		if p.translated {
			return got, nil
		}
	}
	return got, nil
}

// decode untranslates one complete packet into dst, holding what does not
// fit. It resets the partial-packet state.
func (p *Packetizer) decode(in, dst []byte) (int, error) {
	count := len(in)
	var out []byte
	if count <= len(p.scratch) {
		out = p.scratch[:count]
	} else {
		out = mcache.Malloc(count)
		defer mcache.Free(out)
	}

	p.holdSize = 0
	if err := p.in.Untranslate(in, out); err != nil {
		return 0, fmt.Errorf("packet: untranslate: %w", err)
	}

	tcount := int(binary.BigEndian.Uint16(out))
	if tcount+HeaderSize > count {
		return 0, fmt.Errorf("%w: decoded length %d exceeds packet length %d",
			ErrProtocolViolation, tcount, count)
	}
	payload := out[HeaderSize : HeaderSize+tcount]

	n := copy(dst, payload)
	if n < tcount {
		p.holdSize = copy(p.hold, payload[n:])
		p.holdOff = 0
		p.translated = true
	}
	return n, nil
}

func (p *Packetizer) readError(err error) error {
	if errors.Is(err, io.EOF) && p.holdSize > 0 {
		return fmt.Errorf("packet: stream ended inside a packet: %w", io.ErrUnexpectedEOF)
	}
	return err
}

// Output encodes data, at most one segment per packet, queues the packets
// on the inner buffer and sends the inner buffer's output.
func (p *Packetizer) Output(data []byte) (int, error) {
	if p.out == nil {
		return 0, buffer.ErrUnsupported
	}
	wrote := 0
	for len(data) > 0 {
		chunk := data[:min(len(data), buffer.SegmentCapacity)]
		var err error
		if p.raw {
			err = p.emitRaw(chunk)
		} else {
			err = p.emit(chunk)
		}
		if err != nil {
			return wrote, err
		}
		wrote += len(chunk)
		data = data[len(chunk):]
	}
	return wrote, p.inner.SendOutput()
}

// emit frames one chunk as a packet. When the worst-case packet fits in a
// segment it is encoded straight into a fresh segment and spliced onto the
// inner buffer.
func (p *Packetizer) emit(chunk []byte) error {
	size := len(chunk) + HeaderSize
	binary.BigEndian.PutUint16(p.framed[:], uint16(len(chunk)))
	copy(p.framed[HeaderSize:], chunk)
	framed := p.framed[:size]

	if size+Slop+HeaderSize <= buffer.SegmentCapacity {
		s, err := p.segment()
		if err != nil {
			return err
		}
		room := s.Room()
		n, err := p.translate(framed, room[HeaderSize:HeaderSize+size+Slop])
		if err != nil {
			p.inner.Pool().Put(s)
			return err
		}
		binary.BigEndian.PutUint16(room, uint16(n))
		s.Commit(n + HeaderSize)
		p.inner.AppendChain(buffer.ChainOf(s))
		return nil
	}

	n, err := p.translate(framed, p.encoded[HeaderSize:HeaderSize+size+Slop])
	if err != nil {
		return err
	}
	binary.BigEndian.PutUint16(p.encoded[:], uint16(n))
	_, err = p.inner.Write(p.encoded[:n+HeaderSize])
	return err
}

// emitRaw encodes one chunk with no framing.
func (p *Packetizer) emitRaw(chunk []byte) error {
	size := len(chunk)
	if size+Slop+HeaderSize <= buffer.SegmentCapacity {
		s, err := p.segment()
		if err != nil {
			return err
		}
		n, err := p.translate(chunk, s.Room()[:size+Slop])
		if err != nil {
			p.inner.Pool().Put(s)
			return err
		}
		s.Commit(n)
		p.inner.AppendChain(buffer.ChainOf(s))
		return nil
	}

	n, err := p.translate(chunk, p.encoded[:size+Slop])
	if err != nil {
		return err
	}
	_, err = p.inner.Write(p.encoded[:n])
	return err
}

func (p *Packetizer) translate(in, out []byte) (int, error) {
	n, err := p.out.Translate(in, out)
	if err != nil {
		return 0, fmt.Errorf("packet: translate: %w", err)
	}
	if n > len(in)+Slop || n > len(out) {
		return 0, fmt.Errorf("%w: %d bytes from %d", ErrSlopExceeded, n, len(in))
	}
	return n, nil
}

func (p *Packetizer) segment() (*buffer.Segment, error) {
	s := p.inner.Pool().Get()
	if s == nil {
		return nil, cmp.Or(p.inner.MemoryError(), buffer.ErrOutOfMemory)
	}
	return s, nil
}

// Flush flushes the inner buffer. A blocking flush of this buffer has
// already switched the inner buffer to blocking mode, so the inner flush
// never forces it again.
func (p *Packetizer) Flush() error {
	if p.out == nil {
		return buffer.ErrUnsupported
	}
	return p.inner.Flush(false)
}

// SetBlocking sets the mode of the inner buffer.
func (p *Packetizer) SetBlocking(block bool) error { return p.inner.SetBlocking(block) }

// Shutdown shuts down the inner buffer.
func (p *Packetizer) Shutdown() error { return p.inner.Shutdown() }
