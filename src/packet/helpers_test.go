// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package packet_test

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/H0llyW00dzZ/cvs-transport/src/buffer"
	"github.com/H0llyW00dzZ/cvs-transport/src/packet"
)

// wire is an in-memory transport. Input hands out at most chunk bytes per
// call and, with stall set, reports nothing available on every other call.
type wire struct {
	buffer.Unsupported

	in    []byte
	chunk int
	stall bool
	odd   bool

	out bytes.Buffer

	blocking  bool
	shutdowns int
}

func (w *wire) Input(p []byte, need int) (int, error) {
	if w.stall {
		w.odd = !w.odd
		if w.odd {
			return 0, nil
		}
	}
	if len(w.in) == 0 {
		return 0, io.EOF
	}
	n := len(p)
	if w.chunk > 0 {
		n = min(n, w.chunk)
	}
	n = copy(p[:n], w.in)
	w.in = w.in[n:]
	return n, nil
}

func (w *wire) Output(p []byte) (int, error) { return w.out.Write(p) }

func (w *wire) Flush() error { return nil }

func (w *wire) SetBlocking(block bool) error {
	w.blocking = block
	return nil
}

func (w *wire) Shutdown() error {
	w.shutdowns++
	return nil
}

// padding expands every packet by exactly Slop bytes so decoded packets
// outgrow the fixed scratch.
type padding struct{}

func (padding) Translate(in, out []byte) (int, error) {
	n := copy(out, in)
	for i := range packet.Slop {
		out[n+i] = 0xee
	}
	return n + packet.Slop, nil
}

func (padding) Untranslate(in, out []byte) error {
	copy(out, in)
	return nil
}

// frame builds one identity-encoded packet by hand.
func frame(payload []byte) []byte {
	out := binary.BigEndian.AppendUint16(nil, uint16(len(payload)+packet.HeaderSize))
	out = binary.BigEndian.AppendUint16(out, uint16(len(payload)))
	return append(out, payload...)
}

func pattern(n int) []byte {
	p := make([]byte, n)
	for i := range p {
		p[i] = byte(i*7 + i/251)
	}
	return p
}

// encode pushes payload through an output packetizer and returns the wire
// bytes.
func encode(t interface{ Helper() }, tr packet.OutputTransform, payload []byte) ([]byte, error) {
	t.Helper()
	pool := buffer.NewPool()
	w := &wire{}
	out := packet.NewOutput(buffer.New(w, buffer.WithPool(pool)), tr)
	if _, err := out.Write(payload); err != nil {
		return nil, err
	}
	if err := out.Flush(false); err != nil {
		return nil, err
	}
	return w.out.Bytes(), nil
}

// decodeAll drains an input packetizer reading from w.
func decodeAll(w *wire, tr packet.InputTransform) ([]byte, error) {
	pool := buffer.NewPool()
	in := packet.NewInput(buffer.New(w, buffer.WithPool(pool)), tr)
	var got []byte
	for {
		view, err := in.ReadData(1 << 20)
		got = append(got, view...)
		if err == io.EOF {
			return got, nil
		}
		if err != nil {
			return got, err
		}
	}
}
