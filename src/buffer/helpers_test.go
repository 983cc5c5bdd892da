// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package buffer_test

import (
	"bytes"
	"io"

	"github.com/H0llyW00dzZ/cvs-transport/src/buffer"
)

// memBackend is an in-memory backend with knobs for short reads and writes.
type memBackend struct {
	buffer.Unsupported

	in    []byte
	chunk int // max bytes per Input call, 0 = as much as fits

	out      bytes.Buffer
	outLimit int // max bytes per Output call, 0 = unlimited
	outErr   error

	blockable bool
	blocking  bool
	toggles   int
	flushes   int
	shutdowns int
}

func newMemBackend(in []byte) *memBackend {
	return &memBackend{in: in, blocking: true, blockable: true}
}

func (m *memBackend) Input(p []byte, need int) (int, error) {
	if len(m.in) == 0 {
		return 0, io.EOF
	}
	n := len(p)
	if m.chunk > 0 && n > m.chunk {
		n = m.chunk
	}
	n = copy(p[:n], m.in)
	m.in = m.in[n:]
	return n, nil
}

func (m *memBackend) Output(p []byte) (int, error) {
	if m.outErr != nil {
		return 0, m.outErr
	}
	if m.outLimit > 0 && len(p) > m.outLimit {
		p = p[:m.outLimit]
	}
	return m.out.Write(p)
}

func (m *memBackend) Flush() error {
	m.flushes++
	return nil
}

func (m *memBackend) SetBlocking(block bool) error {
	if !m.blockable {
		return buffer.ErrUnsupported
	}
	m.toggles++
	m.blocking = block
	return nil
}

func (m *memBackend) Shutdown() error {
	m.shutdowns++
	return nil
}

// drain pulls every queued byte out through ReadData.
func drain(b *buffer.Buffer, step int) []byte {
	var out []byte
	for !b.IsEmpty() {
		view, err := b.ReadData(step)
		if err != nil {
			break
		}
		out = append(out, view...)
	}
	return out
}

// pattern returns n deterministic non-zero bytes.
func pattern(n int) []byte {
	p := make([]byte, n)
	for i := range p {
		p[i] = byte('a' + i%23)
	}
	return p
}
