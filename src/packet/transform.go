// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package packet

const (
	// Slop is how many bytes an output transform may add to a packet.
	Slop = 100
	// HeaderSize is the width of both the wire and the decoded length fields.
	HeaderSize = 2
)

// InputTransform undoes an output transform.
//
// Untranslate decodes in into out, which has the same length as in. The
// decoded block must start with its own big-endian length header.
type InputTransform interface {
	Untranslate(in, out []byte) error
}

// OutputTransform encodes one packet.
//
// Translate writes the encoding of in to out and returns its length. out has
// room for len(in)+Slop bytes and the result must not exceed that.
type OutputTransform interface {
	Translate(in, out []byte) (int, error)
}

// InputFunc adapts a function to [InputTransform].
type InputFunc func(in, out []byte) error

// Untranslate calls f(in, out).
func (f InputFunc) Untranslate(in, out []byte) error { return f(in, out) }

// OutputFunc adapts a function to [OutputTransform].
type OutputFunc func(in, out []byte) (int, error)

// Translate calls f(in, out).
func (f OutputFunc) Translate(in, out []byte) (int, error) { return f(in, out) }
