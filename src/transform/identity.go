// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package transform

// Identity copies payloads unchanged in both directions.
type Identity struct{}

// Translate copies in to out.
func (Identity) Translate(in, out []byte) (int, error) { return copy(out, in), nil }

// Untranslate copies in to out.
func (Identity) Untranslate(in, out []byte) error {
	copy(out, in)
	return nil
}
