// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package transform

import (
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/chacha20poly1305"
)

// Overhead is what [AEAD] adds to each packet: a nonce and a tag.
const Overhead = chacha20poly1305.NonceSizeX + chacha20poly1305.Overhead

// AEAD seals every packet with XChaCha20-Poly1305. The packet layout is
// nonce || ciphertext || tag. A fresh random nonce is drawn per packet, so
// one key can be used for any number of packets.
type AEAD struct {
	aead cipher.AEAD
}

// NewAEAD returns an AEAD transform for a 32-byte key.
func NewAEAD(key []byte) (*AEAD, error) {
	if len(key) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("%w: got %d", ErrKeySize, len(key))
	}
	a, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("transform: %w", err)
	}
	return &AEAD{aead: a}, nil
}

// NewAEADFromPassphrase derives the key as BLAKE2b-256 of passphrase.
func NewAEADFromPassphrase(passphrase string) (*AEAD, error) {
	key := blake2b.Sum256([]byte(passphrase))
	return NewAEAD(key[:])
}

// Translate seals in into out.
func (a *AEAD) Translate(in, out []byte) (int, error) {
	size := len(in) + Overhead
	if len(out) < size {
		return 0, fmt.Errorf("transform: output room %d below %d", len(out), size)
	}
	nonce := out[:chacha20poly1305.NonceSizeX]
	if _, err := rand.Read(nonce); err != nil {
		return 0, fmt.Errorf("transform: nonce: %w", err)
	}
	sealed := a.aead.Seal(out[len(nonce):len(nonce)], nonce, in, nil)
	return len(nonce) + len(sealed), nil
}

// Untranslate opens in into out. Bytes of out past the plaintext are left
// untouched.
func (a *AEAD) Untranslate(in, out []byte) error {
	if len(in) < Overhead {
		return fmt.Errorf("%w: %d bytes", ErrShortPacket, len(in))
	}
	nonce, sealed := in[:chacha20poly1305.NonceSizeX], in[chacha20poly1305.NonceSizeX:]
	if _, err := a.aead.Open(out[:0], nonce, sealed, nil); err != nil {
		return fmt.Errorf("transform: open: %w", err)
	}
	return nil
}
