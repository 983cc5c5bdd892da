// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package buffer

import (
	"hash"

	"github.com/cespare/xxhash/v2"
)

// Hash feeds every queued byte to h without consuming anything.
func (b *Buffer) Hash(h hash.Hash) {
	for s := b.head; s != nil; s = s.next {
		h.Write(s.Bytes())
	}
}

// Sum64 returns the xxhash of the queued bytes.
func (b *Buffer) Sum64() uint64 {
	d := xxhash.New()
	for s := b.head; s != nil; s = s.next {
		d.Write(s.Bytes())
	}
	return d.Sum64()
}
