// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package buffer

import "bytes"

// CopyLines moves every complete line queued in src onto dst, each preceded
// by command and a space. A line that ends exactly at a segment boundary is
// moved by relinking; otherwise the line's tail is copied. A trailing partial
// line stays in src.
func CopyLines(dst, src *Buffer, command byte) error {
	for {
		var nl *Segment
		idx := -1
		for s := src.head; s != nil; s = s.next {
			if i := bytes.IndexByte(s.Bytes(), '\n'); i >= 0 {
				nl, idx = s, i
				break
			}
		}
		if nl == nil {
			return nil
		}

		if err := dst.WriteByte(command); err != nil {
			return err
		}
		if err := dst.WriteByte(' '); err != nil {
			return err
		}

		if src.head != nl {
			last := src.head
			for last.next != nl {
				last = last.next
			}
			dst.AppendChain(Chain{Head: src.head, Tail: last})
			src.head = nl
		}

		n := idx + 1
		if n == nl.n {
			src.head = nl.next
			if src.head == nil {
				src.tail = nil
			}
			dst.AppendChain(ChainOf(nl))
			continue
		}
		if _, err := dst.Write(nl.Bytes()[:n]); err != nil {
			return err
		}
		nl.consume(n)
	}
}
