// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package charset translates text lines sent by clients in a legacy
// character set into UTF-8.
package charset

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// ErrUnknown is returned for a charset label that is not recognized.
var ErrUnknown = errors.New("charset: unknown charset")

// Translator converts lines from one charset to UTF-8.
type Translator struct {
	name string
	dec  *encoding.Decoder
}

// New returns a translator for the WHATWG label name, such as
// "windows-1252", "iso-8859-15" or "shift_jis". An empty name or a UTF-8
// label gives a translator that passes lines through.
func New(name string) (*Translator, error) {
	label := strings.TrimSpace(name)
	if label == "" {
		return &Translator{name: "utf-8"}, nil
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknown, name)
	}
	canonical, err := htmlindex.Name(enc)
	if err != nil {
		canonical = label
	}
	if canonical == "utf-8" {
		return &Translator{name: canonical}, nil
	}
	return &Translator{name: canonical, dec: enc.NewDecoder()}, nil
}

// Name returns the canonical charset name.
func (t *Translator) Name() string { return t.name }

// Passthrough reports whether lines are returned unchanged.
func (t *Translator) Passthrough() bool { return t.dec == nil }

// Line returns line converted to UTF-8.
func (t *Translator) Line(line []byte) ([]byte, error) {
	if t.dec == nil {
		return line, nil
	}
	out, err := t.dec.Bytes(line)
	if err != nil {
		return nil, fmt.Errorf("charset: %s: %w", t.name, err)
	}
	return out, nil
}
