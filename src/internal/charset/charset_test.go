// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package charset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		label       string
		want        string
		passthrough bool
		wantErr     bool
	}{
		{name: "empty", label: "", want: "utf-8", passthrough: true},
		{name: "utf8 alias", label: "UTF8", want: "utf-8", passthrough: true},
		{name: "latin1 alias", label: "latin1", want: "windows-1252"},
		{name: "padded", label: "  iso-8859-15 ", want: "iso-8859-15"},
		{name: "unknown", label: "klingon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := New(tt.label)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknown)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, tr.Name())
			assert.Equal(t, tt.passthrough, tr.Passthrough())
		})
	}
}

func TestLine(t *testing.T) {
	tests := []struct {
		name  string
		label string
		in    []byte
		want  string
	}{
		{name: "windows-1252", label: "windows-1252", in: []byte{'c', 'a', 'f', 0xe9}, want: "café"},
		{name: "euro in latin9", label: "iso-8859-15", in: []byte{0xa4, '5'}, want: "€5"},
		{name: "passthrough", label: "utf-8", in: []byte("naïve"), want: "naïve"},
		{name: "shift_jis", label: "shift_jis", in: []byte{0x82, 0xa0}, want: "あ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := New(tt.label)
			require.NoError(t, err)
			got, err := tr.Line(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}
