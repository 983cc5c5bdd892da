// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/H0llyW00dzZ/cvs-transport/src/buffer"
	"github.com/spf13/cobra"
)

func newCountedCommand(s *session) *cobra.Command {
	var (
		f       streamFlags
		decode  bool
		special int32
	)
	cmd := &cobra.Command{
		Use:   "counted",
		Short: "Frame a stream as counted records for a local pipe",
		Long: `Encode input as counted records, each a host-order 32-bit length followed
by that many bytes, ending with a negative special count. With --decode the
records are unframed again and special counts are reported to the log.
Counted records are meant for pipes between processes on the same host.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if special >= 0 {
				return fmt.Errorf("special count must be negative, got %d", special)
			}
			in, out, err := f.open(cmd)
			if err != nil {
				return err
			}
			defer in.Close()
			defer out.Close()
			if decode {
				return s.uncount(cmd, in, out)
			}
			return s.count(cmd, in, out, special)
		},
	}
	f.register(cmd)
	cmd.Flags().BoolVarP(&decode, "decode", "d", false, "decode counted records instead of encoding")
	cmd.Flags().Int32Var(&special, "special", -1, "negative count sent after the last record")
	return cmd
}

// count sends every chunk read from r as one counted record.
func (s *session) count(cmd *cobra.Command, r io.Reader, w io.Writer, special int32) error {
	src := s.reader(r)
	dst := s.writer(w)
	defer src.Release()

	ctx := cmd.Context()
	records := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, rerr := src.InputData()
		dst.AppendBuffer(src)
		if n > 0 {
			records++
		}
		if err := dst.SendCounted(); err != nil {
			return fmt.Errorf("error writing record: %w", err)
		}
		if errors.Is(rerr, io.EOF) {
			break
		}
		if rerr != nil {
			return fmt.Errorf("error reading input: %w", rerr)
		}
	}

	if err := dst.SendSpecialCount(special); err != nil {
		return fmt.Errorf("error writing special count: %w", err)
	}
	if err := dst.Flush(true); err != nil {
		return fmt.Errorf("error flushing output: %w", err)
	}
	s.log.Printf("encoded %d counted records", records)
	return nil
}

// uncount moves counted record payloads from r to w.
func (s *session) uncount(cmd *cobra.Command, r io.Reader, w io.Writer) error {
	src := s.reader(r)
	dst := s.writer(w)
	defer src.Release()

	ctx := cmd.Context()
	eof := false
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		_, special, err := buffer.CopyCounted(dst, src)
		if err != nil {
			return err
		}
		if serr := dst.SendOutput(); serr != nil {
			return fmt.Errorf("error writing output: %w", serr)
		}
		if special != 0 {
			s.log.Printf("special count %d", special)
			continue
		}
		if eof {
			if !src.IsEmpty() {
				return fmt.Errorf("%w: %d bytes left", ErrTruncatedRecord, src.Len())
			}
			break
		}

		_, rerr := src.InputData()
		if errors.Is(rerr, io.EOF) {
			eof = true
			continue
		}
		if rerr != nil {
			return fmt.Errorf("error reading input: %w", rerr)
		}
	}

	if err := dst.Flush(true); err != nil {
		return fmt.Errorf("error flushing output: %w", err)
	}
	return nil
}
