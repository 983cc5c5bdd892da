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
	"github.com/H0llyW00dzZ/cvs-transport/src/internal/charset"
	"github.com/spf13/cobra"
)

func newLinesCommand(s *session) *cobra.Command {
	var (
		f       streamFlags
		command string
		cs      string
	)
	cmd := &cobra.Command{
		Use:   "lines",
		Short: "Relay text lines prefixed with a protocol command",
		Long: `Read text and write every line as "<command> <line>", the way a server
relays the standard output or error of a child process to its client. With
--charset each line is converted to UTF-8 first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			if flags.Changed("command") {
				s.cfg.Lines.Command = command
			}
			if flags.Changed("charset") {
				s.cfg.Lines.Charset = cs
			}
			if len(s.cfg.Lines.Command) != 1 {
				return fmt.Errorf("%w: %q", ErrCommandByte, s.cfg.Lines.Command)
			}
			tr, err := charset.New(s.cfg.Lines.Charset)
			if err != nil {
				return err
			}

			in, out, err := f.open(cmd)
			if err != nil {
				return err
			}
			defer in.Close()
			defer out.Close()
			return s.lines(cmd, in, out, s.cfg.Lines.Command[0], tr)
		},
	}
	f.register(cmd)
	cmd.Flags().StringVar(&command, "command", "", "single-byte command prefix (default from config, M)")
	cmd.Flags().StringVar(&cs, "charset", "", "convert lines from this charset to UTF-8")
	return cmd
}

// lines relays r to w one line at a time. A passthrough charset lets
// complete lines move between buffers without copying.
func (s *session) lines(cmd *cobra.Command, r io.Reader, w io.Writer, command byte, tr *charset.Translator) error {
	src := s.reader(r)
	dst := s.writer(w)
	defer src.Release()

	var (
		n   int
		err error
	)
	if tr.Passthrough() {
		n, err = relayLines(cmd, src, dst, command)
	} else {
		n, err = translateLines(cmd, src, dst, command, tr)
	}
	if err != nil {
		return err
	}

	// A final line without a newline is still relayed.
	if !src.IsEmpty() {
		rest, err := io.ReadAll(src)
		if err != nil {
			return fmt.Errorf("error reading input: %w", err)
		}
		if rest, err = tr.Line(rest); err != nil {
			return err
		}
		if err := writeLine(dst, command, rest); err != nil {
			return err
		}
		n++
	}

	if err := dst.Flush(true); err != nil {
		return fmt.Errorf("error flushing output: %w", err)
	}
	s.log.Printf("relayed %d lines as %q (%s)", n, command, tr.Name())
	return nil
}

func relayLines(cmd *cobra.Command, src, dst *buffer.Buffer, command byte) (int, error) {
	ctx := cmd.Context()
	lines := 0
	for {
		if err := ctx.Err(); err != nil {
			return lines, err
		}
		_, rerr := src.InputData()
		if err := buffer.CopyLines(dst, src, command); err != nil {
			return lines, err
		}
		lines += countLines(dst.Head())
		if err := dst.SendOutput(); err != nil {
			return lines, fmt.Errorf("error writing output: %w", err)
		}
		if errors.Is(rerr, io.EOF) {
			return lines, nil
		}
		if rerr != nil {
			return lines, fmt.Errorf("error reading input: %w", rerr)
		}
	}
}

// countLines counts the newlines in a chain. Relayed lines carry exactly one.
func countLines(head *buffer.Segment) int {
	n := 0
	for s := head; s != nil; s = s.Next() {
		for _, c := range s.Bytes() {
			if c == '\n' {
				n++
			}
		}
	}
	return n
}

func translateLines(cmd *cobra.Command, src, dst *buffer.Buffer, command byte, tr *charset.Translator) (int, error) {
	ctx := cmd.Context()
	lines := 0
	for {
		if err := ctx.Err(); err != nil {
			return lines, err
		}
		line, err := src.ReadLine()
		if errors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return lines, fmt.Errorf("error reading input: %w", err)
		}
		if line, err = tr.Line(line); err != nil {
			return lines, err
		}
		if err := writeLine(dst, command, line); err != nil {
			return lines, err
		}
		lines++
		if err := dst.SendOutput(); err != nil {
			return lines, fmt.Errorf("error writing output: %w", err)
		}
	}
}

func writeLine(dst *buffer.Buffer, command byte, line []byte) error {
	if err := dst.WriteByte(command); err != nil {
		return err
	}
	if err := dst.WriteByte(' '); err != nil {
		return err
	}
	if _, err := dst.Write(line); err != nil {
		return err
	}
	return dst.WriteByte('\n')
}
