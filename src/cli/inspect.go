// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/H0llyW00dzZ/cvs-transport/src/buffer"
	"github.com/H0llyW00dzZ/cvs-transport/src/internal/helper/gc"
	"github.com/H0llyW00dzZ/cvs-transport/src/packet"
	"github.com/cespare/xxhash/v2"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
)

// frame describes one packet read off the wire.
type frame struct {
	wireLen int
	decoded int
	digest  uint64
	err     error
}

func newInspectCommand(s *session) *cobra.Command {
	var f packetFlags
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "List the packets of a packetized stream",
		Long: `Walk the frames of a packetized stream and print a markdown table with
each frame's wire length, decoded length and xxhash digest, followed by the
segment pool counters.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f.apply(cmd, s)
			if s.cfg.Packet.Compress {
				return errors.New("inspect: deflate streams carry no frames")
			}
			in, out, err := f.open(cmd)
			if err != nil {
				return err
			}
			defer in.Close()
			defer out.Close()
			return s.inspect(cmd, in, out)
		},
	}
	f.register(cmd)
	return cmd
}

// inspect reads every frame from r and writes the report to w.
func (s *session) inspect(cmd *cobra.Command, r io.Reader, w io.Writer) error {
	c, err := s.codec()
	if err != nil {
		return err
	}
	frames, err := s.frames(cmd, s.reader(r), c)
	if err != nil {
		return err
	}

	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	renderFrames(buf, frames)
	buf.WriteString("\n")
	renderPool(buf, s.pool.Stats())

	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("error writing report: %w", err)
	}
	return nil
}

// frames walks the wire stream. A frame that fails to decode is recorded
// and the walk continues, since the wire length alone locates the next one.
func (s *session) frames(cmd *cobra.Command, src *buffer.Buffer, c packet.InputTransform) ([]frame, error) {
	defer src.Release()

	var (
		hdr     [packet.HeaderSize]byte
		payload = make([]byte, 1<<16)
		decoded = make([]byte, 1<<16)
		frames  []frame
	)
	ctx := cmd.Context()
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if _, err := io.ReadFull(src, hdr[:]); err != nil {
			if errors.Is(err, io.EOF) {
				return frames, nil
			}
			if errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, fmt.Errorf("%w: frame %d header", ErrTruncatedFrame, len(frames)+1)
			}
			return nil, fmt.Errorf("error reading frame: %w", err)
		}

		count := int(binary.BigEndian.Uint16(hdr[:]))
		p := payload[:count]
		if _, err := io.ReadFull(src, p); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, fmt.Errorf("%w: frame %d payload", ErrTruncatedFrame, len(frames)+1)
			}
			return nil, fmt.Errorf("error reading frame: %w", err)
		}

		fr := frame{wireLen: count, digest: xxhash.Sum64(p)}
		fr.decoded, fr.err = decodeFrame(c, p, decoded[:count])
		frames = append(frames, fr)
	}
}

// decodeFrame untranslates one payload and returns the data length it
// carries.
func decodeFrame(c packet.InputTransform, p, out []byte) (int, error) {
	if len(p) < packet.HeaderSize {
		return 0, packet.ErrProtocolViolation
	}
	if err := c.Untranslate(p, out); err != nil {
		return 0, err
	}
	tcount := int(binary.BigEndian.Uint16(out))
	if tcount+packet.HeaderSize > len(p) {
		return 0, packet.ErrProtocolViolation
	}
	return tcount, nil
}

func renderFrames(w io.Writer, frames []frame) {
	table := tablewriter.NewTable(w,
		tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
	)
	table.Header([]string{"#", "Wire Length", "Data Length", "XXH64", "Status"})

	var rows [][]string
	for i, fr := range frames {
		data, status := strconv.Itoa(fr.decoded), "ok"
		if fr.err != nil {
			data, status = "-", fr.err.Error()
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(fr.wireLen),
			data,
			fmt.Sprintf("%016x", fr.digest),
			status,
		})
	}
	table.Bulk(rows)
	table.Render()
}

func renderPool(w io.Writer, st buffer.PoolStats) {
	table := tablewriter.NewTable(w,
		tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
	)
	table.Header([]string{"Pool", "Value"})

	limit := "unlimited"
	if st.Limit > 0 {
		limit = strconv.Itoa(st.Limit)
	}
	table.Bulk([][]string{
		{"Segments", strconv.Itoa(st.Segments)},
		{"Idle", strconv.FormatInt(st.Idle, 10)},
		{"Acquired", strconv.FormatInt(st.Acquired, 10)},
		{"Released", strconv.FormatInt(st.Released, 10)},
		{"Blocks", strconv.FormatInt(st.Blocks, 10)},
		{"Limit", limit},
	})
	table.Render()
}
