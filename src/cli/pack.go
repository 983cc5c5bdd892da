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
	"github.com/H0llyW00dzZ/cvs-transport/src/packet"
	"github.com/H0llyW00dzZ/cvs-transport/src/transform"
	"github.com/spf13/cobra"
)

// packetFlags are the packet options pack and unpack share. They override
// the configuration only when set on the command line.
type packetFlags struct {
	streamFlags
	transform string
	key       string
	compress  bool
	level     int
}

func (f *packetFlags) register(cmd *cobra.Command) {
	f.streamFlags.register(cmd)
	cmd.Flags().StringVar(&f.transform, "transform", "", "packet transform: identity or xchacha20")
	cmd.Flags().StringVar(&f.key, "key", "", "passphrase for the xchacha20 transform")
	cmd.Flags().BoolVar(&f.compress, "compress", false, "use deflate instead of a packet transform")
	cmd.Flags().IntVar(&f.level, "level", 0, "deflate level, -1 for default or 0 through 9")
}

// apply merges the flags that were set into the session configuration.
func (f *packetFlags) apply(cmd *cobra.Command, s *session) {
	flags := cmd.Flags()
	if flags.Changed("transform") {
		s.cfg.Packet.Transform = f.transform
	}
	if flags.Changed("key") {
		s.cfg.Packet.Key = f.key
	}
	if flags.Changed("compress") {
		s.cfg.Packet.Compress = f.compress
	}
	if flags.Changed("level") {
		s.cfg.Packet.CompressLevel = f.level
	}
}

func newPackCommand(s *session) *cobra.Command {
	var f packetFlags
	cmd := &cobra.Command{
		Use:   "pack",
		Short: "Packetize a stream with the configured transform",
		Long: `Read plain bytes and write length-prefixed packets. Each packet carries a
2-byte big-endian wire length followed by the transformed payload. With
--compress the stream is deflated instead and written without framing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f.apply(cmd, s)
			in, out, err := f.open(cmd)
			if err != nil {
				return err
			}
			defer in.Close()
			defer out.Close()
			return s.pack(cmd, in, out)
		},
	}
	f.register(cmd)
	return cmd
}

func newUnpackCommand(s *session) *cobra.Command {
	var f packetFlags
	cmd := &cobra.Command{
		Use:   "unpack",
		Short: "Decode a packetized stream back to plain bytes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f.apply(cmd, s)
			in, out, err := f.open(cmd)
			if err != nil {
				return err
			}
			defer in.Close()
			defer out.Close()
			return s.unpack(cmd, in, out)
		},
	}
	f.register(cmd)
	return cmd
}

// pack splices every chunk read from r onto the packetizer and sends it.
func (s *session) pack(cmd *cobra.Command, r io.Reader, w io.Writer) error {
	counter := &countingWriter{w: w}
	wire := s.writer(counter)
	src := s.reader(r)
	defer src.Release()

	var (
		out      *buffer.Buffer
		deflater *transform.Deflater
	)
	if s.cfg.Packet.Compress {
		d, err := transform.NewDeflater(s.cfg.Packet.CompressLevel)
		if err != nil {
			return err
		}
		deflater = d
		out = packet.NewRawOutput(wire, d, s.options()...)
	} else {
		c, err := s.codec()
		if err != nil {
			return err
		}
		out = packet.NewOutput(wire, c, s.options()...)
	}

	ctx := cmd.Context()
	var total int64
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, err := src.InputData()
		total += int64(n)
		out.AppendBuffer(src)
		if serr := out.SendOutput(); serr != nil {
			return fmt.Errorf("error writing packets: %w", serr)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("error reading input: %w", err)
		}
	}

	if err := out.Flush(true); err != nil {
		return fmt.Errorf("error flushing packets: %w", err)
	}
	if deflater != nil {
		if err := deflater.Close(wire); err != nil {
			return fmt.Errorf("error finishing deflate stream: %w", err)
		}
		if err := wire.Flush(true); err != nil {
			return fmt.Errorf("error flushing output: %w", err)
		}
	}

	s.log.Printf("packed %d bytes into %d wire bytes", total, counter.n)
	s.poolSummary()
	return nil
}

// unpack decodes r and copies the plain bytes to w.
func (s *session) unpack(cmd *cobra.Command, r io.Reader, w io.Writer) error {
	wire := s.reader(r)
	out := s.writer(w)

	var in *buffer.Buffer
	if s.cfg.Packet.Compress {
		in = transform.NewInflater(wire, s.options()...)
	} else {
		c, err := s.codec()
		if err != nil {
			return err
		}
		in = packet.NewInput(wire, c, s.options()...)
	}
	defer in.Release()

	ctx := cmd.Context()
	var total int64
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		data, err := in.ReadData(buffer.SegmentCapacity)
		if len(data) > 0 {
			total += int64(len(data))
			if _, werr := out.Write(data); werr != nil {
				return werr
			}
			if serr := out.SendOutput(); serr != nil {
				return fmt.Errorf("error writing output: %w", serr)
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("error decoding packets: %w", err)
		}
	}

	if err := out.Flush(true); err != nil {
		return fmt.Errorf("error flushing output: %w", err)
	}
	s.log.Printf("unpacked %d bytes", total)
	s.poolSummary()
	return nil
}
