// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/H0llyW00dzZ/cvs-transport/src/buffer"
	"github.com/H0llyW00dzZ/cvs-transport/src/config"
	"github.com/H0llyW00dzZ/cvs-transport/src/logger"
	"github.com/H0llyW00dzZ/cvs-transport/src/packet"
	"github.com/H0llyW00dzZ/cvs-transport/src/stdio"
	"github.com/H0llyW00dzZ/cvs-transport/src/transform"
	"github.com/spf13/cobra"
)

// session carries what every subcommand shares: the resolved configuration,
// the segment pool and the logger.
type session struct {
	flags struct {
		configPath  string
		logFormat   string
		logLevel    string
		maxSegments int
	}

	cfg  *config.Config
	pool *buffer.Pool
	log  logger.Logger
}

// setup loads the configuration and applies global flags on top of it.
func (s *session) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(s.flags.configPath)
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	flags := cmd.Flags()
	if flags.Changed("log-format") {
		cfg.Log.Format = s.flags.logFormat
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = s.flags.logLevel
	}
	if flags.Changed("max-segments") {
		cfg.Pool.MaxSegments = s.flags.maxSegments
	}
	s.cfg = cfg

	if cfg.Log.Format == config.LogFormatJSON || s.log == nil {
		l, err := logger.New(cfg.Log.Format, cfg.Log.Level, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		s.log = l
	}

	s.pool = buffer.NewPool(buffer.WithMaxSegments(cfg.Pool.MaxSegments))
	return nil
}

// options are the buffer options every stream buffer is built with. Pool
// exhaustion is reported as an error so the command can fail cleanly.
func (s *session) options() []buffer.Option {
	return []buffer.Option{
		buffer.WithPool(s.pool),
		buffer.WithMemoryErrorHandler(buffer.ReturnMemoryError),
	}
}

func (s *session) reader(r io.Reader) *buffer.Buffer { return stdio.NewReader(r, s.options()...) }

func (s *session) writer(w io.Writer) *buffer.Buffer { return stdio.NewWriter(w, s.options()...) }

// codec is a packet transform usable in both directions.
type codec interface {
	packet.InputTransform
	packet.OutputTransform
}

// codec returns the packet transform named in the configuration.
func (s *session) codec() (codec, error) {
	switch s.cfg.Packet.Transform {
	case config.TransformIdentity:
		return transform.Identity{}, nil
	case config.TransformXChaCha20:
		if s.cfg.Packet.Key == "" {
			return nil, ErrKeyRequired
		}
		return transform.NewAEADFromPassphrase(s.cfg.Packet.Key)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTransform, s.cfg.Packet.Transform)
	}
}

// poolSummary logs the pool counters.
func (s *session) poolSummary() {
	st := s.pool.Stats()
	s.log.Printf("pool: %d segments in %d blocks, %d acquired, %d released",
		st.Segments, st.Blocks, st.Acquired, st.Released)
}

// openInput returns the command's standard input for "" or "-", else the
// named file.
func openInput(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening input: %w", err)
	}
	return f, nil
}

// openOutput returns the command's standard output for "" or "-", else
// creates the named file.
func openOutput(cmd *cobra.Command, path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopWriteCloser{cmd.OutOrStdout()}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("error creating output: %w", err)
	}
	return f, nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// countingWriter counts bytes written through it.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// streamFlags are the -i / -o flags shared by the streaming commands.
type streamFlags struct {
	input  string
	output string
}

func (f *streamFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.input, "input", "i", "", "read from INPUT instead of stdin")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "write to OUTPUT instead of stdout")
}

// open opens both ends of the stream.
func (f *streamFlags) open(cmd *cobra.Command) (io.ReadCloser, io.WriteCloser, error) {
	in, err := openInput(cmd, f.input)
	if err != nil {
		return nil, nil, err
	}
	out, err := openOutput(cmd, f.output)
	if err != nil {
		in.Close()
		return nil, nil, err
	}
	return in, out, nil
}
