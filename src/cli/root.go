// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"fmt"

	"github.com/H0llyW00dzZ/cvs-transport/src/internal/helper/posix"
	"github.com/H0llyW00dzZ/cvs-transport/src/logger"
	"github.com/spf13/cobra"
)

// Execute runs the root command with os.Args and returns the first error.
func Execute(ctx context.Context, version string, log logger.Logger) error {
	return NewRootCommand(version, log).ExecuteContext(ctx)
}

// NewRootCommand builds the command tree. Standard streams default to the
// process's own and can be replaced with the cobra setters.
func NewRootCommand(version string, log logger.Logger) *cobra.Command {
	s := &session{log: log}
	exe := posix.GetExecutableName()

	root := &cobra.Command{
		Use:   exe,
		Short: "Segmented buffer transport for CVS client/server streams",
		Long: `Move a byte stream from standard input to standard output through the
segmented buffer stack: length-prefixed packets with an optional transform,
deflate compression, line relaying, and counted record framing.`,
		Example: fmt.Sprintf(`  %[1]s pack --transform xchacha20 --key secret < plain > wire
  %[1]s unpack --transform xchacha20 --key secret < wire > plain
  %[1]s inspect -i wire
  %[1]s lines --command E --charset windows-1252 < stderr.txt`, exe),
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: s.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&s.flags.configPath, "config", "", "configuration file (.json, .yaml, .yml)")
	flags.StringVar(&s.flags.logFormat, "log-format", "", "log format: text or json")
	flags.StringVar(&s.flags.logLevel, "log-level", "", "log level for json logs: debug, info, warn, error")
	flags.IntVar(&s.flags.maxSegments, "max-segments", 0, "cap on pooled segments, 0 for unlimited")

	root.AddCommand(
		newPackCommand(s),
		newUnpackCommand(s),
		newInspectCommand(s),
		newLinesCommand(s),
		newCountedCommand(s),
	)
	return root
}
