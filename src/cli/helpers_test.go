// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/H0llyW00dzZ/cvs-transport/src/cli"
	"github.com/H0llyW00dzZ/cvs-transport/src/config"
	"github.com/H0llyW00dzZ/cvs-transport/src/logger"
)

// result holds what one command invocation produced.
type result struct {
	out []byte
	log string
	err error
}

// run executes the command tree with stdin set to in.
func run(t *testing.T, in []byte, args ...string) result {
	t.Helper()
	t.Setenv(config.EnvFile, "")
	t.Setenv(config.EnvKey, "")

	var out, logs bytes.Buffer
	log := logger.NewCLILogger()
	log.SetOutput(&logs)

	cmd := cli.NewRootCommand("test", log)
	cmd.SetArgs(args)
	cmd.SetIn(bytes.NewReader(in))
	cmd.SetOut(&out)
	cmd.SetErr(&logs)

	err := cmd.ExecuteContext(context.Background())
	return result{out: out.Bytes(), log: logs.String(), err: err}
}

// pattern returns n bytes of a repeating, non-periodic-looking sequence.
func pattern(n int) []byte {
	p := make([]byte, n)
	for i := range p {
		p[i] = byte(i*7 + i/251)
	}
	return p
}
