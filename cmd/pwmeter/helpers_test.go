package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/praetorian-inc/pwmeter/pkg/config"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// setVar assigns a flag variable for the duration of a test.
func setVar[T any](t *testing.T, p *T, v T) {
	t.Helper()
	prev := *p
	*p = v
	t.Cleanup(func() { *p = prev })
}

// useWords installs a config whose only dictionary is a temp file of words.
// With no words the dictionary is disabled.
func useWords(t *testing.T, words ...string) {
	t.Helper()
	c := config.Default()
	c.Color = "never"
	c.NoBuiltin = true
	if len(words) > 0 {
		c.Dictionaries = []string{writeLines(t, "words.txt", words...)}
	}
	setVar(t, &cfg, c)
}

func writeLines(t *testing.T, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return path
}

func newTestCmd(stdin string) (*cobra.Command, *bytes.Buffer) {
	out := &bytes.Buffer{}
	cmd := &cobra.Command{}
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(out)
	cmd.SetErr(io.Discard)
	return cmd, out
}
