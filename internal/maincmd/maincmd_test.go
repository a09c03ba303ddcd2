package maincmd_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mna/mainer"
	"github.com/mna/nenuphar-lox/internal/filetest"
	"github.com/mna/nenuphar-lox/internal/maincmd"
	"github.com/stretchr/testify/require"
)

func TestTokenizeGolden(t *testing.T) {
	dir := filepath.Join("testdata", "tokenize")
	fis := filetest.SourceFiles(t, dir, ".lox")
	require.NotEmpty(t, fis)

	for _, fi := range fis {
		fi := fi
		t.Run(fi.Name(), func(t *testing.T) {
			var out, errOut bytes.Buffer
			stdio := mainer.Stdio{Stdout: &out, Stderr: &errOut, Stdin: strings.NewReader("")}

			var c maincmd.Cmd
			err := c.Tokenize(context.Background(), stdio, []string{filepath.Join(dir, fi.Name())})
			require.NoError(t, err)

			filetest.DiffOutput(t, fi, out.String(), dir, new(bool))
		})
	}
}

func TestRunPrintsOutput(t *testing.T) {
	var out, errOut bytes.Buffer
	stdio := mainer.Stdio{Stdout: &out, Stderr: &errOut, Stdin: strings.NewReader("")}

	dir := t.TempDir()
	path := filepath.Join(dir, "prog.lox")
	require.NoError(t, os.WriteFile(path, []byte(`print 1 + 2;`), 0o600))

	var c maincmd.Cmd
	err := c.Run(context.Background(), stdio, []string{path})
	require.NoError(t, err)
	require.Equal(t, "3\n", out.String())
}

func TestRunReportsCompileErrorAndFails(t *testing.T) {
	var out, errOut bytes.Buffer
	stdio := mainer.Stdio{Stdout: &out, Stderr: &errOut, Stdin: strings.NewReader("")}

	dir := t.TempDir()
	path := filepath.Join(dir, "bad.lox")
	require.NoError(t, os.WriteFile(path, []byte(`var = 1;`), 0o600))

	var c maincmd.Cmd
	err := c.Run(context.Background(), stdio, []string{path})
	require.Error(t, err)
	require.NotEmpty(t, errOut.String())
}
