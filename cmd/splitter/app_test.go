package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sir_venger/splitter/internal/models"
	"github.com/sir_venger/splitter/pkg/exitcodes"
)

type harness struct {
	dir    string
	stdout bytes.Buffer
	stderr bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	for _, k := range []string{
		"SPLITTER_CONFIG", "SPLITTER_HASH", "SPLITTER_CLEANUP",
		"SPLITTER_RECOVER", "SPLITTER_LOG_LEVEL", "SPLITTER_COLOR",
	} {
		t.Setenv(k, "")
	}
	h := &harness{dir: t.TempDir()}
	chdir(t, h.dir)
	return h
}

func (h *harness) run(args ...string) error {
	h.stdout.Reset()
	h.stderr.Reset()
	return run(context.Background(), args, streams{
		in:     strings.NewReader(""),
		out:    &h.stdout,
		errOut: &h.stderr,
	})
}

func TestLegacyArgs(t *testing.T) {
	require.Equal(t, []string{"split", "a.bin", "3"}, legacyArgs([]string{"--split", "a.bin", "3"}))
	require.Equal(t, []string{"split-size", "a.bin", "1KB"}, legacyArgs([]string{"--split-size", "a.bin", "1KB"}))
	require.Equal(t, []string{"join", "a_parts"}, legacyArgs([]string{"--join", "a_parts"}))
	require.Equal(t, []string{"help"}, legacyArgs([]string{"--help"}))
	require.Equal(t, []string{"inspect", "--join"}, legacyArgs([]string{"inspect", "--join"}))
	require.Empty(t, legacyArgs(nil))
}

func TestRun_SplitAndJoin(t *testing.T) {
	h := newHarness(t)
	data := bytes.Repeat([]byte("0123456789"), 250)
	require.NoError(t, os.WriteFile("data.bin", data, 0o644))

	require.NoError(t, h.run("split", "data.bin", "4", "--no-color"))
	require.Contains(t, h.stdout.String(), "Join back with: splitter join data_parts")
	require.NoFileExists(t, "data.bin")

	require.NoError(t, h.run("inspect", "data_parts"))
	require.Contains(t, h.stdout.String(), "complete")

	require.NoError(t, h.run("--join", "data_parts", "--yes"))
	got, err := os.ReadFile("data.bin")
	require.NoError(t, err)
	require.Equal(t, data, got)
	require.NoDirExists(t, "data_parts")
}

func TestRun_SplitSizeKeepParts(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, os.WriteFile("log.txt", bytes.Repeat([]byte("x"), 2500), 0o644))

	require.NoError(t, h.run("--split-size", "log.txt", "1KB", "--algo", "blake3", "-q"))
	require.Empty(t, h.stdout.String())

	entries, err := os.ReadDir("log_parts")
	require.NoError(t, err)
	require.Len(t, entries, 5)

	require.NoError(t, h.run("join", "log_parts", filepath.Join(h.dir, "out.txt"), "--keep-parts"))
	require.FileExists(t, "out.txt")
	require.DirExists(t, "log_parts")
}

func TestRun_IntegrityMismatch(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, os.WriteFile("data.bin", bytes.Repeat([]byte("a"), 30), 0o644))
	require.NoError(t, h.run("split", "data.bin", "3"))
	require.NoError(t, os.WriteFile(filepath.Join("data_parts", "data_part_002.bin"), bytes.Repeat([]byte("b"), 10), 0o644))

	err := h.run("join", "data_parts", "--yes")
	require.ErrorIs(t, err, models.ErrIntegrity)
	require.Equal(t, exitcodes.Integrity, exitcodes.Code(err))
	require.DirExists(t, "data_parts")
	require.Contains(t, h.stdout.String(), "kept for inspection")
}

func TestRun_Errors(t *testing.T) {
	cases := []struct {
		name string
		args []string
		code int
	}{
		{name: "no command", args: nil, code: exitcodes.InvalidArgument},
		{name: "unknown command", args: []string{"shred", "x"}, code: exitcodes.InvalidArgument},
		{name: "unknown flag", args: []string{"split", "--turbo"}, code: exitcodes.InvalidArgument},
		{name: "bad count", args: []string{"split", "data.bin", "three"}, code: exitcodes.InvalidArgument},
		{name: "missing operand", args: []string{"join"}, code: exitcodes.InvalidArgument},
		{name: "conflicting cleanup", args: []string{"join", "d", "--yes", "--keep-parts"}, code: exitcodes.InvalidArgument},
		{name: "bad algo", args: []string{"split", "data.bin", "2", "--algo", "crc32"}, code: exitcodes.InvalidArgument},
		{name: "missing source", args: []string{"split", "nope.bin", "2"}, code: exitcodes.NotFound},
		{name: "missing dir", args: []string{"join", "nope_parts"}, code: exitcodes.NotFound},
		{name: "missing config", args: []string{"inspect", "d", "--config", "absent.yaml"}, code: exitcodes.NotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t)
			require.NoError(t, os.WriteFile("data.bin", []byte("payload"), 0o644))

			err := h.run(tc.args...)
			require.Error(t, err)
			require.Equal(t, tc.code, exitcodes.Code(err))
		})
	}
}

func TestRun_UsageErrorsCarryExitCode(t *testing.T) {
	h := newHarness(t)

	for _, args := range [][]string{nil, {"join"}, {"shred"}, {"split", "--turbo"}} {
		err := h.run(args...)

		var ue usageError
		require.ErrorAs(t, err, &ue, "%v", args)
		require.NotErrorIs(t, err, models.ErrInvalidArgument)
		require.Equal(t, exitcodes.InvalidArgument, exitcodes.Code(err))
	}
}

func TestRun_Help(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("help"))
	require.Contains(t, h.stdout.String(), "split-size <file> <size>")
	require.Contains(t, h.stdout.String(), "--keep-parts")

	require.NoError(t, h.run("--help"))
	require.Contains(t, h.stdout.String(), "Exit codes")
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
