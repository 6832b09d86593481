package integration

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sir_venger/splitter/internal/app/console"
	"github.com/sir_venger/splitter/internal/models"
	"github.com/sir_venger/splitter/internal/usecase/splitsvc"
	"github.com/sir_venger/splitter/pkg/digest"
)

func newService(out *bytes.Buffer, answer string, algo string) *splitsvc.Splitter {
	return splitsvc.New(splitsvc.Deps{
		Reporter:      console.NewReporter(out, console.Options{Color: console.ColorNever}),
		Confirmer:     console.NewPrompt(strings.NewReader(answer), out, true),
		HashAlgorithm: algo,
	})
}

func Test_SplitJoin_ConfirmedCleanup(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "archive.tar")
	payload := bytes.Repeat([]byte{0xA1, 0xB2, 0xC3, 0xD4}, 1<<18) // ~1MB
	want := sha256.Sum256(payload)
	require.NoError(t, os.WriteFile(src, payload, 0o644))

	var out bytes.Buffer
	svc := newService(&out, "да\n", digest.Default)

	split, err := svc.SplitByCount(context.Background(), splitsvc.SplitRequest{Path: src, Parts: 7})
	require.NoError(t, err)
	require.Len(t, split.Parts, 7)
	require.Equal(t, hex.EncodeToString(want[:]), split.Descriptor.Digest)

	joined, err := svc.Join(context.Background(), splitsvc.JoinRequest{Dir: split.Dir, Cleanup: splitsvc.CleanupAsk})
	require.NoError(t, err)
	require.Equal(t, src, joined.Output)
	require.Equal(t, models.VerifyMatch, joined.Verification)
	require.True(t, joined.Cleaned)
	require.NoDirExists(t, split.Dir)

	got, err := os.ReadFile(src)
	require.NoError(t, err)
	gh := sha256.Sum256(got)
	if hex.EncodeToString(gh[:]) != hex.EncodeToString(want[:]) {
		t.Fatalf("sha mismatch")
	}

	log := out.String()
	require.Contains(t, log, "Integrity check passed (sha256)")
	require.Contains(t, log, "Delete parts directory")
	require.Contains(t, log, "[Y/n]")
}

func Test_SplitBySizeJoin_DeclinedCleanup(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "notes.txt")
	payload := []byte(strings.Repeat("lorem ipsum dolor sit amet\n", 300))
	require.NoError(t, os.WriteFile(src, payload, 0o644))

	var out bytes.Buffer
	svc := newService(&out, "n\n", "blake3")

	split, err := svc.SplitBySize(context.Background(), splitsvc.SplitRequest{Path: src, SizeSpec: "2 kb"})
	require.NoError(t, err)
	require.Equal(t, models.ModeSize, split.Descriptor.Mode)
	require.Equal(t, int64(2048), split.Descriptor.PartSize)
	require.Equal(t, "blake3", split.Descriptor.HashAlgorithm)

	inspect, err := svc.Inspect(context.Background(), split.Dir)
	require.NoError(t, err)
	require.True(t, inspect.Complete)
	require.Equal(t, int64(len(payload)), inspect.TotalBytes)

	joined, err := svc.Join(context.Background(), splitsvc.JoinRequest{Dir: split.Dir, Cleanup: splitsvc.CleanupAsk})
	require.NoError(t, err)
	require.False(t, joined.Cleaned)
	require.DirExists(t, split.Dir)

	got, err := os.ReadFile(joined.Output)
	require.NoError(t, err)
	require.Equal(t, payload, got)
}

func Test_Join_TamperedPartKeepsEverything(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "image.raw")
	require.NoError(t, os.WriteFile(src, bytes.Repeat([]byte{7}, 4096), 0o644))

	var out bytes.Buffer
	svc := newService(&out, "y\n", digest.Default)

	split, err := svc.SplitByCount(context.Background(), splitsvc.SplitRequest{Path: src, Parts: 4})
	require.NoError(t, err)

	part := filepath.Join(split.Dir, split.Parts[2].Name)
	require.NoError(t, os.WriteFile(part, bytes.Repeat([]byte{8}, 1024), 0o644))

	joined, err := svc.Join(context.Background(), splitsvc.JoinRequest{Dir: split.Dir, Cleanup: splitsvc.CleanupAlways})
	require.ErrorIs(t, err, models.ErrIntegrity)
	require.Equal(t, models.VerifyMismatch, joined.Verification)
	require.FileExists(t, joined.Output)
	require.FileExists(t, filepath.Join(split.Dir, "image.raw"))
	require.DirExists(t, split.Dir)
}
