package digest

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFile_SHA256MatchesStdlib(t *testing.T) {
	payload := bytes.Repeat([]byte("0123456789abcdef"), 1000) // больше одного блока
	path := filepath.Join(t.TempDir(), "data.bin")
	require.NoError(t, os.WriteFile(path, payload, 0o644))

	got, err := File(path, "SHA-256")
	require.NoError(t, err)

	want := sha256.Sum256(payload)
	require.Equal(t, hex.EncodeToString(want[:]), got)
}

func TestFile_KnownVectors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "abc.txt")
	require.NoError(t, os.WriteFile(path, []byte("abc"), 0o644))

	cases := map[string]string{
		"md5":    "900150983cd24fb0d6963f7d28e17f72",
		"sha1":   "a9993e364706816aba3e25717850c26c9cd0d89d",
		"sha256": "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		"blake3": "6437b3ac38465133ffb63b75273a8db548c558465d79db03fd359c6cd5bd9d85",
	}
	for algo, want := range cases {
		got, err := File(path, algo)
		require.NoError(t, err, algo)
		require.Equal(t, want, got, algo)
	}
}

func TestFile_Errors(t *testing.T) {
	_, err := File(filepath.Join(t.TempDir(), "missing"), "sha256")
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = File("whatever", "crc32")
	require.ErrorIs(t, err, ErrUnknownAlgorithm)
}

func TestAlgorithms(t *testing.T) {
	require.Equal(t, []string{"blake3", "md5", "sha1", "sha256", "sha512"}, Algorithms())
	require.True(t, Supported("SHA256"))
	require.False(t, Supported("crc32"))
}
