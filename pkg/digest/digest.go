// Package digest считает хеш содержимого файла по имени алгоритма.
package digest

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/zeebo/blake3"
)

// BlockSize задаёт размер блока чтения; память не зависит от размера файла.
const BlockSize = 4096

// Default — алгоритм по умолчанию для новых разбиений.
const Default = "sha256"

var ErrUnknownAlgorithm = errors.New("unknown hash algorithm")

var algorithms = map[string]func() hash.Hash{
	"md5":    md5.New,
	"sha1":   sha1.New,
	"sha256": sha256.New,
	"sha512": sha512.New,
	"blake3": func() hash.Hash { return blake3.New() },
}

// Normalize приводит имя алгоритма к каноническому виду ("SHA-256" -> "sha256").
func Normalize(algo string) string {
	algo = strings.ToLower(strings.TrimSpace(algo))
	return strings.ReplaceAll(algo, "-", "")
}

// Supported сообщает, известен ли алгоритм.
func Supported(algo string) bool {
	_, ok := algorithms[Normalize(algo)]
	return ok
}

// Algorithms возвращает отсортированный список поддерживаемых алгоритмов.
func Algorithms() []string {
	out := make([]string, 0, len(algorithms))
	for name := range algorithms {
		out = append(out, name)
	}
	sort.Strings(out)

	return out
}

// New создаёт хешер для алгоритма.
func New(algo string) (hash.Hash, error) {
	ctor, ok := algorithms[Normalize(algo)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algo)
	}

	return ctor(), nil
}

// Reader считает hex-хеш потока, читая блоками по BlockSize.
func Reader(r io.Reader, algo string) (string, error) {
	h, err := New(algo)
	if err != nil {
		return "", err
	}

	buf := make([]byte, BlockSize)
	if _, err = io.CopyBuffer(h, r, buf); err != nil {
		return "", err
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// File считает hex-хеш содержимого файла.
func File(path string, algo string) (string, error) {
	if _, err := New(algo); err != nil {
		return "", err
	}

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	// io.CopyBuffer использует WriterTo/ReaderFrom, если они есть; прячем их, чтобы держать размер блока.
	return Reader(struct{ io.Reader }{f}, algo)
}
