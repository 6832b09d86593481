package splitsvc

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type recordingReporter struct {
	infos     []string
	successes []string
	warnings  []string
	// started хранит пары (часть, всего) в порядке вызовов Progress.Part.
	started [][2]int
}

func (r *recordingReporter) Infof(format string, args ...any) {
	r.infos = append(r.infos, fmt.Sprintf(format, args...))
}

func (r *recordingReporter) Successf(format string, args ...any) {
	r.successes = append(r.successes, fmt.Sprintf(format, args...))
}

func (r *recordingReporter) Warnf(format string, args ...any) {
	r.warnings = append(r.warnings, fmt.Sprintf(format, args...))
}

func (r *recordingReporter) Progress(string, int64) Progress {
	return &recordingProgress{r: r}
}

type recordingProgress struct {
	nopProgress
	r *recordingReporter
}

func (p *recordingProgress) Part(index, count int) {
	p.r.started = append(p.r.started, [2]int{index, count})
}

func (r *recordingReporter) warned(substr string) bool {
	for _, w := range r.warnings {
		if strings.Contains(w, substr) {
			return true
		}
	}
	return false
}

type stubConfirmer struct {
	answer bool
	asked  []string
}

func (c *stubConfirmer) Confirm(question string, _ bool) bool {
	c.asked = append(c.asked, question)
	return c.answer
}

var fixedNow = time.Date(2026, 10, 18, 12, 0, 0, 0, time.Local)

func newTestService(t *testing.T) (*Splitter, *recordingReporter) {
	t.Helper()
	rep := &recordingReporter{}
	svc := New(Deps{
		Reporter: rep,
		Now:      func() time.Time { return fixedNow },
	})
	return svc, rep
}

// writeSource создаёт файл с детерминированным содержимым длиной size.
func writeSource(t *testing.T, dir, name string, size int) (string, []byte) {
	t.Helper()
	payload := make([]byte, size)
	for i := range payload {
		payload[i] = byte(i*7 + i/251)
	}
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, payload, 0o644))
	return path, payload
}

func sha256Hex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func partSizes(t *testing.T, dir string, names ...string) []int64 {
	t.Helper()
	out := make([]int64, 0, len(names))
	for _, name := range names {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err)
		out = append(out, info.Size())
	}
	return out
}
