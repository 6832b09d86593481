// Package progress рисует однострочный индикатор копирования частей.
package progress

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sir_venger/splitter/pkg/sizes"
)

const (
	barWidth    = 24
	redrawEvery = 100 * time.Millisecond
)

// Bar показывает текущую часть и долю записанных байт, перерисовывая строку через '\r'.
// Части копируются последовательно, поэтому Bar не синхронизирован.
type Bar struct {
	out   io.Writer
	label string
	total int64
	done  int64

	part  int
	parts int

	drawn  time.Time
	width  int
	closed bool
}

// New создаёт индикатор; total <= 0 означает неизвестный объём.
func New(out io.Writer, label string, total int64) *Bar {
	return &Bar{out: out, label: label, total: total}
}

// Part отмечает начало части index из count и сразу перерисовывает строку.
func (b *Bar) Part(index, count int) {
	if b.closed {
		return
	}
	b.part, b.parts = index, count
	b.draw("")
}

// Write учитывает len(p) байт и никогда не возвращает ошибку.
func (b *Bar) Write(p []byte) (int, error) {
	if b.closed {
		return len(p), nil
	}
	b.done += int64(len(p))
	if time.Since(b.drawn) >= redrawEvery {
		b.draw("")
	}

	return len(p), nil
}

// Current возвращает число учтённых байт.
func (b *Bar) Current() int64 {
	return b.done
}

func (b *Bar) Finish() {
	b.close("✓")
}

func (b *Bar) Fail(err error) {
	if err == nil {
		b.close("✗")
		return
	}
	b.close("✗ " + err.Error())
}

// close рисует итоговую строку один раз; дальнейшие вызовы ничего не делают.
func (b *Bar) close(mark string) {
	if b.closed {
		return
	}
	b.closed = true
	b.draw(" " + mark)
	fmt.Fprintln(b.out)
}

func (b *Bar) draw(tail string) {
	line := b.status() + tail
	width := utf8.RuneCountInString(line)
	pad := max(b.width-width, 0)
	b.width = width
	b.drawn = time.Now()

	fmt.Fprintf(b.out, "\r%s%s", line, strings.Repeat(" ", pad))
}

func (b *Bar) status() string {
	var sb strings.Builder
	sb.WriteString(b.label)
	if b.parts > 0 {
		fmt.Fprintf(&sb, " part %d/%d", b.part, b.parts)
	}

	if b.total <= 0 {
		fmt.Fprintf(&sb, " %s", sizes.Format(b.done))
		return sb.String()
	}

	pct := min(b.done*100/b.total, 100)
	filled := int(pct) * barWidth / 100
	fmt.Fprintf(&sb, " [%s%s] %3d%% %s/%s",
		strings.Repeat("#", filled), strings.Repeat(".", barWidth-filled),
		pct, sizes.Format(b.done), sizes.Format(b.total))

	return sb.String()
}
