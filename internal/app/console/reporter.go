package console

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/sir_venger/splitter/internal/models"
	"github.com/sir_venger/splitter/internal/usecase/splitsvc"
	"github.com/sir_venger/splitter/pkg/progress"
	"github.com/sir_venger/splitter/pkg/sizes"
)

// Режимы цвета.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

type Options struct {
	Color string
	// Quiet оставляет только предупреждения и ошибки.
	Quiet bool
	// Progress включает индикатор копирования.
	Progress bool
}

// Reporter печатает сообщения операций в out.
type Reporter struct {
	out      io.Writer
	quiet    bool
	progress bool

	info    lipgloss.Style
	label   lipgloss.Style
	success lipgloss.Style
	warn    lipgloss.Style
	fail    lipgloss.Style
}

var _ splitsvc.Reporter = (*Reporter)(nil)

// NewReporter создаёт вывод поверх out; цвет определяется по out, если не задан явно.
func NewReporter(out io.Writer, opts Options) *Reporter {
	renderer := lipgloss.NewRenderer(out)
	switch opts.Color {
	case ColorNever:
		renderer.SetColorProfile(termenv.Ascii)
	case ColorAlways:
		renderer.SetColorProfile(termenv.ANSI256)
	}

	return &Reporter{
		out:      out,
		quiet:    opts.Quiet,
		progress: opts.Progress && !opts.Quiet,
		info:     renderer.NewStyle().Foreground(lipgloss.Color("14")),
		label:    renderer.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		success:  renderer.NewStyle().Foreground(lipgloss.Color("10")),
		warn:     renderer.NewStyle().Foreground(lipgloss.Color("11")),
		fail:     renderer.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	}
}

func (r *Reporter) Infof(format string, args ...any) {
	if r.quiet {
		return
	}
	fmt.Fprintln(r.out, r.info.Render(fmt.Sprintf(format, args...)))
}

func (r *Reporter) Successf(format string, args ...any) {
	if r.quiet {
		return
	}
	fmt.Fprintln(r.out, r.success.Render("✓ "+fmt.Sprintf(format, args...)))
}

func (r *Reporter) Warnf(format string, args ...any) {
	fmt.Fprintln(r.out, r.warn.Render("! "+fmt.Sprintf(format, args...)))
}

// Errorf печатает ошибку операции; процесс продолжает решать сам вызывающий.
func (r *Reporter) Errorf(format string, args ...any) {
	fmt.Fprintln(r.out, r.fail.Render("✗ "+fmt.Sprintf(format, args...)))
}

// Progress возвращает индикатор копирования или пустышку, если индикатор выключен.
func (r *Reporter) Progress(label string, total int64) splitsvc.Progress {
	if !r.progress {
		return splitsvc.NopReporter{}.Progress(label, total)
	}

	return progress.New(r.out, label, total)
}

// Inspect печатает состояние каталога частей.
func (r *Reporter) Inspect(res models.InspectResult) {
	tw := tabwriter.NewWriter(r.out, 0, 4, 2, ' ', 0)
	row := func(label, value string) {
		fmt.Fprintf(tw, "%s\t%s\n", r.label.Render(label+":"), value)
	}

	row("Directory", res.Dir)
	if d := res.Descriptor; d != nil {
		row("Original file", d.FileName)
		if !d.SplitAt.IsZero() {
			row("Split at", d.SplitAt.Format("2006-01-02 15:04:05"))
		}
		row("Original size", sizes.Describe(d.Size))
		row("Mode", string(d.Mode))
		if d.PartSize > 0 {
			row("Part size", sizes.Format(d.PartSize))
		}
		row("Recorded parts", fmt.Sprint(d.PartCount))
		if d.HasDigest() {
			row("Digest", d.HashAlgorithm+":"+d.Digest)
		}
	} else {
		row("Descriptor", "none")
	}
	if res.Archive != "" {
		row("Original copy", res.Archive)
	}
	row("Parts found", fmt.Sprintf("%d (%s)", len(res.Parts), sizes.Format(res.TotalBytes)))
	if len(res.MissingParts) > 0 {
		row("Missing", strings.Join(res.MissingParts, ", "))
	}
	status := r.success.Render("complete")
	if !res.Complete {
		status = r.fail.Render("incomplete")
	}
	row("Status", status)
	_ = tw.Flush()

	if r.quiet {
		return
	}
	for _, p := range res.Parts {
		fmt.Fprintf(r.out, "  %3d. %s (%s)\n", p.Index, p.Name, sizes.Format(p.Size))
	}
}
