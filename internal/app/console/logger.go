package console

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"
)

// NewLogger создаёт журнал операций: текст для терминала, иначе JSON.
func NewLogger(out io.Writer, level slog.Level) *slog.Logger {
	options := &slog.HandlerOptions{Level: level}
	if IsTerminal(out) {
		return slog.New(slog.NewTextHandler(out, options))
	}

	return slog.New(slog.NewJSONHandler(out, options))
}

// ParseLevel разбирает уровень журнала ("debug", "info", "warn", "error").
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if strings.TrimSpace(s) == "" {
		return slog.LevelWarn, nil
	}
	err := level.UnmarshalText([]byte(strings.TrimSpace(s)))

	return level, err
}

// IsTerminal сообщает, подключён ли поток к терминалу.
func IsTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
