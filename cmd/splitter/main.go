package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"github.com/sir_venger/splitter/internal/app/console"
	"github.com/sir_venger/splitter/pkg/exitcodes"
)

// main разбирает аргументы, выполняет команду и завершает процесс с кодом по классу ошибки.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := run(ctx, os.Args[1:], streams{
		in:          os.Stdin,
		out:         os.Stdout,
		errOut:      os.Stderr,
		interactive: console.IsTerminal(os.Stdin),
	})
	stop()

	os.Exit(exitcodes.Code(err))
}
