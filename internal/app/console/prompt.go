package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/sir_venger/splitter/internal/usecase/splitsvc"
)

var yesAnswers = map[string]bool{"y": true, "yes": true, "д": true, "да": true}

// Prompt задаёт вопросы да/нет. В неинтерактивном режиме ничего не спрашивает и отвечает "нет".
type Prompt struct {
	in          *bufio.Reader
	out         io.Writer
	interactive bool
}

var _ splitsvc.Confirmer = (*Prompt)(nil)

func NewPrompt(in io.Reader, out io.Writer, interactive bool) *Prompt {
	return &Prompt{
		in:          bufio.NewReader(in),
		out:         out,
		interactive: interactive,
	}
}

// Confirm печатает вопрос с подсказкой [Y/n] или [y/N]; на пустой ответ возвращает def.
func (p *Prompt) Confirm(question string, def bool) bool {
	if !p.interactive {
		return false
	}

	choices := "y/N"
	if def {
		choices = "Y/n"
	}
	fmt.Fprintf(p.out, "%s [%s]: ", question, choices)

	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(p.out)
		return false
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	if answer == "" {
		return def
	}

	return yesAnswers[answer]
}
