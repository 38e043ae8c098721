package repl

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lmorg/readline"

	"lute/internal/evaluator"
	"lute/internal/parser"
	"lute/internal/value"
)

const prompt = ">> "

var (
	promptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("81"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// Start runs the interactive session. Bindings accumulate in one frame for
// the life of the session; the value of each entered expression is echoed.
func Start(out io.Writer) {
	slog.Debug("starting interactive session")

	env := evaluator.NewRootEnvironment()
	eval := evaluator.New("./repl.lute")

	rline := readline.NewInstance()
	rline.SetPrompt(promptStyle.Render(prompt))

	for {
		line, err := rline.Readline()
		if err != nil {
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" {
			return
		}

		program, err := parser.Parse(line)
		if err != nil {
			fmt.Fprintln(out, errorStyle.Render(err.Error()))
			continue
		}

		v, err := eval.EvalProgram(program, env)
		if err != nil {
			fmt.Fprintln(out, errorStyle.Render(err.Error()))
			continue
		}

		if _, isNull := v.(*value.Null); isNull {
			continue
		}
		fmt.Fprintln(out, resultStyle.Render(v.Inspect()))
	}
}
