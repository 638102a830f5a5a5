// Package repl implements the interactive Monkey read-eval-print loop:
// a persistent environment across prompts, history-backed line editing via
// github.com/peterh/liner, and slog-based debug tracing of each evaluation.
package repl

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/BenJeau/monkey-interpreter/internal/evaluator"
	"github.com/BenJeau/monkey-interpreter/internal/object"
)

const (
	prompt      = ">> "
	historyFile = ".monkey_history"
)

// Options configures a REPL run.
type Options struct {
	// Debug enables slog.Debug tracing of each evaluated line.
	Debug bool
	// Logger receives debug traces; defaults to slog.Default() if nil.
	Logger *slog.Logger
}

// Run starts the loop, reading from a liner-backed prompt and writing
// results to out, until EOF (Ctrl+D) or an unrecoverable read error. The
// same *object.Environment is reused across every prompt, so `let`
// bindings and function definitions persist for the whole session.
func Run(out io.Writer, opts Options) int {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	histPath := historyPath()
	if f, err := os.Open(histPath); err == nil {
		if _, err := line.ReadHistory(f); err != nil {
			logger.Debug("repl: failed to load history", "err", err)
		}
		f.Close()
	}

	env := object.NewEnvironment()

	for {
		text, err := line.Prompt(prompt)
		if err == liner.ErrPromptAborted {
			continue
		}
		if err != nil {
			break
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		line.AppendHistory(text)

		if opts.Debug {
			logger.Debug("repl: evaluating", "source", text)
		}

		result := evaluator.Evaluate(text, env)

		if opts.Debug {
			logger.Debug("repl: evaluated",
				"source", text,
				"errors", result.Errors,
				"output", result.Output,
			)
		}

		if result.Output != "" {
			fmt.Fprint(out, result.Output)
		}

		if len(result.Errors) > 0 {
			for _, e := range result.Errors {
				fmt.Fprintf(out, "error: %s\n", e)
			}
			continue
		}

		if result.Result != nil {
			fmt.Fprintln(out, result.Result.Inspect())
		}
	}

	if f, err := os.Create(histPath); err == nil {
		if _, err := line.WriteHistory(f); err != nil {
			logger.Debug("repl: failed to save history", "err", err)
		}
		f.Close()
	}

	fmt.Fprintln(out)
	return 0
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return historyFile
	}
	return filepath.Join(home, historyFile)
}
