// Command monkey is the Monkey language CLI: it evaluates a one-liner
// (-e), runs a script file, or starts an interactive REPL when given no
// arguments, generalizing the teacher's tokens|ast|<file> dispatch in
// cmd/elf/main.go into a single-binary flag-driven interface.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/BenJeau/monkey-interpreter/internal/bridge"
	"github.com/BenJeau/monkey-interpreter/internal/evaluator"
	"github.com/BenJeau/monkey-interpreter/internal/object"
	"github.com/BenJeau/monkey-interpreter/internal/repl"
)

func main() {
	var (
		evalStr string
		debug   bool
		dumpEnv string
	)
	flag.StringVar(&evalStr, "e", "", "evaluate the given Monkey source and exit")
	flag.BoolVar(&debug, "debug", false, "enable debug tracing of each evaluation")
	flag.StringVar(&dumpEnv, "dump-env", "", "after running, snapshot the global environment's bindings to this YAML path")
	flag.Parse()

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	args := flag.Args()

	switch {
	case evalStr != "":
		os.Exit(runSource(evalStr, dumpEnv, logger))
	case len(args) > 0:
		os.Exit(runFile(args[0], dumpEnv, logger))
	default:
		os.Exit(repl.Run(os.Stdout, repl.Options{Debug: debug, Logger: logger}))
	}
}

func runSource(source, dumpEnv string, logger *slog.Logger) int {
	env := object.NewEnvironment()
	logger.Debug("monkey: evaluating -e source", "source", source)
	result := evaluator.Evaluate(source, env)
	return report(result, env, dumpEnv, logger)
}

func runFile(path, dumpEnv string, logger *slog.Logger) int {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "monkey: cannot read %s: %v\n", path, err)
		return 1
	}
	env := object.NewEnvironment()
	logger.Debug("monkey: evaluating file", "path", path)
	result := evaluator.Evaluate(string(data), env)
	return report(result, env, dumpEnv, logger)
}

func report(result *evaluator.EvaluationResult, env *object.Environment, dumpEnv string, logger *slog.Logger) int {
	if result.Output != "" {
		fmt.Fprint(os.Stdout, result.Output)
	}

	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			fmt.Fprintf(os.Stderr, "monkey: %s\n", e)
		}
		return 1
	}

	if result.Result != nil {
		fmt.Fprintln(os.Stdout, result.Result.Inspect())
	}

	if dumpEnv != "" {
		if err := writeEnvDump(env, dumpEnv); err != nil {
			logger.Error("monkey: failed to dump environment", "path", dumpEnv, "err", err)
			return 1
		}
	}

	return 0
}

func writeEnvDump(env *object.Environment, path string) error {
	data, err := bridge.ToYAML(bridge.SnapshotEnvironment(env))
	if err != nil {
		return fmt.Errorf("marshal environment snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
