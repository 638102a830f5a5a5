package repl_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/BenJeau/monkey-interpreter/internal/evaluator"
	"github.com/BenJeau/monkey-interpreter/internal/object"
)

// This exercises the same persistence contract repl.Run relies on: bindings
// made against one *object.Environment are visible to later evaluations
// against that same environment, which is what makes a REPL session
// coherent across prompts.
func TestEnvironmentPersistsAcrossEvaluations(t *testing.T) {
	env := object.NewEnvironment()

	first := evaluator.Evaluate("let x = 21;", env)
	require.Empty(t, first.Errors)

	second := evaluator.Evaluate("x * 2;", env)
	require.Empty(t, second.Errors)

	result, ok := second.Result.(*object.Integer)
	require.True(t, ok)
	require.Equal(t, int64(42), result.Value)
}

func TestEnvironmentIsolationBetweenSessions(t *testing.T) {
	envA := object.NewEnvironment()
	envB := object.NewEnvironment()

	evaluator.Evaluate("let x = 1;", envA)
	result := evaluator.Evaluate("x", envB)

	require.NotEmpty(t, result.Errors)
	require.Equal(t, "identifier not found: x", result.Errors[0])
}
