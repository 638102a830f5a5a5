package bridge_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/BenJeau/monkey-interpreter/internal/bridge"
	"github.com/BenJeau/monkey-interpreter/internal/evaluator"
	"github.com/BenJeau/monkey-interpreter/internal/object"
)

func TestSerializeProducesStableAST(t *testing.T) {
	result := evaluator.Evaluate("let x = 1 + 2; x;", nil)
	require.Empty(t, result.Errors)

	doc1 := bridge.Serialize(result)
	doc2 := bridge.Serialize(result)

	if diff := cmp.Diff(doc1, doc2); diff != "" {
		t.Fatalf("serializing the same result twice must be identical (-got +want):\n%s", diff)
	}

	require.Equal(t, "3", doc1.Result)
	require.Len(t, doc1.AST, 2)
	require.Equal(t, "LetStatement", doc1.AST[0].Kind)
	require.Equal(t, "x", doc1.AST[0].Value)
}

func TestSerializeCapturesErrorsAndOutput(t *testing.T) {
	result := evaluator.Evaluate(`puts("hi"); 5 + true;`, nil)
	doc := bridge.Serialize(result)

	require.Equal(t, "hi\n", doc.Output)
	require.Len(t, doc.Errors, 1)
	require.Equal(t, "type mismatch: INTEGER + BOOLEAN", doc.Errors[0])
}

func TestToJSONRoundTripsScalarFields(t *testing.T) {
	result := evaluator.Evaluate("5 * 5;", nil)
	doc := bridge.Serialize(result)

	data, err := bridge.ToJSON(doc)
	require.NoError(t, err)
	require.Contains(t, string(data), `"result": "25"`)
}

// The bridge round-trip property from SPEC_FULL.md §8: serializing then
// JSON-marshaling then unmarshaling an AST tree loses nothing.
func TestASTRoundTripsThroughJSON(t *testing.T) {
	result := evaluator.Evaluate(`let add = fn(x, y) { x + y }; add(1, 2);`, nil)
	require.Empty(t, result.Errors)

	doc := bridge.Serialize(result)

	data, err := json.Marshal(doc.AST)
	require.NoError(t, err)

	var decoded []bridge.Node
	require.NoError(t, json.Unmarshal(data, &decoded))

	if diff := cmp.Diff(doc.AST, decoded); diff != "" {
		t.Fatalf("AST round-trip through JSON is not lossless (-got +want):\n%s", diff)
	}
}

func TestSnapshotEnvironmentAndYAML(t *testing.T) {
	env := object.NewEnvironment()
	result := evaluator.Evaluate("let a = 1; let b = 2;", env)
	require.Empty(t, result.Errors)

	snap := bridge.SnapshotEnvironment(env)
	require.Equal(t, bridge.EnvironmentSnapshot{"a": "1", "b": "2"}, snap)

	data, err := bridge.ToYAML(snap)
	require.NoError(t, err)

	var decoded []map[string]string
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	require.Equal(t, []map[string]string{
		{"name": "a", "value": "1"},
		{"name": "b", "value": "2"},
	}, decoded)
}
