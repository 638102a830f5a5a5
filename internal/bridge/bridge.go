// Package bridge translates an evaluator.EvaluationResult into a
// host-agnostic, serializable shape so a non-Go frontend (a browser UI, a
// notebook, a language-server client) can render a Monkey program's parse
// tree and result without depending on Go types.
package bridge

import (
	"encoding/json"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/BenJeau/monkey-interpreter/internal/ast"
	"github.com/BenJeau/monkey-interpreter/internal/evaluator"
	"github.com/BenJeau/monkey-interpreter/internal/object"
)

// Node is one node of the serialized AST: a Kind tag (the Go type name,
// e.g. "LetStatement"), an optional scalar Value, and nested Children.
type Node struct {
	Kind     string `json:"kind" yaml:"kind"`
	Value    string `json:"value,omitempty" yaml:"value,omitempty"`
	Children []Node `json:"children,omitempty" yaml:"children,omitempty"`
}

// Document is the full serialized result of one evaluation: its AST, the
// parse or runtime errors it produced, anything it wrote via `puts`, and the
// rendered form of its final value.
type Document struct {
	Program string   `json:"program" yaml:"program"`
	AST     []Node   `json:"ast" yaml:"ast"`
	Errors  []string `json:"errors,omitempty" yaml:"errors,omitempty"`
	Output  string   `json:"output,omitempty" yaml:"output,omitempty"`
	Result  string   `json:"result,omitempty" yaml:"result,omitempty"`
}

// Serialize converts an evaluation result into a Document ready for
// json.Marshal or yaml.Marshal.
func Serialize(result *evaluator.EvaluationResult) Document {
	doc := Document{
		Program: result.Program,
		Errors:  append([]string(nil), result.Errors...),
		Output:  result.Output,
	}

	for _, stmt := range result.Statements {
		doc.AST = append(doc.AST, nodeOf(stmt))
	}

	if result.Result != nil {
		doc.Result = result.Result.Inspect()
	}

	return doc
}

// ToJSON renders a Document as indented JSON.
func ToJSON(doc Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// EnvironmentSnapshot is a YAML-friendly dump of an environment's bindings,
// used by the CLI's -dump-env flag. Values are rendered via Inspect rather
// than round-tripped, since object.Object has no YAML tags of its own.
type EnvironmentSnapshot map[string]string

// SnapshotEnvironment walks env's own frame (not its parents) and renders
// each binding's value with Inspect.
func SnapshotEnvironment(env *object.Environment) EnvironmentSnapshot {
	snap := make(EnvironmentSnapshot)
	for _, name := range env.Names() {
		val, ok := env.Get(name)
		if !ok {
			continue
		}
		snap[name] = val.Inspect()
	}
	return snap
}

// binding is one name/value pair of an environment snapshot, rendered as a
// YAML sequence entry so binding order stays stable (yaml.v3 marshals a Go
// map's keys in random order, which a dumped environment must not do).
type binding struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// ToYAML renders an environment snapshot as YAML, with bindings sorted by
// name so the output is stable across runs.
func ToYAML(snap EnvironmentSnapshot) ([]byte, error) {
	ordered := make([]string, 0, len(snap))
	for name := range snap {
		ordered = append(ordered, name)
	}
	sort.Strings(ordered)

	bindings := make([]binding, 0, len(ordered))
	for _, name := range ordered {
		bindings = append(bindings, binding{Name: name, Value: snap[name]})
	}
	return yaml.Marshal(bindings)
}

// nodeOf converts one AST node into its serialized Node form. Kind is
// derived from the concrete Go type since the AST has no separate tag.
func nodeOf(n ast.Node) Node {
	switch v := n.(type) {
	case *ast.LetStatement:
		return Node{Kind: "LetStatement", Value: v.Name.Value, Children: []Node{nodeOf(v.Value)}}
	case *ast.ReturnStatement:
		return Node{Kind: "ReturnStatement", Children: []Node{nodeOf(v.ReturnValue)}}
	case *ast.ExpressionStatement:
		return Node{Kind: "ExpressionStatement", Children: []Node{nodeOf(v.Expression)}}
	case *ast.BlockStatement:
		return Node{Kind: "BlockStatement", Children: childrenOf(v.Statements)}
	case *ast.Identifier:
		return Node{Kind: "Identifier", Value: v.Value}
	case *ast.IntegerLiteral:
		return Node{Kind: "IntegerLiteral", Value: fmt.Sprintf("%d", v.Value)}
	case *ast.Boolean:
		return Node{Kind: "Boolean", Value: fmt.Sprintf("%t", v.Value)}
	case *ast.StringLiteral:
		return Node{Kind: "StringLiteral", Value: v.Value}
	case *ast.PrefixExpression:
		return Node{Kind: "PrefixExpression", Value: v.Operator, Children: []Node{nodeOf(v.Right)}}
	case *ast.InfixExpression:
		return Node{Kind: "InfixExpression", Value: v.Operator, Children: []Node{nodeOf(v.Left), nodeOf(v.Right)}}
	case *ast.IfExpression:
		children := []Node{nodeOf(v.Condition), nodeOf(v.Consequence)}
		if v.Alternative != nil {
			children = append(children, nodeOf(v.Alternative))
		}
		return Node{Kind: "IfExpression", Children: children}
	case *ast.FunctionLiteral:
		children := childrenOfExprs(identifiersToExprs(v.Parameters))
		children = append(children, nodeOf(v.Body))
		return Node{Kind: "FunctionLiteral", Value: v.Name, Children: children}
	case *ast.CallExpression:
		children := []Node{nodeOf(v.Function)}
		children = append(children, childrenOfExprs(v.Arguments)...)
		return Node{Kind: "CallExpression", Children: children}
	case *ast.ArrayLiteral:
		return Node{Kind: "ArrayLiteral", Children: childrenOfExprs(v.Elements)}
	case *ast.IndexExpression:
		return Node{Kind: "IndexExpression", Children: []Node{nodeOf(v.Left), nodeOf(v.Index)}}
	case *ast.HashLiteral:
		var children []Node
		for _, key := range v.Order {
			children = append(children, nodeOf(key), nodeOf(v.Pairs[key]))
		}
		return Node{Kind: "HashLiteral", Children: children}
	default:
		return Node{Kind: fmt.Sprintf("%T", n), Value: n.String()}
	}
}

func childrenOf(stmts []ast.Statement) []Node {
	nodes := make([]Node, 0, len(stmts))
	for _, s := range stmts {
		nodes = append(nodes, nodeOf(s))
	}
	return nodes
}

func childrenOfExprs(exprs []ast.Expression) []Node {
	nodes := make([]Node, 0, len(exprs))
	for _, e := range exprs {
		nodes = append(nodes, nodeOf(e))
	}
	return nodes
}

func identifiersToExprs(idents []*ast.Identifier) []ast.Expression {
	exprs := make([]ast.Expression, 0, len(idents))
	for _, id := range idents {
		exprs = append(exprs, id)
	}
	return exprs
}
