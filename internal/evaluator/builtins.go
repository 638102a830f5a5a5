package evaluator

import (
	"fmt"
	"strings"

	"github.com/BenJeau/monkey-interpreter/internal/object"
)

// outputBuffer collects everything `puts` writes during one evaluation, so
// hosts (REPL, bridge, tests) can capture it without touching stdout.
type outputBuffer struct {
	strings.Builder
}

var builtins = map[string]*object.Builtin{
	"len": {
		Name: "len",
		Fn: func(args ...object.Object) object.Object {
			if len(args) != 1 {
				return newError("wrong number of arguments. got=%d, want=1", len(args))
			}
			switch arg := args[0].(type) {
			case *object.String:
				return &object.Integer{Value: int64(len(arg.Value))}
			case *object.Array:
				return &object.Integer{Value: int64(len(arg.Elements))}
			default:
				return newError("argument to `len` not supported, got %s", arg.Type())
			}
		},
	},
	"first": {
		Name: "first",
		Fn: func(args ...object.Object) object.Object {
			if len(args) != 1 {
				return newError("wrong number of arguments. got=%d, want=1", len(args))
			}
			arr, ok := args[0].(*object.Array)
			if !ok {
				return newError("argument to `first` must be ARRAY, got %s", args[0].Type())
			}
			if len(arr.Elements) == 0 {
				return object.NULL
			}
			return arr.Elements[0]
		},
	},
	"last": {
		Name: "last",
		Fn: func(args ...object.Object) object.Object {
			if len(args) != 1 {
				return newError("wrong number of arguments. got=%d, want=1", len(args))
			}
			arr, ok := args[0].(*object.Array)
			if !ok {
				return newError("argument to `last` must be ARRAY, got %s", args[0].Type())
			}
			if len(arr.Elements) == 0 {
				return object.NULL
			}
			return arr.Elements[len(arr.Elements)-1]
		},
	},
	"rest": {
		Name: "rest",
		Fn: func(args ...object.Object) object.Object {
			if len(args) != 1 {
				return newError("wrong number of arguments. got=%d, want=1", len(args))
			}
			arr, ok := args[0].(*object.Array)
			if !ok {
				return newError("argument to `rest` must be ARRAY, got %s", args[0].Type())
			}
			length := len(arr.Elements)
			if length == 0 {
				return object.NULL
			}
			newElements := make([]object.Object, length-1)
			copy(newElements, arr.Elements[1:length])
			return &object.Array{Elements: newElements}
		},
	},
	"push": {
		Name: "push",
		Fn: func(args ...object.Object) object.Object {
			if len(args) != 2 {
				return newError("wrong number of arguments. got=%d, want=2", len(args))
			}
			arr, ok := args[0].(*object.Array)
			if !ok {
				return newError("argument to `push` must be ARRAY, got %s", args[0].Type())
			}
			length := len(arr.Elements)
			newElements := make([]object.Object, length+1)
			copy(newElements, arr.Elements)
			newElements[length] = args[1]
			return &object.Array{Elements: newElements}
		},
	},
}

// putsBuiltin is built per-evaluation so it can close over that run's output
// buffer instead of writing to a shared global.
func putsBuiltin(out *outputBuffer) *object.Builtin {
	return &object.Builtin{
		Name: "puts",
		Fn: func(args ...object.Object) object.Object {
			for _, arg := range args {
				fmt.Fprintln(out, arg.Inspect())
			}
			return object.NULL
		},
	}
}
