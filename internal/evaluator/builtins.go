package evaluator

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"lute/internal/value"
)

// output is where print and println write; tests swap it out.
var output io.Writer = os.Stdout

var builtins = map[string]*value.Builtin{
	"print":   funcPrint(),
	"println": funcPrintLn(),

	"type": funcType(),
	"len":  funcLen(),
	"str":  funcStr(),

	// list functions
	"range": funcRange(),
	"push":  funcPush(),
	"chars": funcChars(),

	// database functions
	"db_open":  funcDbOpen(),
	"db_query": funcDbQuery(),
	"db_exec":  funcDbExec(),
	"db_close": funcDbClose(),
}

// NewRootEnvironment returns a frame pre-populated with every builtin.
func NewRootEnvironment() *value.Environment {
	env := value.NewEnvironment()
	for name, builtin := range builtins {
		env.Set(name, builtin)
	}
	return env
}

func renderArgs(args []value.Value) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = arg.Inspect()
	}
	return strings.Join(parts, " ")
}

func funcPrint() *value.Builtin {
	return &value.Builtin{
		Name: "print",
		Fn: func(args ...value.Value) (value.Value, error) {
			fmt.Fprint(output, renderArgs(args))
			return &value.Null{}, nil
		},
	}
}

func funcPrintLn() *value.Builtin {
	return &value.Builtin{
		Name: "println",
		Fn: func(args ...value.Value) (value.Value, error) {
			fmt.Fprintln(output, renderArgs(args))
			return &value.Null{}, nil
		},
	}
}

func funcType() *value.Builtin {
	return &value.Builtin{
		Name: "type",
		Fn: func(args ...value.Value) (value.Value, error) {
			if len(args) != 1 {
				return nil, fmt.Errorf("expected 1 arguments, got %d", len(args))
			}
			return &value.Str{Value: string(args[0].Type())}, nil
		},
	}
}

func funcLen() *value.Builtin {
	return &value.Builtin{
		Name: "len",
		Fn: func(args ...value.Value) (value.Value, error) {
			if len(args) != 1 {
				return nil, fmt.Errorf("expected 1 arguments, got %d", len(args))
			}
			switch arg := args[0].(type) {
			case *value.Str:
				return &value.Int{Value: int32(utf8.RuneCountInString(arg.Value))}, nil
			case *value.List:
				return &value.Int{Value: int32(len(arg.Items))}, nil
			default:
				return nil, fmt.Errorf("argument to 'len' must be STR or LIST, got %s",
					args[0].Type())
			}
		},
	}
}

func funcStr() *value.Builtin {
	return &value.Builtin{
		Name: "str",
		Fn: func(args ...value.Value) (value.Value, error) {
			if len(args) != 1 {
				return nil, fmt.Errorf("expected 1 arguments, got %d", len(args))
			}
			return &value.Str{Value: args[0].Inspect()}, nil
		},
	}
}

// funcRange builds [0, n) with one argument or [start, stop) with two.
func funcRange() *value.Builtin {
	return &value.Builtin{
		Name: "range",
		Fn: func(args ...value.Value) (value.Value, error) {
			if len(args) != 1 && len(args) != 2 {
				return nil, fmt.Errorf("expected 1 or 2 arguments, got %d", len(args))
			}

			var start, stop int32
			switch len(args) {
			case 1:
				n, ok := args[0].(*value.Int)
				if !ok {
					return nil, fmt.Errorf("argument to 'range' must be INT, got %s",
						args[0].Type())
				}
				stop = n.Value
			case 2:
				a, aok := args[0].(*value.Int)
				b, bok := args[1].(*value.Int)
				if !aok || !bok {
					return nil, fmt.Errorf("arguments to 'range' must be INT")
				}
				start, stop = a.Value, b.Value
			}

			items := []value.Value{}
			for i := start; i < stop; i++ {
				items = append(items, &value.Int{Value: i})
			}
			return &value.List{Items: items}, nil
		},
	}
}

func funcPush() *value.Builtin {
	return &value.Builtin{
		Name: "push",
		Fn: func(args ...value.Value) (value.Value, error) {
			if len(args) < 2 {
				return nil, fmt.Errorf("expected 2 or more arguments, got %d", len(args))
			}
			list, ok := args[0].(*value.List)
			if !ok {
				return nil, fmt.Errorf("argument to 'push' must be LIST, got %s",
					args[0].Type())
			}

			items := make([]value.Value, len(list.Items), len(list.Items)+len(args)-1)
			copy(items, list.Items)
			for _, item := range args[1:] {
				items = append(items, value.Copy(item))
			}
			return &value.List{Items: items}, nil
		},
	}
}

func funcChars() *value.Builtin {
	return &value.Builtin{
		Name: "chars",
		Fn: func(args ...value.Value) (value.Value, error) {
			if len(args) != 1 {
				return nil, fmt.Errorf("expected 1 arguments, got %d", len(args))
			}
			s, ok := args[0].(*value.Str)
			if !ok {
				return nil, fmt.Errorf("argument to 'chars' must be STR, got %s",
					args[0].Type())
			}

			items := []value.Value{}
			for _, r := range s.Value {
				items = append(items, &value.Char{Value: r})
			}
			return &value.List{Items: items}, nil
		},
	}
}
