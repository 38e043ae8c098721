package value

import (
	"bytes"
	"math"
	"strconv"
	"strings"

	"lute/internal/ast"
)

type Type string

const (
	NULL_VAL     = "NULL"
	INT_VAL      = "INT"
	FLOAT_VAL    = "FLOAT"
	BOOL_VAL     = "BOOL"
	CHAR_VAL     = "CHAR"
	STR_VAL      = "STR"
	LIST_VAL     = "LIST"
	BUILTIN_VAL  = "BUILTIN"
	FUNCTION_VAL = "FUNCTION"
)

// epsilon used when comparing floats for equality
const floatEpsilon = 1e-9

type Value interface {
	Type() Type
	Inspect() string
}

type Null struct{}

func (n *Null) Type() Type      { return NULL_VAL }
func (n *Null) Inspect() string { return "null" }

type Int struct {
	Value int32
}

func (i *Int) Type() Type      { return INT_VAL }
func (i *Int) Inspect() string { return strconv.FormatInt(int64(i.Value), 10) }

type Float struct {
	Value float64
}

func (f *Float) Type() Type      { return FLOAT_VAL }
func (f *Float) Inspect() string { return strconv.FormatFloat(f.Value, 'f', -1, 64) }

type Bool struct {
	Value bool
}

func (b *Bool) Type() Type      { return BOOL_VAL }
func (b *Bool) Inspect() string { return strconv.FormatBool(b.Value) }

type Char struct {
	Value rune
}

func (c *Char) Type() Type      { return CHAR_VAL }
func (c *Char) Inspect() string { return string(c.Value) }

type Str struct {
	Value string
}

func (s *Str) Type() Type      { return STR_VAL }
func (s *Str) Inspect() string { return s.Value }

type List struct {
	Items []Value
}

func (l *List) Type() Type { return LIST_VAL }
func (l *List) Inspect() string {
	var out bytes.Buffer
	items := []string{}
	for _, item := range l.Items {
		switch item.(type) {
		case *Str:
			items = append(items, strconv.Quote(item.Inspect()))
		case *Char:
			items = append(items, "'"+item.Inspect()+"'")
		default:
			items = append(items, item.Inspect())
		}
	}
	out.WriteString("[")
	out.WriteString(strings.Join(items, ", "))
	out.WriteString("]")
	return out.String()
}

// BuiltinFunction is the shape of a native function exposed to scripts.
type BuiltinFunction func(args ...Value) (Value, error)

type Builtin struct {
	Name string
	Fn   BuiltinFunction
}

func (b *Builtin) Type() Type      { return BUILTIN_VAL }
func (b *Builtin) Inspect() string { return "builtin function " + b.Name }

// Function is a user-defined function. The trailing return expression is
// kept apart from the body statements.
type Function struct {
	Name       string
	Parameters []string
	Body       *ast.BlockStatement
	Return     ast.Expression
}

func (f *Function) Type() Type { return FUNCTION_VAL }
func (f *Function) Inspect() string {
	return "fn " + f.Name + "(" + strings.Join(f.Parameters, ", ") + ") {...}"
}

// Copy returns a value safe to bind into another frame. Lists are copied
// deeply; everything else is immutable and shared as-is.
func Copy(v Value) Value {
	list, ok := v.(*List)
	if !ok {
		return v
	}
	items := make([]Value, len(list.Items))
	for i, item := range list.Items {
		items[i] = Copy(item)
	}
	return &List{Items: items}
}

// Equals reports structural equality. Numeric pairs are compared after
// promotion to float, within a small epsilon.
func Equals(a, b Value) bool {
	if an, aok := asFloat(a); aok {
		bn, bok := asFloat(b)
		if !bok {
			return false
		}
		return math.Abs(an-bn) < floatEpsilon
	}

	switch av := a.(type) {
	case *Null:
		_, ok := b.(*Null)
		return ok
	case *Bool:
		bv, ok := b.(*Bool)
		return ok && av.Value == bv.Value
	case *Char:
		bv, ok := b.(*Char)
		return ok && av.Value == bv.Value
	case *Str:
		bv, ok := b.(*Str)
		return ok && av.Value == bv.Value
	case *List:
		bv, ok := b.(*List)
		if !ok || len(av.Items) != len(bv.Items) {
			return false
		}
		for i := range av.Items {
			if !Equals(av.Items[i], bv.Items[i]) {
				return false
			}
		}
		return true
	case *Builtin:
		bv, ok := b.(*Builtin)
		return ok && av.Name == bv.Name
	case *Function:
		bv, ok := b.(*Function)
		return ok && av.Name == bv.Name
	default:
		return false
	}
}

func asFloat(v Value) (float64, bool) {
	switch n := v.(type) {
	case *Int:
		return float64(n.Value), true
	case *Float:
		return n.Value, true
	default:
		return 0, false
	}
}
