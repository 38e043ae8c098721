package evaluator

import (
	"fmt"

	"lute/internal/ast"
	"lute/internal/value"
)

// assign binds an evaluated value to an assignment target, dispatching on
// the target's shape.
func (e *Evaluator) assign(env *value.Environment, target ast.Expression, v value.Value, importing bool) error {
	switch lhs := target.(type) {
	case *ast.Identifier:
		// "_" is write-only: assignment to it discards the value
		if lhs.Value == "_" {
			return nil
		}
		env.Set(lhs.Value, v)
		return nil

	case *ast.ListLiteral:
		list, ok := v.(*value.List)
		if !ok {
			return fmt.Errorf("cannot destructure non-list into list")
		}
		return e.assignList(env, lhs.Items, list.Items, importing)

	case *ast.IndexExpression:
		return e.assignIndex(env, lhs, v, importing)

	case *ast.IntegerLiteral:
		return fmt.Errorf("cannot assign to an integer literal")
	case *ast.FloatLiteral:
		return fmt.Errorf("cannot assign to a float literal")
	case *ast.BooleanLiteral:
		return fmt.Errorf("cannot assign to a boolean literal")
	case *ast.StringLiteral:
		return fmt.Errorf("cannot assign to a string literal")
	case *ast.CharLiteral:
		return fmt.Errorf("cannot assign to a character literal")
	case *ast.CallExpression:
		return fmt.Errorf("cannot assign to a function call")
	case *ast.InfixExpression:
		return fmt.Errorf("cannot assign to an operation")
	case *ast.CompoundExpression:
		return fmt.Errorf("cannot assign to a compound expression")
	case *ast.Comprehension:
		return fmt.Errorf("cannot assign to a comprehension")
	default:
		return fmt.Errorf("invalid assignment target")
	}
}

// assignList walks a destructuring pattern left to right. When the pattern
// list is shorter than the value list, the final pattern must be marked pack
// and receives the remaining values as a list.
func (e *Evaluator) assignList(env *value.Environment, patterns []*ast.ListItem, vals []value.Value, importing bool) error {
	if len(patterns) == 0 {
		if len(vals) > 0 {
			return fmt.Errorf("cannot assign %d values to 0 targets", len(vals))
		}
		return nil
	}
	if len(patterns) > len(vals) {
		return fmt.Errorf("cannot assign %d values to %d targets", len(vals), len(patterns))
	}

	targets := []ast.Expression{}
	resolved := []value.Value{}

	for x := 0; x < len(vals); x++ {
		if x == len(patterns)-1 && len(patterns) != len(vals) {
			if !patterns[x].IsPack {
				return fmt.Errorf("cannot assign %d values to %d targets",
					len(vals), len(patterns))
			}
			rest := make([]value.Value, len(vals)-x)
			copy(rest, vals[x:])
			targets = append(targets, patterns[x].Expression)
			resolved = append(resolved, &value.List{Items: rest})
			break
		}

		if patterns[x].IsSpread {
			return fmt.Errorf("cannot use spread in list assignment")
		}

		targets = append(targets, patterns[x].Expression)
		resolved = append(resolved, vals[x])
	}

	for i := range targets {
		if err := e.assign(env, targets[i], resolved[i], importing); err != nil {
			return err
		}
	}

	return nil
}

// assignIndex replaces one element of a bound list and writes the whole list
// back under its name.
func (e *Evaluator) assignIndex(env *value.Environment, target *ast.IndexExpression, v value.Value, importing bool) error {
	current, ok := env.Get(target.Name.Value)
	if !ok {
		return fmt.Errorf("'%s' is not defined", target.Name.Value)
	}

	idxVal, err := e.evalExpression(env.Duplicate(), target.Index, importing)
	if err != nil {
		return err
	}

	var list *value.List
	switch cur := current.(type) {
	case *value.List:
		list = cur
	case *value.Str:
		return fmt.Errorf("cannot assign to a string index")
	case *value.Null:
		return fmt.Errorf("cannot index null")
	case *value.Int:
		return fmt.Errorf("cannot index int")
	case *value.Float:
		return fmt.Errorf("cannot index float")
	case *value.Bool:
		return fmt.Errorf("cannot index bool")
	case *value.Char:
		return fmt.Errorf("cannot index char")
	default:
		return fmt.Errorf("cannot index function")
	}

	idx, ok := idxVal.(*value.Int)
	if !ok {
		return fmt.Errorf("index must be of type int")
	}
	i, err := resolveIndex(idx.Value, len(list.Items))
	if err != nil {
		return err
	}

	items := make([]value.Value, len(list.Items))
	copy(items, list.Items)
	items[i] = v

	env.Set(target.Name.Value, &value.List{Items: items})
	return nil
}
