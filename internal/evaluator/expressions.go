package evaluator

import (
	"fmt"

	"lute/internal/ast"
	"lute/internal/value"
)

func (e *Evaluator) evalExpression(env *value.Environment, expression ast.Expression, importing bool) (value.Value, error) {
	switch expr := expression.(type) {
	case *ast.IntegerLiteral:
		return &value.Int{Value: expr.Value}, nil
	case *ast.FloatLiteral:
		return &value.Float{Value: expr.Value}, nil
	case *ast.BooleanLiteral:
		return &value.Bool{Value: expr.Value}, nil
	case *ast.CharLiteral:
		return &value.Char{Value: expr.Value}, nil
	case *ast.StringLiteral:
		return &value.Str{Value: expr.Value}, nil

	case *ast.Identifier:
		v, ok := env.Get(expr.Value)
		if !ok {
			return nil, fmt.Errorf("'%s' is not defined", expr.Value)
		}
		return value.Copy(v), nil

	case *ast.CallExpression:
		return e.evalCallExpression(env, expr, importing)

	case *ast.InfixExpression:
		left, err := e.evalExpression(env, expr.Left, importing)
		if err != nil {
			return nil, err
		}
		right, err := e.evalExpression(env, expr.Right, importing)
		if err != nil {
			return nil, err
		}
		v, err := applyOperator(expr.Operator, left, right)
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, fmt.Errorf("cannot apply '%s' to %s and %s",
				expr.Operator, left.Type(), right.Type())
		}
		return v, nil

	case *ast.CompoundExpression:
		current, ok := env.Get(expr.Name.Value)
		if !ok {
			return nil, fmt.Errorf("'%s' is not defined", expr.Name.Value)
		}
		rhs, err := e.evalExpression(env, expr.Value, importing)
		if err != nil {
			return nil, err
		}
		v, err := applyOperator(expr.Operator, current, rhs)
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, fmt.Errorf("cannot operate on %s", expr.Name.Value)
		}
		env.Set(expr.Name.Value, v)
		return value.Copy(v), nil

	case *ast.ListLiteral:
		return e.evalListLiteral(env, expr, importing)

	case *ast.IndexExpression:
		return e.evalIndexExpression(env, expr, importing)

	case *ast.Comprehension:
		return e.evalComprehension(env, expr, importing)

	default:
		return nil, fmt.Errorf("unhandled expression: %s", expression.String())
	}
}

func (e *Evaluator) evalExpressions(env *value.Environment, expressions []ast.Expression, importing bool) ([]value.Value, error) {
	vals := make([]value.Value, 0, len(expressions))
	for _, expr := range expressions {
		v, err := e.evalExpression(env, expr, importing)
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	return vals, nil
}

func (e *Evaluator) evalCallExpression(env *value.Environment, expr *ast.CallExpression, importing bool) (value.Value, error) {
	args, err := e.evalExpressions(env, expr.Arguments, importing)
	if err != nil {
		return nil, err
	}

	callee, ok := env.Get(expr.Function)
	if !ok {
		return nil, fmt.Errorf("'%s' is not defined", expr.Function)
	}

	switch fn := callee.(type) {
	case *value.Builtin:
		if importing && (expr.Function == "print" || expr.Function == "println") {
			return &value.Null{}, nil
		}
		return fn.Fn(args...)

	case *value.Function:
		if len(args) != len(fn.Parameters) {
			return nil, fmt.Errorf("expected %d arguments, got %d",
				len(fn.Parameters), len(args))
		}

		// the callee gets a full copy of the caller's frame; nothing it
		// does can leak back except through the return expression
		local := env.Duplicate()
		for i, name := range fn.Parameters {
			local.Set(name, value.Copy(args[i]))
		}
		if err := e.evalStatements(local, fn.Body.Statements, importing); err != nil {
			return nil, err
		}
		if fn.Return == nil {
			return &value.Null{}, nil
		}
		return e.evalExpression(local, fn.Return, importing)

	default:
		return nil, fmt.Errorf("'%s' is not a function", expr.Function)
	}
}

func (e *Evaluator) evalListLiteral(env *value.Environment, expr *ast.ListLiteral, importing bool) (value.Value, error) {
	items := []value.Value{}

	for _, item := range expr.Items {
		v, err := e.evalExpression(env, item.Expression, importing)
		if err != nil {
			return nil, err
		}

		if !item.IsSpread {
			items = append(items, v)
			continue
		}

		list, ok := v.(*value.List)
		if !ok {
			return nil, fmt.Errorf("only lists can be spread")
		}
		items = append(items, list.Items...)
	}

	return &value.List{Items: items}, nil
}

func (e *Evaluator) evalIndexExpression(env *value.Environment, expr *ast.IndexExpression, importing bool) (value.Value, error) {
	v, ok := env.Get(expr.Name.Value)
	if !ok {
		return nil, fmt.Errorf("'%s' is not defined", expr.Name.Value)
	}

	// the index expression runs in a throwaway copy of the frame
	idxVal, err := e.evalExpression(env.Duplicate(), expr.Index, importing)
	if err != nil {
		return nil, err
	}
	idx, ok := idxVal.(*value.Int)
	if !ok {
		return nil, fmt.Errorf("index must be of type int")
	}

	switch target := v.(type) {
	case *value.List:
		i, err := resolveIndex(idx.Value, len(target.Items))
		if err != nil {
			return nil, err
		}
		return value.Copy(target.Items[i]), nil
	case *value.Str:
		runes := []rune(target.Value)
		i, err := resolveIndex(idx.Value, len(runes))
		if err != nil {
			return nil, err
		}
		return &value.Char{Value: runes[i]}, nil
	default:
		return nil, fmt.Errorf("cannot iterate over variable %s", expr.Name.Value)
	}
}

// resolveIndex maps a possibly negative index onto [0, length); -1 addresses
// the last element.
func resolveIndex(idx int32, length int) (int, error) {
	i := int(idx)
	if i < 0 {
		i = length + i
	}
	if i < 0 || i >= length {
		return 0, fmt.Errorf("index %d is out of bounds", idx)
	}
	return i, nil
}

func (e *Evaluator) evalComprehension(env *value.Environment, expr *ast.Comprehension, importing bool) (value.Value, error) {
	local := env.Duplicate()

	source, err := e.evalExpression(local, expr.Source, importing)
	if err != nil {
		return nil, err
	}

	var elements []value.Value
	switch src := source.(type) {
	case *value.List:
		elements = src.Items
	case *value.Str:
		for _, r := range src.Value {
			elements = append(elements, &value.Char{Value: r})
		}
	default:
		return nil, fmt.Errorf("%s is not iterable", sourceKindName(source))
	}

	output := []value.Value{}
	for _, element := range elements {
		local.Set(expr.LoopVar.Value, element)
		v, err := e.evalExpression(local, expr.Result, importing)
		if err != nil {
			return nil, err
		}
		output = append(output, v)
	}

	return &value.List{Items: output}, nil
}

func sourceKindName(v value.Value) string {
	switch v.(type) {
	case *value.Null:
		return "null"
	case *value.Int:
		return "int"
	case *value.Float:
		return "float"
	case *value.Bool:
		return "bool"
	case *value.Char:
		return "char"
	case *value.Builtin, *value.Function:
		return "function"
	default:
		return string(v.Type())
	}
}
