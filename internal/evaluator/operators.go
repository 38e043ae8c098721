package evaluator

import (
	"fmt"

	"lute/internal/ast"
	"lute/internal/value"
)

// applyOperator applies a binary operator to two evaluated operands. A
// (nil, nil) return means the pairing is unsupported; callers turn that into
// an incompatible-operand error with whatever context they have.
func applyOperator(op ast.Operator, left, right value.Value) (value.Value, error) {
	switch op {
	case ast.OpEqual:
		return &value.Bool{Value: value.Equals(left, right)}, nil
	case ast.OpNotEqual:
		return &value.Bool{Value: !value.Equals(left, right)}, nil
	}

	if l, ok := left.(*value.Int); ok {
		if r, ok := right.(*value.Int); ok {
			return applyIntOperator(op, l.Value, r.Value)
		}
	}

	lf, lok := numericValue(left)
	rf, rok := numericValue(right)
	if lok && rok {
		return applyFloatOperator(op, lf, rf)
	}

	return nil, nil
}

func applyIntOperator(op ast.Operator, l, r int32) (value.Value, error) {
	switch op {
	case ast.OpAdd:
		return &value.Int{Value: l + r}, nil
	case ast.OpSub:
		return &value.Int{Value: l - r}, nil
	case ast.OpMul:
		return &value.Int{Value: l * r}, nil
	case ast.OpDiv:
		if r == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		return &value.Int{Value: l / r}, nil
	case ast.OpLessThan:
		return &value.Bool{Value: l < r}, nil
	case ast.OpGreaterThan:
		return &value.Bool{Value: l > r}, nil
	}
	return nil, nil
}

func applyFloatOperator(op ast.Operator, l, r float64) (value.Value, error) {
	switch op {
	case ast.OpAdd:
		return &value.Float{Value: l + r}, nil
	case ast.OpSub:
		return &value.Float{Value: l - r}, nil
	case ast.OpMul:
		return &value.Float{Value: l * r}, nil
	case ast.OpDiv:
		if r == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		return &value.Float{Value: l / r}, nil
	case ast.OpLessThan:
		return &value.Bool{Value: l < r}, nil
	case ast.OpGreaterThan:
		return &value.Bool{Value: l > r}, nil
	}
	return nil, nil
}

func numericValue(v value.Value) (float64, bool) {
	switch n := v.(type) {
	case *value.Int:
		return float64(n.Value), true
	case *value.Float:
		return n.Value, true
	default:
		return 0, false
	}
}
