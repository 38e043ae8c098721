package evaluator

import (
	"fmt"
	"log/slog"

	"lute/internal/ast"
	"lute/internal/parser"
	"lute/internal/value"
)

// Evaluator walks a parsed program and executes it against an Environment.
// entryPath is the path of the top-level script; imports are anchored to its
// parent directory.
type Evaluator struct {
	entryPath string
}

func New(entryPath string) *Evaluator {
	return &Evaluator{entryPath: entryPath}
}

// Run executes the program for its effects. This is the host driver entry
// point; the first error aborts the whole run.
func (e *Evaluator) Run(program *ast.Program, env *value.Environment) error {
	return e.evalStatements(env, program.Statements, false)
}

// EvalProgram executes the program and additionally reports the value of the
// last expression statement, which the repl echoes back.
func (e *Evaluator) EvalProgram(program *ast.Program, env *value.Environment) (value.Value, error) {
	var last value.Value = &value.Null{}

	for _, stmt := range program.Statements {
		if es, ok := stmt.(*ast.ExpressionStatement); ok {
			v, err := e.evalExpression(env, es.Expression, false)
			if err != nil {
				return nil, err
			}
			last = v
			continue
		}
		if err := e.evalStatement(env, stmt, false); err != nil {
			return nil, err
		}
		last = &value.Null{}
	}

	return last, nil
}

func (e *Evaluator) evalStatements(env *value.Environment, statements []ast.Statement, importing bool) error {
	for _, stmt := range statements {
		if err := e.evalStatement(env, stmt, importing); err != nil {
			return err
		}
	}
	return nil
}

func (e *Evaluator) evalStatement(env *value.Environment, statement ast.Statement, importing bool) error {
	switch stmt := statement.(type) {
	case *ast.ExpressionStatement:
		_, err := e.evalExpression(env, stmt.Expression, importing)
		return err

	case *ast.AssignStatement:
		v, err := e.evalExpression(env, stmt.Value, importing)
		if err != nil {
			return err
		}
		return e.assign(env, stmt.Target, v, importing)

	case *ast.CompoundAssignStatement:
		current, ok := env.Get(stmt.Name.Value)
		if !ok {
			return fmt.Errorf("'%s' is not defined", stmt.Name.Value)
		}
		rhs, err := e.evalExpression(env, stmt.Value, importing)
		if err != nil {
			return err
		}
		v, err := applyOperator(stmt.Operator, current, rhs)
		if err != nil {
			return err
		}
		if v == nil {
			return fmt.Errorf("cannot operate on %s", stmt.Name.Value)
		}
		env.Set(stmt.Name.Value, v)
		return nil

	case *ast.IfStatement:
		return e.evalIfStatement(env, stmt, importing)

	case *ast.WhileStatement:
		for {
			cond, err := e.evalExpression(env, stmt.Condition, importing)
			if err != nil {
				return err
			}
			b, ok := cond.(*value.Bool)
			if !ok {
				return fmt.Errorf("condition must be of type 'bool'")
			}
			if !b.Value {
				return nil
			}
			if err := e.evalStatements(env, stmt.Body.Statements, importing); err != nil {
				return err
			}
		}

	case *ast.ForStatement:
		return e.evalForStatement(env, stmt, importing)

	case *ast.FunctionStatement:
		if _, exists := env.Get(stmt.Name.Value); exists {
			return fmt.Errorf("function '%s' is already defined", stmt.Name.Value)
		}
		params := make([]string, len(stmt.Parameters))
		for i, p := range stmt.Parameters {
			params[i] = p.Value
		}
		env.Set(stmt.Name.Value, &value.Function{
			Name:       stmt.Name.Value,
			Parameters: params,
			Body:       stmt.Body,
			Return:     stmt.Return,
		})
		return nil

	case *ast.ImportStatement:
		return e.evalImportStatement(env, stmt)

	default:
		return fmt.Errorf("unhandled statement: %s", statement.String())
	}
}

func (e *Evaluator) evalIfStatement(env *value.Environment, stmt *ast.IfStatement, importing bool) error {
	branches := make([]ast.ElifBranch, 0, len(stmt.Elifs)+1)
	branches = append(branches, ast.ElifBranch{Condition: stmt.Condition, Body: stmt.Body})
	branches = append(branches, stmt.Elifs...)

	for _, branch := range branches {
		cond, err := e.evalExpression(env, branch.Condition, importing)
		if err != nil {
			return err
		}
		b, ok := cond.(*value.Bool)
		if !ok {
			return fmt.Errorf("condition must be of type 'bool'")
		}
		if b.Value {
			return e.evalStatements(env, branch.Body.Statements, importing)
		}
	}

	if stmt.Else != nil {
		return e.evalStatements(env, stmt.Else.Statements, importing)
	}
	return nil
}

// evalForStatement restricts the iterable to expression kinds that can
// produce a list; everything else is rejected before evaluation.
func (e *Evaluator) evalForStatement(env *value.Environment, stmt *ast.ForStatement, importing bool) error {
	switch stmt.Iterable.(type) {
	case *ast.ListLiteral, *ast.Identifier, *ast.CallExpression:
	case *ast.IntegerLiteral:
		return fmt.Errorf("integer literals are not iterable")
	case *ast.FloatLiteral:
		return fmt.Errorf("float literals are not iterable")
	case *ast.BooleanLiteral:
		return fmt.Errorf("boolean literals are not iterable")
	case *ast.StringLiteral:
		return fmt.Errorf("string literals are not iterable")
	case *ast.CharLiteral:
		return fmt.Errorf("character literals are not iterable")
	case *ast.InfixExpression:
		return fmt.Errorf("operations are not iterable")
	case *ast.CompoundExpression:
		return fmt.Errorf("compound expressions are not iterable")
	case *ast.IndexExpression:
		return fmt.Errorf("indexes are not iterable")
	case *ast.Comprehension:
		return fmt.Errorf("comprehensions are not iterable")
	default:
		return fmt.Errorf("expression is not iterable")
	}

	v, err := e.evalExpression(env, stmt.Iterable, importing)
	if err != nil {
		return err
	}
	list, ok := v.(*value.List)
	if !ok {
		return fmt.Errorf("for loop source must be a list")
	}

	for _, item := range list.Items {
		env.Set(stmt.LoopVar.Value, item)
		if err := e.evalStatements(env, stmt.Body.Statements, importing); err != nil {
			return err
		}
	}
	return nil
}

func (e *Evaluator) evalImportStatement(env *value.Environment, stmt *ast.ImportStatement) error {
	source, resolved, err := e.resolveModule(stmt.Path)
	if err != nil {
		return err
	}
	slog.Debug("importing module", "path", stmt.Path, "resolved", resolved)

	program, err := parser.Parse(source)
	if err != nil {
		return fmt.Errorf("error parsing %s: %w", resolved, err)
	}

	// imported statements run against the caller's frame with output
	// suppression on, and that flag survives nested imports
	return e.evalStatements(env, program.Statements, true)
}
