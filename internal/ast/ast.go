package ast

import (
	"bytes"
	"strconv"
	"strings"

	"lute/internal/token"
)

// Operator is a binary operator as it appears in source.
type Operator string

const (
	OpAdd         Operator = "+"
	OpSub         Operator = "-"
	OpMul         Operator = "*"
	OpDiv         Operator = "/"
	OpLessThan    Operator = "<"
	OpGreaterThan Operator = ">"
	OpEqual       Operator = "=="
	OpNotEqual    Operator = "!="
)

// The base Node interface
type Node interface {
	TokenLiteral() string
	String() string
}

type Statement interface {
	Node
	statementNode()
}

type Expression interface {
	Node
	expressionNode()
}

type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	var out bytes.Buffer

	for _, s := range p.Statements {
		out.WriteString(s.String())
	}

	return out.String()
}

type BlockStatement struct {
	Token      token.Token // the { token
	Statements []Statement
}

func (bs *BlockStatement) statementNode()       {}
func (bs *BlockStatement) TokenLiteral() string { return bs.Token.Literal }
func (bs *BlockStatement) String() string {
	var out bytes.Buffer
	out.WriteString("{ ")
	for _, s := range bs.Statements {
		out.WriteString(s.String())
	}
	out.WriteString(" }")
	return out.String()
}

type ExpressionStatement struct {
	Token      token.Token // the first token of the expression
	Expression Expression
}

func (es *ExpressionStatement) statementNode()       {}
func (es *ExpressionStatement) TokenLiteral() string { return es.Token.Literal }
func (es *ExpressionStatement) String() string {
	if es.Expression != nil {
		return es.Expression.String() + ";"
	}
	return ""
}

// AssignStatement covers identifier, list pattern and index targets; the
// evaluator dispatches on the shape of Target.
type AssignStatement struct {
	Token  token.Token
	Target Expression
	Value  Expression
}

func (as *AssignStatement) statementNode()       {}
func (as *AssignStatement) TokenLiteral() string { return as.Token.Literal }
func (as *AssignStatement) String() string {
	return as.Target.String() + " = " + as.Value.String() + ";"
}

type CompoundAssignStatement struct {
	Token    token.Token // the += style token
	Name     *Identifier
	Operator Operator
	Value    Expression
}

func (ca *CompoundAssignStatement) statementNode()       {}
func (ca *CompoundAssignStatement) TokenLiteral() string { return ca.Token.Literal }
func (ca *CompoundAssignStatement) String() string {
	return ca.Name.String() + " " + string(ca.Operator) + "= " + ca.Value.String() + ";"
}

type ElifBranch struct {
	Condition Expression
	Body      *BlockStatement
}

type IfStatement struct {
	Token     token.Token // the if token
	Condition Expression
	Body      *BlockStatement
	Elifs     []ElifBranch
	Else      *BlockStatement
}

func (is *IfStatement) statementNode()       {}
func (is *IfStatement) TokenLiteral() string { return is.Token.Literal }
func (is *IfStatement) String() string {
	var out bytes.Buffer
	out.WriteString("if ")
	out.WriteString(is.Condition.String())
	out.WriteString(" ")
	out.WriteString(is.Body.String())
	for _, elif := range is.Elifs {
		out.WriteString(" elif ")
		out.WriteString(elif.Condition.String())
		out.WriteString(" ")
		out.WriteString(elif.Body.String())
	}
	if is.Else != nil {
		out.WriteString(" else ")
		out.WriteString(is.Else.String())
	}
	return out.String()
}

type WhileStatement struct {
	Token     token.Token // the while token
	Condition Expression
	Body      *BlockStatement
}

func (ws *WhileStatement) statementNode()       {}
func (ws *WhileStatement) TokenLiteral() string { return ws.Token.Literal }
func (ws *WhileStatement) String() string {
	return "while " + ws.Condition.String() + " " + ws.Body.String()
}

type ForStatement struct {
	Token    token.Token // the for token
	LoopVar  *Identifier
	Iterable Expression
	Body     *BlockStatement
}

func (fs *ForStatement) statementNode()       {}
func (fs *ForStatement) TokenLiteral() string { return fs.Token.Literal }
func (fs *ForStatement) String() string {
	return "for " + fs.LoopVar.String() + " in " + fs.Iterable.String() + " " + fs.Body.String()
}

// FunctionStatement keeps the optional trailing return expression apart from
// the body statements; a function without one yields Null.
type FunctionStatement struct {
	Token      token.Token // the fn token
	Name       *Identifier
	Parameters []*Identifier
	Body       *BlockStatement
	Return     Expression
}

func (fs *FunctionStatement) statementNode()       {}
func (fs *FunctionStatement) TokenLiteral() string { return fs.Token.Literal }
func (fs *FunctionStatement) String() string {
	var out bytes.Buffer
	params := []string{}
	for _, p := range fs.Parameters {
		params = append(params, p.String())
	}
	out.WriteString("fn ")
	out.WriteString(fs.Name.String())
	out.WriteString("(")
	out.WriteString(strings.Join(params, ", "))
	out.WriteString(") { ")
	for _, s := range fs.Body.Statements {
		out.WriteString(s.String())
	}
	if fs.Return != nil {
		out.WriteString("return " + fs.Return.String())
	}
	out.WriteString(" }")
	return out.String()
}

type ImportStatement struct {
	Token token.Token // the import token
	Path  string
}

func (is *ImportStatement) statementNode()       {}
func (is *ImportStatement) TokenLiteral() string { return is.Token.Literal }
func (is *ImportStatement) String() string {
	return "import " + strconv.Quote(is.Path) + ";"
}

type Identifier struct {
	Token token.Token // the token.IDENT token
	Value string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) String() string       { return i.Value }

type IntegerLiteral struct {
	Token token.Token
	Value int32
}

func (il *IntegerLiteral) expressionNode()      {}
func (il *IntegerLiteral) TokenLiteral() string { return il.Token.Literal }
func (il *IntegerLiteral) String() string       { return strconv.FormatInt(int64(il.Value), 10) }

type FloatLiteral struct {
	Token token.Token
	Value float64
}

func (fl *FloatLiteral) expressionNode()      {}
func (fl *FloatLiteral) TokenLiteral() string { return fl.Token.Literal }
func (fl *FloatLiteral) String() string       { return strconv.FormatFloat(fl.Value, 'f', -1, 64) }

type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (bl *BooleanLiteral) expressionNode()      {}
func (bl *BooleanLiteral) TokenLiteral() string { return bl.Token.Literal }
func (bl *BooleanLiteral) String() string       { return bl.Token.Literal }

type CharLiteral struct {
	Token token.Token
	Value rune
}

func (cl *CharLiteral) expressionNode()      {}
func (cl *CharLiteral) TokenLiteral() string { return cl.Token.Literal }
func (cl *CharLiteral) String() string       { return "'" + string(cl.Value) + "'" }

type StringLiteral struct {
	Token token.Token
	Value string
}

func (sl *StringLiteral) expressionNode()      {}
func (sl *StringLiteral) TokenLiteral() string { return sl.Token.Literal }
func (sl *StringLiteral) String() string       { return strconv.Quote(sl.Value) }

// CallExpression is name-based: functions are resolved through the frame at
// call time, there are no function-valued expressions in the language.
type CallExpression struct {
	Token     token.Token // the ( token
	Function  string
	Arguments []Expression
}

func (ce *CallExpression) expressionNode()      {}
func (ce *CallExpression) TokenLiteral() string { return ce.Token.Literal }
func (ce *CallExpression) String() string {
	args := []string{}
	for _, a := range ce.Arguments {
		args = append(args, a.String())
	}
	return ce.Function + "(" + strings.Join(args, ", ") + ")"
}

type InfixExpression struct {
	Token    token.Token // the operator token
	Left     Expression
	Operator Operator
	Right    Expression
}

func (ie *InfixExpression) expressionNode()      {}
func (ie *InfixExpression) TokenLiteral() string { return ie.Token.Literal }
func (ie *InfixExpression) String() string {
	return "(" + ie.Left.String() + " " + string(ie.Operator) + " " + ie.Right.String() + ")"
}

// CompoundExpression is the expression form of compound assignment: it
// rebinds the name and yields the new value.
type CompoundExpression struct {
	Token    token.Token // the += style token
	Name     *Identifier
	Operator Operator
	Value    Expression
}

func (ce *CompoundExpression) expressionNode()      {}
func (ce *CompoundExpression) TokenLiteral() string { return ce.Token.Literal }
func (ce *CompoundExpression) String() string {
	return "(" + ce.Name.String() + " " + string(ce.Operator) + "= " + ce.Value.String() + ")"
}

// ListItem is one element of a list literal or list assignment pattern.
// Spread is only legal in literals, Pack only in assignment targets.
type ListItem struct {
	Expression Expression
	IsSpread   bool
	IsPack     bool
}

func (li *ListItem) String() string {
	if li.IsSpread {
		return "..." + li.Expression.String()
	}
	if li.IsPack {
		return "*" + li.Expression.String()
	}
	return li.Expression.String()
}

type ListLiteral struct {
	Token token.Token // the [ token
	Items []*ListItem
}

func (ll *ListLiteral) expressionNode()      {}
func (ll *ListLiteral) TokenLiteral() string { return ll.Token.Literal }
func (ll *ListLiteral) String() string {
	items := []string{}
	for _, item := range ll.Items {
		items = append(items, item.String())
	}
	return "[" + strings.Join(items, ", ") + "]"
}

type IndexExpression struct {
	Token token.Token // the [ token
	Name  *Identifier
	Index Expression
}

func (ie *IndexExpression) expressionNode()      {}
func (ie *IndexExpression) TokenLiteral() string { return ie.Token.Literal }
func (ie *IndexExpression) String() string {
	return ie.Name.String() + "[" + ie.Index.String() + "]"
}

type Comprehension struct {
	Token   token.Token // the [ token
	Result  Expression
	LoopVar *Identifier
	Source  Expression
}

func (c *Comprehension) expressionNode()      {}
func (c *Comprehension) TokenLiteral() string { return c.Token.Literal }
func (c *Comprehension) String() string {
	return "[" + c.Result.String() + " for " + c.LoopVar.String() + " in " + c.Source.String() + "]"
}
