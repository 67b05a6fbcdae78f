package lang

// Node is implemented by every syntax tree node.
type Node interface {
	// Pos returns the source position of the node. For a [BinaryOp] it is
	// the position of the operator.
	Pos() Pos
	node()
}

// Expr is an expression node: [*NumberLit], [*StringLit], [*BoolLit],
// [*Identifier] or [*BinaryOp].
type Expr interface {
	Node
	expr()
}

// Stmt is a statement node: [*PrintStmt] or [*VarDecl].
type Stmt interface {
	Node
	stmt()
}

type (
	NumberLit struct {
		Value float64
		// Text is the literal's source digits, kept for literals beyond
		// the range of float64. It may be empty.
		Text string
		at   Pos
	}

	StringLit struct {
		Value string
		at    Pos
	}

	BoolLit struct {
		Value bool
		at    Pos
	}

	Identifier struct {
		Name string
		at   Pos
	}

	// BinaryOp applies Op to two operands it owns exclusively.
	BinaryOp struct {
		Op    string
		Left  Expr
		Right Expr
		at    Pos
	}
)

type (
	PrintStmt struct {
		Expr Expr
		at   Pos
	}

	// VarDecl binds Name to the value of Expr, permanently if Const is set.
	VarDecl struct {
		Name  string
		Expr  Expr
		Const bool
		at    Pos
	}
)

func (n *NumberLit) Pos() Pos  { return n.at }
func (n *StringLit) Pos() Pos  { return n.at }
func (n *BoolLit) Pos() Pos    { return n.at }
func (n *Identifier) Pos() Pos { return n.at }
func (n *BinaryOp) Pos() Pos   { return n.at }
func (n *PrintStmt) Pos() Pos  { return n.at }
func (n *VarDecl) Pos() Pos    { return n.at }

func (*NumberLit) node()  {}
func (*StringLit) node()  {}
func (*BoolLit) node()    {}
func (*Identifier) node() {}
func (*BinaryOp) node()   {}
func (*PrintStmt) node()  {}
func (*VarDecl) node()    {}

func (*NumberLit) expr()  {}
func (*StringLit) expr()  {}
func (*BoolLit) expr()    {}
func (*Identifier) expr() {}
func (*BinaryOp) expr()   {}

func (*PrintStmt) stmt() {}
func (*VarDecl) stmt()   {}

// precedence returns the binding strength of a binary operator; higher binds
// tighter. Operands that are not binary operations bind tightest.
func precedence(e Expr) int {
	b, ok := e.(*BinaryOp)
	if !ok {
		return precPrimary
	}

	return opPrecedence(b.Op)
}

const (
	precAdd = iota + 1
	precMul
	precPow
	precPrimary
)

func opPrecedence(op string) int {
	switch op {
	case "+", "-":
		return precAdd
	case "*", "/", "//", "%":
		return precMul
	case "**":
		return precPow
	default:
		return precPrimary
	}
}
