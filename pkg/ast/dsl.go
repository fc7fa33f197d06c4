package ast

// Construction helpers used by hosts and tests. Tokens built here carry line 1.

func Tok(typ TokenType, lexeme string) Token {
	return NewToken(typ, lexeme, 1)
}

func Ident(name string) Token {
	return Tok(TokenIdentifier, name)
}

// Literal helpers.

func Num(value float64) *NumberLiteral {
	return NewNumberLiteral(value)
}

func Str(value string) *StringLiteral {
	return NewStringLiteral(value)
}

func Bool(value bool) *BooleanLiteral {
	return NewBooleanLiteral(value)
}

func Nil() *NilLiteral {
	return NewNilLiteral()
}

// Expression helpers.

func Group(inner Expression) *GroupingExpression {
	return NewGroupingExpression(inner)
}

func Bin(op string, left, right Expression) *BinaryExpression {
	return NewBinaryExpression(Tok(TokenType(op), op), left, right)
}

func Un(op string, operand Expression) *UnaryExpression {
	return NewUnaryExpression(Tok(TokenType(op), op), operand)
}

func And(left, right Expression) *LogicalExpression {
	return NewLogicalExpression(Tok(TokenAnd, "and"), left, right)
}

func Or(left, right Expression) *LogicalExpression {
	return NewLogicalExpression(Tok(TokenOr, "or"), left, right)
}

func Var(name string) *VariableExpression {
	return NewVariableExpression(Ident(name))
}

func Assign(name string, value Expression) *AssignExpression {
	return NewAssignExpression(Ident(name), value)
}

func Self() *SelfExpression {
	return NewSelfExpression(Tok(TokenSelf, SelfName))
}

func Super(method string) *SuperExpression {
	return NewSuperExpression(Tok(TokenSuper, SuperName), Ident(method))
}

func Get(object Expression, name string) *GetExpression {
	return NewGetExpression(object, Ident(name))
}

func SetProp(object Expression, name string, value Expression) *SetExpression {
	return NewSetExpression(object, Ident(name), value)
}

func Call(callee Expression, args ...Expression) *CallExpression {
	return NewCallExpression(callee, Tok(TokenLeftParen, "("), args)
}

// Statement helpers.

func Expr(expr Expression) *ExpressionStatement {
	return NewExpressionStatement(expr)
}

func Print(expr Expression) *PrintStatement {
	return NewPrintStatement(expr)
}

func Let(name string, initializer Expression) *LetStatement {
	return NewLetStatement(Ident(name), initializer)
}

func Block(stmts ...Statement) *BlockStatement {
	return NewBlockStatement(stmts)
}

func If(cond Expression, thenBranch, elseBranch Statement) *IfStatement {
	return NewIfStatement(cond, thenBranch, elseBranch)
}

func Loop(body Statement) *LoopStatement {
	return NewLoopStatement(body)
}

func Break() *BreakStatement {
	return NewBreakStatement(Tok(TokenBreak, "break"))
}

func Ret(value Expression) *ReturnStatement {
	return NewReturnStatement(Tok(TokenReturn, "return"), value)
}

func Fn(name string, params []string, body ...Statement) *FunctionDeclaration {
	tokens := make([]Token, 0, len(params))
	for _, p := range params {
		tokens = append(tokens, Ident(p))
	}
	return NewFunctionDeclaration(Ident(name), tokens, body)
}

// Class builds a class declaration; superclass may be empty.
func Class(name, superclass string, methods []*FunctionDeclaration, classMethods []*FunctionDeclaration) *ClassDeclaration {
	var super *VariableExpression
	if superclass != "" {
		super = Var(superclass)
	}
	return NewClassDeclaration(Ident(name), super, methods, classMethods)
}

func Import(module Expression, isStd bool) *ImportStatement {
	return NewImportStatement(Tok(TokenImport, "import"), module, isStd)
}

func Prog(stmts ...Statement) *Program {
	return NewProgram(stmts)
}
