package ast

// InitializerName is the method name flagged as a class initializer.
const InitializerName = "_init"

// Reserved binding names used by method dispatch.
const (
	SelfName  = "self"
	SuperName = "super"
)

type ExpressionStatement struct {
	nodeImpl
	statementMarker

	Expression Expression `json:"expression"`
}

func NewExpressionStatement(expr Expression) *ExpressionStatement {
	return &ExpressionStatement{nodeImpl: newNodeImpl(NodeExpressionStatement), Expression: expr}
}

type PrintStatement struct {
	nodeImpl
	statementMarker

	Expression Expression `json:"expression"`
}

func NewPrintStatement(expr Expression) *PrintStatement {
	return &PrintStatement{nodeImpl: newNodeImpl(NodePrintStatement), Expression: expr}
}

// LetStatement declares a variable; Initializer may be nil.
type LetStatement struct {
	nodeImpl
	statementMarker

	Name        Token      `json:"name"`
	Initializer Expression `json:"initializer,omitempty"`
}

func NewLetStatement(name Token, initializer Expression) *LetStatement {
	return &LetStatement{nodeImpl: newNodeImpl(NodeLetStatement), Name: name, Initializer: initializer}
}

type BlockStatement struct {
	nodeImpl
	statementMarker

	Statements []Statement `json:"statements"`
}

func NewBlockStatement(stmts []Statement) *BlockStatement {
	return &BlockStatement{nodeImpl: newNodeImpl(NodeBlockStatement), Statements: stmts}
}

type IfStatement struct {
	nodeImpl
	statementMarker

	Condition  Expression `json:"condition"`
	ThenBranch Statement  `json:"then"`
	ElseBranch Statement  `json:"else,omitempty"`
}

func NewIfStatement(cond Expression, thenBranch, elseBranch Statement) *IfStatement {
	return &IfStatement{nodeImpl: newNodeImpl(NodeIfStatement), Condition: cond, ThenBranch: thenBranch, ElseBranch: elseBranch}
}

// LoopStatement repeats Body until a break, return, or error escapes it.
type LoopStatement struct {
	nodeImpl
	statementMarker

	Body Statement `json:"body"`
}

func NewLoopStatement(body Statement) *LoopStatement {
	return &LoopStatement{nodeImpl: newNodeImpl(NodeLoopStatement), Body: body}
}

type BreakStatement struct {
	nodeImpl
	statementMarker

	Keyword Token `json:"keyword"`
}

func NewBreakStatement(keyword Token) *BreakStatement {
	return &BreakStatement{nodeImpl: newNodeImpl(NodeBreakStatement), Keyword: keyword}
}

type ReturnStatement struct {
	nodeImpl
	statementMarker

	Keyword Token      `json:"keyword"`
	Value   Expression `json:"value,omitempty"`
}

func NewReturnStatement(keyword Token, value Expression) *ReturnStatement {
	return &ReturnStatement{nodeImpl: newNodeImpl(NodeReturnStatement), Keyword: keyword, Value: value}
}

type FunctionDeclaration struct {
	nodeImpl
	statementMarker

	Name   Token       `json:"name"`
	Params []Token     `json:"params"`
	Body   []Statement `json:"body"`
}

func NewFunctionDeclaration(name Token, params []Token, body []Statement) *FunctionDeclaration {
	return &FunctionDeclaration{nodeImpl: newNodeImpl(NodeFunctionDeclaration), Name: name, Params: params, Body: body}
}

// ClassDeclaration carries instance methods and class-level methods
// separately; the latter live on the metaclass.
type ClassDeclaration struct {
	nodeImpl
	statementMarker

	Name         Token                  `json:"name"`
	Superclass   *VariableExpression    `json:"superclass,omitempty"`
	Methods      []*FunctionDeclaration `json:"methods"`
	ClassMethods []*FunctionDeclaration `json:"classMethods"`
}

func NewClassDeclaration(name Token, superclass *VariableExpression, methods, classMethods []*FunctionDeclaration) *ClassDeclaration {
	return &ClassDeclaration{
		nodeImpl:     newNodeImpl(NodeClassDeclaration),
		Name:         name,
		Superclass:   superclass,
		Methods:      methods,
		ClassMethods: classMethods,
	}
}

// ImportStatement imports a user source file, or a standard module when IsStd is set.
type ImportStatement struct {
	nodeImpl
	statementMarker

	Keyword Token      `json:"keyword"`
	Module  Expression `json:"module"`
	IsStd   bool       `json:"isStd"`
}

func NewImportStatement(keyword Token, module Expression, isStd bool) *ImportStatement {
	return &ImportStatement{nodeImpl: newNodeImpl(NodeImportStatement), Keyword: keyword, Module: module, IsStd: isStd}
}
