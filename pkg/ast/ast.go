package ast

type NodeType string

const (
	NodeNumberLiteral       NodeType = "NumberLiteral"
	NodeStringLiteral       NodeType = "StringLiteral"
	NodeBooleanLiteral      NodeType = "BooleanLiteral"
	NodeNilLiteral          NodeType = "NilLiteral"
	NodeGroupingExpression  NodeType = "GroupingExpression"
	NodeLogicalExpression   NodeType = "LogicalExpression"
	NodeUnaryExpression     NodeType = "UnaryExpression"
	NodeBinaryExpression    NodeType = "BinaryExpression"
	NodeVariableExpression  NodeType = "VariableExpression"
	NodeAssignExpression    NodeType = "AssignExpression"
	NodeSelfExpression      NodeType = "SelfExpression"
	NodeSuperExpression     NodeType = "SuperExpression"
	NodeGetExpression       NodeType = "GetExpression"
	NodeSetExpression       NodeType = "SetExpression"
	NodeCallExpression      NodeType = "CallExpression"
	NodeExpressionStatement NodeType = "ExpressionStatement"
	NodePrintStatement      NodeType = "PrintStatement"
	NodeLetStatement        NodeType = "LetStatement"
	NodeBlockStatement      NodeType = "BlockStatement"
	NodeIfStatement         NodeType = "IfStatement"
	NodeLoopStatement       NodeType = "LoopStatement"
	NodeBreakStatement      NodeType = "BreakStatement"
	NodeReturnStatement     NodeType = "ReturnStatement"
	NodeFunctionDeclaration NodeType = "FunctionDeclaration"
	NodeClassDeclaration    NodeType = "ClassDeclaration"
	NodeImportStatement     NodeType = "ImportStatement"
)

type Node interface {
	NodeType() NodeType
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (nodeImpl) isNode()              {}

// Marker interfaces.

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

type Literal interface {
	Expression
	literalNode()
}

type literalMarker struct{}

func (literalMarker) literalNode() {}

// Literals

type NumberLiteral struct {
	nodeImpl
	expressionMarker
	literalMarker

	Value float64 `json:"value"`
}

func NewNumberLiteral(value float64) *NumberLiteral {
	return &NumberLiteral{nodeImpl: newNodeImpl(NodeNumberLiteral), Value: value}
}

type StringLiteral struct {
	nodeImpl
	expressionMarker
	literalMarker

	Value string `json:"value"`
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral), Value: value}
}

type BooleanLiteral struct {
	nodeImpl
	expressionMarker
	literalMarker

	Value bool `json:"value"`
}

func NewBooleanLiteral(value bool) *BooleanLiteral {
	return &BooleanLiteral{nodeImpl: newNodeImpl(NodeBooleanLiteral), Value: value}
}

type NilLiteral struct {
	nodeImpl
	expressionMarker
	literalMarker
}

func NewNilLiteral() *NilLiteral {
	return &NilLiteral{nodeImpl: newNodeImpl(NodeNilLiteral)}
}

// Operators

type GroupingExpression struct {
	nodeImpl
	expressionMarker

	Expression Expression `json:"expression"`
}

func NewGroupingExpression(inner Expression) *GroupingExpression {
	return &GroupingExpression{nodeImpl: newNodeImpl(NodeGroupingExpression), Expression: inner}
}

// LogicalExpression is a short-circuiting `and` / `or`.
type LogicalExpression struct {
	nodeImpl
	expressionMarker

	Operator Token      `json:"operator"`
	Left     Expression `json:"left"`
	Right    Expression `json:"right"`
}

func NewLogicalExpression(operator Token, left, right Expression) *LogicalExpression {
	return &LogicalExpression{nodeImpl: newNodeImpl(NodeLogicalExpression), Operator: operator, Left: left, Right: right}
}

type UnaryExpression struct {
	nodeImpl
	expressionMarker

	Operator Token      `json:"operator"`
	Operand  Expression `json:"operand"`
}

func NewUnaryExpression(operator Token, operand Expression) *UnaryExpression {
	return &UnaryExpression{nodeImpl: newNodeImpl(NodeUnaryExpression), Operator: operator, Operand: operand}
}

type BinaryExpression struct {
	nodeImpl
	expressionMarker

	Operator Token      `json:"operator"`
	Left     Expression `json:"left"`
	Right    Expression `json:"right"`
}

func NewBinaryExpression(operator Token, left, right Expression) *BinaryExpression {
	return &BinaryExpression{nodeImpl: newNodeImpl(NodeBinaryExpression), Operator: operator, Left: left, Right: right}
}

// Variables

type VariableExpression struct {
	nodeImpl
	expressionMarker

	Name Token `json:"name"`
}

func NewVariableExpression(name Token) *VariableExpression {
	return &VariableExpression{nodeImpl: newNodeImpl(NodeVariableExpression), Name: name}
}

type AssignExpression struct {
	nodeImpl
	expressionMarker

	Name  Token      `json:"name"`
	Value Expression `json:"value"`
}

func NewAssignExpression(name Token, value Expression) *AssignExpression {
	return &AssignExpression{nodeImpl: newNodeImpl(NodeAssignExpression), Name: name, Value: value}
}

type SelfExpression struct {
	nodeImpl
	expressionMarker

	Keyword Token `json:"keyword"`
}

func NewSelfExpression(keyword Token) *SelfExpression {
	return &SelfExpression{nodeImpl: newNodeImpl(NodeSelfExpression), Keyword: keyword}
}

// SuperExpression is `super.method`.
type SuperExpression struct {
	nodeImpl
	expressionMarker

	Keyword Token `json:"keyword"`
	Method  Token `json:"method"`
}

func NewSuperExpression(keyword, method Token) *SuperExpression {
	return &SuperExpression{nodeImpl: newNodeImpl(NodeSuperExpression), Keyword: keyword, Method: method}
}

// Properties and calls

type GetExpression struct {
	nodeImpl
	expressionMarker

	Object Expression `json:"object"`
	Name   Token      `json:"name"`
}

func NewGetExpression(object Expression, name Token) *GetExpression {
	return &GetExpression{nodeImpl: newNodeImpl(NodeGetExpression), Object: object, Name: name}
}

type SetExpression struct {
	nodeImpl
	expressionMarker

	Object Expression `json:"object"`
	Name   Token      `json:"name"`
	Value  Expression `json:"value"`
}

func NewSetExpression(object Expression, name Token, value Expression) *SetExpression {
	return &SetExpression{nodeImpl: newNodeImpl(NodeSetExpression), Object: object, Name: name, Value: value}
}

type CallExpression struct {
	nodeImpl
	expressionMarker

	Callee    Expression   `json:"callee"`
	Paren     Token        `json:"paren"`
	Arguments []Expression `json:"arguments"`
}

func NewCallExpression(callee Expression, paren Token, args []Expression) *CallExpression {
	return &CallExpression{nodeImpl: newNodeImpl(NodeCallExpression), Callee: callee, Paren: paren, Arguments: args}
}
