package driver

import (
	"encoding/json"
	"fmt"

	"hcl/interpreter-go/pkg/ast"
)

// DecodeProgram reads a parsed tree in its JSON form. The document is either
// {"type": "Program", "statements": [...]} or a bare statement list. Variable,
// Assign, Self and Super nodes may carry "depth", the resolver's distance.
func DecodeProgram(data []byte) (*ast.Program, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("tree: %w", err)
	}
	d := &treeDecoder{program: ast.NewProgram(nil)}
	var stmtsVal []any
	switch root := raw.(type) {
	case []any:
		stmtsVal = root
	case map[string]any:
		if typ, _ := root["type"].(string); typ != "Program" {
			return nil, fmt.Errorf("tree: root must be a Program, found %q", typ)
		}
		stmtsVal, _ = root["statements"].([]any)
	default:
		return nil, fmt.Errorf("tree: root must be an object or a list, found %T", raw)
	}
	stmts, err := d.statements(stmtsVal)
	if err != nil {
		return nil, err
	}
	d.program.Statements = stmts
	return d.program, nil
}

type treeDecoder struct {
	program *ast.Program
}

func (d *treeDecoder) statements(values []any) ([]ast.Statement, error) {
	out := make([]ast.Statement, 0, len(values))
	for _, raw := range values {
		stmt, err := d.statement(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, stmt)
	}
	return out, nil
}

func (d *treeDecoder) statement(raw any) (ast.Statement, error) {
	node, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("tree: statement must be an object, found %T", raw)
	}
	typ, _ := node["type"].(string)
	switch ast.NodeType(typ) {
	case ast.NodeExpressionStatement:
		expr, err := d.child(node, "expression")
		if err != nil {
			return nil, err
		}
		return ast.NewExpressionStatement(expr), nil
	case ast.NodePrintStatement:
		expr, err := d.child(node, "expression")
		if err != nil {
			return nil, err
		}
		return ast.NewPrintStatement(expr), nil
	case ast.NodeLetStatement:
		init, err := d.optionalChild(node, "initializer")
		if err != nil {
			return nil, err
		}
		return ast.NewLetStatement(identifier(node, "name"), init), nil
	case ast.NodeBlockStatement:
		list, _ := node["statements"].([]any)
		stmts, err := d.statements(list)
		if err != nil {
			return nil, err
		}
		return ast.NewBlockStatement(stmts), nil
	case ast.NodeIfStatement:
		cond, err := d.child(node, "condition")
		if err != nil {
			return nil, err
		}
		thenBranch, err := d.statement(node["then"])
		if err != nil {
			return nil, err
		}
		var elseBranch ast.Statement
		if raw, ok := node["else"]; ok && raw != nil {
			if elseBranch, err = d.statement(raw); err != nil {
				return nil, err
			}
		}
		return ast.NewIfStatement(cond, thenBranch, elseBranch), nil
	case ast.NodeLoopStatement:
		body, err := d.statement(node["body"])
		if err != nil {
			return nil, err
		}
		return ast.NewLoopStatement(body), nil
	case ast.NodeBreakStatement:
		return ast.NewBreakStatement(keyword(node, ast.TokenBreak)), nil
	case ast.NodeReturnStatement:
		value, err := d.optionalChild(node, "value")
		if err != nil {
			return nil, err
		}
		return ast.NewReturnStatement(keyword(node, ast.TokenReturn), value), nil
	case ast.NodeFunctionDeclaration:
		return d.function(node)
	case ast.NodeClassDeclaration:
		return d.class(node)
	case ast.NodeImportStatement:
		module, err := d.child(node, "module")
		if err != nil {
			return nil, err
		}
		std, _ := node["std"].(bool)
		return ast.NewImportStatement(keyword(node, ast.TokenImport), module, std), nil
	default:
		return nil, fmt.Errorf("tree: unsupported statement type %q", typ)
	}
}

func (d *treeDecoder) function(node map[string]any) (*ast.FunctionDeclaration, error) {
	if typ, _ := node["type"].(string); typ != string(ast.NodeFunctionDeclaration) {
		return nil, fmt.Errorf("tree: expected FunctionDeclaration, found %q", typ)
	}
	paramsVal, _ := node["params"].([]any)
	params := make([]ast.Token, 0, len(paramsVal))
	for _, p := range paramsVal {
		name, ok := p.(string)
		if !ok {
			return nil, fmt.Errorf("tree: parameter names must be strings, found %T", p)
		}
		params = append(params, ast.NewToken(ast.TokenIdentifier, name, line(node)))
	}
	bodyVal, _ := node["body"].([]any)
	body, err := d.statements(bodyVal)
	if err != nil {
		return nil, err
	}
	return ast.NewFunctionDeclaration(identifier(node, "name"), params, body), nil
}

func (d *treeDecoder) class(node map[string]any) (*ast.ClassDeclaration, error) {
	var superclass *ast.VariableExpression
	if name, _ := node["superclass"].(string); name != "" {
		superclass = ast.NewVariableExpression(ast.NewToken(ast.TokenIdentifier, name, line(node)))
	}
	methods, err := d.methods(node["methods"])
	if err != nil {
		return nil, err
	}
	classMethods, err := d.methods(node["classMethods"])
	if err != nil {
		return nil, err
	}
	return ast.NewClassDeclaration(identifier(node, "name"), superclass, methods, classMethods), nil
}

func (d *treeDecoder) methods(raw any) ([]*ast.FunctionDeclaration, error) {
	list, _ := raw.([]any)
	out := make([]*ast.FunctionDeclaration, 0, len(list))
	for _, item := range list {
		node, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("tree: method must be an object, found %T", item)
		}
		fn, err := d.function(node)
		if err != nil {
			return nil, err
		}
		out = append(out, fn)
	}
	return out, nil
}

func (d *treeDecoder) child(node map[string]any, key string) (ast.Expression, error) {
	raw, ok := node[key]
	if !ok || raw == nil {
		typ, _ := node["type"].(string)
		return nil, fmt.Errorf("tree: %s missing %q", typ, key)
	}
	return d.expression(raw)
}

func (d *treeDecoder) optionalChild(node map[string]any, key string) (ast.Expression, error) {
	raw, ok := node[key]
	if !ok || raw == nil {
		return nil, nil
	}
	return d.expression(raw)
}

func (d *treeDecoder) expression(raw any) (ast.Expression, error) {
	node, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("tree: expression must be an object, found %T", raw)
	}
	typ, _ := node["type"].(string)
	var expr ast.Expression
	switch ast.NodeType(typ) {
	case ast.NodeNumberLiteral:
		val, ok := node["value"].(float64)
		if !ok {
			return nil, fmt.Errorf("tree: NumberLiteral value must be a number")
		}
		expr = ast.NewNumberLiteral(val)
	case ast.NodeStringLiteral:
		val, _ := node["value"].(string)
		expr = ast.NewStringLiteral(val)
	case ast.NodeBooleanLiteral:
		val, _ := node["value"].(bool)
		expr = ast.NewBooleanLiteral(val)
	case ast.NodeNilLiteral:
		expr = ast.NewNilLiteral()
	case ast.NodeGroupingExpression:
		inner, err := d.child(node, "expression")
		if err != nil {
			return nil, err
		}
		expr = ast.NewGroupingExpression(inner)
	case ast.NodeLogicalExpression, ast.NodeBinaryExpression:
		left, err := d.child(node, "left")
		if err != nil {
			return nil, err
		}
		right, err := d.child(node, "right")
		if err != nil {
			return nil, err
		}
		op, err := operator(node)
		if err != nil {
			return nil, err
		}
		if ast.NodeType(typ) == ast.NodeLogicalExpression {
			expr = ast.NewLogicalExpression(op, left, right)
		} else {
			expr = ast.NewBinaryExpression(op, left, right)
		}
	case ast.NodeUnaryExpression:
		operand, err := d.child(node, "operand")
		if err != nil {
			return nil, err
		}
		op, err := operator(node)
		if err != nil {
			return nil, err
		}
		expr = ast.NewUnaryExpression(op, operand)
	case ast.NodeVariableExpression:
		expr = ast.NewVariableExpression(identifier(node, "name"))
	case ast.NodeAssignExpression:
		value, err := d.child(node, "value")
		if err != nil {
			return nil, err
		}
		expr = ast.NewAssignExpression(identifier(node, "name"), value)
	case ast.NodeSelfExpression:
		expr = ast.NewSelfExpression(keyword(node, ast.TokenSelf))
	case ast.NodeSuperExpression:
		expr = ast.NewSuperExpression(keyword(node, ast.TokenSuper), identifier(node, "method"))
	case ast.NodeGetExpression:
		object, err := d.child(node, "object")
		if err != nil {
			return nil, err
		}
		expr = ast.NewGetExpression(object, identifier(node, "name"))
	case ast.NodeSetExpression:
		object, err := d.child(node, "object")
		if err != nil {
			return nil, err
		}
		value, err := d.child(node, "value")
		if err != nil {
			return nil, err
		}
		expr = ast.NewSetExpression(object, identifier(node, "name"), value)
	case ast.NodeCallExpression:
		callee, err := d.child(node, "callee")
		if err != nil {
			return nil, err
		}
		argsVal, _ := node["arguments"].([]any)
		args := make([]ast.Expression, 0, len(argsVal))
		for _, a := range argsVal {
			arg, err := d.expression(a)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
		expr = ast.NewCallExpression(callee, keyword(node, ast.TokenLeftParen), args)
	default:
		return nil, fmt.Errorf("tree: unsupported expression type %q", typ)
	}
	if depth, ok := node["depth"].(float64); ok {
		if depth < 0 || depth != float64(int(depth)) {
			return nil, fmt.Errorf("tree: %s has invalid depth %v", typ, depth)
		}
		d.program.Resolve(expr, int(depth))
	}
	return expr, nil
}

func operator(node map[string]any) (ast.Token, error) {
	lexeme, _ := node["operator"].(string)
	typ := ast.TokenType(lexeme)
	if !typ.IsOperator() {
		return ast.Token{}, fmt.Errorf("tree: unknown operator %q", lexeme)
	}
	return ast.NewToken(typ, lexeme, line(node)), nil
}

func identifier(node map[string]any, key string) ast.Token {
	name, _ := node[key].(string)
	return ast.NewToken(ast.TokenIdentifier, name, line(node))
}

func keyword(node map[string]any, typ ast.TokenType) ast.Token {
	return ast.NewToken(typ, string(typ), line(node))
}

func line(node map[string]any) int {
	if n, ok := node["line"].(float64); ok {
		return int(n)
	}
	return 0
}
