package interpreter

import (
	"fmt"

	"hcl/interpreter-go/pkg/ast"
	"hcl/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateStatement(node ast.Statement, env *runtime.Environment) error {
	switch n := node.(type) {
	case *ast.ExpressionStatement:
		_, err := i.evaluateExpression(n.Expression, env)
		return err
	case *ast.PrintStatement:
		return i.evaluatePrintStatement(n, env)
	case *ast.LetStatement:
		return i.evaluateLetStatement(n, env)
	case *ast.BlockStatement:
		return i.executeBlock(n.Statements, env.Extend())
	case *ast.IfStatement:
		return i.evaluateIfStatement(n, env)
	case *ast.LoopStatement:
		return i.evaluateLoopStatement(n, env)
	case *ast.BreakStatement:
		return breakSignal{}
	case *ast.ReturnStatement:
		return i.evaluateReturnStatement(n, env)
	case *ast.FunctionDeclaration:
		env.Define(n.Name.Lexeme, runtime.NewFunction(n, env, false))
		return nil
	case *ast.ClassDeclaration:
		return i.evaluateClassDeclaration(n, env)
	case *ast.ImportStatement:
		return i.evaluateImportStatement(n, env)
	default:
		return &InternalError{Message: fmt.Sprintf("unsupported statement type: %s", node.NodeType())}
	}
}

// executeBlock runs stmts in env. The caller's environment is untouched:
// it is passed down explicitly, so every exit path leaves it in place.
func (i *Interpreter) executeBlock(stmts []ast.Statement, env *runtime.Environment) error {
	for _, stmt := range stmts {
		if err := i.evaluateStatement(stmt, env); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) evaluatePrintStatement(stmt *ast.PrintStatement, env *runtime.Environment) error {
	val, err := i.evaluateExpression(stmt.Expression, env)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprint(i.stdout, Stringify(val)); err != nil {
		return fmt.Errorf("print: %w", err)
	}
	return nil
}

func (i *Interpreter) evaluateLetStatement(stmt *ast.LetStatement, env *runtime.Environment) error {
	var value runtime.Value = runtime.NilValue{}
	if stmt.Initializer != nil {
		val, err := i.evaluateExpression(stmt.Initializer, env)
		if err != nil {
			return err
		}
		value = val
	}
	env.Define(stmt.Name.Lexeme, value)
	return nil
}

func (i *Interpreter) evaluateIfStatement(stmt *ast.IfStatement, env *runtime.Environment) error {
	cond, err := i.evaluateExpression(stmt.Condition, env)
	if err != nil {
		return err
	}
	if isTruthy(cond) {
		return i.evaluateStatement(stmt.ThenBranch, env)
	}
	if stmt.ElseBranch != nil {
		return i.evaluateStatement(stmt.ElseBranch, env)
	}
	return nil
}

func (i *Interpreter) evaluateLoopStatement(loop *ast.LoopStatement, env *runtime.Environment) error {
	for {
		err := i.evaluateStatement(loop.Body, env)
		if err == nil {
			continue
		}
		if _, ok := err.(breakSignal); ok {
			return nil
		}
		return err
	}
}

func (i *Interpreter) evaluateReturnStatement(stmt *ast.ReturnStatement, env *runtime.Environment) error {
	var result runtime.Value = runtime.NilValue{}
	if stmt.Value != nil {
		val, err := i.evaluateExpression(stmt.Value, env)
		if err != nil {
			return err
		}
		result = val
	}
	return returnSignal{value: result}
}

func (i *Interpreter) evaluateClassDeclaration(decl *ast.ClassDeclaration, env *runtime.Environment) error {
	var superclass *runtime.ClassValue
	if decl.Superclass != nil {
		val, err := i.evaluateExpression(decl.Superclass, env)
		if err != nil {
			return err
		}
		class, ok := val.(*runtime.ClassValue)
		if !ok {
			return newRuntimeError(TypeError, decl.Superclass.Name, "Superclass must be a class.")
		}
		superclass = class
	}

	name := decl.Name.Lexeme
	env.Define(name, runtime.NilValue{})

	methodEnv := env
	var superMeta *runtime.ClassValue
	if superclass != nil {
		methodEnv = env.Extend()
		methodEnv.Define(ast.SuperName, superclass)
		superMeta = superclass.Metaclass
	}

	classMethods := make(map[string]*runtime.FunctionValue, len(decl.ClassMethods))
	for _, method := range decl.ClassMethods {
		classMethods[method.Name.Lexeme] = runtime.NewFunction(method, methodEnv, false)
	}
	metaclass := runtime.NewClass(name+" metaclass", superMeta, classMethods, nil)

	methods := make(map[string]*runtime.FunctionValue, len(decl.Methods))
	for _, method := range decl.Methods {
		isInit := method.Name.Lexeme == ast.InitializerName
		methods[method.Name.Lexeme] = runtime.NewFunction(method, methodEnv, isInit)
	}
	class := runtime.NewClass(name, superclass, methods, metaclass)

	return fromEnvironment(decl.Name, env.Assign(name, class))
}
