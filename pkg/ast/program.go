package ast

// Program is a parsed statement batch together with the scope distances the
// resolver computed for it. Locals is keyed by node identity: an expression
// without an entry is resolved against the global scope at run time.
type Program struct {
	Statements []Statement
	Locals     map[Expression]int
}

func NewProgram(stmts []Statement) *Program {
	return &Program{Statements: stmts, Locals: make(map[Expression]int)}
}

// Resolve records that expr refers to a binding depth frames up from the
// frame active when expr is evaluated.
func (p *Program) Resolve(expr Expression, depth int) *Program {
	if p.Locals == nil {
		p.Locals = make(map[Expression]int)
	}
	p.Locals[expr] = depth
	return p
}
