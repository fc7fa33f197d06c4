package ast

import "fmt"

type TokenType string

const (
	TokenBang         TokenType = "!"
	TokenBangEqual    TokenType = "!="
	TokenEqualEqual   TokenType = "=="
	TokenGreater      TokenType = ">"
	TokenGreaterEqual TokenType = ">="
	TokenLess         TokenType = "<"
	TokenLessEqual    TokenType = "<="
	TokenMinus        TokenType = "-"
	TokenPlus         TokenType = "+"
	TokenSlash        TokenType = "/"
	TokenStar         TokenType = "*"
	TokenCaret        TokenType = "^"
	TokenAnd          TokenType = "and"
	TokenOr           TokenType = "or"
	TokenLeftParen    TokenType = "("
	TokenIdentifier   TokenType = "identifier"
	TokenSelf         TokenType = "self"
	TokenSuper        TokenType = "super"
	TokenReturn       TokenType = "return"
	TokenBreak        TokenType = "break"
	TokenImport       TokenType = "import"
)

// Token is the slice of source a node was built from. Only the lexeme and
// line survive parsing; they are all the evaluator needs for diagnostics.
type Token struct {
	Type   TokenType `json:"type"`
	Lexeme string    `json:"lexeme"`
	Line   int       `json:"line"`
}

func NewToken(typ TokenType, lexeme string, line int) Token {
	return Token{Type: typ, Lexeme: lexeme, Line: line}
}

func (t Token) String() string {
	if t.Line > 0 {
		return fmt.Sprintf("%q (line %d)", t.Lexeme, t.Line)
	}
	return fmt.Sprintf("%q", t.Lexeme)
}

// IsOperator reports whether typ is a unary, binary, or logical operator.
func (typ TokenType) IsOperator() bool {
	switch typ {
	case TokenBang, TokenBangEqual, TokenEqualEqual, TokenGreater, TokenGreaterEqual,
		TokenLess, TokenLessEqual, TokenMinus, TokenPlus, TokenSlash, TokenStar, TokenCaret,
		TokenAnd, TokenOr:
		return true
	default:
		return false
	}
}
