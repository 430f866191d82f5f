// Package codeowners implements the boolean CODEOWNERS rule engine: a lexer
// for boolean approval expressions, a shunting-yard infix-to-postfix
// converter, a postfix evaluator with team expansion, a gitignore-style path
// matcher and the orchestrating engine that aggregates verdicts per changed
// file.
package codeowners

import "strings"

// TokenKind identifies the shape of an expression token
type TokenKind int

const (
	// TokenOperand is a reviewer or team reference, always beginning with "@"
	TokenOperand TokenKind = iota
	// TokenAnd is the literal operator word "AND"
	TokenAnd
	// TokenOr is the literal operator word "OR"
	TokenOr
	// TokenLParen is "("
	TokenLParen
	// TokenRParen is ")"
	TokenRParen
)

// Token is a single lexed element of a boolean approval expression
type Token struct {
	Kind TokenKind
	Text string
}

// IsOperator reports whether the token is AND or OR
func (t Token) IsOperator() bool {
	return t.Kind == TokenAnd || t.Kind == TokenOr
}

// IsTeam reports whether an operand references a team ("@org/team") rather
// than an individual ("@name")
func (t Token) IsTeam() bool {
	return t.Kind == TokenOperand && strings.Contains(t.Text, "/")
}

// TeamSlug returns the team slug of a team operand, the text after the last "/"
func (t Token) TeamSlug() string {
	idx := strings.LastIndex(t.Text, "/")
	if idx < 0 {
		return ""
	}
	return t.Text[idx+1:]
}

func tokenFromText(text string) Token {
	switch text {
	case "AND":
		return Token{Kind: TokenAnd, Text: text}
	case "OR":
		return Token{Kind: TokenOr, Text: text}
	case "(":
		return Token{Kind: TokenLParen, Text: text}
	case ")":
		return Token{Kind: TokenRParen, Text: text}
	default:
		return Token{Kind: TokenOperand, Text: text}
	}
}
