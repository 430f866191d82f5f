package codeowners

import "errors"

// ErrMismatchedParens is returned by ToPostfix when its input parentheses do
// not balance. The lexer validates balance first, so reaching this error
// means a caller bypassed Tokenize.
var ErrMismatchedParens = errors.New("mismatched parentheses")

type associativity int

const (
	assocLeft associativity = iota
	assocRight
)

// AND binds tighter than OR; both are left-associative. Tokens outside the
// tables default to precedence -1 and left associativity.
var (
	precedences = map[TokenKind]int{
		TokenOr:  1,
		TokenAnd: 2,
	}
	associativities = map[TokenKind]associativity{
		TokenOr:  assocLeft,
		TokenAnd: assocLeft,
	}
)

func precedenceOf(t Token) int {
	if p, ok := precedences[t.Kind]; ok {
		return p
	}
	return -1
}

func associativityOf(t Token) associativity {
	if a, ok := associativities[t.Kind]; ok {
		return a
	}
	return assocLeft
}

// ToPostfix converts an already-lexed infix token sequence into postfix
// (Reverse Polish) order using the shunting-yard algorithm. The output never
// contains parenthesis tokens.
func ToPostfix(tokens []Token) ([]Token, error) {
	if !balancedParens(tokens) {
		return nil, ErrMismatchedParens
	}

	var working stack[Token]
	postfix := make([]Token, 0, len(tokens))

	for _, tok := range tokens {
		switch {
		case tok.Kind == TokenOperand:
			postfix = append(postfix, tok)

		case tok.Kind == TokenLParen:
			working.push(tok)

		case tok.Kind == TokenRParen:
			for {
				top, ok := working.peek()
				if !ok || top.Kind == TokenLParen {
					break
				}
				popped, _ := working.pop()
				postfix = append(postfix, popped)
			}
			working.pop() // discard the matching "("

		default: // operator
			for {
				if working.empty() {
					working.push(tok)
					break
				}
				top, _ := working.peek()
				tokPrec := precedenceOf(tok)
				topPrec := precedenceOf(top)

				if tokPrec > topPrec {
					working.push(tok)
					break
				}
				if tokPrec < topPrec {
					popped, _ := working.pop()
					postfix = append(postfix, popped)
					continue
				}
				// equal precedence
				if associativityOf(tok) == assocRight {
					working.push(tok)
					break
				}
				popped, _ := working.pop()
				postfix = append(postfix, popped)
			}
		}
	}

	for !working.empty() {
		popped, _ := working.pop()
		postfix = append(postfix, popped)
	}
	return postfix, nil
}

func balancedParens(tokens []Token) bool {
	depth := 0
	for _, tok := range tokens {
		switch tok.Kind {
		case TokenLParen:
			depth++
		case TokenRParen:
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}
