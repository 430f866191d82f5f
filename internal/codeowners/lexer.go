package codeowners

import (
	"fmt"
	"regexp"
	"strings"
)

// tokenPattern extracts the four recognized token shapes: parentheses, the
// operator words, and "@name" or "@org/team" operands. Anything else in the
// expression is not consumed and therefore silently dropped.
var tokenPattern = regexp.MustCompile(`\(|\)|AND|OR|@[\w-]+(?:/[\w-]+)?`)

// InvalidExpressionError reports an expression that failed tokenization.
// The engine treats it as a fail-open outcome, never as a fatal error.
type InvalidExpressionError struct {
	Expression string
	Reason     string
}

func (e *InvalidExpressionError) Error() string {
	return fmt.Sprintf("invalid boolean expression %q: %s", e.Expression, e.Reason)
}

// Tokenize splits a boolean approval expression into tokens. It validates
// that parentheses balance and that no two operators appear consecutively;
// an empty expression yields an empty token sequence.
func Tokenize(expression string) ([]Token, error) {
	if strings.Count(expression, "(") != strings.Count(expression, ")") {
		return nil, &InvalidExpressionError{Expression: expression, Reason: "unbalanced parentheses"}
	}

	matches := tokenPattern.FindAllString(expression, -1)
	tokens := make([]Token, 0, len(matches))
	for _, text := range matches {
		tok := tokenFromText(text)
		if len(tokens) > 0 && tok.IsOperator() && tokens[len(tokens)-1].IsOperator() {
			return nil, &InvalidExpressionError{Expression: expression, Reason: "consecutive operators"}
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}
