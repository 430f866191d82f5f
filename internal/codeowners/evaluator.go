package codeowners

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/codeowners-bool/cli/internal/domain"
	"github.com/codeowners-bool/cli/internal/logger"
)

// ErrMalformedExpression reports a postfix sequence that cannot be evaluated
// (operand stack underflow or leftover values). Sequences produced by
// Tokenize and ToPostfix from a well-formed expression never trigger it.
var ErrMalformedExpression = errors.New("malformed postfix expression")

// EvaluatePostfix executes a postfix boolean expression against the approver
// set. Individual operands are satisfied when the handle (without its leading
// "@") is in the set; team operands are satisfied when any resolved member is.
// A team the resolver reports as not found contributes false. There is no
// short-circuiting: every operand is resolved regardless of whether the
// outcome is already determined, so resolvers must tolerate repeated calls.
func EvaluatePostfix(ctx context.Context, postfix []Token, approvers domain.ApproverSet, resolver domain.TeamResolver) (bool, error) {
	var operands stack[bool]

	for _, tok := range postfix {
		switch tok.Kind {
		case TokenAnd, TokenOr:
			right, ok := operands.pop()
			if !ok {
				return false, fmt.Errorf("%w: operator %q with no right operand", ErrMalformedExpression, tok.Text)
			}
			left, ok := operands.pop()
			if !ok {
				return false, fmt.Errorf("%w: operator %q with no left operand", ErrMalformedExpression, tok.Text)
			}
			if tok.Kind == TokenAnd {
				operands.push(left && right)
			} else {
				operands.push(left || right)
			}

		case TokenOperand:
			satisfied, err := resolveOperand(ctx, tok, approvers, resolver)
			if err != nil {
				return false, err
			}
			operands.push(satisfied)

		default:
			return false, fmt.Errorf("%w: unexpected token %q", ErrMalformedExpression, tok.Text)
		}
	}

	result, ok := operands.pop()
	if !ok {
		return false, fmt.Errorf("%w: no result on stack", ErrMalformedExpression)
	}
	if !operands.empty() {
		return false, fmt.Errorf("%w: %d leftover operands", ErrMalformedExpression, operands.len())
	}
	return result, nil
}

func resolveOperand(ctx context.Context, tok Token, approvers domain.ApproverSet, resolver domain.TeamResolver) (bool, error) {
	if !tok.IsTeam() {
		return approvers.Contains(strings.TrimPrefix(tok.Text, "@")), nil
	}

	slug := tok.TeamSlug()
	members, err := resolver.Resolve(ctx, slug)
	if errors.Is(err, domain.ErrTeamNotFound) {
		logger.L(ctx).Warn("team not found, treating as empty group",
			zap.String("team", slug))
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("resolving team %q: %w", slug, err)
	}

	for _, member := range members {
		if approvers.Contains(member) {
			return true, nil
		}
	}
	return false, nil
}
