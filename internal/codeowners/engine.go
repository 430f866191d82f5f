package codeowners

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/codeowners-bool/cli/internal/domain"
	"github.com/codeowners-bool/cli/internal/logger"
)

// RuleMarker introduces a boolean rule line in a CODEOWNERS file:
// "#@BOOL <pattern> <expression>". All other lines are ignored.
const RuleMarker = "#@BOOL"

// ParseRules extracts boolean rules from CODEOWNERS file content, preserving
// declaration order. Ordinary CODEOWNERS entries, comments and lines with a
// missing pattern or expression are skipped.
func ParseRules(content string) []domain.Rule {
	var rules []domain.Rule

	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, RuleMarker) {
			continue
		}
		rest := strings.TrimPrefix(line, RuleMarker)
		if rest == "" || !unicode.IsSpace(rune(rest[0])) {
			continue
		}
		fields := strings.Fields(rest)
		if len(fields) < 2 {
			continue
		}
		pattern := fields[0]
		expression := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(rest), pattern))
		rules = append(rules, domain.Rule{Pattern: pattern, Expression: expression})
	}
	return rules
}

// Engine evaluates boolean CODEOWNERS rules against a pull request's changed
// files. It is stateless between calls; team lookups are delegated to the
// injected resolver on every operand, with no caching of its results (wrap
// the resolver in a memoizer if duplicate lookups matter).
type Engine struct {
	resolver domain.TeamResolver
}

// NewEngine creates an engine using the given team resolver
func NewEngine(resolver domain.TeamResolver) *Engine {
	return &Engine{resolver: resolver}
}

// Evaluate checks every changed file against every rule whose pattern matches
// it, in rule declaration order, and aggregates the verdicts per file. A rule
// whose expression fails tokenization is recorded as satisfied (fail-open)
// with ReasonInvalidExpression. Files matching no rule are absent from the
// report. The returned error is reserved for fatal conditions: resolver
// transport failures and internally malformed expressions.
func (e *Engine) Evaluate(ctx context.Context, changedFiles []string, rules []domain.Rule, approvers domain.ApproverSet) (*domain.Report, error) {
	report := &domain.Report{Files: make(map[string][]domain.MatchResult)}

	for _, file := range changedFiles {
		for _, rule := range rules {
			if !Matches(file, rule.Pattern) {
				continue
			}

			result, err := e.evaluateRule(ctx, rule, approvers)
			if err != nil {
				return nil, fmt.Errorf("evaluating rule %q for %s: %w", rule.Expression, file, err)
			}
			report.Files[file] = append(report.Files[file], result)
		}
	}
	return report, nil
}

func (e *Engine) evaluateRule(ctx context.Context, rule domain.Rule, approvers domain.ApproverSet) (domain.MatchResult, error) {
	result := domain.MatchResult{
		Pattern:    rule.Pattern,
		Expression: rule.Expression,
		Reason:     domain.ReasonEvaluated,
	}

	tokens, err := Tokenize(rule.Expression)
	if err != nil {
		// Fail-open: a malformed rule must not block the pull request.
		logger.L(ctx).Warn("invalid boolean expression, treating rule as satisfied",
			zap.String("pattern", rule.Pattern),
			zap.String("expression", rule.Expression),
			zap.Error(err))
		result.Satisfied = true
		result.Reason = domain.ReasonInvalidExpression
		return result, nil
	}

	postfix, err := ToPostfix(tokens)
	if err != nil {
		return domain.MatchResult{}, err
	}

	satisfied, err := EvaluatePostfix(ctx, postfix, approvers, e.resolver)
	if err != nil {
		return domain.MatchResult{}, err
	}
	result.Satisfied = satisfied
	return result, nil
}
