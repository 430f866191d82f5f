package domain

// Rule is a single boolean approval rule declared in a CODEOWNERS file:
// a path pattern paired with a boolean expression over reviewer handles.
// Rules keep the order they were declared in; result ordering depends on it.
type Rule struct {
	// Pattern is the gitignore-style path pattern the rule applies to
	Pattern string `json:"pattern"`
	// Expression is the boolean expression text, e.g. "(@org/a OR @org/b) AND @org/c"
	Expression string `json:"expression"`
}

// MatchReason explains how a MatchResult verdict was produced
type MatchReason string

const (
	// ReasonEvaluated means the expression was tokenized, parsed and evaluated
	ReasonEvaluated MatchReason = "evaluated"
	// ReasonInvalidExpression means the expression failed tokenization and the
	// rule was auto-satisfied under the fail-open policy
	ReasonInvalidExpression MatchReason = "invalid_expression"
)

// MatchResult is the verdict for one (file, rule) pair whose pattern matched
type MatchResult struct {
	Pattern    string      `json:"pattern"`
	Expression string      `json:"expression"`
	Satisfied  bool        `json:"satisfied"`
	Reason     MatchReason `json:"reason"`
}

// Report maps each changed file to its ordered rule verdicts. Files that
// matched no rule are absent from the map, not present with an empty list.
type Report struct {
	Files map[string][]MatchResult `json:"files"`
}

// Satisfied reports whether every file in the report has at least one
// satisfied rule. Files absent from the map are vacuously satisfied.
func (r *Report) Satisfied() bool {
	for _, results := range r.Files {
		ok := false
		for _, res := range results {
			if res.Satisfied {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

// Unsatisfied returns the subset of the report that is blocking approval:
// for each failing file, the rules that were not satisfied.
func (r *Report) Unsatisfied() map[string][]MatchResult {
	failing := make(map[string][]MatchResult)
	for file, results := range r.Files {
		satisfied := false
		for _, res := range results {
			if res.Satisfied {
				satisfied = true
				break
			}
		}
		if satisfied {
			continue
		}
		for _, res := range results {
			if !res.Satisfied {
				failing[file] = append(failing[file], res)
			}
		}
	}
	return failing
}

// ApproverSet is a set of case-sensitive usernames that approved the change
// under review
type ApproverSet map[string]struct{}

// NewApproverSet builds an ApproverSet from a list of usernames
func NewApproverSet(usernames ...string) ApproverSet {
	s := make(ApproverSet, len(usernames))
	for _, u := range usernames {
		s[u] = struct{}{}
	}
	return s
}

// Contains reports whether the username is in the set
func (s ApproverSet) Contains(username string) bool {
	_, ok := s[username]
	return ok
}

// Len returns the number of distinct approvers
func (s ApproverSet) Len() int {
	return len(s)
}
