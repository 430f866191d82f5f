package domain

import (
	"context"
	"errors"
)

// ErrTeamNotFound is reported by a TeamResolver when the named team does not
// exist. The evaluator treats such a team as an empty group, not as a failure.
var ErrTeamNotFound = errors.New("team not found")

// TeamResolver expands a team slug into its member usernames.
// Implementations adapt a hosting-provider API (or an in-memory fake in
// tests); transport failures must either be translated into ErrTeamNotFound
// or returned as-is, in which case the whole evaluation aborts.
type TeamResolver interface {
	// Resolve returns the member usernames of the team identified by slug,
	// or ErrTeamNotFound if no such team exists.
	Resolve(ctx context.Context, slug string) ([]string, error)
}

// ApprovalSource supplies the set of usernames that approved a pull request.
// The engine never calls this directly; the caller assembles the ApproverSet
// before invoking Evaluate.
type ApprovalSource interface {
	// Approvers returns the usernames with an approving review on the pull request
	Approvers(ctx context.Context, repo string, number int) ([]string, error)
}
