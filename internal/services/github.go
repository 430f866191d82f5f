package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/codeowners-bool/cli/config"
	"github.com/codeowners-bool/cli/internal/domain"
)

const perPage = 100

// review represents a pull request review
type review struct {
	State string `json:"state"`
	User  user   `json:"user"`
}

// user represents a GitHub user
type user struct {
	Login string `json:"login"`
}

// changedFile represents one file of a pull request diff
type changedFile struct {
	Filename string `json:"filename"`
}

// pullRequest carries the subset of the pull request payload the checker needs
type pullRequest struct {
	Base struct {
		Ref string `json:"ref"`
	} `json:"base"`
}

// fileContent represents the contents API response for a single file
type fileContent struct {
	Type     string `json:"type"`
	Encoding string `json:"encoding"`
	Content  string `json:"content"`
}

// GitHubService handles the GitHub API operations the checker needs: pull
// request metadata, changed files, approving reviews, file content and team
// membership.
type GitHubService struct {
	client *resty.Client
}

// NewGitHubService creates a GitHub service from configuration
func NewGitHubService(cfg *config.Config) *GitHubService {
	client := resty.New().
		SetBaseURL(cfg.GitHub.BaseURL).
		SetTimeout(time.Duration(cfg.GitHub.Timeout)*time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(1*time.Second).
		SetRetryMaxWaitTime(5*time.Second).
		SetHeader("Accept", "application/vnd.github.v3+json").
		SetHeader("User-Agent", "codeowners-bool-cli/1.0")

	if cfg.GitHub.Token != "" {
		client.SetAuthToken(cfg.GitHub.Token)
	}

	return &GitHubService{client: client}
}

// ChangedFiles returns the paths of all files changed in the pull request
func (g *GitHubService) ChangedFiles(ctx context.Context, repository string, number int) ([]string, error) {
	var paths []string
	for page := 1; ; page++ {
		resp, err := g.client.R().
			SetContext(ctx).
			SetQueryParam("per_page", fmt.Sprintf("%d", perPage)).
			SetQueryParam("page", fmt.Sprintf("%d", page)).
			Get(fmt.Sprintf("/repos/%s/pulls/%d/files", repository, number))
		if err != nil {
			return nil, fmt.Errorf("failed to fetch changed files: %w", err)
		}
		if resp.StatusCode() != http.StatusOK {
			return nil, fmt.Errorf("GitHub API returned status %d: %s", resp.StatusCode(), resp.String())
		}

		var files []changedFile
		if err := json.Unmarshal(resp.Body(), &files); err != nil {
			return nil, fmt.Errorf("failed to parse changed files response: %w", err)
		}
		for _, f := range files {
			paths = append(paths, f.Filename)
		}
		if len(files) < perPage {
			return paths, nil
		}
	}
}

// Approvers returns the distinct usernames with an approving review on the
// pull request. It implements domain.ApprovalSource.
func (g *GitHubService) Approvers(ctx context.Context, repository string, number int) ([]string, error) {
	seen := make(map[string]struct{})
	var approvers []string
	for page := 1; ; page++ {
		resp, err := g.client.R().
			SetContext(ctx).
			SetQueryParam("per_page", fmt.Sprintf("%d", perPage)).
			SetQueryParam("page", fmt.Sprintf("%d", page)).
			Get(fmt.Sprintf("/repos/%s/pulls/%d/reviews", repository, number))
		if err != nil {
			return nil, fmt.Errorf("failed to fetch reviews: %w", err)
		}
		if resp.StatusCode() != http.StatusOK {
			return nil, fmt.Errorf("GitHub API returned status %d: %s", resp.StatusCode(), resp.String())
		}

		var reviews []review
		if err := json.Unmarshal(resp.Body(), &reviews); err != nil {
			return nil, fmt.Errorf("failed to parse reviews response: %w", err)
		}

		for _, r := range reviews {
			if r.State != "APPROVED" {
				continue
			}
			if _, ok := seen[r.User.Login]; ok {
				continue
			}
			seen[r.User.Login] = struct{}{}
			approvers = append(approvers, r.User.Login)
		}
		if len(reviews) < perPage {
			return approvers, nil
		}
	}
}

// BaseRef returns the base branch reference of the pull request
func (g *GitHubService) BaseRef(ctx context.Context, repository string, number int) (string, error) {
	resp, err := g.client.R().
		SetContext(ctx).
		Get(fmt.Sprintf("/repos/%s/pulls/%d", repository, number))
	if err != nil {
		return "", fmt.Errorf("failed to fetch pull request: %w", err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return "", fmt.Errorf("pull request #%d not found in repository %s", number, repository)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("GitHub API returned status %d: %s", resp.StatusCode(), resp.String())
	}

	var pr pullRequest
	if err := json.Unmarshal(resp.Body(), &pr); err != nil {
		return "", fmt.Errorf("failed to parse pull request response: %w", err)
	}
	return pr.Base.Ref, nil
}

// FileContent returns the decoded content of a file at the given ref
func (g *GitHubService) FileContent(ctx context.Context, repository, path, ref string) (string, error) {
	req := g.client.R().SetContext(ctx)
	if ref != "" {
		req.SetQueryParam("ref", ref)
	}
	resp, err := req.Get(fmt.Sprintf("/repos/%s/contents/%s", repository, path))
	if err != nil {
		return "", fmt.Errorf("failed to fetch file content for %s: %w", path, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return "", fmt.Errorf("file %s not found in repository %s", path, repository)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("GitHub API returned status %d: %s", resp.StatusCode(), resp.String())
	}

	var fc fileContent
	if err := json.Unmarshal(resp.Body(), &fc); err != nil {
		return "", fmt.Errorf("failed to parse file content response: %w", err)
	}
	if fc.Type != "" && fc.Type != "file" {
		return "", fmt.Errorf("path %s points to a %s, not a file", path, fc.Type)
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(fc.Content, "\n", ""))
	if err != nil {
		return "", fmt.Errorf("failed to decode file content for %s: %w", path, err)
	}
	return string(decoded), nil
}

// TeamMembers returns the member usernames of an organization team. A 404
// response is reported as domain.ErrTeamNotFound.
func (g *GitHubService) TeamMembers(ctx context.Context, org, slug string) ([]string, error) {
	var logins []string
	for page := 1; ; page++ {
		resp, err := g.client.R().
			SetContext(ctx).
			SetQueryParam("per_page", fmt.Sprintf("%d", perPage)).
			SetQueryParam("page", fmt.Sprintf("%d", page)).
			Get(fmt.Sprintf("/orgs/%s/teams/%s/members", org, slug))
		if err != nil {
			return nil, fmt.Errorf("failed to fetch team members: %w", err)
		}
		if resp.StatusCode() == http.StatusNotFound {
			return nil, fmt.Errorf("team %s/%s: %w", org, slug, domain.ErrTeamNotFound)
		}
		if resp.StatusCode() != http.StatusOK {
			return nil, fmt.Errorf("GitHub API returned status %d: %s", resp.StatusCode(), resp.String())
		}

		var members []user
		if err := json.Unmarshal(resp.Body(), &members); err != nil {
			return nil, fmt.Errorf("failed to parse team members response: %w", err)
		}

		for _, m := range members {
			logins = append(logins, m.Login)
		}
		if len(members) < perPage {
			return logins, nil
		}
	}
}

// GitHubTeamResolver adapts GitHubService to domain.TeamResolver for a fixed
// organization.
type GitHubTeamResolver struct {
	svc *GitHubService
	org string
}

// NewGitHubTeamResolver creates a team resolver bound to an organization
func NewGitHubTeamResolver(svc *GitHubService, org string) *GitHubTeamResolver {
	return &GitHubTeamResolver{svc: svc, org: org}
}

// Resolve returns the member usernames of the named team
func (r *GitHubTeamResolver) Resolve(ctx context.Context, slug string) ([]string, error) {
	return r.svc.TeamMembers(ctx, r.org, slug)
}
