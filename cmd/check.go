package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/google/uuid"
	gitignore "github.com/sabhiram/go-gitignore"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/codeowners-bool/cli/internal/codeowners"
	"github.com/codeowners-bool/cli/internal/domain"
	"github.com/codeowners-bool/cli/internal/logger"
	"github.com/codeowners-bool/cli/internal/services"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check a pull request against boolean CODEOWNERS rules",
	Long: `Fetches the pull request's changed files and approving reviews, parses the
#@BOOL rules from the CODEOWNERS file on the base branch, and evaluates each
matching rule. Fails (exit code 1) when any changed file has matching rules
and none of them is satisfied.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().Int("pr", 0, "pull request number (default: from GITHUB_EVENT_PATH)")
	checkCmd.Flags().String("repo", "", "repository as owner/name (default: $GITHUB_REPOSITORY)")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := logger.With(cmd.Context(), zap.String("run_id", uuid.NewString()))
	log := logger.L(ctx)

	repoFlag, _ := cmd.Flags().GetString("repo")
	repository, err := resolveRepository(repoFlag)
	if err != nil {
		return err
	}

	prFlag, _ := cmd.Flags().GetInt("pr")
	number, err := resolvePullRequestNumber(prFlag)
	if err != nil {
		return err
	}

	log.Info("checking pull request",
		zap.String("repository", repository),
		zap.Int("number", number))

	svc := services.NewGitHubService(cfg)

	baseRef, err := svc.BaseRef(ctx, repository, number)
	if err != nil {
		return err
	}

	content, err := svc.FileContent(ctx, repository, cfg.Rules.CodeownersPath, baseRef)
	if err != nil {
		return fmt.Errorf("reading %s at %s: %w", cfg.Rules.CodeownersPath, baseRef, err)
	}

	rules := codeowners.ParseRules(content)
	if len(rules) == 0 {
		log.Info("no boolean rules declared", zap.String("path", cfg.Rules.CodeownersPath))
		fmt.Println("No #@BOOL rules found; nothing to check.")
		return nil
	}

	files, err := svc.ChangedFiles(ctx, repository, number)
	if err != nil {
		return err
	}
	files = filterIgnored(files, cfg.Rules.IgnorePatterns)

	approverList, err := svc.Approvers(ctx, repository, number)
	if err != nil {
		return err
	}
	approvers := domain.NewApproverSet(approverList...)

	log.Debug("evaluation inputs",
		zap.Int("rules", len(rules)),
		zap.Int("changed_files", len(files)),
		zap.Int("approvers", approvers.Len()))

	resolver := services.NewCachingTeamResolver(
		services.NewGitHubTeamResolver(svc, ownerOf(repository)))
	engine := codeowners.NewEngine(resolver)

	report, err := engine.Evaluate(ctx, files, rules, approvers)
	if err != nil {
		return err
	}

	if err := renderReport(report); err != nil {
		return err
	}

	if !report.Satisfied() {
		if annotationsEnabled() {
			printAnnotations(report)
		}
		return fmt.Errorf("pull request does not have required approvals")
	}
	return nil
}

// resolveRepository returns the owner/name repository from the flag or the
// GITHUB_REPOSITORY environment variable
func resolveRepository(flag string) (string, error) {
	repository := flag
	if repository == "" {
		repository = os.Getenv("GITHUB_REPOSITORY")
	}
	if repository == "" {
		return "", fmt.Errorf("repository not specified: use --repo or set GITHUB_REPOSITORY")
	}
	if !strings.Contains(repository, "/") {
		return "", fmt.Errorf("repository must be in owner/name form, got %q", repository)
	}
	return repository, nil
}

// resolvePullRequestNumber returns the PR number from the flag or the Actions
// event payload referenced by GITHUB_EVENT_PATH
func resolvePullRequestNumber(flag int) (int, error) {
	if flag > 0 {
		return flag, nil
	}
	eventPath := os.Getenv("GITHUB_EVENT_PATH")
	if eventPath == "" {
		return 0, fmt.Errorf("pull request not specified: use --pr or set GITHUB_EVENT_PATH")
	}
	return readEventPullRequestNumber(eventPath)
}

func readEventPullRequestNumber(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read event payload: %w", err)
	}

	var event struct {
		PullRequest struct {
			Number int `json:"number"`
		} `json:"pull_request"`
	}
	if err := json.Unmarshal(data, &event); err != nil {
		return 0, fmt.Errorf("failed to parse event payload: %w", err)
	}
	if event.PullRequest.Number == 0 {
		return 0, fmt.Errorf("event payload %s carries no pull request number", path)
	}
	return event.PullRequest.Number, nil
}

// filterIgnored drops changed files matching the configured gitignore-style
// exemption patterns (generated code, vendored trees)
func filterIgnored(files []string, patterns []string) []string {
	if len(patterns) == 0 {
		return files
	}
	matcher := gitignore.CompileIgnoreLines(patterns...)

	kept := make([]string, 0, len(files))
	for _, f := range files {
		if matcher.MatchesPath(f) {
			continue
		}
		kept = append(kept, f)
	}
	return kept
}

func ownerOf(repository string) string {
	owner, _, _ := strings.Cut(repository, "/")
	return owner
}

func renderReport(report *domain.Report) error {
	switch cfg.Output.Format {
	case "json":
		return renderJSON(report)
	case "", "text":
		renderText(report)
		return nil
	default:
		return fmt.Errorf("unknown output format %q", cfg.Output.Format)
	}
}

func renderJSON(report *domain.Report) error {
	out := struct {
		Satisfied bool                            `json:"satisfied"`
		Files     map[string][]domain.MatchResult `json:"files"`
	}{
		Satisfied: report.Satisfied(),
		Files:     report.Files,
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func renderText(report *domain.Report) {
	if len(report.Files) == 0 {
		fmt.Println("No changed files matched a boolean rule.")
		return
	}

	files := make([]string, 0, len(report.Files))
	for f := range report.Files {
		files = append(files, f)
	}
	sort.Strings(files)

	for _, file := range files {
		fmt.Println(file)
		for _, res := range report.Files[file] {
			status := "FAIL"
			if res.Satisfied {
				status = "ok"
			}
			line := fmt.Sprintf("  [%s] %s  %s", status, res.Pattern, res.Expression)
			if res.Reason == domain.ReasonInvalidExpression {
				line += "  (invalid expression, auto-satisfied)"
			}
			fmt.Println(line)
		}
	}

	if report.Satisfied() {
		fmt.Println("\nAll boolean CODEOWNERS rules are satisfied.")
	} else {
		fmt.Println("\nPull request does not have required approvals.")
	}
}

func annotationsEnabled() bool {
	return cfg.Output.Annotations || os.Getenv("GITHUB_ACTIONS") == "true"
}

// printAnnotations emits GitHub workflow annotations for the failing rules
func printAnnotations(report *domain.Report) {
	fmt.Println("::group::CodeOwners Validation Failed")
	fmt.Println("::error::Pull request does not have required approvals")
	fmt.Println("\nThe following rules are not satisfied:")

	failing := report.Unsatisfied()
	files := make([]string, 0, len(failing))
	for f := range failing {
		files = append(files, f)
	}
	sort.Strings(files)

	for _, file := range files {
		for _, res := range failing[file] {
			fmt.Printf("::error file=%s::%s\n", file, res.Expression)
		}
	}
	fmt.Println("::endgroup::")
}
