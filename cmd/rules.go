package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/codeowners-bool/cli/internal/codeowners"
	"github.com/codeowners-bool/cli/internal/domain"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect boolean rules in a local CODEOWNERS file",
}

var rulesListCmd = &cobra.Command{
	Use:   "list [path]",
	Short: "List the #@BOOL rules declared in a CODEOWNERS file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rules, err := loadLocalRules(args)
		if err != nil {
			return err
		}
		if len(rules) == 0 {
			fmt.Println("No #@BOOL rules found.")
			return nil
		}
		for _, rule := range rules {
			fmt.Printf("%s\t%s\n", rule.Pattern, rule.Expression)
		}
		return nil
	},
}

var rulesValidateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate the boolean expressions of all #@BOOL rules",
	Long: `Tokenizes every boolean rule expression and reports syntax problems
(unbalanced parentheses, consecutive operators). Unlike evaluation, which
fails open on malformed rules, validation is strict: any invalid rule makes
the command exit non-zero.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rules, err := loadLocalRules(args)
		if err != nil {
			return err
		}

		invalid := 0
		for _, rule := range rules {
			if _, err := codeowners.Tokenize(rule.Expression); err != nil {
				invalid++
				fmt.Printf("INVALID  %s\t%s\n         %v\n", rule.Pattern, rule.Expression, err)
				continue
			}
			fmt.Printf("ok       %s\t%s\n", rule.Pattern, rule.Expression)
		}

		if invalid > 0 {
			return fmt.Errorf("%d of %d rules have invalid expressions", invalid, len(rules))
		}
		fmt.Printf("All %d rules are valid.\n", len(rules))
		return nil
	},
}

func loadLocalRules(args []string) ([]domain.Rule, error) {
	path := cfg.Rules.CodeownersPath
	if len(args) > 0 {
		path = args[0]
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return codeowners.ParseRules(string(content)), nil
}

func init() {
	rulesCmd.AddCommand(rulesListCmd)
	rulesCmd.AddCommand(rulesValidateCmd)
	rootCmd.AddCommand(rulesCmd)
}
