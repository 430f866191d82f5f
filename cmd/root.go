package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/subosito/gotenv"

	"github.com/codeowners-bool/cli/config"
	"github.com/codeowners-bool/cli/internal/logger"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "cbo",
	Short: "Boolean CODEOWNERS approval checks for pull requests",
	Long: `cbo enforces boolean approval rules declared in a CODEOWNERS file.

Rules are lines of the form "#@BOOL <pattern> <expression>", where the
expression combines reviewer and team handles with AND, OR and parentheses,
e.g. "#@BOOL /api (@org/backend OR @org/platform) AND @org/security".
A pull request passes when every changed file that matches a rule pattern
has at least one of its matching rules satisfied by the approving reviews.`,
	SilenceUsage: true,
}

// Execute runs the root command, exiting non-zero on any error
func Execute() {
	err := rootCmd.Execute()
	// Flush explicitly: os.Exit would skip a deferred Sync.
	logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", fmt.Sprintf("config file (default is %s)", config.DefaultConfigPath))
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// Local runs keep credentials in .env; absence is fine.
	_ = gotenv.Load()

	verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")
	logger.Init(verbose)

	configPath, _ := rootCmd.PersistentFlags().GetString("config")
	c, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	cfg = c
}
