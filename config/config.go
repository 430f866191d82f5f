package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// DefaultConfigPath is where the CLI looks for its configuration when no
// --config flag is given
const DefaultConfigPath = ".cbo.yaml"

// Config represents the CLI configuration
type Config struct {
	GitHub GitHubConfig `mapstructure:"github"`
	Rules  RulesConfig  `mapstructure:"rules"`
	Output OutputConfig `mapstructure:"output"`
}

// GitHubConfig contains GitHub API connection settings
type GitHubConfig struct {
	Token   string `mapstructure:"token"`
	BaseURL string `mapstructure:"base_url"`
	Timeout int    `mapstructure:"timeout"`
}

// RulesConfig contains rule lookup and filtering settings
type RulesConfig struct {
	// CodeownersPath is the repository path of the CODEOWNERS file
	CodeownersPath string `mapstructure:"codeowners_path"`
	// IgnorePatterns are gitignore-style patterns for changed files that are
	// exempt from boolean rule enforcement (generated code, vendored trees)
	IgnorePatterns []string `mapstructure:"ignore_patterns"`
}

// OutputConfig contains result rendering settings
type OutputConfig struct {
	// Format selects how the evaluation report is rendered: "text" or "json"
	Format string `mapstructure:"format"`
	// Annotations forces GitHub workflow annotations even outside Actions
	Annotations bool `mapstructure:"annotations"`
}

// Load reads configuration from the given file (or DefaultConfigPath when
// empty), applying defaults and CBO_* environment overrides. A missing
// default config file is not an error; a missing explicit one is.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("github.base_url", "https://api.github.com")
	v.SetDefault("github.timeout", 30)
	v.SetDefault("rules.codeowners_path", ".github/CODEOWNERS")
	v.SetDefault("output.format", "text")

	v.SetEnvPrefix("CBO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath
	}

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else if explicit {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.GitHub.Token == "" {
		cfg.GitHub.Token = os.Getenv("GITHUB_TOKEN")
	}
	return cfg, nil
}
