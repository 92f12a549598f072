package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the main configuration structure
type Config struct {
	Repository   RepositoryConfig   `yaml:"repository"   mapstructure:"repository"`
	Dependencies []DependencyConfig `yaml:"dependencies" mapstructure:"dependencies"`
	Input        InputConfig        `yaml:"input"        mapstructure:"input"`
	Output       OutputConfig       `yaml:"output"       mapstructure:"output"`
	Timeout      TimeoutConfig      `yaml:"timeout"      mapstructure:"timeout"`
}

// RepositoryConfig describes the repository layout and resolution switches
type RepositoryConfig struct {
	Pattern    string            `yaml:"pattern"            mapstructure:"pattern"`
	Properties map[string]string `yaml:"properties"         mapstructure:"properties"`
	Changing   *bool             `yaml:"changing,omitempty" mapstructure:"changing"`
	Artifacts  bool              `yaml:"artifacts"          mapstructure:"artifacts"`
	Checksums  bool              `yaml:"checksums"          mapstructure:"checksums"`
	Signatures bool              `yaml:"signatures"         mapstructure:"signatures"`
	Fetcher    FetcherConfig     `yaml:"fetcher"            mapstructure:"fetcher"`
}

// FetcherConfig selects and configures the fetch backend
type FetcherConfig struct {
	Backend string       `yaml:"backend" mapstructure:"backend"` // "http" or "gitlab"
	GitLab  GitLabConfig `yaml:"gitlab"  mapstructure:"gitlab"`
}

// GitLabConfig represents GitLab connection settings for the gitlab backend
type GitLabConfig struct {
	BaseURL string `yaml:"base_url"      mapstructure:"base_url"`
	Token   string `yaml:"token"         mapstructure:"token"`
	Project string `yaml:"project"       mapstructure:"project"`
	Ref     string `yaml:"ref,omitempty" mapstructure:"ref"`
}

// DependencyConfig represents one dependency to resolve
type DependencyConfig struct {
	Organization  string            `yaml:"organization"          mapstructure:"organization"`
	Name          string            `yaml:"name"                  mapstructure:"name"`
	Version       string            `yaml:"version"               mapstructure:"version"`
	Configuration string            `yaml:"configuration"         mapstructure:"configuration"`
	Attributes    map[string]string `yaml:"attributes,omitempty"  mapstructure:"attributes"`
	Classifiers   []string          `yaml:"classifiers,omitempty" mapstructure:"classifiers"`
}

// InputConfig represents optional build-file dependency sources
type InputConfig struct {
	PomFile       string `yaml:"pom_file,omitempty"      mapstructure:"pom_file"`
	Configuration string `yaml:"configuration,omitempty" mapstructure:"configuration"` // assigned to pom dependencies
}

// OutputConfig represents output settings
type OutputConfig struct {
	JSONFile string `yaml:"json_file"          mapstructure:"json_file"`
	CSVFile  string `yaml:"csv_file,omitempty" mapstructure:"csv_file"`
}

// TimeoutConfig represents timeout configuration
type TimeoutConfig struct {
	ResolveTimeoutMinutes int `yaml:"resolve_timeout_minutes" mapstructure:"resolve_timeout_minutes"`
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		return nil, fmt.Errorf("config path is required")
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	// Create a new Viper instance to avoid data races in concurrent tests
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	setDefaultValues(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	_ = v.BindEnv("repository.fetcher.gitlab.base_url", "IVY_GITLAB_BASE_URL")
	_ = v.BindEnv("repository.fetcher.gitlab.token", "IVY_GITLAB_TOKEN")
	_ = v.BindEnv("output.json_file", "IVY_OUTPUT_JSON_FILE")
	_ = v.BindEnv("timeout.resolve_timeout_minutes", "IVY_RESOLVE_TIMEOUT_MINUTES")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// setDefaultValues sets default configuration values
func setDefaultValues(v *viper.Viper) {
	// Repository defaults: artifact enumeration on, siblings off
	v.SetDefault("repository.properties", map[string]string{})
	v.SetDefault("repository.artifacts", true)
	v.SetDefault("repository.checksums", false)
	v.SetDefault("repository.signatures", false)
	v.SetDefault("repository.fetcher.backend", "http")

	// Dependency defaults
	v.SetDefault("dependencies", []DependencyConfig{})
	v.SetDefault("input.configuration", "default")

	// Output defaults
	v.SetDefault("output.json_file", "resolved-artifacts.json")

	// Timeout defaults
	v.SetDefault("timeout.resolve_timeout_minutes", 10)
}

// validateConfig validates the configuration
func validateConfig(config Config) error {
	if config.Repository.Pattern == "" {
		return fmt.Errorf("repository.pattern is required")
	}

	switch config.Repository.Fetcher.Backend {
	case "http":
	case "gitlab":
		gl := config.Repository.Fetcher.GitLab
		if gl.BaseURL == "" {
			return fmt.Errorf("repository.fetcher.gitlab.base_url is required for the gitlab backend")
		}
		if gl.Token == "" {
			return fmt.Errorf("repository.fetcher.gitlab.token is required for the gitlab backend")
		}
		if gl.Project == "" {
			return fmt.Errorf("repository.fetcher.gitlab.project is required for the gitlab backend")
		}
	default:
		return fmt.Errorf("repository.fetcher.backend must be http or gitlab, got %q",
			config.Repository.Fetcher.Backend)
	}

	if len(config.Dependencies) == 0 && config.Input.PomFile == "" {
		return fmt.Errorf("at least one dependency or input.pom_file must be configured")
	}

	for i, dep := range config.Dependencies {
		if dep.Organization == "" || dep.Name == "" || dep.Version == "" {
			return fmt.Errorf("dependency[%d] must have organization, name, and version", i)
		}
		if dep.Configuration == "" {
			return fmt.Errorf("dependency[%d] must have a configuration", i)
		}
	}

	if config.Output.JSONFile == "" {
		return fmt.Errorf("output.json_file is required")
	}

	return nil
}
