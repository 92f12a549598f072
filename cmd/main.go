package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"ivy-resolve-cli/internal/checksum"
	"ivy-resolve-cli/internal/config"
	"ivy-resolve-cli/internal/domain"
	"ivy-resolve-cli/internal/fetcher"
	"ivy-resolve-cli/internal/generator"
	"ivy-resolve-cli/internal/ivy"
	"ivy-resolve-cli/internal/logger"
	"ivy-resolve-cli/internal/parser"
	"ivy-resolve-cli/internal/resolver"
	"ivy-resolve-cli/internal/usecases"
)

var (
	configFile string
	outputFile string
	pomFile    string
	debug      bool
	timeout    int
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ivy-resolve-cli",
	Short: "Ivy Resolve CLI - Resolve dependency locations against an Ivy-layout repository",
	Long: `A command-line tool that compiles an Ivy layout pattern once and resolves
dependencies against it: it locates and parses each module's metadata
document, selects the publications matching the requested configuration,
and materializes concrete artifact download URLs, with optional checksum
and signature sibling locations.`,
}

// resolveCmd represents the resolve command
var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve configured dependencies into artifact URLs",
	Long: `Resolve the configured dependencies against the repository pattern and
write a report of the resulting artifact locations. Dependencies come from
the configuration file, optionally supplemented by a Maven pom.xml.`,
	RunE: runResolve,
}

func setupCommands() {
	rootCmd.AddCommand(resolveCmd)

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to configuration file (required)")
	if err := rootCmd.MarkPersistentFlagRequired("config"); err != nil {
		panic(fmt.Sprintf("failed to mark config flag as required: %v", err))
	}

	// Resolve command flags
	resolveCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output JSON file path (overrides config)")
	resolveCmd.Flags().StringVarP(&pomFile, "pom", "p", "", "pom.xml with additional dependencies (overrides config)")
	resolveCmd.Flags().BoolVarP(&debug, "debug", "d", false, "Enable debug logging with verbose output")
	resolveCmd.Flags().IntVarP(&timeout, "timeout", "", 0,
		"Resolution timeout in minutes (overrides config, 0 = use config default)")

	// Bind flags to viper
	if err := viper.BindPFlag("output.json_file", resolveCmd.Flags().Lookup("output")); err != nil {
		panic(fmt.Sprintf("failed to bind output flag: %v", err))
	}
	if err := viper.BindPFlag("timeout.resolve_timeout_minutes", resolveCmd.Flags().Lookup("timeout")); err != nil {
		panic(fmt.Sprintf("failed to bind timeout flag: %v", err))
	}
}

func main() {
	setupCommands()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runResolve(cmd *cobra.Command, args []string) error {
	fmt.Println("🔍 Starting dependency resolution...")

	// Load configuration
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// CLI flags override config
	if outputFile != "" {
		cfg.Output.JSONFile = outputFile
	}
	if pomFile != "" {
		cfg.Input.PomFile = pomFile
	}

	timeoutMinutes := cfg.Timeout.ResolveTimeoutMinutes
	if timeout > 0 {
		timeoutMinutes = timeout
	}
	timeoutDuration := time.Duration(timeoutMinutes) * time.Minute

	ctx, cancel := context.WithTimeout(context.Background(), timeoutDuration)
	defer cancel()

	if debug {
		logger.SetLevel(zap.DebugLevel)
	}
	l := logger.GetLogger()

	// Initialize the fetch backend
	artifactFetcher, err := newFetcher(cfg, l)
	if err != nil {
		return fmt.Errorf("failed to create fetcher: %w", err)
	}

	// Initialize the repository resolver
	repository := resolver.NewRepository(resolver.Options{
		Pattern:        cfg.Repository.Pattern,
		Properties:     cfg.Repository.Properties,
		Changing:       cfg.Repository.Changing,
		WithArtifacts:  cfg.Repository.Artifacts,
		WithChecksums:  cfg.Repository.Checksums,
		WithSignatures: cfg.Repository.Signatures,
	}, artifactFetcher, ivy.NewParser(), checksum.NewDeriver(), l)

	// Initialize generator
	reportGenerator := generator.NewGenerator(cfg.Output.JSONFile, cfg.Output.CSVFile)

	// Collect the dependencies to resolve
	requests, err := collectRequests(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to collect dependencies: %w", err)
	}

	// Create resolve use case with dependency injection
	resolveUseCase := usecases.NewResolveUseCase(ctx, repository, repository, reportGenerator, l)

	response, err := resolveUseCase.Execute(requests)
	if err != nil {
		return fmt.Errorf("failed to resolve dependencies: %w", err)
	}

	l.Info("Resolution completed successfully", zap.Any("response", response))

	// Print summary
	fmt.Println("\n🎉 Resolution completed successfully!")
	fmt.Printf("📈 Summary:\n")
	fmt.Printf("  • Total Dependencies: %d\n", response.TotalDependencies)
	fmt.Printf("  • Resolved: %d\n", response.ResolvedCount)
	fmt.Printf("  • Failed: %d\n", response.FailedCount)
	fmt.Printf("  • Total Artifacts: %d\n", response.TotalArtifacts)
	return nil
}

// newFetcher builds the configured fetch backend
func newFetcher(cfg *config.Config, l *zap.Logger) (domain.Fetcher, error) {
	switch cfg.Repository.Fetcher.Backend {
	case "gitlab":
		gl := cfg.Repository.Fetcher.GitLab
		return fetcher.NewGitLabFetcher(gl.BaseURL, gl.Token, gl.Project, gl.Ref, l)
	default:
		return fetcher.NewHTTPFetcher(l), nil
	}
}

// collectRequests gathers dependencies from the config file and, when
// configured, from a pom.xml
func collectRequests(ctx context.Context, cfg *config.Config) ([]usecases.Request, error) {
	requests := make([]usecases.Request, 0, len(cfg.Dependencies))
	for _, dep := range cfg.Dependencies {
		requests = append(requests, usecases.Request{
			Dependency: domain.Dependency{
				Module: domain.Module{
					Organization: dep.Organization,
					Name:         dep.Name,
					Attributes:   dep.Attributes,
				},
				Version:       dep.Version,
				Configuration: dep.Configuration,
			},
			Classifiers: dep.Classifiers,
		})
	}

	if cfg.Input.PomFile != "" {
		content, err := os.ReadFile(cfg.Input.PomFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", cfg.Input.PomFile, err)
		}

		pomParser := parser.NewParser(cfg.Input.Configuration)
		dependencies, err := pomParser.ParseFile(ctx, cfg.Input.PomFile, content)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", cfg.Input.PomFile, err)
		}
		for _, dep := range dependencies {
			requests = append(requests, usecases.Request{Dependency: dep})
		}
	}

	return requests, nil
}
