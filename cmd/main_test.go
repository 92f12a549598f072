package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ivy-resolve-cli/internal/checksum"
	"ivy-resolve-cli/internal/config"
	"ivy-resolve-cli/internal/domain"
	"ivy-resolve-cli/internal/fetcher"
	"ivy-resolve-cli/internal/generator"
	"ivy-resolve-cli/internal/ivy"
	"ivy-resolve-cli/internal/resolver"
	"ivy-resolve-cli/internal/usecases"
)

// Test helper to create a temporary config file
func createTempConfig(t *testing.T, content string) string {
	t.Helper()

	configFile := filepath.Join(t.TempDir(), "test-config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0o644))
	return configFile
}

func TestRootCmd_Execute(t *testing.T) {
	t.Parallel()

	cmd := &cobra.Command{
		Use:   "ivy-resolve-cli",
		Short: "Ivy Resolve CLI - Resolve dependency locations against an Ivy-layout repository",
		Long: `A command-line tool that compiles an Ivy layout pattern once and resolves
dependencies against it.`,
	}

	var stdout bytes.Buffer
	cmd.SetOut(&stdout)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, stdout.String(), "compiles an Ivy layout pattern")
}

func TestResolveCmd_Execute_ConfigError(t *testing.T) {
	t.Parallel()

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve configured dependencies into artifact URLs",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := config.LoadConfig("/nonexistent/config.yaml")
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringP("config", "c", "", "Path to configuration file (required)")
	cmd.SetArgs([]string{"--config", "/nonexistent/config.yaml"})

	var stderr bytes.Buffer
	cmd.SetErr(&stderr)

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration")
}

const endToEndIvyXML = `<?xml version="1.0" encoding="UTF-8"?>
<ivy-module version="2.0">
	<info organisation="com.example" module="core" revision="1.4.2"/>
	<configurations>
		<conf name="compile"/>
		<conf name="runtime" extends="compile"/>
	</configurations>
	<publications>
		<artifact name="core" type="jar" conf="compile"/>
		<artifact name="core" type="src" ext="zip" classifier="sources" conf="*"/>
	</publications>
</ivy-module>`

// TestResolve_EndToEnd wires the real components the resolve command uses
// against a local repository server.
func TestResolve_EndToEnd(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/com/example/core/1.4.2/ivys/ivy.xml" {
			_, _ = w.Write([]byte(endToEndIvyXML))
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	outputFile := filepath.Join(t.TempDir(), "report.json")
	configFile := createTempConfig(t, fmt.Sprintf(`
repository:
  pattern: "%s/[orgPath]/[module]/[revision]/[type]s/[artifact](-[classifier]).[ext]"
  checksums: true
dependencies:
  - organization: com.example
    name: core
    version: "1.4.2"
    configuration: runtime
output:
  json_file: %s
`, server.URL, outputFile))

	cfg, err := config.LoadConfig(configFile)
	require.NoError(t, err)

	ctx := context.Background()
	l := zap.NewNop()

	repository := resolver.NewRepository(resolver.Options{
		Pattern:        cfg.Repository.Pattern,
		Properties:     cfg.Repository.Properties,
		Changing:       cfg.Repository.Changing,
		WithArtifacts:  cfg.Repository.Artifacts,
		WithChecksums:  cfg.Repository.Checksums,
		WithSignatures: cfg.Repository.Signatures,
	}, fetcher.NewHTTPFetcher(l), ivy.NewParser(), checksum.NewDeriver(), l)

	uc := usecases.NewResolveUseCase(ctx, repository, repository,
		generator.NewGenerator(cfg.Output.JSONFile, cfg.Output.CSVFile), l)

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

	response, err := uc.Execute(requests)
	require.NoError(t, err)

	assert.Equal(t, 1, response.ResolvedCount)
	assert.Equal(t, 0, response.FailedCount)
	assert.Equal(t, 2, response.TotalArtifacts)

	content, err := os.ReadFile(outputFile)
	require.NoError(t, err)

	var results []*domain.Resolution
	require.NoError(t, json.Unmarshal(content, &results))
	require.Len(t, results, 1)
	require.Len(t, results[0].Artifacts, 2)

	jar := results[0].Artifacts[0]
	assert.Equal(t, server.URL+"/com/example/core/1.4.2/jars/core.jar", jar.URL)
	assert.Equal(t, jar.URL+".sha1", jar.Checksums["sha1"])

	sources := results[0].Artifacts[1]
	assert.Equal(t, server.URL+"/com/example/core/1.4.2/srcs/core-sources.zip", sources.URL)
}
