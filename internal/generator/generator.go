package generator

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"ivy-resolve-cli/internal/domain"
)

// Generator writes resolution reports to disk
type Generator struct {
	jsonPath string
	csvPath  string
}

// NewGenerator creates a new report generator; an empty path disables that
// report format
func NewGenerator(jsonPath, csvPath string) *Generator {
	return &Generator{
		jsonPath: jsonPath,
		csvPath:  csvPath,
	}
}

// GenerateJSON writes the resolution results as an indented JSON document
func (g *Generator) GenerateJSON(ctx context.Context, results []*domain.Resolution) error {
	if g.jsonPath == "" {
		return nil
	}

	content, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}

	if err := writeFile(g.jsonPath, content); err != nil {
		return fmt.Errorf("failed to write JSON report: %w", err)
	}
	return nil
}

// GenerateCSV writes one row per resolved artifact
func (g *Generator) GenerateCSV(ctx context.Context, results []*domain.Resolution) error {
	if g.csvPath == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(g.csvPath), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	file, err := os.Create(g.csvPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV report: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	header := []string{"organization", "module", "version", "configuration", "url", "changing", "error"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, result := range results {
		dep := result.Dependency
		if result.Error != "" {
			record := []string{dep.Module.Organization, dep.Module.Name, dep.Version, dep.Configuration, "", "", result.Error}
			if err := writer.Write(record); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
			continue
		}
		for _, artifact := range result.Artifacts {
			record := []string{
				dep.Module.Organization,
				dep.Module.Name,
				dep.Version,
				dep.Configuration,
				artifact.URL,
				strconv.FormatBool(artifact.Changing),
				"",
			}
			if err := writer.Write(record); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV report: %w", err)
	}
	return nil
}

func writeFile(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return os.WriteFile(path, content, 0o644)
}
