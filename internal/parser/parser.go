package parser

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aquasecurity/trivy/pkg/dependency/parser/java/pom"
	xio "github.com/aquasecurity/trivy/pkg/x/io"

	"ivy-resolve-cli/internal/domain"
)

// Parser extracts dependency requests from Maven build files using Trivy
type Parser struct {
	configuration string
}

// NewParser creates a new build-file parser; every extracted dependency is
// assigned the given configuration
func NewParser(configuration string) *Parser {
	if configuration == "" {
		configuration = "default"
	}
	return &Parser{configuration: configuration}
}

// CanParse checks if this parser can handle the given file
func (p *Parser) CanParse(filePath string) bool {
	return fileName(filePath) == "pom.xml"
}

// ParseFile parses a pom.xml and extracts the declared dependencies
func (p *Parser) ParseFile(ctx context.Context, path string, content []byte) ([]domain.Dependency, error) {
	if !p.CanParse(path) {
		return nil, fmt.Errorf("unsupported build file: %s", path)
	}

	reader, err := xio.NewReadSeekerAt(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to create reader: %w", err)
	}

	pomParser := pom.NewParser(path)
	packages, _, err := pomParser.Parse(reader)
	if err != nil {
		return nil, fmt.Errorf("pom.xml parser error: %w", err)
	}

	var dependencies []domain.Dependency
	for i := range packages {
		pkg := &packages[i]
		// Trivy names Maven packages "groupId:artifactId"
		organization, name, ok := strings.Cut(pkg.Name, ":")
		if !ok || pkg.Version == "" {
			continue
		}
		dependencies = append(dependencies, domain.Dependency{
			Module: domain.Module{
				Organization: organization,
				Name:         name,
			},
			Version:       pkg.Version,
			Configuration: p.configuration,
		})
	}

	return dependencies, nil
}

func fileName(filePath string) string {
	parts := strings.Split(filePath, "/")
	return parts[len(parts)-1]
}
