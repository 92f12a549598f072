package domain

import (
	"context"

	"ivy-resolve-cli/internal/xmltree"
)

type Fetcher interface {
	// retrieves the raw bytes behind an artifact location
	Fetch(ctx context.Context, artifact Artifact) ([]byte, error)
}

type MetadataParser interface {
	// turns a parsed metadata document into a project description
	ParseProject(root *xmltree.Node) (*Project, error)
}

type SiblingDeriver interface {
	// fills in the default checksum sibling locations for an artifact
	WithDefaultChecksums(artifact Artifact) Artifact
	// fills in the default signature sibling location for an artifact
	WithDefaultSignature(artifact Artifact) Artifact
}

type MetadataLocator interface {
	// locates, fetches, and parses the repository metadata for one module version;
	// the returned artifact is the metadata document's own location
	FindMetadata(ctx context.Context, mod Module, version string) (*Project, Artifact, error)
}

type ArtifactSource interface {
	// enumerates the downloadable artifacts for a dependency against its resolved project
	Artifacts(dep Dependency, project *Project, classifiers []string) []Artifact
}

type DependencyParser interface {
	// extracts dependency requests from a build file's raw content
	ParseFile(ctx context.Context, path string, content []byte) ([]Dependency, error)
}

type ReportGenerator interface {
	// writes a JSON report of resolution results
	GenerateJSON(ctx context.Context, results []*Resolution) error
	// writes a CSV report of resolution results
	GenerateCSV(ctx context.Context, results []*Resolution) error
}
