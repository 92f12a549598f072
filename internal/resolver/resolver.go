package resolver

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"ivy-resolve-cli/internal/domain"
	"ivy-resolve-cli/internal/pattern"
	"ivy-resolve-cli/internal/xmltree"
)

const (
	// metadata documents use a fixed descriptor: type and stem "ivy", ext "xml"
	metadataType = "ivy"
	metadataExt  = "xml"
	// metadataRootTag is the only accepted root element of a metadata document
	metadataRootTag = "ivy-module"

	// wildcardConfiguration marks a publication that belongs to every configuration
	wildcardConfiguration = "*"

	// changingMarker flags snapshot-style versions whose content may move under a fixed URL
	changingMarker = "-SNAPSHOT"
)

// Options is the repository configuration surface consumed by the resolver.
type Options struct {
	Pattern        string            // location pattern, with [name] variables, (…) optional clauses, ${name} properties
	Properties     map[string]string // static properties substituted once before compilation
	Changing       *bool             // overrides the snapshot heuristic when set
	WithArtifacts  bool              // enables artifact enumeration at all
	WithChecksums  bool              // enables checksum sibling derivation
	WithSignatures bool              // enables signature sibling derivation
}

// Repository resolves dependencies against one repository layout. The pattern
// is compiled once at construction and is immutable afterwards, so a
// Repository is safe for concurrent use.
type Repository struct {
	pattern        *pattern.Pattern
	changing       *bool
	withArtifacts  bool
	withChecksums  bool
	withSignatures bool
	deriver        domain.SiblingDeriver
	fetcher        domain.Fetcher
	metadataParser domain.MetadataParser
	logger         *zap.Logger
}

// NewRepository compiles the configured pattern and wires the injected
// collaborators.
func NewRepository(
	opts Options,
	fetcher domain.Fetcher,
	metadataParser domain.MetadataParser,
	deriver domain.SiblingDeriver,
	logger *zap.Logger,
) *Repository {
	substituted := pattern.SubstituteProperties(opts.Pattern, opts.Properties)
	return &Repository{
		pattern:        pattern.Compile(substituted),
		changing:       opts.Changing,
		withArtifacts:  opts.WithArtifacts,
		withChecksums:  opts.WithChecksums,
		withSignatures: opts.WithSignatures,
		deriver:        deriver,
		fetcher:        fetcher,
		metadataParser: metadataParser,
		logger:         logger,
	}
}

// Pattern returns the compiled location pattern.
func (r *Repository) Pattern() *pattern.Pattern {
	return r.pattern
}

// Artifacts enumerates the downloadable artifacts for a dependency against
// its resolved project. Without an explicit classifier list, a publication is
// retained when its configuration is the wildcard, matches the dependency's
// configuration exactly, or is inherited by it; an explicit classifier list
// retains publications by classifier alone. A publication whose substitution
// fails is dropped without aborting the others. Output order follows the
// project's publication order.
func (r *Repository) Artifacts(
	dep domain.Dependency,
	project *domain.Project,
	classifiers []string,
) []domain.Artifact {
	if !r.withArtifacts {
		return nil
	}

	artifacts := make([]domain.Artifact, 0, len(project.Publications))
	for _, cp := range project.Publications {
		if !r.retains(dep, project, cp, classifiers) {
			continue
		}

		pub := cp.Publication
		vars := pattern.Variables(dep.Module, project.Version, pub.Type, pub.Name, pub.Ext, pub.Classifier)
		location, err := r.pattern.Substitute(vars)
		if err != nil {
			r.logger.Debug("Dropping publication with unresolved pattern variable",
				zap.String("module", dep.Module.Name),
				zap.String("artifact", pub.Name),
				zap.Error(err))
			continue
		}

		artifacts = append(artifacts, r.newArtifact(location, pub.Attributes, r.isChanging(project.Version)))
	}
	return artifacts
}

func (r *Repository) retains(
	dep domain.Dependency,
	project *domain.Project,
	cp domain.ConfiguredPublication,
	classifiers []string,
) bool {
	if classifiers != nil {
		return slices.Contains(classifiers, cp.Publication.Classifier)
	}
	if cp.Configuration == wildcardConfiguration || cp.Configuration == dep.Configuration {
		return true
	}
	return slices.Contains(project.Configurations[dep.Configuration], cp.Configuration)
}

// FindMetadata locates, fetches, and validates the metadata document for one
// module version, returning the parsed project together with the metadata
// artifact itself. The fetch is the only blocking step; every failure
// short-circuits in step order.
func (r *Repository) FindMetadata(
	ctx context.Context,
	mod domain.Module,
	version string,
) (*domain.Project, domain.Artifact, error) {
	vars := pattern.Variables(mod, version, metadataType, metadataType, metadataExt, "")
	location, err := r.pattern.Substitute(vars)
	if err != nil {
		return nil, domain.Artifact{}, fmt.Errorf(
			"failed to build metadata location for %s/%s: %w", mod.Organization, mod.Name, err)
	}

	artifact := r.newArtifact(location, map[string]string{"type": metadataType}, r.isChanging(version))

	r.logger.Debug("Fetching metadata document",
		zap.String("organization", mod.Organization),
		zap.String("module", mod.Name),
		zap.String("version", version),
		zap.String("location", location))

	content, err := r.fetcher.Fetch(ctx, artifact)
	if err != nil {
		return nil, artifact, fmt.Errorf("failed to fetch metadata from %s: %w", location, err)
	}

	root, err := xmltree.Parse(content)
	if err != nil {
		return nil, artifact, fmt.Errorf("failed to parse metadata from %s: %w", location, err)
	}
	if root.Label != metadataRootTag {
		return nil, artifact, fmt.Errorf(
			"metadata document root is %q, expected %q", root.Label, metadataRootTag)
	}

	project, err := r.metadataParser.ParseProject(root)
	if err != nil {
		return nil, artifact, fmt.Errorf("failed to read project from %s: %w", location, err)
	}

	r.logger.Debug("Resolved metadata document",
		zap.String("module", mod.Name),
		zap.String("project_version", project.Version),
		zap.Int("publications", len(project.Publications)))

	return project, artifact, nil
}

func (r *Repository) newArtifact(location string, attributes map[string]string, changing bool) domain.Artifact {
	artifact := domain.Artifact{
		URL:        location,
		Checksums:  map[string]string{},
		Signatures: map[string]string{},
		Attributes: attributes,
		Changing:   changing,
	}
	if r.withChecksums {
		artifact = r.deriver.WithDefaultChecksums(artifact)
	}
	if r.withSignatures {
		artifact = r.deriver.WithDefaultSignature(artifact)
	}
	return artifact
}

func (r *Repository) isChanging(version string) bool {
	if r.changing != nil {
		return *r.changing
	}
	return strings.Contains(version, changingMarker)
}
