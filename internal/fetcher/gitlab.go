package fetcher

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	gitlab "gitlab.com/gitlab-org/api/client-go"
	"go.uber.org/zap"

	"ivy-resolve-cli/internal/domain"
)

// GitLabFetcher reads artifacts out of a GitLab project tree, for
// repositories published as plain files inside a project. The substituted
// pattern location is interpreted as a path relative to the project root.
type GitLabFetcher struct {
	client      *gitlab.Client
	projectPath string
	ref         string // branch or tag; empty means the project's default branch
	logger      *zap.Logger
}

// NewGitLabFetcher creates a new GitLab-backed fetcher
func NewGitLabFetcher(baseURL, token, projectPath, ref string, logger *zap.Logger) (*GitLabFetcher, error) {
	client, err := gitlab.NewClient(token, gitlab.WithBaseURL(baseURL))
	if err != nil {
		return nil, fmt.Errorf("failed to create GitLab client: %w", err)
	}

	return &GitLabFetcher{
		client:      client,
		projectPath: projectPath,
		ref:         ref,
		logger:      logger,
	}, nil
}

// Fetch retrieves the file behind the artifact's repository-relative location.
func (f *GitLabFetcher) Fetch(ctx context.Context, artifact domain.Artifact) ([]byte, error) {
	filePath := strings.TrimPrefix(artifact.URL, "/")

	f.logger.Debug("Fetching file from GitLab",
		zap.String("project_path", f.projectPath),
		zap.String("file_path", filePath))

	ref := f.ref
	if ref == "" {
		project, _, err := f.client.Projects.GetProject(f.projectPath, nil, gitlab.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("failed to get project %s: %w", f.projectPath, err)
		}
		ref = project.DefaultBranch
		f.logger.Debug("Using project default branch", zap.String("ref", ref))
	}

	file, _, err := f.client.RepositoryFiles.GetFile(f.projectPath, filePath, &gitlab.GetFileOptions{
		Ref: gitlab.Ptr(ref),
	}, gitlab.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to get file %s from %s: %w", filePath, f.projectPath, err)
	}

	content := []byte(file.Content)
	if file.Encoding == "base64" {
		content, err = base64.StdEncoding.DecodeString(file.Content)
		if err != nil {
			return nil, fmt.Errorf("failed to decode content of %s: %w", filePath, err)
		}
	}

	f.logger.Debug("Completed GitLab fetch",
		zap.String("file_path", filePath),
		zap.Int("content_size_bytes", len(content)))

	return content, nil
}
