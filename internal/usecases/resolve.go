package usecases

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"ivy-resolve-cli/internal/domain"
)

const (
	// Default number of workers for concurrent dependency resolution
	defaultResolveWorkers = 5
)

// Request pairs a dependency with an optional explicit classifier filter.
// A nil classifier list means selection follows the dependency's
// configuration.
type Request struct {
	Dependency  domain.Dependency
	Classifiers []string
}

// ResolveResponse represents the result of the resolution run
type ResolveResponse struct {
	TotalDependencies int                  `json:"total_dependencies"`
	ResolvedCount     int                  `json:"resolved_count"`
	FailedCount       int                  `json:"failed_count"`
	TotalArtifacts    int                  `json:"total_artifacts"`
	Results           []*domain.Resolution `json:"results"`
}

// ResolveUseCase orchestrates metadata location and artifact enumeration for
// a batch of dependencies
type ResolveUseCase struct {
	locator   domain.MetadataLocator
	source    domain.ArtifactSource
	generator domain.ReportGenerator
	logger    *zap.Logger
	ctx       context.Context
}

// NewResolveUseCase creates a new resolve use case with dependency injection
func NewResolveUseCase(
	ctx context.Context,
	locator domain.MetadataLocator,
	source domain.ArtifactSource,
	generator domain.ReportGenerator,
	logger *zap.Logger,
) *ResolveUseCase {
	return &ResolveUseCase{
		locator:   locator,
		source:    source,
		generator: generator,
		logger:    logger,
		ctx:       ctx,
	}
}

// Execute resolves every request concurrently and writes the reports. A
// dependency that fails to resolve is recorded in its result slot; it never
// aborts the rest of the batch.
func (uc *ResolveUseCase) Execute(requests []Request) (*ResolveResponse, error) {
	uc.logger.Info("Starting dependency resolution",
		zap.Int("total_dependencies", len(requests)),
		zap.Int("workers", defaultResolveWorkers))

	results := make([]*domain.Resolution, len(requests))

	type indexedRequest struct {
		index   int
		request Request
	}
	requestChan := make(chan indexedRequest, len(requests))

	workers := defaultResolveWorkers
	if len(requests) < workers {
		workers = len(requests)
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			uc.logger.Debug("Started resolve worker", zap.Int("worker_id", workerID))

			for ir := range requestChan {
				results[ir.index] = uc.resolveOne(ir.request)
			}

			uc.logger.Debug("Finished resolve worker", zap.Int("worker_id", workerID))
		}(i)
	}

	for i, request := range requests {
		requestChan <- indexedRequest{index: i, request: request}
	}
	close(requestChan)

	wg.Wait()

	response := &ResolveResponse{
		TotalDependencies: len(requests),
		Results:           results,
	}
	for _, result := range results {
		if result.Error != "" {
			response.FailedCount++
			continue
		}
		response.ResolvedCount++
		response.TotalArtifacts += len(result.Artifacts)
	}

	if response.FailedCount > 0 {
		uc.logger.Warn("Some dependencies failed to resolve",
			zap.Int("failed", response.FailedCount),
			zap.Int("resolved", response.ResolvedCount))
	}

	uc.logger.Info("Generating reports", zap.Int("results", len(results)))
	if err := uc.generator.GenerateJSON(uc.ctx, results); err != nil {
		uc.logger.Error("Failed to generate JSON report", zap.Error(err))
		return nil, err
	}
	if err := uc.generator.GenerateCSV(uc.ctx, results); err != nil {
		uc.logger.Error("Failed to generate CSV report", zap.Error(err))
		return nil, err
	}

	uc.logger.Info("Dependency resolution completed",
		zap.Int("total_dependencies", response.TotalDependencies),
		zap.Int("resolved", response.ResolvedCount),
		zap.Int("failed", response.FailedCount),
		zap.Int("total_artifacts", response.TotalArtifacts))

	return response, nil
}

// resolveOne locates the metadata for one dependency and enumerates its
// artifacts
func (uc *ResolveUseCase) resolveOne(request Request) *domain.Resolution {
	dep := request.Dependency

	uc.logger.Info("Resolving dependency",
		zap.String("organization", dep.Module.Organization),
		zap.String("module", dep.Module.Name),
		zap.String("version", dep.Version),
		zap.String("configuration", dep.Configuration))

	project, metadata, err := uc.locator.FindMetadata(uc.ctx, dep.Module, dep.Version)
	if err != nil {
		uc.logger.Error("Failed to resolve dependency",
			zap.String("module", dep.Module.Name),
			zap.String("version", dep.Version),
			zap.Error(err))
		return &domain.Resolution{
			Dependency: dep,
			Error:      err.Error(),
		}
	}

	artifacts := uc.source.Artifacts(dep, project, request.Classifiers)

	uc.logger.Info("Resolved dependency",
		zap.String("module", dep.Module.Name),
		zap.String("project_version", project.Version),
		zap.Int("artifacts", len(artifacts)))

	return &domain.Resolution{
		Dependency: dep,
		Metadata:   &metadata,
		Artifacts:  artifacts,
	}
}
