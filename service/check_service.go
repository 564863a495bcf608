package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/ludo-technologies/protoscan/domain"
	"github.com/ludo-technologies/protoscan/internal/analyzer"
	"github.com/ludo-technologies/protoscan/internal/config"
	"go.uber.org/zap"
)

// CheckServiceImpl implements the CheckService interface
type CheckServiceImpl struct {
	config   *config.Config
	progress domain.ProgressManager
	logger   *zap.Logger
}

// NewCheckService creates a new check service implementation
func NewCheckService(cfg *config.Config, logger *zap.Logger) *CheckServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CheckServiceImpl{
		config: cfg,
		logger: logger,
	}
}

// NewCheckServiceWithProgress creates a new check service with progress reporting
func NewCheckServiceWithProgress(cfg *config.Config, pm domain.ProgressManager, logger *zap.Logger) *CheckServiceImpl {
	s := NewCheckService(cfg, logger)
	s.progress = pm
	return s
}

// Check reads every requested file, extracts per-file results in parallel and
// assembles them, in request order, into a report.
// Unreadable files become SourceNotFound outcomes rather than errors.
func (s *CheckServiceImpl) Check(ctx context.Context, req domain.CheckRequest) (*domain.Report, error) {
	if len(req.DefinitionPaths) == 0 {
		return nil, domain.NewInvalidInputError("no definition files to check", nil)
	}

	opts := analyzer.OptionsFromConfig(s.config)
	implPaths := req.ImplementationPaths
	if !s.config.Implementation.Enabled {
		implPaths = nil
	}

	defs := make([]analyzer.DefinitionAnalysis, len(req.DefinitionPaths))
	impls := make([]analyzer.ImplementationAnalysis, len(implPaths))

	tasks := make([]domain.ExecutableTask, 0, len(defs)+len(impls))
	for i, path := range req.DefinitionPaths {
		tasks = append(tasks, &sourceTask{
			path: path,
			read: s.readSource,
			run: func(src domain.Source) {
				defs[i] = analyzer.AnalyzeDefinitions(opts, src)
				s.logIssues(defs[i].Issues)
			},
		})
	}
	for i, path := range implPaths {
		tasks = append(tasks, &sourceTask{
			path: path,
			read: s.readSource,
			run: func(src domain.Source) {
				impls[i] = analyzer.AnalyzeImplementation(opts, src)
				s.logIssues(impls[i].Issues)
			},
		})
	}

	start := time.Now()
	executor := NewParallelExecutorFromConfig(&s.config.Performance, s.logger)
	if s.progress != nil {
		executor.WithProgress(s.progress, "Extracting")
	}
	if err := executor.Execute(ctx, tasks); err != nil {
		return nil, domain.NewAnalysisError("extraction did not complete", err)
	}

	report := analyzer.Assemble(opts, defs, impls)

	s.logger.Debug("check finished",
		zap.Int("definition_sources", len(defs)),
		zap.Int("implementation_sources", len(impls)),
		zap.Int("interfaces", len(report.Interfaces)),
		zap.Int("issues", len(report.Issues)),
		zap.Bool("all_passed", report.AllPassed),
		zap.Duration("elapsed", time.Since(start)),
	)

	return report, nil
}

// readSource reads one file fully into memory
func (s *CheckServiceImpl) readSource(path string) domain.Source {
	content, err := os.ReadFile(path)
	if err != nil {
		reason := describeReadError(err)
		s.logger.Warn("source not readable", zap.String("path", path), zap.String("reason", reason))
		return domain.Source{Path: path, Missing: true, Reason: reason}
	}

	s.logger.Debug("read source", zap.String("path", path), zap.Int("bytes", len(content)))
	return domain.Source{Path: path, Text: string(content)}
}

func (s *CheckServiceImpl) logIssues(issues []domain.SourceIssue) {
	for _, issue := range issues {
		if issue.Kind != domain.IssueMalformedExtraction {
			continue
		}
		s.logger.Warn("skipped malformed unit",
			zap.String("path", issue.Source),
			zap.Int("line", issue.Line),
			zap.String("message", issue.Message),
		)
	}
}

func describeReadError(err error) string {
	var pathErr *fs.PathError
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "file does not exist"
	case errors.Is(err, fs.ErrPermission):
		return "permission denied"
	case errors.As(err, &pathErr):
		return pathErr.Err.Error()
	default:
		return err.Error()
	}
}

// sourceTask reads and analyzes one file as an executor task
type sourceTask struct {
	path string
	read func(path string) domain.Source
	run  func(src domain.Source)
}

func (t *sourceTask) Name() string {
	return filepath.ToSlash(t.path)
}

func (t *sourceTask) Execute(ctx context.Context) (interface{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("skipped %s: %w", t.path, err)
	}
	t.run(t.read(t.path))
	return nil, nil
}

func (t *sourceTask) IsEnabled() bool {
	return true
}
