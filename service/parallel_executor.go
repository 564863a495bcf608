package service

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ludo-technologies/protoscan/domain"
	"github.com/ludo-technologies/protoscan/internal/config"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Default values for parallel executor
const (
	// DefaultMaxConcurrency is used when config value is invalid.
	DefaultMaxConcurrency = 4
	DefaultTimeout        = 5 * time.Minute
)

// TaskError represents a single task failure
type TaskError struct {
	TaskName string
	Err      error
}

// Error implements the error interface
func (e TaskError) Error() string {
	return fmt.Sprintf("[%s] %v", e.TaskName, e.Err)
}

// Unwrap returns the underlying error
func (e TaskError) Unwrap() error {
	return e.Err
}

// AggregatedError collects all task failures, sorted by task name
type AggregatedError struct {
	Errors []TaskError
}

// Error implements the error interface
func (e *AggregatedError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d tasks failed:\n", len(e.Errors)))
	for i, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// Unwrap returns the first error for errors.Is/As compatibility
func (e *AggregatedError) Unwrap() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e.Errors[0].Err
}

// ParallelExecutorImpl implements domain.ParallelExecutor on a bounded errgroup.
// Tasks write their results into caller-owned slots, so the executor itself
// never reorders output.
type ParallelExecutorImpl struct {
	maxConcurrency int
	timeout        time.Duration
	progress       domain.ProgressManager
	description    string
	logger         *zap.Logger
}

// NewParallelExecutor creates a new parallel executor with defaults
// Uses runtime.NumCPU() for concurrency and 5 minute timeout
func NewParallelExecutor() *ParallelExecutorImpl {
	return &ParallelExecutorImpl{
		maxConcurrency: runtime.NumCPU(),
		timeout:        DefaultTimeout,
		description:    "Processing",
		logger:         zap.NewNop(),
	}
}

// NewParallelExecutorFromConfig creates a parallel executor from configuration
func NewParallelExecutorFromConfig(cfg *config.PerformanceConfig, logger *zap.Logger) *ParallelExecutorImpl {
	executor := NewParallelExecutor()

	executor.maxConcurrency = cfg.MaxGoroutines
	if executor.maxConcurrency <= 0 {
		executor.maxConcurrency = DefaultMaxConcurrency
	}

	executor.timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	if executor.timeout <= 0 {
		executor.timeout = DefaultTimeout
	}

	if logger != nil {
		executor.logger = logger
	}
	return executor
}

// WithProgress attaches a progress manager; each run shows one bar labelled description
func (e *ParallelExecutorImpl) WithProgress(pm domain.ProgressManager, description string) *ParallelExecutorImpl {
	e.progress = pm
	if description != "" {
		e.description = description
	}
	return e
}

// Execute runs tasks in parallel with the configured concurrency and timeout.
// Every enabled task runs or is reported: a task skipped because the run was
// cancelled or timed out is returned as a TaskError.
func (e *ParallelExecutorImpl) Execute(ctx context.Context, tasks []domain.ExecutableTask) error {
	enabledTasks := e.filterEnabledTasks(tasks)
	if len(enabledTasks) == 0 {
		return nil
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	var task domain.TaskProgress = &NoOpTaskProgress{}
	if e.progress != nil {
		task = e.progress.StartTask(e.description, len(enabledTasks))
	}
	defer task.Complete()

	g, gCtx := errgroup.WithContext(timeoutCtx)
	g.SetLimit(e.maxConcurrency)

	var errMu sync.Mutex
	var taskErrors []TaskError
	record := func(name string, err error) {
		errMu.Lock()
		taskErrors = append(taskErrors, TaskError{TaskName: name, Err: err})
		errMu.Unlock()
	}

	started := time.Now()
	for _, t := range enabledTasks {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				record(t.Name(), err)
				return nil
			}

			begin := time.Now()
			_, err := t.Execute(gCtx)
			task.Increment(1)

			e.logger.Debug("task finished",
				zap.String("task", t.Name()),
				zap.Duration("elapsed", time.Since(begin)),
				zap.Error(err),
			)

			if err != nil {
				record(t.Name(), err)
			}

			// Errors are collected separately so one failure does not cancel the rest
			return nil
		})
	}

	_ = g.Wait()

	e.logger.Debug("tasks completed",
		zap.Int("tasks", len(enabledTasks)),
		zap.Int("failed", len(taskErrors)),
		zap.Int("concurrency", e.maxConcurrency),
		zap.Duration("elapsed", time.Since(started)),
	)

	if len(taskErrors) > 0 {
		sort.Slice(taskErrors, func(i, j int) bool {
			return taskErrors[i].TaskName < taskErrors[j].TaskName
		})
		return &AggregatedError{Errors: taskErrors}
	}

	return nil
}

// filterEnabledTasks returns only tasks where IsEnabled() returns true
func (e *ParallelExecutorImpl) filterEnabledTasks(tasks []domain.ExecutableTask) []domain.ExecutableTask {
	enabled := make([]domain.ExecutableTask, 0, len(tasks))
	for _, t := range tasks {
		if t.IsEnabled() {
			enabled = append(enabled, t)
		}
	}
	return enabled
}
