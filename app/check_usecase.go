package app

import (
	"context"
	"fmt"
	"os"

	"github.com/ludo-technologies/protoscan/domain"
)

// CheckUseCase orchestrates the protocol check workflow
type CheckUseCase struct {
	service    domain.CheckService
	formatter  domain.ReportFormatter
	fileHelper *FileHelper
}

// NewCheckUseCase creates a new check use case
func NewCheckUseCase(service domain.CheckService, formatter domain.ReportFormatter) *CheckUseCase {
	return &CheckUseCase{
		service:    service,
		formatter:  formatter,
		fileHelper: NewFileHelper(),
	}
}

// Execute resolves the requested paths, runs the check and renders the report.
// The report is returned together with an analysis error when none of the
// definition sources could be read.
func (uc *CheckUseCase) Execute(ctx context.Context, req domain.CheckRequest) (*domain.Report, error) {
	if err := uc.validateRequest(req); err != nil {
		return nil, domain.NewInvalidInputError("invalid request", err)
	}

	opts := CollectOptions{
		Recursive:        req.Recursive,
		RespectGitignore: req.RespectGitignore,
		IncludePatterns:  req.IncludePatterns,
		ExcludePatterns:  req.ExcludePatterns,
	}

	defs, err := uc.fileHelper.ResolvePaths(req.DefinitionPaths, opts)
	if err != nil {
		return nil, domain.NewInvalidInputError("failed to collect definition files", err)
	}
	if len(defs) == 0 {
		return nil, domain.NewInvalidInputError("no definition files found in the specified paths", nil)
	}

	impls, err := uc.fileHelper.ResolvePaths(req.ImplementationPaths, opts)
	if err != nil {
		return nil, domain.NewInvalidInputError("failed to collect implementation files", err)
	}

	req.DefinitionPaths = defs
	req.ImplementationPaths = impls

	report, err := uc.service.Check(ctx, req)
	if err != nil {
		return nil, err
	}

	writer := req.OutputWriter
	if writer == nil {
		writer = os.Stdout
	}
	if err := uc.formatter.Write(report, writer); err != nil {
		return nil, err
	}

	if report.EvaluatedDefinitions() == 0 {
		return report, domain.NewAnalysisError("no definition source could be read", nil)
	}
	return report, nil
}

// validateRequest validates the check request
func (uc *CheckUseCase) validateRequest(req domain.CheckRequest) error {
	if len(req.DefinitionPaths) == 0 {
		return fmt.Errorf("no definition files specified")
	}
	if len(req.IncludePatterns) == 0 {
		return fmt.Errorf("no include patterns specified")
	}
	return nil
}

// CheckUseCaseBuilder provides a builder pattern for creating CheckUseCase
type CheckUseCaseBuilder struct {
	service    domain.CheckService
	formatter  domain.ReportFormatter
	fileHelper *FileHelper
}

// NewCheckUseCaseBuilder creates a new builder
func NewCheckUseCaseBuilder() *CheckUseCaseBuilder {
	return &CheckUseCaseBuilder{}
}

// WithService sets the check service
func (b *CheckUseCaseBuilder) WithService(service domain.CheckService) *CheckUseCaseBuilder {
	b.service = service
	return b
}

// WithFormatter sets the report formatter
func (b *CheckUseCaseBuilder) WithFormatter(formatter domain.ReportFormatter) *CheckUseCaseBuilder {
	b.formatter = formatter
	return b
}

// WithFileHelper sets the file helper
func (b *CheckUseCaseBuilder) WithFileHelper(fileHelper *FileHelper) *CheckUseCaseBuilder {
	b.fileHelper = fileHelper
	return b
}

// Build creates the CheckUseCase with the configured dependencies
func (b *CheckUseCaseBuilder) Build() (*CheckUseCase, error) {
	if b.service == nil {
		return nil, fmt.Errorf("check service is required")
	}
	if b.formatter == nil {
		return nil, fmt.Errorf("report formatter is required")
	}

	uc := &CheckUseCase{
		service:    b.service,
		formatter:  b.formatter,
		fileHelper: b.fileHelper,
	}
	if uc.fileHelper == nil {
		uc.fileHelper = NewFileHelper()
	}

	return uc, nil
}
