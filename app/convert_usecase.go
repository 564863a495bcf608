package app

import (
	"context"
	"io"

	"github.com/ludo-technologies/protoscan/domain"
)

// ConvertUseCase runs the record converter and prints its summary
type ConvertUseCase struct {
	service   domain.ConvertService
	formatter domain.ConvertSummaryFormatter
}

// NewConvertUseCase creates a new convert use case
func NewConvertUseCase(service domain.ConvertService, formatter domain.ConvertSummaryFormatter) *ConvertUseCase {
	return &ConvertUseCase{service: service, formatter: formatter}
}

// Execute converts the input file and writes the summary to writer
func (uc *ConvertUseCase) Execute(ctx context.Context, req domain.ConvertRequest, writer io.Writer) (*domain.ConvertResponse, error) {
	resp, err := uc.service.Convert(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := uc.formatter.Write(resp, writer); err != nil {
		return nil, err
	}
	return resp, nil
}
