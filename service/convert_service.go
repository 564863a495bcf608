package service

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/ludo-technologies/protoscan/domain"
	"github.com/ludo-technologies/protoscan/internal/converter"
	"go.uber.org/zap"
)

// ConvertServiceImpl implements the ConvertService interface
type ConvertServiceImpl struct {
	now    func() time.Time
	logger *zap.Logger
}

// NewConvertService creates a new convert service using the wall clock
func NewConvertService(logger *zap.Logger) *ConvertServiceImpl {
	return NewConvertServiceWithClock(time.Now, logger)
}

// NewConvertServiceWithClock creates a convert service that stamps records with now
func NewConvertServiceWithClock(now func() time.Time, logger *zap.Logger) *ConvertServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConvertServiceImpl{now: now, logger: logger}
}

// Convert reads the input record file, flattens it and writes the output file
func (s *ConvertServiceImpl) Convert(ctx context.Context, req domain.ConvertRequest) (*domain.ConvertResponse, error) {
	if req.InputPath == "" {
		return nil, domain.NewInvalidInputError("no input file given", nil)
	}
	if req.OutputPath == "" {
		return nil, domain.NewInvalidInputError("no output file given", nil)
	}
	if err := ctx.Err(); err != nil {
		return nil, domain.NewAnalysisError("conversion cancelled", err)
	}

	in, err := os.Open(req.InputPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.NewFileNotFoundError(req.InputPath, err)
		}
		return nil, domain.NewInvalidInputError("cannot open input file", err)
	}
	defer in.Close()

	raw, err := converter.Decode(in)
	if err != nil {
		return nil, domain.NewInvalidInputError("input is not a JSON array of records", err)
	}
	s.logger.Debug("read records", zap.String("path", req.InputPath), zap.Int("records", len(raw)))

	records, err := converter.Convert(raw, s.now())
	if err != nil {
		return nil, domain.NewInvalidInputError("cannot convert records", err)
	}

	if err := writeRecords(req.OutputPath, records); err != nil {
		return nil, err
	}

	summary := converter.Summarize(records)
	s.logger.Debug("wrote records",
		zap.String("path", req.OutputPath),
		zap.Int("records", summary.TotalRecords),
		zap.Int("tagged", summary.TaggedRecords),
		zap.Int("git", summary.GitRecords),
	)

	return &domain.ConvertResponse{
		Records:    records,
		Summary:    summary,
		OutputPath: req.OutputPath,
	}, nil
}

func writeRecords(path string, records []domain.ProjectRecord) error {
	out, err := os.Create(path)
	if err != nil {
		return domain.NewOutputError("cannot create output file", err)
	}
	if err := converter.Encode(out, records); err != nil {
		out.Close()
		return domain.NewOutputError("failed to write records", err)
	}
	if err := out.Close(); err != nil {
		return domain.NewOutputError("failed to write records", err)
	}
	return nil
}
