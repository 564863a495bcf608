package domain

import (
	"context"
	"encoding/json"
	"io"
)

// ProjectRecord is one flat record written by the converter.
// Field order matches the output contract.
type ProjectRecord struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Path          string      `json:"path"`
	Tags          []string    `json:"tags"`
	MTime         json.Number `json:"mtime"`
	Size          json.Number `json:"size"`
	Created       json.Number `json:"created"`
	GitCommits    json.Number `json:"git_commits"`
	GitLastCommit json.Number `json:"git_last_commit"`
	Checksum      string      `json:"checksum"`
	Checked       int64       `json:"checked"`
}

// ConvertSummary provides aggregate statistics of a conversion
type ConvertSummary struct {
	TotalRecords  int
	TaggedRecords int
	GitRecords    int
}

// TaggedPercent returns the tagged share in percent
func (s ConvertSummary) TaggedPercent() float64 {
	return percentOf(s.TaggedRecords, s.TotalRecords)
}

// GitPercent returns the git share in percent
func (s ConvertSummary) GitPercent() float64 {
	return percentOf(s.GitRecords, s.TotalRecords)
}

func percentOf(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) * 100 / float64(total)
}

// ConvertRequest represents a request to reshape a record file
type ConvertRequest struct {
	InputPath  string
	OutputPath string
}

// ConvertResponse is the outcome of a conversion
type ConvertResponse struct {
	Records    []ProjectRecord
	Summary    ConvertSummary
	OutputPath string
}

// ConvertService reshapes nested project records into flat records
type ConvertService interface {
	Convert(ctx context.Context, req ConvertRequest) (*ConvertResponse, error)
}

// ConvertSummaryFormatter renders the outcome of a conversion
type ConvertSummaryFormatter interface {
	Write(resp *ConvertResponse, writer io.Writer) error
}
