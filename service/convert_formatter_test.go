package service

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/protoscan/domain"
	"github.com/ludo-technologies/protoscan/internal/constants"
)

func TestConvertFormatter_Format(t *testing.T) {
	resp := &domain.ConvertResponse{
		Summary:    domain.ConvertSummary{TotalRecords: 4, TaggedRecords: 1, GitRecords: 3},
		OutputPath: "flat.json",
	}

	text, err := NewConvertFormatter(nil).Format(resp)
	require.NoError(t, err)

	assert.Contains(t, text, "✓ Converted 4 records")
	assert.Contains(t, text, "Output: flat.json")
	assert.Contains(t, text, "Tagged records: 1/4 (25.0%)")
	assert.Contains(t, text, "Git records: 3/4 (75.0%)")
	assert.Contains(t, text, constants.ConvertRemark)
}

func TestConvertFormatter_NoRecords(t *testing.T) {
	text, err := NewConvertFormatter(nil).Format(&domain.ConvertResponse{OutputPath: "flat.json"})
	require.NoError(t, err)
	assert.Contains(t, text, "Tagged records: 0/0 (0.0%)")
}

func TestConvertFormatter_Write(t *testing.T) {
	formatter := NewConvertFormatter(bracketStyler{})

	var buf bytes.Buffer
	require.NoError(t, formatter.Write(&domain.ConvertResponse{}, &buf))
	assert.Contains(t, buf.String(), "#=== Record Statistics ===")
	assert.Contains(t, buf.String(), "[✓] Converted 0 records")

	err := formatter.Write(&domain.ConvertResponse{}, failingWriter{})
	assert.Equal(t, domain.ErrCodeOutputError, domain.ErrorCode(err))

	_, err = formatter.Format(nil)
	assert.Error(t, err)
}
