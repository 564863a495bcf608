package service

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/ludo-technologies/protoscan/domain"
	"github.com/ludo-technologies/protoscan/internal/testutil"
)

func newTestConvertService(t *testing.T) *ConvertServiceImpl {
	return NewConvertServiceWithClock(func() time.Time { return time.Unix(1700000000, 0) }, zaptest.NewLogger(t))
}

func TestConvertService_Convert(t *testing.T) {
	dir := t.TempDir()
	input := testutil.WriteFile(t, dir, "projects.json", `[
		{"id": "a", "path": "/a", "tags": ["x"], "gitInfo": {"commitCount": 3}, "checksum": "1_1"},
		{"id": "b", "path": "/b"}
	]`)
	output := filepath.Join(dir, "flat.json")

	resp, err := newTestConvertService(t).Convert(context.Background(), domain.ConvertRequest{
		InputPath:  input,
		OutputPath: output,
	})
	require.NoError(t, err)

	assert.Equal(t, output, resp.OutputPath)
	assert.Equal(t, domain.ConvertSummary{TotalRecords: 2, TaggedRecords: 1, GitRecords: 1}, resp.Summary)

	data, err := os.ReadFile(output)
	require.NoError(t, err)

	var written []map[string]any
	require.NoError(t, json.Unmarshal(data, &written))
	require.Len(t, written, 2)
	assert.Equal(t, float64(1700000000), written[0]["checked"])
	assert.Regexp(t, `^sha256:[0-9a-f]{16}$`, written[0]["checksum"])
	assert.Equal(t, "", written[1]["checksum"])
}

func TestConvertService_Errors(t *testing.T) {
	dir := t.TempDir()
	bad := testutil.WriteFile(t, dir, "bad.json", `{"not": "an array"}`)
	good := testutil.WriteFile(t, dir, "good.json", `[]`)

	tests := []struct {
		name string
		req  domain.ConvertRequest
		code string
	}{
		{"no input", domain.ConvertRequest{OutputPath: "out.json"}, domain.ErrCodeInvalidInput},
		{"no output", domain.ConvertRequest{InputPath: good}, domain.ErrCodeInvalidInput},
		{"missing input", domain.ConvertRequest{InputPath: filepath.Join(dir, "none.json"), OutputPath: filepath.Join(dir, "o.json")}, domain.ErrCodeFileNotFound},
		{"invalid input", domain.ConvertRequest{InputPath: bad, OutputPath: filepath.Join(dir, "o.json")}, domain.ErrCodeInvalidInput},
		{"unwritable output", domain.ConvertRequest{InputPath: good, OutputPath: filepath.Join(dir, "missing", "o.json")}, domain.ErrCodeOutputError},
	}

	svc := newTestConvertService(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Convert(context.Background(), tt.req)
			require.Error(t, err)
			assert.Equal(t, tt.code, domain.ErrorCode(err))
		})
	}
}
