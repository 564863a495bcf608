// Package converter flattens nested project records into the flat record format.
package converter

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/ludo-technologies/protoscan/domain"
)

// ChecksumPrefix marks checksums produced by the converter
const ChecksumPrefix = "sha256:"

// checksumLength is the number of hex characters kept from the digest
const checksumLength = 16

// Source field names
const (
	fieldID             = "id"
	fieldName           = "name"
	fieldPath           = "path"
	fieldTags           = "tags"
	fieldFileSystemInfo = "fileSystemInfo"
	fieldModTime        = "modificationTime"
	fieldSize           = "size"
	fieldLastModified   = "lastModified"
	fieldGitInfo        = "gitInfo"
	fieldCommitCount    = "commitCount"
	fieldLastCommitDate = "lastCommitDate"
	fieldChecksum       = "checksum"
)

var zero = json.Number("0")

// Decode reads a JSON array of records. Numbers are kept as written.
func Decode(r io.Reader) ([]map[string]any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var records []map[string]any
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	return records, nil
}

// Convert flattens every record; checked is stamped from now
func Convert(records []map[string]any, now time.Time) ([]domain.ProjectRecord, error) {
	out := make([]domain.ProjectRecord, 0, len(records))
	checked := now.Unix()

	for i, src := range records {
		rec, err := convertRecord(src, checked)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func convertRecord(src map[string]any, checked int64) (domain.ProjectRecord, error) {
	fsInfo := object(src, fieldFileSystemInfo)
	gitInfo := object(src, fieldGitInfo)

	rec := domain.ProjectRecord{
		ID:      text(src[fieldID]),
		Name:    text(src[fieldName]),
		Path:    text(src[fieldPath]),
		Tags:    tags(src[fieldTags]),
		Checked: checked,
	}

	var err error
	numbers := []struct {
		dst   *json.Number
		from  map[string]any
		field string
	}{
		{&rec.MTime, fsInfo, fieldModTime},
		{&rec.Size, fsInfo, fieldSize},
		{&rec.Created, src, fieldLastModified},
		{&rec.GitCommits, gitInfo, fieldCommitCount},
		{&rec.GitLastCommit, gitInfo, fieldLastCommitDate},
	}
	for _, n := range numbers {
		if *n.dst, err = number(n.from, n.field); err != nil {
			return domain.ProjectRecord{}, err
		}
	}

	if text(src[fieldChecksum]) != "" {
		rec.Checksum = Checksum(rec.Path, raw(src[fieldLastModified]))
	}
	return rec, nil
}

// Checksum derives the short content-free checksum of a record from its path and modification stamp
func Checksum(path, lastModified string) string {
	sum := sha256.Sum256([]byte(path + lastModified))
	return ChecksumPrefix + hex.EncodeToString(sum[:])[:checksumLength]
}

// Summarize counts tagged records and records with git history
func Summarize(records []domain.ProjectRecord) domain.ConvertSummary {
	summary := domain.ConvertSummary{TotalRecords: len(records)}
	for _, rec := range records {
		if len(rec.Tags) > 0 {
			summary.TaggedRecords++
		}
		if commits, err := rec.GitCommits.Float64(); err == nil && commits > 0 {
			summary.GitRecords++
		}
	}
	return summary
}

// Encode writes records as an indented JSON array, keeping non-ASCII text as is
func Encode(w io.Writer, records []domain.ProjectRecord) error {
	if records == nil {
		records = []domain.ProjectRecord{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(records)
}

func object(src map[string]any, field string) map[string]any {
	if m, ok := src[field].(map[string]any); ok {
		return m
	}
	return nil
}

func number(src map[string]any, field string) (json.Number, error) {
	switch v := src[field].(type) {
	case nil:
		return zero, nil
	case json.Number:
		return v, nil
	default:
		return "", fmt.Errorf("%s: expected number, got %T", field, v)
	}
}

func text(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return raw(s)
	}
}

// raw renders a decoded value the way it appeared in the source
func raw(v any) string {
	switch s := v.(type) {
	case nil:
		return zero.String()
	case string:
		return s
	case json.Number:
		return s.String()
	default:
		b, err := json.Marshal(s)
		if err != nil {
			return fmt.Sprint(s)
		}
		return string(b)
	}
}

func tags(v any) []string {
	items, _ := v.([]any)
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, text(item))
	}
	return out
}
