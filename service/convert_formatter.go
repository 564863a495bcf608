package service

import (
	"fmt"
	"io"
	"strings"

	"github.com/ludo-technologies/protoscan/domain"
	"github.com/ludo-technologies/protoscan/internal/constants"
)

// ConvertFormatterImpl renders conversion statistics
type ConvertFormatterImpl struct {
	styler Styler
}

// NewConvertFormatter creates a convert summary formatter; a nil styler renders plain text
func NewConvertFormatter(styler Styler) *ConvertFormatterImpl {
	if styler == nil {
		styler = PlainStyler{}
	}
	return &ConvertFormatterImpl{styler: styler}
}

// Format renders the summary of a conversion
func (f *ConvertFormatterImpl) Format(resp *domain.ConvertResponse) (string, error) {
	if resp == nil {
		return "", domain.NewOutputError("no conversion to render", nil)
	}

	s := resp.Summary
	pass := f.styler.Pass(MarkerPass)

	var b strings.Builder
	fmt.Fprintf(&b, "%s Converted %d records\n", pass, s.TotalRecords)
	fmt.Fprintf(&b, "Output: %s\n\n", resp.OutputPath)

	fmt.Fprintf(&b, "%s\n", f.styler.Heading("=== Record Statistics ==="))
	fmt.Fprintf(&b, "Total records: %d\n", s.TotalRecords)
	fmt.Fprintf(&b, "Tagged records: %d/%d (%.1f%%)\n", s.TaggedRecords, s.TotalRecords, s.TaggedPercent())
	fmt.Fprintf(&b, "Git records: %d/%d (%.1f%%)\n\n", s.GitRecords, s.TotalRecords, s.GitPercent())

	fmt.Fprintf(&b, "%s\n", f.styler.Heading("=== Format Verdict ==="))
	for _, line := range []string{
		"Structure: flat, no nested objects",
		"Naming: short and direct",
		"Format: one shape for every record",
		"Size: no redundant fields",
	} {
		fmt.Fprintf(&b, "%s %s\n", pass, line)
	}
	fmt.Fprintf(&b, "\n\"%s\"\n", constants.ConvertRemark)

	return b.String(), nil
}

// Write renders the summary and writes it in one piece
func (f *ConvertFormatterImpl) Write(resp *domain.ConvertResponse, writer io.Writer) error {
	text, err := f.Format(resp)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(writer, text); err != nil {
		return domain.NewOutputError("failed to write summary", err)
	}
	return nil
}
