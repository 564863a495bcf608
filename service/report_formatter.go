package service

import (
	"fmt"
	"io"
	"strings"

	"github.com/ludo-technologies/protoscan/domain"
	"github.com/ludo-technologies/protoscan/internal/config"
)

// Styler decorates report markers and headings.
// Implementations must not change the text itself, only its presentation.
type Styler interface {
	Pass(s string) string
	Fail(s string) string
	Warn(s string) string
	Heading(s string) string
}

// PlainStyler leaves text untouched
type PlainStyler struct{}

func (PlainStyler) Pass(s string) string    { return s }
func (PlainStyler) Fail(s string) string    { return s }
func (PlainStyler) Warn(s string) string    { return s }
func (PlainStyler) Heading(s string) string { return s }

// Report markers
const (
	MarkerPass = "✓"
	MarkerFail = "✗"
	MarkerWarn = "⚠"
)

// ReportFormatterImpl renders a report as narrative text sections
type ReportFormatterImpl struct {
	maxOperations int
	maxParameters int
	successRemark string
	failureRemark string
	styler        Styler
}

// NewReportFormatter creates a report formatter; a nil styler renders plain text
func NewReportFormatter(cfg *config.Config, styler Styler) *ReportFormatterImpl {
	if styler == nil {
		styler = PlainStyler{}
	}
	return &ReportFormatterImpl{
		maxOperations: cfg.Protocols.MaxOperations,
		maxParameters: cfg.Protocols.MaxParameters,
		successRemark: cfg.Output.SuccessRemark,
		failureRemark: cfg.Output.FailureRemark,
		styler:        styler,
	}
}

// Write renders the full report into memory and writes it in one piece
func (f *ReportFormatterImpl) Write(report *domain.Report, writer io.Writer) error {
	text, err := f.Format(report)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(writer, text); err != nil {
		return domain.NewOutputError("failed to write report", err)
	}
	return nil
}

// Format renders the full report
func (f *ReportFormatterImpl) Format(report *domain.Report) (string, error) {
	if report == nil {
		return "", domain.NewOutputError("no report to render", nil)
	}

	var b strings.Builder
	f.writeProtocols(&b, report)
	f.writeProtocolVerdict(&b, report)
	f.writeNaming(&b, report.Naming)
	f.writeImplementations(&b, report)
	f.writeExtractionWarnings(&b, report)

	// No remark when no definition source was read
	remark := f.successRemark
	if !report.AllPassed {
		remark = f.failureRemark
	}
	if report.EvaluatedDefinitions() == 0 {
		remark = ""
	}
	if remark != "" {
		fmt.Fprintf(&b, "\n\"%s\"\n", remark)
	}

	return b.String(), nil
}

func (f *ReportFormatterImpl) heading(b *strings.Builder, title string) {
	fmt.Fprintf(b, "%s\n", f.styler.Heading("=== "+title+" ==="))
}

// marker returns the styled marker of a verdict
func (f *ReportFormatterImpl) marker(v domain.RuleVerdict) string {
	switch {
	case v.Passed:
		return f.styler.Pass(MarkerPass)
	case v.Blocking():
		return f.styler.Fail(MarkerFail)
	default:
		return f.styler.Warn(MarkerWarn)
	}
}

// violated returns the operator stating how a failed verdict missed its threshold
func violated(c domain.Comparison) string {
	if c == domain.ComparisonBelow {
		return "≥"
	}
	return ">"
}

func (f *ReportFormatterImpl) writeProtocols(b *strings.Builder, report *domain.Report) {
	f.heading(b, "Protocol Complexity Check")

	next := 0
	for _, src := range report.Sources {
		if src.Kind != domain.SourceKindDefinition {
			continue
		}
		fmt.Fprintf(b, "\nFile: %s\n", src.Path)
		if !src.Found {
			f.writeNotFound(b, src)
			continue
		}

		start := next
		for next < len(report.Interfaces) && report.Interfaces[next].Definition.Source == src.Path {
			f.writeInterface(b, report.Interfaces[next])
			next++
		}
		if next == start {
			fmt.Fprintf(b, "  No protocols found\n")
		}
	}
	b.WriteString("\n")
}

func (f *ReportFormatterImpl) writeInterface(b *strings.Builder, iface domain.InterfaceResult) {
	v := iface.Verdict
	fmt.Fprintf(b, "  Protocol: %s (line %d)\n", iface.Definition.Name, iface.Definition.Line)
	fmt.Fprintf(b, "    Operations: %d\n", v.Observed)
	if v.Passed {
		fmt.Fprintf(b, "    %s operation count within limit (%d %s %d)\n", f.marker(v), v.Observed, v.Comparison.Symbol(), v.Threshold)
	} else {
		fmt.Fprintf(b, "    %s too many operations: exceeds limit of %d (%d %s %d)\n", f.marker(v), v.Threshold, v.Observed, violated(v.Comparison), v.Threshold)
	}

	for _, op := range iface.Operations {
		pv := op.Verdict
		fmt.Fprintf(b, "      %s(): %s %s", op.Operation.Name, plural(pv.Observed, "parameter"), f.marker(pv))
		if !pv.Passed {
			fmt.Fprintf(b, " too many parameters: exceeds limit of %d (%d %s %d)", pv.Threshold, pv.Observed, violated(pv.Comparison), pv.Threshold)
		}
		b.WriteString("\n")
	}
}

func (f *ReportFormatterImpl) writeProtocolVerdict(b *strings.Builder, report *domain.Report) {
	f.heading(b, "Protocol Verdict")
	switch {
	case report.EvaluatedDefinitions() == 0:
		fmt.Fprintf(b, "%s No definition source could be evaluated, no verdict given\n", f.styler.Warn(MarkerWarn))
	case report.ProtocolsPassed():
		pass := f.styler.Pass(MarkerPass)
		fmt.Fprintf(b, "%s All protocols meet the standard\n", pass)
		fmt.Fprintf(b, "%s Each protocol has %s %s\n", pass, domain.ComparisonAtMost.Symbol(), plural(f.maxOperations, "method"))
		fmt.Fprintf(b, "%s Each method has %s %s\n", pass, domain.ComparisonAtMost.Symbol(), plural(f.maxParameters, "parameter"))
	default:
		fmt.Fprintf(b, "%s Some protocols do not meet the requirements and need further simplification\n", f.styler.Fail(MarkerFail))
	}
	b.WriteString("\n")
}

func (f *ReportFormatterImpl) writeNaming(b *strings.Builder, naming domain.NamingResult) {
	f.heading(b, "Method Naming (advisory)")
	fmt.Fprintf(b, "Simple names (%d): %s\n", len(naming.Simple), strings.Join(naming.Simple, ", "))
	if len(naming.Complex) > 0 {
		fmt.Fprintf(b, "Complex names (%d): %s\n", len(naming.Complex), strings.Join(naming.Complex, ", "))
	} else if naming.Total() > 0 {
		fmt.Fprintf(b, "%s All method names are simple\n", f.styler.Pass(MarkerPass))
	}

	if ratio, ok := naming.Ratio(); ok {
		fmt.Fprintf(b, "Simplicity: %d/%d = %.1f%%\n", len(naming.Simple), naming.Total(), ratio)
	} else {
		fmt.Fprintf(b, "Simplicity: n/a (no operations)\n")
	}
	b.WriteString("\n")
}

func (f *ReportFormatterImpl) writeImplementations(b *strings.Builder, report *domain.Report) {
	var sources []domain.SourceStatus
	for _, src := range report.Sources {
		if src.Kind == domain.SourceKindImplementation {
			sources = append(sources, src)
		}
	}
	if len(sources) == 0 {
		return
	}

	f.heading(b, "Implementation Complexity")
	next := 0
	for _, src := range sources {
		fmt.Fprintf(b, "\nFile: %s\n", src.Path)
		if !src.Found {
			f.writeNotFound(b, src)
			continue
		}
		if next >= len(report.Implementations) {
			continue
		}

		impl := report.Implementations[next]
		next++
		v := impl.Verdict
		fmt.Fprintf(b, "  Methods: %d\n", impl.MethodCount.Value)
		fmt.Fprintf(b, "  Lines: %d\n", impl.LineCount.Value)
		fmt.Fprintf(b, "  Complexity score: %d (conditional: %d, loop: %d, guard: %d)\n",
			impl.Complexity.Value, impl.Keywords.Conditional, impl.Keywords.Loop, impl.Keywords.Guard)
		if v.Passed {
			fmt.Fprintf(b, "  %s complexity is reasonable (%d %s %d)\n", f.marker(v), v.Observed, v.Comparison.Symbol(), v.Threshold)
		} else {
			fmt.Fprintf(b, "  %s complexity is high (%d %s %d), consider simplifying\n", f.marker(v), v.Observed, violated(v.Comparison), v.Threshold)
		}
	}
	b.WriteString("\n")
}

func (f *ReportFormatterImpl) writeExtractionWarnings(b *strings.Builder, report *domain.Report) {
	issues := report.IssuesOf(domain.IssueMalformedExtraction)
	if len(issues) == 0 {
		return
	}

	f.heading(b, "Extraction Warnings")
	for _, issue := range issues {
		fmt.Fprintf(b, "%s %s:%d: %s (skipped)\n", f.styler.Warn(MarkerWarn), issue.Source, issue.Line, issue.Message)
	}
}

func (f *ReportFormatterImpl) writeNotFound(b *strings.Builder, src domain.SourceStatus) {
	if src.Reason == "" {
		fmt.Fprintf(b, "  %s source not found\n", f.styler.Fail(MarkerFail))
		return
	}
	fmt.Fprintf(b, "  %s source not found: %s\n", f.styler.Fail(MarkerFail), src.Reason)
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
