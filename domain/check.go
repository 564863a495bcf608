package domain

import (
	"context"
	"io"
)

// Severity describes whether a verdict gates the aggregate result
type Severity string

const (
	// SeverityError verdicts are blocking: a failure flips AllPassed
	SeverityError Severity = "error"
	// SeverityWarning verdicts are advisory and never affect AllPassed
	SeverityWarning Severity = "warning"
)

// Comparison describes how an observed value is compared to its threshold
type Comparison string

const (
	// ComparisonAtMost passes when observed <= threshold
	ComparisonAtMost Comparison = "at_most"
	// ComparisonBelow passes when observed < threshold
	ComparisonBelow Comparison = "below"
)

// Holds reports whether observed satisfies the comparison against threshold
func (c Comparison) Holds(observed, threshold int) bool {
	if c == ComparisonBelow {
		return observed < threshold
	}
	return observed <= threshold
}

// Symbol returns the comparison operator used in rendered reports
func (c Comparison) Symbol() string {
	if c == ComparisonBelow {
		return "<"
	}
	return "≤"
}

// MetricName identifies a derived metric
type MetricName string

const (
	MetricOperationCount  MetricName = "operation_count"
	MetricParameterCount  MetricName = "parameter_count"
	MetricComplexityScore MetricName = "complexity_score"
	MetricMethodCount     MetricName = "method_count"
	MetricLineCount       MetricName = "line_count"
)

// Rule identifiers
const (
	RuleMaxOperations = "max-operations"
	RuleMaxParameters = "max-parameters"
	RuleMaxComplexity = "max-complexity"
)

// Metric is a named non-negative value attached to an interface, an operation or a file
type Metric struct {
	Name  MetricName
	Value int
}

// Source is one input unit handed to the analysis core.
// Text is already read; Missing marks a source whose content could not be read.
type Source struct {
	Path    string
	Text    string
	Missing bool
	Reason  string
}

// InterfaceDefinition is one protocol-style declaration found in a definitions file
type InterfaceDefinition struct {
	Name     string
	Body     string
	Line     int
	BodyLine int
	Source   string
}

// OperationSignature is one declared operation of an interface
type OperationSignature struct {
	Name          string
	RawParameters string
	Line          int
}

// RuleVerdict is the outcome of applying one threshold to one metric
type RuleVerdict struct {
	Subject    string
	Rule       string
	Metric     MetricName
	Threshold  int
	Observed   int
	Comparison Comparison
	Passed     bool
	Severity   Severity
}

// Blocking reports whether the verdict participates in the aggregate result
func (v RuleVerdict) Blocking() bool {
	return v.Severity == SeverityError
}

// OperationResult pairs an operation with its parameter verdict
type OperationResult struct {
	Operation      OperationSignature
	ParameterCount Metric
	Verdict        RuleVerdict
}

// InterfaceResult is the analysis of one interface definition
type InterfaceResult struct {
	Definition     InterfaceDefinition
	OperationCount Metric
	Verdict        RuleVerdict
	Operations     []OperationResult
}

// Passed reports whether the interface and all of its operations passed
func (r InterfaceResult) Passed() bool {
	if !r.Verdict.Passed {
		return false
	}
	for _, op := range r.Operations {
		if !op.Verdict.Passed {
			return false
		}
	}
	return true
}

// NamingResult is the advisory naming-simplicity classification
type NamingResult struct {
	Simple  []string
	Complex []string
}

// Total returns the number of classified names
func (n NamingResult) Total() int {
	return len(n.Simple) + len(n.Complex)
}

// Ratio returns the share of simple names in percent; ok is false when no names exist
func (n NamingResult) Ratio() (percent float64, ok bool) {
	total := n.Total()
	if total == 0 {
		return 0, false
	}
	return float64(len(n.Simple)) * 100 / float64(total), true
}

// KeywordCounts holds per-keyword-class occurrence counts of an implementation file
type KeywordCounts struct {
	Conditional int
	Loop        int
	Guard       int
}

// Score returns the complexity score
func (k KeywordCounts) Score() int {
	return k.Conditional + k.Loop + k.Guard
}

// ImplementationResult is the analysis of one implementation file
type ImplementationResult struct {
	Path        string
	MethodCount Metric
	LineCount   Metric
	Complexity  Metric
	Keywords    KeywordCounts
	Verdict     RuleVerdict
}

// IssueKind classifies non-verdict outcomes of a run
type IssueKind string

const (
	IssueSourceNotFound      IssueKind = "source_not_found"
	IssueMalformedExtraction IssueKind = "malformed_extraction"
)

// SourceIssue is a condition that prevented some unit from being evaluated
type SourceIssue struct {
	Kind    IssueKind
	Source  string
	Line    int
	Message string
}

// SourceKind distinguishes the two kinds of input files
type SourceKind string

const (
	SourceKindDefinition     SourceKind = "definition"
	SourceKindImplementation SourceKind = "implementation"
)

// SourceStatus records whether an input source was evaluated
type SourceStatus struct {
	Path     string
	Kind     SourceKind
	Found    bool
	Reason   string
	Verdicts int
}

// Report is the complete outcome of one run
type Report struct {
	Sources         []SourceStatus
	Interfaces      []InterfaceResult
	Naming          NamingResult
	Implementations []ImplementationResult
	Issues          []SourceIssue
	AllPassed       bool
}

// Verdicts returns every verdict of the run in report order
func (r *Report) Verdicts() []RuleVerdict {
	var verdicts []RuleVerdict
	for _, iface := range r.Interfaces {
		verdicts = append(verdicts, iface.Verdict)
		for _, op := range iface.Operations {
			verdicts = append(verdicts, op.Verdict)
		}
	}
	for _, impl := range r.Implementations {
		verdicts = append(verdicts, impl.Verdict)
	}
	return verdicts
}

// ProtocolsPassed reports whether every interface-level verdict passed
func (r *Report) ProtocolsPassed() bool {
	for _, iface := range r.Interfaces {
		if !iface.Passed() {
			return false
		}
	}
	return true
}

// IssuesOf returns the issues of one kind
func (r *Report) IssuesOf(kind IssueKind) []SourceIssue {
	var issues []SourceIssue
	for _, issue := range r.Issues {
		if issue.Kind == kind {
			issues = append(issues, issue)
		}
	}
	return issues
}

// EvaluatedDefinitions returns the number of definition sources that were read
func (r *Report) EvaluatedDefinitions() int {
	n := 0
	for _, s := range r.Sources {
		if s.Kind == SourceKindDefinition && s.Found {
			n++
		}
	}
	return n
}

// CheckRequest represents a request for a protocol complexity check
type CheckRequest struct {
	// Definition files (or directories) containing interface declarations
	DefinitionPaths []string

	// Implementation files (or directories) inspected for complexity
	ImplementationPaths []string

	// Output configuration
	OutputWriter io.Writer

	// Configuration
	ConfigPath string

	// Analysis options
	Recursive        bool
	RespectGitignore bool
	IncludePatterns  []string
	ExcludePatterns  []string
}

// CheckService defines the core business logic for protocol checks
type CheckService interface {
	// Check analyzes the given definition and implementation files
	Check(ctx context.Context, req CheckRequest) (*Report, error)
}

// ReportFormatter renders a report as narrative text
type ReportFormatter interface {
	// Format renders the full report
	Format(report *Report) (string, error)

	// Write renders the report and writes it in one piece
	Write(report *Report, writer io.Writer) error
}
