package analyzer

import (
	"github.com/ludo-technologies/protoscan/domain"
	"github.com/ludo-technologies/protoscan/internal/scanner"
)

// DefinitionAnalysis is the outcome of analyzing one definitions source
type DefinitionAnalysis struct {
	Status     domain.SourceStatus
	Interfaces []domain.InterfaceResult
	Issues     []domain.SourceIssue
}

// ImplementationAnalysis is the outcome of analyzing one implementation source
type ImplementationAnalysis struct {
	Status domain.SourceStatus
	Result *domain.ImplementationResult
	Issues []domain.SourceIssue
}

// Analyze runs the whole pipeline over already-read sources.
// It is a pure function: identical options and sources yield an identical report.
func Analyze(opts Options, definitions, implementations []domain.Source) *domain.Report {
	defs := make([]DefinitionAnalysis, len(definitions))
	for i, src := range definitions {
		defs[i] = AnalyzeDefinitions(opts, src)
	}

	impls := make([]ImplementationAnalysis, len(implementations))
	for i, src := range implementations {
		impls[i] = AnalyzeImplementation(opts, src)
	}

	return Assemble(opts, defs, impls)
}

// AnalyzeDefinitions extracts the interfaces of one definitions source and
// evaluates the protocol budgets against them
func AnalyzeDefinitions(opts Options, src domain.Source) DefinitionAnalysis {
	status := domain.SourceStatus{
		Path:   src.Path,
		Kind:   domain.SourceKindDefinition,
		Found:  !src.Missing,
		Reason: src.Reason,
	}
	if src.Missing {
		return DefinitionAnalysis{
			Status: status,
			Issues: []domain.SourceIssue{notFound(src)},
		}
	}

	s := opts.newScanner()
	defs, scanIssues := s.ExtractInterfaces(src.Path, src.Text)

	result := DefinitionAnalysis{Status: status}
	result.Issues = appendMalformed(result.Issues, src.Path, scanIssues)

	for _, def := range defs {
		ops, opIssues := s.ExtractOperations(def)
		result.Issues = appendMalformed(result.Issues, src.Path, opIssues)

		count := OperationCount(ops)
		iface := domain.InterfaceResult{
			Definition:     def,
			OperationCount: count,
			Verdict:        EvaluateOperationCount(def.Name, count, opts),
			Operations:     make([]domain.OperationResult, 0, len(ops)),
		}
		for _, op := range ops {
			params := ParameterCount(op)
			iface.Operations = append(iface.Operations, domain.OperationResult{
				Operation:      op,
				ParameterCount: params,
				Verdict:        EvaluateParameterCount(def.Name+"."+op.Name, params, opts),
			})
		}

		result.Status.Verdicts += 1 + len(iface.Operations)
		result.Interfaces = append(result.Interfaces, iface)
	}

	return result
}

// AnalyzeImplementation measures one implementation source and evaluates its complexity
func AnalyzeImplementation(opts Options, src domain.Source) ImplementationAnalysis {
	status := domain.SourceStatus{
		Path:   src.Path,
		Kind:   domain.SourceKindImplementation,
		Found:  !src.Missing,
		Reason: src.Reason,
	}
	if src.Missing {
		return ImplementationAnalysis{
			Status: status,
			Issues: []domain.SourceIssue{notFound(src)},
		}
	}

	result := MeasureImplementation(src.Path, src.Text, opts)
	result.Verdict = EvaluateComplexity(src.Path, result.Complexity, opts)
	status.Verdicts = 1

	return ImplementationAnalysis{Status: status, Result: &result}
}

// Assemble combines per-source outcomes, in input order, into a report
func Assemble(opts Options, defs []DefinitionAnalysis, impls []ImplementationAnalysis) *domain.Report {
	report := &domain.Report{
		Interfaces:      []domain.InterfaceResult{},
		Implementations: []domain.ImplementationResult{},
	}

	var names []string
	for _, d := range defs {
		report.Sources = append(report.Sources, d.Status)
		report.Issues = append(report.Issues, d.Issues...)
		for _, iface := range d.Interfaces {
			report.Interfaces = append(report.Interfaces, iface)
			for _, op := range iface.Operations {
				names = append(names, op.Operation.Name)
			}
		}
	}

	for _, impl := range impls {
		report.Sources = append(report.Sources, impl.Status)
		report.Issues = append(report.Issues, impl.Issues...)
		if impl.Result != nil {
			report.Implementations = append(report.Implementations, *impl.Result)
		}
	}

	report.Naming = ClassifyNames(names, opts)
	report.AllPassed = AllPassed(report.Verdicts())

	return report
}

func notFound(src domain.Source) domain.SourceIssue {
	msg := src.Reason
	if msg == "" {
		msg = "source not found"
	}
	return domain.SourceIssue{
		Kind:    domain.IssueSourceNotFound,
		Source:  src.Path,
		Message: msg,
	}
}

func appendMalformed(dst []domain.SourceIssue, path string, issues []scanner.Issue) []domain.SourceIssue {
	for _, issue := range issues {
		dst = append(dst, domain.SourceIssue{
			Kind:    domain.IssueMalformedExtraction,
			Source:  path,
			Line:    issue.Line,
			Message: issue.Message,
		})
	}
	return dst
}
