package analyzer

import "github.com/ludo-technologies/protoscan/domain"

func newVerdict(subject, rule string, m domain.Metric, threshold int, cmp domain.Comparison, severity domain.Severity) domain.RuleVerdict {
	return domain.RuleVerdict{
		Subject:    subject,
		Rule:       rule,
		Metric:     m.Name,
		Threshold:  threshold,
		Observed:   m.Value,
		Comparison: cmp,
		Passed:     cmp.Holds(m.Value, threshold),
		Severity:   severity,
	}
}

// EvaluateOperationCount applies the per-interface operation budget
func EvaluateOperationCount(subject string, m domain.Metric, opts Options) domain.RuleVerdict {
	return newVerdict(subject, domain.RuleMaxOperations, m, opts.MaxOperations, domain.ComparisonAtMost, domain.SeverityError)
}

// EvaluateParameterCount applies the per-operation parameter budget
func EvaluateParameterCount(subject string, m domain.Metric, opts Options) domain.RuleVerdict {
	return newVerdict(subject, domain.RuleMaxParameters, m, opts.MaxParameters, domain.ComparisonAtMost, domain.SeverityError)
}

// EvaluateComplexity applies the implementation complexity bound.
// The verdict is advisory unless complexity is configured as blocking.
func EvaluateComplexity(subject string, m domain.Metric, opts Options) domain.RuleVerdict {
	severity := domain.SeverityWarning
	if opts.ComplexityBlocking {
		severity = domain.SeverityError
	}
	return newVerdict(subject, domain.RuleMaxComplexity, m, opts.MaxComplexity, domain.ComparisonBelow, severity)
}

// AllPassed is the conjunction of every blocking verdict; advisory verdicts never affect it
func AllPassed(verdicts []domain.RuleVerdict) bool {
	for _, v := range verdicts {
		if v.Blocking() && !v.Passed {
			return false
		}
	}
	return true
}
