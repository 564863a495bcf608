package analyzer

import (
	"strings"

	"github.com/ludo-technologies/protoscan/domain"
	"github.com/ludo-technologies/protoscan/internal/scanner"
	"github.com/rivo/uniseg"
)

// OperationCount returns the number of operations declared by an interface
func OperationCount(ops []domain.OperationSignature) domain.Metric {
	return domain.Metric{Name: domain.MetricOperationCount, Value: len(ops)}
}

// ParameterCount returns the number of parameters of an operation
func ParameterCount(op domain.OperationSignature) domain.Metric {
	return domain.Metric{Name: domain.MetricParameterCount, Value: scanner.CountParameters(op.RawParameters)}
}

// CountKeywords counts whole-word keyword occurrences per class, ignoring
// comments and string literals
func CountKeywords(text string, opts Options) domain.KeywordCounts {
	masked := scanner.Mask(text)
	return domain.KeywordCounts{
		Conditional: countAll(masked, opts.ConditionalKeywords),
		Loop:        countAll(masked, opts.LoopKeywords),
		Guard:       countAll(masked, opts.GuardKeywords),
	}
}

func countAll(text string, keywords []string) int {
	total := 0
	for _, kw := range keywords {
		total += scanner.CountWord(text, kw)
	}
	return total
}

// MeasureImplementation computes the metrics of one implementation file
func MeasureImplementation(path, text string, opts Options) domain.ImplementationResult {
	keywords := CountKeywords(text, opts)
	return domain.ImplementationResult{
		Path:        path,
		MethodCount: domain.Metric{Name: domain.MetricMethodCount, Value: opts.newScanner().CountMethods(text)},
		LineCount:   domain.Metric{Name: domain.MetricLineCount, Value: scanner.LineCount(text)},
		Complexity:  domain.Metric{Name: domain.MetricComplexityScore, Value: keywords.Score()},
		Keywords:    keywords,
	}
}

// IsSimpleName reports whether an operation name is short and free of separators.
// Length is measured in user-perceived characters.
func IsSimpleName(name string, opts Options) bool {
	if opts.NameSeparators != "" && strings.ContainsAny(name, opts.NameSeparators) {
		return false
	}
	return uniseg.GraphemeClusterCount(name) <= opts.NameMaxLength
}

// ClassifyNames splits names into simple and complex, keeping their order
func ClassifyNames(names []string, opts Options) domain.NamingResult {
	result := domain.NamingResult{Simple: []string{}, Complex: []string{}}
	for _, name := range names {
		if IsSimpleName(name, opts) {
			result.Simple = append(result.Simple, name)
		} else {
			result.Complex = append(result.Complex, name)
		}
	}
	return result
}
