package analyzer

import (
	"testing"

	"github.com/ludo-technologies/protoscan/domain"
)

func TestEvaluateOperationCount(t *testing.T) {
	opts := DefaultOptions()

	tests := []struct {
		observed int
		want     bool
	}{
		{0, true},
		{5, true},
		{6, false},
	}

	for _, tt := range tests {
		v := EvaluateOperationCount("P", domain.Metric{Name: domain.MetricOperationCount, Value: tt.observed}, opts)
		if v.Passed != tt.want {
			t.Errorf("operation_count %d: expected passed=%v", tt.observed, tt.want)
		}
		if v.Severity != domain.SeverityError || v.Comparison != domain.ComparisonAtMost {
			t.Errorf("Unexpected verdict shape: %+v", v)
		}
	}
}

func TestEvaluateParameterCount(t *testing.T) {
	opts := DefaultOptions()

	if !EvaluateParameterCount("P.a", domain.Metric{Name: domain.MetricParameterCount, Value: 3}, opts).Passed {
		t.Error("3 parameters should pass")
	}
	if EvaluateParameterCount("P.a", domain.Metric{Name: domain.MetricParameterCount, Value: 4}, opts).Passed {
		t.Error("4 parameters should fail")
	}
}

func TestEvaluateComplexity_StrictBound(t *testing.T) {
	opts := DefaultOptions()

	if !EvaluateComplexity("f", domain.Metric{Name: domain.MetricComplexityScore, Value: 19}, opts).Passed {
		t.Error("19 should pass")
	}
	v := EvaluateComplexity("f", domain.Metric{Name: domain.MetricComplexityScore, Value: 20}, opts)
	if v.Passed {
		t.Error("20 should not pass a strict < 20 bound")
	}
	if v.Blocking() {
		t.Error("Complexity should be advisory by default")
	}
}

func TestAllPassed_Conjunction(t *testing.T) {
	pass := domain.RuleVerdict{Passed: true, Severity: domain.SeverityError}
	fail := domain.RuleVerdict{Passed: false, Severity: domain.SeverityError}
	warn := domain.RuleVerdict{Passed: false, Severity: domain.SeverityWarning}

	tests := []struct {
		name     string
		verdicts []domain.RuleVerdict
		want     bool
	}{
		{"empty", nil, true},
		{"all pass", []domain.RuleVerdict{pass, pass}, true},
		{"advisory failure", []domain.RuleVerdict{pass, warn}, true},
		{"fail first", []domain.RuleVerdict{fail, pass, warn}, false},
		{"fail last", []domain.RuleVerdict{warn, pass, fail}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AllPassed(tt.verdicts); got != tt.want {
				t.Errorf("AllPassed = %v, want %v", got, tt.want)
			}
			reversed := make([]domain.RuleVerdict, len(tt.verdicts))
			for i, v := range tt.verdicts {
				reversed[len(tt.verdicts)-1-i] = v
			}
			if got := AllPassed(reversed); got != tt.want {
				t.Errorf("AllPassed should not depend on order")
			}
		})
	}
}

func TestIsSimpleName(t *testing.T) {
	opts := DefaultOptions()

	tests := []struct {
		name string
		want bool
	}{
		{"add", true},
		{"remove", true},
		{"append", true},
		{"removes", false},
		{"do_it", false},
		{"éééééé", true},
		{"👍🏽👍🏽", true},
	}

	for _, tt := range tests {
		if got := IsSimpleName(tt.name, opts); got != tt.want {
			t.Errorf("IsSimpleName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
