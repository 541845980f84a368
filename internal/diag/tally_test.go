package diag

import (
	"testing"

	"playground/internal/source"
)

func mk(sev Severity) Diagnostic {
	return New(sev, UnknownCode, source.NoSpan, "x")
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		name  string
		items []Diagnostic
		want  Tally
		abort bool
	}{
		{"empty", nil, Tally{}, false},
		{"info only", []Diagnostic{mk(SevInfo), mk(SevInfo)}, Tally{Info: 2}, false},
		{"warnings never abort", []Diagnostic{mk(SevWarning), mk(SevInfo), mk(SevWarning)}, Tally{Info: 1, Warnings: 2}, false},
		{"single error aborts", []Diagnostic{mk(SevWarning), mk(SevError)}, Tally{Warnings: 1, Errors: 1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, abort := Aggregate(tt.items)
			if got != tt.want || abort != tt.abort {
				t.Fatalf("Aggregate = %+v/%v, want %+v/%v", got, abort, tt.want, tt.abort)
			}
		})
	}
}

func TestTallySummaryPluralization(t *testing.T) {
	tests := []struct {
		tally Tally
		want  string
	}{
		{Tally{}, "0 messages (0 info, 0 warnings, 0 errors)"},
		{Tally{Warnings: 1}, "1 message (0 info, 1 warning, 0 errors)"},
		{Tally{Errors: 1}, "1 message (0 info, 0 warnings, 1 error)"},
		{Tally{Info: 1, Warnings: 2, Errors: 3}, "6 messages (1 info, 2 warnings, 3 errors)"},
		{Tally{Info: 2}, "2 messages (2 info, 0 warnings, 0 errors)"},
	}
	for _, tt := range tests {
		if got := tt.tally.Summary(); got != tt.want {
			t.Errorf("Summary(%+v) = %q, want %q", tt.tally, got, tt.want)
		}
	}
}

func TestSeverityIsError(t *testing.T) {
	if SevInfo.IsError() || SevWarning.IsError() || !SevError.IsError() {
		t.Fatal("unexpected IsError classification")
	}
}
