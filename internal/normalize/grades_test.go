package normalize

import (
	"errors"
	"testing"
)

func TestGradeRange(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"kindergarten to third", "K - 3", "5 - 9"},
		{"single grade", "5", "10 - 11"},
		{"numeric range", "1 - 8", "6 - 14"},
		{"tenth grade cap", "9 - 10", "14 - 17"},
		{"en dash separator", "K – 5", "5 - 11"},
		{"tight spacing", "K-3", "5 - 9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GradeRange(tt.raw)
			if err != nil {
				t.Fatalf("GradeRange(%q) error = %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("GradeRange(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

// A label outside the closed table is a configuration defect, not missing
// data: it must surface as a typed error rather than a sentinel.
func TestGradeRange_UnknownLabel(t *testing.T) {
	_, err := GradeRange("Pre-K - 3")
	if err == nil {
		t.Fatal("GradeRange() expected error for unknown label")
	}

	var gradeErr *UnknownGradeError
	if !errors.As(err, &gradeErr) {
		t.Fatalf("GradeRange() error = %T, want *UnknownGradeError", err)
	}
	if gradeErr.Label != "Pre" {
		t.Errorf("UnknownGradeError.Label = %q, want %q", gradeErr.Label, "Pre")
	}
}
