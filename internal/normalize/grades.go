package normalize

import (
	"fmt"
	"regexp"
	"strings"
)

// gradeAges is the closed grade→age table. It is meant to be exhaustive
// for the camps the pipeline covers; a label outside it means the table
// needs updating, which is a configuration defect rather than ordinary
// missing data.
var gradeAges = map[string][2]int{
	"K":  {5, 6},
	"1":  {6, 7},
	"2":  {7, 8},
	"3":  {8, 9},
	"4":  {9, 10},
	"5":  {10, 11},
	"6":  {11, 12},
	"7":  {12, 13},
	"8":  {13, 14},
	"9":  {14, 15},
	"10": {16, 17},
}

// UnknownGradeError reports a grade label missing from the closed table.
// It is a configuration error: callers fail fast on it instead of
// substituting a sentinel.
type UnknownGradeError struct {
	Label string
}

func (e *UnknownGradeError) Error() string {
	return fmt.Sprintf("grade label %q not in age table", e.Label)
}

var gradeSplit = regexp.MustCompile(`\s*[-–]\s*`)

// GradeRange maps a grade label or two-endpoint grade range to an
// inclusive age range: "K - 3" → "5 - 9". The start label contributes its
// minimum age and the end label its maximum.
func GradeRange(raw string) (string, error) {
	parts := gradeSplit.Split(strings.TrimSpace(raw), -1)
	start := strings.TrimSpace(parts[0])
	end := strings.TrimSpace(parts[len(parts)-1])

	lo, ok := gradeAges[start]
	if !ok {
		return "", &UnknownGradeError{Label: start}
	}
	hi, ok := gradeAges[end]
	if !ok {
		return "", &UnknownGradeError{Label: end}
	}
	return fmt.Sprintf("%d - %d", lo[0], hi[1]), nil
}
