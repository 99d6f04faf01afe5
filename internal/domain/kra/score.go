package kra

import (
	"regexp"
	"strconv"
	"strings"
)

var leadingDecimal = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// ParseDecimal reads the leading numeric prefix of s ("50%" parses as 50) and
// returns 0 for anything without one.
func ParseDecimal(s string) float64 {
	match := leadingDecimal.FindString(strings.TrimSpace(s))
	if match == "" {
		return 0
	}
	value, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return value
}

// FormatGoalScore returns weightage*completion/100 formatted to two decimal
// places, reading blank or non-numeric inputs as 0.
func FormatGoalScore(weightage, completion string) string {
	score := ParseDecimal(weightage) * ParseDecimal(completion) / 100
	return strconv.FormatFloat(score, 'f', 2, 64)
}

// ComputeGoalScore is the create-time variant: both inputs must be non-blank,
// otherwise ok is false and the score stays empty.
func ComputeGoalScore(weightage, completion string) (string, bool) {
	if strings.TrimSpace(weightage) == "" || strings.TrimSpace(completion) == "" {
		return "", false
	}
	return FormatGoalScore(weightage, completion), true
}
