// Package suggest offers "did you mean" hints for mistyped names.
package suggest

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Closest returns the candidate with the smallest edit distance to input.
// It reports false when nothing is close enough to be a plausible typo.
func Closest(input string, candidates []string) (string, bool) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return "", false
	}

	best := ""
	bestDistance := -1
	for _, candidate := range candidates {
		d := levenshtein.ComputeDistance(input, strings.ToLower(candidate))
		if bestDistance < 0 || d < bestDistance {
			best, bestDistance = candidate, d
		}
	}

	if bestDistance < 0 || bestDistance > threshold(input) {
		return "", false
	}
	return best, true
}

// Hint formats a suffix for error messages, or "" when there is no match.
func Hint(input string, candidates []string) string {
	if match, ok := Closest(input, candidates); ok {
		return " (did you mean " + `"` + match + `"` + "?)"
	}
	return ""
}

func threshold(input string) int {
	if t := len(input) / 3; t > 2 {
		return t
	}
	return 2
}
