package comb

import (
	"github.com/sahilm/fuzzy"
)

// suggest returns the best fuzzy match for input among candidates,
// or "" when nothing is close enough to be worth mentioning.
func suggest(input string, candidates []string) string {
	if input == "" || len(candidates) == 0 {
		return ""
	}

	matches := fuzzy.Find(input, candidates)
	if len(matches) == 0 {
		return ""
	}

	return matches[0].Str
}
