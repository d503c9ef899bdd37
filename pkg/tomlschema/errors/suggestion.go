package errors

import (
	"fmt"
	"sort"
)

// maxSuggestionDistance is the largest edit distance still considered a likely typo.
const maxSuggestionDistance = 3

// SuggestKey suggests the closest candidate key for a missing field name.
// It returns an empty string when no candidate is close enough.
func SuggestKey(missing string, candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}

	sorted := make([]string, len(candidates))
	copy(sorted, candidates)
	sort.Strings(sorted)

	minDistance := maxSuggestionDistance
	var bestMatch string

	for _, candidate := range sorted {
		if candidate == missing {
			continue
		}
		dist := levenshteinDistance(missing, candidate)
		if dist < minDistance {
			minDistance = dist
			bestMatch = candidate
		}
	}

	if bestMatch == "" {
		return ""
	}
	return fmt.Sprintf("Did you mean '%s'?", bestMatch)
}

// levenshteinDistance computes the Levenshtein distance between two strings.
func levenshteinDistance(s1, s2 string) int {
	if s1 == s2 {
		return 0
	}

	len1 := len(s1)
	len2 := len(s2)

	matrix := make([][]int, len1+1)
	for i := range matrix {
		matrix[i] = make([]int, len2+1)
	}

	for i := 0; i <= len1; i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len2; j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len1; i++ {
		for j := 1; j <= len2; j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}

			matrix[i][j] = min(
				matrix[i-1][j]+1,      // Deletion
				matrix[i][j-1]+1,      // Insertion
				matrix[i-1][j-1]+cost, // Substitution
			)
		}
	}

	return matrix[len1][len2]
}
