package cli

import "slices"

// Returns selected minus skipped, sorted and deduplicated.
//
// Skip entries that are not part of the selection are simply ignored. The
// result is sorted so matrix iteration order is reproducible across runs.
func subtract(selected, skipped []string) []string {
	result := make([]string, 0, len(selected))
	for _, value := range selected {
		if !slices.Contains(skipped, value) && !slices.Contains(result, value) {
			result = append(result, value)
		}
	}
	slices.Sort(result)
	return result
}
