package outline

import "sort"

// clusterStyles reduces the accepted candidates to at most three distinct
// style keys ranked by prominence, and assigns the ranks to H1-H3. Styles
// beyond the top three are dropped entirely: spans using them never become
// headings, which bounds the output to a three-level hierarchy no matter how
// many heading-like styles a document uses.
func clusterStyles(candidates []Candidate) LevelMap {
	seen := make(map[StyleKey]struct{})
	var keys []StyleKey

	// Candidates arrive in document order, so keys accumulate in first
	// appearance order; the stable sort below preserves that order between
	// equally prominent styles, keeping level assignment deterministic.
	for _, c := range candidates {
		if _, ok := seen[c.Key]; !ok {
			seen[c.Key] = struct{}{}
			keys = append(keys, c.Key)
		}
	}

	// Size descending, bold above non-bold at equal size.
	sort.SliceStable(keys, func(i, j int) bool {
		return keys[i].moreProminent(keys[j])
	})

	if len(keys) > maxLevels {
		keys = keys[:maxLevels]
	}
	return LevelMap(keys)
}
