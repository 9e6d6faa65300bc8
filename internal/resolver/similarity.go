package resolver

// Similarity returns 2*LCS(a,b)/(len(a)+len(b)) with fixed boundary
// conventions: both empty strings compare equal (1.0), exactly one empty
// compares maximally dissimilar (0.0), and equal strings compare equal
// regardless of length. Character equality is codepoint-exact (comparison
// happens over []rune, never over normalized or case-folded text).
func Similarity(a, b string) float64 {
	if a == "" && b == "" {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}
	if a == b {
		return 1.0
	}
	ra, rb := []rune(a), []rune(b)
	l := lcsLength(ra, rb)
	return 2 * float64(l) / float64(len(ra)+len(rb))
}

// lcsLength computes the longest-common-subsequence length of a and b with
// a two-rolling-row dynamic program: O(len(a)*len(b)) time, O(min) space.
//
// The rows are swapped at the end of every outer iteration; after the loop
// exits, prev (not curr) holds the last row that was actually filled in, so
// the answer is read from prev, not curr.
func lcsLength(a, b []rune) int {
	if len(a) > len(b) {
		a, b = b, a
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else {
				curr[j] = max(prev[j], curr[j-1])
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
