// Package ngram generates character n-grams and computes multiset overlaps
// between n-gram sequences.
//
// Overlap is duplicate-consuming: every n-gram instance of one sequence is
// matched with at most one instance of the other, so a repeated n-gram is
// never credited more times than it occurs on both sides.
package ngram

// Ngrams returns all contiguous substrings of length n in order.
// Returns an empty slice when the word is shorter than n.
func Ngrams(n int, word string) []string {
	return ngramsOf(n, []rune(word))
}

func ngramsOf(n int, runes []rune) []string {
	if n <= 0 || len(runes) < n {
		return []string{}
	}

	grams := make([]string, 0, len(runes)-n+1)
	for i := 0; i+n <= len(runes); i++ {
		grams = append(grams, string(runes[i:i+n]))
	}
	return grams
}

// ExtendedBigrams returns the skip-one bigrams of word: for every position i
// the two-character string word[i]+word[i+2].
func ExtendedBigrams(word string) []string {
	runes := []rune(word)
	if len(runes) < 3 {
		return []string{}
	}

	grams := make([]string, 0, len(runes)-2)
	for i := 0; i+2 < len(runes); i++ {
		grams = append(grams, string([]rune{runes[i], runes[i+2]}))
	}
	return grams
}

// Common returns the multiset intersection of a and b in the order of a.
// Each matched element of b is consumed so it cannot be matched again.
func Common(a, b []string) []string {
	remaining := make(map[string]int, len(b))
	for _, gram := range b {
		remaining[gram]++
	}

	shared := make([]string, 0)
	for _, gram := range a {
		if remaining[gram] > 0 {
			shared = append(shared, gram)
			remaining[gram]--
		}
	}
	return shared
}

// CommonPositions finds, for every shared n-gram reported by Common, the
// earliest not yet used position of that n-gram in a and in b. The two
// returned slices are parallel.
func CommonPositions(a, b []string) (positionsA, positionsB []int) {
	shared := Common(a, b)

	positionsA = make([]int, 0, len(shared))
	positionsB = make([]int, 0, len(shared))

	usedA := make([]bool, len(a))
	usedB := make([]bool, len(b))

	for _, gram := range shared {
		if i := firstUnused(a, usedA, gram); i >= 0 {
			usedA[i] = true
			positionsA = append(positionsA, i)
		}
		if j := firstUnused(b, usedB, gram); j >= 0 {
			usedB[j] = true
			positionsB = append(positionsB, j)
		}
	}
	return positionsA, positionsB
}

func firstUnused(grams []string, used []bool, gram string) int {
	for i, g := range grams {
		if g == gram && !used[i] {
			return i
		}
	}
	return -1
}

// Count returns the number of n-grams a word of the given length has.
// The result is never negative.
func Count(n, length int) int {
	if length < n {
		return 0
	}
	return length - n + 1
}
