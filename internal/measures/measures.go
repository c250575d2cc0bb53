// Package measures implements orthographic similarity and distance measures
// over pairs of wordforms.
//
// Every measure is a total function: empty strings and strings shorter than
// an n-gram size fall back to a fixed value instead of failing. Lengths are
// counted in runes. Ratio measures are normalized by the longer word.
package measures

import (
	"math"

	"github.com/hbollon/go-edlib"
	"github.com/xrash/smetrics"

	"github.com/standardbeagle/cognates/internal/ngram"
)

// WinklerPrefixWeight is the boost applied per shared prefix character
const WinklerPrefixWeight = 0.1

// winklerMaxPrefix caps the prefix length considered by the Winkler boost
const winklerMaxPrefix = 4

// identicalPrefixMinLength is the prefix length a pair must exceed to count
// as sharing a prefix
const identicalPrefixMinLength = 3

func runeLen(s string) int {
	return len([]rune(s))
}

func bothNonEmpty(form1, form2 string) bool {
	return form1 != "" && form2 != ""
}

func boolFloat(b bool) float64 {
	if b {
		return 1.0
	}
	return 0.0
}

// IdenticalWords returns 1 if the two forms are equal and non-empty
func IdenticalWords(form1, form2 string) float64 {
	if !bothNonEmpty(form1, form2) {
		return 0.0
	}
	return boolFloat(form1 == form2)
}

// IdenticalFirstLetter returns 1 if both forms start with the same character
func IdenticalFirstLetter(form1, form2 string) float64 {
	if !bothNonEmpty(form1, form2) {
		return 0.0
	}
	return boolFloat([]rune(form1)[0] == []rune(form2)[0])
}

// IdenticalPrefix returns 1 if the forms share a prefix of at least four characters
func IdenticalPrefix(form1, form2 string) float64 {
	return boolFloat(LCPLength(form1, form2) > identicalPrefixMinLength)
}

// SharedLetter returns 1 if any character of form1 occurs in form2
func SharedLetter(form1, form2 string) float64 {
	letters := make(map[rune]struct{}, len(form2))
	for _, r := range form2 {
		letters[r] = struct{}{}
	}
	for _, r := range form1 {
		if _, ok := letters[r]; ok {
			return 1.0
		}
	}
	return 0.0
}

// BasicMED is the unit-cost Levenshtein distance
func BasicMED(form1, form2 string) float64 {
	if !bothNonEmpty(form1, form2) {
		return 1.0
	}
	return float64(edlib.LevenshteinDistance(form1, form2))
}

// BasicNED is BasicMED normalized by the longer word length
func BasicNED(form1, form2 string) float64 {
	if !bothNonEmpty(form1, form2) {
		return 1.0
	}
	return BasicMED(form1, form2) / LongerWordLen(form1, form2)
}

// JaroDistance is the Jaro similarity of the two forms
func JaroDistance(form1, form2 string) float64 {
	if !bothNonEmpty(form1, form2) {
		return 0.0
	}
	b1, b2, ok := byteForms(form1, form2)
	if !ok {
		// edlib compares runes directly but only in float32
		return float64(edlib.JaroSimilarity(form1, form2))
	}
	return smetrics.Jaro(b1, b2)
}

// byteForms re-encodes both forms so every distinct rune becomes one byte.
// smetrics compares bytes, and this keeps its positions and lengths in
// runes. ok is false when the pair has more than 256 distinct runes.
func byteForms(form1, form2 string) (string, string, bool) {
	codes := make(map[rune]byte)
	encode := func(form string) ([]byte, bool) {
		out := make([]byte, 0, len(form))
		for _, r := range form {
			c, seen := codes[r]
			if !seen {
				if len(codes) == 256 {
					return nil, false
				}
				c = byte(len(codes))
				codes[r] = c
			}
			out = append(out, c)
		}
		return out, true
	}

	b1, ok := encode(form1)
	if !ok {
		return "", "", false
	}
	b2, ok := encode(form2)
	if !ok {
		return "", "", false
	}
	return string(b1), string(b2), true
}

// JaroWinklerDistance boosts the Jaro similarity by the shared prefix
// (at most four characters, weight WinklerPrefixWeight).
func JaroWinklerDistance(form1, form2 string) float64 {
	if !bothNonEmpty(form1, form2) {
		return 0.0
	}

	jaro := JaroDistance(form1, form2)
	prefix := math.Min(LCPLength(form1, form2), winklerMaxPrefix)
	return jaro + prefix*WinklerPrefixWeight*(1.0-jaro)
}

// LCPLength is the length of the longest common prefix
func LCPLength(form1, form2 string) float64 {
	r1, r2 := []rune(form1), []rune(form2)

	n := 0
	for n < len(r1) && n < len(r2) && r1[n] == r2[n] {
		n++
	}
	return float64(n)
}

// LCPRatio is LCPLength divided by the longer word length
func LCPRatio(form1, form2 string) float64 {
	if !bothNonEmpty(form1, form2) {
		return 0.0
	}
	return LCPLength(form1, form2) / LongerWordLen(form1, form2)
}

// LCSLength is the length of the longest common subsequence
func LCSLength(form1, form2 string) float64 {
	if !bothNonEmpty(form1, form2) {
		return 0.0
	}
	return float64(edlib.LCS(form1, form2))
}

// LCSR is the longest common subsequence ratio
func LCSR(form1, form2 string) float64 {
	if !bothNonEmpty(form1, form2) {
		return 0.0
	}
	return LCSLength(form1, form2) / LongerWordLen(form1, form2)
}

// BigramDice is Dice's coefficient over shared bigrams
func BigramDice(form1, form2 string) float64 {
	return ngramDice(2, form1, form2)
}

// TrigramDice is Dice's coefficient over shared trigrams
func TrigramDice(form1, form2 string) float64 {
	return ngramDice(3, form1, form2)
}

func ngramDice(n int, form1, form2 string) float64 {
	len1, len2 := runeLen(form1), runeLen(form2)
	if len1 < n || len2 < n {
		return 0.0
	}
	return 2 * commonNgramNumber(n, form1, form2) / float64(len1+len2-2*(n-1))
}

// XBigramDice is Dice's coefficient over shared extended bigrams
func XBigramDice(form1, form2 string) float64 {
	len1, len2 := runeLen(form1), runeLen(form2)
	if len1 < 3 || len2 < 3 {
		return 0.0
	}
	return 2 * CommonXBigramNumber(form1, form2) / float64(len1+len2-4)
}

// XXBigramDice weights every shared extended bigram by the distance between
// its positions in the two forms: each contributes 2/(1+(pos1-pos2)^2).
func XXBigramDice(form1, form2 string) float64 {
	len1, len2 := runeLen(form1), runeLen(form2)
	if len1 < 3 || len2 < 3 {
		return 0.0
	}

	positions1, positions2 := ngram.CommonPositions(ngram.ExtendedBigrams(form1), ngram.ExtendedBigrams(form2))

	weights := 0.0
	for i, pos1 := range positions1 {
		d := float64(pos1 - positions2[i])
		weights += 2 / (1 + d*d)
	}
	return weights / float64(len1+len2-4)
}

func commonNgramNumber(n int, form1, form2 string) float64 {
	return float64(len(ngram.Common(ngram.Ngrams(n, form1), ngram.Ngrams(n, form2))))
}

// CommonLetterNumber counts shared letters
func CommonLetterNumber(form1, form2 string) float64 {
	return commonNgramNumber(1, form1, form2)
}

// CommonBigramNumber counts shared bigrams
func CommonBigramNumber(form1, form2 string) float64 {
	return commonNgramNumber(2, form1, form2)
}

// CommonTrigramNumber counts shared trigrams
func CommonTrigramNumber(form1, form2 string) float64 {
	return commonNgramNumber(3, form1, form2)
}

// CommonXBigramNumber counts shared extended bigrams
func CommonXBigramNumber(form1, form2 string) float64 {
	return float64(len(ngram.Common(ngram.ExtendedBigrams(form1), ngram.ExtendedBigrams(form2))))
}

func commonNgramRatio(n int, form1, form2 string) float64 {
	count := ngram.Count(n, int(LongerWordLen(form1, form2)))
	if count <= 0 {
		return 0.0
	}
	return commonNgramNumber(n, form1, form2) / float64(count)
}

// CommonLetterRatio is the shared letter count over the longer word's letter count
func CommonLetterRatio(form1, form2 string) float64 {
	return commonNgramRatio(1, form1, form2)
}

// CommonBigramRatio is the shared bigram count over the longer word's bigram count
func CommonBigramRatio(form1, form2 string) float64 {
	return commonNgramRatio(2, form1, form2)
}

// CommonTrigramRatio is the shared trigram count over the longer word's trigram count
func CommonTrigramRatio(form1, form2 string) float64 {
	return commonNgramRatio(3, form1, form2)
}

// CommonXBigramRatio is the shared extended bigram count over the longer
// word's extended bigram count
func CommonXBigramRatio(form1, form2 string) float64 {
	count := ngram.Count(3, int(LongerWordLen(form1, form2)))
	if count <= 0 {
		return 0.0
	}
	return CommonXBigramNumber(form1, form2) / float64(count)
}

// LongerWordLen is the length of the longer form
func LongerWordLen(form1, form2 string) float64 {
	return float64(max(runeLen(form1), runeLen(form2)))
}

// ShorterWordLen is the length of the shorter form
func ShorterWordLen(form1, form2 string) float64 {
	return float64(min(runeLen(form1), runeLen(form2)))
}

// AverageWordLen is the mean length of the two forms
func AverageWordLen(form1, form2 string) float64 {
	return float64(runeLen(form1)+runeLen(form2)) / 2
}

// WordLenDifference is the absolute length difference
func WordLenDifference(form1, form2 string) float64 {
	return math.Abs(float64(runeLen(form1) - runeLen(form2)))
}

// WordLenDifferenceRatio is WordLenDifference over the longer word length
func WordLenDifferenceRatio(form1, form2 string) float64 {
	longer := LongerWordLen(form1, form2)
	if longer == 0 {
		return 0.0
	}
	return WordLenDifference(form1, form2) / longer
}
