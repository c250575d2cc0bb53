package features

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// LanguageSimilarities supplies a similarity for a pair of language ids
type LanguageSimilarities interface {
	Similarity(language1, language2 int) (float64, bool)
}

// SimilarityMatrix is a dense table of language similarities indexed by
// 1-based language ids. Entries are set explicitly; unset entries are
// reported as missing.
type SimilarityMatrix struct {
	values *mat.Dense
	set    *mat.Dense
}

// NewSimilarityMatrix creates an empty table for languages 1..count
func NewSimilarityMatrix(count int) *SimilarityMatrix {
	if count < 1 {
		count = 1
	}
	return &SimilarityMatrix{
		values: mat.NewDense(count, count, nil),
		set:    mat.NewDense(count, count, nil),
	}
}

// Count returns the number of languages the table covers
func (s *SimilarityMatrix) Count() int {
	r, _ := s.values.Dims()
	return r
}

// Set records the similarity for an ordered pair
func (s *SimilarityMatrix) Set(language1, language2 int, value float64) error {
	if !s.inRange(language1) || !s.inRange(language2) {
		return fmt.Errorf("language pair (%d, %d) outside 1..%d", language1, language2, s.Count())
	}
	s.values.Set(language1-1, language2-1, value)
	s.set.Set(language1-1, language2-1, 1)
	return nil
}

// SetSymmetric records the similarity for both orders of a pair
func (s *SimilarityMatrix) SetSymmetric(language1, language2 int, value float64) error {
	if err := s.Set(language1, language2, value); err != nil {
		return err
	}
	return s.Set(language2, language1, value)
}

func (s *SimilarityMatrix) inRange(language int) bool {
	return language >= 1 && language <= s.Count()
}

// Similarity implements LanguageSimilarities
func (s *SimilarityMatrix) Similarity(language1, language2 int) (float64, bool) {
	if !s.inRange(language1) || !s.inRange(language2) {
		return 0, false
	}
	if s.set.At(language1-1, language2-1) == 0 {
		return 0, false
	}
	return s.values.At(language1-1, language2-1), true
}

type languagePair struct {
	lo, hi int
}

func pairOf(language1, language2 int) languagePair {
	return languagePair{lo: min(language1, language2), hi: max(language1, language2)}
}

// decisionCounts tallies positive and total decisions per unordered pair
type decisionCounts struct {
	positive, total int
}

// TrainLanguageSimilarities derives, for each training example, the fraction
// of cognate examples among all training examples of its language pair.
// Pairs are unordered.
func TrainLanguageSimilarities(examples []Example, labels []Label) ([]float64, error) {
	if len(examples) != len(labels) {
		return nil, fmt.Errorf("%d training examples but %d labels", len(examples), len(labels))
	}

	counts := make(map[languagePair]*decisionCounts)
	for i, ex := range examples {
		key := pairOf(ex.Language1, ex.Language2)
		c, ok := counts[key]
		if !ok {
			c = &decisionCounts{}
			counts[key] = c
		}
		c.total++
		if labels[i] == Cognate {
			c.positive++
		}
	}

	out := make([]float64, len(examples))
	for i, ex := range examples {
		c := counts[pairOf(ex.Language1, ex.Language2)]
		out[i] = float64(c.positive) / float64(c.total)
	}
	return out, nil
}
