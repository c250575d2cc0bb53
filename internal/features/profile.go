package features

import (
	"github.com/standardbeagle/cognates/internal/alignment"
	"github.com/standardbeagle/cognates/internal/debug"
	"github.com/standardbeagle/cognates/internal/preprocess"
)

// CorrespondenceProfile folds the alignments of every cognate training
// example into one correspondence matrix. A nil preprocessor aligns the raw
// forms.
func CorrespondenceProfile(data *Dataset, alphabet alignment.Alphabet, prep preprocess.Preprocessor) (*alignment.Matrix, error) {
	if err := data.checkLabels(Train); err != nil {
		return nil, err
	}

	profile := alignment.NewMatrix(alphabet)
	folded := 0
	for i, ex := range data.Examples[Train] {
		if data.Labels[Train][i] != Cognate {
			continue
		}
		form1, form2 := ex.Form1, ex.Form2
		if prep != nil {
			form1, form2 = prep.Apply(form1), prep.Apply(form2)
		}
		profile.Fold(form1, form2)
		folded++
	}

	debug.LogAlign("folded %d cognate pairs, %.0f correspondences\n", folded, profile.Total())
	return profile, nil
}
