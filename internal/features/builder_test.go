package features

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	cgerrors "github.com/standardbeagle/cognates/internal/errors"
)

func threeExamples() *Dataset {
	data := NewDataset()
	data.Add(Train, Example{Form1: "night", Form2: "nacht", Language1: 1, Language2: 2, Meaning: 1}, Cognate)
	data.Add(Train, Example{Form1: "water", Form2: "wasser", Language1: 1, Language2: 3, Meaning: 2}, Cognate)
	data.Add(Train, Example{Form1: "", Form2: "abc", Language1: 2, Language2: 1, Meaning: 3}, NonCognate)
	return data
}

func TestExtract_ThreeRowsTwoColumns(t *testing.T) {
	defer goleak.VerifyNone(t)

	s, err := NewCustomStrategy([]string{"LCPRatio", "bigramDice"})
	require.NoError(t, err)

	b := NewBuilder()
	require.NoError(t, b.Extract(context.Background(), s, threeExamples()))

	res := b.Finalize()
	m := res.Matrix(Train)
	require.NotNil(t, m)

	rows, cols := m.Dims()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 2, cols)

	assert.InDeltaSlice(t, []float64{0.2, 0.25}, m.Row(0), 1e-12)
	assert.InDeltaSlice(t, []float64{2.0 / 6.0, 4.0 / 9.0}, m.Row(1), 1e-12)
	assert.Equal(t, []float64{0, 0}, m.Row(2))

	assert.Equal(t, []Label{Cognate, Cognate, NonCognate}, res.Labels(Train))
	assert.Nil(t, res.Matrix(Test))
	assert.Equal(t, []Purpose{Train}, res.Purposes())
}

func TestExtract_AppendsColumnsAcrossCalls(t *testing.T) {
	defer goleak.VerifyNone(t)

	data := threeExamples()
	data.Add(Test, Example{Form1: "sun", Form2: "sonne", Language1: 2, Language2: 3, Meaning: 1}, Cognate)

	ctx := context.Background()
	b := NewBuilder(WithWorkers(2))

	hk, err := NewStrategy(HK2011, testResources())
	require.NoError(t, err)
	pairs, err := NewStrategy(HK2011Full, testResources())
	require.NoError(t, err)

	require.NoError(t, b.Extract(ctx, hk, data))
	assert.Equal(t, 6, b.Width(Train))
	require.NoError(t, b.Extract(ctx, pairs, data))
	assert.Equal(t, 6+9, b.Width(Train))
	assert.Equal(t, 6+9, b.Width(Test))

	res := b.Finalize()
	train := res.Matrix(Train)
	rows, cols := train.Dims()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 15, cols)

	// hk2011 columns are repeated verbatim by hk2011Full
	for i := 0; i < rows; i++ {
		row := train.Row(i)
		assert.Equal(t, row[:6], row[6:12])
	}
	// the third example pairs languages 2 and 1
	assert.Equal(t, []float64{1, 0, 0}, train.Row(2)[12:])
	assert.Equal(t, "pair:2-3", train.Columns()[14])

	test := res.Matrix(Test)
	assert.Equal(t, []float64{0, 0, 1}, test.Row(0)[12:])
}

func TestExtract_LabelsSetOnce(t *testing.T) {
	data := threeExamples()
	s, err := NewStrategy(IdenticalWords, testResources())
	require.NoError(t, err)

	b := NewBuilder()
	require.NoError(t, b.Extract(context.Background(), s, data))

	data.Labels[Train][0] = NonCognate
	require.NoError(t, b.Extract(context.Background(), s, data))

	assert.Equal(t, []Label{Cognate, Cognate, NonCognate}, b.Finalize().Labels(Train))
}

func TestExtract_LabelCountMismatch(t *testing.T) {
	data := threeExamples()
	data.Labels[Train] = data.Labels[Train][:2]

	s, err := NewStrategy(IdenticalWords, testResources())
	require.NoError(t, err)
	assert.Error(t, NewBuilder().Extract(context.Background(), s, data))
}

func TestExtract_FailsWithoutPartialAppend(t *testing.T) {
	defer goleak.VerifyNone(t)

	data := threeExamples()
	data.Add(Test, Example{Form1: "a", Form2: "b", Language1: 1, Language2: 9}, NonCognate)

	s, err := NewStrategy(HK2011Full, testResources())
	require.NoError(t, err)

	b := NewBuilder()
	err = b.Extract(context.Background(), s, data)
	require.Error(t, err)
	var cfgErr *cgerrors.ConfigError
	assert.True(t, errors.As(err, &cfgErr))

	assert.Equal(t, 0, b.Width(Train))
	assert.Equal(t, 0, b.Width(Test))
}

func TestExtract_AfterFinalize(t *testing.T) {
	s, err := NewStrategy(IdenticalWords, testResources())
	require.NoError(t, err)

	b := NewBuilder()
	b.Finalize()

	err = b.Extract(context.Background(), s, threeExamples())
	assert.True(t, errors.Is(err, cgerrors.ErrFinalized))
	assert.True(t, errors.Is(b.AppendTrainLanguageSimilarities(threeExamples()), cgerrors.ErrFinalized))
}

func TestExtract_Cancelled(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s, err := NewStrategy(HK2011, testResources())
	require.NoError(t, err)

	b := NewBuilder()
	err = b.Extract(ctx, s, threeExamples())
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 0, b.Width(Train))
}

func TestExtract_DeterministicAcrossWorkerCounts(t *testing.T) {
	defer goleak.VerifyNone(t)

	data := NewDataset()
	words := []string{"night", "nacht", "noche", "nuit", "notte", "water", "wasser", "agua", "eau", "acqua"}
	for i, w1 := range words {
		for j, w2 := range words {
			label := NonCognate
			if (i < 5) == (j < 5) {
				label = Cognate
			}
			data.Add(Train, Example{Form1: w1, Form2: w2, Language1: i%3 + 1, Language2: j%3 + 1, Meaning: i%3 + 1}, label)
		}
	}

	s, err := NewStrategy(Combined, testResources())
	require.NoError(t, err)

	var prints []uint64
	for _, workers := range []int{1, 3, 8} {
		b := NewBuilder(WithWorkers(workers))
		require.NoError(t, b.Extract(context.Background(), s, data))
		prints = append(prints, b.Finalize().Matrix(Train).Fingerprint())
	}
	assert.Equal(t, prints[0], prints[1])
	assert.Equal(t, prints[0], prints[2])
}

func TestExtractPurpose(t *testing.T) {
	data := threeExamples()
	data.Add(Test, Example{Form1: "sun", Form2: "sonne", Language1: 2, Language2: 3}, Cognate)

	pairs, err := LanguagePairBlock(3)
	require.NoError(t, err)

	b := NewBuilder()
	require.NoError(t, b.ExtractPurpose(context.Background(), NewBlockStrategy(pairs), data, Test))
	assert.Equal(t, 0, b.Width(Train))
	assert.Equal(t, 3, b.Width(Test))

	err = b.ExtractPurpose(context.Background(), NewBlockStrategy(pairs), NewDataset(), Test)
	assert.Error(t, err)
}

func TestExtract_ManyRowsKeepOrder(t *testing.T) {
	defer goleak.VerifyNone(t)

	data := NewDataset()
	for i := 0; i < 5*chunkSize+7; i++ {
		data.Add(Train, Example{Form1: fmt.Sprintf("%d", i), Form2: "x"}, NonCognate)
	}

	s, err := NewCustomStrategy([]string{"longerWordLen"})
	require.NoError(t, err)

	b := NewBuilder(WithWorkers(4))
	require.NoError(t, b.Extract(context.Background(), s, data))
	m := b.Finalize().Matrix(Train)

	for i := 0; i < data.Count(Train); i++ {
		assert.Equal(t, float64(len(fmt.Sprintf("%d", i))), m.At(i, 0))
	}
}

func TestLanguageSimilarityColumns(t *testing.T) {
	data := threeExamples()
	data.Add(Train, Example{Form1: "a", Form2: "b", Language1: 2, Language2: 1}, NonCognate)
	data.Add(Test, Example{Form1: "a", Form2: "b", Language1: 3, Language2: 1}, NonCognate)

	b := NewBuilder()
	require.NoError(t, b.AppendTrainLanguageSimilarities(data))

	sims := NewSimilarityMatrix(3)
	require.NoError(t, sims.Set(3, 1, 0.75))
	require.NoError(t, b.AppendTestLanguageSimilarities(sims, data))

	res := b.Finalize()
	train := res.Matrix(Train)
	// pair {1,2}: one cognate among three examples; pair {1,3}: one of one
	assert.InDelta(t, 1.0/3.0, train.At(0, 0), 1e-12)
	assert.Equal(t, 1.0, train.At(1, 0))
	assert.InDelta(t, 1.0/3.0, train.At(2, 0), 1e-12)
	assert.InDelta(t, 1.0/3.0, train.At(3, 0), 1e-12)

	assert.Equal(t, 0.75, res.Matrix(Test).At(0, 0))
	assert.Equal(t, []string{"languageSimilarity"}, res.Matrix(Test).Columns())
}

func TestTestLanguageSimilarities_MissingPair(t *testing.T) {
	data := NewDataset()
	data.Add(Test, Example{Language1: 1, Language2: 2}, NonCognate)

	b := NewBuilder()
	err := b.AppendTestLanguageSimilarities(NewSimilarityMatrix(2), data)
	var cfgErr *cgerrors.ConfigError
	assert.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, 0, b.Width(Test))
}
