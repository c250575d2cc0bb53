package features

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/standardbeagle/cognates/internal/debug"
	cgerrors "github.com/standardbeagle/cognates/internal/errors"
)

// chunkSize is the number of examples one worker handles per task
const chunkSize = 64

// Builder accumulates feature columns per purpose. Each call appends the
// same number of rows it already holds for a purpose, so the rows of a
// purpose always follow the order of its examples.
type Builder struct {
	mu        sync.Mutex
	workers   int
	rows      map[Purpose][][]float64
	columns   map[Purpose][]string
	labels    map[Purpose][]Label
	finalized bool
}

// Option configures a Builder
type Option func(*Builder)

// WithWorkers bounds the number of goroutines computing vectors. Zero or
// negative means runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(b *Builder) {
		b.workers = n
	}
}

// NewBuilder returns an empty builder
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		rows:    make(map[Purpose][][]float64),
		columns: make(map[Purpose][]string),
		labels:  make(map[Purpose][]Label),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.workers <= 0 {
		b.workers = runtime.NumCPU()
	}
	return b
}

// block is a set of computed columns waiting to be appended
type block struct {
	purpose Purpose
	rows    [][]float64
	columns []string
}

// Extract evaluates the strategy for every purpose present in the dataset.
// Either every purpose receives the new columns or, on error, none does.
func (b *Builder) Extract(ctx context.Context, s *Strategy, data *Dataset) error {
	return b.extract(ctx, s, data, data.present())
}

// ExtractPurpose evaluates the strategy for a single purpose
func (b *Builder) ExtractPurpose(ctx context.Context, s *Strategy, data *Dataset, purpose Purpose) error {
	if _, ok := data.Examples[purpose]; !ok {
		return fmt.Errorf("dataset has no %s examples", purpose)
	}
	return b.extract(ctx, s, data, []Purpose{purpose})
}

func (b *Builder) extract(ctx context.Context, s *Strategy, data *Dataset, purposes []Purpose) error {
	if err := b.checkOpen(); err != nil {
		return err
	}

	pending := make([]block, 0, len(purposes))
	for _, p := range purposes {
		if err := data.checkLabels(p); err != nil {
			return err
		}
		rows, err := b.compute(ctx, s, data.Examples[p])
		if err != nil {
			return fmt.Errorf("%s strategy on %s examples: %w", s.Kind(), p, err)
		}
		pending = append(pending, block{purpose: p, rows: rows, columns: s.ColumnNames()})
	}

	if err := b.commit(pending, data); err != nil {
		return err
	}
	for _, p := range purposes {
		debug.LogExtract("%s: appended %d columns to %d %s rows\n", s.Kind(), s.Width(), len(data.Examples[p]), p)
	}
	return nil
}

// compute evaluates the strategy on every example, in parallel chunks, and
// writes each vector back to the example's row index
func (b *Builder) compute(ctx context.Context, s *Strategy, examples []Example) ([][]float64, error) {
	rows := make([][]float64, len(examples))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)

	for start := 0; start < len(examples); start += chunkSize {
		end := min(start+chunkSize, len(examples))
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			for i := start; i < end; i++ {
				vec, err := s.vector(examples[i], i)
				if err != nil {
					return err
				}
				rows[i] = vec
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}

// AppendTrainLanguageSimilarities appends one training column: for each
// example, the share of cognate examples among training examples of the
// same language pair.
func (b *Builder) AppendTrainLanguageSimilarities(data *Dataset) error {
	if err := b.checkOpen(); err != nil {
		return err
	}
	if err := data.checkLabels(Train); err != nil {
		return err
	}

	values, err := TrainLanguageSimilarities(data.Examples[Train], data.Labels[Train])
	if err != nil {
		return err
	}
	return b.commit([]block{{purpose: Train, rows: column(values), columns: []string{"languageSimilarity"}}}, data)
}

// AppendTestLanguageSimilarities appends one test column holding the
// externally supplied similarity of each example's language pair. A pair
// without a value is a configuration error.
func (b *Builder) AppendTestLanguageSimilarities(sims LanguageSimilarities, data *Dataset) error {
	if err := b.checkOpen(); err != nil {
		return err
	}
	if err := data.checkLabels(Test); err != nil {
		return err
	}

	examples := data.Examples[Test]
	values := make([]float64, len(examples))
	for i, ex := range examples {
		v, ok := sims.Similarity(ex.Language1, ex.Language2)
		if !ok {
			return cgerrors.NewConfigError("language_similarities",
				fmt.Sprintf("%d-%d", ex.Language1, ex.Language2),
				fmt.Errorf("no similarity for language pair"))
		}
		values[i] = v
	}
	return b.commit([]block{{purpose: Test, rows: column(values), columns: []string{"languageSimilarity"}}}, data)
}

func column(values []float64) [][]float64 {
	rows := make([][]float64, len(values))
	for i, v := range values {
		rows[i] = []float64{v}
	}
	return rows
}

// commit appends every pending block or none of them
func (b *Builder) commit(pending []block, data *Dataset) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.finalized {
		return cgerrors.ErrFinalized
	}
	for _, blk := range pending {
		if existing, ok := b.rows[blk.purpose]; ok && len(existing) != len(blk.rows) {
			return fmt.Errorf("%s matrix has %d rows, new columns have %d", blk.purpose, len(existing), len(blk.rows))
		}
	}

	for _, blk := range pending {
		existing, ok := b.rows[blk.purpose]
		if !ok {
			existing = make([][]float64, len(blk.rows))
		}
		for i, row := range blk.rows {
			existing[i] = append(existing[i], row...)
		}
		b.rows[blk.purpose] = existing
		b.columns[blk.purpose] = append(b.columns[blk.purpose], blk.columns...)

		if _, ok := b.labels[blk.purpose]; !ok {
			b.labels[blk.purpose] = append([]Label{}, data.Labels[blk.purpose]...)
		}
	}
	return nil
}

func (b *Builder) checkOpen() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.finalized {
		return cgerrors.ErrFinalized
	}
	return nil
}

// Width returns the number of columns accumulated for a purpose
func (b *Builder) Width(p Purpose) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.columns[p])
}

// Finalize freezes the builder and returns its matrices. Later appends
// fail with ErrFinalized.
func (b *Builder) Finalize() *Result {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.finalized = true
	res := &Result{
		matrices: make(map[Purpose]*Matrix, len(b.rows)),
		labels:   make(map[Purpose][]Label, len(b.labels)),
	}
	for p, rows := range b.rows {
		res.matrices[p] = newMatrix(rows, append([]string(nil), b.columns[p]...))
		res.labels[p] = append([]Label(nil), b.labels[p]...)
	}
	return res
}
