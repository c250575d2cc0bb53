package features

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
	"gonum.org/v1/gonum/mat"
)

// Matrix is a finalized, read-only feature matrix: one row per example in
// input order, one column per appended feature.
type Matrix struct {
	rows    int
	cols    int
	data    *mat.Dense
	columns []string
}

func newMatrix(rows [][]float64, columns []string) *Matrix {
	m := &Matrix{rows: len(rows), cols: len(columns), columns: columns}
	if m.rows == 0 || m.cols == 0 {
		// mat.NewDense rejects empty shapes
		return m
	}

	backing := make([]float64, 0, m.rows*m.cols)
	for _, row := range rows {
		backing = append(backing, row...)
	}
	m.data = mat.NewDense(m.rows, m.cols, backing)
	return m
}

// Dims returns the number of rows and columns
func (m *Matrix) Dims() (int, int) {
	return m.rows, m.cols
}

// At returns the value at row i, column j. Like mat.Dense, it panics with
// mat.ErrRowAccess or mat.ErrColAccess outside the matrix, including on an
// empty one.
func (m *Matrix) At(i, j int) float64 {
	if m.data == nil {
		if uint(i) >= uint(m.rows) {
			panic(mat.ErrRowAccess)
		}
		panic(mat.ErrColAccess)
	}
	return m.data.At(i, j)
}

// Row returns a copy of row i
func (m *Matrix) Row(i int) []float64 {
	if m.data == nil {
		return []float64{}
	}
	return mat.Row(nil, i, m.data)
}

// Rows returns a copy of every row
func (m *Matrix) Rows() [][]float64 {
	out := make([][]float64, m.rows)
	for i := range out {
		out[i] = m.Row(i)
	}
	return out
}

// Columns names every column in order
func (m *Matrix) Columns() []string {
	return append([]string(nil), m.columns...)
}

// Dense returns a copy of the matrix for numeric work. It is nil when the
// matrix has no rows or no columns.
func (m *Matrix) Dense() *mat.Dense {
	if m.data == nil {
		return nil
	}
	return mat.DenseCopyOf(m.data)
}

// Fingerprint hashes the shape and the row-major bit patterns of the values.
// Bit-identical matrices share a fingerprint.
func (m *Matrix) Fingerprint() uint64 {
	h := xxhash.New()
	var buf [8]byte

	binary.LittleEndian.PutUint64(buf[:], uint64(m.rows))
	_, _ = h.Write(buf[:])
	binary.LittleEndian.PutUint64(buf[:], uint64(m.cols))
	_, _ = h.Write(buf[:])

	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(m.data.At(i, j)))
			_, _ = h.Write(buf[:])
		}
	}
	return h.Sum64()
}

// Result holds the finalized matrices and labels of every purpose that
// received features.
type Result struct {
	matrices map[Purpose]*Matrix
	labels   map[Purpose][]Label
}

// Matrix returns the feature matrix of a purpose, or nil if none was built
func (r *Result) Matrix(p Purpose) *Matrix {
	return r.matrices[p]
}

// Labels returns a copy of the labels of a purpose
func (r *Result) Labels(p Purpose) []Label {
	return append([]Label(nil), r.labels[p]...)
}

// Purposes lists the purposes with a matrix, in extraction order
func (r *Result) Purposes() []Purpose {
	var out []Purpose
	for _, p := range Purposes() {
		if _, ok := r.matrices[p]; ok {
			out = append(out, p)
		}
	}
	return out
}
