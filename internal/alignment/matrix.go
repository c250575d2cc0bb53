package alignment

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Alphabet maps characters to correspondence matrix slots. Every character
// in [First, Last] gets its own slot; all other characters share the
// "other" slot, and a dedicated "null" slot stands for the missing side of
// an insertion or deletion.
type Alphabet struct {
	First rune
	Last  rune
}

// DefaultAlphabet covers the lowercase Latin letters
func DefaultAlphabet() Alphabet {
	return Alphabet{First: 'a', Last: 'z'}
}

// Range is the number of dedicated letter slots
func (a Alphabet) Range() int {
	if a.Last < a.First {
		return 0
	}
	return int(a.Last-a.First) + 1
}

// Dim is the matrix dimension: letter slots plus "other" and "null"
func (a Alphabet) Dim() int {
	return a.Range() + 2
}

// OtherSlot is the slot shared by characters outside the alphabet range
func (a Alphabet) OtherSlot() int {
	return a.Range()
}

// NullSlot is the slot standing for an inserted or deleted counterpart
func (a Alphabet) NullSlot() int {
	return a.Range() + 1
}

// Slot returns the matrix slot of a character
func (a Alphabet) Slot(r rune) int {
	if r < a.First || r > a.Last {
		return a.OtherSlot()
	}
	return int(r - a.First)
}

// Label renders a slot for reports: the letter itself, "_" for other and
// "-" for null.
func (a Alphabet) Label(slot int) string {
	switch {
	case slot == a.OtherSlot():
		return "_"
	case slot == a.NullSlot():
		return "-"
	case slot >= 0 && slot < a.Range():
		return string(a.First + rune(slot))
	default:
		return fmt.Sprintf("?%d", slot)
	}
}

// UpperTriangleSize is the number of cells on and above the diagonal of a
// square matrix of the given dimension
func UpperTriangleSize(dim int) int {
	return dim * (dim + 1) / 2
}

// Matrix counts letter correspondences over one or more alignments. It is
// symmetric by construction: every update covers both [i][j] and [j][i].
type Matrix struct {
	alphabet Alphabet
	counts   *mat.SymDense
}

// NewMatrix returns an empty correspondence matrix over the alphabet
func NewMatrix(alphabet Alphabet) *Matrix {
	return &Matrix{
		alphabet: alphabet,
		counts:   mat.NewSymDense(alphabet.Dim(), nil),
	}
}

// Correspondences aligns the two forms and returns their correspondence matrix
func Correspondences(alphabet Alphabet, form1, form2 string) *Matrix {
	m := NewMatrix(alphabet)
	m.Fold(form1, form2)
	return m
}

// Alphabet returns the alphabet the matrix is indexed by
func (m *Matrix) Alphabet() Alphabet {
	return m.alphabet
}

// Dim returns the matrix dimension
func (m *Matrix) Dim() int {
	return m.alphabet.Dim()
}

// At returns the count at [i][j]
func (m *Matrix) At(i, j int) float64 {
	return m.counts.At(i, j)
}

// Fold aligns form1 with form2 and adds every edit operation to the matrix.
func (m *Matrix) Fold(form1, form2 string) {
	src, dst := []rune(form1), []rune(form2)
	null := m.alphabet.NullSlot()

	for _, op := range EditScript(form1, form2) {
		switch op.Tag {
		case Insert:
			for k := op.DstStart; k < op.DstEnd; k++ {
				m.pair(null, m.alphabet.Slot(dst[k]))
			}
		case Delete:
			for k := op.SrcStart; k < op.SrcEnd; k++ {
				m.pair(null, m.alphabet.Slot(src[k]))
			}
		case Equal:
			for k := op.SrcStart; k < op.SrcEnd; k++ {
				slot := m.alphabet.Slot(src[k])
				m.counts.SetSym(slot, slot, m.counts.At(slot, slot)+1)
			}
		case Replace:
			for k := 0; k < op.SrcEnd-op.SrcStart; k++ {
				m.pair(m.alphabet.Slot(src[op.SrcStart+k]), m.alphabet.Slot(dst[op.DstStart+k]))
			}
		}
	}
}

// pair increments [i][j] and [j][i]. When both fall on the same cell, as for
// two distinct characters sharing the "other" slot, that cell grows by two.
func (m *Matrix) pair(i, j int) {
	inc := 1.0
	if i == j {
		inc = 2.0
	}
	m.counts.SetSym(i, j, m.counts.At(i, j)+inc)
}

// Add sums other into m elementwise. Both matrices must share an alphabet.
func (m *Matrix) Add(other *Matrix) error {
	if other.alphabet != m.alphabet {
		return fmt.Errorf("cannot add correspondence matrices over alphabets %c-%c and %c-%c",
			m.alphabet.First, m.alphabet.Last, other.alphabet.First, other.alphabet.Last)
	}
	m.counts.AddSym(m.counts, other.counts)
	return nil
}

// Total returns the sum over all cells
func (m *Matrix) Total() float64 {
	total := 0.0
	n := m.Dim()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			total += m.counts.At(i, j)
		}
	}
	return total
}

// UpperTriangle flattens the cells on and above the diagonal row by row.
// No information is lost since the matrix is symmetric.
func (m *Matrix) UpperTriangle() []float64 {
	n := m.Dim()
	out := make([]float64, 0, UpperTriangleSize(n))
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			out = append(out, m.counts.At(i, j))
		}
	}
	return out
}

// Rows returns the full symmetric matrix as a fresh slice of rows
func (m *Matrix) Rows() [][]float64 {
	n := m.Dim()
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, n)
		for j := range rows[i] {
			rows[i][j] = m.counts.At(i, j)
		}
	}
	return rows
}

// Symmetric exposes the counts as a read-only gonum matrix
func (m *Matrix) Symmetric() mat.Symmetric {
	s := mat.NewSymDense(m.Dim(), nil)
	s.CopySym(m.counts)
	return s
}

// Correspondence is a single non-zero cell of the upper triangle
type Correspondence struct {
	From  string
	To    string
	Count float64
}

// Top returns the n most frequent correspondences, most frequent first.
// Equal counts keep row-major order. n <= 0 returns all non-zero cells.
func (m *Matrix) Top(n int) []Correspondence {
	dim := m.Dim()

	type cell struct {
		i, j  int
		count float64
	}
	var cells []cell
	for i := 0; i < dim; i++ {
		for j := i; j < dim; j++ {
			if c := m.counts.At(i, j); c != 0 {
				cells = append(cells, cell{i, j, c})
			}
		}
	}

	sort.SliceStable(cells, func(a, b int) bool {
		return cells[a].count > cells[b].count
	})

	if n > 0 && len(cells) > n {
		cells = cells[:n]
	}

	out := make([]Correspondence, len(cells))
	for k, c := range cells {
		out[k] = Correspondence{
			From:  m.alphabet.Label(c.i),
			To:    m.alphabet.Label(c.j),
			Count: c.count,
		}
	}
	return out
}
