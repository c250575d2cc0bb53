package alignment

import (
	"testing"

	"github.com/hbollon/go-edlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pairs = [][2]string{
	{"kitten", "sitting"},
	{"night", "nacht"},
	{"flame", "flame"},
	{"", "abc"},
	{"abc", ""},
	{"", ""},
	{"mother", "madre"},
	{"big dog", "bigdog"},
	{"ananas", "banana"},
}

func TestEditScript_Kitten(t *testing.T) {
	ops := EditScript("kitten", "sitting")

	assert.Equal(t, []Opcode{
		{Tag: Replace, SrcStart: 0, SrcEnd: 1, DstStart: 0, DstEnd: 1},
		{Tag: Equal, SrcStart: 1, SrcEnd: 4, DstStart: 1, DstEnd: 4},
		{Tag: Replace, SrcStart: 4, SrcEnd: 5, DstStart: 4, DstEnd: 5},
		{Tag: Equal, SrcStart: 5, SrcEnd: 6, DstStart: 5, DstEnd: 6},
		{Tag: Insert, SrcStart: 6, SrcEnd: 6, DstStart: 6, DstEnd: 7},
	}, ops)
	assert.Equal(t, 3, Distance(ops))
}

func TestEditScript_EmptyForms(t *testing.T) {
	assert.Empty(t, EditScript("", ""))
	assert.Equal(t, []Opcode{{Tag: Insert, SrcStart: 0, SrcEnd: 0, DstStart: 0, DstEnd: 2}}, EditScript("", "ab"))
	assert.Equal(t, []Opcode{{Tag: Delete, SrcStart: 0, SrcEnd: 2, DstStart: 0, DstEnd: 0}}, EditScript("ab", ""))
}

func TestEditScript_IsMinimalAndCovering(t *testing.T) {
	for _, p := range pairs {
		ops := EditScript(p[0], p[1])
		assert.Equal(t, edlib.LevenshteinDistance(p[0], p[1]), Distance(ops), "%q/%q", p[0], p[1])

		src, dst := 0, 0
		for _, op := range ops {
			assert.Equal(t, src, op.SrcStart)
			assert.Equal(t, dst, op.DstStart)
			src, dst = op.SrcEnd, op.DstEnd
		}
		assert.Equal(t, len([]rune(p[0])), src)
		assert.Equal(t, len([]rune(p[1])), dst)
	}
}

func TestAlphabet(t *testing.T) {
	a := DefaultAlphabet()

	assert.Equal(t, 26, a.Range())
	assert.Equal(t, 28, a.Dim())
	assert.Equal(t, 0, a.Slot('a'))
	assert.Equal(t, 25, a.Slot('z'))
	assert.Equal(t, 26, a.Slot(' '))
	assert.Equal(t, 26, a.Slot('é'))
	assert.Equal(t, 26, a.OtherSlot())
	assert.Equal(t, 27, a.NullSlot())
	assert.Equal(t, "c", a.Label(2))
	assert.Equal(t, "_", a.Label(26))
	assert.Equal(t, "-", a.Label(27))
}

func TestCorrespondences_Folding(t *testing.T) {
	a := DefaultAlphabet()
	m := Correspondences(a, "kitten", "sitting")

	// k/s and e/i substitutions
	assert.Equal(t, 1.0, m.At(a.Slot('k'), a.Slot('s')))
	assert.Equal(t, 1.0, m.At(a.Slot('s'), a.Slot('k')))
	assert.Equal(t, 1.0, m.At(a.Slot('e'), a.Slot('i')))

	// i, t, t, n matched
	assert.Equal(t, 1.0, m.At(a.Slot('i'), a.Slot('i')))
	assert.Equal(t, 2.0, m.At(a.Slot('t'), a.Slot('t')))
	assert.Equal(t, 1.0, m.At(a.Slot('n'), a.Slot('n')))

	// inserted g
	assert.Equal(t, 1.0, m.At(a.NullSlot(), a.Slot('g')))
	assert.Equal(t, 1.0, m.At(a.Slot('g'), a.NullSlot()))
}

func TestCorrespondences_OtherSlot(t *testing.T) {
	a := DefaultAlphabet()

	deleted := Correspondences(a, "big dog", "bigdog")
	assert.Equal(t, 1.0, deleted.At(a.OtherSlot(), a.NullSlot()))

	// Two distinct characters that share the other slot still count twice.
	replaced := Correspondences(a, "a b", "a.b")
	assert.Equal(t, 2.0, replaced.At(a.OtherSlot(), a.OtherSlot()))
}

func TestCorrespondences_SymmetricAndCounted(t *testing.T) {
	a := DefaultAlphabet()
	total := NewMatrix(a)
	expected := 0.0

	for _, p := range pairs {
		m := Correspondences(a, p[0], p[1])
		require.NoError(t, total.Add(m))

		// Each insert, delete and replace touches two cells; each match one.
		for _, op := range EditScript(p[0], p[1]) {
			switch op.Tag {
			case Equal:
				expected += float64(op.SrcEnd - op.SrcStart)
			case Insert:
				expected += 2 * float64(op.DstEnd-op.DstStart)
			default:
				expected += 2 * float64(op.SrcEnd-op.SrcStart)
			}
		}
	}

	rows := total.Rows()
	for i := range rows {
		for j := range rows[i] {
			assert.Equal(t, rows[i][j], rows[j][i])
		}
	}
	assert.Equal(t, expected, total.Total())
}

func TestMatrix_AddIsOrderIndependent(t *testing.T) {
	a := DefaultAlphabet()

	forward := NewMatrix(a)
	backward := NewMatrix(a)
	for i := range pairs {
		require.NoError(t, forward.Add(Correspondences(a, pairs[i][0], pairs[i][1])))
		j := len(pairs) - 1 - i
		require.NoError(t, backward.Add(Correspondences(a, pairs[j][0], pairs[j][1])))
	}
	assert.Equal(t, forward.Rows(), backward.Rows())
}

func TestMatrix_AddRejectsDifferentAlphabet(t *testing.T) {
	m := NewMatrix(DefaultAlphabet())
	err := m.Add(NewMatrix(Alphabet{First: 'a', Last: 'e'}))
	assert.Error(t, err)
}

func TestMatrix_UpperTriangle(t *testing.T) {
	a := Alphabet{First: 'a', Last: 'b'} // slots a, b, other, null
	m := Correspondences(a, "ab", "b")

	upper := m.UpperTriangle()
	require.Len(t, upper, UpperTriangleSize(4))
	assert.Equal(t, 10, len(upper))

	// row a: aa ab a_ a-
	assert.Equal(t, []float64{0, 0, 0, 1}, upper[0:4])
	// row b: bb b_ b-
	assert.Equal(t, []float64{1, 0, 0}, upper[4:7])
}

func TestMatrix_Top(t *testing.T) {
	a := DefaultAlphabet()
	m := Correspondences(a, "kitten", "sitting")

	top := m.Top(2)
	require.Len(t, top, 2)
	assert.Equal(t, Correspondence{From: "t", To: "t", Count: 2}, top[0])
	assert.Equal(t, 1.0, top[1].Count)

	assert.Len(t, m.Top(0), 6)
}

func TestMatrix_SymmetricMatchesRows(t *testing.T) {
	a := Alphabet{First: 'a', Last: 'e'}
	m := Correspondences(a, "abcx", "bcay")

	sym := m.Symmetric()
	rows := m.Rows()
	require.Equal(t, a.Dim(), sym.SymmetricDim())
	for i := range rows {
		for j := range rows[i] {
			assert.Equal(t, rows[i][j], sym.At(i, j), "cell %d,%d", i, j)
		}
	}

	// The view is a copy
	m.Fold("a", "a")
	assert.Equal(t, rows[0][0], sym.At(0, 0))
	assert.NotEqual(t, m.At(0, 0), sym.At(0, 0))
}
