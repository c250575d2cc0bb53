// Package alignment computes minimal unit-cost edit scripts between two
// wordforms and folds them into symmetric letter-correspondence matrices.
package alignment

import "fmt"

// Tag is the kind of an edit operation
type Tag int

const (
	Equal Tag = iota
	Insert
	Delete
	Replace
)

func (t Tag) String() string {
	switch t {
	case Equal:
		return "equal"
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	case Replace:
		return "replace"
	default:
		return fmt.Sprintf("tag(%d)", int(t))
	}
}

// Opcode is a run of same-kind edit operations. Source indices refer to
// form1 and destination indices to form2, both in runes, end-exclusive.
// Insert opcodes have an empty source range; Delete opcodes have an empty
// destination range.
type Opcode struct {
	Tag      Tag
	SrcStart int
	SrcEnd   int
	DstStart int
	DstEnd   int
}

// EditScript returns the opcodes of a minimal unit-cost alignment of form1
// into form2. The concatenated opcodes cover both forms completely, in order.
// Ties are resolved deterministically: while walking back from the end of
// both forms, matches are preferred over substitutions, substitutions over
// deletions, and deletions over insertions.
func EditScript(form1, form2 string) []Opcode {
	src, dst := []rune(form1), []rune(form2)
	dist := distanceTable(src, dst)

	// Walk back from the bottom-right corner collecting single-step tags.
	steps := make([]Tag, 0, len(src)+len(dst))
	i, j := len(src), len(dst)
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && src[i-1] == dst[j-1] && dist[i][j] == dist[i-1][j-1]:
			steps = append(steps, Equal)
			i, j = i-1, j-1
		case i > 0 && j > 0 && dist[i][j] == dist[i-1][j-1]+1:
			steps = append(steps, Replace)
			i, j = i-1, j-1
		case i > 0 && dist[i][j] == dist[i-1][j]+1:
			steps = append(steps, Delete)
			i--
		default:
			steps = append(steps, Insert)
			j--
		}
	}

	var opcodes []Opcode
	i, j = 0, 0
	for k := len(steps) - 1; k >= 0; k-- {
		tag := steps[k]
		di, dj := 1, 1
		switch tag {
		case Insert:
			di = 0
		case Delete:
			dj = 0
		}

		if n := len(opcodes); n > 0 && opcodes[n-1].Tag == tag {
			opcodes[n-1].SrcEnd += di
			opcodes[n-1].DstEnd += dj
		} else {
			opcodes = append(opcodes, Opcode{Tag: tag, SrcStart: i, SrcEnd: i + di, DstStart: j, DstEnd: j + dj})
		}
		i += di
		j += dj
	}
	return opcodes
}

// Distance returns the number of non-equal operations of an edit script,
// which equals the Levenshtein distance of the aligned forms.
func Distance(opcodes []Opcode) int {
	total := 0
	for _, op := range opcodes {
		switch op.Tag {
		case Insert:
			total += op.DstEnd - op.DstStart
		case Delete, Replace:
			total += op.SrcEnd - op.SrcStart
		}
	}
	return total
}

func distanceTable(src, dst []rune) [][]int {
	dist := make([][]int, len(src)+1)
	for i := range dist {
		dist[i] = make([]int, len(dst)+1)
		dist[i][0] = i
	}
	for j := range dist[0] {
		dist[0][j] = j
	}

	for i := 1; i <= len(src); i++ {
		for j := 1; j <= len(dst); j++ {
			cost := 1
			if src[i-1] == dst[j-1] {
				cost = 0
			}
			dist[i][j] = min(dist[i-1][j]+1, dist[i][j-1]+1, dist[i-1][j-1]+cost)
		}
	}
	return dist
}
