package features

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/standardbeagle/cognates/internal/alignment"
	cgerrors "github.com/standardbeagle/cognates/internal/errors"
	"github.com/standardbeagle/cognates/internal/measures"
	"github.com/standardbeagle/cognates/internal/preprocess"
)

var (
	errMissingTag      = errors.New("meaning has no part-of-speech tag")
	errLanguageRange   = errors.New("language id outside configured range")
	errUngrouped       = errors.New("language belongs to no language group")
	errNoPreprocessor  = errors.New("preprocessor not configured")
	errNoTags          = errors.New("no part-of-speech tags configured")
	errLanguageCount   = errors.New("at least two languages are required")
	errDuplicateMember = errors.New("language listed in more than one group")
	errNoGroups        = errors.New("no language groups configured")
)

// Block is one contiguous group of columns in a feature vector. The set of
// blocks is closed; build them with the constructors in this package.
type Block interface {
	// Name identifies the block in errors and column headers
	Name() string
	// Width is the number of columns the block contributes
	Width() int
	// Columns names each column
	Columns() []string

	appendTo(dst []float64, ex Example) ([]float64, error)
}

type measureBlock struct {
	ids      []measures.ID
	prep     preprocess.Preprocessor
	prepName string
}

// MeasureBlock evaluates the measures in order, optionally on preprocessed
// forms. prepName labels the columns and may be empty for raw forms.
func MeasureBlock(ids []measures.ID, prep preprocess.Preprocessor, prepName string) (Block, error) {
	for _, id := range ids {
		if !id.Valid() {
			return nil, cgerrors.NewMeasureError(strconv.Itoa(int(id)))
		}
	}
	return &measureBlock{ids: append([]measures.ID(nil), ids...), prep: prep, prepName: prepName}, nil
}

func (b *measureBlock) Name() string {
	if b.prepName != "" {
		return "measures[" + b.prepName + "]"
	}
	return "measures"
}

func (b *measureBlock) Width() int { return len(b.ids) }

func (b *measureBlock) Columns() []string {
	cols := measures.Names(b.ids)
	if b.prepName != "" {
		for i := range cols {
			cols[i] = b.prepName + ":" + cols[i]
		}
	}
	return cols
}

func (b *measureBlock) appendTo(dst []float64, ex Example) ([]float64, error) {
	form1, form2 := ex.Form1, ex.Form2
	if b.prep != nil {
		form1, form2 = b.prep.Apply(form1), b.prep.Apply(form2)
	}
	for _, id := range b.ids {
		dst = append(dst, id.Compute(form1, form2))
	}
	return dst, nil
}

type posTagBlock struct {
	tags      []string
	index     map[string]int
	byMeaning map[int]string
}

// POSTagBlock one-hot encodes the part-of-speech tag of the example's
// meaning. The basis is the sorted set of distinct tags.
func POSTagBlock(tagsByMeaning map[int]string) (Block, error) {
	if len(tagsByMeaning) == 0 {
		return nil, cgerrors.NewConfigError("pos_tags", "", errNoTags)
	}

	seen := make(map[string]struct{})
	for _, tag := range tagsByMeaning {
		seen[tag] = struct{}{}
	}
	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	index := make(map[string]int, len(tags))
	for i, tag := range tags {
		index[tag] = i
	}

	byMeaning := make(map[int]string, len(tagsByMeaning))
	for k, v := range tagsByMeaning {
		byMeaning[k] = v
	}
	return &posTagBlock{tags: tags, index: index, byMeaning: byMeaning}, nil
}

func (b *posTagBlock) Name() string { return "pos_tags" }
func (b *posTagBlock) Width() int   { return len(b.tags) }

func (b *posTagBlock) Columns() []string {
	cols := make([]string, len(b.tags))
	for i, tag := range b.tags {
		cols[i] = "pos:" + tag
	}
	return cols
}

func (b *posTagBlock) appendTo(dst []float64, ex Example) ([]float64, error) {
	tag, ok := b.byMeaning[ex.Meaning]
	if !ok {
		return nil, cgerrors.NewConfigError("pos_tags", strconv.Itoa(ex.Meaning), errMissingTag)
	}
	start := len(dst)
	dst = append(dst, make([]float64, len(b.tags))...)
	dst[start+b.index[tag]] = 1.0
	return dst, nil
}

type languagePairBlock struct {
	count int
}

// LanguagePairBlock one-hot encodes the unordered language pair over all
// pairs of distinct languages 1..count. Pairs of the same language leave
// every column at zero.
func LanguagePairBlock(count int) (Block, error) {
	if count < 2 {
		return nil, cgerrors.NewConfigError("languages.count", strconv.Itoa(count), errLanguageCount)
	}
	return &languagePairBlock{count: count}, nil
}

// LanguagePairCount is the number of unordered pairs of distinct languages
func LanguagePairCount(count int) int {
	return count * (count - 1) / 2
}

// LanguagePairIndex is the position of the pair of 0-based language indices
// i < j in the row-major enumeration of unordered pairs.
func LanguagePairIndex(count, i, j int) int {
	return count*(count-1)/2 - (count-i)*(count-i-1)/2 + (j - i) - 1
}

func (b *languagePairBlock) Name() string { return "language_pairs" }
func (b *languagePairBlock) Width() int   { return LanguagePairCount(b.count) }

func (b *languagePairBlock) Columns() []string {
	cols := make([]string, 0, b.Width())
	for i := 1; i <= b.count; i++ {
		for j := i + 1; j <= b.count; j++ {
			cols = append(cols, fmt.Sprintf("pair:%d-%d", i, j))
		}
	}
	return cols
}

func (b *languagePairBlock) appendTo(dst []float64, ex Example) ([]float64, error) {
	for _, l := range []int{ex.Language1, ex.Language2} {
		if l < 1 || l > b.count {
			return nil, cgerrors.NewConfigError("language", strconv.Itoa(l), errLanguageRange)
		}
	}

	start := len(dst)
	dst = append(dst, make([]float64, b.Width())...)

	lo, hi := min(ex.Language1, ex.Language2), max(ex.Language1, ex.Language2)
	if lo != hi {
		dst[start+LanguagePairIndex(b.count, lo-1, hi-1)] = 1.0
	}
	return dst, nil
}

// groupIndex maps every grouped language to the position of its group
func groupIndex(groups [][]int) (map[int]int, error) {
	index := make(map[int]int)
	for g, members := range groups {
		for _, l := range members {
			if prev, ok := index[l]; ok && prev != g {
				return nil, cgerrors.NewConfigError("languages.groups", strconv.Itoa(l), errDuplicateMember)
			}
			index[l] = g
		}
	}
	return index, nil
}

type languageGroupBlock struct {
	groupOf map[int]int
}

// LanguageGroupBlock is a single flag set when both languages belong to the
// same group. Languages outside every group never share one.
func LanguageGroupBlock(groups [][]int) (Block, error) {
	index, err := groupIndex(groups)
	if err != nil {
		return nil, err
	}
	return &languageGroupBlock{groupOf: index}, nil
}

func (b *languageGroupBlock) Name() string      { return "language_group" }
func (b *languageGroupBlock) Width() int        { return 1 }
func (b *languageGroupBlock) Columns() []string { return []string{"sameLanguageGroup"} }

func (b *languageGroupBlock) appendTo(dst []float64, ex Example) ([]float64, error) {
	g1, ok1 := b.groupOf[ex.Language1]
	g2, ok2 := b.groupOf[ex.Language2]
	same := 0.0
	if ok1 && ok2 && g1 == g2 {
		same = 1.0
	}
	return append(dst, same), nil
}

type letterBlock struct {
	alphabet alignment.Alphabet
	prep     preprocess.Preprocessor
	prepName string
}

// LetterBlock contributes the upper triangle of the pair's correspondence
// matrix, optionally computed on preprocessed forms.
func LetterBlock(alphabet alignment.Alphabet, prep preprocess.Preprocessor, prepName string) Block {
	return &letterBlock{alphabet: alphabet, prep: prep, prepName: prepName}
}

func (b *letterBlock) Name() string { return "letters" }
func (b *letterBlock) Width() int   { return alignment.UpperTriangleSize(b.alphabet.Dim()) }

func (b *letterBlock) Columns() []string {
	prefix := "letter:"
	if b.prepName != "" {
		prefix = b.prepName + ":letter:"
	}
	return triangleColumns(b.alphabet, prefix)
}

func triangleColumns(alphabet alignment.Alphabet, prefix string) []string {
	dim := alphabet.Dim()
	cols := make([]string, 0, alignment.UpperTriangleSize(dim))
	for i := 0; i < dim; i++ {
		for j := i; j < dim; j++ {
			cols = append(cols, prefix+alphabet.Label(i)+"/"+alphabet.Label(j))
		}
	}
	return cols
}

func (b *letterBlock) appendTo(dst []float64, ex Example) ([]float64, error) {
	form1, form2 := ex.Form1, ex.Form2
	if b.prep != nil {
		form1, form2 = b.prep.Apply(form1), b.prep.Apply(form2)
	}
	return append(dst, alignment.Correspondences(b.alphabet, form1, form2).UpperTriangle()...), nil
}

type groupLetterBlock struct {
	alphabet   alignment.Alphabet
	groupOf    map[int]int
	groupCount int
}

// GroupLetterBlock holds one correspondence triangle per unordered pair of
// language groups; only the triangle of the example's group pair is filled.
func GroupLetterBlock(alphabet alignment.Alphabet, groups [][]int) (Block, error) {
	index, err := groupIndex(groups)
	if err != nil {
		return nil, err
	}
	return &groupLetterBlock{alphabet: alphabet, groupOf: index, groupCount: len(groups)}, nil
}

// groupPairIndex is the position of groups a <= b among unordered group
// pairs including same-group pairs
func groupPairIndex(count, a, b int) int {
	return a*count - a*(a-1)/2 + (b - a)
}

func (b *groupLetterBlock) Name() string { return "group_letters" }

func (b *groupLetterBlock) Width() int {
	pairs := b.groupCount * (b.groupCount + 1) / 2
	return pairs * alignment.UpperTriangleSize(b.alphabet.Dim())
}

func (b *groupLetterBlock) Columns() []string {
	cols := make([]string, 0, b.Width())
	for g1 := 0; g1 < b.groupCount; g1++ {
		for g2 := g1; g2 < b.groupCount; g2++ {
			cols = append(cols, triangleColumns(b.alphabet, fmt.Sprintf("group%d-%d:", g1, g2))...)
		}
	}
	return cols
}

func (b *groupLetterBlock) appendTo(dst []float64, ex Example) ([]float64, error) {
	g1, ok1 := b.groupOf[ex.Language1]
	g2, ok2 := b.groupOf[ex.Language2]
	if !ok1 {
		return nil, cgerrors.NewConfigError("languages.groups", strconv.Itoa(ex.Language1), errUngrouped)
	}
	if !ok2 {
		return nil, cgerrors.NewConfigError("languages.groups", strconv.Itoa(ex.Language2), errUngrouped)
	}

	size := alignment.UpperTriangleSize(b.alphabet.Dim())
	start := len(dst)
	dst = append(dst, make([]float64, b.Width())...)

	offset := start + groupPairIndex(b.groupCount, min(g1, g2), max(g1, g2))*size
	copy(dst[offset:offset+size], alignment.Correspondences(b.alphabet, ex.Form1, ex.Form2).UpperTriangle())
	return dst, nil
}

var blockNames = []string{"posTags", "languagePairs", "languageGroup", "letters", "groupLetters"}

// BlockNames lists the blocks NamedBlock builds
func BlockNames() []string {
	return append([]string(nil), blockNames...)
}

// NamedBlock builds a block by name against the resources, for appending
// columns after a strategy has run
func NamedBlock(name string, res Resources) (Block, error) {
	switch name {
	case "posTags":
		return POSTagBlock(res.POSTags)
	case "languagePairs":
		return LanguagePairBlock(res.LanguageCount)
	case "languageGroup":
		return LanguageGroupBlock(res.LanguageGroups)
	case "letters":
		return LetterBlock(res.Alphabet, nil, ""), nil
	case "groupLetters":
		if len(res.LanguageGroups) == 0 {
			return nil, cgerrors.NewConfigError("languages.groups", "", errNoGroups)
		}
		return GroupLetterBlock(res.Alphabet, res.LanguageGroups)
	}
	return nil, cgerrors.NewConfigError("append", name, fmt.Errorf("unknown block (available: %s)", strings.Join(blockNames, ", ")))
}
