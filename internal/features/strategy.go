package features

import (
	"fmt"
	"strings"

	"github.com/standardbeagle/cognates/internal/alignment"
	cgerrors "github.com/standardbeagle/cognates/internal/errors"
	"github.com/standardbeagle/cognates/internal/measures"
	"github.com/standardbeagle/cognates/internal/preprocess"
)

// StrategyKind names a predefined extraction strategy
type StrategyKind int

const (
	IdenticalWords StrategyKind = iota
	IdenticalPrefix
	IdenticalFirstLetter
	Negative
	HK2011
	HK2011Full
	Minimal
	Combined
	AllMeasures
	Custom
)

var strategyNames = [...]string{
	IdenticalWords:       "identicalWords",
	IdenticalPrefix:      "identicalPrefix",
	IdenticalFirstLetter: "identicalFirstLetter",
	Negative:             "negative",
	HK2011:               "hk2011",
	HK2011Full:           "hk2011Full",
	Minimal:              "minimal",
	Combined:             "combined",
	AllMeasures:          "allMeasures",
	Custom:               "custom",
}

func (k StrategyKind) String() string {
	if k < 0 || int(k) >= len(strategyNames) {
		return fmt.Sprintf("strategy(%d)", int(k))
	}
	return strategyNames[k]
}

// ParseStrategyKind resolves a strategy by name, ignoring case
func ParseStrategyKind(name string) (StrategyKind, error) {
	for i, n := range strategyNames {
		if strings.EqualFold(n, name) {
			return StrategyKind(i), nil
		}
	}
	return 0, cgerrors.NewConfigError("extraction.strategy", name, fmt.Errorf("unknown strategy (available: %s)", strings.Join(StrategyNames(), ", ")))
}

// StrategyNames lists every strategy name
func StrategyNames() []string {
	return append([]string(nil), strategyNames[:]...)
}

var hk2011Measures = []measures.ID{
	measures.BasicMEDID,
	measures.LCPLengthID,
	measures.CommonBigramNumberID,
	measures.LongerWordLenID,
	measures.ShorterWordLenID,
	measures.WordLenDifferenceID,
}

// Resources are the external tables a strategy may draw on
type Resources struct {
	Alphabet       alignment.Alphabet
	LanguageCount  int
	LanguageGroups [][]int
	// POSTags maps meaning ids to part-of-speech tags
	POSTags      map[int]string
	SoundClasses preprocess.Preprocessor
	Consonants   preprocess.Preprocessor
}

// DefaultResources uses the a-z alphabet and the built-in preprocessors
func DefaultResources() Resources {
	return Resources{
		Alphabet:     alignment.DefaultAlphabet(),
		SoundClasses: preprocess.DefaultSoundClasses(),
		Consonants:   preprocess.DefaultConsonants(),
	}
}

// Strategy is a resolved, ordered list of feature blocks
type Strategy struct {
	kind   StrategyKind
	blocks []Block
}

// NewStrategy resolves a predefined strategy against its resources. Custom
// strategies need NewCustomStrategy.
func NewStrategy(kind StrategyKind, res Resources) (*Strategy, error) {
	var blocks []Block
	add := func(b Block, err error) error {
		if err != nil {
			return err
		}
		blocks = append(blocks, b)
		return nil
	}
	single := func(id measures.ID) error {
		return add(MeasureBlock([]measures.ID{id}, nil, ""))
	}

	var err error
	switch kind {
	case IdenticalWords:
		err = single(measures.IdenticalWordsID)
	case IdenticalPrefix:
		err = single(measures.IdenticalPrefixID)
	case IdenticalFirstLetter:
		err = single(measures.IdenticalFirstLetterID)
	case Negative:
		err = single(measures.SharedLetterID)
	case HK2011:
		err = add(MeasureBlock(hk2011Measures, nil, ""))
	case HK2011Full:
		if err = add(MeasureBlock(hk2011Measures, nil, "")); err == nil {
			err = add(LanguagePairBlock(res.LanguageCount))
		}
	case Minimal:
		if err = add(MeasureBlock([]measures.ID{measures.LCPRatioID, measures.BigramDiceID}, nil, "")); err == nil {
			err = add(POSTagBlock(res.POSTags))
		}
	case Combined:
		blocks, err = combinedBlocks(res)
	case AllMeasures:
		err = add(MeasureBlock(measures.All(), nil, ""))
	case Custom:
		return nil, cgerrors.NewConfigError("extraction.strategy", kind.String(), fmt.Errorf("custom strategies need an explicit measure list"))
	default:
		return nil, cgerrors.NewConfigError("extraction.strategy", kind.String(), fmt.Errorf("unknown strategy"))
	}
	if err != nil {
		return nil, err
	}
	return &Strategy{kind: kind, blocks: blocks}, nil
}

func combinedBlocks(res Resources) ([]Block, error) {
	if res.Consonants == nil {
		return nil, cgerrors.NewConfigError("preprocessors.consonants", "", errNoPreprocessor)
	}
	if res.SoundClasses == nil {
		return nil, cgerrors.NewConfigError("preprocessors.sound_classes", "", errNoPreprocessor)
	}

	raw, err := MeasureBlock([]measures.ID{
		measures.CommonBigramRatioID,
		measures.CommonTrigramNumberID,
		measures.BigramDiceID,
		measures.JaroDistanceID,
	}, nil, "")
	if err != nil {
		return nil, err
	}
	consonants, err := MeasureBlock([]measures.ID{measures.IdenticalWordsID}, res.Consonants, "consonants")
	if err != nil {
		return nil, err
	}
	classes, err := MeasureBlock([]measures.ID{
		measures.LCPLengthID,
		measures.CommonBigramNumberID,
		measures.IdenticalPrefixID,
	}, res.SoundClasses, "soundClasses")
	if err != nil {
		return nil, err
	}
	pos, err := POSTagBlock(res.POSTags)
	if err != nil {
		return nil, err
	}
	group, err := LanguageGroupBlock(res.LanguageGroups)
	if err != nil {
		return nil, err
	}

	return []Block{raw, consonants, classes, pos, LetterBlock(res.Alphabet, nil, ""), group}, nil
}

// NewCustomStrategy builds a strategy from an ordered list of measure names
func NewCustomStrategy(names []string) (*Strategy, error) {
	if len(names) == 0 {
		return nil, cgerrors.NewConfigError("extraction.measures", "", fmt.Errorf("custom strategy needs at least one measure"))
	}
	ids, err := measures.LookupAll(names)
	if err != nil {
		return nil, err
	}
	block, err := MeasureBlock(ids, nil, "")
	if err != nil {
		return nil, err
	}
	return &Strategy{kind: Custom, blocks: []Block{block}}, nil
}

// NewBlockStrategy wraps explicit blocks, in order, as a custom strategy
func NewBlockStrategy(blocks ...Block) *Strategy {
	return &Strategy{kind: Custom, blocks: append([]Block(nil), blocks...)}
}

// Kind returns the strategy kind
func (s *Strategy) Kind() StrategyKind { return s.kind }

// Blocks returns the strategy's blocks in column order
func (s *Strategy) Blocks() []Block { return append([]Block(nil), s.blocks...) }

// Width is the length of every vector the strategy produces
func (s *Strategy) Width() int {
	w := 0
	for _, b := range s.blocks {
		w += b.Width()
	}
	return w
}

// ColumnNames names every column in order
func (s *Strategy) ColumnNames() []string {
	cols := make([]string, 0, s.Width())
	for _, b := range s.blocks {
		cols = append(cols, b.Columns()...)
	}
	return cols
}

// Vector computes the feature vector of one example
func (s *Strategy) Vector(ex Example) ([]float64, error) {
	return s.vector(ex, 0)
}

func (s *Strategy) vector(ex Example, row int) ([]float64, error) {
	out := make([]float64, 0, s.Width())
	for _, b := range s.blocks {
		before := len(out)
		var err error
		out, err = b.appendTo(out, ex)
		if err != nil {
			return nil, err
		}
		if got := len(out) - before; got != b.Width() {
			return nil, cgerrors.NewFeatureLengthError(b.Name(), row, b.Width(), got)
		}
	}
	return out, nil
}
