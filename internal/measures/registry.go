package measures

import (
	"strings"

	cgerrors "github.com/standardbeagle/cognates/internal/errors"
)

// Func is a pairwise measure
type Func func(form1, form2 string) float64

// ID identifies a registered measure
type ID int

const (
	IdenticalWordsID ID = iota
	IdenticalPrefixID
	IdenticalFirstLetterID
	BasicMEDID
	BasicNEDID
	JaroDistanceID
	JaroWinklerDistanceID
	LCPLengthID
	LCPRatioID
	LCSLengthID
	LCSRID
	BigramDiceID
	CommonBigramNumberID
	CommonBigramRatioID
	TrigramDiceID
	CommonTrigramNumberID
	CommonTrigramRatioID
	XBigramDiceID
	XXBigramDiceID
	CommonXBigramNumberID
	CommonXBigramRatioID
	CommonLetterNumberID
	CommonLetterRatioID
	LongerWordLenID
	ShorterWordLenID
	AverageWordLenID
	WordLenDifferenceID
	WordLenDifferenceRatioID
	SharedLetterID

	measureCount
)

type entry struct {
	name string
	fn   Func
}

var registry = [measureCount]entry{
	IdenticalWordsID:         {"identicalWords", IdenticalWords},
	IdenticalPrefixID:        {"identicalPrefix", IdenticalPrefix},
	IdenticalFirstLetterID:   {"identicalFirstLetter", IdenticalFirstLetter},
	BasicMEDID:               {"basicMED", BasicMED},
	BasicNEDID:               {"basicNED", BasicNED},
	JaroDistanceID:           {"jaroDistance", JaroDistance},
	JaroWinklerDistanceID:    {"jaroWinklerDistance", JaroWinklerDistance},
	LCPLengthID:              {"LCPLength", LCPLength},
	LCPRatioID:               {"LCPRatio", LCPRatio},
	LCSLengthID:              {"LCSLength", LCSLength},
	LCSRID:                   {"LCSR", LCSR},
	BigramDiceID:             {"bigramDice", BigramDice},
	CommonBigramNumberID:     {"commonBigramNumber", CommonBigramNumber},
	CommonBigramRatioID:      {"commonBigramRatio", CommonBigramRatio},
	TrigramDiceID:            {"trigramDice", TrigramDice},
	CommonTrigramNumberID:    {"commonTrigramNumber", CommonTrigramNumber},
	CommonTrigramRatioID:     {"commonTrigramRatio", CommonTrigramRatio},
	XBigramDiceID:            {"xBigramDice", XBigramDice},
	XXBigramDiceID:           {"xxBigramDice", XXBigramDice},
	CommonXBigramNumberID:    {"commonXBigramNumber", CommonXBigramNumber},
	CommonXBigramRatioID:     {"commonXBigramRatio", CommonXBigramRatio},
	CommonLetterNumberID:     {"commonLetterNumber", CommonLetterNumber},
	CommonLetterRatioID:      {"commonLetterRatio", CommonLetterRatio},
	LongerWordLenID:          {"longerWordLen", LongerWordLen},
	ShorterWordLenID:         {"shorterWordLen", ShorterWordLen},
	AverageWordLenID:         {"averageWordLen", AverageWordLen},
	WordLenDifferenceID:      {"wordLenDifference", WordLenDifference},
	WordLenDifferenceRatioID: {"wordLenDifferenceRatio", WordLenDifferenceRatio},
	SharedLetterID:           {"sharedLetter", SharedLetter},
}

// String returns the registered name of the measure
func (id ID) String() string {
	if !id.Valid() {
		return "unknown"
	}
	return registry[id].name
}

// Valid reports whether id refers to a registered measure
func (id ID) Valid() bool {
	return id >= 0 && id < measureCount
}

// Func returns the measure function. It panics for invalid ids, which can
// only be produced by bypassing Lookup.
func (id ID) Func() Func {
	return registry[id].fn
}

// Compute evaluates the measure on a pair of forms
func (id ID) Compute(form1, form2 string) float64 {
	return registry[id].fn(form1, form2)
}

// Lookup resolves a measure by its registered name. Matching is
// case-insensitive so that "lcsr" and "LCSR" resolve alike.
func Lookup(name string) (ID, error) {
	for id := ID(0); id < measureCount; id++ {
		if strings.EqualFold(registry[id].name, name) {
			return id, nil
		}
	}
	return -1, cgerrors.NewMeasureError(name)
}

// LookupAll resolves a list of measure names in order
func LookupAll(names []string) ([]ID, error) {
	ids := make([]ID, 0, len(names))
	for _, name := range names {
		id, err := Lookup(name)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// All returns every similarity measure in canonical order. SharedLetter is
// not included; it serves the negative elimination baseline only.
func All() []ID {
	ids := make([]ID, 0, SharedLetterID)
	for id := ID(0); id < SharedLetterID; id++ {
		ids = append(ids, id)
	}
	return ids
}

// Registered returns every measure, including SharedLetter
func Registered() []ID {
	ids := make([]ID, 0, measureCount)
	for id := ID(0); id < measureCount; id++ {
		ids = append(ids, id)
	}
	return ids
}

// Names maps ids to their registered names
func Names(ids []ID) []string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = id.String()
	}
	return names
}
