package config

import (
	"unicode/utf8"

	"github.com/standardbeagle/cognates/internal/alignment"
	"github.com/standardbeagle/cognates/internal/corpus"
	cgerrors "github.com/standardbeagle/cognates/internal/errors"
	"github.com/standardbeagle/cognates/internal/features"
	"github.com/standardbeagle/cognates/internal/preprocess"
)

// AlphabetRange converts the configured letters into an alignment alphabet.
// The configuration must have been validated.
func (c *Config) AlphabetRange() alignment.Alphabet {
	first, _ := utf8.DecodeRuneInString(c.Alphabet.First)
	last, _ := utf8.DecodeRuneInString(c.Alphabet.Last)
	return alignment.Alphabet{First: first, Last: last}
}

// Resources loads the tables strategies draw on. languageCount is used when
// the configuration leaves the count to be derived from the data. Load
// failures are collected into one MultiError.
func (c *Config) Resources(languageCount int) (features.Resources, error) {
	res := features.Resources{
		Alphabet:       c.AlphabetRange(),
		LanguageCount:  c.Languages.Count,
		LanguageGroups: c.Languages.Groups,
		SoundClasses:   preprocess.DefaultSoundClasses(),
		Consonants:     preprocess.DefaultConsonants(),
	}
	if res.LanguageCount == 0 {
		res.LanguageCount = languageCount
	}

	var errs []error
	if c.Preprocessors.SoundClasses != "" {
		p, err := preprocess.LoadFile(c.Resolve(c.Preprocessors.SoundClasses))
		if err != nil {
			errs = append(errs, cgerrors.NewConfigError("preprocessors.sound_classes", c.Preprocessors.SoundClasses, err))
		} else {
			res.SoundClasses = p
		}
	}
	if c.Preprocessors.Consonants != "" {
		p, err := preprocess.LoadFile(c.Resolve(c.Preprocessors.Consonants))
		if err != nil {
			errs = append(errs, cgerrors.NewConfigError("preprocessors.consonants", c.Preprocessors.Consonants, err))
		} else {
			res.Consonants = p
		}
	}
	if c.POSTags != "" {
		tags, err := corpus.LoadPOSTags(c.Resolve(c.POSTags))
		if err != nil {
			errs = append(errs, cgerrors.NewConfigError("pos_tags", c.POSTags, err))
		} else {
			res.POSTags = tags
		}
	}

	return res, cgerrors.NewMultiError(errs).ErrorOrNil()
}

// Strategy resolves the configured extraction strategy
func (c *Config) Strategy(res features.Resources) (*features.Strategy, error) {
	kind, err := features.ParseStrategyKind(c.Extraction.Strategy)
	if err != nil {
		return nil, err
	}
	if kind == features.Custom {
		return features.NewCustomStrategy(c.Extraction.Measures)
	}
	return features.NewStrategy(kind, res)
}
