package config

import (
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"unicode/utf8"

	cgerrors "github.com/standardbeagle/cognates/internal/errors"
	"github.com/standardbeagle/cognates/internal/features"
	"github.com/standardbeagle/cognates/internal/measures"
)

// Validator validates configuration and sets smart defaults
type Validator struct{}

// NewValidator creates a new configuration validator
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateAndSetDefaults validates configuration and applies smart defaults
// Returns an error if validation fails
func (v *Validator) ValidateAndSetDefaults(cfg *Config) error {
	if err := v.validateAlphabet(&cfg.Alphabet); err != nil {
		return cgerrors.NewConfigError("alphabet", cfg.Alphabet.First+"-"+cfg.Alphabet.Last, err)
	}

	if err := v.validateLanguages(&cfg.Languages); err != nil {
		return cgerrors.NewConfigError("languages", strconv.Itoa(cfg.Languages.Count), err)
	}

	if err := v.validateExtraction(&cfg.Extraction); err != nil {
		return cgerrors.NewConfigError("extraction", cfg.Extraction.Strategy, err)
	}

	v.setSmartDefaults(cfg)
	return nil
}

func singleLetter(s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("%q must be a single letter", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

// validateAlphabet validates alphabet bounds
func (v *Validator) validateAlphabet(a *Alphabet) error {
	first, err := singleLetter(a.First)
	if err != nil {
		return err
	}
	last, err := singleLetter(a.Last)
	if err != nil {
		return err
	}
	if first > last {
		return fmt.Errorf("first letter %q comes after last letter %q", a.First, a.Last)
	}
	return nil
}

// validateLanguages validates the language count and groups
func (v *Validator) validateLanguages(l *Languages) error {
	if l.Count < 0 || l.Count == 1 {
		return fmt.Errorf("language count must be 0 (derived) or at least 2, got %d", l.Count)
	}

	seen := make(map[int]int)
	for g, members := range l.Groups {
		if len(members) == 0 {
			return fmt.Errorf("language group %d is empty", g+1)
		}
		for _, lang := range members {
			if lang < 1 || (l.Count > 0 && lang > l.Count) {
				return fmt.Errorf("language %d in group %d is outside 1..%d", lang, g+1, l.Count)
			}
			if prev, ok := seen[lang]; ok {
				return fmt.Errorf("language %d is in groups %d and %d", lang, prev+1, g+1)
			}
			seen[lang] = g
		}
	}
	return nil
}

// validateExtraction validates the strategy and worker settings
func (v *Validator) validateExtraction(e *Extraction) error {
	kind, err := features.ParseStrategyKind(e.Strategy)
	if err != nil {
		return err
	}

	if kind == features.Custom {
		if len(e.Measures) == 0 {
			return errors.New("custom strategy needs a measures list")
		}
		if _, err := measures.LookupAll(e.Measures); err != nil {
			return err
		}
	}

	// Workers: 0 means auto-detect (will be set by smart defaults)
	if e.Workers < 0 {
		return fmt.Errorf("workers cannot be negative, got %d", e.Workers)
	}
	return nil
}

// setSmartDefaults applies smart defaults based on system capabilities
func (v *Validator) setSmartDefaults(cfg *Config) {
	if cfg.Extraction.Workers == 0 {
		cfg.Extraction.Workers = runtime.NumCPU()
	}
	if cfg.Version == 0 {
		cfg.Version = 1
	}
}

// ValidateConfig is a convenience function for quick validation
func ValidateConfig(cfg *Config) error {
	validator := NewValidator()
	return validator.ValidateAndSetDefaults(cfg)
}
