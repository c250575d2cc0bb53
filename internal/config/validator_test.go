package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/cognates/internal/alignment"
	cgerrors "github.com/standardbeagle/cognates/internal/errors"
	"github.com/standardbeagle/cognates/internal/features"
)

func TestValidateAndSetDefaults(t *testing.T) {
	cfg := Default()
	cfg.Languages = Languages{Count: 3, Groups: [][]int{{1, 2}, {3}}}

	require.NoError(t, NewValidator().ValidateAndSetDefaults(cfg))
	assert.Equal(t, runtime.NumCPU(), cfg.Extraction.Workers)
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"multi-letter bound", func(c *Config) { c.Alphabet.First = "ab" }, "alphabet"},
		{"reversed bounds", func(c *Config) { c.Alphabet.First, c.Alphabet.Last = "z", "a" }, "alphabet"},
		{"single language", func(c *Config) { c.Languages.Count = 1 }, "languages"},
		{"member out of range", func(c *Config) {
			c.Languages = Languages{Count: 2, Groups: [][]int{{1, 3}}}
		}, "languages"},
		{"member in two groups", func(c *Config) {
			c.Languages = Languages{Count: 3, Groups: [][]int{{1, 2}, {2, 3}}}
		}, "languages"},
		{"empty group", func(c *Config) { c.Languages.Groups = [][]int{{}} }, "languages"},
		{"unknown strategy", func(c *Config) { c.Extraction.Strategy = "bogus" }, "extraction"},
		{"custom without measures", func(c *Config) { c.Extraction.Strategy = "custom" }, "extraction"},
		{"custom unknown measure", func(c *Config) {
			c.Extraction.Strategy = "custom"
			c.Extraction.Measures = []string{"LCSR", "nope"}
		}, "extraction"},
		{"negative workers", func(c *Config) { c.Extraction.Workers = -1 }, "extraction"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := ValidateConfig(cfg)
			require.Error(t, err)
			var cfgErr *cgerrors.ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestValidate_CustomMeasureErrorIsUnknownMeasure(t *testing.T) {
	cfg := Default()
	cfg.Extraction.Strategy = "custom"
	cfg.Extraction.Measures = []string{"nope"}
	assert.True(t, errors.Is(ValidateConfig(cfg), cgerrors.ErrUnknownMeasure))
}

func TestResources(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pos.tsv"), []byte("1\tnoun\n2\tverb\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cons.txt"), []byte("n,t\n"), 0644))

	cfg := Default()
	cfg.Root = dir
	cfg.Alphabet = Alphabet{First: "a", Last: "e"}
	cfg.Languages.Groups = [][]int{{1}, {2}}
	cfg.POSTags = "pos.tsv"
	cfg.Preprocessors.Consonants = "cons.txt"
	require.NoError(t, ValidateConfig(cfg))

	res, err := cfg.Resources(2)
	require.NoError(t, err)
	assert.Equal(t, alignment.Alphabet{First: 'a', Last: 'e'}, res.Alphabet)
	assert.Equal(t, 2, res.LanguageCount)
	assert.Equal(t, map[int]string{1: "noun", 2: "verb"}, res.POSTags)
	assert.Equal(t, "nt", res.Consonants.Apply("night"))
	assert.NotNil(t, res.SoundClasses)

	cfg.Extraction.Strategy = "minimal"
	s, err := cfg.Strategy(res)
	require.NoError(t, err)
	assert.Equal(t, features.Minimal, s.Kind())
	assert.Equal(t, 4, s.Width())

	cfg.Extraction.Strategy = "custom"
	cfg.Extraction.Measures = []string{"LCSR"}
	s, err = cfg.Strategy(res)
	require.NoError(t, err)
	assert.Equal(t, []string{"LCSR"}, s.ColumnNames())

	cfg.POSTags = "missing.tsv"
	_, err = cfg.Resources(2)
	var cfgErr *cgerrors.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "pos_tags", cfgErr.Field)

	cfg.Preprocessors.SoundClasses = "missing.txt"
	_, err = cfg.Resources(2)
	var multi *cgerrors.MultiError
	require.True(t, errors.As(err, &multi))
	require.Len(t, multi.Errors, 2)
	assert.Contains(t, multi.Error(), "2 errors")
}
