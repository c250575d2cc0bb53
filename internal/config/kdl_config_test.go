package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKDL_Defaults(t *testing.T) {
	cfg, err := parseKDL("")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "a", cfg.Alphabet.First)
	assert.Equal(t, "z", cfg.Alphabet.Last)
	assert.Equal(t, DefaultStrategy, cfg.Extraction.Strategy)
	assert.Equal(t, 0, cfg.Languages.Count)
	assert.Empty(t, cfg.Languages.Groups)
}

func TestParseKDL_FullConfig(t *testing.T) {
	kdlContent := `
alphabet {
    first "a"
    last "y"
}

languages {
    count 4
    groups {
        group 1 2
        group 3 4
    }
}

extraction {
    strategy "combined"
    workers 3
    language_similarity true
}

preprocessors {
    sound_classes "dolgo.txt"
    consonants "consonants.toml"
}

pos_tags "pos.tsv"
language_similarities "sims.tsv"
`
	cfg, err := parseKDL(kdlContent)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "y", cfg.Alphabet.Last)
	assert.Equal(t, 4, cfg.Languages.Count)
	assert.Equal(t, [][]int{{1, 2}, {3, 4}}, cfg.Languages.Groups)
	assert.Equal(t, "combined", cfg.Extraction.Strategy)
	assert.Equal(t, 3, cfg.Extraction.Workers)
	assert.True(t, cfg.Extraction.LanguageSimilarity)
	assert.Equal(t, "dolgo.txt", cfg.Preprocessors.SoundClasses)
	assert.Equal(t, "consonants.toml", cfg.Preprocessors.Consonants)
	assert.Equal(t, "pos.tsv", cfg.POSTags)
	assert.Equal(t, "sims.tsv", cfg.LanguageSimilarities)
}

func TestParseKDL_CustomMeasures(t *testing.T) {
	cfg, err := parseKDL(`extraction { strategy "custom"; measures "LCPRatio" "bigramDice"; }`)
	require.NoError(t, err)
	assert.Equal(t, []string{"LCPRatio", "bigramDice"}, cfg.Extraction.Measures)

	cfg, err = parseKDL(`
extraction {
    strategy "custom"
    measures {
        "LCSR"
        "jaroDistance"
    }
}
`)
	require.NoError(t, err)
	assert.Equal(t, []string{"LCSR", "jaroDistance"}, cfg.Extraction.Measures)
}

func TestParseKDL_Invalid(t *testing.T) {
	_, err := parseKDL(`alphabet {`)
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	// No file: defaults rooted at dir
	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, DefaultStrategy, cfg.Extraction.Strategy)
	abs, _ := filepath.Abs(dir)
	assert.Equal(t, abs, cfg.Root)

	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(`extraction { strategy "minimal"; }
pos_tags "data/pos.tsv"`), 0644))

	cfg, err = Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "minimal", cfg.Extraction.Strategy)
	assert.Equal(t, filepath.Join(abs, "data", "pos.tsv"), cfg.Resolve(cfg.POSTags))
	assert.Equal(t, "/abs/pos.tsv", cfg.Resolve("/abs/pos.tsv"))
	assert.Equal(t, "", cfg.Resolve(""))
}

func TestLoadKDL_Missing(t *testing.T) {
	cfg, err := LoadKDL(filepath.Join(t.TempDir(), FileName))
	assert.NoError(t, err)
	assert.Nil(t, cfg)
}
