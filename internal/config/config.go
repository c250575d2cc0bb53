package config

import (
	"os"
	"path/filepath"

	"github.com/standardbeagle/cognates/pkg/pathutil"
)

// FileName is the configuration file looked up in the working directory
const FileName = ".cognates.kdl"

// Defaults for values the configuration file leaves out
const (
	DefaultFirstLetter = "a"
	DefaultLastLetter  = "z"
	DefaultStrategy    = "hk2011"
)

type Config struct {
	Version int
	// Root is the directory relative file paths are resolved against
	Root          string
	Alphabet      Alphabet
	Languages     Languages
	Extraction    Extraction
	Preprocessors Preprocessors
	// POSTags is a "meaning<TAB>tag" file
	POSTags string
	// LanguageSimilarities is a "language1<TAB>language2<TAB>value" file
	// supplying test-time language similarities
	LanguageSimilarities string
}

// Alphabet bounds the letters that get their own correspondence slot
type Alphabet struct {
	First string
	Last  string
}

type Languages struct {
	// Count is the number of languages; 0 derives it from the examples
	Count  int
	Groups [][]int
}

type Extraction struct {
	Strategy string
	// Measures lists the measures of the custom strategy
	Measures []string
	// Workers bounds extraction goroutines; 0 means one per CPU
	Workers int
	// LanguageSimilarity appends train and test language similarity columns
	LanguageSimilarity bool
}

// Preprocessors name table files; empty means the built-in tables
type Preprocessors struct {
	SoundClasses string
	Consonants   string
}

// Default returns the configuration used when no file is present
func Default() *Config {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	return &Config{
		Version: 1,
		Root:    cwd,
		Alphabet: Alphabet{
			First: DefaultFirstLetter,
			Last:  DefaultLastLetter,
		},
		Extraction: Extraction{
			Strategy: DefaultStrategy,
		},
	}
}

// Load reads FileName from dir, falling back to defaults when it is absent
func Load(dir string) (*Config, error) {
	if dir == "" {
		dir = "."
	}
	cfg, err := LoadKDL(filepath.Join(dir, FileName))
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = Default()
		cfg.Root = pathutil.Abs(dir)
	}
	return cfg, nil
}

// Resolve makes a configured path absolute relative to Root
func (c *Config) Resolve(path string) string {
	return pathutil.Join(c.Root, path)
}
