// Package preprocess rewrites wordforms character by character before
// similarity measures are computed, e.g. mapping letters to sound classes or
// keeping consonants only.
package preprocess

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/pelletier/go-toml/v2"
)

// Preprocessor maps single characters to replacement strings. Characters
// without a mapping are dropped, so preprocessing may shorten a form.
type Preprocessor map[rune]string

// Apply rewrites form
func (p Preprocessor) Apply(form string) string {
	var b strings.Builder
	b.Grow(len(form))
	for _, r := range form {
		if repl, ok := p[r]; ok {
			b.WriteString(repl)
		}
	}
	return b.String()
}

// Len returns the number of mapped characters
func (p Preprocessor) Len() int {
	return len(p)
}

// String lists the mappings in character order, for reports and debugging
func (p Preprocessor) String() string {
	keys := make([]rune, 0, len(p))
	for r := range p {
		keys = append(keys, r)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	parts := make([]string, len(keys))
	for i, r := range keys {
		parts[i] = fmt.Sprintf("%c:%s", r, p[r])
	}
	return strings.Join(parts, " ")
}

// DefaultSoundClasses groups Latin consonants into Dolgopolsky-style sound
// classes. Vowels are dropped.
func DefaultSoundClasses() Preprocessor {
	return fromClasses(map[string][]string{
		"P": {"p", "b", "f"},
		"T": {"t", "d"},
		"S": {"s", "z", "c"},
		"K": {"k", "g", "q", "x"},
		"M": {"m"},
		"N": {"n"},
		"R": {"r", "l"},
		"W": {"w", "v"},
		"J": {"j", "y"},
		"H": {"h"},
	})
}

// DefaultConsonants keeps Latin consonants and drops everything else
func DefaultConsonants() Preprocessor {
	return fromLetters(strings.Split("b,c,d,f,g,h,j,k,l,m,n,p,q,r,s,t,v,w,x,y,z", ","))
}

func fromClasses(classes map[string][]string) Preprocessor {
	p := make(Preprocessor)
	for class, letters := range classes {
		for _, l := range letters {
			r, _ := utf8.DecodeRuneInString(l)
			p[r] = class
		}
	}
	return p
}

func fromLetters(letters []string) Preprocessor {
	p := make(Preprocessor, len(letters))
	for _, l := range letters {
		r, _ := utf8.DecodeRuneInString(l)
		p[r] = l
	}
	return p
}

// tableFile is the TOML layout of a preprocessor table:
//
//	letters = ["b", "c", "d"]
//
//	[classes]
//	P = ["p", "b", "f"]
type tableFile struct {
	Letters []string            `toml:"letters"`
	Classes map[string][]string `toml:"classes"`
}

// LoadFile reads a preprocessor table. Files ending in .toml are decoded as
// TOML; anything else uses the line format understood by Parse.
func LoadFile(path string) (Preprocessor, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read preprocessor table %s: %w", path, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return parseTOML(content)
	}
	return Parse(bytes.NewReader(content))
}

func parseTOML(content []byte) (Preprocessor, error) {
	var table tableFile
	if err := toml.Unmarshal(content, &table); err != nil {
		return nil, fmt.Errorf("failed to parse preprocessor table: %w", err)
	}

	for _, letter := range table.Letters {
		if err := checkLetter(letter); err != nil {
			return nil, err
		}
	}
	for _, letters := range table.Classes {
		for _, letter := range letters {
			if err := checkLetter(letter); err != nil {
				return nil, err
			}
		}
	}

	p := fromLetters(table.Letters)
	for r, class := range fromClasses(table.Classes) {
		p[r] = class
	}
	return p, nil
}

// Parse reads the line format. A line "K:c,k,q" maps each listed character
// to the class K; a line "b,c,d" maps each listed character to itself.
// Blank lines and lines starting with # are skipped.
func Parse(r io.Reader) (Preprocessor, error) {
	p := make(Preprocessor)
	scanner := bufio.NewScanner(r)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		class, list, isClass := strings.Cut(line, ":")
		if !isClass {
			list = line
		}

		for _, field := range strings.Split(list, ",") {
			letter := strings.TrimSpace(field)
			if letter == "" {
				continue
			}
			if err := checkLetter(letter); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}

			r, _ := utf8.DecodeRuneInString(letter)
			if isClass {
				p[r] = strings.TrimSpace(class)
			} else {
				p[r] = letter
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return p, nil
}

func checkLetter(letter string) error {
	if utf8.RuneCountInString(letter) != 1 {
		return fmt.Errorf("preprocessor entry %q must be a single character", letter)
	}
	return nil
}
