// Package corpus reads the tab-separated inputs of the command line tool and
// writes extracted matrices.
//
// Example files carry one labelled pair per line:
//
//	purpose  form1  form2  language1  language2  meaning  label
//
// where purpose is train or test and label is 1 for cognates. Lines starting
// with # are comments.
package corpus

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/standardbeagle/cognates/internal/clusters"
	cgerrors "github.com/standardbeagle/cognates/internal/errors"
	"github.com/standardbeagle/cognates/internal/features"
)

const exampleFields = 7

func newReader(r io.Reader, fields int) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.Comment = '#'
	cr.FieldsPerRecord = fields
	cr.LazyQuotes = true
	return cr
}

// eachRecord calls fn for every record with its line number
func eachRecord(cr *csv.Reader, path string, fn func(line int, rec []string) error) error {
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				return cgerrors.NewInputError(path, perr.Line, perr.Err)
			}
			return cgerrors.NewInputError(path, 0, err)
		}
		line, _ := cr.FieldPos(0)
		if err := fn(line, rec); err != nil {
			return cgerrors.NewInputError(path, line, err)
		}
	}
}

func parseID(field, name string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(field))
	if err != nil {
		return 0, fmt.Errorf("%s %q is not an integer", name, field)
	}
	if v < 1 {
		return 0, fmt.Errorf("%s %d must be positive", name, v)
	}
	return v, nil
}

// ReadExamples adds every example in r to data. path is used in errors.
func ReadExamples(r io.Reader, path string, data *features.Dataset) error {
	return eachRecord(newReader(r, exampleFields), path, func(_ int, rec []string) error {
		purpose, err := features.ParsePurpose(rec[0])
		if err != nil {
			return err
		}

		ids := make([]int, 3)
		for i, name := range []string{"language1", "language2", "meaning"} {
			if ids[i], err = parseID(rec[3+i], name); err != nil {
				return err
			}
		}

		var label features.Label
		switch strings.TrimSpace(rec[6]) {
		case "1":
			label = features.Cognate
		case "0":
			label = features.NonCognate
		default:
			return fmt.Errorf("label %q must be 0 or 1", rec[6])
		}

		data.Add(purpose, features.Example{
			Form1:     strings.ToLower(strings.TrimSpace(rec[1])),
			Form2:     strings.ToLower(strings.TrimSpace(rec[2])),
			Language1: ids[0],
			Language2: ids[1],
			Meaning:   ids[2],
		}, label)
		return nil
	})
}

// ExpandPatterns resolves doublestar glob patterns into a sorted, unique
// file list. A pattern matching nothing is an error.
func ExpandPatterns(patterns []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("pattern %q matches no files", pattern)
		}
		for _, m := range matches {
			if _, ok := seen[m]; !ok {
				seen[m] = struct{}{}
				files = append(files, m)
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

// LoadExamples reads every file matched by the patterns into one dataset,
// in sorted file order
func LoadExamples(patterns []string) (*features.Dataset, error) {
	files, err := ExpandPatterns(patterns)
	if err != nil {
		return nil, err
	}

	data := features.NewDataset()
	for _, path := range files {
		if err := readFile(path, func(f io.Reader) error { return ReadExamples(f, path, data) }); err != nil {
			return nil, err
		}
	}
	return data, nil
}

func readFile(path string, fn func(io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return cgerrors.NewInputError(path, 0, err)
	}
	defer f.Close()
	return fn(f)
}

// ReadPOSTags reads "meaning<TAB>tag" lines
func ReadPOSTags(r io.Reader, path string) (map[int]string, error) {
	tags := make(map[int]string)
	err := eachRecord(newReader(r, 2), path, func(_ int, rec []string) error {
		meaning, err := parseID(rec[0], "meaning")
		if err != nil {
			return err
		}
		tag := strings.TrimSpace(rec[1])
		if tag == "" {
			return fmt.Errorf("empty tag for meaning %d", meaning)
		}
		tags[meaning] = tag
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tags, nil
}

// LoadPOSTags reads a part-of-speech file
func LoadPOSTags(path string) (map[int]string, error) {
	var tags map[int]string
	err := readFile(path, func(f io.Reader) error {
		var err error
		tags, err = ReadPOSTags(f, path)
		return err
	})
	return tags, err
}

// ReadSimilarities reads "language1<TAB>language2<TAB>value" lines into a
// table sized to the larger of count and the largest language id in the
// file. Each line sets both orders of its pair; a later line overrides
// earlier ones.
func ReadSimilarities(r io.Reader, path string, count int) (*features.SimilarityMatrix, error) {
	type entry struct {
		l1, l2 int
		v      float64
	}
	var entries []entry
	err := eachRecord(newReader(r, 3), path, func(_ int, rec []string) error {
		l1, err := parseID(rec[0], "language1")
		if err != nil {
			return err
		}
		l2, err := parseID(rec[1], "language2")
		if err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(rec[2]), 64)
		if err != nil {
			return fmt.Errorf("similarity %q is not a number", rec[2])
		}
		entries = append(entries, entry{l1, l2, v})
		count = max(count, l1, l2)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sims := features.NewSimilarityMatrix(count)
	for _, e := range entries {
		if err := sims.SetSymmetric(e.l1, e.l2, e.v); err != nil {
			return nil, cgerrors.NewInputError(path, 0, err)
		}
	}
	return sims, nil
}

// LoadSimilarities reads a language similarity file
func LoadSimilarities(path string, count int) (*features.SimilarityMatrix, error) {
	var sims *features.SimilarityMatrix
	err := readFile(path, func(f io.Reader) error {
		var err error
		sims, err = ReadSimilarities(f, path, count)
		return err
	})
	return sims, err
}

// Wordforms are the per-meaning wordforms of a grouping input along with
// the meanings and languages it mentions, both sorted
type Wordforms struct {
	Forms     clusters.Wordforms
	Meanings  []int
	Languages []int
}

// ReadWordforms reads "meaning<TAB>language<TAB>form" lines. The wordforms
// of each meaning are ordered by language.
func ReadWordforms(r io.Reader, path string) (*Wordforms, error) {
	forms := make(clusters.Wordforms)
	meanings := make(map[int]struct{})
	languages := make(map[int]struct{})

	err := eachRecord(newReader(r, 3), path, func(_ int, rec []string) error {
		meaning, err := parseID(rec[0], "meaning")
		if err != nil {
			return err
		}
		language, err := parseID(rec[1], "language")
		if err != nil {
			return err
		}
		for _, e := range forms[meaning] {
			if e.Language == language {
				return fmt.Errorf("meaning %d has two wordforms in language %d", meaning, language)
			}
		}
		forms[meaning] = append(forms[meaning], clusters.Entry{Form: strings.ToLower(strings.TrimSpace(rec[2])), Language: language})
		meanings[meaning] = struct{}{}
		languages[language] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, entries := range forms {
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].Language < entries[j].Language })
	}
	return &Wordforms{Forms: forms, Meanings: sortedKeys(meanings), Languages: sortedKeys(languages)}, nil
}

func sortedKeys(m map[int]struct{}) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// WriteMatrix writes a header of column names followed by one row per
// example. Values use the shortest representation that round-trips.
func WriteMatrix(w io.Writer, m *features.Matrix) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(m.Columns()); err != nil {
		return err
	}

	rows, cols := m.Dims()
	record := make([]string, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			record[j] = strconv.FormatFloat(m.At(i, j), 'g', -1, 64)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteLabels writes one label per line
func WriteLabels(w io.Writer, labels []features.Label) error {
	var b strings.Builder
	for _, l := range labels {
		b.WriteString(strconv.Itoa(int(l)))
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// MaxLanguage returns the largest language id used by any example
func MaxLanguage(data *features.Dataset) int {
	highest := 0
	for _, p := range features.Purposes() {
		for _, ex := range data.Examples[p] {
			highest = max(highest, ex.Language1, ex.Language2)
		}
	}
	return highest
}
