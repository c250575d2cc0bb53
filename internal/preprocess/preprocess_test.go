package preprocess

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply_DropsUnmapped(t *testing.T) {
	p := Preprocessor{'n': "N", 'g': "K", 't': "T"}
	assert.Equal(t, "NKT", p.Apply("night"))
	assert.Equal(t, "", p.Apply("aeiou"))
	assert.Equal(t, "", p.Apply(""))
}

func TestDefaults(t *testing.T) {
	assert.Equal(t, "NKHT", DefaultSoundClasses().Apply("night"))
	assert.Equal(t, "PTR", DefaultSoundClasses().Apply("fadr"))
	assert.Equal(t, "nght", DefaultConsonants().Apply("night"))
	assert.Equal(t, "nd", DefaultConsonants().Apply("a nd"))
	assert.Equal(t, 21, DefaultConsonants().Len())
}

func TestParse_ClassLines(t *testing.T) {
	input := `# Dolgopolsky
P:p,b,f
K: k, g ,q

T:t,d
`
	p, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, "P", p['b'])
	assert.Equal(t, "K", p['g'])
	assert.Equal(t, "T", p['d'])
	assert.Equal(t, 8, p.Len())
}

func TestParse_LetterList(t *testing.T) {
	p, err := Parse(strings.NewReader("b,c,d\nf, g"))
	require.NoError(t, err)

	assert.Equal(t, "bcdfg", p.Apply("abcdefg"))
}

func TestParse_RejectsMultiCharacterEntries(t *testing.T) {
	_, err := Parse(strings.NewReader("P:p,bb"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}

func TestLoadFile_TOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "classes.toml")
	content := `
letters = ["h"]

[classes]
P = ["p", "b"]
T = ["t", "d"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	p, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "PhT", p.Apply("bhat"))
}

func TestLoadFile_TOMLRejectsMultiCharacterEntries(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte(`letters = ["ch"]`), 0644))

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestLoadFile_LineFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "consonants.txt")
	require.NoError(t, os.WriteFile(path, []byte("n,g,h,t\n"), 0644))

	p, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "nght", p.Apply("night"))
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.txt"))
	assert.Error(t, err)
}

func TestString(t *testing.T) {
	p := Preprocessor{'b': "P", 'a': "V"}
	assert.Equal(t, "a:V b:P", p.String())
}
