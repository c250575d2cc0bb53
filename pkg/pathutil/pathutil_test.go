package pathutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToRelative(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix paths")
	}

	tests := []struct {
		name     string
		path     string
		root     string
		expected string
	}{
		{"inside root", "/data/project/forms/train.tsv", "/data/project", "forms/train.tsv"},
		{"root itself", "/data/project", "/data/project", "."},
		{"already relative", "forms/train.tsv", "/data/project", "forms/train.tsv"},
		{"outside root", "/other/sims.tsv", "/data/project", "/other/sims.tsv"},
		{"sibling with shared prefix", "/data/project2/pos.tsv", "/data/project", "/data/project2/pos.tsv"},
		{"dot-dot file name", "/data/project/..hidden", "/data/project", "..hidden"},
		{"empty root", "/data/project/pos.tsv", "", "/data/project/pos.tsv"},
		{"empty path", "", "/data/project", ""},
		{"unclean path", "/data/project/./out/../pos.tsv", "/data/project/", "pos.tsv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToRelative(tt.path, tt.root))
		})
	}
}

func TestJoin(t *testing.T) {
	root := filepath.Join("data", "project")

	assert.Equal(t, filepath.Join(root, "pos.tsv"), Join(root, "pos.tsv"))
	assert.Equal(t, "", Join(root, ""))

	abs := Abs("sims.tsv")
	assert.Equal(t, abs, Join(root, abs))
}

func TestAbsAndDisplay(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	abs := Abs(filepath.Join("out", "train.csv"))
	assert.True(t, filepath.IsAbs(abs))
	assert.Equal(t, filepath.Join(wd, "out", "train.csv"), abs)
	assert.Equal(t, filepath.Join("out", "train.csv"), Display(abs))
	assert.Equal(t, "", Abs(""))
}
