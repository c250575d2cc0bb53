// Package features assembles pairwise similarity measures, alignment
// correspondences and language features into per-purpose feature matrices.
//
// A Builder is created per extraction run. Every extraction call appends
// columns to the matrix of each purpose it touches, keeping rows aligned with
// the order of that purpose's examples. Finalize freezes the builder and
// hands out immutable matrices.
package features

import (
	"fmt"
	"strings"
)

// Purpose partitions examples into training and test collections
type Purpose int

const (
	Train Purpose = iota
	Test
	// All is only meaningful when counting examples
	All
)

func (p Purpose) String() string {
	switch p {
	case Train:
		return "train"
	case Test:
		return "test"
	case All:
		return "all"
	default:
		return fmt.Sprintf("purpose(%d)", int(p))
	}
}

// ParsePurpose resolves "train" or "test"
func ParsePurpose(s string) (Purpose, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "train":
		return Train, nil
	case "test":
		return Test, nil
	default:
		return 0, fmt.Errorf("unknown purpose %q (must be train or test)", s)
	}
}

// Purposes lists the partitioning purposes in extraction order
func Purposes() []Purpose {
	return []Purpose{Train, Test}
}

// Example is a pair of wordforms from two languages sharing a meaning.
// Language and meaning ids are small positive integers indexing external
// tables.
type Example struct {
	Form1     string
	Form2     string
	Language1 int
	Language2 int
	Meaning   int
}

// Label marks an example as cognate (1) or not (0)
type Label int

const (
	NonCognate Label = 0
	Cognate    Label = 1
)

// Dataset holds examples and their position-aligned labels per purpose
type Dataset struct {
	Examples map[Purpose][]Example
	Labels   map[Purpose][]Label
}

// NewDataset returns an empty dataset
func NewDataset() *Dataset {
	return &Dataset{
		Examples: make(map[Purpose][]Example),
		Labels:   make(map[Purpose][]Label),
	}
}

// Add appends a labelled example to a purpose
func (d *Dataset) Add(purpose Purpose, example Example, label Label) {
	d.Examples[purpose] = append(d.Examples[purpose], example)
	d.Labels[purpose] = append(d.Labels[purpose], label)
}

// Count returns the number of examples for a purpose; All sums every purpose
func (d *Dataset) Count(purpose Purpose) int {
	if purpose == All {
		total := 0
		for _, p := range Purposes() {
			total += len(d.Examples[p])
		}
		return total
	}
	return len(d.Examples[purpose])
}

// Positives counts cognate labels for a purpose; All sums every purpose
func (d *Dataset) Positives(purpose Purpose) int {
	purposes := []Purpose{purpose}
	if purpose == All {
		purposes = Purposes()
	}

	total := 0
	for _, p := range purposes {
		for _, l := range d.Labels[p] {
			if l == Cognate {
				total++
			}
		}
	}
	return total
}

// present lists the purposes that have an example collection, in extraction order
func (d *Dataset) present() []Purpose {
	var out []Purpose
	for _, p := range Purposes() {
		if _, ok := d.Examples[p]; ok {
			out = append(out, p)
		}
	}
	return out
}

func (d *Dataset) checkLabels(purpose Purpose) error {
	if n, m := len(d.Examples[purpose]), len(d.Labels[purpose]); n != m {
		return fmt.Errorf("%s purpose has %d examples but %d labels", purpose, n, m)
	}
	return nil
}
