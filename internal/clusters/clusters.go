// Package clusters arranges the wordforms of each meaning into cognate
// groups with simple rules and converts group assignments into per-language
// label sequences.
package clusters

import (
	"fmt"
	"strings"
)

// PrefixLength is the prefix size compared by the identical-prefix rule
const PrefixLength = 4

// Entry is one wordform of a meaning in one language
type Entry struct {
	Form     string
	Language int
}

// Wordforms lists, for each meaning id, its wordforms in language order
type Wordforms map[int][]Entry

// Clusters holds, for each meaning id, its groups numbered from 0
type Clusters map[int][][]Entry

// KeyFunc maps a wordform to its grouping key. Wordforms without a key
// form a group of their own.
type KeyFunc func(form string) (string, bool)

// Rule selects one of the grouping baselines
type Rule int

const (
	IdenticalWord Rule = iota
	IdenticalPrefix
	IdenticalFirstLetter
)

func (r Rule) String() string {
	switch r {
	case IdenticalWord:
		return "identicalWord"
	case IdenticalPrefix:
		return "identicalPrefix"
	case IdenticalFirstLetter:
		return "identicalFirstLetter"
	default:
		return fmt.Sprintf("rule(%d)", int(r))
	}
}

// ParseRule resolves a rule by name, ignoring case
func ParseRule(name string) (Rule, error) {
	for _, r := range []Rule{IdenticalWord, IdenticalPrefix, IdenticalFirstLetter} {
		if strings.EqualFold(r.String(), name) {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown grouping rule %q", name)
}

// Key returns the rule's key function
func (r Rule) Key() KeyFunc {
	switch r {
	case IdenticalPrefix:
		return prefixKey
	case IdenticalFirstLetter:
		return firstLetterKey
	default:
		return wordKey
	}
}

func wordKey(form string) (string, bool) {
	return form, true
}

func prefixKey(form string) (string, bool) {
	runes := []rune(form)
	if len(runes) < PrefixLength {
		return "", false
	}
	return string(runes[:PrefixLength]), true
}

func firstLetterKey(form string) (string, bool) {
	for _, r := range form {
		return string(r), true
	}
	return "", false
}

// Group clusters the wordforms of every listed meaning by key. Groups are
// numbered consecutively from 0 in order of first appearance.
func Group(key KeyFunc, meanings []int, wordforms Wordforms) Clusters {
	out := make(Clusters, len(meanings))
	for _, meaning := range meanings {
		var groups [][]Entry
		index := make(map[string]int)

		for _, entry := range wordforms[meaning] {
			k, ok := key(entry.Form)
			if !ok {
				groups = append(groups, []Entry{entry})
				continue
			}
			g, seen := index[k]
			if !seen {
				g = len(groups)
				index[k] = g
				groups = append(groups, nil)
			}
			groups[g] = append(groups[g], entry)
		}
		out[meaning] = groups
	}
	return out
}

// Labels converts clusters into, for each meaning, the group number of each
// wordform in language order, restricted to the given languages. Wordforms
// absent from every group get -1.
func Labels(clusters Clusters, wordforms Wordforms, meanings []int, languages []int) map[int][]int {
	keep := make(map[int]bool, len(languages))
	for _, l := range languages {
		keep[l] = true
	}

	out := make(map[int][]int, len(meanings))
	for _, meaning := range meanings {
		entries := wordforms[meaning]
		position := make(map[int]int, len(entries))
		for i, e := range entries {
			position[e.Language] = i
		}

		labels := make([]int, len(entries))
		for i := range labels {
			labels[i] = -1
		}
		for g, members := range clusters[meaning] {
			for _, m := range members {
				if i, ok := position[m.Language]; ok {
					labels[i] = g
				}
			}
		}

		selected := make([]int, 0, len(entries))
		for i, e := range entries {
			if keep[e.Language] {
				selected = append(selected, labels[i])
			}
		}
		out[meaning] = selected
	}
	return out
}

// Baseline groups the wordforms of the meanings with a rule and returns the
// labels for the given languages along with the clusters.
func Baseline(rule Rule, meanings []int, languages []int, wordforms Wordforms) (map[int][]int, Clusters) {
	clusters := Group(rule.Key(), meanings, wordforms)
	return Labels(clusters, wordforms, meanings, languages), clusters
}
