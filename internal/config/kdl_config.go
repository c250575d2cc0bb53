package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"

	"github.com/standardbeagle/cognates/internal/debug"
)

// LoadKDL loads the configuration file at path. It returns nil without an
// error when the file does not exist.
func LoadKDL(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %v", path, err)
	}

	cfg, err := parseKDL(string(content))
	if err != nil {
		return nil, err
	}

	// Relative paths in the file are relative to the file itself
	absRoot, err := filepath.Abs(filepath.Dir(path))
	if err == nil {
		cfg.Root = absRoot
	} else {
		cfg.Root = filepath.Dir(path)
	}

	debug.LogConfig("loaded %s (strategy %s)\n", path, cfg.Extraction.Strategy)
	return cfg, nil
}

func parseKDL(content string) (*Config, error) {
	cfg := Default()

	doc, err := kdl.Parse(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse KDL config: %w", err)
	}

	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "alphabet":
			for _, cn := range n.Children { // alphabet { first "a"; last "z" }
				assignSimpleString(cn, "first", func(v string) { cfg.Alphabet.First = v })
				assignSimpleString(cn, "last", func(v string) { cfg.Alphabet.Last = v })
			}
		case "languages":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "count":
					if v, ok := firstIntArg(cn); ok {
						cfg.Languages.Count = v
					}
				case "groups":
					cfg.Languages.Groups = nil
					for _, gn := range cn.Children {
						if nodeName(gn) != "group" {
							log.Printf("WARNING: unexpected node '%s' in languages.groups, expected 'group'", nodeName(gn))
							continue
						}
						cfg.Languages.Groups = append(cfg.Languages.Groups, collectIntArgs(gn))
					}
				}
			}
		case "extraction":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "strategy":
					if s, ok := firstStringArg(cn); ok {
						cfg.Extraction.Strategy = s
					}
				case "measures":
					cfg.Extraction.Measures = collectStringArgs(cn)
				case "workers":
					if v, ok := firstIntArg(cn); ok {
						cfg.Extraction.Workers = v
					}
				case "language_similarity":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Extraction.LanguageSimilarity = b
					}
				}
			}
		case "preprocessors":
			for _, cn := range n.Children {
				assignSimpleString(cn, "sound_classes", func(v string) { cfg.Preprocessors.SoundClasses = v })
				assignSimpleString(cn, "consonants", func(v string) { cfg.Preprocessors.Consonants = v })
			}
		case "pos_tags":
			if s, ok := firstStringArg(n); ok {
				cfg.POSTags = s
			}
		case "language_similarities":
			if s, ok := firstStringArg(n); ok {
				cfg.LanguageSimilarities = s
			}
		default:
			log.Printf("WARNING: unknown node '%s' in KDL config", nodeName(n))
		}
	}

	return cfg, nil
}

// Helpers for KDL AST traversal
func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func firstIntArg(n *document.Node) (int, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		log.Printf("WARNING: invalid integer value for '%s' in KDL config, expected number but got %T", nodeName(n), n.Arguments[0].Value)
		return 0, false
	}
}

func firstStringArg(n *document.Node) (string, bool) {
	if len(n.Arguments) == 0 {
		return "", false
	}
	if s, ok := n.Arguments[0].Value.(string); ok {
		return s, true
	}
	return "", false
}

func firstBoolArg(n *document.Node) (bool, bool) {
	if len(n.Arguments) == 0 {
		return false, false
	}
	if b, ok := n.Arguments[0].Value.(bool); ok {
		return b, true
	}
	return false, false
}

// collectIntArgs gathers the integer arguments of a node, skipping others
func collectIntArgs(n *document.Node) []int {
	out := make([]int, 0, len(n.Arguments))
	for _, a := range n.Arguments {
		switch v := a.Value.(type) {
		case int64:
			out = append(out, int(v))
		case float64:
			out = append(out, int(v))
		default:
			log.Printf("WARNING: ignoring non-integer value %v in '%s'", a.Value, nodeName(n))
		}
	}
	return out
}

func collectStringArgs(n *document.Node) []string {
	if n == nil {
		return nil
	}
	// Inline format: measures "a" "b"
	out := make([]string, 0, len(n.Arguments))
	for _, a := range n.Arguments {
		if s, ok := a.Value.(string); ok {
			out = append(out, s)
		}
	}

	// Block format: measures { "a"; "b" } where each child node is named by its value
	if len(out) == 0 && len(n.Children) > 0 {
		out = make([]string, 0, len(n.Children))
		for _, child := range n.Children {
			if s, ok := firstStringArg(child); ok {
				out = append(out, s)
			} else if child.Name != nil {
				if s, ok := child.Name.Value.(string); ok {
					out = append(out, s)
				}
			}
		}
	}

	return out
}

func assignSimpleString(n *document.Node, target string, set func(string)) {
	if nodeName(n) == target {
		if s, ok := firstStringArg(n); ok {
			set(s)
		}
	}
}
