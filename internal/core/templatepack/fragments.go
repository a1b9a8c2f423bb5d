package templatepack

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Fragment is one per-trade source file merged into the catalog
type Fragment struct {
	Trade     string     `json:"trade"`
	Templates []Template `json:"templates"`
}

// FindFragments lists every .json file under root in lexical order
func FindFragments(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(strings.ToLower(path), ".json") {
			files = append(files, path)
		}
		return nil
	})
	sort.Strings(files)
	return files, err
}

// ReadFragment decodes a fragment file
func ReadFragment(path string) (Fragment, error) {
	var f Fragment
	b, err := os.ReadFile(path)
	if err != nil {
		return f, err
	}
	if err := json.Unmarshal(b, &f); err != nil {
		return f, fmt.Errorf("decode %s: %w", path, err)
	}
	return f, nil
}

// Merge folds fragments into a catalog document and validates the result
// the fragment trade fills in templates that do not name one
func Merge(meta map[string]any, frags ...Fragment) ([]byte, error) {
	out := rawPack{Version: Version, Meta: meta}
	for _, f := range frags {
		for _, t := range f.Templates {
			if t.Trade == "" {
				t.Trade = f.Trade
			}
			out.Templates = append(out.Templates, t)
		}
	}
	sort.SliceStable(out.Templates, func(i, j int) bool { return out.Templates[i].Code < out.Templates[j].Code })

	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, err
	}
	if _, err := Parse(b); err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}
