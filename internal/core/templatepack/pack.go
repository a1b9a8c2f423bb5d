// Package templatepack loads the embedded, versioned catalog of repair
// templates. Templates are configuration: read-only at runtime
package templatepack

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

//go:embed templates.json
var embedded []byte

// Version is the only catalog schema version Load accepts
const Version = 1

// Item is one canned repair line item
type Item struct {
	Category    string `json:"category"`
	Selection   string `json:"selection"`
	Description string `json:"description"`
}

// Key is the composite identity used for exclusions, e.g. "DRY/1/2"
// categories never contain "/", so the first slash splits the key
func (i Item) Key() string { return i.Category + "/" + i.Selection }

// Template is a named bundle of items identified by a stable code
type Template struct {
	Code  string `json:"id"`
	Name  string `json:"name"`
	Trade string `json:"trade,omitempty"`
	Items []Item `json:"items"`
}

// Categories returns the distinct item categories in declaration order
func (t Template) Categories() []string {
	seen := make(map[string]struct{}, len(t.Items))
	var out []string
	for _, it := range t.Items {
		if _, ok := seen[it.Category]; ok {
			continue
		}
		seen[it.Category] = struct{}{}
		out = append(out, it.Category)
	}
	return out
}

type rawPack struct {
	Version   int            `json:"version"`
	Meta      map[string]any `json:"meta,omitempty"`
	Templates []Template     `json:"templates"`
}

// Pack is a validated catalog
type Pack struct {
	Version   int
	Meta      map[string]any
	templates []Template
	byCode    map[string]int
}

// Load returns the pack compiled from the embedded templates.json
func Load() (*Pack, error) { return Parse(embedded) }

// MustLoad is Load for process bootstrap
func MustLoad() *Pack {
	p, err := Load()
	if err != nil {
		panic(err)
	}
	return p
}

// Parse decodes and validates a catalog document
func Parse(b []byte) (*Pack, error) {
	var rp rawPack
	if err := json.Unmarshal(b, &rp); err != nil {
		return nil, fmt.Errorf("templatepack: parse: %w", err)
	}
	if rp.Version != Version {
		return nil, fmt.Errorf("templatepack: unsupported version %d (want %d)", rp.Version, Version)
	}

	p := &Pack{
		Version: rp.Version,
		Meta:    rp.Meta,
		byCode:  make(map[string]int, len(rp.Templates)),
	}
	for _, t := range rp.Templates {
		t.Code = strings.TrimSpace(t.Code)
		if t.Code == "" {
			return nil, fmt.Errorf("templatepack: template %q has no id", t.Name)
		}
		if _, dup := p.byCode[t.Code]; dup {
			return nil, fmt.Errorf("templatepack: duplicate template id %q", t.Code)
		}
		if len(t.Items) == 0 {
			return nil, fmt.Errorf("templatepack: template %q has no items", t.Code)
		}
		keys := make(map[string]struct{}, len(t.Items))
		for i, it := range t.Items {
			if it.Category == "" || it.Selection == "" {
				return nil, fmt.Errorf("templatepack: template %q item %d missing category or selection", t.Code, i)
			}
			if strings.Contains(it.Category, "/") {
				return nil, fmt.Errorf("templatepack: template %q item %d category %q contains /", t.Code, i, it.Category)
			}
			if _, dup := keys[it.Key()]; dup {
				return nil, fmt.Errorf("templatepack: template %q repeats item %s", t.Code, it.Key())
			}
			keys[it.Key()] = struct{}{}
		}
		p.byCode[t.Code] = len(p.templates)
		p.templates = append(p.templates, t)
	}
	return p, nil
}

// Lookup returns the template with code
func (p *Pack) Lookup(code string) (Template, bool) {
	i, ok := p.byCode[code]
	if !ok {
		return Template{}, false
	}
	return p.templates[i], true
}

// All returns every template sorted by code
func (p *Pack) All() []Template {
	out := make([]Template, len(p.templates))
	copy(out, p.templates)
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// Len is the number of templates
func (p *Pack) Len() int { return len(p.templates) }
