package cards

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/youruser/deckbuilder/internal/util"
	"gopkg.in/yaml.v3"
)

const DefaultFetchTimeout = 12 * time.Second

// parseListCell splits a CSV cell holding several values. Full-width
// slashes and semicolons are accepted as separators; "-" means empty.
func parseListCell(s string) []string {
	s = strings.ReplaceAll(s, "／", "/")
	s = strings.ReplaceAll(s, ";", "/")
	parts := strings.Split(s, "/")
	out := []string{}
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" && t != "-" {
			out = append(out, t)
		}
	}
	return out
}

// Load fetches the catalog once from source, a file path or an http(s)
// URL, and validates it against ord. The format is picked from the file
// extension: .csv, .yaml/.yml, anything else is JSON.
// Any failure is returned as a *LoadError.
func Load(ctx context.Context, source string, timeout time.Duration, ord Ordering) (*Catalog, error) {
	raw, err := readSource(ctx, source, timeout)
	if err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}
	cs, err := Decode(raw, formatOf(source))
	if err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}
	cat, err := NewCatalog(cs, ord)
	if err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}
	return cat, nil
}

func readSource(ctx context.Context, source string, timeout time.Duration) ([]byte, error) {
	if source == "" {
		return nil, fmt.Errorf("no catalog source configured")
	}
	if isURL(source) {
		if timeout <= 0 {
			timeout = DefaultFetchTimeout
		}
		return util.GetBytes(ctx, source, timeout)
	}
	return os.ReadFile(source)
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func formatOf(source string) string {
	p := source
	if isURL(source) {
		if u, err := url.Parse(source); err == nil {
			p = u.Path
		}
	}
	switch strings.ToLower(path.Ext(p)) {
	case ".csv":
		return "csv"
	case ".yaml", ".yml":
		return "yaml"
	}
	return "json"
}

// Decode parses raw catalog bytes in the given format ("json", "yaml" or
// "csv"). Only structure is checked here; NewCatalog validates entries.
func Decode(raw []byte, format string) ([]Card, error) {
	switch format {
	case "csv":
		return decodeCSV(raw)
	case "yaml":
		var out []Card
		if err := yaml.Unmarshal(raw, &out); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
		return out, nil
	case "json":
		return decodeJSON(raw)
	}
	return nil, fmt.Errorf("unsupported catalog format %q", format)
}

// decodeJSON accepts a bare array or an object with a "cards" array.
func decodeJSON(raw []byte) ([]Card, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var wrapped struct {
			Cards []Card `json:"cards"`
		}
		if err := json.Unmarshal(trimmed, &wrapped); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
		return wrapped.Cards, nil
	}
	var out []Card
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return out, nil
}

func decodeCSV(raw []byte) ([]Card, error) {
	r := csv.NewReader(bytes.NewReader(raw))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("csv has no header")
	}
	cols := map[string]int{}
	for i, h := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	get := func(row []string, name string) string {
		if idx, ok := cols[name]; ok && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	out := []Card{}
	for _, row := range rows[1:] {
		c := Card{
			ID:       get(row, "id"),
			Name:     get(row, "name"),
			Kind:     Kind(get(row, "kind")),
			Tags:     parseListCell(get(row, "tags")),
			ImageURL: get(row, "image_url"),
		}
		for _, t := range parseListCell(get(row, "type")) {
			c.Types = append(c.Types, Type(t))
		}
		out = append(out, c)
	}
	return out, nil
}
