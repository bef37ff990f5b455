package parsers

import (
	"fmt"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// tomlEntry is one dependency entry found beneath a TOML section
type tomlEntry struct {
	section []string
	name    string
	value   any
}

// decodeTOML decodes content into a generic document and returns the
// metadata needed to recover key order.
func decodeTOML(content []byte) (map[string]any, toml.MetaData, error) {
	var doc map[string]any
	md, err := toml.Decode(string(content), &doc)
	return doc, md, err
}

// tomlEntries returns the direct children of every section accepted by
// match, in document order. Maps lose TOML key order, so the order is taken
// from the first appearance of each child in md.Keys().
func tomlEntries(doc map[string]any, md toml.MetaData, match func(section []string) bool) []tomlEntry {
	var entries []tomlEntry
	seen := make(map[string]bool)

	for _, key := range md.Keys() {
		for i := 1; i < len(key); i++ {
			section := key[:i]
			if !match(section) {
				continue
			}
			id := strings.Join(key[:i+1], "\x00")
			if !seen[id] {
				seen[id] = true
				value, ok := lookup(doc, key[:i+1])
				if ok {
					entries = append(entries, tomlEntry{
						section: slices.Clone([]string(section)),
						name:    key[i],
						value:   value,
					})
				}
			}
			break
		}
	}

	return entries
}

// lookup walks doc along path
func lookup(doc map[string]any, path []string) (any, bool) {
	var cur any = doc
	for _, k := range path {
		table, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		if cur, ok = table[k]; !ok {
			return nil, false
		}
	}
	return cur, true
}

// entryVersion extracts the version of a dependency written either as a
// bare string or as an inline table. Tables without a version yield "*",
// or "workspace" when the entry inherits from the Cargo workspace.
func entryVersion(value any) (version string, optional bool, err error) {
	switch v := value.(type) {
	case string:
		return v, false, nil
	case map[string]any:
		version = "*"
		if raw, ok := v["version"]; ok {
			s, ok := raw.(string)
			if !ok {
				return "", false, fmt.Errorf("version must be a string, got %T", raw)
			}
			version = s
		} else if ws, ok := v["workspace"].(bool); ok && ws {
			version = "workspace"
		}
		if raw, ok := v["optional"]; ok {
			b, ok := raw.(bool)
			if !ok {
				return "", false, fmt.Errorf("optional must be a boolean, got %T", raw)
			}
			optional = b
		}
		return version, optional, nil
	}
	return "", false, fmt.Errorf("expected a version string or table, got %T", value)
}
