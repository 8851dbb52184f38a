package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format of a menu document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var formatByExt = map[string]Format{
	".json": FormatJSON,
	".yaml": FormatYAML,
	".yml":  FormatYAML,
}

// Load reads a menu file and builds a catalog. The format is chosen by
// file extension. Errors are always a *LoadError: a missing or
// malformed menu must fail loudly, never fall back to an empty catalog.
func Load(path string) (*Catalog, error) {
	format, ok := formatByExt[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, &LoadError{Source: path, Err: ErrBadFormat}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}

	c, err := LoadBytes(data, format)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Source = path
			return nil, le
		}
		return nil, &LoadError{Source: path, Err: err}
	}
	return c, nil
}

// LoadBytes builds a catalog from an in-memory menu document, e.g. one
// fetched from object storage.
func LoadBytes(data []byte, format Format) (*Catalog, error) {
	var (
		categories []string
		byCategory map[string][]MenuItem
		ayce       AycePlans
		err        error
	)

	switch format {
	case FormatJSON:
		categories, byCategory, ayce, err = parseJSON(data)
	case FormatYAML:
		categories, byCategory, ayce, err = parseYAML(data)
	default:
		err = ErrBadFormat
	}
	if err != nil {
		return nil, &LoadError{Source: "(bytes)", Err: err}
	}

	c, err := build(categories, byCategory, ayce)
	if err != nil {
		return nil, &LoadError{Source: "(bytes)", Err: err}
	}
	return c, nil
}

// parseJSON walks the "menu" object token by token so that category
// declaration order survives decoding (a plain map would lose it).
func parseJSON(data []byte) ([]string, map[string][]MenuItem, AycePlans, error) {
	var doc struct {
		Menu json.RawMessage `json:"menu"`
		Ayce AycePlans       `json:"ayce_pricing"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, nil, err
	}
	if len(doc.Menu) == 0 {
		return nil, nil, nil, errors.New(`missing "menu" object`)
	}

	dec := json.NewDecoder(bytes.NewReader(doc.Menu))

	tok, err := dec.Token()
	if err != nil {
		return nil, nil, nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, nil, errors.New(`"menu" is not an object`)
	}

	var categories []string
	byCategory := make(map[string][]MenuItem)

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, nil, err
		}
		category, ok := tok.(string)
		if !ok {
			return nil, nil, nil, fmt.Errorf("unexpected token %v in menu", tok)
		}

		var items []MenuItem
		if err := dec.Decode(&items); err != nil {
			return nil, nil, nil, fmt.Errorf("category %q: %w", category, err)
		}

		categories = append(categories, category)
		byCategory[category] = items
	}

	if _, err := dec.Token(); err != nil && err != io.EOF {
		return nil, nil, nil, err
	}

	return categories, byCategory, doc.Ayce, nil
}

// parseYAML uses the node API for the same reason: mapping order is
// the category declaration order.
func parseYAML(data []byte) ([]string, map[string][]MenuItem, AycePlans, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, nil, nil, err
	}
	if len(root.Content) == 0 {
		return nil, nil, nil, errors.New("empty document")
	}

	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, nil, nil, errors.New("top level is not a mapping")
	}

	var (
		categories []string
		byCategory = make(map[string][]MenuItem)
		ayce       AycePlans
		menuSeen   bool
	)

	for i := 0; i+1 < len(doc.Content); i += 2 {
		key, value := doc.Content[i], doc.Content[i+1]

		switch key.Value {
		case "menu":
			if value.Kind != yaml.MappingNode {
				return nil, nil, nil, errors.New(`"menu" is not a mapping`)
			}
			menuSeen = true
			for j := 0; j+1 < len(value.Content); j += 2 {
				category := value.Content[j].Value

				var items []MenuItem
				if err := value.Content[j+1].Decode(&items); err != nil {
					return nil, nil, nil, fmt.Errorf("category %q: %w", category, err)
				}

				categories = append(categories, category)
				byCategory[category] = items
			}
		case "ayce_pricing":
			if err := value.Decode(&ayce); err != nil {
				return nil, nil, nil, fmt.Errorf("ayce_pricing: %w", err)
			}
		}
	}

	if !menuSeen {
		return nil, nil, nil, errors.New(`missing "menu" mapping`)
	}

	return categories, byCategory, ayce, nil
}
