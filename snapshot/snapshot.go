// Package snapshot decodes the read-only input snapshots: the ingredient
// hierarchy and the recipe-ingredient table, as a JSON array or a YAML
// sequence of records.
package snapshot

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/barmetric/builder"
	"github.com/katalvlaran/barmetric/tree"
)

// Format selects the snapshot encoding.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// ErrUnknownFormat is returned for an unsupported Format or file extension.
var ErrUnknownFormat = errors.New("snapshot: unknown format")

// FormatOf infers the format from a file extension (.json, .yaml, .yml).
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	default:
		return "", fmt.Errorf("snapshot: %q: %w", path, ErrUnknownFormat)
	}
}

// ReadHierarchy decodes hierarchy records {id, name, path, edge_weight?}.
func ReadHierarchy(r io.Reader, f Format) ([]tree.Record, error) {
	var recs []tree.Record
	if err := decode(r, f, &recs); err != nil {
		return nil, fmt.Errorf("snapshot: hierarchy: %w", err)
	}

	return recs, nil
}

// ReadRecipes decodes recipe rows {recipe_id, recipe_name, ingredient_id, volume_fraction}.
func ReadRecipes(r io.Reader, f Format) ([]builder.RecipeIngredient, error) {
	var recs []builder.RecipeIngredient
	if err := decode(r, f, &recs); err != nil {
		return nil, fmt.Errorf("snapshot: recipes: %w", err)
	}

	return recs, nil
}

// LoadHierarchy opens path and decodes it with the format of its extension.
func LoadHierarchy(path string) ([]tree.Record, error) {
	var recs []tree.Record
	err := withFile(path, func(r io.Reader, f Format) (err error) {
		recs, err = ReadHierarchy(r, f)
		return err
	})

	return recs, err
}

// LoadRecipes opens path and decodes it with the format of its extension.
func LoadRecipes(path string) ([]builder.RecipeIngredient, error) {
	var recs []builder.RecipeIngredient
	err := withFile(path, func(r io.Reader, f Format) (err error) {
		recs, err = ReadRecipes(r, f)
		return err
	})

	return recs, err
}

func withFile(path string, fn func(io.Reader, Format) error) error {
	f, err := FormatOf(path)
	if err != nil {
		return err
	}
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	defer file.Close()

	return fn(file, f)
}

func decode(r io.Reader, f Format, v any) error {
	switch f {
	case JSON:
		return json.NewDecoder(r).Decode(v)
	case YAML:
		err := yaml.NewDecoder(r).Decode(v)
		if errors.Is(err, io.EOF) {
			return nil // empty document
		}
		return err
	default:
		return fmt.Errorf("%q: %w", f, ErrUnknownFormat)
	}
}
