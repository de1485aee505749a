// Package catalog holds the immutable recipe catalog compiled into the binary.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pageza/recipeshare/backend/internal/model"
)

//go:embed seed.yaml
var seedYAML []byte

var (
	ErrDuplicateID = errors.New("duplicate recipe id")
	ErrInvalid     = errors.New("invalid recipe")
)

// Catalog is a read-only set of recipes. It never changes after New returns,
// so it is safe for concurrent readers.
type Catalog struct {
	recipes []model.Recipe
	byID    map[string]int
}

type seedFile struct {
	Recipes []model.Recipe `yaml:"recipes"`
}

// New builds a catalog, rejecting empty or duplicate ids and non-positive servings
func New(recipes []model.Recipe) (*Catalog, error) {
	c := &Catalog{
		recipes: make([]model.Recipe, 0, len(recipes)),
		byID:    make(map[string]int, len(recipes)),
	}
	for _, r := range recipes {
		if strings.TrimSpace(r.ID) == "" {
			return nil, fmt.Errorf("%w: empty id for %q", ErrInvalid, r.Title)
		}
		if r.Servings <= 0 {
			return nil, fmt.Errorf("%w: recipe %s has %d servings", ErrInvalid, r.ID, r.Servings)
		}
		if _, ok := c.byID[r.ID]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, r.ID)
		}
		r.Ingredients = append([]string(nil), r.Ingredients...)
		c.byID[r.ID] = len(c.recipes)
		c.recipes = append(c.recipes, r)
	}
	return c, nil
}

// Parse decodes a YAML catalog document
func Parse(data []byte) (*Catalog, error) {
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return New(f.Recipes)
}

// Default returns the catalog embedded at build time
func Default() (*Catalog, error) {
	return Parse(seedYAML)
}

// Get looks up a recipe by id
func (c *Catalog) Get(id string) (model.Recipe, bool) {
	i, ok := c.byID[id]
	if !ok {
		return model.Recipe{}, false
	}
	return clone(c.recipes[i]), true
}

// Has reports whether id is in the catalog
func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// Len returns the number of recipes
func (c *Catalog) Len() int {
	return len(c.recipes)
}

// All returns every recipe in catalog order
func (c *Catalog) All() []model.Recipe {
	out := make([]model.Recipe, len(c.recipes))
	for i, r := range c.recipes {
		out[i] = clone(r)
	}
	return out
}

// Popular returns the rated recipes
func (c *Catalog) Popular() []model.Recipe {
	var out []model.Recipe
	for _, r := range c.recipes {
		if r.Rating > 0 {
			out = append(out, clone(r))
		}
	}
	return out
}

// Filter returns recipes matching category (case-insensitive) and difficulty.
// An empty category or DifficultyUnknown matches everything.
func (c *Catalog) Filter(category string, d model.Difficulty) []model.Recipe {
	var out []model.Recipe
	for _, r := range c.recipes {
		if category != "" && !strings.EqualFold(r.Category, category) {
			continue
		}
		if d != model.DifficultyUnknown && r.Difficulty != d {
			continue
		}
		out = append(out, clone(r))
	}
	return out
}

func clone(r model.Recipe) model.Recipe {
	r.Ingredients = append([]string(nil), r.Ingredients...)
	return r
}
