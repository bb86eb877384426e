package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cocktail-popularity/models"
	"cocktail-popularity/utils"
)

const recipeExt = ".json"

// RecipeLoader reads one recipe per JSON file from a directory.
type RecipeLoader struct {
	dir      string
	reserved string
	logger   *utils.Logger
}

// NewRecipeLoader creates a loader for dir. Files named reserved (the
// popularity output) are never read as recipes.
func NewRecipeLoader(dir, reserved string, logger *utils.Logger) *RecipeLoader {
	return &RecipeLoader{dir: dir, reserved: reserved, logger: logger}
}

// Load returns every decodable recipe, in filename order. Files that fail
// to read or decode, or lack an id or name, are skipped with a warning.
func (l *RecipeLoader) Load(ctx context.Context) ([]models.Recipe, error) {
	files, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("loader: read dir %q: %w", l.dir, err)
	}

	var recipes []models.Recipe
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := f.Name()
		if f.IsDir() || !strings.EqualFold(filepath.Ext(name), recipeExt) || name == l.reserved {
			continue
		}

		recipe, err := readRecipe(filepath.Join(l.dir, name))
		if err != nil {
			l.logger.Warn("Skipping %s: not a recipe file or invalid JSON (%v)", name, err)
			continue
		}
		recipes = append(recipes, recipe)
	}

	l.logger.Info("Loaded %d recipes total.", len(recipes))
	return recipes, nil
}

func readRecipe(path string) (models.Recipe, error) {
	var r models.Recipe

	data, err := os.ReadFile(path)
	if err != nil {
		return r, err
	}
	if err := json.Unmarshal(data, &r); err != nil {
		return r, err
	}
	if r.ID == "" || r.Name == "" {
		return r, fmt.Errorf("missing id or name")
	}
	return r, nil
}
