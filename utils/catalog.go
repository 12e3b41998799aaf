package utils

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"

	"github.com/Telerehab-Labs/telerehab-go-sdk/models"
)

// catalogFile is the on-disk shape of an exercise catalog override:
//
//	[[exercise]]
//	id = 1
//	name = "Neck Rotation"
//	description = "..."
//	illustration = "exercises/neck_rotation.png"
type catalogFile struct {
	Exercises []models.Exercise `toml:"exercise"`
}

// LoadExerciseCatalog reads a TOML catalog file and merges it over the
// built-in defaults by id. The id set is closed: entries with ids outside
// the defaults are rejected, since the validators only exist for 1..5.
func LoadExerciseCatalog(path string) ([]models.Exercise, error) {
	var file catalogFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, fmt.Errorf("failed to decode exercise catalog %s: %w", path, err)
	}

	catalog := make([]models.Exercise, len(models.DefaultExercises))
	copy(catalog, models.DefaultExercises)

	for _, override := range file.Exercises {
		merged := false
		for i := range catalog {
			if catalog[i].ID != override.ID {
				continue
			}
			if override.Name != "" {
				catalog[i].Name = override.Name
			}
			if override.Description != "" {
				catalog[i].Description = override.Description
			}
			if override.Illustration != "" {
				catalog[i].Illustration = override.Illustration
			}
			merged = true
			break
		}
		if !merged {
			return nil, fmt.Errorf("exercise catalog %s contains unknown exercise id %d", path, override.ID)
		}
	}

	return catalog, nil
}

// CatalogFromEnv loads the catalog named by EXERCISE_CATALOG_PATH, falling
// back to the built-in defaults when the variable is unset or the file
// cannot be used.
func CatalogFromEnv() []models.Exercise {
	path := os.Getenv("EXERCISE_CATALOG_PATH")
	if path == "" {
		return models.DefaultExercises
	}

	catalog, err := LoadExerciseCatalog(path)
	if err != nil {
		zap.L().Warn("Falling back to built-in exercise catalog", zap.Error(err))
		return models.DefaultExercises
	}
	zap.L().Info("Loaded exercise catalog", zap.String("path", path), zap.Int("exercises", len(catalog)))
	return catalog
}
