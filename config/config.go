// config/config.go

package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gorilla/securecookie"
	"gopkg.in/yaml.v3"
)

// Config is assembled from environment variables (a .env file is honored by
// main). Every field has a workable default so a bare `go run .` serves the
// game.
type Config struct {
	Addr string

	SheetID  string
	SheetGID string

	AnswersFile    string
	ProgressFile   string
	StoreEngine    string
	CategoriesFile string

	SessionKey []byte
}

func Load() *Config {
	dataDir := getEnv("HUNT_DATA_DIR", "answers")

	cfg := &Config{
		Addr:           getEnv("HUNT_ADDR", ":8080"),
		SheetID:        getEnv("HUNT_SHEET_ID", "1U00vwP6gnM76qp3Mjgwhq70lmWtvjJI-Ci7c1d_JZgA"),
		SheetGID:       getEnv("HUNT_SHEET_GID", "0"),
		AnswersFile:    getEnv("HUNT_ANSWERS_FILE", filepath.Join(dataDir, "answers.csv")),
		ProgressFile:   getEnv("HUNT_PROGRESS_FILE", filepath.Join(dataDir, "progress.json")),
		StoreEngine:    getEnv("HUNT_STORE", "json"),
		CategoriesFile: getEnv("HUNT_CATEGORIES_FILE", "categories.yaml"),
	}

	if key := os.Getenv("HUNT_SESSION_KEY"); key != "" {
		cfg.SessionKey = []byte(key)
	} else {
		// Fresh key per start: fine for development, but sessions die on
		// restart, so production should set HUNT_SESSION_KEY.
		cfg.SessionKey = securecookie.GenerateRandomKey(32)
		slog.Warn("HUNT_SESSION_KEY not set, using a random session key")
	}

	return cfg
}

// FeedURL is the CSV export endpoint of the configured Google sheet.
func (c *Config) FeedURL() string {
	return fmt.Sprintf(
		"https://docs.google.com/spreadsheets/d/%s/export?format=csv&gid=%s",
		c.SheetID, c.SheetGID,
	)
}

// LoadCategoryDescriptions reads the YAML mapping of category name to the
// blurb rendered above its questions. A missing file just means no blurbs.
func LoadCategoryDescriptions(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	descriptions := map[string]string{}
	if err := yaml.Unmarshal(data, &descriptions); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return descriptions, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
