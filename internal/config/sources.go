package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Sources maps a display label to the page URL (or local file path) to ingest.
type Sources map[string]string

func defaultSources() Sources {
	return Sources{
		"Alaska":          "https://www.shermanstravel.com/cruise-destinations/alaska-itineraries",
		"Caribbean":       "https://www.shermanstravel.com/cruise-destinations/caribbean-and-bahamas",
		"Hawaiian":        "https://www.shermanstravel.com/cruise-destinations/hawaiian-islands",
		"Northern Europe": "https://www.shermanstravel.com/cruise-destinations/northern-europe",
	}
}

// LoadSources reads the source set from path. If the file does not exist the
// built-in default set is written back to path and returned, so the next run
// picks up the same configuration.
func LoadSources(path string) (Sources, error) {
	if path == "" {
		path = DefaultSourcesPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			defaults := defaultSources()
			if err := SaveSources(path, defaults); err != nil {
				return nil, err
			}
			return defaults, nil
		}
		return nil, err
	}

	var wrapper struct {
		Sources Sources `yaml:"sources"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, err
	}
	if len(wrapper.Sources) == 0 {
		return defaultSources(), nil
	}
	return wrapper.Sources, nil
}

// SaveSources writes the source set to path, creating directories as needed.
func SaveSources(path string, sources Sources) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	wrapper := struct {
		Sources Sources `yaml:"sources"`
	}{Sources: sources}

	data, err := yaml.Marshal(wrapper)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
