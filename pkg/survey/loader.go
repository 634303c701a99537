package survey

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-campform/pkg/model"
)

// Option configures loading.
type Option func(*loadConfig)

type loadConfig struct {
	decorators []model.Decorator
}

// WithDecorator runs d on every survey after it is parsed.
func WithDecorator(d model.Decorator) Option {
	return func(cfg *loadConfig) {
		if d != nil {
			cfg.decorators = append(cfg.decorators, d)
		}
	}
}

// Store holds loaded surveys by name.
type Store struct {
	surveys map[string]model.Survey
	sources map[string]string
}

// LoadFS walks the provided filesystem and parses every JSON/YAML file as a
// survey. The survey name is its "name" property, or the file name without
// extension. When fsys is nil the returned store is empty.
func LoadFS(fsys fs.FS, opts ...Option) (*Store, error) {
	cfg := &loadConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	store := &Store{
		surveys: make(map[string]model.Survey),
		sources: make(map[string]string),
	}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(p string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isSurveyFile(p) {
			return nil
		}

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("survey: read %s: %w", p, err)
		}

		parsed, err := Parse(data, p)
		if err != nil {
			return err
		}
		name := strings.TrimSpace(parsed.Name)
		if name == "" {
			name = strings.TrimSuffix(path.Base(p), path.Ext(p))
			parsed.Name = name
		}
		if previous, exists := store.sources[name]; exists {
			return fmt.Errorf("survey: duplicate survey %q (files %s and %s)", name, previous, p)
		}

		for _, d := range cfg.decorators {
			if err := d.Decorate(&parsed); err != nil {
				return fmt.Errorf("survey: decorate %s: %w", p, err)
			}
		}

		store.surveys[name] = parsed
		store.sources[name] = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	return store, nil
}

// Parse decodes a survey definition, trying JSON first and YAML second.
func Parse(data []byte, source string) (model.Survey, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return model.Survey{}, fmt.Errorf("survey: file %s is empty", source)
	}

	var doc model.Survey
	jsonErr := json.Unmarshal(data, &doc)
	if jsonErr == nil {
		return doc, nil
	}

	// YAML goes through a generic document and back to JSON so the custom
	// element decoding applies to both formats.
	var generic map[string]any
	if err := yaml.Unmarshal(data, &generic); err != nil || generic == nil {
		return model.Survey{}, fmt.Errorf("survey: parse %s: invalid JSON or YAML: %w", source, jsonErr)
	}
	payload, err := json.Marshal(generic)
	if err != nil {
		return model.Survey{}, fmt.Errorf("survey: parse %s: %w", source, err)
	}
	doc = model.Survey{}
	if err := json.Unmarshal(payload, &doc); err != nil {
		return model.Survey{}, fmt.Errorf("survey: parse %s: %w", source, err)
	}
	return doc, nil
}

// Survey returns the survey with the given name.
func (s *Store) Survey(name string) (model.Survey, bool) {
	if s == nil {
		return model.Survey{}, false
	}
	survey, ok := s.surveys[name]
	return survey, ok
}

// Source returns the file a survey was loaded from.
func (s *Store) Source(name string) (string, bool) {
	if s == nil {
		return "", false
	}
	source, ok := s.sources[name]
	return source, ok
}

// Names returns the stored survey names, sorted.
func (s *Store) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.surveys))
	for name := range s.surveys {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Empty reports whether the store holds any surveys.
func (s *Store) Empty() bool {
	return s == nil || len(s.surveys) == 0
}

func isSurveyFile(p string) bool {
	switch strings.ToLower(path.Ext(p)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
