package testsupport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-campform/pkg/model"
	"github.com/goliatone/go-campform/pkg/survey"
)

// LoadSurvey reads a survey fixture (JSON or YAML). Testing helpers fail the
// test on error to keep table tests concise.
func LoadSurvey(t *testing.T, path string) model.Survey {
	t.Helper()

	doc, err := LoadSurveyFromPath(path)
	if err != nil {
		t.Fatalf("load survey: %v", err)
	}
	return doc
}

// LoadSurveyFromPath returns a survey without requiring testing.T, allowing
// callers to wire fixtures in setup functions.
func LoadSurveyFromPath(path string) (model.Survey, error) {
	if path == "" {
		return model.Survey{}, errors.New("testsupport: survey path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Survey{}, fmt.Errorf("testsupport: read survey: %w", err)
	}
	return survey.Parse(data, path)
}

// LoadAnswers reads a JSON answers fixture keyed by question name.
func LoadAnswers(t *testing.T, path string) map[string]any {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read answers: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal answers: %v", err)
	}
	return out
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
