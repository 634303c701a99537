package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func TestRun_ReportsViolations(t *testing.T) {
	var out bytes.Buffer
	code := run([]string{filepath.Join("testdata", "broken.yaml")}, &out)
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	want := `elements[0] (dob) -> unknown camp data type "birthday"`
	if !strings.Contains(out.String(), want) {
		t.Fatalf("expected %q in output, got %q", want, out.String())
	}
}

func TestRun_CleanSurvey(t *testing.T) {
	var out bytes.Buffer
	if code := run([]string{filepath.Join("..", "..", "testdata", "forms", "summer.json")}, &out); code != 0 {
		t.Fatalf("expected clean lint, got %d: %s", code, out.String())
	}
}

func TestRun_MissingFile(t *testing.T) {
	var out bytes.Buffer
	if code := run([]string{"testdata/missing.json"}, &out); code != 1 || !strings.Contains(out.String(), "read file") {
		t.Fatalf("unexpected result %d: %q", code, out.String())
	}
}
