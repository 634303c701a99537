package tagging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-campform/internal/prompt"
	"github.com/goliatone/go-campform/pkg/model"
)

type fakeDriver struct {
	answers []int
	err     error
	asked   []prompt.SelectConfig
}

func (f *fakeDriver) Confirm(context.Context, prompt.ConfirmConfig) (bool, error) {
	return false, nil
}

func (f *fakeDriver) Select(_ context.Context, cfg prompt.SelectConfig) (int, error) {
	f.asked = append(f.asked, cfg)
	if f.err != nil {
		return 0, f.err
	}
	answer := f.answers[0]
	f.answers = f.answers[1:]
	return answer, nil
}

func (f *fakeDriver) Info(context.Context, string) error { return nil }

const form = `{
  "elements": [
    {"type": "text", "name": "given", "title": {"en": "Given name", "de": "Vorname"}},
    {"type": "text", "name": "family"},
    {"type": "text", "name": "mail", "inputType": "email"},
    {"type": "comment", "name": "notes"},
    {"type": "text", "name": "tagged", "campDataType": "role"}
  ]
}`

func loadForm(t *testing.T) *model.Survey {
	t.Helper()
	var s model.Survey
	if err := json.Unmarshal([]byte(form), &s); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return &s
}

func typesOf(s *model.Survey) map[string]string {
	out := map[string]string{}
	for _, q := range s.Questions() {
		out[q.Name] = q.CampDataType
	}
	return out
}

func TestTag_Interactive(t *testing.T) {
	s := loadForm(t)
	// given: first_name, family: last_name, notes: none
	driver := &fakeDriver{answers: []int{0, 1, 7}}

	decisions, err := Tagger{Driver: driver, Locale: "de"}.Tag(context.Background(), s)
	if err != nil {
		t.Fatalf("tag: %v", err)
	}

	want := map[string]string{
		"given":  "first_name",
		"family": "last_name",
		"mail":   "email",
		"notes":  "",
		"tagged": "role",
	}
	if diff := cmp.Diff(want, typesOf(s)); diff != "" {
		t.Fatalf("types mismatch (-want +got):\n%s", diff)
	}

	wantDecisions := []Decision{
		{Question: "given", Value: "first_name", Prompted: true},
		{Question: "family", Value: "last_name", Prompted: true},
		{Question: "mail", Value: "email"},
		{Question: "notes", Prompted: true},
	}
	if diff := cmp.Diff(wantDecisions, decisions); diff != "" {
		t.Fatalf("decisions mismatch (-want +got):\n%s", diff)
	}

	if len(driver.asked) != 3 {
		t.Fatalf("expected 3 prompts, got %d", len(driver.asked))
	}
	first := driver.asked[0]
	if diff := cmp.Diff([]string{"Vorname (first_name)", "Nachname (last_name)", NoneOption}, first.Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if first.Message != `"Vorname" (given) fits 2 camp data types` {
		t.Fatalf("unexpected message %q", first.Message)
	}
	unresolved := driver.asked[2]
	if len(unresolved.Options) != 8 || unresolved.DefaultIndex != 7 {
		t.Fatalf("unresolved question should offer every type and default to none: %#v", unresolved)
	}
}

func TestTag_WithoutDriverMatchesDecorate(t *testing.T) {
	s := loadForm(t)
	if _, err := (Tagger{}).Tag(context.Background(), s); err != nil {
		t.Fatalf("tag: %v", err)
	}
	want := map[string]string{
		"given":  "first_name",
		"family": "first_name",
		"mail":   "email",
		"notes":  "",
		"tagged": "role",
	}
	if diff := cmp.Diff(want, typesOf(s)); diff != "" {
		t.Fatalf("types mismatch (-want +got):\n%s", diff)
	}
}

func TestTag_AbortStops(t *testing.T) {
	s := loadForm(t)
	driver := &fakeDriver{err: prompt.ErrAborted}

	_, err := Tagger{Driver: driver}.Tag(context.Background(), s)
	if !errors.Is(err, prompt.ErrAborted) {
		t.Fatalf("expected abort, got %v", err)
	}
	if len(driver.asked) != 1 {
		t.Fatalf("expected to stop after the first prompt, got %d", len(driver.asked))
	}
}
