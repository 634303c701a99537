package survey_test

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-campform/pkg/datatypes"
	"github.com/goliatone/go-campform/pkg/model"
	"github.com/goliatone/go-campform/pkg/survey"
)

func TestLoadFS_JSONAndYAML(t *testing.T) {
	store := loadStore(t, "camps")
	if store.Empty() {
		t.Fatalf("expected store to contain surveys")
	}
	if diff := cmp.Diff([]string{"summer", "winter-camp"}, store.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	summer, ok := store.Survey("summer")
	if !ok {
		t.Fatalf("survey summer not found")
	}
	if summer.Title.Resolve("de") != "Sommerlager 2024" {
		t.Fatalf("title not parsed: %#v", summer.Title)
	}
	role, ok := summer.Find("role")
	if !ok || role.Properties["choices"] == nil {
		t.Fatalf("extra properties not preserved: %#v", role)
	}
	if source, _ := store.Source("summer"); source != "summer.json" {
		t.Fatalf("unexpected source %q", source)
	}

	winter, ok := store.Survey("winter-camp")
	if !ok {
		t.Fatalf("survey winter-camp not found")
	}
	if winter.Title.Resolve("fr") != "Winter camp" {
		t.Fatalf("plain string title not parsed: %#v", winter.Title)
	}
	birthday, ok := winter.Find("birthday")
	if !ok || birthday.Type != model.TypeDateOfBirth {
		t.Fatalf("nested yaml element not parsed: %#v", winter)
	}
}

func TestLoadFS_WithDecorator(t *testing.T) {
	store, err := survey.LoadFS(subDirFS(t, "camps"), survey.WithDecorator(datatypes.NewDefaultRegistry()))
	if err != nil {
		t.Fatalf("load store: %v", err)
	}

	summer, _ := store.Survey("summer")
	got := map[string]string{}
	for _, q := range summer.Questions() {
		got[q.Name] = q.CampDataType
	}
	want := map[string]string{
		"first_name": datatypes.TypeFirstName,
		"last_name":  datatypes.TypeLastName,
		"dob":        datatypes.TypeDateOfBirth,
		"mail":       datatypes.TypeEmail,
		"home":       datatypes.TypeAddress,
		"role":       datatypes.TypeRole,
		"waiting":    datatypes.TypeWaitingList,
		"notes":      "",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("decorated types mismatch (-want +got):\n%s", diff)
	}

	winter, _ := store.Survey("winter-camp")
	birthday, _ := winter.Find("birthday")
	if birthday.CampDataType != datatypes.TypeDateOfBirth {
		t.Fatalf("expected yaml survey decorated, got %q", birthday.CampDataType)
	}
}

func TestLoadFS_DecoratorErrorsAbort(t *testing.T) {
	boom := errors.New("boom")
	_, err := survey.LoadFS(subDirFS(t, "camps"), survey.WithDecorator(model.DecoratorFunc(func(*model.Survey) error {
		return boom
	})))
	if !errors.Is(err, boom) {
		t.Fatalf("expected decorator error, got %v", err)
	}
}

func TestLoadFS_DuplicateName(t *testing.T) {
	if _, err := survey.LoadFS(subDirFS(t, "duplicate")); err == nil {
		t.Fatalf("expected duplicate survey error")
	}
}

func TestLoadFS_InvalidFile(t *testing.T) {
	if _, err := survey.LoadFS(subDirFS(t, "invalid")); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestLoadFS_NilFS(t *testing.T) {
	store, err := survey.LoadFS(nil)
	if err != nil || !store.Empty() {
		t.Fatalf("expected empty store, got %#v (err=%v)", store, err)
	}
}

func TestParse_Empty(t *testing.T) {
	if _, err := survey.Parse([]byte("  \n"), "empty.json"); err == nil {
		t.Fatalf("expected empty file error")
	}
}

func loadStore(t *testing.T, subdir string) *survey.Store {
	t.Helper()
	store, err := survey.LoadFS(subDirFS(t, subdir))
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	return store
}

func subDirFS(t *testing.T, subdir string) fs.FS {
	t.Helper()
	base := os.DirFS(testdataRoot())
	fsys, err := fs.Sub(base, subdir)
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}
	return fsys
}

func testdataRoot() string {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "testdata"
	}
	return filepath.Join(filepath.Dir(filename), "testdata")
}

const settingsJSON = `{
  "title": "Camp",
  "showQuestionNumbers": "off",
  "completedHtml": "<p>Thanks</p>",
  "pages": [
    {
      "name": "p1",
      "visibleIf": "{a} == 1",
      "description": "Intro",
      "elements": [{"type": "text", "name": "a"}]
    }
  ]
}`

const settingsYAML = `title: Camp
showQuestionNumbers: "off"
completedHtml: <p>Thanks</p>
pages:
  - name: p1
    visibleIf: "{a} == 1"
    description: Intro
    elements:
      - type: text
        name: a
`

func TestParse_RoundTripKeepsSettings(t *testing.T) {
	var want map[string]any
	if err := json.Unmarshal([]byte(settingsJSON), &want); err != nil {
		t.Fatalf("decode fixture: %v", err)
	}

	for source, data := range map[string]string{"camp.json": settingsJSON, "camp.yaml": settingsYAML} {
		doc, err := survey.Parse([]byte(data), source)
		if err != nil {
			t.Fatalf("%s: parse: %v", source, err)
		}
		raw, err := json.Marshal(doc)
		if err != nil {
			t.Fatalf("%s: encode: %v", source, err)
		}
		var got map[string]any
		if err := json.Unmarshal(raw, &got); err != nil {
			t.Fatalf("%s: decode output: %v", source, err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("%s: round trip mismatch (-want +got):\n%s", source, diff)
		}
	}
}
