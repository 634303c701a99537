package cli

import (
	"bytes"
	"encoding/json"
	"flag"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-campform/pkg/functions"
	"github.com/goliatone/go-campform/pkg/model"
	"github.com/goliatone/go-campform/pkg/testsupport"
)

func quietDeps(stdout io.Writer) Deps {
	return Deps{
		Stdout: stdout,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Now:    func() time.Time { return time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC) },
	}
}

func TestParseConfig(t *testing.T) {
	t.Setenv("CAMPFORM_LOCALE", "de")
	cfg, err := ParseConfig(flag.NewFlagSet("cli", flag.ContinueOnError), []string{"-survey", "form.json", "-interactive"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Survey != "form.json" || !cfg.Interactive || cfg.Locale != "de" {
		t.Fatalf("unexpected config %#v", cfg)
	}
}

func TestParseConfig_RequiresSurvey(t *testing.T) {
	if _, err := ParseConfig(flag.NewFlagSet("cli", flag.ContinueOnError), nil); err == nil {
		t.Fatalf("expected missing survey error")
	}
}

func TestRun_TagsSurvey(t *testing.T) {
	var stdout bytes.Buffer
	cfg := Config{Survey: filepath.Join("testdata", "form.yaml"), Locale: "en"}
	if err := Run(testsupport.Context(), cfg, quietDeps(&stdout)); err != nil {
		t.Fatalf("run: %v", err)
	}

	var got model.Survey
	if err := json.Unmarshal(stdout.Bytes(), &got); err != nil {
		t.Fatalf("decode output: %v\n%s", err, stdout.String())
	}
	types := map[string]string{}
	for _, q := range got.Questions() {
		types[q.Name] = q.CampDataType
	}
	want := map[string]string{
		"given":   "first_name",
		"family":  "last_name",
		"born":    "date_of_birth",
		"home":    "address",
		"waiting": "waiting_list",
		"role":    "role",
		"notes":   "",
	}
	if diff := testsupport.CompareGolden(want, types); diff != "" {
		t.Fatalf("types mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_TaggedGolden(t *testing.T) {
	var stdout bytes.Buffer
	cfg := Config{Survey: filepath.Join("testdata", "form.yaml")}
	if err := Run(testsupport.Context(), cfg, quietDeps(&stdout)); err != nil {
		t.Fatalf("run: %v", err)
	}

	golden := filepath.Join("testdata", "form.tagged.golden.json")
	if testsupport.WriteMaybeGolden(t, golden, stdout.Bytes()) {
		return
	}
	want := testsupport.MustReadGolden(t, golden)
	if diff := testsupport.CompareGolden(string(want), stdout.String()); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_AnswersSummary(t *testing.T) {
	out := filepath.Join(t.TempDir(), "summary.json")
	cfg := Config{
		Survey:  filepath.Join("testdata", "form.yaml"),
		Answers: filepath.Join("testdata", "answers.json"),
		Output:  out,
	}
	if err := Run(testsupport.Context(), cfg, quietDeps(io.Discard)); err != nil {
		t.Fatalf("run: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var got Summary
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("decode summary: %v", err)
	}

	minor := true
	want := Summary{
		Survey: "spring",
		Fields: map[string][]string{
			"first_name":    {"given"},
			"last_name":     {"family"},
			"date_of_birth": {"born"},
			"address":       {"home"},
			"waiting_list":  {"waiting"},
			"role":          {"role"},
		},
		Record: map[string]any{
			"first_name":    "Ada",
			"last_name":     "Lovelace",
			"date_of_birth": "2012-12-10",
			"address":       "Main St 5, 8000 Zurich",
			"waiting_list":  "yes",
			"role":          "child",
		},
		FullName:    "Ada Lovelace",
		WaitingList: true,
		Minor:       &minor,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("summary mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadAnswers_KeepsNestedOrder(t *testing.T) {
	answers, err := loadAnswers(filepath.Join("testdata", "answers.json"))
	if err != nil {
		t.Fatalf("load answers: %v", err)
	}
	home, ok := answers["home"].(*model.OrderedObject)
	if !ok {
		t.Fatalf("expected nested answer as *model.OrderedObject, got %T", answers["home"])
	}
	if diff := cmp.Diff([]string{"street", "number", "zip", "city"}, home.Keys()); diff != "" {
		t.Fatalf("key order mismatch (-want +got):\n%s", diff)
	}

	values, err := functions.ObjectValues([]any{answers["home"]})
	if err != nil {
		t.Fatalf("objectValues: %v", err)
	}
	if diff := cmp.Diff([]any{"Main St", "5", "8000", "Zurich"}, values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadAnswers_RejectsNonObject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answers.json")
	if err := os.WriteFile(path, []byte(`["Ada"]`), 0o600); err != nil {
		t.Fatalf("write answers: %v", err)
	}
	if _, err := loadAnswers(path); err == nil {
		t.Fatalf("expected decode error for a JSON array")
	}
}

func TestRun_InvalidReference(t *testing.T) {
	cfg := Config{
		Survey:    filepath.Join("testdata", "form.yaml"),
		Answers:   filepath.Join("testdata", "answers.json"),
		Reference: "soon",
	}
	if err := Run(testsupport.Context(), cfg, quietDeps(io.Discard)); err == nil {
		t.Fatalf("expected invalid reference error")
	}
}

func TestRun_MissingSurvey(t *testing.T) {
	cfg := Config{Survey: filepath.Join("testdata", "missing.json")}
	if err := Run(testsupport.Context(), cfg, quietDeps(io.Discard)); err == nil {
		t.Fatalf("expected read error")
	}
}
