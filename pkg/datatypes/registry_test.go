package datatypes

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-campform/pkg/model"
)

type stubQuestion struct {
	typ   string
	props map[string]any
}

func (q stubQuestion) GetType() string { return q.typ }

func (q stubQuestion) GetPropertyValue(name string) any { return q.props[name] }

func text(inputType string) stubQuestion {
	return stubQuestion{typ: model.TypeText, props: map[string]any{model.PropertyInputType: inputType}}
}

func TestResolve_Builtins(t *testing.T) {
	reg := NewDefaultRegistry()

	cases := []struct {
		name     string
		question model.Question
		expect   string
	}{
		{name: "text date", question: text("date"), expect: TypeDateOfBirth},
		{name: "date of birth type", question: stubQuestion{typ: model.TypeDateOfBirth}, expect: TypeDateOfBirth},
		{name: "text email", question: text("email"), expect: TypeEmail},
		{name: "text text", question: text("text"), expect: TypeFirstName},
		{name: "checkbox", question: stubQuestion{typ: model.TypeCheckbox}, expect: TypeWaitingList},
		{name: "address", question: stubQuestion{typ: model.TypeAddress}, expect: TypeAddress},
		{name: "role", question: stubQuestion{typ: model.TypeRole}, expect: TypeRole},
		{name: "dropdown", question: stubQuestion{typ: model.TypeDropdown}, expect: TypeRole},
		{name: "element default input type", question: &model.Element{Type: model.TypeText}, expect: TypeFirstName},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := reg.Resolve(tc.question)
			if !ok {
				t.Fatalf("expected resolution for %s", tc.name)
			}
			if got.Value != tc.expect {
				t.Fatalf("resolve %s: want %q, got %q", tc.name, tc.expect, got.Value)
			}
		})
	}
}

func TestResolve_NoMatch(t *testing.T) {
	reg := NewDefaultRegistry()

	for _, q := range []model.Question{
		text("number"),
		stubQuestion{typ: "comment"},
		stubQuestion{typ: model.TypeText},
		nil,
	} {
		if got, ok := reg.Resolve(q); ok {
			t.Fatalf("expected no match for %#v, got %q", q, got.Value)
		}
	}
	if _, ok := NewRegistry().Resolve(text("text")); ok {
		t.Fatalf("empty registry should never resolve")
	}
}

func TestResolve_RegistrationOrderBreaksTies(t *testing.T) {
	always := func(model.Question, string, map[string]any) bool { return true }

	reg := NewRegistry()
	reg.Register(CampDataType{Value: "first", Fit: always})
	reg.Register(CampDataType{Value: "second", Fit: always})

	got, ok := reg.Resolve(stubQuestion{typ: "anything"})
	if !ok || got.Value != "first" {
		t.Fatalf("first registration should win, got %q (ok=%v)", got.Value, ok)
	}

	fitting := reg.Fitting(stubQuestion{typ: "anything"})
	if len(fitting) != 2 || fitting[1].Value != "second" {
		t.Fatalf("expected both types fitting in order, got %#v", fitting)
	}
}

func TestResolve_LastNameNeverAutomatic(t *testing.T) {
	reg := NewDefaultRegistry()

	fitting := reg.Fitting(text("text"))
	var values []string
	for _, entry := range fitting {
		values = append(values, entry.Value)
	}
	if diff := cmp.Diff([]string{TypeFirstName, TypeLastName}, values); diff != "" {
		t.Fatalf("fitting mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveWith_ForwardsOptions(t *testing.T) {
	reg := NewRegistry()
	var gotProperty string
	var gotOptions map[string]any
	reg.Register(CampDataType{Value: "probe", Fit: func(_ model.Question, property string, options map[string]any) bool {
		gotProperty = property
		gotOptions = options
		return true
	}})

	if _, ok := reg.ResolveWith(stubQuestion{}, map[string]any{"camp": 7}); !ok {
		t.Fatalf("expected resolution")
	}
	if gotProperty != PropertyName || gotOptions["camp"] != 7 {
		t.Fatalf("unexpected predicate inputs: %q %#v", gotProperty, gotOptions)
	}
}

func TestRegister_IgnoresInvalidAndReportsDuplicates(t *testing.T) {
	always := func(model.Question, string, map[string]any) bool { return true }

	reg := NewRegistry()
	reg.Register(CampDataType{Value: "  ", Fit: always})
	reg.Register(CampDataType{Value: "nofit"})
	reg.Register(CampDataType{Value: "email", Fit: always})
	reg.Register(CampDataType{Value: "role", Fit: always})
	reg.Register(CampDataType{Value: "email", Fit: always})

	if len(reg.All()) != 3 {
		t.Fatalf("expected invalid entries ignored, got %d", len(reg.All()))
	}
	if diff := cmp.Diff([]string{"email"}, reg.Duplicates()); diff != "" {
		t.Fatalf("duplicates mismatch (-want +got):\n%s", diff)
	}
	if len(NewDefaultRegistry().Duplicates()) != 0 {
		t.Fatalf("built-ins must not contain duplicates")
	}
}

func TestLookupAndLocales(t *testing.T) {
	reg := NewDefaultRegistry()

	role, ok := reg.Lookup(TypeRole)
	if !ok {
		t.Fatalf("expected role lookup")
	}
	if role.Text("fr") != "Rôle" || role.Text("de") != "Rolle" || role.Text("es") != "Role" {
		t.Fatalf("unexpected role labels: %#v", role.Label)
	}
	if _, ok := reg.Lookup("shoe_size"); ok {
		t.Fatalf("unexpected lookup hit")
	}
	if diff := cmp.Diff([]string{"de", "en", "fr"}, reg.Locales()); diff != "" {
		t.Fatalf("locales mismatch (-want +got):\n%s", diff)
	}
}

func TestDecorator_AppliesCampDataType(t *testing.T) {
	reg := NewDefaultRegistry()

	survey := model.Survey{
		Pages: []model.Page{{
			Elements: []model.Element{
				{Name: "first", Type: model.TypeText},
				{Name: "last", Type: model.TypeText, CampDataType: TypeLastName},
				{Name: "comment", Type: "comment"},
				{
					Name: "contact",
					Type: model.TypePanel,
					Elements: []model.Element{
						{Name: "mail", Type: model.TypeText, InputType: "email"},
					},
				},
			},
		}},
		Elements: []model.Element{
			{Name: "waiting", Type: model.TypeCheckbox},
		},
	}

	if err := reg.Decorate(&survey); err != nil {
		t.Fatalf("decorate: %v", err)
	}

	got := map[string]string{}
	_ = survey.Walk(func(el *model.Element) error {
		got[el.Name] = el.CampDataType
		return nil
	})
	want := map[string]string{
		"first":   TypeFirstName,
		"last":    TypeLastName,
		"comment": "",
		"contact": "",
		"mail":    TypeEmail,
		"waiting": TypeWaitingList,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("decorated types mismatch (-want +got):\n%s", diff)
	}
}
