package campdata

import (
	"strings"

	"github.com/goliatone/go-campform/pkg/model"
)

// Fields maps each camp data type to the names of the questions carrying it,
// in document order.
func Fields(survey *model.Survey) map[string][]string {
	out := make(map[string][]string)
	for _, q := range survey.Questions() {
		value := strings.TrimSpace(q.CampDataType)
		if value == "" || q.Name == "" {
			continue
		}
		out[value] = append(out[value], q.Name)
	}
	return out
}

// Field returns the first question tagged with value.
func Field(survey *model.Survey, value string) (string, bool) {
	names := Fields(survey)[value]
	if len(names) == 0 {
		return "", false
	}
	return names[0], true
}
