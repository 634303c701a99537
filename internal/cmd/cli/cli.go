// Package cli parses campform-cli flags and tags or reads survey files.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	entrypoint "github.com/goliatone/go-campform/internal/cmd"
	"github.com/goliatone/go-campform/internal/prompt"
	"github.com/goliatone/go-campform/internal/tagging"
	"github.com/goliatone/go-campform/pkg/campdata"
	"github.com/goliatone/go-campform/pkg/datatypes"
	"github.com/goliatone/go-campform/pkg/expression"
	"github.com/goliatone/go-campform/pkg/functions"
	"github.com/goliatone/go-campform/pkg/model"
	"github.com/goliatone/go-campform/pkg/providers"
	"github.com/goliatone/go-campform/pkg/survey"
)

// Config holds campform-cli configuration.
type Config struct {
	Survey      string
	Answers     string
	Reference   string
	Output      string
	Interactive bool
	Locale      string `env:"CAMPFORM_LOCALE" envDefault:"en"`
	LogLevel    string `env:"CAMPFORM_LOG_LEVEL" envDefault:"info"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Survey, "survey", "", "survey definition (JSON or YAML)")
	fs.StringVar(&cfg.Answers, "answers", "", "submitted answers (JSON); prints the camp record instead of the survey")
	fs.StringVar(&cfg.Reference, "reference", "", "reference date for the minor check (defaults to today)")
	fs.StringVar(&cfg.Output, "output", "", "output file (stdout if empty)")
	fs.BoolVar(&cfg.Interactive, "interactive", false, "prompt for ambiguous or unresolved questions")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "locale for labels")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if strings.TrimSpace(cfg.Survey) == "" {
		return Config{}, errors.New("-survey is required")
	}
	return cfg, nil
}

// Deps are the process resources Run writes to.
type Deps struct {
	Stdout   io.Writer
	Logger   *slog.Logger
	Driver   prompt.Driver
	Types    *datatypes.Registry
	Provider *providers.Registry
	Now      func() time.Time
}

// Summary is the answers report.
type Summary struct {
	Survey      string              `json:"survey"`
	Fields      map[string][]string `json:"fields"`
	Record      map[string]any      `json:"record"`
	FullName    string              `json:"fullName,omitempty"`
	Email       string              `json:"email,omitempty"`
	WaitingList bool                `json:"waitingList"`
	Minor       *bool               `json:"minor,omitempty"`
	Unrendered  []string            `json:"unrendered,omitempty"`
}

// Run tags the survey and writes either the tagged survey or, when answers
// are given, the camp record summary.
func Run(ctx context.Context, cfg Config, deps Deps) error {
	deps = withDefaults(deps, cfg)
	logger := deps.Logger.With("survey", cfg.Survey)

	if dups := deps.Types.Duplicates(); len(dups) > 0 {
		logger.Warn("camp data types registered more than once", "values", dups)
	}

	data, err := os.ReadFile(cfg.Survey)
	if err != nil {
		return fmt.Errorf("read survey: %w", err)
	}
	form, err := survey.Parse(data, cfg.Survey)
	if err != nil {
		return err
	}

	tagger := tagging.Tagger{Registry: deps.Types, Locale: cfg.Locale}
	if cfg.Interactive {
		tagger.Driver = deps.Driver
	}
	decisions, err := tagger.Tag(ctx, &form)
	if err != nil {
		return err
	}
	for _, d := range decisions {
		logger.Debug("tagged question", "question", d.Question, "type", d.Value, "prompted", d.Prompted)
	}
	logger.Info("survey tagged", "questions", len(form.Questions()), "tagged", len(decisions))

	var payload any = form
	if cfg.Answers != "" {
		summary, err := summarize(cfg, deps, &form, logger)
		if err != nil {
			return err
		}
		payload = summary
	}

	out, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	out = append(out, '\n')

	if cfg.Output == "" {
		_, err := deps.Stdout.Write(out)
		return err
	}
	if err := os.WriteFile(cfg.Output, out, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	logger.Info("output written", "path", cfg.Output)
	return nil
}

// loadAnswers reads a SurveyJS answer object. Nested objects stay
// *model.OrderedObject so objectValues sees them in file order.
func loadAnswers(path string) (map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read answers: %w", err)
	}
	var answers model.OrderedObject
	if err := json.Unmarshal(raw, &answers); err != nil {
		return nil, fmt.Errorf("decode answers: %w", err)
	}
	return answers.Map(), nil
}

func summarize(cfg Config, deps Deps, form *model.Survey, logger *slog.Logger) (Summary, error) {
	answers, err := loadAnswers(cfg.Answers)
	if err != nil {
		return Summary{}, err
	}

	record, err := campdata.Extract(form, answers, campdata.WithEvaluator(expression.New()))
	if err != nil {
		return Summary{}, err
	}

	display, err := campdata.Display(record, deps.Provider)
	summary := Summary{
		Survey:      form.Name,
		Fields:      campdata.Fields(form),
		Record:      display,
		FullName:    record.FullName(),
		Email:       record.Email(),
		WaitingList: record.OnWaitingList(),
	}
	if err != nil {
		if !errors.Is(err, providers.ErrNoProvider) {
			return Summary{}, err
		}
		for _, key := range record.Types() {
			if _, ok := display[key]; !ok {
				summary.Unrendered = append(summary.Unrendered, key)
			}
		}
		logger.Warn("some answers have no display provider", "types", summary.Unrendered)
	}

	reference := deps.Now()
	if cfg.Reference != "" {
		parsed, ok := functions.ParseDate(cfg.Reference)
		if !ok {
			return Summary{}, fmt.Errorf("invalid -reference %q", cfg.Reference)
		}
		reference = parsed
	}
	if _, ok := record.DateOfBirth(); ok {
		minor, err := campdata.IsMinor(record, reference)
		if err != nil {
			return Summary{}, err
		}
		summary.Minor = &minor
	}
	return summary, nil
}

func withDefaults(deps Deps, cfg Config) Deps {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Logger == nil {
		deps.Logger = entrypoint.NewLogger(os.Stderr, cfg.LogLevel)
	}
	if deps.Driver == nil {
		deps.Driver = prompt.NewSurveyDriver(os.Stderr)
	}
	if deps.Types == nil {
		deps.Types = datatypes.NewDefaultRegistry()
	}
	if deps.Provider == nil {
		deps.Provider = providers.Instance()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return deps
}
