package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/goliatone/go-campform/pkg/survey"
	"github.com/goliatone/go-campform/pkg/validation"
)

type violation struct {
	file     string
	location string
	message  string
}

func main() {
	flag.Usage = func() {
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [paths...]\n", filepath.Base(os.Args[0])); err != nil {
			panic(err)
		}
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "\nLint camp survey definitions for unknown data types and broken rules.\n"); err != nil {
			panic(err)
		}
	}
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		paths = []string{"testdata/forms/summer.json"}
	}
	os.Exit(run(paths, os.Stderr))
}

func run(paths []string, out io.Writer) int {
	var violations []violation
	for _, path := range paths {
		linted, err := lintFile(path)
		if err != nil {
			fmt.Fprintf(out, "lint %s: %v\n", path, err)
			return 1
		}
		violations = append(violations, linted...)
	}

	if len(violations) == 0 {
		return 0
	}
	sort.SliceStable(violations, func(i, j int) bool {
		return violations[i].file < violations[j].file
	})
	for _, v := range violations {
		fmt.Fprintf(out, "%s: %s -> %s\n", v.file, v.location, v.message)
	}
	return 1
}

func lintFile(path string) ([]violation, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	doc, err := survey.Parse(raw, path)
	if err != nil {
		return nil, err
	}

	result := validation.ValidateSurvey(&doc, validation.Options{})
	var out []violation
	for _, issue := range result.Issues {
		location := issue.Path
		if issue.Field != "" {
			location = fmt.Sprintf("%s (%s)", issue.Path, issue.Field)
		}
		out = append(out, violation{file: path, location: location, message: issue.Message})
	}
	return out, nil
}
