// Package batchfile parses batch generation job files. Jobs can live in a
// plain YAML file (a top-level jobs list) or in a Markdown document where
// each job is a yaml fenced code block, named by the nearest preceding
// level-2 heading.
package batchfile

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

// ErrNoJobs reports a job file that parsed but contained no jobs.
var ErrNoJobs = errors.New("batchfile: no jobs found")

// Job is one batch generation request. Zero values defer to the run's base
// configuration.
type Job struct {
	// Name labels the job in logs and defaults to its position.
	Name string `yaml:"name"`

	// Count is how many puzzles to generate; zero means 1.
	Count int `yaml:"count"`

	// N overrides the village size.
	N int `yaml:"n"`

	// StatementsMin and StatementsMax override the bundle size bounds.
	StatementsMin int `yaml:"statements_min"`
	StatementsMax int `yaml:"statements_max"`

	// HasShill enables shill mode for this job.
	HasShill bool `yaml:"has_shill"`

	// MaxAttempts overrides the restart budget.
	MaxAttempts int `yaml:"max_attempts"`

	// MinWerewolves and MaxWerewolves bound the target's wolf count.
	MinWerewolves int `yaml:"min_werewolves"`
	MaxWerewolves int `yaml:"max_werewolves"`

	// Seed fixes the base seed for this job; zero derives one from the
	// run's seed and the job position.
	Seed int64 `yaml:"seed"`
}

// Parse reads a job file, dispatching on extension: .yaml/.yml or
// .md/.markdown.
func Parse(path string) ([]Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read job file: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return parseYAML(data)
	case ".md", ".markdown":
		return parseMarkdown(data)
	}
	return nil, fmt.Errorf("batchfile: unsupported job file extension %q", filepath.Ext(path))
}

func parseYAML(data []byte) ([]Job, error) {
	var doc struct {
		Jobs []Job `yaml:"jobs"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse job file: %w", err)
	}
	if len(doc.Jobs) == 0 {
		return nil, ErrNoJobs
	}
	nameJobs(doc.Jobs)
	return doc.Jobs, nil
}

func parseMarkdown(data []byte) ([]Job, error) {
	doc := goldmark.New().Parser().Parse(text.NewReader(data))

	var jobs []Job
	var currentHeading string
	var walkErr error

	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			if node.Level == 2 {
				currentHeading = headingText(node, data)
			}
		case *ast.FencedCodeBlock:
			lang := string(node.Language(data))
			if lang != "yaml" && lang != "yml" {
				return ast.WalkContinue, nil
			}
			var body bytes.Buffer
			lines := node.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				body.Write(seg.Value(data))
			}
			var job Job
			if err := yaml.Unmarshal(body.Bytes(), &job); err != nil {
				walkErr = fmt.Errorf("parse job block under %q: %w", currentHeading, err)
				return ast.WalkStop, nil
			}
			if job.Name == "" {
				job.Name = currentHeading
			}
			jobs = append(jobs, job)
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}
	if walkErr != nil {
		return nil, walkErr
	}
	if len(jobs) == 0 {
		return nil, ErrNoJobs
	}
	nameJobs(jobs)
	return jobs, nil
}

func headingText(h *ast.Heading, source []byte) string {
	var buf bytes.Buffer
	for c := h.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Segment.Value(source))
		}
	}
	return strings.TrimSpace(buf.String())
}

func nameJobs(jobs []Job) {
	for i := range jobs {
		if jobs[i].Name == "" {
			jobs[i].Name = fmt.Sprintf("job-%d", i+1)
		}
		if jobs[i].Count == 0 {
			jobs[i].Count = 1
		}
	}
}
