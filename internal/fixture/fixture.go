// Package fixture loads YAML-described multi-file scenarios shared by the
// pkg/preproc and cmd/txtpp integration tests: a named file tree to
// materialize on disk, plus the output files or error text a run against
// that tree should produce.
package fixture

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// File is a single named file, either an input to materialize or an
// expected output to check a scenario's working directory against.
type File struct {
	Path    string `yaml:"path"`
	Content string `yaml:"content"`
}

// Scenario is one end-to-end case: the source tree it needs on disk, and
// what a successful (or failing) run against that tree should produce.
type Scenario struct {
	Name                string `yaml:"name"`
	Skip                string `yaml:"skip,omitempty"`
	Inputs              []File `yaml:"inputs"`
	ExpectOutputs       []File `yaml:"expect_outputs,omitempty"`
	ExpectErrorContains string `yaml:"expect_error_contains,omitempty"`
}

// Suite is the top-level shape of a scenarios YAML file.
type Suite struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

// Load reads and parses a scenarios file from path.
func Load(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Suite
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Materialize writes every input file of the scenario under dir, creating
// parent directories as needed.
func (s *Scenario) Materialize(dir string) error {
	for _, f := range s.Inputs {
		full := filepath.Join(dir, f.Path)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(full, []byte(f.Content), 0o644); err != nil {
			return err
		}
	}
	return nil
}

// CheckOutputs reads every expected output file under dir and reports the
// first mismatch as an error naming the path and the got/want contents.
func (s *Scenario) CheckOutputs(dir string) error {
	for _, f := range s.ExpectOutputs {
		full := filepath.Join(dir, f.Path)
		got, err := os.ReadFile(full)
		if err != nil {
			return &MissingOutputError{Path: f.Path, Err: err}
		}
		if string(got) != f.Content {
			return &OutputMismatchError{Path: f.Path, Got: string(got), Want: f.Content}
		}
	}
	return nil
}

// MissingOutputError reports that a scenario's expected output file was
// never written.
type MissingOutputError struct {
	Path string
	Err  error
}

func (e *MissingOutputError) Error() string {
	return "fixture: expected output " + e.Path + " not found: " + e.Err.Error()
}

func (e *MissingOutputError) Unwrap() error { return e.Err }

// OutputMismatchError reports that a scenario's expected output file
// differs from what was written to disk.
type OutputMismatchError struct {
	Path     string
	Got, Want string
}

func (e *OutputMismatchError) Error() string {
	return "fixture: output " + e.Path + " mismatch: got " + quote(e.Got) + ", want " + quote(e.Want)
}

func quote(s string) string {
	const max = 200
	if len(s) > max {
		s = s[:max] + "…"
	}
	return "\"" + s + "\""
}
