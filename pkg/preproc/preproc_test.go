package preproc

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/txtppgo/txtpp/internal/fixture"
	"github.com/txtppgo/txtpp/pkg/txtpp"
)

func loadScenarios(t *testing.T) []fixture.Scenario {
	t.Helper()
	suite, err := fixture.Load("../../internal/fixture/testdata/scenarios.yaml")
	if err != nil {
		t.Fatalf("loading scenarios: %v", err)
	}
	return suite.Scenarios
}

func scenario(t *testing.T, name string) fixture.Scenario {
	t.Helper()
	for _, s := range loadScenarios(t) {
		if s.Name == name {
			return s
		}
	}
	t.Fatalf("scenario %q not found", name)
	return fixture.Scenario{}
}

func needsShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("no posix sh on this host")
	}
}

func TestPreprocessSimpleInclude(t *testing.T) {
	sc := scenario(t, "simple include")
	dir := t.TempDir()
	if err := sc.Materialize(dir); err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	report, err := Preprocess([]string{dir}, Options{Jobs: 1})
	if err != nil {
		t.Fatalf("Preprocess: %v", err)
	}
	if report.Failed() {
		t.Fatalf("report reports failure: %s", report.String())
	}
	if err := sc.CheckOutputs(dir); err != nil {
		t.Error(err)
	}
}

func TestPreprocessTransitiveInclude(t *testing.T) {
	sc := scenario(t, "transitive include")
	dir := t.TempDir()
	if err := sc.Materialize(dir); err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	report, err := Preprocess([]string{dir}, Options{Jobs: 2, Recursive: true})
	if err != nil {
		t.Fatalf("Preprocess: %v", err)
	}
	if report.Failed() {
		t.Fatalf("report reports failure: %s", report.String())
	}
	if err := sc.CheckOutputs(dir); err != nil {
		t.Error(err)
	}
}

func TestPreprocessIndentedRun(t *testing.T) {
	needsShell(t)
	sc := scenario(t, "indented run")
	dir := t.TempDir()
	if err := sc.Materialize(dir); err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	report, err := Preprocess([]string{dir}, Options{Jobs: 1})
	if err != nil {
		t.Fatalf("Preprocess: %v", err)
	}
	if report.Failed() {
		t.Fatalf("report reports failure: %s", report.String())
	}
	if err := sc.CheckOutputs(dir); err != nil {
		t.Error(err)
	}
}

func TestPreprocessTagCaptureAcrossTemp(t *testing.T) {
	needsShell(t)
	sc := scenario(t, "tag capture across temp")
	dir := t.TempDir()
	if err := sc.Materialize(dir); err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	report, err := Preprocess([]string{dir}, Options{Jobs: 1})
	if err != nil {
		t.Fatalf("Preprocess: %v", err)
	}
	if report.Failed() {
		t.Fatalf("report reports failure: %s", report.String())
	}
	if err := sc.CheckOutputs(dir); err != nil {
		t.Error(err)
	}
}

func TestPreprocessTagPrefixCollision(t *testing.T) {
	sc := scenario(t, "tag prefix collision")
	dir := t.TempDir()
	if err := sc.Materialize(dir); err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	report, err := Preprocess([]string{dir}, Options{Jobs: 1})
	if err != nil {
		t.Fatalf("Preprocess: %v", err)
	}
	if !report.Failed() {
		t.Fatal("expected the collision to fail the file")
	}
	found := false
	for _, fr := range report.Results {
		if fr.Err != nil {
			found = true
			if _, ok := fr.Err.(*txtpp.ResolutionError); !ok {
				t.Errorf("got error %v (%T), want *txtpp.ResolutionError", fr.Err, fr.Err)
			}
		}
	}
	if !found {
		t.Fatal("no failing result recorded")
	}
}

func TestPreprocessCycle(t *testing.T) {
	sc := scenario(t, "cycle")
	dir := t.TempDir()
	if err := sc.Materialize(dir); err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	report, err := Preprocess([]string{dir}, Options{Jobs: 1})
	if err != nil {
		t.Fatalf("Preprocess: %v", err)
	}
	if report.FailureCount() != 2 {
		t.Fatalf("got %d failures, want 2 (both sides of the cycle): %s", report.FailureCount(), report.String())
	}
	for _, fr := range report.Results {
		depErr, ok := fr.Err.(*txtpp.DependencyError)
		if !ok || !depErr.Cycle {
			t.Errorf("%s: got %v (%T), want a cyclic DependencyError", fr.Path, fr.Err, fr.Err)
		}
	}
}

func TestPreprocessCRLFWriteAndInclude(t *testing.T) {
	sc := scenario(t, "crlf write and include")
	dir := t.TempDir()
	if err := sc.Materialize(dir); err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	report, err := Preprocess([]string{dir}, Options{Jobs: 1})
	if err != nil {
		t.Fatalf("Preprocess: %v", err)
	}
	if report.Failed() {
		t.Fatalf("report reports failure: %s", report.String())
	}
	if err := sc.CheckOutputs(dir); err != nil {
		t.Error(err)
	}
}

func TestPreprocessCRLFTransitiveInclude(t *testing.T) {
	sc := scenario(t, "crlf transitive include")
	dir := t.TempDir()
	if err := sc.Materialize(dir); err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	report, err := Preprocess([]string{dir}, Options{Jobs: 2, Recursive: true})
	if err != nil {
		t.Fatalf("Preprocess: %v", err)
	}
	if report.Failed() {
		t.Fatalf("report reports failure: %s", report.String())
	}
	if err := sc.CheckOutputs(dir); err != nil {
		t.Error(err)
	}
}

func TestVerifyRoundTripAfterPreprocessCRLF(t *testing.T) {
	sc := scenario(t, "crlf write and include")
	dir := t.TempDir()
	if err := sc.Materialize(dir); err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	if _, err := Preprocess([]string{dir}, Options{Jobs: 1}); err != nil {
		t.Fatalf("Preprocess: %v", err)
	}
	report, err := Verify([]string{dir}, Options{Jobs: 1})
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if report.Failed() {
		t.Fatalf("Verify reported a difference after a clean Preprocess: %s", report.String())
	}
}

func TestVerifyRoundTripAfterPreprocess(t *testing.T) {
	sc := scenario(t, "simple include")
	dir := t.TempDir()
	if err := sc.Materialize(dir); err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	if _, err := Preprocess([]string{dir}, Options{Jobs: 1}); err != nil {
		t.Fatalf("Preprocess: %v", err)
	}
	report, err := Verify([]string{dir}, Options{Jobs: 1})
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if report.Failed() {
		t.Fatalf("Verify reported a difference after a clean Preprocess: %s", report.String())
	}
}

func TestCleanRemovesOutput(t *testing.T) {
	sc := scenario(t, "simple include")
	dir := t.TempDir()
	if err := sc.Materialize(dir); err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	if _, err := Preprocess([]string{dir}, Options{Jobs: 1}); err != nil {
		t.Fatalf("Preprocess: %v", err)
	}
	outPath := filepath.Join(dir, "foo.txt")
	if _, err := os.Stat(outPath); err != nil {
		t.Fatalf("expected output to exist before Clean: %v", err)
	}
	if _, err := Clean([]string{dir}, Options{Jobs: 1}); err != nil {
		t.Fatalf("Clean: %v", err)
	}
	if _, err := os.Stat(outPath); !os.IsNotExist(err) {
		t.Errorf("expected %s to be removed by Clean, got err=%v", outPath, err)
	}
}
