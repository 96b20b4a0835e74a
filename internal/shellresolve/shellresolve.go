// Package shellresolve is the host-specific collaborator the engine
// consumes only through txtpp.Shell: it resolves the argv prefix a run
// directive's command is appended to, and guards against the
// preprocessor being invoked recursively as its own run subprocess.
package shellresolve

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"runtime"
)

// ErrSelfRecursion is returned by CheckNotSubprocess when the process's own
// environment already carries TXTPP_FILE, meaning this process was itself
// spawned by a run directive.
var ErrSelfRecursion = errors.New("txtpp: refusing to run as a subprocess of itself (TXTPP_FILE already set)")

// CheckNotSubprocess is the self-recursion guard: it must be called once,
// at startup, before any preprocessing begins.
func CheckNotSubprocess() error {
	if _, set := os.LookupEnv("TXTPP_FILE"); set {
		return ErrSelfRecursion
	}
	return nil
}

// Default resolves the shell argv prefix for the host platform, honoring
// an explicit override (as the --shell flag does on cmd/txtpp).
//
// Posix hosts use "sh -c". Windows hosts try, in order, "pwsh
// -NonInteractive -NoProfile -Command", "powershell -NonInteractive
// -NoProfile -Command", then "cmd /C".
func Default(override []string) []string {
	if len(override) > 0 {
		return override
	}
	if runtime.GOOS != "windows" {
		return []string{"sh", "-c"}
	}
	for _, candidate := range [][]string{
		{"pwsh", "-NonInteractive", "-NoProfile", "-Command"},
		{"powershell", "-NonInteractive", "-NoProfile", "-Command"},
	} {
		if _, err := exec.LookPath(candidate[0]); err == nil {
			return candidate
		}
	}
	return []string{"cmd", "/C"}
}

// Shell runs a directive's command through a resolved argv prefix.
type Shell struct {
	Argv []string
}

// New returns a Shell using the resolved argv prefix (see Default).
func New(argv []string) *Shell {
	return &Shell{Argv: argv}
}

// Run implements txtpp.Shell: it appends command to the argv prefix, runs
// it in dir with env, and captures standard output verbatim. A non-zero
// exit status or spawn failure is an error; standard error is discarded
// except as context on failure.
func (s *Shell) Run(ctx context.Context, command, dir string, env []string) ([]byte, error) {
	argv := append(append([]string{}, s.Argv...), command)
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = normalizeDir(dir)
	cmd.Env = env

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return nil, &exitError{err: err, stderr: stderr.String()}
		}
		return nil, err
	}
	return stdout.Bytes(), nil
}

// normalizeDir strips windows verbatim-path quirks (the \\?\ prefix) so
// the child process sees an ordinary path.
func normalizeDir(dir string) string {
	const verbatimPrefix = `\\?\`
	if len(dir) > len(verbatimPrefix) && dir[:len(verbatimPrefix)] == verbatimPrefix {
		return dir[len(verbatimPrefix):]
	}
	return dir
}

type exitError struct {
	err    error
	stderr string
}

func (e *exitError) Error() string { return e.err.Error() + ": " + e.stderr }
func (e *exitError) Unwrap() error { return e.err }
