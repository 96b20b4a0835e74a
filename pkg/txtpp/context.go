package txtpp

import "context"

// Mode selects what a preprocessing pass does with its result.
type Mode int

const (
	// ModeBuild writes the computed output to disk unconditionally.
	ModeBuild Mode = iota
	// ModeInMemoryBuild computes the output and writes it only if it
	// differs from what is already on disk.
	ModeInMemoryBuild
	// ModeVerify computes the output and fails on the first byte that
	// differs from the on-disk output, writing nothing.
	ModeVerify
	// ModeClean deletes the output file and any temp side-effects instead
	// of producing output; execution errors are tolerated.
	ModeClean
)

// Config carries the options a CLI front-end resolves before driving the
// engine (§6 of the specification).
type Config struct {
	// Shell is the argv prefix a run directive's command is appended to,
	// e.g. []string{"sh", "-c"}.
	Shell []string
	// Suffix is the source-file suffix, default ".txtpp".
	Suffix string
	// NoTrailingNewline suppresses the final line-ending that would
	// otherwise be appended when the output ends mid-line. Temp files are
	// never affected by this flag. Mirrors the --no-trailing-newline CLI
	// flag; the zero value keeps the spec's default (a newline is added).
	NoTrailingNewline bool
	Mode              Mode
}

// DefaultSuffix is the suffix recognized when Config.Suffix is empty.
const DefaultSuffix = ".txtpp"

func (c Config) suffix() string {
	if c.Suffix == "" {
		return DefaultSuffix
	}
	return c.Suffix
}

// Shell runs a directive's command string and captures its standard
// output verbatim. The run executor itself rejects non-UTF-8 output; see
// internal/shellresolve for the concrete posix/windows policy.
type Shell interface {
	Run(ctx context.Context, command, dir string, env []string) ([]byte, error)
}

// DependencyResolver lets the include executor ask the scheduler to make
// sure a sibling source has been preprocessed before reading its output.
// Implementations may return a blocking signal (an error value private to
// the implementation) instead of resolving immediately; the file
// preprocessor propagates that signal as an ordinary error and the caller
// (the scheduler) recognizes it and requeues the consumer instead of
// failing it.
type DependencyResolver interface {
	EnsureBuilt(consumer, dep string) ([]byte, error)
}

// noopResolver is used when a caller preprocesses a single file with no
// scheduler backing it; any include of a sibling source fails outright.
type noopResolver struct{}

func (noopResolver) EnsureBuilt(consumer, dep string) ([]byte, error) {
	return nil, &DependencyError{File: consumer, Dep: dep, Reason: errNoScheduler}
}

var errNoScheduler = &ResolutionError{Msg: "no scheduler available to resolve sibling source"}
