// preprocessor.go implements the per-file state machine: it drives the
// line framer, directive recognizer/accumulator and executors, and the tag
// registry, to produce a file's output text (or, in Clean mode, to delete
// its side effects).
package txtpp

import (
	"os"
	"path/filepath"
	"strings"
)

// Preprocessor runs the engine over a single source file. It is
// restartable: nothing is written to the main output until Run returns
// successfully, so a scheduler may discard a partially run Preprocessor
// and construct a fresh one when a blocking dependency resolves.
type Preprocessor struct {
	path string
	dir  string
	cfg  Config
	shell Shell
	deps DependencyResolver
	tags *Registry

	mode           string
	buf            strings.Builder
	openLine       bool
	directiveIndex int
}

// New constructs a Preprocessor for the source at path. deps may be nil,
// in which case any include of a sibling source fails.
func New(path string, cfg Config, shell Shell, deps DependencyResolver) *Preprocessor {
	if deps == nil {
		deps = noopResolver{}
	}
	return &Preprocessor{
		path:  path,
		dir:   filepath.Dir(path),
		cfg:   cfg,
		shell: shell,
		deps:  deps,
		tags:  NewRegistry(),
	}
}

// Run reads the source file from disk and preprocesses it.
func (p *Preprocessor) Run() ([]byte, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return nil, &ExecutionError{File: p.path, Msg: "reading source", Err: err}
	}
	return p.RunBytes(data)
}

// RunBytes preprocesses already-read source content; tests use this to
// avoid touching disk for the main source file.
func (p *Preprocessor) RunBytes(data []byte) ([]byte, error) {
	lines, mode := SplitLines(data)
	if mode == "" {
		mode = HostLineEnding
	}
	p.mode = mode

	i := 0
	for i < len(lines) {
		line := lines[i]

		head, ok := Recognize(line.Content)
		if !ok {
			// Stored tag text already carries the file's line-ending;
			// fold it back to "\n" so emitText translates it only once.
			sub := strings.ReplaceAll(p.tags.Substitute(line.Content), p.mode, "\n")
			p.emitText("", sub, line.Term)
			i++
			continue
		}

		d, consumed := p.accumulate(lines, i, head)
		i += consumed

		out, hasOutput, err := p.dispatch(d)
		if err != nil {
			if p.cfg.Mode == ModeClean && tolerated(err) {
				continue
			}
			return nil, err
		}
		if hasOutput {
			translated := strings.ReplaceAll(out, "\n", p.mode)
			if !p.tags.CapturePending(translated) {
				p.emitText(d.Head.Whitespace, out, "")
			}
		}
	}

	if orphans := p.tags.Orphans(); len(orphans) > 0 && p.cfg.Mode != ModeClean {
		return nil, &OrphanTagError{File: p.path, Tag: orphans[0]}
	}

	if p.openLine && !p.cfg.NoTrailingNewline {
		p.buf.WriteString(p.mode)
		p.openLine = false
	}
	return []byte(p.buf.String()), nil
}

// tolerated reports whether err is one of the kinds Clean mode silently
// swallows instead of failing the file (§7): parse and execution errors,
// since Clean's goal is deletion, not validity.
func tolerated(err error) bool {
	switch err.(type) {
	case *ParseError, *ExecutionError:
		return true
	default:
		return false
	}
}

// accumulate merges continuation lines into the directive headed by head,
// honoring both the prefix-continuation rule (§4.2, tried first) and the
// legacy backslash continuation (tried only once prefix-continuation
// fails on the current line). It returns the assembled directive and the
// number of source lines it consumed.
func (p *Preprocessor) accumulate(lines []Line, i int, head Head) (*Directive, int) {
	idx := p.directiveIndex
	p.directiveIndex++

	args := []string{head.Arg}
	pos := i + 1

	if !singleLineKinds[head.Kind] {
		for {
			if pos < len(lines) {
				if cont, ok := MatchContinuation(head.Whitespace, head.Prefix, lines[pos].Content); ok {
					args = append(args, cont)
					pos++
					continue
				}
			}
			if stripped, yes := HasLegacyContinuation(args[len(args)-1]); yes && pos < len(lines) {
				args[len(args)-1] = strings.TrimRight(stripped, " \t\v\f")
				args = append(args, lines[pos].Content)
				pos++
				continue
			}
			break
		}
	}

	return &Directive{Kind: head.Kind, Head: head, Args: args, Index: idx, Line: i + 1}, pos - i
}

func (p *Preprocessor) dispatch(d *Directive) (output string, hasOutput bool, err error) {
	switch d.Kind {
	case KindInclude:
		return p.execInclude(d)
	case KindRun:
		return p.execRun(d)
	case KindTemp:
		return p.execTemp(d)
	case KindTag:
		return p.execTag(d)
	case KindWrite:
		return p.execWrite(d)
	default: // KindEmpty
		return "", false, nil
	}
}

// emitText writes text, splitting it on "\n" boundaries and prefixing
// every line, including a trailing open one, with prefix, exactly as §4.5
// describes for directive output (prefix is the directive's W, fallback
// is "") and §4.6 describes for literal source lines (prefix is "",
// fallback is the line's own recorded terminator).
func (p *Preprocessor) emitText(prefix, text, fallback string) {
	closed := strings.HasSuffix(text, "\n")
	if closed {
		text = text[:len(text)-1]
	}
	parts := strings.Split(text, "\n")
	for idx, part := range parts {
		last := idx == len(parts)-1
		switch {
		case !last:
			p.buf.WriteString(prefix + part + p.mode)
		case closed:
			p.buf.WriteString(prefix + part + p.mode)
			p.openLine = false
		case fallback != "":
			p.buf.WriteString(prefix + part + fallback)
			p.openLine = false
		default:
			p.buf.WriteString(prefix + part)
			p.openLine = true
		}
	}
}

func (p *Preprocessor) resolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.dir, path)
}
