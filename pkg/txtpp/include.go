package txtpp

import (
	"os"
	"strings"
)

// execInclude runs the include directive. If path does not already end
// in the source suffix and a sibling path+suffix exists, the sibling is
// preprocessed first (via the scheduler, through deps) and its output is
// read; otherwise path is read directly.
func (p *Preprocessor) execInclude(d *Directive) (string, bool, error) {
	path := d.Args[0]
	if path == "" {
		return "", false, &ParseError{File: p.path, Line: d.Line, Msg: "include requires a file path"}
	}
	if p.cfg.Mode == ModeClean {
		return "", false, nil
	}

	resolved := p.resolvePath(path)
	suffix := p.cfg.suffix()

	if !strings.HasSuffix(resolved, suffix) {
		sibling := resolved + suffix
		if fileExists(sibling) {
			out, err := p.deps.EnsureBuilt(p.path, sibling)
			if err != nil {
				return "", false, err
			}
			return normalizeToLF(string(out)), true, nil
		}
	}

	data, err := os.ReadFile(resolved)
	if os.IsNotExist(err) {
		return "", false, &ResolutionError{File: p.path, Line: d.Line, Msg: "include target not found: " + path}
	}
	if err != nil {
		return "", false, &ExecutionError{File: p.path, Line: d.Line, Msg: "reading include target " + path, Err: err}
	}
	return normalizeToLF(string(data)), true, nil
}

// normalizeToLF rewrites every "\r\n" terminator to a plain "\n", matching
// the convention every other executor's output already honors: output
// flowing into the emit pipeline (preprocessor.go) is LF-separated, and
// the pipeline itself owns translating that to the current file's
// line-ending. Without this, splicing CRLF-terminated included content
// into the "\n"-based emit/capture path would double the "\r" (emitText
// and tag capture both re-insert the destination mode's terminator on top
// of the already-CRLF source bytes). An isolated "\r" with no following
// "\n" is left untouched, consistent with SplitLines never treating it as
// a terminator.
func normalizeToLF(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}
