package txtpp

import (
	"os"
	"strings"
)

// execTemp implements §4.4.3. In Build/InMemoryBuild modes the resolved
// sibling file is (re)written only if its contents would change. In Verify
// mode the filesystem is left untouched. In Clean mode the file is removed
// instead.
func (p *Preprocessor) execTemp(d *Directive) (string, bool, error) {
	if len(d.Args) == 0 || d.Args[0] == "" {
		return "", false, &ParseError{File: p.path, Line: d.Line, Msg: "temp requires a file path"}
	}
	path := d.Args[0]
	suffix := p.cfg.suffix()
	if strings.HasSuffix(path, suffix) {
		return "", false, &ResolutionError{File: p.path, Line: d.Line, Msg: "temp target must not end in " + suffix}
	}

	resolved := p.resolvePath(path)

	if p.cfg.Mode == ModeClean {
		_ = os.Remove(resolved)
		return "", false, nil
	}
	if p.cfg.Mode == ModeVerify {
		return "", false, nil
	}

	rest := d.Args[1:]
	body := strings.Join(rest, p.mode)
	if len(rest) > 0 && rest[len(rest)-1] == "" {
		body += p.mode
	}

	if err := WriteIfDiffers(resolved, []byte(body)); err != nil {
		return "", false, &ExecutionError{File: p.path, Line: d.Line, Msg: "writing temp file " + path, Err: err}
	}
	return "", false, nil
}
