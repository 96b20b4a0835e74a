package txtpp

import (
	"context"
	"fmt"
	"os"
	"unicode/utf8"
)

// execRun invokes the resolved shell with the directive's command, in the
// source's directory, with TXTPP_FILE and TXTPP_DIRECTIVE_INDEX added to
// the environment.
func (p *Preprocessor) execRun(d *Directive) (string, bool, error) {
	command := d.Command()
	if command == "" {
		return "", false, &ParseError{File: p.path, Line: d.Line, Msg: "run requires a command"}
	}
	if p.cfg.Mode == ModeClean {
		return "", false, nil
	}
	if p.shell == nil {
		return "", false, &ExecutionError{File: p.path, Line: d.Line, Msg: "no shell configured for run"}
	}

	env := append(os.Environ(),
		"TXTPP_FILE="+p.path,
		fmt.Sprintf("TXTPP_DIRECTIVE_INDEX=%d", d.Index),
	)

	out, err := p.shell.Run(context.Background(), command, p.dir, env)
	if err != nil {
		return "", false, &ExecutionError{File: p.path, Line: d.Line, Msg: "command failed: " + command, Err: err}
	}
	if !utf8.Valid(out) {
		return "", false, &ExecutionError{File: p.path, Line: d.Line, Msg: "command produced non-UTF-8 output: " + command}
	}
	return string(out), true, nil
}
