package txtpp

import "strings"

// execTag implements §4.4.4: validate the name against the tag registry
// and move it into pending-capture state. Produces no output.
func (p *Preprocessor) execTag(d *Directive) (string, bool, error) {
	name := d.Args[0]
	if name == "" {
		return "", false, &ParseError{File: p.path, Line: d.Line, Msg: "tag requires a name"}
	}
	if err := p.tags.Create(name); err != nil {
		if re, ok := err.(*ResolutionError); ok {
			re.File, re.Line = p.path, d.Line
		}
		return "", false, err
	}
	return "", false, nil
}

// execWrite implements §4.4.5: the arguments joined by a logical newline
// with an unconditional trailing terminator. Like every other executor,
// the output is LF-separated; the emit pipeline (§4.5) owns translating
// it to the file's line-ending. Tag substitution is never applied to this
// output when it is spliced in (the caller only substitutes tags into
// non-directive literal lines).
func (p *Preprocessor) execWrite(d *Directive) (string, bool, error) {
	body := strings.Join(d.Args, "\n") + "\n"
	return body, true, nil
}
