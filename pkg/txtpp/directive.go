package txtpp

import "strings"

// Marker is the literal token that introduces a directive.
const Marker = "TXTPP#"

// Kind identifies a directive's behavior. KindEmpty is the directive whose
// name is the empty string.
type Kind string

const (
	KindInclude Kind = "include"
	KindRun     Kind = "run"
	KindTemp    Kind = "temp"
	KindTag     Kind = "tag"
	KindWrite   Kind = "write"
	KindEmpty   Kind = ""
)

// singleLineKinds may never accumulate continuations.
var singleLineKinds = map[Kind]bool{
	KindInclude: true,
	KindTag:     true,
}

var knownKinds = []Kind{KindInclude, KindRun, KindTemp, KindTag, KindWrite}

// Head is a recognized directive head: the first line of a directive.
type Head struct {
	Whitespace string // W: leading whitespace
	Prefix     string // P: token between the whitespace and the marker
	Kind       Kind
	Arg        string // trimmed argument fragment, "" for KindEmpty with no payload
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\v' || b == '\f'
}

func leadingWhitespace(s string) string {
	i := 0
	for i < len(s) && isSpaceByte(s[i]) {
		i++
	}
	return s[:i]
}

// Recognize classifies a single line's content (terminator already
// stripped) as a directive head, or reports that it is ordinary text.
func Recognize(content string) (Head, bool) {
	w := leadingWhitespace(content)
	rest := content[len(w):]

	idx := strings.Index(rest, Marker)
	if idx < 0 {
		return Head{}, false
	}
	prefix := rest[:idx]
	if strings.Contains(prefix, Marker) {
		return Head{}, false
	}
	after := rest[idx+len(Marker):]

	for _, k := range knownKinds {
		name := string(k)
		if strings.HasPrefix(after, name) {
			tail := after[len(name):]
			if tail == "" {
				return Head{Whitespace: w, Prefix: prefix, Kind: k, Arg: ""}, true
			}
			if tail[0] == ' ' {
				return Head{Whitespace: w, Prefix: prefix, Kind: k, Arg: strings.TrimSpace(tail)}, true
			}
		}
	}

	if after == "" || isSpaceByte(after[0]) {
		return Head{Whitespace: w, Prefix: prefix, Kind: KindEmpty, Arg: strings.TrimSpace(after)}, true
	}

	return Head{}, false
}

// MatchContinuation checks whether content is a continuation of a directive
// whose head carried whitespace w and prefix p. It returns the continuation
// argument (trailing whitespace trimmed, leading whitespace preserved) and
// true, or false if content does not continue the directive.
func MatchContinuation(w, p, content string) (string, bool) {
	if p == "" {
		// An empty prefix has nothing a continuation line could repeat to
		// distinguish itself from ordinary text; only the legacy backslash
		// form can continue a directive whose head carried no prefix.
		return "", false
	}
	if !strings.HasPrefix(content, w) {
		return "", false
	}
	rest := content[len(w):]

	if strings.HasPrefix(rest, p) {
		return strings.TrimRight(rest[len(p):], " \t\v\f"), true
	}

	spaces := strings.Repeat(" ", len(p))
	if strings.HasPrefix(rest, spaces) {
		return strings.TrimRight(rest[len(spaces):], " \t\v\f"), true
	}

	trimmedPrefix := strings.TrimRight(p, " \t\v\f")
	if rest == trimmedPrefix {
		return "", true
	}

	return "", false
}

// HasLegacyContinuation reports whether a line's raw content ends with an
// explicit backslash continuation marker, and returns the content with the
// marker stripped.
func HasLegacyContinuation(content string) (string, bool) {
	if strings.HasSuffix(content, "\\") {
		return content[:len(content)-1], true
	}
	return content, false
}

// Directive is a fully accumulated directive: a head plus zero or more
// continuation arguments, tagged with its ordinal index within the file.
type Directive struct {
	Kind  Kind
	Head  Head
	Args  []string // element 0 is the head argument
	Index int
	Line  int // 1-based source line of the head
}

// Command joins Args with a single space, as required for run and the
// empty directive's payload.
func (d *Directive) Command() string {
	return strings.Join(d.Args, " ")
}
