package txtpp

import "runtime"

// Line is a single logical line of a source file: its content with the
// terminator stripped, and the exact terminator bytes observed ("", "\n",
// or "\r\n"). An isolated "\r" is never treated as a terminator; it stays
// part of Content.
type Line struct {
	Content string
	Term    string
}

// HostLineEnding is the terminator used when a source has no terminator at
// all to detect a mode from.
var HostLineEnding = func() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}()

// SplitLines frames raw bytes into logical lines and reports the file's
// line-ending mode: the first non-empty terminator observed, or "" if the
// input is terminator-free (callers should fall back to HostLineEnding).
func SplitLines(data []byte) (lines []Line, mode string) {
	var buf []byte
	flush := func(term string) {
		lines = append(lines, Line{Content: string(buf), Term: term})
		buf = nil
	}
	for i := 0; i < len(data); i++ {
		b := data[i]
		if b != '\n' {
			buf = append(buf, b)
			continue
		}
		term := "\n"
		if n := len(buf); n > 0 && buf[n-1] == '\r' {
			buf = buf[:n-1]
			term = "\r\n"
		}
		flush(term)
		if mode == "" {
			mode = term
		}
	}
	if len(buf) > 0 {
		flush("")
	}
	return lines, mode
}
