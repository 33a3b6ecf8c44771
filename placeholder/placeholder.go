// Package placeholder finds documentation markers in source text and
// replaces them.
//
// A marker is a doc block comment whose body starts with one of three
// equivalent forms naming a method:
//
//	/** {documentary:split} */
//	/** {@documentary:split} */
//	/** @documentary split */
//
// The marker may span several lines; only whitespace and "*" may precede
// the form inside the comment, and the comment ends at the first "*/".
//
// A marker is ignored when the text before it on its line contains "#", or
// when the opener is directly preceded by "/". A marker whose line prefix
// contains "//" is consumed but left untouched. Anything that does not parse
// completely (a missing or malformed name, a missing closer, an unknown
// keyword) is left untouched.
package placeholder

import (
	"strings"
	"unicode/utf8"
)

const (
	opener = "/**"
	closer = "*/"

	keyword = "documentary"
)

// Placeholder is one marker found by [Scan].
type Placeholder struct {
	// Method is the method name referenced by the marker.
	Method string
	// Tag is the marker form as written, e.g. "{@documentary:split}".
	Tag string
	// Start and End are byte offsets of the replaced span: from the start
	// of the marker's line to just after the comment closer.
	Start int
	End   int
	// Indent is the length, in characters, of the text between the start of
	// the line and the comment opener.
	Indent int
	// CRLF reports whether the marker's line ends with "\r\n". On the last
	// line of content, the ending of the line before it is used.
	CRLF bool
}

// Replacer produces the replacement text for a placeholder. Returning false
// leaves the marker unchanged.
type Replacer func(p Placeholder) (string, bool, error)

// Scan returns the markers of content in order, in a single left-to-right
// sweep. Matches never overlap: scanning resumes on the line after the end
// of the previous match.
func Scan(content string) []Placeholder {
	var found []Placeholder

	for pos := 0; pos <= len(content); {
		lineEnd := strings.IndexByte(content[pos:], '\n')
		if lineEnd < 0 {
			lineEnd = len(content)
		} else {
			lineEnd += pos
		}

		p, commented, ok := scanLine(content, pos, lineEnd)
		if !ok {
			pos = lineEnd + 1

			continue
		}

		if !commented {
			found = append(found, p)
		}

		next := strings.IndexByte(content[p.End:], '\n')
		if next < 0 {
			break
		}

		pos = p.End + next + 1
	}

	return found
}

// Populate replaces every marker of content with the text returned by
// replace. An error aborts the whole buffer.
func Populate(content string, replace Replacer) (string, error) {
	placeholders := Scan(content)
	if len(placeholders) == 0 {
		return content, nil
	}

	var sb strings.Builder

	sb.Grow(len(content))

	last := 0

	for _, p := range placeholders {
		text, ok, err := replace(p)
		if err != nil {
			return "", err
		}

		if !ok {
			continue
		}

		sb.WriteString(content[last:p.Start])
		sb.WriteString(text)

		last = p.End
	}

	sb.WriteString(content[last:])

	return sb.String(), nil
}

// scanLine looks for the first marker opened on the line spanning
// [start, lineEnd). The marker itself may continue past lineEnd.
func scanLine(content string, start, lineEnd int) (Placeholder, bool, bool) {
	for i := start; i < lineEnd; i++ {
		if content[i] == '#' {
			return Placeholder{}, false, false
		}

		if !strings.HasPrefix(content[i:], opener) {
			continue
		}

		if i > start && content[i-1] == '/' {
			continue
		}

		method, tag, end, ok := matchComment(content, i+len(opener))
		if !ok {
			continue
		}

		prefix := content[start:i]

		return Placeholder{
			Method: method,
			Tag:    tag,
			Start:  start,
			End:    end,
			Indent: utf8.RuneCountInString(prefix),
			CRLF:   isCRLF(content, start, lineEnd),
		}, strings.Contains(prefix, "//"), true
	}

	return Placeholder{}, false, false
}

func isCRLF(content string, start, lineEnd int) bool {
	if lineEnd < len(content) {
		return lineEnd > start && content[lineEnd-1] == '\r'
	}

	return strings.HasSuffix(content[:start], "\r\n")
}

// matchComment parses the comment body starting at pos, just after the
// opener, and returns the method, the marker text and the offset after the
// closer.
func matchComment(content string, pos int) (string, string, int, bool) {
	for pos < len(content) && isFiller(content[pos]) {
		pos++
	}

	rest := content[pos:]

	var (
		method string
		n      int
	)

	switch {
	case strings.HasPrefix(rest, "{"+keyword+":"):
		method, n = matchBraced(rest, len("{"+keyword+":"))
	case strings.HasPrefix(rest, "{@"+keyword+":"):
		method, n = matchBraced(rest, len("{@"+keyword+":"))
	case strings.HasPrefix(rest, "@"+keyword):
		method, n = matchTag(rest, len("@"+keyword))
	}

	if n == 0 {
		return "", "", 0, false
	}

	end := strings.Index(rest[n:], closer)
	if end < 0 {
		return "", "", 0, false
	}

	return method, rest[:n], pos + n + end + len(closer), true
}

// matchBraced matches NAME "}" at offset i of s and returns the name and the
// length of the whole marker.
func matchBraced(s string, i int) (string, int) {
	j := i
	for j < len(s) && isWord(s[j]) {
		j++
	}

	if j == i || j >= len(s) || s[j] != '}' {
		return "", 0
	}

	return s[i:j], j + 1
}

// matchTag matches one or more blanks followed by NAME at offset i of s.
func matchTag(s string, i int) (string, int) {
	j := i
	for j < len(s) && (s[j] == ' ' || s[j] == '\t') {
		j++
	}

	if j == i {
		return "", 0
	}

	k := j
	for k < len(s) && isWord(s[k]) {
		k++
	}

	if k == j {
		return "", 0
	}

	return s[j:k], k
}

func isFiller(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v', '*':
		return true
	}

	return false
}

func isWord(c byte) bool {
	return c == '_' ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z') ||
		('0' <= c && c <= '9')
}
