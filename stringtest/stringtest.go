// Package stringtest builds multi-line strings for test expectations.
package stringtest

import "strings"

// Input dedents a raw string literal so test inputs can be indented along
// with the surrounding code.
//
// One leading and one trailing newline are removed, whitespace-only lines
// become empty, and the indentation common to all other lines is stripped.
//
// Example:
//
//	src := stringtest.Input(`
//		<?php
//		/** {@documentary:quote} */
//	`) // -> "<?php\n/** {@documentary:quote} */"
func Input(s string) string {
	s = strings.TrimPrefix(s, "\n")
	s = strings.TrimSuffix(s, "\n")

	lines := strings.Split(s, "\n")

	indent := -1

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""

			continue
		}

		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}

	for i, line := range lines {
		if len(line) >= indent && indent > 0 {
			lines[i] = line[indent:]
		}
	}

	return strings.Join(lines, "\n")
}

// JoinLF joins multiple strings with LF line endings.
// Use this to construct expected test output with explicit line endings.
//
// Example:
//
//	want := stringtest.JoinLF(
//		"line1",
//		"line2",
//		"line3",
//	) // -> "line1\nline2\nline3"
func JoinLF(ss ...string) string {
	var sb strings.Builder
	for i, s := range ss {
		if i > 0 {
			sb.WriteByte('\n')
		}

		sb.WriteString(s)
	}

	return sb.String()
}

// JoinCRLF joins multiple strings with CRLF line endings.
// Use this to construct expected test output with explicit line endings on
// Windows.
//
// Example:
//
//	want := stringtest.JoinCRLF(
//		"line1",
//		"line2",
//		"line3",
//	) // -> "line1\r\nline2\r\nline3"
func JoinCRLF(ss ...string) string {
	var sb strings.Builder
	for i, s := range ss {
		if i > 0 {
			sb.WriteByte('\r')
			sb.WriteByte('\n')
		}

		sb.WriteString(s)
	}

	return sb.String()
}

// Comment builds a doc block comment indented by indent spaces, one interior
// line per element of lines. Empty lines render as a bare " *".
//
// Example:
//
//	want := stringtest.Comment(4,
//		"Quotes a string.",
//		"",
//		"@return string",
//	) // -> "    /**\n     * Quotes a string.\n     *\n     * @return string\n     */"
func Comment(indent int, lines ...string) string {
	pad := strings.Repeat(" ", indent)

	out := make([]string, 0, len(lines)+2)
	out = append(out, pad+"/**")

	for _, line := range lines {
		out = append(out, strings.TrimRight(pad+" * "+line, " "))
	}

	out = append(out, pad+" */")

	return JoinLF(out...)
}
