package document

import (
	"fmt"
	"strings"
)

// diffLookahead bounds how far [Diff] searches for a resynchronizing line.
const diffLookahead = 5

// Diff returns a line diff turning before into after, headed with name. It
// returns an empty string when both are equal.
//
// Lines are compared in order; on a mismatch the next few lines of each side
// are searched for the other side's line so short insertions and deletions
// stay aligned. Anything else is reported as a removal followed by an
// addition.
func Diff(name, before, after string) string {
	if before == after {
		return ""
	}

	var out strings.Builder

	fmt.Fprintf(&out, "--- %s\n+++ %s\n", name, name)

	a := strings.Split(before, "\n")
	b := strings.Split(after, "\n")

	emit := func(prefix string, lines ...string) {
		for _, line := range lines {
			out.WriteString(prefix)
			out.WriteString(line)
			out.WriteByte('\n')
		}
	}

	ai, bi := 0, 0
	for ai < len(a) || bi < len(b) {
		switch {
		case ai >= len(a):
			emit("+", b[bi])

			bi++

		case bi >= len(b):
			emit("-", a[ai])

			ai++

		case a[ai] == b[bi]:
			emit(" ", a[ai])

			ai++
			bi++

		default:
			if n := resync(a[ai:], b[bi]); n > 0 {
				emit("-", a[ai:ai+n]...)

				ai += n

				continue
			}

			if n := resync(b[bi:], a[ai]); n > 0 {
				emit("+", b[bi:bi+n]...)

				bi += n

				continue
			}

			emit("-", a[ai])
			emit("+", b[bi])

			ai++
			bi++
		}
	}

	return out.String()
}

// resync returns the offset within lines of the first later line equal to
// want, or zero when there is none within [diffLookahead].
func resync(lines []string, want string) int {
	for n := 1; n < diffLookahead && n < len(lines); n++ {
		if lines[n] == want {
			return n
		}
	}

	return 0
}
