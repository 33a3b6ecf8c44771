package stringtest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.jacobcolvin.com/documentary/stringtest"
)

func TestInput(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		want  string
	}{
		"empty": {
			input: "",
			want:  "",
		},
		"single line": {
			input: "\n<?php\n",
			want:  "<?php",
		},
		"common tab indent": {
			input: "\n\t\t<?php\n\t\t/** {@documentary:quote} */\n",
			want:  "<?php\n/** {@documentary:quote} */",
		},
		"relative indent kept": {
			input: `
				class preg
				{
				    /** {@documentary:quote} */
				}`,
			want: "class preg\n{\n    /** {@documentary:quote} */\n}",
		},
		"whitespace-only lines emptied": {
			input: "\n    quote:\n      \n      definition: Quotes\n",
			want:  "quote:\n\n  definition: Quotes",
		},
		"one outer newline removed": {
			input: "\n\n<?php\n\n",
			want:  "\n<?php\n",
		},
		"already dedented": {
			input: "quote:\n  return: the quoted string",
			want:  "quote:\n  return: the quoted string",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, stringtest.Input(tc.input))
		})
	}
}

func TestJoin(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input []string
		lf    string
		crlf  string
	}{
		"none": {
			lf:   "",
			crlf: "",
		},
		"single": {
			input: []string{"<?php"},
			lf:    "<?php",
			crlf:  "<?php",
		},
		"comment": {
			input: []string{"/**", " * @return int", " */"},
			lf:    "/**\n * @return int\n */",
			crlf:  "/**\r\n * @return int\r\n */",
		},
		"trailing newline": {
			input: []string{"<?php", ""},
			lf:    "<?php\n",
			crlf:  "<?php\r\n",
		},
		"blank lines": {
			input: []string{"", "", ""},
			lf:    "\n\n",
			crlf:  "\r\n\r\n",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.lf, stringtest.JoinLF(tc.input...))
			assert.Equal(t, tc.crlf, stringtest.JoinCRLF(tc.input...))
		})
	}
}

func TestComment(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		want   string
		lines  []string
		indent int
	}{
		"no lines": {
			indent: 0,
			want:   "/**\n */",
		},
		"unindented": {
			indent: 0,
			lines:  []string{"Summary.", "", "@return int"},
			want:   "/**\n * Summary.\n *\n * @return int\n */",
		},
		"indented": {
			indent: 2,
			lines:  []string{"Summary."},
			want:   "  /**\n   * Summary.\n   */",
		},
		"trailing spaces trimmed": {
			indent: 0,
			lines:  []string{"text   "},
			want:   "/**\n * text\n */",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := stringtest.Comment(tc.indent, tc.lines...)
			assert.Equal(t, tc.want, got)
		})
	}
}
