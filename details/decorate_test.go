package details_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/documentary/details"
)

func TestExpand(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		want  string
	}{
		"empty": {
			input: `{}`,
			want:  `{}`,
		},
		"global and see group": {
			input: `{
				"methods": {"foo": {}, "bar": {}, "lorem": {}},
				"groups": {"see": [["foo", "bar", "lorem"]]},
				"*": {"see": ["one"], "link": ["two"], "throws": ["three"]}
			}`,
			want: `{
				"foo": {"see": ["one", "bar", "lorem"], "link": ["two"], "throws": ["three"]},
				"bar": {"see": ["one", "foo", "lorem"], "link": ["two"], "throws": ["three"]},
				"lorem": {"see": ["one", "foo", "bar"], "link": ["two"], "throws": ["three"]}
			}`,
		},
		"global entries follow method entries": {
			input: `{
				"methods": {"match": {"see": ["test"], "throws": ["MalformedPatternException"]}},
				"*": {"throws": ["RuntimeException"]}
			}`,
			want: `{
				"match": {"see": ["test"], "throws": ["MalformedPatternException", "RuntimeException"]}
			}`,
		},
		"several see groups": {
			input: `{
				"methods": {"a": {}, "b": {}, "c": {}},
				"groups": {"see": [["a", "b"], ["c", "a"]]}
			}`,
			want: `{
				"a": {"see": ["b", "c"]},
				"b": {"see": ["a"]},
				"c": {"see": ["a"]}
			}`,
		},
		"throws group": {
			input: `{
				"methods": {"split": {"throws": ["A"]}, "match": {}, "quote": {}},
				"groups": {"throws": [{"methods": ["split", "match"], "exceptions": ["B", "C"]}]}
			}`,
			want: `{
				"split": {"throws": ["A", "B", "C"]},
				"match": {"throws": ["B", "C"]},
				"quote": {}
			}`,
		},
		"manual links": {
			input: `{
				"methods": {
					"match": {
						"link": ["https://example.com/first"],
						"manual": {"match": "https://php.net/preg_match", "empty": "", "none": null}
					}
				}
			}`,
			want: `{
				"match": {"link": ["https://example.com/first", "https://php.net/preg_match"]}
			}`,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			input := mustDecode(t, tc.input)
			before, err := input.MarshalJSON()
			require.NoError(t, err)

			got, err := details.Expand(input)
			require.NoError(t, err)

			b, err := got.MarshalJSON()
			require.NoError(t, err)
			assert.JSONEq(t, tc.want, string(b))

			after, err := input.MarshalJSON()
			require.NoError(t, err)
			assert.JSONEq(t, string(before), string(after), "input must not be modified")
		})
	}
}

func TestExpandSeeGroupOrder(t *testing.T) {
	t.Parallel()

	got, err := details.Expand(mustDecode(t, `{
		"methods": {"x": {}, "y": {}, "z": {}},
		"groups": {"see": [["x", "y", "z"]]}
	}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"y", "z"}, got.Map("x").Strings("see"))
	assert.Equal(t, []string{"x", "z"}, got.Map("y").Strings("see"))
	assert.Equal(t, []string{"x", "y"}, got.Map("z").Strings("see"))
}

func TestExpandUnknownGroupMember(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		msg   string
	}{
		"see group": {
			input: `{"methods": {"foo": {}}, "groups": {"see": [["foo", "bar", "baz"]]}}`,
			msg:   `method "bar" used in "groups.see" is not declared`,
		},
		"throws group": {
			input: `{"methods": {"foo": {}}, "groups": {"throws": [{"methods": ["nope"], "exceptions": ["E"]}]}}`,
			msg:   `method "nope" used in "groups.throws" is not declared`,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := details.Expand(mustDecode(t, tc.input))
			require.ErrorIs(t, err, details.ErrUnknownGroupMember)
			assert.ErrorContains(t, err, tc.msg)
		})
	}
}
