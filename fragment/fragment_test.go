package fragment_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/documentary/comment"
	"go.jacobcolvin.com/documentary/fragment"
)

var (
	_ comment.ParamFallback      = (*fragment.Store)(nil)
	_ comment.DefinitionFallback = (*fragment.Store)(nil)
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"src/preg/fragments/match.param.pattern.html": {Data: []byte("the pattern to match\n")},
		"src/preg/fragments/param.pattern.html":       {Data: []byte("any pattern")},
		"src/preg/fragments/param.subject.html":       {Data: []byte("the input string")},
		"src/preg/fragments/method.split.html":        {Data: []byte("Splits a string.\nIn two lines.")},
		"project/fragment/param.flags.html":           {Data: []byte("project flags")},
		"project/fragment/method.quote.html":          {Data: []byte("Quotes, project wide.")},
	}
}

func TestParamFallback(t *testing.T) {
	t.Parallel()

	s := fragment.NewStore(testFS(), "src/preg/fragments")

	tcs := map[string]struct {
		method string
		param  string
		want   string
	}{
		"method specific":   {method: "match", param: "pattern", want: "the pattern to match\n"},
		"parameter generic": {method: "split", param: "pattern", want: "any pattern"},
		"local generic":     {method: "match", param: "subject", want: "the input string"},
		"project generic":   {method: "match", param: "flags", want: "project flags"},
		"missing":           {method: "match", param: "offset", want: ""},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := s.ParamFallback(tc.method, tc.param)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDefinitionFallback(t *testing.T) {
	t.Parallel()

	strict := fragment.NewStore(testFS(), "src/preg/fragments")

	got, err := strict.DefinitionFallback("split")
	require.NoError(t, err)
	assert.Equal(t, "Splits a string.\nIn two lines.", got)

	got, err = strict.DefinitionFallback("quote")
	require.NoError(t, err)
	assert.Equal(t, "Quotes, project wide.", got)

	_, err = strict.DefinitionFallback("match")
	require.ErrorIs(t, err, fragment.ErrMissingFragment)
	assert.ErrorContains(t, err, "src/preg/fragments/method.match.html")

	lenient := fragment.NewStore(testFS(), "src/preg/fragments", fragment.WithStrictDefinitions(false))

	got, err = lenient.DefinitionFallback("match")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStoreOptions(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"local/param.a.md":              {Data: []byte("local")},
		"shared/param.b.md":             {Data: []byte("shared")},
		"project/fragment/param.b.html": {Data: []byte("default project")},
	}

	s := fragment.NewStore(fsys, "local",
		fragment.WithExtension(".md"),
		fragment.WithProjectDir("shared"),
	)

	got, err := s.Fallback("param.a")
	require.NoError(t, err)
	assert.Equal(t, "local", got)

	got, err = s.Fallback("param.b")
	require.NoError(t, err)
	assert.Equal(t, "shared", got)

	noProject := fragment.NewStore(fsys, "local", fragment.WithProjectDir(""), fragment.WithExtension(".md"))

	_, err = noProject.Fragment("param.b")
	require.ErrorIs(t, err, fragment.ErrMissingFragment)
}

func TestFallbackOrder(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"local/param.p.html":              {Data: []byte("local generic")},
		"project/fragment/m.param.p.html": {Data: []byte("project specific")},
	}

	s := fragment.NewStore(fsys, "local")

	// Every local name is tried before the project directory.
	got, err := s.ParamFallback("m", "p")
	require.NoError(t, err)
	assert.Equal(t, "local generic", got)
}
