package unixargs

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	nameParam    = Parameter{Name: "name"}
	titleParam   = Parameter{Name: "title"}
	verboseParam = Parameter{Name: "verbose", Kind: KindBoolean, Optional: true}
)

func TestParse(t *testing.T) {
	for _, tt := range []struct {
		desc   string
		raw    string
		params []Parameter
		want   Bindings
	}{
		{
			desc:   "name and value",
			raw:    "--name value",
			params: []Parameter{nameParam},
			want:   Bindings{"name": "value"},
		},
		{
			desc:   "bare boolean flag",
			raw:    "--verbose",
			params: []Parameter{verboseParam},
			want:   Bindings{"verbose": true},
		},
		{
			desc:   "absent boolean is false",
			raw:    "",
			params: []Parameter{verboseParam},
			want:   Bindings{"verbose": false},
		},
		{
			desc:   "required boolean without default is false",
			raw:    "",
			params: []Parameter{{Name: "force", Kind: KindBoolean}},
			want:   Bindings{"force": false},
		},
		{
			desc:   "optional boolean keeps its default",
			raw:    "",
			params: []Parameter{{Name: "loop", Kind: KindBoolean, Optional: true, Default: true}},
			want:   Bindings{"loop": true},
		},
		{
			desc:   "quoted value after space",
			raw:    `--title "hello world"`,
			params: []Parameter{titleParam},
			want:   Bindings{"title": "hello world"},
		},
		{
			desc:   "quoted value after equals",
			raw:    `--name="a b c"`,
			params: []Parameter{nameParam},
			want:   Bindings{"name": "a b c"},
		},
		{
			desc:   "unquoted value after equals",
			raw:    "--name=value",
			params: []Parameter{nameParam},
			want:   Bindings{"name": "value"},
		},
		{
			desc:   "equals inside a value is literal",
			raw:    "--expr=a=b",
			params: []Parameter{{Name: "expr"}},
			want:   Bindings{"expr": "a=b"},
		},
		{
			desc:   "empty quoted value",
			raw:    `--title ""`,
			params: []Parameter{titleParam},
			want:   Bindings{"title": ""},
		},
		{
			desc:   "names are case-insensitive",
			raw:    "--NAME value",
			params: []Parameter{{Name: "Name"}},
			want:   Bindings{"name": "value"},
		},
		{
			desc:   "first binding wins",
			raw:    "--name first --name second",
			params: []Parameter{nameParam},
			want:   Bindings{"name": "first"},
		},
		{
			desc:   "value then flag",
			raw:    "--title hello --verbose",
			params: []Parameter{titleParam, verboseParam},
			want:   Bindings{"title": "hello", "verbose": true},
		},
		{
			desc:   "flag then value",
			raw:    "--verbose --title hello",
			params: []Parameter{titleParam, verboseParam},
			want:   Bindings{"title": "hello", "verbose": true},
		},
		{
			desc:   "quoted value then flag",
			raw:    `--title "a b" --verbose`,
			params: []Parameter{titleParam, verboseParam},
			want:   Bindings{"title": "a b", "verbose": true},
		},
		{
			desc:   "stray text before a name is dropped",
			raw:    "abc --name v",
			params: []Parameter{nameParam},
			want:   Bindings{"name": "v"},
		},
		{
			desc:   "optional parameter takes its default",
			raw:    "",
			params: []Parameter{{Name: "limit", Optional: true, Default: "10"}},
			want:   Bindings{"limit": "10"},
		},
		{
			desc:   "optional parameter without default binds nil",
			raw:    "",
			params: []Parameter{{Name: "query", Optional: true}},
			want:   Bindings{"query": nil},
		},
		{
			desc:   "multibyte runes survive",
			raw:    `--title "héllo wörld"`,
			params: []Parameter{titleParam},
			want:   Bindings{"title": "héllo wörld"},
		},
		{
			desc:   "no parameters and no input",
			raw:    "",
			params: nil,
			want:   Bindings{},
		},
	} {
		t.Run(tt.desc, func(t *testing.T) {
			got, err := Parse(tt.raw, tt.params)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.raw, diff)
			}
		})
	}
}

func TestParseUnknownParameter(t *testing.T) {
	raw := "--unknown value"
	_, err := Parse(raw, []Parameter{titleParam})

	var unknown *UnknownParameterError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "unknown", unknown.Name)
	assert.Equal(t, len(raw), unknown.Offset())
	assert.Empty(t, unknown.Partial())
}

func TestParseUnknownParameterKeepsPartial(t *testing.T) {
	_, err := Parse("--name a --bogus b", []Parameter{nameParam})

	var unknown *UnknownParameterError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "bogus", unknown.Name)
	if diff := cmp.Diff(Bindings{"name": "a"}, unknown.Partial()); diff != "" {
		t.Errorf("partial mismatch (-want +got):\n%s", diff)
	}
}

func TestParseUnknownParameterInQuotes(t *testing.T) {
	raw := `--bogus "x y"`
	_, err := Parse(raw, []Parameter{nameParam})

	var unknown *UnknownParameterError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "bogus", unknown.Name)
	assert.Equal(t, len(raw)-1, unknown.Offset())
}

func TestParseUnexpectedQuote(t *testing.T) {
	for _, tt := range []struct {
		desc   string
		raw    string
		offset int
	}{
		{desc: "leading quote", raw: `"x"`, offset: 0},
		{desc: "quote inside name", raw: `--a"b`, offset: 3},
		{desc: "quote after dash", raw: `-"`, offset: 1},
		{desc: "counts characters not bytes", raw: `--a "ïé" "`, offset: 9},
		{desc: "accented name", raw: `--tïtlé "x" "`, offset: 12},
	} {
		t.Run(tt.desc, func(t *testing.T) {
			_, err := Parse(tt.raw, []Parameter{{Name: "a", Optional: true}, {Name: "tïtlé", Optional: true}})

			var quote *UnexpectedQuoteError
			require.ErrorAs(t, err, &quote)
			assert.Equal(t, tt.offset, quote.Offset())
		})
	}
}

func TestParseUnclosedQuote(t *testing.T) {
	for _, tt := range []struct {
		desc   string
		raw    string
		params []Parameter
		offset int
	}{
		{desc: "ascii", raw: `--title "unterminated`, params: []Parameter{titleParam}, offset: 22},
		{desc: "accented name", raw: `--tïtlé "ab`, params: []Parameter{{Name: "tïtlé"}}, offset: 12},
		{desc: "multibyte value", raw: `--title "日本`, params: []Parameter{titleParam}, offset: 12},
	} {
		t.Run(tt.desc, func(t *testing.T) {
			_, err := Parse(tt.raw, tt.params)

			var unclosed *UnclosedQuoteError
			require.ErrorAs(t, err, &unclosed)
			assert.Equal(t, tt.offset, unclosed.Offset())
		})
	}
}

func TestParseKeepsInvalidUTF8(t *testing.T) {
	for _, tt := range []struct {
		desc string
		raw  string
		want string
	}{
		{desc: "bare byte", raw: "--title \xff", want: "\xff"},
		{desc: "quoted bytes", raw: "--title \"a\xfe\xff b\"", want: "a\xfe\xff b"},
		{desc: "truncated sequence", raw: "--title \xe6\x97", want: "\xe6\x97"},
	} {
		t.Run(tt.desc, func(t *testing.T) {
			got, err := Parse(tt.raw, []Parameter{titleParam})
			require.NoError(t, err)

			title, _ := got.String("title")
			assert.Equal(t, []byte(tt.want), []byte(title))
		})
	}
}

func TestParseInvalidUTF8CountsOneCharacterPerByte(t *testing.T) {
	_, err := Parse("--title \xff\xff \"", []Parameter{titleParam})

	var quote *UnexpectedQuoteError
	require.ErrorAs(t, err, &quote)
	assert.Equal(t, 11, quote.Offset())
}

func TestParseTooFewArguments(t *testing.T) {
	_, err := Parse("", []Parameter{titleParam})

	var tooFew *TooFewArgumentsError
	require.ErrorAs(t, err, &tooFew)
	assert.Equal(t, titleParam, tooFew.Parameter)
}

func TestParseTooFewArgumentsReportsFirstUnmet(t *testing.T) {
	params := []Parameter{verboseParam, {Name: "artist"}, {Name: "album"}}
	_, err := Parse("--verbose", params)

	var tooFew *TooFewArgumentsError
	require.ErrorAs(t, err, &tooFew)
	assert.Equal(t, "artist", tooFew.Parameter.Name)
	if diff := cmp.Diff(Bindings{"verbose": true}, tooFew.Partial()); diff != "" {
		t.Errorf("partial mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDashInsideValueStartsNewSequence(t *testing.T) {
	_, err := Parse("--title a-b", []Parameter{titleParam})

	var tooFew *TooFewArgumentsError
	require.ErrorAs(t, err, &tooFew)
	assert.Equal(t, "title", tooFew.Parameter.Name)
}

func TestParseDuplicateParameters(t *testing.T) {
	_, err := Parse("--name x", []Parameter{{Name: "name"}, {Name: "NAME"}})

	require.ErrorIs(t, err, ErrDuplicateParameter)
	var perr ParseError
	assert.False(t, errors.As(err, &perr))
}

func TestParseIsDeterministic(t *testing.T) {
	params := []Parameter{titleParam, verboseParam, {Name: "limit", Optional: true, Default: "5"}}
	raw := `--title "a b" --verbose`

	first, err := Parse(raw, params)
	require.NoError(t, err)
	second, err := Parse(raw, params)
	require.NoError(t, err)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated Parse differs (-first +second):\n%s", diff)
	}
}

func TestParseSuccessBindsExactlyDeclared(t *testing.T) {
	params := []Parameter{
		titleParam,
		verboseParam,
		{Name: "limit", Optional: true, Default: "5"},
		{Name: "Query", Optional: true},
	}
	got, err := Parse("--title x", params)
	require.NoError(t, err)

	require.Len(t, got, len(params))
	for _, p := range params {
		_, ok := got.Lookup(p.Name)
		assert.True(t, ok, "missing %s", p.Name)
	}
}

func TestParseConcurrent(t *testing.T) {
	params := []Parameter{titleParam, verboseParam}
	inputs := map[string]Bindings{
		`--title "a b"`:           {"title": "a b", "verbose": false},
		"--verbose --title c":     {"title": "c", "verbose": true},
		`--title="d e" --verbose`: {"title": "d e", "verbose": true},
	}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		for raw, want := range inputs {
			wg.Add(1)
			go func() {
				defer wg.Done()
				got, err := Parse(raw, params)
				if err != nil {
					t.Errorf("Parse(%q): %v", raw, err)
					return
				}
				if diff := cmp.Diff(want, got); diff != "" {
					t.Errorf("Parse(%q) mismatch (-want +got):\n%s", raw, diff)
				}
			}()
		}
	}
	wg.Wait()
}

func TestFill(t *testing.T) {
	params := []Parameter{titleParam, verboseParam, {Name: "limit", Optional: true, Default: "5"}}

	got, err := Fill(map[string]any{"Title": "x", "extra": "dropped"}, params)
	require.NoError(t, err)
	if diff := cmp.Diff(Bindings{"title": "x", "verbose": false, "limit": "5"}, got); diff != "" {
		t.Errorf("Fill mismatch (-want +got):\n%s", diff)
	}

	_, err = Fill(nil, params)
	var tooFew *TooFewArgumentsError
	require.ErrorAs(t, err, &tooFew)
	assert.Equal(t, "title", tooFew.Parameter.Name)
}

func TestFillCaseVariantsAreDeterministic(t *testing.T) {
	given := map[string]any{"title": "lower", "TITLE": "upper", "Title": "mixed"}

	for range 50 {
		got, err := Fill(given, []Parameter{titleParam})
		require.NoError(t, err)
		title, _ := got.String("title")
		require.Equal(t, "upper", title)
	}
}

func TestBindingsAccessors(t *testing.T) {
	b := Bindings{"title": "x", "verbose": true}

	s, ok := b.String("TITLE")
	assert.True(t, ok)
	assert.Equal(t, "x", s)

	_, ok = b.String("verbose")
	assert.False(t, ok)

	f, ok := b.Bool("Verbose")
	assert.True(t, ok)
	assert.True(t, f)

	_, ok = b.Bool("missing")
	assert.False(t, ok)
}
