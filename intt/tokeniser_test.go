package intt_test

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodMac/go-treesitter-name-extractor/intt"
	"github.com/CodMac/go-treesitter-name-extractor/model"
)

func newTokeniser(t *testing.T) *intt.Tokeniser {
	t.Helper()
	dict, err := intt.DefaultDictionary()
	require.NoError(t, err)
	tok, err := intt.NewTokeniser(dict, intt.DefaultCacheSize)
	require.NoError(t, err)
	return tok
}

func contents(tokens []model.TaggedToken) []string {
	out := make([]string, len(tokens))
	for i, tt := range tokens {
		out[i] = tt.Content
	}
	return out
}

func TestTokenise_Conservative(t *testing.T) {
	tok := newTokeniser(t)

	cases := map[string][]string{
		"HTMLParser":             {"HTML", "Parser"},
		"parseHTTPResponse2Json": {"parse", "HTTP", "Response", "2", "Json"},
		"MAX_VALUE":              {"MAX", "VALUE"},
		"utf8String":             {"utf", "8", "String"},
		"forLoopCounter":         {"for", "Loop", "Counter"},
		"getfilename":            {"getfilename"},
		"_":                      {"_"},
		"$":                      {"$"},
		model.AnonymousName:      {"anonymous"},
		"x":                      {"x"},
	}
	for name, want := range cases {
		assert.Equal(t, want, contents(tok.Tokenise(name, model.StrategyConservative)), name)
	}
}

func TestTokenise_Aggressive(t *testing.T) {
	tok := newTokeniser(t)

	cases := map[string][]string{
		"getfilename":          {"get", "file", "name"},
		"maxvalue":             {"max", "value"},
		"SimpleTestEmptyClass": {"Simple", "Test", "Empty", "Class"},
		"userNAMEfilter":       {"user", "NAM", "Efilter"},
		"qwrtzp":               {"qwrtzp"},
		"MAX_VALUE":            {"MAX", "VALUE"},
	}
	for name, want := range cases {
		assert.Equal(t, want, contents(tok.Tokenise(name, model.StrategyAggressive)), name)
	}
}

func TestTokenise_AtLeastOneToken(t *testing.T) {
	tok := newTokeniser(t)
	for _, name := range []string{"a", "_", "__", "$1", "Ünïcödé", "x9"} {
		for _, s := range []model.Strategy{model.StrategyAggressive, model.StrategyConservative} {
			assert.NotEmpty(t, tok.Tokenise(name, s), "%s/%s", name, s)
		}
	}
	assert.Empty(t, tok.Tokenise("", model.StrategyAggressive))
}

func TestTokenise_WordListTags(t *testing.T) {
	tok := newTokeniser(t)

	tokens := tok.Tokenise("htmlClassIdx", model.StrategyConservative)
	require.Len(t, tokens, 3)
	assert.Equal(t, []string{"acronyms"}, tokens[0].WordLists)
	assert.Equal(t, []string{"english", "technical"}, tokens[1].WordLists)
	assert.Equal(t, []string{"abbreviations"}, tokens[2].WordLists)

	unknown := tok.Tokenise("qwrtzp", model.StrategyAggressive)
	require.Len(t, unknown, 1)
	assert.Empty(t, unknown[0].WordLists)
}

func TestTokenise_CachedResultsAreIsolated(t *testing.T) {
	tok := newTokeniser(t)

	first := tok.Tokenise("getValue", model.StrategyAggressive)
	first[0].Content = "mutated"
	first[0].WordLists[0] = "mutated"

	second := tok.Tokenise("getValue", model.StrategyAggressive)
	assert.Equal(t, []string{"get", "Value"}, contents(second))
	assert.Equal(t, []string{"english"}, second[0].WordLists)
}

func TestTokenise_Deterministic(t *testing.T) {
	dict, err := intt.DefaultDictionary()
	require.NoError(t, err)
	uncached, err := intt.NewTokeniser(dict, 0)
	require.NoError(t, err)

	for _, s := range []model.Strategy{model.StrategyAggressive, model.StrategyConservative} {
		assert.Equal(t,
			uncached.Tokenise("parseXMLDocumentfile", s),
			uncached.Tokenise("parseXMLDocumentfile", s))
	}
}

func TestTokenise_ConcurrentUse(t *testing.T) {
	tok := newTokeniser(t)
	names := []string{"getFileName", "HTMLParser", "maxvalue", "localString", "forLoopVariable"}

	want := make(map[string][]string, len(names))
	for _, n := range names {
		want[n] = contents(tok.Tokenise(n, model.StrategyAggressive))
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, n := range names {
				assert.Equal(t, want[n], contents(tok.Tokenise(n, model.StrategyAggressive)))
			}
		}()
	}
	wg.Wait()
}

func TestDictionary_LoadManifest(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "domain.txt"),
		[]byte("# project words\nFrobnicate\n\nwidget # trailing comment\n"), 0o644))
	manifest := filepath.Join(dir, "lists.yaml")
	require.NoError(t, os.WriteFile(manifest,
		[]byte("word_lists:\n  - name: domain\n    path: domain.txt\n"), 0o644))

	dict, err := intt.DefaultDictionary()
	require.NoError(t, err)
	require.NoError(t, dict.LoadManifest(manifest))

	assert.Equal(t, []string{"english", "abbreviations", "acronyms", "technical", "domain"}, dict.ListNames())
	assert.Equal(t, []string{"domain"}, dict.Lookup("frobnicate"))
	assert.Equal(t, []string{"domain"}, dict.Lookup("WIDGET"))

	tok, err := intt.NewTokeniser(dict, 16)
	require.NoError(t, err)
	assert.Equal(t, []string{"frobnicate", "value"}, contents(tok.Tokenise("frobnicatevalue", model.StrategyAggressive)))
}

func TestDictionary_LoadManifestErrors(t *testing.T) {
	dir := t.TempDir()
	dict := intt.NewDictionary()

	assert.Error(t, dict.LoadManifest(filepath.Join(dir, "missing.yaml")))

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("word_lists:\n  - name: nopath\n"), 0o644))
	assert.Error(t, dict.LoadManifest(bad))

	dangling := filepath.Join(dir, "dangling.yaml")
	require.NoError(t, os.WriteFile(dangling, []byte("word_lists:\n  - name: x\n    path: nowhere.txt\n"), 0o644))
	assert.Error(t, dict.LoadManifest(dangling))
}

func TestDictionary_AddListMergesSameName(t *testing.T) {
	dict := intt.NewDictionary()
	require.NoError(t, dict.AddList("custom", strings.NewReader("alpha\n")))
	require.NoError(t, dict.AddList("custom", strings.NewReader("beta\n")))

	assert.Equal(t, []string{"custom"}, dict.ListNames())
	assert.True(t, dict.Known("Alpha"))
	assert.True(t, dict.Known("beta"))
	assert.False(t, dict.Known("gamma"))
}

func TestNewTokeniser_NilDictionary(t *testing.T) {
	_, err := intt.NewTokeniser(nil, 10)
	assert.Error(t, err)
}
