package output_test

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodMac/go-treesitter-name-extractor/model"
	"github.com/CodMac/go-treesitter-name-extractor/output"
)

func sampleFiles() []*model.FileData {
	foo := model.NewEntity(model.Class, "Foo")
	m := model.NewEntity(model.Method, "getBar")
	m.AddChild(model.NewTypedEntity(model.FormalArgument, "quux", "int"))
	foo.AddChild(m)

	first := model.NewFileData(model.FileDataParts{
		Identity:     model.RawFileIdentity{SourcePath: "src/a/Foo.java", PackageName: "a"},
		FileName:     "Foo.java",
		JavaFileName: "a.Foo.java",
		Strategy:     model.StrategyAggressive,
		Names:        []string{"Foo", "getBar", "quux"},
		Tokens:       []string{"foo", "get", "bar", "quux"},
		TokenisedNames: []model.TokenisedName{
			{Name: "Foo", Tokens: []model.Token{{Content: "foo", WordLists: []string{}}}},
			{Name: "getBar", Tokens: []model.Token{
				{Content: "get", WordLists: []string{"english"}},
				{Content: "bar", WordLists: []string{"english"}},
			}},
			{Name: "quux", Anomaly: true},
		},
		Entities: model.EntityForest{foo},
	})
	second := model.NewFileData(model.FileDataParts{
		Identity:     model.RawFileIdentity{SourcePath: "Bare.java"},
		FileName:     "Bare.java",
		JavaFileName: ".Bare.java",
		Entities:     model.EntityForest{model.NewEntity(model.Interface, "Bare")},
		Names:        []string{"Bare"},
	})
	return []*model.FileData{first, second}
}

func TestJSONLWriter_WriteAll(t *testing.T) {
	var buf bytes.Buffer
	n, err := output.NewJSONLWriter(&buf).WriteAll(sampleFiles())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "a.Foo.java", first["JavaFileName"])
	assert.Equal(t, []any{"Foo", "getBar", "quux"}, first["Names"])
	assert.Equal(t, "aggressive", first["Strategy"])
}

func TestJSONLWriter_WriteNames(t *testing.T) {
	var buf bytes.Buffer
	n, err := output.NewJSONLWriter(&buf).WriteNames(sampleFiles())
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	var recs []output.NameRecord
	scanner := bufio.NewScanner(&buf)
	for scanner.Scan() {
		var rec output.NameRecord
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &rec))
		recs = append(recs, rec)
	}
	require.Len(t, recs, 3)
	assert.Equal(t, "getBar", recs[1].Name)
	assert.Len(t, recs[1].Tokens, 2)
	assert.True(t, recs[2].Anomaly)
}

func TestExportFileData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")
	n, err := output.ExportFileData(path, sampleFiles())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "\n"))
}

func TestWriteMermaidHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, output.WriteMermaidHTML(&buf, sampleFiles()))
	html := buf.String()

	assert.Contains(t, html, "graph LR")
	assert.Contains(t, html, `subgraph "📦 a"`)
	assert.Contains(t, html, `subgraph "📄 Foo.java"`)
	assert.Contains(t, html, `subgraph "📄 Bare.java"`)
	assert.Contains(t, html, `n_f0_0["Foo <small>(CLASS)</small>"]`)
	assert.Contains(t, html, `n_f0_0_0_0["quux <small>(FORMAL_ARGUMENT)</small>"]`)
	assert.Contains(t, html, "n_f0_0 --> n_f0_0_0\n")
	assert.Contains(t, html, "n_f0_0_0 --> n_f0_0_0_0\n")
	assert.Contains(t, html, `n_f1_0["Bare <small>(INTERFACE)</small>"]`)
	assert.True(t, strings.HasSuffix(html, "</html>"))
}

func TestExportMermaidHTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.html")
	require.NoError(t, output.ExportMermaidHTML(path, sampleFiles()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "mermaid.initialize")
}

type failingCloser struct {
	bytes.Buffer
	closeErr error
	closed   bool
}

func (f *failingCloser) Close() error {
	f.closed = true
	return f.closeErr
}

func TestWriteAndClose_ReturnsCloseError(t *testing.T) {
	errFlush := errors.New("flush failed")
	wc := &failingCloser{closeErr: errFlush}

	err := output.WriteAndClose(wc, func(w io.Writer) error {
		_, werr := output.NewJSONLWriter(w).WriteAll(sampleFiles())
		return werr
	})
	assert.ErrorIs(t, err, errFlush)
	assert.True(t, wc.closed)
	assert.Equal(t, 2, strings.Count(wc.String(), "\n"))
}

func TestWriteAndClose_WriteErrorWins(t *testing.T) {
	errWrite := errors.New("write failed")
	wc := &failingCloser{closeErr: errors.New("close failed")}

	err := output.WriteAndClose(wc, func(io.Writer) error { return errWrite })
	assert.ErrorIs(t, err, errWrite)
	assert.True(t, wc.closed)
}

func TestWriteAndClose_Success(t *testing.T) {
	wc := &failingCloser{}
	require.NoError(t, output.WriteAndClose(wc, func(w io.Writer) error {
		_, err := io.WriteString(w, "ok")
		return err
	}))
	assert.Equal(t, "ok", wc.String())
}
