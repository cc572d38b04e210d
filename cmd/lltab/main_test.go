package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/lltab/session"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultGrammarDisplay(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lltab.cli")
	defer teardown()
	//
	g, err := loadGrammar("", "", "")
	require.NoError(t, err)
	s, err := session.New(g)
	require.NoError(t, err)
	sets := setsTable(s)
	require.Len(t, sets, 6)
	assert.Equal(t, []string{"E", "{ i, ( }", "{ $, ) }"}, sets[1])
	table := parsingTable(s.Table())
	require.Len(t, table, 6)
	assert.Equal(t, []string{"", "i", "(", ")", "*", "+", "$"}, table[0])
	assert.Equal(t, []string{"X", "", "", "X ➞ ε", "", "X ➞ + T X", "X ➞ ε"}, table[2])
}

func TestTreeDisplay(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lltab.cli")
	defer teardown()
	//
	g, err := loadGrammar("", "", "")
	require.NoError(t, err)
	s, err := session.New(g, session.WithParseTree(true))
	require.NoError(t, err)
	result, err := s.ParseString("i")
	require.NoError(t, err)
	require.NotNil(t, result.Tree)
	var lines []string
	for _, item := range treeList(result.Tree) {
		lines = append(lines, fmt.Sprintf("%d %s", item.Level, item.Text))
	}
	assert.Equal(t, []string{
		"0 E ➞ T X",
		"1 T ➞ F Y",
		"2 F ➞ i",
		`3 i "i"`,
		"2 Y ➞ ε",
		"3 ε",
		"1 X ➞ ε",
		"2 ε",
	}, lines)
}

func TestTraceLevelForAllPackages(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lltab.cli")
	defer teardown()
	//
	setTraceLevel(tracing.LevelDebug)
	for _, key := range traceKeys {
		assert.Equal(t, tracing.LevelDebug, tracing.Select(key).GetTraceLevel(), key)
	}
	setTraceLevel(tracing.LevelError)
	assert.Equal(t, tracing.LevelError, tracing.Select("lltab.ll").GetTraceLevel())
}

func TestLoadGrammarFiles(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lltab.cli")
	defer teardown()
	//
	dir, err := ioutil.TempDir("", "lltab")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	bnfFile := filepath.Join(dir, "g.bnf")
	require.NoError(t, ioutil.WriteFile(bnfFile, []byte(`S -> a S | b ;`), 0644))
	ebnfFile := filepath.Join(dir, "g.ebnf")
	require.NoError(t, ioutil.WriteFile(ebnfFile, []byte(`S = { "a" } "b" .`), 0644))
	//
	g, err := loadGrammar(bnfFile, "", "")
	require.NoError(t, err)
	assert.Equal(t, 2, g.Size())
	g, err = loadGrammar("", ebnfFile, "S")
	require.NoError(t, err)
	assert.Equal(t, 3, g.Size())
	_, err = loadGrammar("", ebnfFile, "")
	assert.Error(t, err)
	_, err = loadGrammar(bnfFile, ebnfFile, "S")
	assert.Error(t, err)
	_, err = loadGrammar(filepath.Join(dir, "missing"), "", "")
	assert.Error(t, err)
	//
	htmlFile := filepath.Join(dir, "table.html")
	s, err := session.New(g)
	require.NoError(t, err)
	require.NoError(t, exportTable(s, htmlFile))
	html, err := ioutil.ReadFile(htmlFile)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(html), "<html>"))
}
