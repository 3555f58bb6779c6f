package main

import (
	"path/filepath"
	"testing"

	"github.com/praetorian-inc/pwmeter/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func importWords(t *testing.T, db, name string, words ...string) {
	t.Helper()
	setVar(t, &importSourceName, name)
	cmd, _ := newTestCmd("")
	require.NoError(t, runDictImport(cmd, []string{db, writeLines(t, name+".txt", words...)}))
}

func TestRunDictImportAndStats(t *testing.T) {
	useWords(t)
	db := filepath.Join(t.TempDir(), "words.db")

	setVar(t, &importSourceName, "rockyou")
	cmd, out := newTestCmd("")
	path := writeLines(t, "rockyou.txt", "Password", "123456", "password", "")
	require.NoError(t, runDictImport(cmd, []string{db, path}))
	assert.Contains(t, out.String(), "rockyou: 2 new words")
	assert.Contains(t, out.String(), "Import complete: 2 new, 2 total")

	importWords(t, db, "leaks", "123456", "dragon")

	cmd, out = newTestCmd("")
	require.NoError(t, runDictStats(cmd, []string{db}))
	assert.Contains(t, out.String(), "3 words")
	assert.Regexp(t, `leaks\s+1`, out.String())
	assert.Regexp(t, `rockyou\s+2`, out.String())
}

func TestRunDictExport(t *testing.T) {
	useWords(t)
	db := filepath.Join(t.TempDir(), "words.db")
	importWords(t, db, "x", "zeta", "Alpha")

	setVar(t, &exportOutput, "")
	cmd, out := newTestCmd("")
	require.NoError(t, runDictExport(cmd, []string{db}))
	assert.Equal(t, "alpha\nzeta\n", out.String())
}

func TestRunDictStats_Missing(t *testing.T) {
	cmd, _ := newTestCmd("")
	assert.Error(t, runDictStats(cmd, []string{filepath.Join(t.TempDir(), "nope.db")}))
}

func TestRunDictMerge(t *testing.T) {
	useWords(t)
	dir := t.TempDir()
	first := filepath.Join(dir, "first.db")
	second := filepath.Join(dir, "second.db")
	importWords(t, first, "a", "one", "two")
	importWords(t, second, "b", "two", "three")

	setVar(t, &mergeOutput, filepath.Join(dir, "merged.db"))
	cmd, out := newTestCmd("")
	require.NoError(t, runDictMerge(cmd, []string{first, second}))
	assert.Contains(t, out.String(), "Sources processed: 2")
	assert.Contains(t, out.String(), "Words merged: 3")
}

func TestRunDictLookup_SQLiteDictionary(t *testing.T) {
	useWords(t)
	db := filepath.Join(t.TempDir(), "words.db")
	importWords(t, db, "x", "correcthorse")

	c := config.Default()
	c.NoBuiltin = true
	c.Dictionaries = []string{"sqlite://" + db}
	setVar(t, &cfg, c)

	cmd, out := newTestCmd("")
	require.NoError(t, runDictLookup(cmd, []string{"CorrectHorse"}))
	assert.Contains(t, out.String(), "found in dictionary (1 passwords loaded)")

	cmd, out = newTestCmd("")
	require.NoError(t, runDictLookup(cmd, []string{"batterystaple"}))
	assert.Contains(t, out.String(), "not found in dictionary")
}
