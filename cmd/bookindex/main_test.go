package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testGroups = `
groups:
  - key: Specials
    label: Special characters
  - key: A
    members: [A, a]
  - key: Ab
    members: [Ab, ab]
  - key: B
    members: [B, b]
`

const testDocument = `<topic>
  <body>
    <p><indexterm>Apple</indexterm><indexterm>Abacus</indexterm></p>
    <p><indexterm>Banana<indexterm>Ripe</indexterm></indexterm></p>
    <p><indexterm>Cherry</indexterm></p>
  </body>
</topic>`

// workspace writes the fixtures into a fresh working directory.
func workspace(t *testing.T, groups string) (dir string) {
	t.Helper()
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	dir = t.TempDir()
	t.Chdir(dir)
	t.Setenv("BOOKINDEX_CONFIG", "")
	t.Setenv("BOOKINDEX_LOG_LEVEL", "error")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "groups.yaml"), []byte(groups), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "book.xml"), []byte(testDocument), 0o644))
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestBuildToStdout(t *testing.T) {
	workspace(t, testGroups)

	out, err := execute(t, "build", "--groups", "groups.yaml", "book.xml")
	require.NoError(t, err)

	assert.Contains(t, out, `value="Apple"`)
	assert.Contains(t, out, `value="Ripe"`)
	assert.Contains(t, out, ">Special characters<", "Cherry is placed in the catch-all group")
	assert.Less(t, strings.Index(out, `value="Apple"`), strings.Index(out, `>Ab<`))
	assert.Less(t, strings.Index(out, `>Ab<`), strings.Index(out, `value="Abacus"`), "nested group holds Abacus")
}

func TestBuildToFile(t *testing.T) {
	dir := workspace(t, testGroups)

	out, err := execute(t, "build", "-g", "groups.yaml", "--format", "json", "-o", "index.json", "book.xml")
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(filepath.Join(dir, "index.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"value": "Banana"`)

	leftovers, err := filepath.Glob(filepath.Join(dir, ".bookindex-*"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestBuildStrictFailsOnUnclassified(t *testing.T) {
	workspace(t, "groups:\n  - key: A\n    members: [A]\n")

	_, err := execute(t, "build", "-g", "groups.yaml", "book.xml")
	assert.NoError(t, err, "lenient by default")

	_, err = execute(t, "build", "-g", "groups.yaml", "--strict", "book.xml")
	assert.ErrorIs(t, err, errUnclassified)
}

func TestBuildRequiresGroups(t *testing.T) {
	workspace(t, testGroups)

	_, err := execute(t, "build", "book.xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no group configuration")
}

func TestBuildUsesSettingsFile(t *testing.T) {
	dir := workspace(t, testGroups)
	settings := "index:\n  groups: groups.yaml\noutput:\n  format: yaml\nlog:\n  level: error\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bookindex.yaml"), []byte(settings), 0o644))

	out, err := execute(t, "build", "book.xml")
	require.NoError(t, err)
	assert.Contains(t, out, "value: Apple")
}

func TestCheck(t *testing.T) {
	workspace(t, "groups:\n  - key: A\n    members: [A]\n")

	out, err := execute(t, "check", "-g", "groups.yaml", "book.xml")
	assert.ErrorIs(t, err, errUnclassified)
	assert.Contains(t, out, "Unclassified terms (2)")
	assert.Contains(t, out, "Banana")
	assert.Contains(t, out, "Cherry")
}

func TestGroupsHierarchy(t *testing.T) {
	workspace(t, testGroups)

	out, err := execute(t, "groups", "-g", "groups.yaml")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[2], "A [A]")
	assert.Contains(t, lines[3], "└─ Ab [Ab]")
	assert.Contains(t, lines[4], "B [B]")
}

func TestGroupsWithDocument(t *testing.T) {
	workspace(t, testGroups)

	out, err := execute(t, "groups", "-g", "groups.yaml", "book.xml")
	require.NoError(t, err)
	assert.Contains(t, out, "Special characters [Specials] 1")
	assert.Contains(t, out, "└─ Ab [Ab] members: Ab ab 1")
}
