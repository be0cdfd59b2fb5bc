package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/pstuifzand/tui-treeselect/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const animalsYAML = `
- value: potato
  label: Potato
  children:
    - value: bird
      label: Bird
    - value: cat
      label: Cat
- value: apple
  label: Apple
`

func writeTree(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "animals.yaml")
	require.NoError(t, os.WriteFile(path, []byte(animalsYAML), 0644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func firstColumn(out string) []string {
	var values []string
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if fields := strings.Fields(line); len(fields) > 0 {
			values = append(values, fields[0])
		}
	}
	return values
}

func TestListCommand(t *testing.T) {
	path := writeTree(t)

	out, err := run(t, "list", path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 3, "children of collapsed potato are not listed")

	out, err = run(t, "list", path, "--expand-all", "--hide-root", "-c", "bird")
	require.NoError(t, err)
	lines = strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "  [-] Potato"), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "    [x] Bird"), lines[1])
	assert.True(t, strings.HasPrefix(lines[3], "  [ ] Apple"), lines[3])
}

func TestLeavesCommand(t *testing.T) {
	path := writeTree(t)

	out, err := run(t, "leaves", path, "--checked-only", "-c", "potato")
	require.NoError(t, err)
	assert.Equal(t, []string{"bird", "cat"}, firstColumn(out))

	out, err = run(t, "leaves", path, "--checked-only", "--depth", "1", "-c", "potato,apple")
	require.NoError(t, err)
	assert.Equal(t, []string{"apple"}, firstColumn(out))

	out, err = run(t, "leaves", path, "--json")
	require.NoError(t, err)
	var nodes []model.FlatNode
	require.NoError(t, json.Unmarshal([]byte(out), &nodes))
	require.Len(t, nodes, 3)
	assert.Equal(t, "potato", nodes[0].Parent)
}

func TestHiddenCommand(t *testing.T) {
	path := writeTree(t)

	out, err := run(t, "hidden", path, "--keyword", "bird")
	require.NoError(t, err)
	assert.Equal(t, []string{"cat", "apple"}, firstColumn(out))

	_, err = run(t, "hidden", path)
	assert.Error(t, err)
}

func TestQueryErrors(t *testing.T) {
	path := writeTree(t)

	_, err := run(t, "leaves", path, "-c", "missing")
	assert.ErrorContains(t, err, `unknown value "missing"`)

	_, err = run(t, "list", filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)

	_, err = run(t, "list")
	assert.Error(t, err)
}
