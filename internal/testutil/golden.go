package testutil

import (
	"bytes"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var updateGolden = flag.Bool("update-golden", false, "rewrite golden files under testdata/golden")

var unsafeGoldenChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// GoldenPath returns where the golden file for name lives. Characters that
// are awkward in file names collapse to underscores.
func GoldenPath(name string) string {
	return filepath.Join(GetProjectRoot(), "testdata", "golden", unsafeGoldenChars.ReplaceAllString(name, "_")+".golden")
}

// AssertGoldenJSON encodes v as indented JSON and compares it with the golden
// file for name. Tables such as the biome palette are checked this way, so a
// changed color or threshold shows up as a readable diff.
//
// Run with -update-golden to accept the current output.
func AssertGoldenJSON(t *testing.T, name string, v interface{}) {
	t.Helper()

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	require.NoError(t, enc.Encode(v), "encode %s", name)

	compareGolden(t, GoldenPath(name), buf.Bytes())
}

func compareGolden(t *testing.T, path string, actual []byte) {
	t.Helper()

	expected, err := os.ReadFile(path)
	switch {
	case *updateGolden:
		writeGolden(t, path, actual)
		t.Logf("updated %s", path)
		return
	case os.IsNotExist(err):
		writeGolden(t, path, actual)
		require.Failf(t, "missing golden file", "wrote %s, re-run to verify it", path)
		return
	}
	require.NoError(t, err, "read %s", path)

	assert.Equal(t, string(expected), string(actual),
		"%s differs, run go test -run %s -update-golden to accept", path, t.Name())
}

func writeGolden(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
}
