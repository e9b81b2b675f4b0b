package scan_test

import (
	"testing"

	"github.com/ostafen/sniff/internal/scan"
	"github.com/stretchr/testify/require"
)

func TestFilter(t *testing.T) {
	f, err := scan.NewFilter([]string{"*.jpg", "docs/**"}, []string{"*.tmp.jpg", ".git"})
	require.NoError(t, err)

	require.True(t, f.Match("a.jpg"))
	require.True(t, f.Match("photos/2024/a.jpg"))
	require.True(t, f.Match("docs/report.pdf"))
	require.True(t, f.Match("docs/sub/notes.txt"))
	require.False(t, f.Match("a.png"))
	require.False(t, f.Match("photos/a.tmp.jpg"))

	require.True(t, f.SkipDir(".git"))
	require.True(t, f.SkipDir("vendor/.git"))
	require.False(t, f.SkipDir("docs"))
}

func TestFilterEmpty(t *testing.T) {
	f, err := scan.NewFilter(nil, nil)
	require.NoError(t, err)
	require.True(t, f.Match("anything/at/all"))
	require.False(t, f.SkipDir("anything"))
}

func TestFilterDirPattern(t *testing.T) {
	f, err := scan.NewFilter(nil, []string{"node_modules/**"})
	require.NoError(t, err)
	require.True(t, f.SkipDir("node_modules"))
	require.False(t, f.Match("node_modules/x/index.js"))
	require.True(t, f.Match("src/index.js"))
}

func TestFilterInvalid(t *testing.T) {
	_, err := scan.NewFilter([]string{"[a-"}, nil)
	require.Error(t, err)
}
