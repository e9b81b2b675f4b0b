package pbar_test

import (
	"bytes"
	"testing"

	"github.com/ostafen/sniff/pkg/pbar"
	"github.com/stretchr/testify/require"
)

func TestProgressBarState(t *testing.T) {
	var buf bytes.Buffer

	bar := pbar.NewProgressBarState(&buf, 3)
	require.False(t, pbar.IsTerminal(&buf))

	bar.Add(10)
	bar.Add(20)
	bar.Finish()

	require.Equal(t, 2, bar.ProcessedFiles)
	require.Equal(t, int64(30), bar.ProcessedBytes)

	// not a terminal
	require.Empty(t, buf.String())
}
