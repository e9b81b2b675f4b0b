package format_test

import (
	"testing"

	"github.com/ostafen/sniff/pkg/util/format"
	"github.com/stretchr/testify/require"
)

func TestFormatBytes(t *testing.T) {
	require.Equal(t, "512B", format.FormatBytes(512))
	require.Equal(t, "3KB", format.FormatBytes(3072))
	require.Equal(t, "1.50MB", format.FormatBytes(3*format.MB/2))
	require.Equal(t, "2GB", format.FormatBytes(2*format.GB))
}

func TestParseBytes(t *testing.T) {
	cases := []struct {
		in  string
		out uint64
	}{
		{"0", 0},
		{"3072", 3072},
		{"3KB", 3 * 1024},
		{"3kb", 3 * 1024},
		{" 4 MB ", 4 * 1024 * 1024},
		{"1.5K", 1536},
		{"2G", 2 * 1024 * 1024 * 1024},
		{"100B", 100},
	}

	for _, c := range cases {
		n, err := format.ParseBytes(c.in)
		require.NoError(t, err, c.in)
		require.Equal(t, c.out, n, c.in)
	}

	for _, in := range []string{"", "KB", "-1", "abc", "1XB"} {
		_, err := format.ParseBytes(in)
		require.Error(t, err, in)
	}
}
