package cmd_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/ostafen/sniff/cmd/cmd"
	"github.com/ostafen/sniff/internal/config"
	"github.com/ostafen/sniff/pkg/mimetype"
	"github.com/stretchr/testify/require"
)

var pngData = append([]byte("\x89PNG\r\n\x1A\n\x00\x00\x00\x0DIHDR"), make([]byte, 48)...)

func run(t *testing.T, args ...string) (string, error) {
	var out bytes.Buffer

	root := cmd.NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func writeFiles(t *testing.T) string {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "image.png"), pngData, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello\n"), 0644))
	return dir
}

func TestDetectCommand(t *testing.T) {
	dir := writeFiles(t)

	out, err := run(t, "detect", "--json", dir)
	require.NoError(t, err)

	var results []struct {
		Path      string   `json:"path"`
		MIME      string   `json:"mime"`
		Extension string   `json:"extension"`
		Kind      []string `json:"kind"`
		Chain     []string `json:"chain"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)

	byPath := make(map[string]int)
	for i, r := range results {
		byPath[filepath.Base(r.Path)] = i
	}

	png := results[byPath["image.png"]]
	require.Equal(t, "image/png", png.MIME)
	require.Equal(t, ".png", png.Extension)
	require.Equal(t, []string{"IMAGE"}, png.Kind)
	require.Equal(t, []string{"image/png"}, png.Chain)

	require.Equal(t, "text/plain; charset=utf-8", results[byPath["notes.txt"]].MIME)

	out, err = run(t, "detect", filepath.Join(dir, "image.png"))
	require.NoError(t, err)
	require.Contains(t, out, "PATH")
	require.Contains(t, out, "image/png")
}

func TestDetectCommandKinds(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logo.svg")
	require.NoError(t, os.WriteFile(path, []byte(`<?xml version="1.0"?><svg xmlns="http://www.w3.org/2000/svg"></svg>`), 0644))

	out, err := run(t, "detect", path)
	require.NoError(t, err)
	require.Contains(t, out, (mimetype.Image | mimetype.Text).String())
	require.Contains(t, out, "IMAGE | TEXT")

	out, err = run(t, "detect", "--json", path)
	require.NoError(t, err)
	require.Contains(t, out, `"kind": [`)
	require.NotContains(t, out, "IMAGE | TEXT")
}

func TestDetectCommandMatch(t *testing.T) {
	dir := writeFiles(t)

	out, err := run(t, "detect", "--mime", "image/png", filepath.Join(dir, "image.png"))
	require.NoError(t, err)
	require.Contains(t, out, "true")

	_, err = run(t, "detect", "--mime", "image/png", dir)
	require.Error(t, err)

	_, err = run(t, "detect", "--mime", "application/x-nope", dir)
	require.Error(t, err)

	_, err = run(t, "detect", filepath.Join(dir, "missing"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestFormatsCommand(t *testing.T) {
	out, err := run(t, "formats")
	require.NoError(t, err)
	require.Contains(t, out, "application/vnd.ms-excel")
	require.Contains(t, out, "application/x-ole-storage")

	out, err = run(t, "formats", "--tree")
	require.NoError(t, err)
	require.Contains(t, out, "application/octet-stream\n")
	require.Contains(t, out, "\n    application/vnd.ms-excel (.xls)\n")
}

func TestScanAndSortCommands(t *testing.T) {
	dir := writeFiles(t)
	report := filepath.Join(t.TempDir(), "report.xml")

	out, err := run(t, "scan", "--no-progress", "-o", report, "--exclude", "*.txt", dir)
	require.NoError(t, err)
	require.Contains(t, out, "Scan completed!")
	require.FileExists(t, report)

	sorted := filepath.Join(t.TempDir(), "sorted")
	_, err = run(t, "sort", "-o", sorted, report)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(sorted, "image", "png", "image.png"))
	require.NoError(t, err)
	require.Equal(t, pngData, data)
	require.NoDirExists(t, filepath.Join(sorted, "text"))

	_, err = run(t, "sort", "-o", sorted, filepath.Join(t.TempDir(), "missing.xml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestConfigFlags(t *testing.T) {
	dir := writeFiles(t)

	cfgFile := filepath.Join(t.TempDir(), "sniff.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("read_limit: 0\n"), 0644))

	_, err := run(t, "--config", cfgFile, "detect", dir)
	require.ErrorIs(t, err, config.ErrInvalidReadLimit)

	_, err = run(t, "--read-limit", "0", "detect", dir)
	require.ErrorIs(t, err, config.ErrInvalidReadLimit)

	_, err = run(t, "--read-limit", "many", "detect", dir)
	require.Error(t, err)

	// the PNG signature fits in 8 bytes
	out, err := run(t, "--read-limit", "8", "detect", filepath.Join(dir, "image.png"))
	require.NoError(t, err)
	require.Contains(t, out, "image/png")
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	require.Contains(t, out, "Version:")
	require.Contains(t, out, "Platform:")
}
