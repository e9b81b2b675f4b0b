// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/ostafen/sniff/pkg/mimetype"
	osutils "github.com/ostafen/sniff/pkg/util/os"
	"github.com/spf13/cobra"
)

var errNoMatch = errors.New("some files do not match the requested type")

type detectResult struct {
	Path      string   `json:"path"`
	MIME      string   `json:"mime,omitempty"`
	Name      string   `json:"name,omitempty"`
	Extension string   `json:"extension,omitempty"`
	Kind      []string `json:"kind,omitempty"`
	Chain     []string `json:"chain,omitempty"`
	Match     *bool    `json:"match,omitempty"`
	Error     string   `json:"error,omitempty"`

	kind mimetype.Kind
}

func DefineDetectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detect <path>...",
		Short: "Detect the type of files from their content",
		Long: `The 'detect' command inspects the first bytes of each file and prints the most specific format they match.
Directories are expanded to the regular files they contain.
With --mime, each file is instead tested against the given type and the command fails if any of them does not match.`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE:         RunDetect,
	}

	cmd.Flags().Bool("json", false, "print the results as a JSON array")
	cmd.Flags().String("mime", "", "only test whether files match the given MIME type")
	return cmd
}

func RunDetect(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	mime, _ := cmd.Flags().GetString("mime")

	if mime != "" && !mimetype.IsSupported(mime) {
		return fmt.Errorf("unsupported MIME type %q", mime)
	}

	var paths []string
	for _, arg := range args {
		files, err := osutils.ListFiles(arg)
		if err != nil {
			return err
		}
		paths = append(paths, files...)
	}

	results := make([]detectResult, 0, len(paths))
	failed, unmatched := 0, 0
	for _, path := range paths {
		res := detect(path, mime)
		if res.Error != "" {
			failed++
		}
		if res.Match != nil && !*res.Match {
			unmatched++
		}
		results = append(results, res)
	}

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return err
		}
	} else if err := printDetectResults(cmd, results, mime != ""); err != nil {
		return err
	}

	switch {
	case failed > 0:
		return fmt.Errorf("unable to inspect %d of %d files", failed, len(results))
	case unmatched > 0:
		return errNoMatch
	}
	return nil
}

func detect(path, mime string) detectResult {
	res := detectResult{Path: path}

	if mime != "" {
		ok, err := mimetype.MatchFile(path, mime)
		if err != nil {
			res.Error = err.Error()
			return res
		}
		res.MIME = mime
		res.Match = &ok
		return res
	}

	m, err := mimetype.DetectFile(path, int(settings.ReadLimit))
	if err != nil {
		res.Error = err.Error()
		return res
	}

	res.MIME = m.MIME()
	res.Name = m.Name()
	res.Extension = m.Extension()
	res.kind = m.Kind()
	res.Kind = res.kind.Names()
	for _, c := range m.Chain() {
		res.Chain = append(res.Chain, c.MIME())
	}
	return res
}

func printDetectResults(cmd *cobra.Command, results []detectResult, matchOnly bool) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)

	if matchOnly {
		fmt.Fprintln(w, "PATH\tMIME\tMATCH")
	} else {
		fmt.Fprintln(w, "PATH\tMIME\tEXT\tKIND\tCHAIN")
	}

	for _, r := range results {
		switch {
		case r.Error != "":
			fmt.Fprintf(w, "%s\terror: %s\n", r.Path, r.Error)
		case matchOnly:
			fmt.Fprintf(w, "%s\t%s\t%t\n", r.Path, r.MIME, *r.Match)
		default:
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				r.Path,
				r.MIME,
				orDash(r.Extension),
				r.kind,
				strings.Join(r.Chain, " < "),
			)
		}
	}
	return w.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
