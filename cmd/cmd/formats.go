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
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/ostafen/sniff/pkg/mimetype"
	"github.com/spf13/cobra"
)

func DefineFormatsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "formats",
		Short: "List all supported file formats",
		Long: `The 'formats' command displays a table of all file formats known to the detector.
Each format includes its MIME type, extension, kind (e.g., image, document) and the format it specializes.
With --tree, formats are printed as the hierarchy walked during detection.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         RunFormats,
	}

	cmd.Flags().Bool("tree", false, "print formats as an indented tree")
	return cmd
}

func RunFormats(cmd *cobra.Command, args []string) error {
	if tree, _ := cmd.Flags().GetBool("tree"); tree {
		printTree(cmd.OutOrStdout(), mimetype.Root(), 0)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MIME\tEXT\tKIND\tPARENT\tNAME")

	for _, m := range mimetype.All() {
		parent := "-"
		if p := m.Parent(); p != nil {
			parent = p.MIME()
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			m.MIME(),
			orDash(m.Extension()),
			m.Kind(),
			parent,
			m.Name(),
		)
	}
	return w.Flush()
}

func printTree(w io.Writer, m *mimetype.MIME, depth int) {
	line := strings.Repeat("  ", depth) + m.MIME()
	if ext := m.Extension(); ext != "" {
		line += " (" + ext + ")"
	}
	fmt.Fprintln(w, line)

	for _, c := range m.Children() {
		printTree(w, c, depth+1)
	}
}
