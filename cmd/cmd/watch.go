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
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ostafen/sniff/internal/scan"
	"github.com/ostafen/sniff/internal/watch"
	"github.com/spf13/cobra"
)

func DefineWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Report the type of files as they are created or modified",
		Long: `The 'watch' command monitors a directory tree and prints the detected type of every file created or written below it.
A file is reported again only when its detected type changes. New subdirectories are watched as they appear.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunWatch,
	}

	cmd.Flags().StringSlice("include", nil, "glob patterns of the files to report")
	cmd.Flags().StringSlice("exclude", nil, "glob patterns of the files and directories to ignore")
	cmd.Flags().String("log-file", "", "path of the detailed log")
	return cmd
}

func RunWatch(cmd *cobra.Command, args []string) error {
	filter, err := scan.NewFilter(
		stringSlice(cmd, "include", settings.Include),
		stringSlice(cmd, "exclude", settings.Exclude),
	)
	if err != nil {
		return err
	}

	log, closer, err := fileLogger(cmd)
	if err != nil {
		return err
	}
	defer closer.Close()

	detector := scan.NewDetector(int(settings.ReadLimit), settings.CacheSize)

	w, err := watch.New(args[0], filter, detector, log)
	if err != nil {
		return err
	}
	defer w.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := console(cmd)
	out.Infof("Watching %s, press Ctrl+C to stop", args[0])

	return w.Run(ctx, func(e watch.Event) {
		out.Infof("%s\t%s\t%s\t%s", strings.ToLower(e.Op.String()), e.Rel, e.MIME.MIME(), e.MIME.Kind())
	})
}
