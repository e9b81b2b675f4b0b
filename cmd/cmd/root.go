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
	"log/slog"

	"github.com/ostafen/sniff/internal/config"
	"github.com/ostafen/sniff/internal/env"
	"github.com/ostafen/sniff/internal/logger"
	"github.com/ostafen/sniff/pkg/util/format"
	"github.com/spf13/cobra"
)

const AppName = env.AppName

// settings holds the configuration file merged with the global flags. It is
// loaded before any command runs.
var settings = config.Default()

func Execute() error {
	return NewRootCommand().Execute()
}

func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               AppName,
		Short:             AppName + " - content based file type detection",
		SilenceUsage:      true,
		PersistentPreRunE: loadSettings,
	}

	rootCmd.PersistentFlags().String("config", "", "path of a YAML configuration file")
	rootCmd.PersistentFlags().String("log-level", "", "minimum level of logged messages (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().String("read-limit", "", "number of bytes inspected from the head of each file (e.g. 3KB)")

	rootCmd.AddCommand(
		DefineDetectCommand(),
		DefineFormatsCommand(),
		DefineScanCommand(),
		DefineSortCommand(),
		DefineMountCommand(),
		DefineWatchCommand(),
		DefineVersionCommand(),
	)
	return rootCmd
}

func loadSettings(cmd *cobra.Command, args []string) error {
	cfg := config.Default()

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}

	if s, _ := cmd.Flags().GetString("read-limit"); s != "" {
		n, err := format.ParseBytes(s)
		if err != nil {
			return fmt.Errorf("invalid read limit: %w", err)
		}
		cfg.ReadLimit = config.Size(n)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	settings = cfg
	return nil
}

// console returns the logger for user facing messages of cmd.
func console(cmd *cobra.Command) *logger.Logger {
	return logger.New(cmd.OutOrStdout(), logger.ParseLevel(settings.LogLevel))
}

// fileLogger returns the structured logger writing to the configured log
// file, overridden by the --log-file flag of cmd if set.
func fileLogger(cmd *cobra.Command) (*slog.Logger, io.Closer, error) {
	path := settings.LogFile
	if cmd.Flags().Changed("log-file") {
		path, _ = cmd.Flags().GetString("log-file")
	}
	return logger.NewFileLogger(path, logger.ParseLevel(settings.LogLevel))
}

// stringSlice returns the value of a string slice flag, or def if the flag
// was not set.
func stringSlice(cmd *cobra.Command, name string, def []string) []string {
	if !cmd.Flags().Changed(name) {
		return def
	}
	v, _ := cmd.Flags().GetStringSlice(name)
	return v
}
