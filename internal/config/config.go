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
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/ostafen/sniff/pkg/mimetype"
	"github.com/ostafen/sniff/pkg/util/format"
	"gopkg.in/yaml.v3"
)

var ErrInvalidReadLimit = errors.New("read limit must be greater than zero")

// Size is a byte count which can be written either as a plain number or with
// a unit suffix, such as "3KB".
type Size int

func (s *Size) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: size must be a scalar", value.Line)
	}

	n, err := format.ParseBytes(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*s = Size(n)
	return nil
}

func (s Size) MarshalYAML() (any, error) {
	return int(s), nil
}

type Config struct {
	ReadLimit      Size     `yaml:"read_limit"`
	Workers        int      `yaml:"workers"`
	Include        []string `yaml:"include,omitempty"`
	Exclude        []string `yaml:"exclude,omitempty"`
	FollowSymlinks bool     `yaml:"follow_symlinks"`
	LogLevel       string   `yaml:"log_level"`
	LogFile        string   `yaml:"log_file,omitempty"`
	CacheSize      int      `yaml:"cache_size"`
}

func Default() Config {
	return Config{
		ReadLimit: Size(mimetype.ReadLimit),
		Workers:   runtime.NumCPU(),
		LogLevel:  "INFO",
		CacheSize: 4096,
	}
}

// Load reads the YAML file at path on top of the default configuration.
// Keys missing from the file keep their default value.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %q: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.ReadLimit <= 0 {
		return ErrInvalidReadLimit
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.CacheSize < 0 {
		c.CacheSize = 0
	}
	return nil
}

func (c Config) String() string {
	out, err := yaml.Marshal(c)
	if err != nil {
		return err.Error()
	}
	return string(out)
}
