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
package sysinfo

import (
	"bufio"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

const unknown = "unknown"

// SysUnknown describes the running platform when no release data is available.
var SysUnknown = SysInfo{
	Name:    runtime.GOOS,
	Release: unknown,
	Version: unknown,
	Arch:    runtime.GOARCH,
}

// SysInfo holds the basic operating system details.
type SysInfo struct {
	Name    string // GOOS of the running binary
	Release string // distribution or product name, e.g. "Ubuntu" or "macOS"
	Version string
	Arch    string // GOARCH of the running binary
}

// Stat gathers the release and version of the running operating system.
func Stat() (*SysInfo, error) {
	info := SysUnknown

	switch runtime.GOOS {
	case "linux":
		if f, err := os.Open("/etc/os-release"); err == nil {
			info.Release, info.Version = ParseOSRelease(f)
			f.Close()
		}
	case "darwin":
		if out, err := exec.Command("sw_vers").Output(); err == nil {
			kv := parseKeyValues(strings.NewReader(string(out)), ":")
			info.Release, info.Version = kv["ProductName"], kv["ProductVersion"]
		}
	case "windows":
		if out, err := exec.Command("cmd", "/c", "ver").Output(); err == nil {
			info.Release, info.Version = "Windows", strings.TrimSpace(string(out))
		}
	}

	if info.Release == "" {
		info.Release = unknown
	}
	if info.Version == "" {
		info.Version = unknown
	}
	return &info, nil
}

// ParseOSRelease extracts the distribution name and version from the
// contents of an os-release file.
func ParseOSRelease(r io.Reader) (string, string) {
	kv := parseKeyValues(r, "=")

	name := kv["NAME"]
	if name == "" {
		name = kv["ID"]
	}
	version := kv["VERSION"]
	if version == "" {
		version = kv["VERSION_ID"]
	}
	return name, version
}

// parseKeyValues reads "key<sep>value" lines, dropping surrounding quotes
// from values.
func parseKeyValues(r io.Reader, sep string) map[string]string {
	kv := make(map[string]string)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), sep)
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		kv[strings.TrimSpace(key)] = strings.Trim(value, `"'`)
	}
	return kv
}

func (s *SysInfo) String() string {
	platform := s.Name + "/" + s.Arch
	if s.Release == "" || s.Release == unknown {
		return platform
	}

	details := s.Release
	if s.Version != "" && s.Version != unknown {
		details += " " + s.Version
	}
	return platform + " (" + details + ")"
}
