package sysinfo_test

import (
	"runtime"
	"strings"
	"testing"

	"github.com/ostafen/sniff/pkg/sysinfo"
	"github.com/stretchr/testify/require"
)

func TestStat(t *testing.T) {
	info, err := sysinfo.Stat()
	require.NoError(t, err)
	require.Equal(t, runtime.GOOS, info.Name)
	require.Equal(t, runtime.GOARCH, info.Arch)
}

func TestString(t *testing.T) {
	info := sysinfo.SysInfo{Name: "linux", Arch: "amd64", Release: "Ubuntu", Version: "24.04 LTS"}
	require.Equal(t, "linux/amd64 (Ubuntu 24.04 LTS)", info.String())

	info = sysinfo.SysUnknown
	require.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.String())
}

func TestParseOSRelease(t *testing.T) {
	release, version := sysinfo.ParseOSRelease(strings.NewReader(`NAME="Ubuntu"
VERSION="24.04 LTS (Noble Numbat)"
ID=ubuntu
# comment
`))
	require.Equal(t, "Ubuntu", release)
	require.Equal(t, "24.04 LTS (Noble Numbat)", version)

	release, version = sysinfo.ParseOSRelease(strings.NewReader("ID=alpine\nVERSION_ID=3.20.1\n"))
	require.Equal(t, "alpine", release)
	require.Equal(t, "3.20.1", version)

	release, version = sysinfo.ParseOSRelease(strings.NewReader(""))
	require.Empty(t, release)
	require.Empty(t, version)
}
