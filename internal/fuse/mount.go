//go:build !linux
// +build !linux

package fuse

import (
	"fmt"

	"github.com/ostafen/sniff/internal/logger"
	"github.com/ostafen/sniff/pkg/dfxml"
)

func Mount(mountpoint string, report *dfxml.Report, log *logger.Logger) error {
	return fmt.Errorf("FUSE mount is only supported on Linux")
}
