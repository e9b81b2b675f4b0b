//go:build linux
// +build linux

package fuse

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"
	"github.com/ostafen/sniff/internal/scan"
	"github.com/ostafen/sniff/pkg/dfxml"
)

// ReportFS is a read-only view of a scan report. Files are grouped as
// /<kind>/<mime>/<name> and read from their location in the scanned
// directory.
type ReportFS struct {
	root *Dir
}

// NewReportFS builds the tree of the files in report. Relative file names
// are resolved against the scanned directory recorded in the report.
func NewReportFS(report *dfxml.Report) *ReportFS {
	var inode uint64 = 1
	nextInode := func() uint64 {
		inode++
		return inode
	}

	root := newDir(1)
	mtime := time.Now()

	for _, o := range report.Objects {
		kindDir := root.subdir(scan.KindDirName(o.Kind), nextInode)
		mimeDir := kindDir.subdir(MIMEDirName(o.MIME), nextInode)

		name := mimeDir.uniqueName(path.Base(o.Filename))
		mimeDir.add(name, &File{
			inode: nextInode(),
			path:  resolve(report.Source.Directory, o.Filename),
			size:  o.FileSize,
			mtime: mtime,
		})
	}
	return &ReportFS{root: root}
}

func resolve(dir, name string) string {
	name = filepath.FromSlash(name)
	if filepath.IsAbs(name) || dir == "" {
		return name
	}
	return filepath.Join(dir, name)
}

// MIMEDirName returns the directory holding files of the given MIME type.
// Parameters are dropped and slashes replaced.
func MIMEDirName(mime string) string {
	base, _, _ := strings.Cut(mime, ";")
	base = strings.TrimSpace(base)
	if base == "" {
		return "unknown"
	}
	return strings.ReplaceAll(base, "/", "_")
}

func (rfs *ReportFS) Root() (fs.Node, error) {
	return rfs.root, nil
}

type Dir struct {
	inode   uint64
	entries map[string]fs.Node
}

func newDir(inode uint64) *Dir {
	return &Dir{
		inode:   inode,
		entries: make(map[string]fs.Node),
	}
}

func (d *Dir) subdir(name string, nextInode func() uint64) *Dir {
	if sub, ok := d.entries[name].(*Dir); ok {
		return sub
	}
	sub := newDir(nextInode())
	d.entries[name] = sub
	return sub
}

func (d *Dir) add(name string, n fs.Node) {
	d.entries[name] = n
}

// uniqueName appends " (n)" before the extension of name until it no longer
// collides with an existing entry.
func (d *Dir) uniqueName(name string) string {
	ext := path.Ext(name)
	base := strings.TrimSuffix(name, ext)

	candidate := name
	for n := 1; ; n++ {
		if _, exists := d.entries[candidate]; !exists {
			return candidate
		}
		candidate = fmt.Sprintf("%s (%d)%s", base, n, ext)
	}
}

func (d *Dir) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Inode = d.inode
	a.Mode = os.ModeDir | 0555
	return nil
}

func (d *Dir) Lookup(ctx context.Context, name string) (fs.Node, error) {
	if n, ok := d.entries[name]; ok {
		return n, nil
	}
	return nil, fuse.ENOENT
}

func (d *Dir) ReadDirAll(ctx context.Context) ([]fuse.Dirent, error) {
	dirEntries := make([]fuse.Dirent, 0, len(d.entries))
	for name, n := range d.entries {
		dirent := fuse.Dirent{Name: name, Type: fuse.DT_File}
		switch n := n.(type) {
		case *Dir:
			dirent.Inode = n.inode
			dirent.Type = fuse.DT_Dir
		case *File:
			dirent.Inode = n.inode
		}
		dirEntries = append(dirEntries, dirent)
	}
	sort.Slice(dirEntries, func(i, j int) bool {
		return dirEntries[i].Name < dirEntries[j].Name
	})
	return dirEntries, nil
}

// File reads its content from the original file on each request, so that
// the mount never holds descriptors of the scanned tree.
type File struct {
	inode uint64
	path  string
	size  uint64
	mtime time.Time
}

func (f *File) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Inode = f.inode
	a.Mode = 0444
	a.Size = f.size
	a.Mtime = f.mtime
	return nil
}

func (f *File) Read(ctx context.Context, req *fuse.ReadRequest, resp *fuse.ReadResponse) error {
	size := int(req.Size)
	offset := req.Offset

	if offset >= int64(f.size) {
		// Trying to read past EOF
		resp.Data = []byte{}
		return nil
	}

	// Clamp size if reading near EOF
	if offset+int64(size) > int64(f.size) {
		size = int(int64(f.size) - offset)
	}

	src, err := os.Open(f.path)
	if err != nil {
		return fuse.ToErrno(err)
	}
	defer src.Close()

	buf := make([]byte, size)

	n, err := src.ReadAt(buf, offset)
	if err != nil && err != io.EOF {
		return fuse.ToErrno(err)
	}

	resp.Data = buf[:n]
	return nil
}
