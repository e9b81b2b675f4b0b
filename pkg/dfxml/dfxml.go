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
package dfxml

import (
	"encoding/xml"
	"errors"
	"os"
	"os/user"
	"strconv"
	"time"

	"github.com/ostafen/sniff/pkg/sysinfo"
)

const XmlOutputVersion = "1.0"

// HashXXH64 is the digest type of the hash computed over the inspected head
// of each file.
const HashXXH64 = "xxh64"

var ErrInvalidReport = errors.New("invalid report file")

var DefaultMetadata = Metadata{
	Xmlns:    "http://www.forensicswiki.org/wiki/Category:Digital_Forensics_XML",
	XmlnsXsi: "http://www.w3.org/2001/XMLSchema-instance",
	XmlnsDC:  "http://purl.org/dc/elements/1.1/",
	Type:     "File Type Report",
}

type DFXMLHeader struct {
	XMLName   xml.Name `xml:"dfxml"`                           // Specifies the XML element name as "dfxml".
	XmlOutput string   `xml:"xmloutputversion,attr,omitempty"` // The version of the DFXML XML schema, an attribute. "omitempty" means it will be omitted if empty.
	Metadata  Metadata `xml:"metadata"`                        // Contains metadata about the DFXML document.
	Creator   Creator  `xml:"creator"`                         // Describes the software that created the DFXML.
	Source    Source   `xml:"source"`                          // Describes the scanned directory.
}

type Metadata struct {
	Xmlns    string `xml:"xmlns,attr"`     // XML Namespace for the DFXML schema.
	XmlnsXsi string `xml:"xmlns:xsi,attr"` // XML Namespace for XML Schema Instance.
	XmlnsDC  string `xml:"xmlns:dc,attr"`  // XML Namespace for Dublin Core.
	Type     string `xml:"dc:type"`        // The type of the DFXML document.
}

type Creator struct {
	Package              string  `xml:"package"`               // The name of the software package.
	Version              string  `xml:"version"`               // The version of the software package.
	ExecutionEnvironment ExecEnv `xml:"execution_environment"` // Details about the execution environment.
}

type ExecEnv struct {
	OS      string `xml:"os_sysname"` // Operating system name (e.g., "Linux", "Windows").
	Release string `xml:"os_release"` // Operating system release version.
	Version string `xml:"os_version"` // Operating system kernel version.
	Host    string `xml:"host"`       // Hostname of the machine.
	Arch    string `xml:"arch"`       // Architecture of the machine (e.g., "amd64").
	UID     int    `xml:"uid"`        // User ID under which the process ran.
	Start   string `xml:"start_time"` // Start time of the DFXML generation.
}

type Source struct {
	Directory string `xml:"directory"`         // Absolute path of the scanned directory.
	ReadLimit int    `xml:"read_limit"`        // Number of bytes inspected from the head of each file.
	Include   string `xml:"include,omitempty"` // Comma separated include patterns.
	Exclude   string `xml:"exclude,omitempty"` // Comma separated exclude patterns.
}

// FileObject describes a single file and the format detected for it.
type FileObject struct {
	XMLName    xml.Name    `xml:"fileobject"`           // Specifies the XML element name as "fileobject".
	Filename   string      `xml:"filename"`             // Path of the file, relative to the scanned directory.
	FileSize   uint64      `xml:"filesize"`             // The size of the file in bytes.
	MIME       string      `xml:"mime"`                 // The detected MIME type.
	Kind       string      `xml:"kind"`                 // The categories of the detected format.
	Extension  string      `xml:"extension,omitempty"`  // The extension of the detected format.
	HashDigest *HashDigest `xml:"hashdigest,omitempty"` // Digest of the inspected head.
}

type HashDigest struct {
	Type  string `xml:"type,attr"`
	Value string `xml:",chardata"`
}

func XXH64Digest(sum uint64) *HashDigest {
	return &HashDigest{
		Type:  HashXXH64,
		Value: strconv.FormatUint(sum, 16),
	}
}

// Validate checks the fields every consumer of a report relies on.
func (o *FileObject) Validate() error {
	if o.Filename == "" || o.MIME == "" {
		return ErrInvalidReport
	}
	return nil
}

func GetExecEnv() ExecEnv {
	sinfo, err := sysinfo.Stat()
	if err != nil {
		sinfo = &sysinfo.SysUnknown
	}

	host, err := os.Hostname()
	if err != nil {
		host = "unknown_host"
	}

	uid := 0
	currentUser, err := user.Current()
	if err == nil {
		if uidInt, parseErr := strconv.Atoi(currentUser.Uid); parseErr == nil {
			uid = uidInt
		}
	}

	// DFXML expects UTC times in ISO 8601 extended format.
	startTime := time.Now().UTC().Format("2006-01-02T15:04:05Z")

	return ExecEnv{
		OS:      sinfo.Name,
		Release: sinfo.Release,
		Version: sinfo.Version,
		Host:    host,
		Arch:    sinfo.Arch,
		UID:     uid,
		Start:   startTime,
	}
}
