package dfxml

import (
	"encoding/xml"
	"fmt"
	"io"
)

// Report is the content of a DFXML file produced by a scan.
type Report struct {
	Creator Creator
	Source  Source
	Objects []FileObject
}

func ReadReport(r io.Reader) (*Report, error) {
	dec := xml.NewDecoder(r)
	report := &Report{}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidReport, err)
		}

		startElem, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch startElem.Name.Local {
		case "creator":
			err = dec.DecodeElement(&report.Creator, &startElem)
		case "source":
			err = dec.DecodeElement(&report.Source, &startElem)
		case "fileobject":
			var fo FileObject
			if err = dec.DecodeElement(&fo, &startElem); err == nil {
				err = fo.Validate()
			}
			report.Objects = append(report.Objects, fo)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidReport, err)
		}
	}
	return report, nil
}

func ReadFileObjects(r io.Reader) ([]FileObject, error) {
	report, err := ReadReport(r)
	if err != nil {
		return nil, err
	}
	return report.Objects, nil
}
