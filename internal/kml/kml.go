// Package kml reads placemarks from KML documents.
//
// Only the subset needed for field catalogs is decoded: placemark names,
// ExtendedData attributes (both Data and SchemaData encodings), Point and
// Polygon outer boundaries. Document and Folder nesting is flattened.
package kml

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/net/html/charset"
)

var (
	// ErrRead marks failures to open or read the source file.
	ErrRead = errors.New("kml: read failed")
	// ErrSyntax marks documents that are not well-formed KML.
	ErrSyntax = errors.New("kml: malformed document")
)

// ReadFile opens the file at path and decodes its placemarks.
func ReadFile(path string) ([]Placemark, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}
	// Explicitly ignore close error as it's a read-only operation
	defer func() { _ = f.Close() }()

	src := &trackingReader{r: f}
	placemarks, err := Decode(src)
	if err != nil && src.err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRead, path, src.err)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return placemarks, nil
}

// Decode returns every Placemark in the document, at any depth, in document order.
// A syntax error anywhere in the document discards the whole result.
// Documents declaring a non UTF-8 encoding are transcoded on the fly.
func Decode(r io.Reader) ([]Placemark, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	var (
		placemarks []Placemark
		root       bool
	)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSyntax, err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		root = true

		if start.Name.Local != "Placemark" {
			continue
		}

		var pm Placemark
		if err := dec.DecodeElement(&pm, &start); err != nil {
			return nil, fmt.Errorf("%w: placemark %d: %w", ErrSyntax, len(placemarks)+1, err)
		}
		placemarks = append(placemarks, pm)
	}

	if !root {
		return nil, fmt.Errorf("%w: no root element", ErrSyntax)
	}

	return placemarks, nil
}

// trackingReader remembers the first non-EOF read error so that I/O failures
// can be told apart from XML syntax errors.
type trackingReader struct {
	r   io.Reader
	err error
}

func (t *trackingReader) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	if err != nil && !errors.Is(err, io.EOF) && t.err == nil {
		t.err = err
	}

	return n, err
}
