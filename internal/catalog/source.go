package catalog

import (
	"errors"
	"fmt"

	"github.com/woozymasta/fieldmap/internal/geo"
	"github.com/woozymasta/fieldmap/internal/kml"
)

// ErrSourceUnreadable marks a source file that could not be opened or read.
var ErrSourceUnreadable = errors.New("source unreadable")

// Placemark is a parsed geographic feature with one geometry and an attribute bag.
type Placemark interface {
	Title() string
	Kind() geo.Kind
	Position() (geo.Coordinate, error)
	Ring() ([]geo.Coordinate, error)
	Attribute(key string) (string, bool)
}

// Reader yields the placemarks of a geographic source file.
// Open and read failures must wrap ErrSourceUnreadable; any other error
// is treated as a recoverable parse failure.
type Reader interface {
	Read(path string) ([]Placemark, error)
}

// KMLReader reads placemarks from KML files.
type KMLReader struct{}

// Read implements Reader.
func (KMLReader) Read(path string) ([]Placemark, error) {
	pms, err := kml.ReadFile(path)
	if errors.Is(err, kml.ErrRead) {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnreadable, err)
	}
	if err != nil {
		return nil, err
	}

	out := make([]Placemark, len(pms))
	for i := range pms {
		out[i] = &pms[i]
	}

	return out, nil
}
