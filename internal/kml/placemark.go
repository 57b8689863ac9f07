package kml

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/woozymasta/fieldmap/internal/geo"
)

// ErrGeometry marks placemarks whose geometry cannot be converted to coordinates.
var ErrGeometry = errors.New("kml: invalid geometry")

// Placemark is a named feature with one geometry and an attribute bag.
type Placemark struct {
	Name          string         `xml:"name"`
	ExtendedData  *extendedData  `xml:"ExtendedData"`
	Point         *point         `xml:"Point"`
	Polygon       *polygon       `xml:"Polygon"`
	LineString    *lineString    `xml:"LineString"`
	LinearRing    *lineString    `xml:"LinearRing"`
	MultiGeometry *multiGeometry `xml:"MultiGeometry"`
}

type extendedData struct {
	Data       []data       `xml:"Data"`
	SchemaData []schemaData `xml:"SchemaData"`
}

type data struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value"`
}

type schemaData struct {
	SimpleData []simpleData `xml:"SimpleData"`
}

type simpleData struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}

type point struct {
	Coordinates string `xml:"coordinates"`
}

type polygon struct {
	Outer string `xml:"outerBoundaryIs>LinearRing>coordinates"`
}

type lineString struct {
	Coordinates string `xml:"coordinates"`
}

type multiGeometry struct {
	Points     []point      `xml:"Point"`
	Polygons   []polygon    `xml:"Polygon"`
	LineString []lineString `xml:"LineString"`
}

// Title returns the placemark name.
func (p *Placemark) Title() string {
	return strings.TrimSpace(p.Name)
}

// Kind reports the placemark geometry. A MultiGeometry resolves to its
// first polygon, then its first point.
func (p *Placemark) Kind() geo.Kind {
	switch {
	case p.Polygon != nil:
		return geo.KindPolygon
	case p.Point != nil:
		return geo.KindPoint
	case p.MultiGeometry != nil && len(p.MultiGeometry.Polygons) > 0:
		return geo.KindPolygon
	case p.MultiGeometry != nil && len(p.MultiGeometry.Points) > 0:
		return geo.KindPoint
	case p.LineString != nil, p.LinearRing != nil, p.MultiGeometry != nil:
		return geo.KindOther
	default:
		return geo.KindNone
	}
}

// Position returns the coordinate of a point placemark.
func (p *Placemark) Position() (geo.Coordinate, error) {
	var raw string
	switch {
	case p.Point != nil:
		raw = p.Point.Coordinates
	case p.MultiGeometry != nil && len(p.MultiGeometry.Points) > 0:
		raw = p.MultiGeometry.Points[0].Coordinates
	default:
		return geo.Coordinate{}, fmt.Errorf("%w: not a point", ErrGeometry)
	}

	coords, err := parseCoordinates(raw)
	if err != nil {
		return geo.Coordinate{}, err
	}
	if len(coords) != 1 {
		return geo.Coordinate{}, fmt.Errorf("%w: point has %d coordinates", ErrGeometry, len(coords))
	}

	return coords[0], nil
}

// Ring returns the outer boundary of a polygon placemark in source order.
func (p *Placemark) Ring() ([]geo.Coordinate, error) {
	switch {
	case p.Polygon != nil:
		return parseCoordinates(p.Polygon.Outer)
	case p.MultiGeometry != nil && len(p.MultiGeometry.Polygons) > 0:
		return parseCoordinates(p.MultiGeometry.Polygons[0].Outer)
	default:
		return nil, fmt.Errorf("%w: not a polygon", ErrGeometry)
	}
}

// Attribute looks key up in ExtendedData. Data entries are checked before
// SchemaData entries; the first match wins.
func (p *Placemark) Attribute(key string) (string, bool) {
	if p.ExtendedData == nil {
		return "", false
	}

	for _, d := range p.ExtendedData.Data {
		if d.Name == key {
			return strings.TrimSpace(d.Value), true
		}
	}

	for _, schema := range p.ExtendedData.SchemaData {
		for _, sd := range schema.SimpleData {
			if sd.Name == key {
				return strings.TrimSpace(sd.Value), true
			}
		}
	}

	return "", false
}

// parseCoordinates parses whitespace-separated "lon,lat[,alt]" tuples.
func parseCoordinates(raw string) ([]geo.Coordinate, error) {
	tuples := strings.Fields(raw)
	coords := make([]geo.Coordinate, 0, len(tuples))

	for _, tuple := range tuples {
		parts := strings.Split(tuple, ",")
		if len(parts) < 2 || len(parts) > 3 {
			return nil, fmt.Errorf("%w: bad tuple %q", ErrGeometry, tuple)
		}

		lon, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: longitude %q: %w", ErrGeometry, parts[0], err)
		}
		lat, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: latitude %q: %w", ErrGeometry, parts[1], err)
		}

		coords = append(coords, geo.Coordinate{Latitude: lat, Longitude: lon})
	}

	return coords, nil
}
