package kml

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/woozymasta/fieldmap/internal/geo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fieldsDoc = `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2">
<Document>
  <Schema name="fields" id="fields">
    <SimpleField name="fid" type="string"></SimpleField>
    <SimpleField name="size" type="float"></SimpleField>
  </Schema>
  <Folder>
    <name>fields</name>
    <Placemark>
      <name>North</name>
      <ExtendedData>
        <SchemaData schemaUrl="#fields">
          <SimpleData name="fid">1</SimpleData>
          <SimpleData name="size">12.5</SimpleData>
        </SchemaData>
      </ExtendedData>
      <Polygon>
        <outerBoundaryIs><LinearRing><coordinates>
          38.97,45.04 38.98,45.04,0 38.98,45.045 38.97,45.045 38.97,45.04
        </coordinates></LinearRing></outerBoundaryIs>
      </Polygon>
    </Placemark>
    <Folder>
      <Placemark>
        <name>South</name>
        <ExtendedData>
          <Data name="fid"><value>2</value></Data>
        </ExtendedData>
        <MultiGeometry>
          <Polygon>
            <outerBoundaryIs><LinearRing><coordinates>1,2 3,4 5,6</coordinates></LinearRing></outerBoundaryIs>
          </Polygon>
        </MultiGeometry>
      </Placemark>
    </Folder>
  </Folder>
</Document>
</kml>`

func TestDecodeFlattensNesting(t *testing.T) {
	pms, err := Decode(strings.NewReader(fieldsDoc))
	require.NoError(t, err)
	require.Len(t, pms, 2)

	assert.Equal(t, "North", pms[0].Title())
	assert.Equal(t, "South", pms[1].Title())
	assert.Equal(t, geo.KindPolygon, pms[0].Kind())
	assert.Equal(t, geo.KindPolygon, pms[1].Kind())

	ring, err := pms[0].Ring()
	require.NoError(t, err)
	require.Len(t, ring, 5)
	assert.Equal(t, geo.Coordinate{Latitude: 45.04, Longitude: 38.97}, ring[0])
	assert.Equal(t, geo.Coordinate{Latitude: 45.04, Longitude: 38.98}, ring[1])

	ring, err = pms[1].Ring()
	require.NoError(t, err)
	assert.Equal(t, []geo.Coordinate{{2, 1}, {4, 3}, {6, 5}}, ring)
}

func TestDecodeSyntaxError(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"truncated", `<kml><Document><Placemark><name>x</name>`},
		{"empty", ``},
		{"mismatched tags", `<kml><Document></kml>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pms, err := Decode(strings.NewReader(tt.doc))
			require.ErrorIs(t, err, ErrSyntax)
			assert.Nil(t, pms)
		})
	}
}

func TestDecodeNoPlacemarks(t *testing.T) {
	pms, err := Decode(strings.NewReader(`<kml><Document/></kml>`))
	require.NoError(t, err)
	assert.Empty(t, pms)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fields.kml")
	require.NoError(t, os.WriteFile(path, []byte(fieldsDoc), 0o600))

	pms, err := ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, pms, 2)
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.kml"))
	require.ErrorIs(t, err, ErrRead)
	assert.NotErrorIs(t, err, ErrSyntax)
}

func TestReadFileDirectory(t *testing.T) {
	_, err := ReadFile(t.TempDir())
	require.ErrorIs(t, err, ErrRead)
}

func TestReadFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.kml")
	require.NoError(t, os.WriteFile(path, []byte(`<kml><Placemark>`), 0o600))

	_, err := ReadFile(path)
	require.ErrorIs(t, err, ErrSyntax)
	assert.NotErrorIs(t, err, ErrRead)
}

func TestDecodeDeclaredEncoding(t *testing.T) {
	const tmpl = `<?xml version="1.0" encoding="%s"?>
<kml><Document><Placemark>
  <name>%s</name>
  <ExtendedData><Data name="fid"><value>7</value></Data></ExtendedData>
  <Polygon><outerBoundaryIs><LinearRing><coordinates>0,0 0,10 10,10 10,0</coordinates></LinearRing></outerBoundaryIs></Polygon>
</Placemark></Document></kml>`

	tests := []struct {
		name     string
		encoding string
		raw      string
		want     string
	}{
		// "Поле" in cp1251
		{"windows-1251", "windows-1251", "\xcf\xee\xeb\xe5", "Поле"},
		{"latin-1", "ISO-8859-1", "Champ \xe9t\xe9", "Champ été"},
		{"utf-8", "UTF-8", "Поле", "Поле"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := fmt.Sprintf(tmpl, tt.encoding, tt.raw)
			pms, err := Decode(strings.NewReader(doc))
			require.NoError(t, err)
			require.Len(t, pms, 1)

			assert.Equal(t, tt.want, pms[0].Title())
			fid, ok := pms[0].Attribute("fid")
			require.True(t, ok)
			assert.Equal(t, "7", fid)
			assert.Equal(t, geo.KindPolygon, pms[0].Kind())
		})
	}
}

func TestDecodeUnknownEncoding(t *testing.T) {
	doc := `<?xml version="1.0" encoding="x-no-such-charset"?><kml/>`
	_, err := Decode(strings.NewReader(doc))
	require.ErrorIs(t, err, ErrSyntax)
}
