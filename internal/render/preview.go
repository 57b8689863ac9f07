// Package render rasterizes field boundaries into small preview images.
package render

import (
	"errors"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/woozymasta/fieldmap/internal/geo"

	"github.com/chai2010/webp"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

const (
	MinSize = 32
	MaxSize = 1024

	// fraction of the edge kept empty around the boundary
	padding = 0.08
)

// ErrDegenerate is returned for boundaries that enclose no area.
var ErrDegenerate = errors.New("render: boundary has no area")

var (
	background = color.RGBA{R: 0xf4, G: 0xf1, B: 0xe8, A: 0xff}
	fill       = color.RGBA{R: 0x3c, G: 0x8d, B: 0x2f, A: 0xff}
)

// ClampSize bounds a requested preview edge to [MinSize, MaxSize].
func ClampSize(size int) int {
	return min(max(size, MinSize), MaxSize)
}

// FieldPreview draws the boundary ring filled on a size×size canvas.
// Longitudes are scaled by the cosine of the mid latitude so shapes keep
// their proportions away from the equator.
func FieldPreview(ring []geo.Coordinate, size int) (*image.RGBA, error) {
	if len(ring) < 3 {
		return nil, ErrDegenerate
	}
	size = ClampSize(size)

	r := geo.Ring(ring)
	b := r.Bound()

	aspect := math.Cos(geo.DegreesToRadians((b.Min.Lat() + b.Max.Lat()) / 2))
	width := (b.Max.Lon() - b.Min.Lon()) * aspect
	height := b.Max.Lat() - b.Min.Lat()
	span := max(width, height)
	if span <= 0 || math.IsNaN(span) || math.IsInf(span, 0) {
		return nil, ErrDegenerate
	}

	edge := float64(size)
	pad := edge * padding
	scale := (edge - 2*pad) / span
	offX := pad + (edge-2*pad-width*scale)/2
	offY := pad + (edge-2*pad-height*scale)/2

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	xdraw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, xdraw.Src)

	z := vector.NewRasterizer(size, size)
	for i, p := range r {
		x := float32(offX + (p.Lon()-b.Min.Lon())*aspect*scale)
		y := float32(offY + (b.Max.Lat()-p.Lat())*scale)
		if i == 0 {
			z.MoveTo(x, y)
			continue
		}
		z.LineTo(x, y)
	}
	z.ClosePath()
	z.Draw(img, img.Bounds(), image.NewUniform(fill), image.Point{})

	return img, nil
}

// EncodeWebP writes img as a lossless WebP image.
func EncodeWebP(w io.Writer, img image.Image) error {
	return webp.Encode(w, img, &webp.Options{Lossless: true})
}
