package postfx

import (
	"bytes"
	"image"
	"math"

	"golang.org/x/image/draw"
)

// PixelBuffer is a straight (non-premultiplied) 8-bit RGBA raster, stored
// row-major with its origin at (0,0). Stages rewrite Img.Pix in place.
type PixelBuffer struct {
	Img    *image.NRGBA
	Bounds image.Rectangle
}

func NewPixelBuffer(width, height int) *PixelBuffer {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	return &PixelBuffer{
		Img:    img,
		Bounds: img.Bounds(),
	}
}

// FromImage copies any decoded image into a new buffer, rebasing it to the origin.
func FromImage(src image.Image) *PixelBuffer {
	b := src.Bounds()
	p := NewPixelBuffer(b.Dx(), b.Dy())

	// straight alpha must survive untouched, even where alpha is zero
	if n, ok := src.(*image.NRGBA); ok {
		for y := 0; y < p.Height(); y++ {
			start := n.PixOffset(b.Min.X, b.Min.Y+y)
			copy(p.Img.Pix[y*p.Img.Stride:(y+1)*p.Img.Stride], n.Pix[start:start+p.Img.Stride])
		}
		return p
	}

	draw.Draw(p.Img, p.Bounds, src, b.Min, draw.Src)
	return p
}

func (p *PixelBuffer) Width() int  { return p.Bounds.Dx() }
func (p *PixelBuffer) Height() int { return p.Bounds.Dy() }

// Offset returns the index of the red channel of pixel (x, y) in Img.Pix.
func (p *PixelBuffer) Offset(x, y int) int {
	return y*p.Img.Stride + x*4
}

func (p *PixelBuffer) Clone() *PixelBuffer {
	c := NewPixelBuffer(p.Width(), p.Height())
	copy(c.Img.Pix, p.Img.Pix)
	return c
}

func (p *PixelBuffer) Equal(o *PixelBuffer) bool {
	return p.Bounds == o.Bounds && bytes.Equal(p.Img.Pix, o.Img.Pix)
}

// Normalize maps an 8-bit channel onto [0,1].
func Normalize(c uint8) float64 {
	return float64(c) / 255
}

// ToByte rounds and clamps a [0,255] channel value. NaN maps to 0.
func ToByte(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.Round(v))
}

// FromUnit converts a normalized channel back to 8 bits.
func FromUnit(v float64) uint8 {
	return ToByte(v * 255)
}
