package postfx

import (
	"golang.org/x/image/draw"
)

// Resize downscales the buffer with Catmull-Rom resampling so that its width is
// at most maxWidth, keeping the aspect ratio. It never upscales.
func Resize(p *PixelBuffer, maxWidth int) *PixelBuffer {
	if maxWidth <= 0 || p.Width() <= maxWidth {
		return p
	}

	height := max(1, p.Height()*maxWidth/p.Width())
	out := NewPixelBuffer(maxWidth, height)
	draw.CatmullRom.Scale(out.Img, out.Bounds, p.Img, p.Bounds, draw.Src, nil)
	return out
}
