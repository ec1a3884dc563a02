package stage

import (
	"github.com/rm-hull/render-postfx/internal/postfx"
)

func uniform(w, h int, r, g, b, a uint8) *postfx.PixelBuffer {
	p := postfx.NewPixelBuffer(w, h)
	for i := 0; i < len(p.Img.Pix); i += 4 {
		p.Img.Pix[i+0] = r
		p.Img.Pix[i+1] = g
		p.Img.Pix[i+2] = b
		p.Img.Pix[i+3] = a
	}
	return p
}

// gradient fills a buffer with distinct, varying channel values and alpha.
func gradient(w, h int) *postfx.PixelBuffer {
	p := postfx.NewPixelBuffer(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := p.Offset(x, y)
			p.Img.Pix[i+0] = uint8((x * 255) / max(1, w-1))
			p.Img.Pix[i+1] = uint8((y * 255) / max(1, h-1))
			p.Img.Pix[i+2] = uint8(((x + y) * 97) % 256)
			p.Img.Pix[i+3] = uint8(128 + (x*y)%128)
		}
	}
	return p
}

func alphas(p *postfx.PixelBuffer) []uint8 {
	out := make([]uint8, 0, len(p.Img.Pix)/4)
	for i := 3; i < len(p.Img.Pix); i += 4 {
		out = append(out, p.Img.Pix[i])
	}
	return out
}

type constantSource float64

func (c constantSource) Float64() float64 { return float64(c) }
