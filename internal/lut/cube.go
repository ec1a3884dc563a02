package lut

import (
	"errors"
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

const (
	MinSize = 2
	MaxSize = 256
)

// Cube is a 3D colour lookup table of Size^3 entries, indexed with red
// varying fastest, then green, then blue.
type Cube struct {
	Title     string
	Size      int
	DomainMin [3]float64
	DomainMax [3]float64
	Table     []colorful.Color
}

// New fills a cube of the given size by evaluating f at every grid point.
func New(size int, f func(c colorful.Color) colorful.Color) (*Cube, error) {
	if size < MinSize || size > MaxSize {
		return nil, fmt.Errorf("cube size %d out of range [%d,%d]", size, MinSize, MaxSize)
	}

	c := &Cube{
		Size:      size,
		DomainMax: [3]float64{1, 1, 1},
		Table:     make([]colorful.Color, size*size*size),
	}
	step := 1 / float64(size-1)
	for b := 0; b < size; b++ {
		for g := 0; g < size; g++ {
			for r := 0; r < size; r++ {
				in := colorful.Color{R: float64(r) * step, G: float64(g) * step, B: float64(b) * step}
				c.Table[c.index(r, g, b)] = f(in)
			}
		}
	}
	return c, nil
}

func Identity(size int) *Cube {
	c, _ := New(size, func(c colorful.Color) colorful.Color { return c })
	return c
}

func (c *Cube) index(r, g, b int) int {
	return r + g*c.Size + b*c.Size*c.Size
}

func (c *Cube) At(r, g, b int) colorful.Color {
	return c.Table[c.index(r, g, b)]
}

func (c *Cube) Validate() error {
	if c == nil {
		return errors.New("no lookup table")
	}
	if c.Size < MinSize || c.Size > MaxSize {
		return fmt.Errorf("cube size %d out of range [%d,%d]", c.Size, MinSize, MaxSize)
	}
	if want := c.Size * c.Size * c.Size; len(c.Table) != want {
		return fmt.Errorf("cube of size %d needs %d entries, has %d", c.Size, want, len(c.Table))
	}
	for i := range 3 {
		if !(c.DomainMax[i] > c.DomainMin[i]) {
			return fmt.Errorf("domain max %v must exceed domain min %v", c.DomainMax, c.DomainMin)
		}
	}
	return nil
}

// Sample trilinearly interpolates the table at an input colour expressed in
// the cube's domain (normally [0,1] per channel). Out-of-domain inputs clamp.
func (c *Cube) Sample(r, g, b float64) (float64, float64, float64) {
	r0, r1, fr := c.cell(r, 0)
	g0, g1, fg := c.cell(g, 1)
	b0, b1, fb := c.cell(b, 2)

	lerp := func(a, b colorful.Color, t float64) colorful.Color {
		return colorful.Color{
			R: a.R + (b.R-a.R)*t,
			G: a.G + (b.G-a.G)*t,
			B: a.B + (b.B-a.B)*t,
		}
	}

	c00 := lerp(c.At(r0, g0, b0), c.At(r1, g0, b0), fr)
	c10 := lerp(c.At(r0, g1, b0), c.At(r1, g1, b0), fr)
	c01 := lerp(c.At(r0, g0, b1), c.At(r1, g0, b1), fr)
	c11 := lerp(c.At(r0, g1, b1), c.At(r1, g1, b1), fr)

	out := lerp(lerp(c00, c10, fg), lerp(c01, c11, fg), fb)
	return out.R, out.G, out.B
}

func (c *Cube) cell(v float64, axis int) (int, int, float64) {
	t := (v - c.DomainMin[axis]) / (c.DomainMax[axis] - c.DomainMin[axis])
	if math.IsNaN(t) || t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	pos := t * float64(c.Size-1)
	i0 := int(math.Floor(pos))
	if i0 >= c.Size-1 {
		return c.Size - 1, c.Size - 1, 0
	}
	return i0, i0 + 1, pos - float64(i0)
}
