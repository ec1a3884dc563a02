package postfx

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/mdouchement/hdr"
	"github.com/mdouchement/hdr/codec/rgbe"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const DefaultJPEGQuality = 92

// Decode reads an encoded raster into a new buffer. Radiance RGBE files are
// clamped into the 8-bit range; everything else goes via the image registry.
func Decode(r io.Reader) (*PixelBuffer, string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", InputError(fmt.Errorf("failed to read input: %w", err))
	}

	if isRadiance(data) {
		img, err := rgbe.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, "", InputError(fmt.Errorf("failed to decode RGBE image: %w", err))
		}
		if hdrImg, ok := img.(hdr.Image); ok {
			return fromHDR(hdrImg), "rgbe", nil
		}
		return FromImage(img), "rgbe", nil
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", InputError(fmt.Errorf("failed to decode image: %w", err))
	}
	return FromImage(img), format, nil
}

func isRadiance(data []byte) bool {
	return bytes.HasPrefix(data, []byte("#?RADIANCE")) || bytes.HasPrefix(data, []byte("#?RGBE"))
}

func fromHDR(img hdr.Image) *PixelBuffer {
	b := img.Bounds()
	p := NewPixelBuffer(b.Dx(), b.Dy())
	for y := 0; y < p.Height(); y++ {
		for x := 0; x < p.Width(); x++ {
			r, g, bl, _ := img.HDRAt(b.Min.X+x, b.Min.Y+y).HDRRGBA()
			i := p.Offset(x, y)
			p.Img.Pix[i+0] = FromUnit(r)
			p.Img.Pix[i+1] = FromUnit(g)
			p.Img.Pix[i+2] = FromUnit(bl)
			p.Img.Pix[i+3] = 255
		}
	}
	return p
}

// FormatFromPath picks an output container from a file extension.
func FormatFromPath(path string) (string, error) {
	return ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
}

// ParseFormat canonicalises an output container name.
func ParseFormat(name string) (string, error) {
	ext := strings.ToLower(name)
	switch ext {
	case "png":
		return "png", nil
	case "jpg", "jpeg":
		return "jpeg", nil
	case "tif", "tiff":
		return "tiff", nil
	case "bmp":
		return "bmp", nil
	}
	return "", fmt.Errorf("unsupported output format %q", ext)
}

func ContentType(format string) string {
	switch format {
	case "jpeg":
		return "image/jpeg"
	case "tiff":
		return "image/tiff"
	case "bmp":
		return "image/bmp"
	}
	return "image/png"
}

// Encode writes the buffer in the requested container. quality only applies to JPEG.
func Encode(w io.Writer, p *PixelBuffer, format string, quality int) error {
	if quality <= 0 {
		quality = DefaultJPEGQuality
	}

	var encoder imgio.Encoder
	switch format {
	case "png", "":
		encoder = imgio.PNGEncoder()
	case "jpeg", "jpg":
		encoder = imgio.JPEGEncoder(quality)
	case "bmp":
		encoder = imgio.BMPEncoder()
	case "tiff", "tif":
		return tiff.Encode(w, p.Img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
	return encoder(w, p.Img)
}
