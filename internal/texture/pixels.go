package texture

import (
	"fmt"
	"image"
	"io"

	"github.com/HugoSmits86/nativewebp"

	"nifgraph/internal/nif"
)

// DecodePixelData converts mip level mip of an embedded image to NRGBA.
// Compressed formats are not decoded.
func DecodePixelData(d *nif.NiPixelData, mip int) (*image.NRGBA, error) {
	if mip < 0 || mip >= len(d.Mipmaps) {
		return nil, fmt.Errorf("texture: %s: mip level %d of %d", d.TypeName(), mip, len(d.Mipmaps))
	}
	m := d.Mipmaps[mip]
	w, h := int(m.Width), int(m.Height)

	var bpp int
	switch d.Format {
	case nif.PixelRGB8, nif.PixelBGR8:
		bpp = 3
	case nif.PixelRGBA8, nif.PixelBGRA8:
		bpp = 4
	case nif.PixelPAL8, nif.PixelPALA8:
		bpp = 1
	default:
		return nil, fmt.Errorf("%w: pixel format %d", ErrUnsupportedFormat, d.Format)
	}

	start := int(m.Offset)
	// dimensions are checked against the data before multiplying so a
	// corrupt header can't overflow the size
	if w <= 0 || h <= 0 || start < 0 || start > len(d.Data) ||
		w > (len(d.Data)-start)/h/bpp {
		return nil, fmt.Errorf("texture: %s: mip %d (%dx%d at %d) exceeds %d bytes of pixel data",
			d.TypeName(), mip, w, h, start, len(d.Data))
	}
	end := start + w*h*bpp
	src := d.Data[start:end]

	var palette []uint32
	if bpp == 1 {
		if !d.Palette.Resolved() {
			return nil, fmt.Errorf("texture: %s: palettized image without palette", d.TypeName())
		}
		palette = d.Palette.Get().Colors
	}

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < w*h; i++ {
		p := img.Pix[i*4 : i*4+4]
		s := src[i*bpp : i*bpp+bpp]
		switch d.Format {
		case nif.PixelRGB8:
			p[0], p[1], p[2], p[3] = s[0], s[1], s[2], 0xFF
		case nif.PixelBGR8:
			p[0], p[1], p[2], p[3] = s[2], s[1], s[0], 0xFF
		case nif.PixelRGBA8:
			copy(p, s)
		case nif.PixelBGRA8:
			p[0], p[1], p[2], p[3] = s[2], s[1], s[0], s[3]
		default:
			if int(s[0]) >= len(palette) {
				return nil, fmt.Errorf("texture: %s: palette index %d of %d", d.TypeName(), s[0], len(palette))
			}
			c := palette[s[0]]
			p[0], p[1], p[2], p[3] = byte(c), byte(c>>8), byte(c>>16), byte(c>>24)
		}
	}
	return img, nil
}

// EncodeWebP writes img as a lossless WebP image.
func EncodeWebP(w io.Writer, img image.Image) error {
	if err := nativewebp.Encode(w, img, nil); err != nil {
		return fmt.Errorf("texture: WebP encode: %w", err)
	}
	return nil
}
