package jpeg2k

import (
	"fmt"
	"image"
)

// ToImage converts the decoded image into a standard library image. Gray
// and RGBA layouts reuse the canonical buffer without copying; layouts
// the image package has no type for (gray+alpha, packed RGB) are
// expanded to NRGBA.
func (img *Image) ToImage() (image.Image, error) {
	buf, err := img.Pixels()
	if err != nil {
		return nil, err
	}
	return buf.ToImage()
}

// ToImage wraps the pixel buffer in an image.Image. The buffer is
// aliased where the layout allows, so the caller gives up ownership.
func (b *PixelBuffer) ToImage() (image.Image, error) {
	w, h := int(b.Width), int(b.Height)
	r := image.Rect(0, 0, w, h)
	switch b.Format {
	case PixelGray8:
		return &image.Gray{Pix: b.Pix, Stride: w, Rect: r}, nil

	case PixelRGBA8:
		return &image.NRGBA{Pix: b.Pix, Stride: 4 * w, Rect: r}, nil

	case PixelGrayAlpha8:
		out := image.NewNRGBA(r)
		for i := 0; i < w*h; i++ {
			g, a := b.Pix[2*i], b.Pix[2*i+1]
			out.Pix[4*i+0] = g
			out.Pix[4*i+1] = g
			out.Pix[4*i+2] = g
			out.Pix[4*i+3] = a
		}
		return out, nil

	case PixelRGB8:
		out := image.NewNRGBA(r)
		for i := 0; i < w*h; i++ {
			out.Pix[4*i+0] = b.Pix[3*i+0]
			out.Pix[4*i+1] = b.Pix[3*i+1]
			out.Pix[4*i+2] = b.Pix[3*i+2]
			out.Pix[4*i+3] = 0xFF
		}
		return out, nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedComponents, b.Format)
	}
}
