package jpeg2k

import "fmt"

// TextureFormat is the GPU-friendly layout of a loaded texture.
type TextureFormat int

const (
	// TextureR8 is a single 8-bit channel per texel.
	TextureR8 TextureFormat = iota
	// TextureRGBA8 is four interleaved 8-bit channels per texel.
	TextureRGBA8
)

func (f TextureFormat) String() string {
	switch f {
	case TextureR8:
		return "r8"
	case TextureRGBA8:
		return "rgba8"
	default:
		return fmt.Sprintf("TextureFormat(%d)", int(f))
	}
}

// Channels returns the number of bytes per texel.
func (f TextureFormat) Channels() int {
	if f == TextureRGBA8 {
		return 4
	}
	return 1
}

// Texture is a decoded image repacked for GPU upload: tightly packed
// rows, 8 bits per channel, R8 for single-channel images and RGBA8 for
// everything else.
type Texture struct {
	Width  uint32
	Height uint32
	Format TextureFormat
	Data   []byte
}

// TextureExtensions returns the file extensions the texture loader
// accepts, without leading dots.
func TextureExtensions() []string {
	return []string{"j2k", "jp2", "j2c", "jpc"}
}

// LoadTexture decodes an asset payload into a texture. ext is the asset
// extension used by the pipeline to route to this loader; it is
// validated against the supported set but the payload format itself is
// detected from magic bytes. The decoded image is released before
// returning.
func LoadTexture(data []byte, ext string, opts *DecodeOptions) (*Texture, error) {
	if _, err := FormatFromExtension(ext); err != nil {
		return nil, err
	}
	img, err := DecodeBytes(data, opts)
	if err != nil {
		return nil, err
	}
	defer img.Close()
	return textureFromImage(img)
}

// textureFromImage assembles the canonical pixel buffer and repacks it
// for upload. Gray input stays single-channel; gray+alpha and RGB are
// expanded so the GPU sees a uniform RGBA8 layout.
func textureFromImage(img *Image) (*Texture, error) {
	buf, err := img.Pixels()
	if err != nil {
		return nil, err
	}
	t := &Texture{Width: buf.Width, Height: buf.Height}

	n := int(buf.Width) * int(buf.Height)
	switch buf.Format {
	case PixelGray8:
		t.Format = TextureR8
		t.Data = buf.Pix

	case PixelRGBA8:
		t.Format = TextureRGBA8
		t.Data = buf.Pix

	case PixelGrayAlpha8:
		t.Format = TextureRGBA8
		t.Data = make([]byte, 4*n)
		for i := 0; i < n; i++ {
			g, a := buf.Pix[2*i], buf.Pix[2*i+1]
			t.Data[4*i+0] = g
			t.Data[4*i+1] = g
			t.Data[4*i+2] = g
			t.Data[4*i+3] = a
		}

	case PixelRGB8:
		t.Format = TextureRGBA8
		t.Data = make([]byte, 4*n)
		for i := 0; i < n; i++ {
			t.Data[4*i+0] = buf.Pix[3*i+0]
			t.Data[4*i+1] = buf.Pix[3*i+1]
			t.Data[4*i+2] = buf.Pix[3*i+2]
			t.Data[4*i+3] = 0xFF
		}

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedComponents, buf.Format)
	}
	return t, nil
}
