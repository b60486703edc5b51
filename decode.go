package jpeg2k

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
)

// DecodeBytes decodes a JPEG 2000 codestream or JP2 container held in
// memory. The format is detected from the magic bytes, never from a
// file extension. The caller owns the returned image and must Close it.
//
// Each call builds its own decoder state, so DecodeBytes is safe to
// call concurrently.
func DecodeBytes(data []byte, opts *DecodeOptions) (*Image, error) {
	o := opts.sanitized()
	format, err := DetectFormat(data)
	if err != nil {
		return nil, err
	}
	// Strict mode validates the main header up front, so malformed
	// geometry fails with a typed error instead of a decoder message.
	if o.Strict {
		if _, err := ReadHeader(data); err != nil {
			return nil, err
		}
	}
	return nativeDecode(data, format, o)
}

// DecodeFile reads path to completion and decodes it. This is the only
// blocking I/O in the package: a single synchronous read, no streaming.
func DecodeFile(path string, opts *DecodeOptions) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("jpeg2k: read %s: %w", path, err)
	}
	return DecodeBytes(data, opts)
}

// Decode reads a JPEG 2000 image from r and returns it as a standard
// library image.
func Decode(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	img, err := DecodeBytes(data, nil)
	if err != nil {
		return nil, err
	}
	defer img.Close()
	return img.ToImage()
}

// DecodeConfig returns the image configuration without decoding pixel
// data. Header parsing is pure Go and works without the native decoder.
func DecodeConfig(r io.Reader) (image.Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return image.Config{}, err
	}
	h, err := ReadHeader(data)
	if err != nil {
		return image.Config{}, err
	}
	model := color.Model(color.NRGBAModel)
	if len(h.Components) == 1 {
		model = color.GrayModel
	}
	// Component 0's dimensions account for subsampling.
	return image.Config{
		Width:      int(h.ComponentWidth(0)),
		Height:     int(h.ComponentHeight(0)),
		ColorModel: model,
	}, nil
}

// Register formats with the image package.
func init() {
	// JP2 container (starts with the signature box).
	image.RegisterFormat("jp2",
		"\x00\x00\x00\x0cjP  \x0d\x0a\x87\x0a",
		Decode, DecodeConfig)

	// Bare codestream (starts with the SOC marker).
	image.RegisterFormat("j2k", "\xff\x4f\xff\x51",
		Decode, DecodeConfig)
}
