// Package jpeg2k loads JPEG 2000 images through the OpenJPEG native
// decoder and exposes them as a canonical interleaved pixel buffer.
//
// The package does not implement wavelet or entropy decoding itself; it
// owns the decoded component planes produced by libopenjp2, validates
// their shapes, normalizes arbitrary bit depths and sign conventions to
// 8-bit samples, and assembles Gray/GrayAlpha/RGB/RGBA output that
// standard image consumers understand.
//
// Decoding:
//
//	img, err := jpeg2k.DecodeFile("example.jp2", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer img.Close()
//
//	buf, err := img.Pixels()
//
// The native decoder is bound with the "openjpeg" build tag and requires
// cgo plus libopenjp2. Without it, decode entry points return
// ErrDecoderUnavailable; header parsing and pixel assembly remain
// available.
//
// The package registers itself with the image package for automatic
// format detection:
//
//	import _ "github.com/ajroetker/go-jpeg2k"
//	cfg, _, err := image.DecodeConfig(reader)
package jpeg2k
