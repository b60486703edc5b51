//go:build !openjpeg || !cgo

package jpeg2k

// nativeDecode without the openjpeg build tag: header parsing and pixel
// assembly still work, decoding does not.
func nativeDecode(data []byte, format Format, opts DecodeOptions) (*Image, error) {
	return nil, ErrDecoderUnavailable
}
