package jpeg2k

import "errors"

// Decode errors.
var (
	ErrInvalidCodestream  = errors.New("jpeg2k: invalid codestream")
	ErrInvalidHeader      = errors.New("jpeg2k: invalid header")
	ErrTruncatedData      = errors.New("jpeg2k: truncated data")
	ErrUnknownFormat      = errors.New("jpeg2k: unknown format")
	ErrDecodeFailed       = errors.New("jpeg2k: decode failed")
	ErrUnsupportedFeature = errors.New("jpeg2k: codestream uses an unsupported feature")
	ErrDecoderUnavailable = errors.New("jpeg2k: native decoder unavailable (built without the openjpeg tag)")
	ErrStrictMode         = errors.New("jpeg2k: decoder warning rejected in strict mode")
)

// Normalization errors.
var (
	ErrInvalidPrecision       = errors.New("jpeg2k: component precision out of range")
	ErrComponentSize          = errors.New("jpeg2k: component dimensions inconsistent")
	ErrComponentCountMismatch = errors.New("jpeg2k: component count does not match color space")
	ErrUnsupportedColorSpace  = errors.New("jpeg2k: unsupported color space")
	ErrUnsupportedComponents  = errors.New("jpeg2k: unsupported component layout")
)

// Handle misuse errors.
var (
	ErrImageReleased  = errors.New("jpeg2k: image already released")
	ErrComponentIndex = errors.New("jpeg2k: component index out of range")
)
