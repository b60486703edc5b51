package jpeg2k

import (
	"bytes"
	"fmt"
	"strings"
)

// Format identifies the container a JPEG 2000 payload arrived in.
type Format int

const (
	// FormatJ2K is a bare codestream (.j2k/.j2c/.jpc), starting with the
	// SOC marker.
	FormatJ2K Format = iota
	// FormatJP2 is the JP2 box container (.jp2), starting with the
	// signature box.
	FormatJP2
)

func (f Format) String() string {
	switch f {
	case FormatJ2K:
		return "j2k"
	case FormatJP2:
		return "jp2"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// jp2Signature is the 12-byte JP2 signature box: length, "jP  ", <CR><LF>0x87<LF>.
var jp2Signature = []byte{0x00, 0x00, 0x00, 0x0C, 0x6A, 0x50, 0x20, 0x20, 0x0D, 0x0A, 0x87, 0x0A}

// socMarker starts every bare codestream, followed by the SIZ marker.
var socMarker = []byte{0xFF, 0x4F, 0xFF, 0x51}

// DetectFormat sniffs the payload format from its magic bytes. The file
// extension is never consulted.
func DetectFormat(data []byte) (Format, error) {
	if len(data) >= len(socMarker) && bytes.Equal(data[:len(socMarker)], socMarker) {
		return FormatJ2K, nil
	}
	if len(data) >= len(jp2Signature) && bytes.Equal(data[:len(jp2Signature)], jp2Signature) {
		return FormatJP2, nil
	}
	return 0, fmt.Errorf("%w: no JP2 signature or SOC marker", ErrInvalidCodestream)
}

// FormatFromExtension maps a file extension (with or without the leading
// dot) to the format it conventionally names. Decoding always trusts
// DetectFormat over this mapping; it exists for asset-pipeline callers
// that select loaders by extension.
func FormatFromExtension(ext string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "j2k", "j2c", "jpc":
		return FormatJ2K, nil
	case "jp2":
		return FormatJP2, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
}
