//go:build !openjpeg || !cgo

package jpeg2k

import (
	"errors"
	"testing"
)

// Without the native backend, well-formed payloads still fail cleanly
// at the decode step while header parsing keeps working.
func TestDecodeBytesWithoutBackend(t *testing.T) {
	data := buildCodestreamHeader(8, 8, 0, 0, sizComponent{prec: 8, dx: 1, dy: 1})

	if _, err := DecodeBytes(data, nil); !errors.Is(err, ErrDecoderUnavailable) {
		t.Errorf("DecodeBytes() error = %v, want ErrDecoderUnavailable", err)
	}
	if _, err := ReadHeader(data); err != nil {
		t.Errorf("ReadHeader() error = %v, want nil", err)
	}
}

func TestLoadTextureWithoutBackend(t *testing.T) {
	data := buildCodestreamHeader(8, 8, 0, 0, sizComponent{prec: 8, dx: 1, dy: 1})

	if _, err := LoadTexture(data, "j2k", nil); !errors.Is(err, ErrDecoderUnavailable) {
		t.Errorf("LoadTexture() error = %v, want ErrDecoderUnavailable", err)
	}
}
