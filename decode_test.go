package jpeg2k

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"io/fs"
	"path/filepath"
	"testing"
)

func TestDecodeBytesRejectsGarbage(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "text", data: []byte("definitely not jpeg 2000")},
		{name: "jpeg magic", data: []byte{0xFF, 0xD8, 0xFF, 0xE0, 0, 0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := DecodeBytes(tt.data, nil)
			if !errors.Is(err, ErrInvalidCodestream) {
				t.Errorf("DecodeBytes() error = %v, want ErrInvalidCodestream", err)
			}
			if img != nil {
				t.Error("DecodeBytes() returned an image alongside an error")
			}
		})
	}
}

func TestDecodeFileMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.jp2")
	if _, err := DecodeFile(path, nil); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("DecodeFile() error = %v, want fs.ErrNotExist", err)
	}
}

func TestDecodeConfigGray(t *testing.T) {
	data := buildCodestreamHeader(320, 200, 0, 0,
		sizComponent{prec: 8, dx: 1, dy: 1})

	cfg, err := DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("DecodeConfig() error = %v", err)
	}
	if cfg.Width != 320 || cfg.Height != 200 {
		t.Errorf("config = %dx%d, want 320x200", cfg.Width, cfg.Height)
	}
	if cfg.ColorModel != color.GrayModel {
		t.Errorf("ColorModel = %v, want GrayModel", cfg.ColorModel)
	}
}

func TestDecodeConfigJP2(t *testing.T) {
	cs := buildCodestreamHeader(64, 48, 0, 0,
		sizComponent{prec: 8, dx: 1, dy: 1},
		sizComponent{prec: 8, dx: 1, dy: 1},
		sizComponent{prec: 8, dx: 1, dy: 1})
	data := buildJP2(cs, 64, 48, 3, jp2Options{enumCS: jp2EnumSRGB})

	cfg, err := DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("DecodeConfig() error = %v", err)
	}
	if cfg.Width != 64 || cfg.Height != 48 {
		t.Errorf("config = %dx%d, want 64x48", cfg.Width, cfg.Height)
	}
	if cfg.ColorModel != color.NRGBAModel {
		t.Errorf("ColorModel = %v, want NRGBAModel", cfg.ColorModel)
	}
}

// The registered magics route stdlib image.DecodeConfig to this package.
func TestRegisteredFormats(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{
			name: "bare codestream",
			data: buildCodestreamHeader(10, 10, 0, 0, sizComponent{prec: 8, dx: 1, dy: 1}),
			want: "j2k",
		},
		{
			name: "jp2 container",
			data: buildJP2(
				buildCodestreamHeader(10, 10, 0, 0, sizComponent{prec: 8, dx: 1, dy: 1}),
				10, 10, 1, jp2Options{enumCS: jp2EnumGray}),
			want: "jp2",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, name, err := image.DecodeConfig(bytes.NewReader(tt.data))
			if err != nil {
				t.Fatalf("image.DecodeConfig() error = %v", err)
			}
			if name != tt.want {
				t.Errorf("format name = %q, want %q", name, tt.want)
			}
			if cfg.Width != 10 || cfg.Height != 10 {
				t.Errorf("config = %dx%d, want 10x10", cfg.Width, cfg.Height)
			}
		})
	}
}

func TestDecodeOptionsSanitized(t *testing.T) {
	tests := []struct {
		name string
		in   *DecodeOptions
		want DecodeOptions
	}{
		{name: "nil defaults", in: nil, want: DecodeOptions{}},
		{name: "negatives clamp", in: &DecodeOptions{Reduce: -1, NumThreads: -4}, want: DecodeOptions{}},
		{
			name: "values pass through",
			in:   &DecodeOptions{Reduce: 2, Strict: true, NumThreads: 3},
			want: DecodeOptions{Reduce: 2, Strict: true, NumThreads: 3},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.sanitized(); got != tt.want {
				t.Errorf("sanitized() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
