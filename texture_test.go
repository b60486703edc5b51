package jpeg2k

import (
	"bytes"
	"errors"
	"testing"
)

func TestTextureExtensions(t *testing.T) {
	exts := TextureExtensions()
	if len(exts) != 4 {
		t.Fatalf("TextureExtensions() returned %d entries, want 4", len(exts))
	}
	for _, ext := range exts {
		if _, err := FormatFromExtension(ext); err != nil {
			t.Errorf("advertised extension %q is not loadable: %v", ext, err)
		}
	}
}

func TestLoadTextureRejectsExtension(t *testing.T) {
	data := buildCodestreamHeader(8, 8, 0, 0, sizComponent{prec: 8, dx: 1, dy: 1})
	if _, err := LoadTexture(data, "png", nil); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("LoadTexture() error = %v, want ErrUnknownFormat", err)
	}
}

func TestTextureFromImage(t *testing.T) {
	t.Run("gray stays r8", func(t *testing.T) {
		img := testImage(ColorSpaceGray, 2, 1, 0, grayPlane(2, 1, 10, 250))
		defer img.Close()

		tex, err := textureFromImage(img)
		if err != nil {
			t.Fatalf("textureFromImage() error = %v", err)
		}
		if tex.Format != TextureR8 {
			t.Fatalf("Format = %v, want r8", tex.Format)
		}
		if !bytes.Equal(tex.Data, []byte{10, 250}) {
			t.Errorf("Data = %v, want [10 250]", tex.Data)
		}
	})

	t.Run("gray-alpha expands to rgba8", func(t *testing.T) {
		alpha := grayPlane(1, 1, 99)
		alpha.Alpha = true
		img := testImage(ColorSpaceGray, 1, 1, 0, grayPlane(1, 1, 33), alpha)
		defer img.Close()

		tex, err := textureFromImage(img)
		if err != nil {
			t.Fatalf("textureFromImage() error = %v", err)
		}
		if tex.Format != TextureRGBA8 {
			t.Fatalf("Format = %v, want rgba8", tex.Format)
		}
		if !bytes.Equal(tex.Data, []byte{33, 33, 33, 99}) {
			t.Errorf("Data = %v, want [33 33 33 99]", tex.Data)
		}
	})

	t.Run("rgb expands with opaque alpha", func(t *testing.T) {
		img := testImage(ColorSpaceSRGB, 1, 1, 0,
			grayPlane(1, 1, 1), grayPlane(1, 1, 2), grayPlane(1, 1, 3))
		defer img.Close()

		tex, err := textureFromImage(img)
		if err != nil {
			t.Fatalf("textureFromImage() error = %v", err)
		}
		if tex.Format != TextureRGBA8 {
			t.Fatalf("Format = %v, want rgba8", tex.Format)
		}
		if !bytes.Equal(tex.Data, []byte{1, 2, 3, 255}) {
			t.Errorf("Data = %v, want [1 2 3 255]", tex.Data)
		}
	})

	t.Run("rgba passes through", func(t *testing.T) {
		alpha := grayPlane(1, 1, 40)
		alpha.Alpha = true
		img := testImage(ColorSpaceSRGB, 1, 1, 0,
			grayPlane(1, 1, 4), grayPlane(1, 1, 5), grayPlane(1, 1, 6), alpha)
		defer img.Close()

		tex, err := textureFromImage(img)
		if err != nil {
			t.Fatalf("textureFromImage() error = %v", err)
		}
		if tex.Format != TextureRGBA8 {
			t.Fatalf("Format = %v, want rgba8", tex.Format)
		}
		if !bytes.Equal(tex.Data, []byte{4, 5, 6, 40}) {
			t.Errorf("Data = %v, want [4 5 6 40]", tex.Data)
		}
	})
}

func TestTextureFormatChannels(t *testing.T) {
	if got := TextureR8.Channels(); got != 1 {
		t.Errorf("TextureR8.Channels() = %d, want 1", got)
	}
	if got := TextureRGBA8.Channels(); got != 4 {
		t.Errorf("TextureRGBA8.Channels() = %d, want 4", got)
	}
}
