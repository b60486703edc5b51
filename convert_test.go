package jpeg2k

import (
	"image"
	"testing"
)

func TestPixelBufferToImage(t *testing.T) {
	t.Run("gray aliases the buffer", func(t *testing.T) {
		buf := &PixelBuffer{Width: 2, Height: 1, Format: PixelGray8, Pix: []byte{10, 20}}
		m, err := buf.ToImage()
		if err != nil {
			t.Fatalf("ToImage() error = %v", err)
		}
		gray, ok := m.(*image.Gray)
		if !ok {
			t.Fatalf("ToImage() returned %T, want *image.Gray", m)
		}
		if &gray.Pix[0] != &buf.Pix[0] {
			t.Error("gray image copies the buffer instead of aliasing it")
		}
		if got := gray.GrayAt(1, 0).Y; got != 20 {
			t.Errorf("GrayAt(1,0) = %d, want 20", got)
		}
	})

	t.Run("rgba aliases the buffer", func(t *testing.T) {
		buf := &PixelBuffer{Width: 1, Height: 1, Format: PixelRGBA8, Pix: []byte{1, 2, 3, 200}}
		m, err := buf.ToImage()
		if err != nil {
			t.Fatalf("ToImage() error = %v", err)
		}
		nrgba, ok := m.(*image.NRGBA)
		if !ok {
			t.Fatalf("ToImage() returned %T, want *image.NRGBA", m)
		}
		if &nrgba.Pix[0] != &buf.Pix[0] {
			t.Error("NRGBA image copies the buffer instead of aliasing it")
		}
	})

	t.Run("gray-alpha expands to nrgba", func(t *testing.T) {
		buf := &PixelBuffer{Width: 2, Height: 1, Format: PixelGrayAlpha8, Pix: []byte{50, 255, 60, 0}}
		m, err := buf.ToImage()
		if err != nil {
			t.Fatalf("ToImage() error = %v", err)
		}
		nrgba := m.(*image.NRGBA)
		want := []byte{50, 50, 50, 255, 60, 60, 60, 0}
		for i, b := range want {
			if nrgba.Pix[i] != b {
				t.Fatalf("Pix[%d] = %d, want %d", i, nrgba.Pix[i], b)
			}
		}
	})

	t.Run("rgb expands with opaque alpha", func(t *testing.T) {
		buf := &PixelBuffer{Width: 1, Height: 2, Format: PixelRGB8, Pix: []byte{1, 2, 3, 4, 5, 6}}
		m, err := buf.ToImage()
		if err != nil {
			t.Fatalf("ToImage() error = %v", err)
		}
		nrgba := m.(*image.NRGBA)
		want := []byte{1, 2, 3, 255, 4, 5, 6, 255}
		for i, b := range want {
			if nrgba.Pix[i] != b {
				t.Fatalf("Pix[%d] = %d, want %d", i, nrgba.Pix[i], b)
			}
		}
	})
}

func TestImageToImage(t *testing.T) {
	img := testImage(ColorSpaceGray, 2, 2, 0, grayPlane(2, 2, 0, 85, 170, 255))
	defer img.Close()

	m, err := img.ToImage()
	if err != nil {
		t.Fatalf("ToImage() error = %v", err)
	}
	bounds := m.Bounds()
	if bounds.Dx() != 2 || bounds.Dy() != 2 {
		t.Fatalf("bounds = %v, want 2x2", bounds)
	}
	gray, ok := m.(*image.Gray)
	if !ok {
		t.Fatalf("ToImage() returned %T, want *image.Gray", m)
	}
	if gray.GrayAt(1, 1).Y != 255 {
		t.Errorf("GrayAt(1,1) = %d, want 255", gray.GrayAt(1, 1).Y)
	}
}
