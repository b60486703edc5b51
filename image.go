package jpeg2k

import "fmt"

// ColorSpace is the color encoding reported by the decoder. It is taken
// from decoder metadata, never inferred from the component count alone.
type ColorSpace int

const (
	ColorSpaceUnknown ColorSpace = iota
	ColorSpaceUnspecified
	ColorSpaceSRGB
	ColorSpaceGray
	ColorSpaceSYCC
	ColorSpaceEYCC
	ColorSpaceCMYK
)

func (cs ColorSpace) String() string {
	switch cs {
	case ColorSpaceUnknown:
		return "unknown"
	case ColorSpaceUnspecified:
		return "unspecified"
	case ColorSpaceSRGB:
		return "sRGB"
	case ColorSpaceGray:
		return "gray"
	case ColorSpaceSYCC:
		return "sYCC"
	case ColorSpaceEYCC:
		return "eYCC"
	case ColorSpaceCMYK:
		return "CMYK"
	default:
		return fmt.Sprintf("ColorSpace(%d)", int(cs))
	}
}

// Component is one decoded color or alpha plane. Data is row-major with
// len(Data) == Width*Height; samples are stored as int32 regardless of
// the encoded precision (1-16 bits, signed or unsigned).
type Component struct {
	Width     uint32
	Height    uint32
	Precision uint8
	Signed    bool
	// Alpha marks this plane as an alpha channel. It comes from decoder
	// metadata (the JP2 channel definition box), not from the plane's
	// position.
	Alpha bool
	Data  []int32
}

// Image is an exclusively owned decoded image. The component planes may
// alias decoder-allocated memory; they stay valid until Close, which
// releases the native resource exactly once. An Image must not be copied
// or shared across goroutines while in use.
type Image struct {
	width      uint32
	height     uint32
	colorSpace ColorSpace
	comps      []Component
	threads    int
	release    func()
	released   bool
}

// newImage wraps decoder output in an owned handle. release frees the
// native allocation backing the component data; it may be nil when the
// planes are Go-owned.
func newImage(width, height uint32, cs ColorSpace, comps []Component, threads int, release func()) *Image {
	return &Image{
		width:      width,
		height:     height,
		colorSpace: cs,
		comps:      comps,
		threads:    threads,
		release:    release,
	}
}

// Close releases the native decoder allocation backing the image. It is
// idempotent; only the first call releases. After Close, component
// accessors fail with ErrImageReleased and no stale plane data is
// reachable.
func (img *Image) Close() error {
	if img.released {
		return nil
	}
	img.released = true
	img.comps = nil
	if img.release != nil {
		img.release()
		img.release = nil
	}
	return nil
}

// Width returns the decoded image width (reduced by the resolution
// reduction factor, if any). Zero after Close.
func (img *Image) Width() uint32 {
	if img.released {
		return 0
	}
	return img.width
}

// Height returns the decoded image height. Zero after Close.
func (img *Image) Height() uint32 {
	if img.released {
		return 0
	}
	return img.height
}

// ColorSpace returns the decoder-reported color space.
func (img *Image) ColorSpace() ColorSpace {
	if img.released {
		return ColorSpaceUnknown
	}
	return img.colorSpace
}

// NumComponents returns the number of decoded planes. Zero after Close.
func (img *Image) NumComponents() int {
	return len(img.comps)
}

// Component returns the i-th decoded plane.
func (img *Image) Component(i int) (*Component, error) {
	if img.released {
		return nil, ErrImageReleased
	}
	if i < 0 || i >= len(img.comps) {
		return nil, fmt.Errorf("%w: %d of %d", ErrComponentIndex, i, len(img.comps))
	}
	return &img.comps[i], nil
}

// Components returns all decoded planes in codestream order.
func (img *Image) Components() ([]*Component, error) {
	if img.released {
		return nil, ErrImageReleased
	}
	out := make([]*Component, len(img.comps))
	for i := range img.comps {
		out[i] = &img.comps[i]
	}
	return out, nil
}
