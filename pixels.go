package jpeg2k

import (
	"fmt"
	"runtime"
	"sync"
)

// PixelFormat is the channel layout of a canonical pixel buffer.
type PixelFormat int

const (
	PixelGray8 PixelFormat = iota
	PixelGrayAlpha8
	PixelRGB8
	PixelRGBA8
)

// Channels returns the number of interleaved channels per pixel.
func (f PixelFormat) Channels() int {
	switch f {
	case PixelGray8:
		return 1
	case PixelGrayAlpha8:
		return 2
	case PixelRGB8:
		return 3
	case PixelRGBA8:
		return 4
	default:
		return 0
	}
}

func (f PixelFormat) String() string {
	switch f {
	case PixelGray8:
		return "gray8"
	case PixelGrayAlpha8:
		return "gray-alpha8"
	case PixelRGB8:
		return "rgb8"
	case PixelRGBA8:
		return "rgba8"
	default:
		return fmt.Sprintf("PixelFormat(%d)", int(f))
	}
}

// PixelBuffer is the canonical normalized output: one contiguous
// interleaved 8-bit buffer with len(Pix) == Width*Height*Channels.
// It is produced once and owned by the receiver; the library never
// mutates it afterwards.
type PixelBuffer struct {
	Width  uint32
	Height uint32
	Format PixelFormat
	Pix    []byte
}

// Pixels normalizes and interleaves the image components into a
// canonical pixel buffer. The channel layout is determined by the color
// space and the presence of an alpha component.
func (img *Image) Pixels() (*PixelBuffer, error) {
	return img.pixels(nil)
}

// PixelsWithAlpha is like Pixels but synthesizes an alpha channel filled
// with alphaDefault when the image has no alpha component, so gray input
// yields GrayAlpha8 and RGB input yields RGBA8.
func (img *Image) PixelsWithAlpha(alphaDefault uint8) (*PixelBuffer, error) {
	return img.pixels(&alphaDefault)
}

func (img *Image) pixels(alphaDefault *uint8) (*PixelBuffer, error) {
	if img.released {
		return nil, ErrImageReleased
	}
	color, alpha, err := img.splitRoles()
	if err != nil {
		return nil, err
	}
	w, h := int(img.width), int(img.height)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: image is %dx%d", ErrComponentSize, w, h)
	}

	planes, err := img.normalizePlanes(color, alpha, w, h)
	if err != nil {
		return nil, err
	}
	var alphaPlane []uint8
	if alpha != nil {
		alphaPlane = planes[len(planes)-1]
		planes = planes[:len(planes)-1]
	}

	// sYCC carries Y'CbCr in the three color components; everything else
	// passes through. The alpha plane is never color-transformed.
	if img.colorSpace == ColorSpaceSYCC {
		planes[0], planes[1], planes[2] = applySYCC(planes[0], planes[1], planes[2], w, h)
	}

	hasAlpha := alpha != nil || alphaDefault != nil
	var format PixelFormat
	switch {
	case len(planes) == 1 && !hasAlpha:
		format = PixelGray8
	case len(planes) == 1:
		format = PixelGrayAlpha8
	case !hasAlpha:
		format = PixelRGB8
	default:
		format = PixelRGBA8
	}

	stride := format.Channels()
	pix := make([]byte, w*h*stride)
	alphaConst := uint8(0xFF)
	if alphaDefault != nil {
		alphaConst = *alphaDefault
	}
	out := planes
	if alphaPlane != nil {
		out = append(out, alphaPlane)
	}

	fill := func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			base := y * w
			off := base * stride
			for x := 0; x < w; x++ {
				i := base + x
				for p := range out {
					pix[off+p] = out[p][i]
				}
				if hasAlpha && alphaPlane == nil {
					pix[off+stride-1] = alphaConst
				}
				off += stride
			}
		}
	}

	// Row ranges go to independent workers when there is more than one
	// color component. Each worker owns a disjoint slice of the output,
	// so the only synchronization is the join; the result is
	// byte-identical to the sequential pass.
	workers := img.workerCount()
	if len(color) > 1 && workers > 1 {
		if workers > h {
			workers = h
		}
		chunk := (h + workers - 1) / workers
		var wg sync.WaitGroup
		for y0 := 0; y0 < h; y0 += chunk {
			y1 := min(y0+chunk, h)
			wg.Add(1)
			go func(y0, y1 int) {
				defer wg.Done()
				fill(y0, y1)
			}(y0, y1)
		}
		wg.Wait()
	} else {
		fill(0, h)
	}

	return &PixelBuffer{
		Width:  uint32(w),
		Height: uint32(h),
		Format: format,
		Pix:    pix,
	}, nil
}

// splitRoles assigns each component a color or alpha role. The alpha
// role comes from decoder metadata; as a concession to streams whose
// writers never set the flag, a trailing component in an unflagged
// 2- or 4-component image is treated as alpha, matching OpenJPEG
// consumers.
func (img *Image) splitRoles() (color []*Component, alpha *Component, err error) {
	if len(img.comps) == 0 {
		return nil, nil, fmt.Errorf("%w: image has no components", ErrComponentCountMismatch)
	}
	for i := range img.comps {
		c := &img.comps[i]
		if c.Alpha && alpha == nil {
			alpha = c
		} else {
			color = append(color, c)
		}
	}
	if alpha == nil && (len(color) == 2 || len(color) == 4) {
		alpha = color[len(color)-1]
		color = color[:len(color)-1]
	}

	switch img.colorSpace {
	case ColorSpaceGray:
		if len(color) != 1 {
			return nil, nil, fmt.Errorf("%w: gray expects 1 color component, decoder reported %d",
				ErrComponentCountMismatch, len(color))
		}
	case ColorSpaceSRGB, ColorSpaceSYCC:
		if len(color) != 3 {
			return nil, nil, fmt.Errorf("%w: %s expects 3 color components, decoder reported %d",
				ErrComponentCountMismatch, img.colorSpace, len(color))
		}
	case ColorSpaceUnknown, ColorSpaceUnspecified:
		// Assume gray or RGB from the component count.
		if len(color) != 1 && len(color) != 3 {
			return nil, nil, fmt.Errorf("%w: %d color components", ErrUnsupportedComponents, len(color))
		}
	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrUnsupportedColorSpace, img.colorSpace)
	}
	return color, alpha, nil
}

// normalizePlanes rescales every component to an 8-bit plane at the
// canonical size, upsampling subsampled planes. The returned slice holds
// the color planes in order, then the alpha plane if present. Planes are
// independent, so multi-component images normalize concurrently.
func (img *Image) normalizePlanes(color []*Component, alpha *Component, w, h int) ([][]uint8, error) {
	comps := make([]*Component, 0, len(color)+1)
	comps = append(comps, color...)
	if alpha != nil {
		comps = append(comps, alpha)
	}

	norm := func(c *Component) ([]uint8, error) {
		plane, err := c.DataU8()
		if err != nil {
			return nil, err
		}
		cw, ch := int(c.Width), int(c.Height)
		if cw == w && ch == h {
			return plane, nil
		}
		if cw > w || ch > h {
			return nil, fmt.Errorf("%w: component is %dx%d, image is %dx%d",
				ErrComponentSize, cw, ch, w, h)
		}
		return upsamplePlane(plane, cw, ch, w, h), nil
	}

	planes := make([][]uint8, len(comps))
	if len(comps) > 1 && img.workerCount() > 1 {
		errs := make([]error, len(comps))
		var wg sync.WaitGroup
		for i, c := range comps {
			wg.Add(1)
			go func(i int, c *Component) {
				defer wg.Done()
				planes[i], errs[i] = norm(c)
			}(i, c)
		}
		wg.Wait()
		for _, e := range errs {
			if e != nil {
				return nil, e
			}
		}
	} else {
		for i, c := range comps {
			var err error
			if planes[i], err = norm(c); err != nil {
				return nil, err
			}
		}
	}
	return planes, nil
}

func (img *Image) workerCount() int {
	if img.threads > 0 {
		return img.threads
	}
	return runtime.GOMAXPROCS(0)
}
