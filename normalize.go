package jpeg2k

import "fmt"

// maxPrecision is the decoder-imposed ceiling on bits per sample.
const maxPrecision = 16

func (c *Component) validate() error {
	if c.Precision < 1 || c.Precision > maxPrecision {
		return fmt.Errorf("%w: %d bits", ErrInvalidPrecision, c.Precision)
	}
	if c.Width == 0 || c.Height == 0 {
		return fmt.Errorf("%w: %dx%d", ErrComponentSize, c.Width, c.Height)
	}
	if want := int(c.Width) * int(c.Height); len(c.Data) != want {
		return fmt.Errorf("%w: %d samples for %dx%d plane", ErrComponentSize, len(c.Data), c.Width, c.Height)
	}
	return nil
}

// DataU8 rescales the plane from its native range to unsigned 8-bit.
// Signed samples are shifted by 2^(precision-1) first; the rescale is
// round-half-up with clamping at the range boundaries, so 8-bit unsigned
// input passes through unchanged.
func (c *Component) DataU8() ([]uint8, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}
	out := make([]uint8, len(c.Data))
	maxv := int64(1)<<c.Precision - 1
	var offset int64
	if c.Signed {
		offset = int64(1) << (c.Precision - 1)
	}
	for i, s := range c.Data {
		v := int64(s) + offset
		if v < 0 {
			v = 0
		} else if v > maxv {
			v = maxv
		}
		out[i] = uint8((v*255 + maxv/2) / maxv)
	}
	return out, nil
}

// DataU16 rescales the plane from its native range to unsigned 16-bit,
// with the same shift, rounding, and clamping rules as DataU8.
func (c *Component) DataU16() ([]uint16, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}
	out := make([]uint16, len(c.Data))
	maxv := int64(1)<<c.Precision - 1
	var offset int64
	if c.Signed {
		offset = int64(1) << (c.Precision - 1)
	}
	for i, s := range c.Data {
		v := int64(s) + offset
		if v < 0 {
			v = 0
		} else if v > maxv {
			v = maxv
		}
		out[i] = uint16((v*65535 + maxv/2) / maxv)
	}
	return out, nil
}
