package jpeg2k

import (
	"encoding/binary"
	"fmt"
)

// Codestream markers per ITU-T T.800 Annex A.
const (
	markerSOC uint16 = 0xFF4F // Start of codestream
	markerSIZ uint16 = 0xFF51 // Image and tile size
)

// ComponentInfo describes one component as declared by the SIZ marker,
// plus the alpha role contributed by the JP2 channel definition box.
type ComponentInfo struct {
	Precision uint8
	Signed    bool
	DX, DY    uint8 // sample separation (subsampling factors)
	Alpha     bool
}

// Header is the image geometry parsed from the main header, without
// invoking the native decoder.
type Header struct {
	Format     Format
	Width      uint32 // full-resolution canvas width (Xsiz - XOsiz)
	Height     uint32
	XOffset    uint32
	YOffset    uint32
	ColorSpace ColorSpace
	Components []ComponentInfo
}

// ComponentWidth returns the width of a component accounting for
// subsampling, per ITU-T T.800 B.2:
//
//	tcx0 = ceil(XOsiz / XRsiz)
//	tcx1 = ceil(Xsiz / XRsiz)
//	width = tcx1 - tcx0
func (h *Header) ComponentWidth(i int) uint32 {
	if i < 0 || i >= len(h.Components) {
		return 0
	}
	dx := uint32(h.Components[i].DX)
	if dx == 0 {
		dx = 1
	}
	xsiz := h.Width + h.XOffset
	return (xsiz+dx-1)/dx - (h.XOffset+dx-1)/dx
}

// ComponentHeight returns the height of a component accounting for
// subsampling.
func (h *Header) ComponentHeight(i int) uint32 {
	if i < 0 || i >= len(h.Components) {
		return 0
	}
	dy := uint32(h.Components[i].DY)
	if dy == 0 {
		dy = 1
	}
	ysiz := h.Height + h.YOffset
	return (ysiz+dy-1)/dy - (h.YOffset+dy-1)/dy
}

// ReadHeader parses enough of the payload to report dimensions,
// component layout, and color space. JP2 containers contribute their
// colr and cdef boxes; bare codestreams report ColorSpaceUnspecified.
func ReadHeader(data []byte) (*Header, error) {
	format, err := DetectFormat(data)
	if err != nil {
		return nil, err
	}

	h := &Header{Format: format, ColorSpace: ColorSpaceUnspecified}
	codestream := data
	var alpha []int
	if format == FormatJP2 {
		meta, cs, err := parseJP2(data)
		if err != nil {
			return nil, err
		}
		h.ColorSpace = meta.colorSpace
		alpha = meta.alpha
		codestream = cs
	}

	if err := h.parseSIZ(codestream); err != nil {
		return nil, err
	}
	for _, i := range alpha {
		if i >= 0 && i < len(h.Components) {
			h.Components[i].Alpha = true
		}
	}
	return h, nil
}

// parseSIZ parses the SOC marker and the SIZ segment that must follow
// it, filling in the image geometry and per-component parameters.
func (h *Header) parseSIZ(data []byte) error {
	if len(data) < 4 {
		return fmt.Errorf("%w: codestream header", ErrTruncatedData)
	}
	if binary.BigEndian.Uint16(data[0:2]) != markerSOC {
		return fmt.Errorf("%w: missing SOC marker", ErrInvalidCodestream)
	}
	if binary.BigEndian.Uint16(data[2:4]) != markerSIZ {
		return fmt.Errorf("%w: SIZ does not follow SOC", ErrInvalidHeader)
	}

	pos := 4
	if pos+38 > len(data) {
		return fmt.Errorf("%w: SIZ segment", ErrTruncatedData)
	}
	segLen := int(binary.BigEndian.Uint16(data[pos : pos+2]))
	if pos+segLen > len(data) {
		return fmt.Errorf("%w: SIZ segment", ErrTruncatedData)
	}

	xsiz := binary.BigEndian.Uint32(data[pos+4 : pos+8])
	ysiz := binary.BigEndian.Uint32(data[pos+8 : pos+12])
	xosiz := binary.BigEndian.Uint32(data[pos+12 : pos+16])
	yosiz := binary.BigEndian.Uint32(data[pos+16 : pos+20])
	// pos+20..pos+36: tile grid, not needed by this layer.
	numComps := int(binary.BigEndian.Uint16(data[pos+36 : pos+38]))

	if xsiz <= xosiz || ysiz <= yosiz {
		return fmt.Errorf("%w: degenerate canvas %dx%d at offset %d,%d",
			ErrInvalidHeader, xsiz, ysiz, xosiz, yosiz)
	}
	if numComps < 1 || numComps > 16384 {
		return fmt.Errorf("%w: component count %d", ErrInvalidHeader, numComps)
	}
	if segLen < 38+3*numComps {
		return fmt.Errorf("%w: SIZ component parameters", ErrTruncatedData)
	}

	h.Width = xsiz - xosiz
	h.Height = ysiz - yosiz
	h.XOffset = xosiz
	h.YOffset = yosiz
	h.Components = make([]ComponentInfo, numComps)
	for i := 0; i < numComps; i++ {
		offset := pos + 38 + 3*i
		if offset+3 > len(data) {
			return fmt.Errorf("%w: SIZ component %d", ErrTruncatedData, i)
		}
		ssiz := data[offset]
		prec := (ssiz & 0x7F) + 1
		if prec > maxPrecision {
			return fmt.Errorf("%w: component %d declares %d bits", ErrInvalidPrecision, i, prec)
		}
		dx := data[offset+1]
		dy := data[offset+2]
		if dx == 0 || dy == 0 {
			return fmt.Errorf("%w: component %d has zero sample separation", ErrInvalidHeader, i)
		}
		h.Components[i] = ComponentInfo{
			Precision: prec,
			Signed:    ssiz&0x80 != 0,
			DX:        dx,
			DY:        dy,
		}
	}
	return nil
}
