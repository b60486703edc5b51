package jpeg2k

import (
	"encoding/binary"
	"fmt"
)

// JP2 box types per ITU-T T.800 Annex I.
const (
	jp2BoxSignature   = 0x6A502020 // "jP  "
	jp2BoxFileType    = 0x66747970 // "ftyp"
	jp2BoxHeader      = 0x6A703268 // "jp2h"
	jp2BoxImageHeader = 0x69686472 // "ihdr"
	jp2BoxColorSpec   = 0x636F6C72 // "colr"
	jp2BoxChannelDef  = 0x63646566 // "cdef"
	jp2BoxCodestream  = 0x6A703263 // "jp2c"
)

// Enumerated color spaces from the colr box (ITU-T T.800 Table I.1).
const (
	jp2EnumCMYK  = 12
	jp2EnumSRGB  = 16
	jp2EnumGray  = 17
	jp2EnumSYCC  = 18
	jp2EnumESYCC = 24
)

// jp2Metadata is the container-level metadata this layer consumes: the
// declared color space and which components the channel definition box
// marks as alpha.
type jp2Metadata struct {
	width      uint32
	height     uint32
	numComps   int
	colorSpace ColorSpace
	alpha      []int // component indices with an opacity channel type
}

// parseJP2 walks the top-level boxes of a JP2 container and returns the
// header metadata together with the embedded codestream.
func parseJP2(data []byte) (*jp2Metadata, []byte, error) {
	meta := &jp2Metadata{colorSpace: ColorSpaceUnspecified}
	var codestream []byte

	pos := 0
	sawSignature := false
	for pos+8 <= len(data) {
		boxLen, boxType, headerLen, err := parseBoxHeader(data, pos)
		if err != nil {
			return nil, nil, err
		}
		if boxLen == 0 {
			// Box extends to the end of the payload.
			boxLen = len(data) - pos
		}
		if boxLen < headerLen || pos+boxLen > len(data) {
			return nil, nil, fmt.Errorf("%w: box %08x overruns payload", ErrTruncatedData, boxType)
		}
		boxData := data[pos+headerLen : pos+boxLen]

		switch boxType {
		case jp2BoxSignature:
			sawSignature = true
		case jp2BoxHeader:
			parseJP2HeaderBox(boxData, meta)
		case jp2BoxCodestream:
			codestream = boxData
		}

		pos += boxLen
	}

	if !sawSignature {
		return nil, nil, fmt.Errorf("%w: missing JP2 signature box", ErrInvalidCodestream)
	}
	if codestream == nil {
		return nil, nil, fmt.Errorf("%w: JP2 container has no codestream box", ErrInvalidCodestream)
	}
	return meta, codestream, nil
}

// parseBoxHeader parses a JP2 box header and returns length, type, and
// header size.
func parseBoxHeader(data []byte, pos int) (boxLen int, boxType uint32, headerLen int, err error) {
	if pos+8 > len(data) {
		return 0, 0, 0, fmt.Errorf("%w: box header", ErrTruncatedData)
	}

	boxLen = int(binary.BigEndian.Uint32(data[pos:]))
	boxType = binary.BigEndian.Uint32(data[pos+4:])
	headerLen = 8

	switch {
	case boxLen == 1:
		// Extended length (8-byte length field).
		if pos+16 > len(data) {
			return 0, 0, 0, fmt.Errorf("%w: extended box length", ErrTruncatedData)
		}
		boxLen = int(binary.BigEndian.Uint64(data[pos+8:]))
		headerLen = 16
	case boxLen == 0:
		// Box extends to end of payload; handled by caller.
	case boxLen < 8:
		return 0, 0, 0, fmt.Errorf("%w: box length %d", ErrInvalidHeader, boxLen)
	}

	return boxLen, boxType, headerLen, nil
}

// parseJP2HeaderBox parses the jp2h superbox contents.
func parseJP2HeaderBox(data []byte, meta *jp2Metadata) {
	pos := 0
	for pos+8 <= len(data) {
		boxLen, boxType, headerLen, err := parseBoxHeader(data, pos)
		if err != nil {
			break
		}
		if boxLen == 0 {
			boxLen = len(data) - pos
		}
		if boxLen < headerLen || pos+boxLen > len(data) {
			break
		}
		boxData := data[pos+headerLen : pos+boxLen]

		switch boxType {
		case jp2BoxImageHeader:
			parseImageHeader(boxData, meta)
		case jp2BoxColorSpec:
			parseColorSpec(boxData, meta)
		case jp2BoxChannelDef:
			parseChannelDefBox(boxData, meta)
		}

		pos += boxLen
	}
}

// parseImageHeader parses the ihdr box.
func parseImageHeader(data []byte, meta *jp2Metadata) {
	if len(data) < 14 {
		return
	}
	meta.height = binary.BigEndian.Uint32(data[0:4])
	meta.width = binary.BigEndian.Uint32(data[4:8])
	meta.numComps = int(binary.BigEndian.Uint16(data[8:10]))
}

// parseColorSpec parses the colr box. Only the enumerated method (1)
// maps to a color space; restricted ICC profiles (method 2) leave the
// color space unspecified for the decoder to sort out.
func parseColorSpec(data []byte, meta *jp2Metadata) {
	if len(data) < 3 || data[0] != 1 {
		return
	}
	if len(data) < 7 {
		return
	}
	switch binary.BigEndian.Uint32(data[3:7]) {
	case jp2EnumSRGB:
		meta.colorSpace = ColorSpaceSRGB
	case jp2EnumGray:
		meta.colorSpace = ColorSpaceGray
	case jp2EnumSYCC:
		meta.colorSpace = ColorSpaceSYCC
	case jp2EnumESYCC:
		meta.colorSpace = ColorSpaceEYCC
	case jp2EnumCMYK:
		meta.colorSpace = ColorSpaceCMYK
	default:
		meta.colorSpace = ColorSpaceUnknown
	}
}

// parseChannelDefBox parses the cdef box per ITU-T T.800 I.5.3.6.
// Format: N(2) repeated Cn(2) Typ(2) Asoc(2). Channel types 1 and 2 are
// opacity and premultiplied opacity; those components are alpha.
func parseChannelDefBox(data []byte, meta *jp2Metadata) {
	if len(data) < 2 {
		return
	}
	n := int(binary.BigEndian.Uint16(data[0:2]))
	if len(data) < 2+n*6 {
		return
	}
	for i := range n {
		channel := int(binary.BigEndian.Uint16(data[2+i*6 : 4+i*6]))
		typ := int(binary.BigEndian.Uint16(data[4+i*6 : 6+i*6]))
		if typ == 1 || typ == 2 {
			meta.alpha = append(meta.alpha, channel)
		}
	}
}
