// Copyright 2025 go-jpeg2k Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package jpeg2k

import (
	"sync"

	hwyimage "github.com/ajroetker/go-highway/hwy/contrib/image"
)

// ictBuf holds 6 pooled SIMD-aligned planes (3 input + 3 output) for the
// inverse irreversible color transform.
type ictBuf struct {
	imgs [6]*hwyimage.Image[float64]
	w, h int
}

var ictPool = sync.Pool{New: func() any { return new(ictBuf) }}

func getICTBuf(w, h int) *ictBuf {
	buf := ictPool.Get().(*ictBuf)
	if buf.w != w || buf.h != h {
		for i := range buf.imgs {
			buf.imgs[i] = hwyimage.NewImage[float64](w, h)
		}
		buf.w = w
		buf.h = h
	}
	return buf
}

func putICTBuf(buf *ictBuf) {
	ictPool.Put(buf)
}

// applySYCC converts normalized 8-bit Y'CbCr planes to R'G'B' with the
// standard inverse irreversible color transform per ITU-T T.800 G.2:
//
//	R = Y + 1.402   * Cr
//	G = Y - 0.344136 * Cb - 0.714136 * Cr
//	B = Y + 1.772   * Cb
//
// Chroma planes are centered at zero before the transform; results are
// rounded to nearest and clamped to [0,255].
func applySYCC(y, cb, cr []uint8, width, height int) (r, g, b []uint8) {
	buf := getICTBuf(width, height)
	defer putICTBuf(buf)

	loadPlane(y, buf.imgs[0], width, height, 0)
	loadPlane(cb, buf.imgs[1], width, height, -128)
	loadPlane(cr, buf.imgs[2], width, height, -128)

	hwyimage.InverseICT(buf.imgs[0], buf.imgs[1], buf.imgs[2], buf.imgs[3], buf.imgs[4], buf.imgs[5])

	r = storePlane(buf.imgs[3], width, height)
	g = storePlane(buf.imgs[4], width, height)
	b = storePlane(buf.imgs[5], width, height)
	return r, g, b
}

// loadPlane copies a byte plane into a SIMD-aligned image, adding offset
// to each sample.
func loadPlane(src []uint8, img *hwyimage.Image[float64], width, height int, offset float64) {
	for y := 0; y < height; y++ {
		row := img.Row(y)
		base := y * width
		for x := 0; x < width; x++ {
			row[x] = float64(src[base+x]) + offset
		}
	}
}

// storePlane copies a SIMD-aligned image back to a byte plane, rounding
// and clamping each sample.
func storePlane(img *hwyimage.Image[float64], width, height int) []uint8 {
	out := make([]uint8, width*height)
	for y := 0; y < height; y++ {
		row := img.Row(y)
		base := y * width
		for x := 0; x < width; x++ {
			out[base+x] = clampFloat(row[x])
		}
	}
	return out
}

func clampFloat(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5) // Round to nearest
}
