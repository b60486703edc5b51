package jpeg2k

import (
	"image"

	"golang.org/x/image/draw"
)

// upsamplePlane scales a normalized plane up to the canonical image size
// by nearest-neighbor replication. Subsampled chroma is the only input
// that reaches here. No interpolation filter is applied; replication
// trades fidelity for determinism and speed.
func upsamplePlane(src []uint8, srcW, srcH, dstW, dstH int) []uint8 {
	s := &image.Gray{Pix: src, Stride: srcW, Rect: image.Rect(0, 0, srcW, srcH)}
	d := image.NewGray(image.Rect(0, 0, dstW, dstH))
	draw.NearestNeighbor.Scale(d, d.Bounds(), s, s.Bounds(), draw.Src, nil)
	return d.Pix
}
