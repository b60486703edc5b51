package jpeg2k

import (
	"bytes"
	"testing"
)

func TestUpsamplePlane(t *testing.T) {
	tests := []struct {
		name       string
		src        []uint8
		srcW, srcH int
		dstW, dstH int
		want       []uint8
	}{
		{
			name: "1x1 to 2x2",
			src:  []uint8{42},
			srcW: 1, srcH: 1, dstW: 2, dstH: 2,
			want: []uint8{42, 42, 42, 42},
		},
		{
			name: "2x2 to 4x4 replicates quadrants",
			src:  []uint8{10, 20, 30, 40},
			srcW: 2, srcH: 2, dstW: 4, dstH: 4,
			want: []uint8{
				10, 10, 20, 20,
				10, 10, 20, 20,
				30, 30, 40, 40,
				30, 30, 40, 40,
			},
		},
		{
			name: "horizontal only",
			src:  []uint8{1, 2},
			srcW: 1, srcH: 2, dstW: 2, dstH: 2,
			want: []uint8{1, 1, 2, 2},
		},
		{
			name: "same size passes through",
			src:  []uint8{5, 6, 7, 8},
			srcW: 2, srcH: 2, dstW: 2, dstH: 2,
			want: []uint8{5, 6, 7, 8},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := upsamplePlane(tt.src, tt.srcW, tt.srcH, tt.dstW, tt.dstH)
			if !bytes.Equal(got, tt.want) {
				t.Errorf("upsamplePlane() =\n%v\nwant\n%v", got, tt.want)
			}
		})
	}
}
