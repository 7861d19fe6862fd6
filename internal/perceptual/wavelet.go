package perceptual

import (
	"image"
	"sort"

	"golang.org/x/image/draw"
)

const (
	waveletScale  = 64
	waveletLevels = 3 // 64 -> 32 -> 16 -> 8
	waveletSide   = waveletScale >> waveletLevels
)

// waveletHash keeps the low-frequency Haar band of a 64x64 grayscale frame
// and sets one bit per coefficient above the band median, row-major, most
// significant bit first.
func waveletHash(img image.Image) uint64 {
	gray := image.NewGray(image.Rect(0, 0, waveletScale, waveletScale))
	draw.CatmullRom.Scale(gray, gray.Bounds(), img, img.Bounds(), draw.Src, nil)

	coeffs := make([]float64, waveletScale*waveletScale)
	for y := 0; y < waveletScale; y++ {
		for x := 0; x < waveletScale; x++ {
			coeffs[y*waveletScale+x] = float64(gray.GrayAt(x, y).Y) / 255
		}
	}

	size := waveletScale
	for level := 0; level < waveletLevels; level++ {
		coeffs = haarLowBand(coeffs, size)
		size /= 2
	}

	median := medianOf(coeffs)
	var value uint64
	for i := 0; i < waveletSide*waveletSide; i++ {
		value <<= 1
		if coeffs[i] > median {
			value |= 1
		}
	}
	return value
}

// haarLowBand returns the LL quadrant of one orthonormal 2-D Haar step over a
// size x size matrix.
func haarLowBand(in []float64, size int) []float64 {
	half := size / 2
	out := make([]float64, half*half)
	for y := 0; y < half; y++ {
		for x := 0; x < half; x++ {
			a := in[(2*y)*size+2*x]
			b := in[(2*y)*size+2*x+1]
			c := in[(2*y+1)*size+2*x]
			d := in[(2*y+1)*size+2*x+1]
			out[y*half+x] = (a + b + c + d) / 2
		}
	}
	return out
}

func medianOf(values []float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
