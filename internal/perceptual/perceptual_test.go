package perceptual

import (
	"image"
	"image/color"
	"testing"

	"trustframe/internal/distance"
)

func gradient(w, h int, invert bool) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8((x*255/(w-1) + y*255/(h-1)) / 2)
			if invert {
				v = 255 - v
			}
			img.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return img
}

func TestHashDeterministicAndFixedWidth(t *testing.T) {
	img := gradient(96, 72, false)
	for _, alg := range Algorithms() {
		t.Run(string(alg), func(t *testing.T) {
			first, err := Hash(alg, img)
			if err != nil {
				t.Fatalf("Hash error: %v", err)
			}
			second, err := Hash(alg, img)
			if err != nil {
				t.Fatalf("Hash error: %v", err)
			}
			if first != second {
				t.Fatalf("hash not deterministic: %s vs %s", first, second)
			}
			if first.Width() != HashBits {
				t.Fatalf("width = %d, want %d", first.Width(), HashBits)
			}
		})
	}
}

func TestHashSeparatesInvertedImage(t *testing.T) {
	plain := gradient(64, 64, false)
	inverted := gradient(64, 64, true)
	for _, alg := range []Algorithm{AHash, WHash} {
		a, err := Hash(alg, plain)
		if err != nil {
			t.Fatalf("Hash error: %v", err)
		}
		b, err := Hash(alg, inverted)
		if err != nil {
			t.Fatalf("Hash error: %v", err)
		}
		res, err := distance.Compute(a, b)
		if err != nil {
			t.Fatalf("Compute error: %v", err)
		}
		if res.SimilarityPercentage > 50 {
			t.Fatalf("%s: inverted image similarity %.1f%%, expected at most 50%%", alg, res.SimilarityPercentage)
		}
	}
}

func TestWaveletHashUniformImageIsZero(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 40, 40))
	for i := range img.Pix {
		img.Pix[i] = 128
	}
	if got := waveletHash(img); got != 0 {
		t.Fatalf("waveletHash(uniform) = %#x, want 0", got)
	}
}

func TestHashRejectsEmptyImage(t *testing.T) {
	if _, err := Hash(PHash, image.NewRGBA(image.Rect(0, 0, 0, 0))); err == nil {
		t.Fatal("expected error for empty image")
	}
	if _, err := Hash(Algorithm("bogus"), gradient(8, 8, false)); err == nil {
		t.Fatal("expected error for unknown algorithm")
	}
}

func TestParseAlgorithm(t *testing.T) {
	got, err := ParseAlgorithm(" DHash ")
	if err != nil || got != DHash {
		t.Fatalf("ParseAlgorithm = %q, %v", got, err)
	}
	if _, err := ParseAlgorithm("blockhash"); err == nil {
		t.Fatal("expected unknown algorithm error")
	}
}
