package perceptual

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/corona10/goimagehash"

	"trustframe/internal/token"
)

// HashBits is the width of every hash produced by this package.
const HashBits = 64

// Algorithm is the closed set of perceptual hash variants.
type Algorithm string

const (
	PHash Algorithm = "phash"
	AHash Algorithm = "ahash"
	DHash Algorithm = "dhash"
	WHash Algorithm = "whash"
)

// Algorithms lists the variants in display order.
func Algorithms() []Algorithm {
	return []Algorithm{PHash, AHash, DHash, WHash}
}

// ParseAlgorithm accepts variant names case-insensitively.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(strings.ToLower(strings.TrimSpace(s))) {
	case PHash:
		return PHash, nil
	case AHash:
		return AHash, nil
	case DHash:
		return DHash, nil
	case WHash:
		return WHash, nil
	}
	return "", fmt.Errorf("unsupported perceptual algorithm %q (want phash, ahash, dhash, or whash)", s)
}

// Label returns the upper-case display name.
func (a Algorithm) Label() string {
	return strings.ToUpper(string(a))
}

// Hash fingerprints img with the selected algorithm.
func Hash(alg Algorithm, img image.Image) (token.Token, error) {
	if img == nil || img.Bounds().Empty() {
		return token.Token{}, errors.New("perceptual hash: empty image")
	}
	var (
		value uint64
		err   error
	)
	switch alg {
	case PHash:
		value, err = viaImageHash(goimagehash.PerceptionHash, img)
	case AHash:
		value, err = viaImageHash(goimagehash.AverageHash, img)
	case DHash:
		value, err = viaImageHash(goimagehash.DifferenceHash, img)
	case WHash:
		value = waveletHash(img)
	default:
		return token.Token{}, fmt.Errorf("perceptual hash: unsupported algorithm %q", string(alg))
	}
	if err != nil {
		return token.Token{}, fmt.Errorf("perceptual hash %s: %w", alg, err)
	}
	return token.FromUint64(value, HashBits)
}

func viaImageHash(fn func(image.Image) (*goimagehash.ImageHash, error), img image.Image) (uint64, error) {
	h, err := fn(img)
	if err != nil {
		return 0, err
	}
	return h.GetHash(), nil
}
