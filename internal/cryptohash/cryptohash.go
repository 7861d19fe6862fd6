package cryptohash

import (
	"context"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"os"
	"path/filepath"
	"strings"

	"trustframe/internal/progress"
)

const blockSize = 4096

// Algorithm selects the digest function.
type Algorithm string

const (
	SHA256 Algorithm = "sha256"
	SHA384 Algorithm = "sha384"
	SHA512 Algorithm = "sha512"
)

// Algorithms lists the supported digests in display order.
func Algorithms() []Algorithm {
	return []Algorithm{SHA256, SHA384, SHA512}
}

// ParseAlgorithm accepts algorithm names case-insensitively.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(strings.ToLower(strings.TrimSpace(s))) {
	case SHA256:
		return SHA256, nil
	case SHA384:
		return SHA384, nil
	case SHA512:
		return SHA512, nil
	}
	return "", fmt.Errorf("unsupported crypto algorithm %q (want sha256, sha384, or sha512)", s)
}

// Label returns the upper-case display name.
func (a Algorithm) Label() string {
	return strings.ToUpper(string(a))
}

func (a Algorithm) newHash() (hash.Hash, error) {
	switch a {
	case SHA256:
		return sha256.New(), nil
	case SHA384:
		return sha512.New384(), nil
	case SHA512:
		return sha512.New(), nil
	}
	return nil, fmt.Errorf("unsupported crypto algorithm %q", string(a))
}

// Digest is the result of hashing one file.
type Digest struct {
	Path      string    `json:"path" yaml:"path"`
	Algorithm Algorithm `json:"algorithm" yaml:"algorithm"`
	Hex       string    `json:"hex" yaml:"hex"`
	Size      int64     `json:"size" yaml:"size"`
}

// HashFile streams path through the selected digest. When progressOut is
// non-nil a byte progress bar is rendered to it.
func HashFile(ctx context.Context, path string, alg Algorithm, progressOut io.Writer) (Digest, error) {
	h, err := alg.newHash()
	if err != nil {
		return Digest{}, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return Digest{}, fmt.Errorf("hash %s: %w", path, err)
	}
	if info.IsDir() {
		return Digest{}, fmt.Errorf("hash %s: is a directory", path)
	}
	file, err := os.Open(path)
	if err != nil {
		return Digest{}, fmt.Errorf("hash %s: %w", path, err)
	}
	defer file.Close()

	bar := progress.Bytes(progressOut, info.Size(), "Hashing "+filepath.Base(path))

	buf := make([]byte, blockSize)
	var total int64
	for {
		if err := ctx.Err(); err != nil {
			return Digest{}, err
		}
		n, readErr := file.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
			total += int64(n)
			_ = bar.Add(n)
		}
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return Digest{}, fmt.Errorf("read %s: %w", path, readErr)
		}
	}
	_ = bar.Finish()

	return Digest{
		Path:      path,
		Algorithm: alg,
		Hex:       hex.EncodeToString(h.Sum(nil)),
		Size:      total,
	}, nil
}
