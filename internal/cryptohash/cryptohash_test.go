package cryptohash

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.bin")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write sample: %v", err)
	}
	return path
}

func TestHashFileKnownDigests(t *testing.T) {
	path := writeFile(t, []byte("abc"))
	tests := []struct {
		alg  Algorithm
		want string
	}{
		{SHA256, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
		{SHA384, "cb00753f45a35e8bb5a03d699ac65007272c32ab0eded1631a8b605a43ff5bed8086072ba1e7cc2358baeca134c825a7"},
		{SHA512, "ddaf35a193617abacc417349ae20413112e6fa4e89a97ea20a9eeee64b55d39a2192992a274fc1a836ba3c23a3feebbd454d4423643ce80e2a9ac94fa54ca49f"},
	}
	for _, tt := range tests {
		t.Run(string(tt.alg), func(t *testing.T) {
			got, err := HashFile(context.Background(), path, tt.alg, nil)
			if err != nil {
				t.Fatalf("HashFile error: %v", err)
			}
			if got.Hex != tt.want {
				t.Fatalf("digest = %s, want %s", got.Hex, tt.want)
			}
			if got.Size != 3 {
				t.Fatalf("size = %d, want 3", got.Size)
			}
		})
	}
}

func TestHashFileSpansBlocks(t *testing.T) {
	content := bytes.Repeat([]byte("0123456789"), 1000)
	a, err := HashFile(context.Background(), writeFile(t, content), SHA256, nil)
	if err != nil {
		t.Fatalf("HashFile error: %v", err)
	}
	content[len(content)-1] = 'x'
	b, err := HashFile(context.Background(), writeFile(t, content), SHA256, nil)
	if err != nil {
		t.Fatalf("HashFile error: %v", err)
	}
	if a.Hex == b.Hex {
		t.Fatal("expected a change in the final block to alter the digest")
	}
	if a.Size != int64(len(content)) {
		t.Fatalf("size = %d, want %d", a.Size, len(content))
	}
}

func TestHashFileRendersProgress(t *testing.T) {
	var out bytes.Buffer
	if _, err := HashFile(context.Background(), writeFile(t, []byte("progress")), SHA256, &out); err != nil {
		t.Fatalf("HashFile error: %v", err)
	}
	if !strings.Contains(out.String(), "Hashing sample.bin") {
		t.Fatalf("expected progress description, got %q", out.String())
	}
}

func TestHashFileMissing(t *testing.T) {
	_, err := HashFile(context.Background(), filepath.Join(t.TempDir(), "absent"), SHA256, nil)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestHashFileCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := HashFile(ctx, writeFile(t, []byte("data")), SHA256, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestParseAlgorithm(t *testing.T) {
	for _, in := range []string{"sha256", "SHA384", " sha512 "} {
		if _, err := ParseAlgorithm(in); err != nil {
			t.Fatalf("ParseAlgorithm(%q) error: %v", in, err)
		}
	}
	if _, err := ParseAlgorithm("md5"); err == nil {
		t.Fatal("expected md5 to be rejected")
	}
}
