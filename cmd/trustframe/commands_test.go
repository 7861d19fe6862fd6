package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"trustframe/internal/analysis"
	"trustframe/internal/config"
	"trustframe/internal/deps"
	"trustframe/internal/distance"
	"trustframe/internal/source"
	"trustframe/internal/token"
)

func TestFingerprintThenAlign(t *testing.T) {
	env := setupCLITestEnv(t)
	refVideo := env.writeVideo(t, "reference.mp4", patternA, patternB, patternC, patternD)
	evVideo := env.writeVideo(t, "evidence.mp4", patternA, patternB, patternD)
	refSeq := filepath.Join(env.baseDir, "reference.json")
	evSeq := filepath.Join(env.baseDir, "evidence.txt")

	out, _, err := runCLI(t, []string{"fingerprint", refVideo, "--perceptual-algorithm", "ahash", "--output", refSeq}, env.configPath)
	if err != nil {
		t.Fatalf("fingerprint reference: %v", err)
	}
	requireContains(t, out, "Wrote 4 fingerprints to "+refSeq)
	if _, _, err := runCLI(t, []string{"fingerprint", evVideo, "--perceptual-algorithm", "ahash", "-o", evSeq, "--seq-format", "text"}, env.configPath); err != nil {
		t.Fatalf("fingerprint evidence: %v", err)
	}

	file, err := source.ReadFile(refSeq)
	if err != nil {
		t.Fatalf("read reference sequence: %v", err)
	}
	if file.Algorithm != "ahash" || file.Source != refVideo || len(file.Frames) != 4 {
		t.Fatalf("unexpected sequence file %+v", file)
	}

	out, _, err = runCLI(t, []string{"align", refSeq, evSeq, "--format", "json"}, env.configPath)
	if err != nil {
		t.Fatalf("align: %v", err)
	}
	var report analysis.Report
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode report: %v\n%s", err, out)
	}
	if report.Crypto != nil {
		t.Fatalf("align should not digest files, got %+v", report.Crypto)
	}
	if report.Statistics.Matches != 3 || report.Statistics.Deletions != 1 || report.EditDistance != 1 {
		t.Fatalf("unexpected statistics %+v (edit distance %d)", report.Statistics, report.EditDistance)
	}

	out, _, err = runCLI(t, []string{"align", refSeq, evSeq, "--detail-rows", "2"}, env.configPath)
	if err != nil {
		t.Fatalf("align text: %v", err)
	}
	requireNotContains(t, out, "Cryptographic Hash Analysis")
	requireContains(t, out, "... and 2 more operations")
	requireContains(t, out, "Frames Removed")
}

func TestFingerprintToStdout(t *testing.T) {
	env := setupCLITestEnv(t)
	video := env.writeVideo(t, "clip.mp4", patternA, patternB, patternC)

	out, _, err := runCLI(t, []string{"fingerprint", video, "--perceptual-algorithm", "dhash", "--seq-format", "text", "--max-frames", "2"}, env.configPath)
	if err != nil {
		t.Fatalf("fingerprint: %v", err)
	}
	requireContains(t, out, "# algorithm: dhash")
	file, err := source.Decode([]byte(out))
	if err != nil {
		t.Fatalf("decode stdout: %v", err)
	}
	if len(file.Frames) != 2 || file.Frames[0].Frame != 1 || file.Frames[1].Frame != 2 {
		t.Fatalf("expected frames 1 and 2 of 3, got %+v", file.Frames)
	}

	_, _, err = runCLI(t, []string{"fingerprint", video, "--seq-format", "csv"}, env.configPath)
	if err == nil {
		t.Fatalf("expected invalid sequence format error")
	}
	requireContains(t, err.Error(), "--seq-format")
}

func TestAlignRejectsInvalidSequence(t *testing.T) {
	env := setupCLITestEnv(t)
	good := filepath.Join(env.baseDir, "good.txt")
	bad := filepath.Join(env.baseDir, "bad.txt")
	if err := os.WriteFile(good, []byte("1 00ff\n2 ff00\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(bad, []byte("1 zz\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, _, err := runCLI(t, []string{"align", good, bad}, env.configPath)
	if !errors.Is(err, token.ErrInvalidToken) {
		t.Fatalf("expected invalid token error, got %v", err)
	}
}

func TestHashCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	a := filepath.Join(env.baseDir, "a.bin")
	b := filepath.Join(env.baseDir, "b.bin")
	for _, path := range []string{a, b} {
		if err := os.WriteFile(path, []byte("abc"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	out, _, err := runCLI(t, []string{"hash", a, b}, env.configPath)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	requireContains(t, out, "SHA256 Digests")
	requireContains(t, out, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad")
	requireContains(t, out, "all files identical")

	if err := os.WriteFile(b, []byte("abd"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	out, _, err = runCLI(t, []string{"hash", a, b, "--crypto-algorithm", "sha384", "--format", "json"}, env.configPath)
	if err != nil {
		t.Fatalf("hash json: %v", err)
	}
	var result hashResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Algorithm != "sha384" || len(result.Digests) != 2 || result.Match == nil || *result.Match {
		t.Fatalf("unexpected hash result %+v", result)
	}

	_, _, err = runCLI(t, []string{"hash", filepath.Join(env.baseDir, "missing")}, env.configPath)
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestDistanceCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"distance", "ff", "0f", "--format", "json"}, env.configPath)
	if err != nil {
		t.Fatalf("distance: %v", err)
	}
	var result distanceResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.BitDistance != 4 || result.BitWidth != 8 || result.SimilarityPercentage != 50 || result.Bucket != "medium" {
		t.Fatalf("unexpected distance result %+v", result)
	}

	out, _, err = runCLI(t, []string{"distance", "ffff", "ffff"}, env.configPath)
	if err != nil {
		t.Fatalf("distance text: %v", err)
	}
	requireContains(t, out, "100.0%")
	requireContains(t, out, "high")

	_, _, err = runCLI(t, []string{"distance", "ff", "ffff"}, env.configPath)
	if !errors.Is(err, distance.ErrIncompatibleTokens) {
		t.Fatalf("expected incompatible tokens, got %v", err)
	}
	_, _, err = runCLI(t, []string{"distance", "ff", "xyz"}, env.configPath)
	if !errors.Is(err, token.ErrInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}
}

func TestDoctorCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"doctor"}, env.configPath)
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	requireContains(t, out, "== Dependencies ==")
	requireContains(t, out, "[OK] all dependencies available")
	requireContains(t, out, "ffmpeg version 7.0-stub")

	env.writeConfig(t, env.ffmpeg, filepath.Join(env.baseDir, "no-ffprobe"))
	out, _, err = runCLI(t, []string{"doctor"}, env.configPath)
	if err == nil {
		t.Fatalf("expected doctor to fail when ffprobe is missing")
	}
	requireContains(t, out, "[ERROR] missing FFprobe")

	out, _, _ = runCLI(t, []string{"doctor", "--format", "json"}, env.configPath)
	var statuses []deps.Status
	if err := json.Unmarshal([]byte(out), &statuses); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(statuses) != 2 || !statuses[0].Available || statuses[1].Available {
		t.Fatalf("unexpected statuses %+v", statuses)
	}
}

func TestConfigInitValidateShow(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Config path: "+env.configPath)
	requireContains(t, out, "Configuration valid")

	target := filepath.Join(t.TempDir(), "nested", "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); !errors.Is(err, config.ErrSampleExists) {
		t.Fatalf("expected ErrSampleExists, got %v", err)
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}, ""); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}

	out, _, err = runCLI(t, []string{"config", "show"}, env.configPath)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "frame_width = 8")
	requireContains(t, out, "[thresholds]")

	bad := filepath.Join(env.baseDir, "bad.toml")
	if err := os.WriteFile(bad, []byte("[analysis]\nperceptual_algorithm = \"md5\"\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, _, err = runCLI(t, []string{"config", "validate"}, bad)
	if err == nil || !strings.Contains(err.Error(), "load config") {
		t.Fatalf("expected load config error, got %v", err)
	}
}
