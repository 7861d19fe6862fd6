package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Frame patterns for the 8x8 stub decoder. Each bit selects a white or black
// pixel, so every pattern yields a distinct average hash.
var (
	patternA uint64 = 0x00000000ffffffff
	patternB uint64 = 0xffffffff00000000
	patternC uint64 = 0x0f0f0f0f0f0f0f0f
	patternD uint64 = 0x3333333333333333
)

type cliTestEnv struct {
	baseDir    string
	configPath string
	ffmpeg     string
	ffprobe    string
}

// setupCLITestEnv writes stub ffmpeg/ffprobe scripts and a config file that
// points at them. The stubs read sidecar files next to the input: NAME.raw
// holds the decoded frames and NAME.probe the ffprobe JSON.
func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("TRUSTFRAME_FFMPEG", "")
	t.Setenv("TRUSTFRAME_FFPROBE", "")

	binDir := filepath.Join(base, "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		t.Fatalf("mkdir bin: %v", err)
	}
	env := &cliTestEnv{
		baseDir: base,
		ffmpeg: writeScript(t, binDir, "ffmpeg", `while [ $# -gt 0 ]; do
	case "$1" in
	-version) echo "ffmpeg version 7.0-stub"; exit 0 ;;
	-i) shift; cat "$1.raw"; exit 0 ;;
	esac
	shift
done
exit 1
`),
		ffprobe: writeScript(t, binDir, "ffprobe", `for arg; do
	if [ "$arg" = "-version" ]; then echo "ffprobe version 7.0-stub"; exit 0; fi
	last=$arg
done
cat "$last.probe"
`),
	}
	env.configPath = filepath.Join(base, "trustframe.toml")
	env.writeConfig(t, env.ffmpeg, env.ffprobe)
	return env
}

func (e *cliTestEnv) writeConfig(t *testing.T, ffmpeg, ffprobe string) {
	t.Helper()
	content := fmt.Sprintf(`[analysis]
frame_width = 8
frame_height = 8

[tools]
ffmpeg = %q
ffprobe = %q

[output]
color = "never"

[logging]
level = "error"
`, ffmpeg, ffprobe)
	if err := os.WriteFile(e.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

// writeVideo creates a fake video whose stub-decoded frames follow patterns.
func (e *cliTestEnv) writeVideo(t *testing.T, name string, patterns ...uint64) string {
	t.Helper()
	path := filepath.Join(e.baseDir, name)
	var raw bytes.Buffer
	for _, pattern := range patterns {
		for bit := 63; bit >= 0; bit-- {
			value := byte(0)
			if pattern&(1<<uint(bit)) != 0 {
				value = 0xff
			}
			raw.Write([]byte{value, value, value})
		}
	}
	probe := fmt.Sprintf(`{"streams":[{"index":0,"codec_type":"video","codec_name":"h264","width":8,"height":8,`+
		`"avg_frame_rate":"25/1","nb_frames":"%d","duration":"%.2f"}],"format":{"filename":%q,"duration":"%.2f","size":"%d"}}`,
		len(patterns), float64(len(patterns))/25, name, float64(len(patterns))/25, raw.Len())

	for target, data := range map[string][]byte{
		path:            raw.Bytes(),
		path + ".raw":   raw.Bytes(),
		path + ".probe": []byte(probe),
	} {
		if err := os.WriteFile(target, data, 0o644); err != nil {
			t.Fatalf("write %s: %v", target, err)
		}
	}
	return path
}

func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func requireNotContains(t *testing.T, output, substr string) {
	t.Helper()
	if strings.Contains(output, substr) {
		t.Fatalf("expected %q not to contain %q", output, substr)
	}
}
