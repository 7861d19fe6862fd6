package deps

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// MediaRequirements lists the ffmpeg tools needed to fingerprint videos.
func MediaRequirements(ffmpeg, ffprobe string) []Requirement {
	return []Requirement{
		{
			Name:        "FFmpeg",
			Command:     ffmpeg,
			Description: "Decodes video frames for perceptual hashing",
			VersionArgs: []string{"-hide_banner", "-version"},
		},
		{
			Name:        "FFprobe",
			Command:     ResolveFFprobe(ffmpeg, ffprobe),
			Description: "Reads frame count and frame rate",
			VersionArgs: []string{"-hide_banner", "-version"},
		},
	}
}

// ResolveFFprobe returns the ffprobe to run. An explicitly configured value
// wins; with the bare default, an executable ffprobe sitting next to a
// configured ffmpeg path is preferred so both tools come from one build.
func ResolveFFprobe(ffmpeg, ffprobe string) string {
	ffprobe = strings.TrimSpace(ffprobe)
	if ffprobe != "" && ffprobe != "ffprobe" {
		return ffprobe
	}
	ffmpeg = strings.TrimSpace(ffmpeg)
	if ffmpeg == "" || !strings.ContainsRune(ffmpeg, filepath.Separator) {
		return "ffprobe"
	}
	resolved, err := exec.LookPath(ffmpeg)
	if err != nil {
		return "ffprobe"
	}
	candidate := filepath.Join(filepath.Dir(resolved), executableName("ffprobe"))
	if info, err := os.Stat(candidate); err == nil && isExecutable(info) {
		return candidate
	}
	return "ffprobe"
}

func executableName(name string) string {
	if runtime.GOOS == "windows" {
		return name + ".exe"
	}
	return name
}

func isExecutable(info os.FileInfo) bool {
	if info == nil || info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}
