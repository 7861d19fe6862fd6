package source

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"trustframe/internal/fileutil"
	"trustframe/internal/token"
)

// Format selects the on-disk layout of a fingerprint file.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// ParseFormat accepts "json" or "text" (also "txt").
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "text", "txt":
		return FormatText, nil
	}
	return "", fmt.Errorf("unsupported sequence format %q (want json or text)", s)
}

// File is a standalone fingerprint sequence.
type File struct {
	Source    string         `json:"source,omitempty"`
	Algorithm string         `json:"algorithm,omitempty"`
	Frames    token.Sequence `json:"frames"`
}

// ReadFile loads and validates a fingerprint file in either format.
func ReadFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read sequence file: %w", err)
	}
	file, err := Decode(data)
	if err != nil {
		return File{}, fmt.Errorf("read sequence file %s: %w", path, err)
	}
	return file, nil
}

// Decode parses data as JSON when it starts with '{' and as text otherwise.
func Decode(data []byte) (File, error) {
	var (
		file File
		err  error
	)
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		err = json.Unmarshal(trimmed, &file)
	} else {
		file, err = decodeText(data)
	}
	if err != nil {
		return File{}, err
	}
	if err := file.Frames.Validate(); err != nil {
		return File{}, err
	}
	return file, nil
}

// decodeText reads "frame hash" lines. A line holding only a hash continues
// numbering from the previous frame. "# source:" and "# algorithm:" comments
// fill the matching metadata; other comments are ignored.
func decodeText(data []byte) (File, error) {
	var file File
	file.Frames = token.Sequence{}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	prev := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if comment, ok := strings.CutPrefix(line, "#"); ok {
			key, value, found := strings.Cut(comment, ":")
			if !found {
				continue
			}
			switch strings.ToLower(strings.TrimSpace(key)) {
			case "source":
				file.Source = strings.TrimSpace(value)
			case "algorithm":
				file.Algorithm = strings.TrimSpace(value)
			}
			continue
		}

		fields := strings.Fields(line)
		var frameText, hashText string
		switch len(fields) {
		case 1:
			hashText = fields[0]
		case 2:
			frameText, hashText = fields[0], fields[1]
		default:
			return File{}, fmt.Errorf("line %d: want \"frame hash\", got %q", lineNo, line)
		}
		frame := prev + 1
		if frameText != "" {
			n, err := strconv.Atoi(frameText)
			if err != nil {
				return File{}, fmt.Errorf("line %d: invalid frame number %q", lineNo, frameText)
			}
			frame = n
		}
		hash, err := token.ParseHex(hashText)
		if err != nil {
			return File{}, fmt.Errorf("line %d: %w", lineNo, err)
		}
		file.Frames = append(file.Frames, token.Element{Frame: frame, Token: hash})
		prev = frame
	}
	if err := scanner.Err(); err != nil {
		return File{}, err
	}
	return file, nil
}

// Write encodes file to w in the requested format.
func Write(w io.Writer, file File, format Format) error {
	switch format {
	case FormatJSON, "":
		if file.Frames == nil {
			file.Frames = token.Sequence{}
		}
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(file)
	case FormatText:
		bw := bufio.NewWriter(w)
		if file.Source != "" {
			fmt.Fprintf(bw, "# source: %s\n", file.Source)
		}
		if file.Algorithm != "" {
			fmt.Fprintf(bw, "# algorithm: %s\n", file.Algorithm)
		}
		for _, el := range file.Frames {
			fmt.Fprintf(bw, "%d %s\n", el.Frame, el.Token)
		}
		return bw.Flush()
	default:
		return fmt.Errorf("write sequence: unsupported format %q", string(format))
	}
}

// WriteFile writes file to path atomically, replacing any existing file.
func WriteFile(path string, file File, format Format) error {
	err := fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		return Write(w, file, format)
	})
	if err != nil {
		return fmt.Errorf("write sequence file %s: %w", path, err)
	}
	return nil
}

// FromFingerprints packages fp for writing.
func FromFingerprints(fp Fingerprints) File {
	return File{Source: fp.Path, Algorithm: fp.Algorithm, Frames: fp.Sequence}
}

// SequenceFile is a Source backed by a fingerprint file.
type SequenceFile struct {
	Path string

	file   File
	loaded bool
}

// Name returns the file path.
func (s *SequenceFile) Name() string {
	return s.Path
}

// Probe loads the file. The plan covers every stored frame.
func (s *SequenceFile) Probe(ctx context.Context) (Plan, error) {
	if err := ctx.Err(); err != nil {
		return Plan{}, err
	}
	file, err := ReadFile(s.Path)
	if err != nil {
		return Plan{}, err
	}
	s.file, s.loaded = file, true
	return Plan{Total: len(file.Frames)}, nil
}

// Fingerprint returns the stored sequence, loading it if Probe was skipped.
func (s *SequenceFile) Fingerprint(ctx context.Context, _ Plan, onFrame func()) (Fingerprints, error) {
	if !s.loaded {
		if _, err := s.Probe(ctx); err != nil {
			return Fingerprints{}, err
		}
	}
	if onFrame != nil {
		for range s.file.Frames {
			onFrame()
		}
	}
	return Fingerprints{
		Path:      s.Path,
		Algorithm: s.file.Algorithm,
		Sequence:  s.file.Frames,
	}, nil
}
