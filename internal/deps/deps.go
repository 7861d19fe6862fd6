package deps

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

const versionTimeout = 5 * time.Second

// Requirement defines an external executable TrustFrame relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	VersionArgs []string // run after lookup to report the tool version
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string `json:"name" yaml:"name"`
	Command     string `json:"command" yaml:"command"`
	Path        string `json:"path,omitempty" yaml:"path,omitempty"`
	Description string `json:"description" yaml:"description"`
	Optional    bool   `json:"optional" yaml:"optional"`
	Available   bool   `json:"available" yaml:"available"`
	Version     string `json:"version,omitempty" yaml:"version,omitempty"`
	Detail      string `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(ctx context.Context, requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		resolved, err := exec.LookPath(cmd)
		if err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Path = resolved
		status.Available = true
		if len(req.VersionArgs) > 0 {
			status.Version = probeVersion(ctx, resolved, req.VersionArgs)
		}
		results = append(results, status)
	}
	return results
}

// Missing returns an error naming every unavailable required dependency.
func Missing(statuses []Status) error {
	var problems []string
	for _, status := range statuses {
		if status.Available || status.Optional {
			continue
		}
		problems = append(problems, fmt.Sprintf("%s (%s)", status.Name, status.Detail))
	}
	if len(problems) == 0 {
		return nil
	}
	return errors.New("missing dependencies: " + strings.Join(problems, ", "))
}

// probeVersion returns the first output line of the version command, or an
// empty string when the command fails.
func probeVersion(ctx context.Context, path string, args []string) string {
	ctx, cancel := context.WithTimeout(ctx, versionTimeout)
	defer cancel()
	out, err := exec.CommandContext(ctx, path, args...).Output()
	if err != nil {
		return ""
	}
	line, _, _ := bytes.Cut(out, []byte("\n"))
	return strings.TrimSpace(string(line))
}
