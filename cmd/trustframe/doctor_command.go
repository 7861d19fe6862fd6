package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"trustframe/internal/deps"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check that ffmpeg and ffprobe are available",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			outFormat, err := resolveFormat(format, cfg.Output.Format)
			if err != nil {
				return fmt.Errorf("--format: %w", err)
			}
			statuses := deps.CheckBinaries(cmd.Context(), deps.MediaRequirements(cfg.FFmpegBinary(), cfg.FFprobeBinary()))
			if handled, err := writeStructured(cmd, outFormat, statuses); handled {
				if err != nil {
					return err
				}
				return deps.Missing(statuses)
			}

			out := cmd.OutOrStdout()
			colorize := colorEnabled(cfg, out)
			for _, line := range renderSectionHeader("Dependencies", colorize) {
				fmt.Fprintln(out, line)
			}
			for _, line := range dependencyLines(statuses, colorize) {
				fmt.Fprintln(out, line)
			}
			return deps.Missing(statuses)
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "Output format (text, json, yaml)")
	return cmd
}

func dependencyLines(statuses []deps.Status, colorize bool) []string {
	lines := make([]string, 0, len(statuses)+1)
	missing := make([]string, 0)
	for _, status := range statuses {
		if status.Available {
			message := "Ready"
			if status.Path != "" {
				message = fmt.Sprintf("Ready (%s)", status.Path)
			}
			if status.Version != "" {
				message = fmt.Sprintf("%s %s", message, status.Version)
			}
			lines = append(lines, renderStatusLine(status.Name, statusOK, message, colorize))
			continue
		}

		detail := strings.TrimSpace(status.Detail)
		if detail == "" {
			detail = "not available"
		}
		kind := statusError
		if status.Optional {
			kind = statusWarn
		}
		lines = append(lines, renderStatusLine(status.Name, kind, detail, colorize))
		if !status.Optional {
			missing = append(missing, status.Name)
		}
	}
	summary := renderStatusLine("Summary", statusOK, "all dependencies available", colorize)
	if len(missing) > 0 {
		summary = renderStatusLine("Summary", statusError, fmt.Sprintf("missing %s", strings.Join(missing, ", ")), colorize)
	}
	return append([]string{summary}, lines...)
}
