package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"trustframe/internal/logging"
	"trustframe/internal/progress"
	"trustframe/internal/source"
)

func newFingerprintCommand(ctx *commandContext) *cobra.Command {
	var flags analysisFlags
	var outputPath string
	var seqFormat string

	cmd := &cobra.Command{
		Use:   "fingerprint VIDEO",
		Short: "Write the perceptual fingerprint sequence of a video",
		Long: "Decode VIDEO, hash the selected frames, and write the sequence as JSON or as\n" +
			"\"frame hash\" text lines. The output can be compared later with `trustframe align`.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			settings, err := flags.resolve(cmd, cfg)
			if err != nil {
				return err
			}
			format, err := source.ParseFormat(seqFormat)
			if err != nil {
				return fmt.Errorf("--seq-format: %w", err)
			}
			path, err := requireFile("video", args[0])
			if err != nil {
				return err
			}
			ffmpeg, ffprobe, err := mediaTools(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			logger, err := ctx.loggerFor(cmd)
			if err != nil {
				return err
			}

			video := newVideoSource(path, settings, cfg, ffmpeg, ffprobe)
			plan, err := video.Probe(cmd.Context())
			if err != nil {
				return fmt.Errorf("probe %s: %w", path, err)
			}
			bar := progress.Count(ctx.progressWriter(cmd, flags.noProgress), int64(plan.Count()), "Fingerprinting frames")
			fp, err := video.Fingerprint(cmd.Context(), plan, func() { _ = bar.Add(1) })
			if err != nil {
				return err
			}
			_ = bar.Finish()
			logging.NewComponentLogger(logger, "fingerprint").Info("fingerprint complete",
				logging.String("path", path),
				logging.String("algorithm", string(settings.Perceptual)),
				logging.Int("frames", len(fp.Sequence)),
				logging.Bool("sampled", fp.Sampled),
			)

			file := source.FromFingerprints(fp)
			target := strings.TrimSpace(outputPath)
			if target == "" || target == "-" {
				return source.Write(cmd.OutOrStdout(), file, format)
			}
			if err := source.WriteFile(target, file, format); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d fingerprints to %s\n", len(fp.Sequence), target)
			return nil
		},
	}

	flags.registerPerceptual(cmd)
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Destination file (stdout when empty)")
	cmd.Flags().StringVar(&seqFormat, "seq-format", string(source.FormatJSON), "Sequence file format (json, text)")
	return cmd
}
