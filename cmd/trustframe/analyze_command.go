package main

import (
	"github.com/spf13/cobra"

	"trustframe/internal/analysis"
	"trustframe/internal/config"
)

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var flags analysisFlags

	cmd := &cobra.Command{
		Use:   "analyze REFERENCE EVIDENCE",
		Short: "Compare a reference video against an evidence video",
		Long: "Digest both files, fingerprint their frames with a perceptual hash, align the two\n" +
			"fingerprint sequences, and report matches, substitutions, insertions, and deletions.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			settings, err := flags.resolve(cmd, cfg)
			if err != nil {
				return err
			}
			refPath, err := requireFile("reference", args[0])
			if err != nil {
				return err
			}
			evPath, err := requireFile("evidence", args[1])
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

			analyzer := analysis.New(analysis.Options{
				CryptoAlgorithm: settings.Crypto,
				Thresholds:      cfg.SimilarityThresholds(),
				Progress:        ctx.progressWriter(cmd, flags.noProgress),
			}, logger)
			report, err := analyzer.Compare(cmd.Context(),
				analysis.Input{Path: refPath, Source: newVideoSource(refPath, settings, cfg, ffmpeg, ffprobe)},
				analysis.Input{Path: evPath, Source: newVideoSource(evPath, settings, cfg, ffmpeg, ffprobe)},
			)
			if err != nil {
				return err
			}
			return writeReport(cmd, cfg, settings, report)
		},
	}

	flags.registerCrypto(cmd)
	flags.registerPerceptual(cmd)
	flags.registerReport(cmd)
	return cmd
}

// writeReport emits report in the selected format on stdout.
func writeReport(cmd *cobra.Command, cfg *config.Config, settings analysisSettings, report *analysis.Report) error {
	if handled, err := writeStructured(cmd, settings.Format, report); handled {
		return err
	}
	out := cmd.OutOrStdout()
	renderReport(out, report, renderOptions{
		DetailRows: settings.DetailRows,
		Colorize:   colorEnabled(cfg, out),
	})
	return nil
}
