package main

import (
	"github.com/spf13/cobra"

	"trustframe/internal/analysis"
	"trustframe/internal/source"
)

func newAlignCommand(ctx *commandContext) *cobra.Command {
	var flags analysisFlags

	cmd := &cobra.Command{
		Use:   "align REFERENCE_SEQ EVIDENCE_SEQ",
		Short: "Align two stored fingerprint sequences",
		Long: "Align fingerprint files produced by `trustframe fingerprint` (JSON or text) and\n" +
			"report the same sequence statistics as analyze, without decoding any video.",
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
			logger, err := ctx.loggerFor(cmd)
			if err != nil {
				return err
			}

			analyzer := analysis.New(analysis.Options{
				Thresholds: cfg.SimilarityThresholds(),
				SkipCrypto: true,
			}, logger)
			report, err := analyzer.Compare(cmd.Context(),
				analysis.Input{Path: refPath, Source: &source.SequenceFile{Path: refPath}},
				analysis.Input{Path: evPath, Source: &source.SequenceFile{Path: evPath}},
			)
			if err != nil {
				return err
			}
			return writeReport(cmd, cfg, settings, report)
		},
	}

	flags.registerReport(cmd)
	return cmd
}
