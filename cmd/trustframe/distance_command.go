package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"trustframe/internal/distance"
	"trustframe/internal/similarity"
)

type distanceResult struct {
	distance.Result `yaml:",inline"`
	A               string `json:"a" yaml:"a"`
	B               string `json:"b" yaml:"b"`
	Bucket          string `json:"bucket" yaml:"bucket"`
}

func newDistanceCommand(ctx *commandContext) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "distance HASH_A HASH_B",
		Short: "Hamming distance and similarity between two hex hashes",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			outFormat, err := resolveFormat(format, cfg.Output.Format)
			if err != nil {
				return fmt.Errorf("--format: %w", err)
			}
			res, err := distance.ComputeHex(args[0], args[1])
			if err != nil {
				return err
			}
			result := distanceResult{
				Result: res,
				A:      args[0],
				B:      args[1],
				Bucket: cfg.SimilarityThresholds().Bucket(res.SimilarityPercentage).String(),
			}
			if handled, err := writeStructured(cmd, outFormat, result); handled {
				return err
			}
			renderDistance(cmd, result, cfg.SimilarityThresholds(), colorEnabled(cfg, cmd.OutOrStdout()))
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "Output format (text, json, yaml)")
	return cmd
}

func renderDistance(cmd *cobra.Command, result distanceResult, thresholds similarity.Thresholds, colorize bool) {
	p := painter{enabled: colorize}
	score := similarity.Score{Value: result.SimilarityPercentage, Available: true}
	rows := [][]string{
		{"Hash A", result.A},
		{"Hash B", result.B},
		{"Bit Width", fmt.Sprint(result.BitWidth)},
		{"Differing Bits", fmt.Sprint(result.BitDistance)},
		{"Similarity", scoreLabel(score, thresholds, p)},
		{"Band", result.Bucket},
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Metric", "Value"}, rows, []columnAlignment{alignLeft, alignRight}))
}
