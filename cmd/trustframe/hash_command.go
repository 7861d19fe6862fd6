package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"trustframe/internal/cryptohash"
)

type hashResult struct {
	Algorithm cryptohash.Algorithm `json:"algorithm" yaml:"algorithm"`
	Digests   []cryptohash.Digest  `json:"digests" yaml:"digests"`
	Match     *bool                `json:"match,omitempty" yaml:"match,omitempty"`
}

func newHashCommand(ctx *commandContext) *cobra.Command {
	var flags analysisFlags
	var noProgress bool

	cmd := &cobra.Command{
		Use:   "hash FILE...",
		Short: "Compute cryptographic digests of files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			settings, err := flags.resolve(cmd, cfg)
			if err != nil {
				return err
			}

			progressOut := ctx.progressWriter(cmd, noProgress)
			result := hashResult{Algorithm: settings.Crypto}
			for _, arg := range args {
				path, err := requireFile("hash", arg)
				if err != nil {
					return err
				}
				digest, err := cryptohash.HashFile(cmd.Context(), path, settings.Crypto, progressOut)
				if err != nil {
					return fmt.Errorf("hash %s: %w", path, err)
				}
				result.Digests = append(result.Digests, digest)
			}
			if len(result.Digests) > 1 {
				match := digestsMatch(result.Digests)
				result.Match = &match
			}

			if handled, err := writeStructured(cmd, settings.Format, result); handled {
				return err
			}
			renderHashResult(cmd, result, colorEnabled(cfg, cmd.OutOrStdout()))
			return nil
		},
	}

	flags.registerCrypto(cmd)
	cmd.Flags().StringVar(&flags.format, "format", "", "Output format (text, json, yaml)")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "Disable progress bars")
	return cmd
}

func digestsMatch(digests []cryptohash.Digest) bool {
	for _, d := range digests[1:] {
		if d.Hex != digests[0].Hex {
			return false
		}
	}
	return true
}

func renderHashResult(cmd *cobra.Command, result hashResult, colorize bool) {
	out := cmd.OutOrStdout()
	rows := make([][]string, 0, len(result.Digests))
	for _, d := range result.Digests {
		rows = append(rows, []string{d.Path, humanize.Bytes(uint64(d.Size)), d.Hex})
	}
	fmt.Fprintln(out, renderTableLayout(tableLayout{
		Title:   fmt.Sprintf("%s Digests", result.Algorithm.Label()),
		Headers: []string{"File", "Size", "Digest"},
		Rows:    rows,
		Aligns:  []columnAlignment{alignLeft, alignRight, alignLeft},
	}))
	if result.Match == nil {
		return
	}
	if *result.Match {
		fmt.Fprintln(out, renderStatusLine("Digests", statusOK, "all files identical", colorize))
	} else {
		fmt.Fprintln(out, renderStatusLine("Digests", statusError, "files differ", colorize))
	}
}
