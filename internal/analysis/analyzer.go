package analysis

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"trustframe/internal/cryptohash"
	"trustframe/internal/logging"
	"trustframe/internal/progress"
	"trustframe/internal/similarity"
	"trustframe/internal/source"
)

// Options configures an Analyzer.
type Options struct {
	CryptoAlgorithm cryptohash.Algorithm
	Thresholds      similarity.Thresholds
	SkipCrypto      bool      // sequence-file inputs have no media to digest
	Progress        io.Writer // progress bars; nil disables them
}

// Input is one side of a comparison. Path is digested; Source is
// fingerprinted.
type Input struct {
	Path   string
	Source source.Source
}

// Analyzer orchestrates a comparison.
type Analyzer struct {
	opts    Options
	logger  *slog.Logger
	now     func() time.Time
	newID   func() string
	sampler *logging.ProgressSampler
}

// New builds an Analyzer. A nil logger discards logs.
func New(opts Options, logger *slog.Logger) *Analyzer {
	if opts.CryptoAlgorithm == "" {
		opts.CryptoAlgorithm = cryptohash.SHA256
	}
	if opts.Thresholds == (similarity.Thresholds{}) {
		opts.Thresholds = similarity.DefaultThresholds()
	}
	return &Analyzer{
		opts:    opts,
		logger:  logging.NewComponentLogger(logger, "analysis"),
		now:     time.Now,
		newID:   uuid.NewString,
		sampler: logging.NewProgressSampler(25),
	}
}

// Compare digests, fingerprints, aligns, and scores ref against ev.
func (a *Analyzer) Compare(ctx context.Context, ref, ev Input) (*Report, error) {
	if err := a.opts.Thresholds.Validate(); err != nil {
		return nil, fmt.Errorf("analysis: %w", err)
	}
	started := a.now()
	report := &Report{
		ID:        a.newID(),
		CreatedAt: started.UTC(),
		Reference: InputReport{Path: ref.Path},
		Evidence:  InputReport{Path: ev.Path},
	}
	ctx = logging.WithCorrelationID(ctx, report.ID)
	a.sampler.Reset()
	logger := logging.WithContext(ctx, a.logger)
	logger.Info("comparison started",
		logging.String("reference", ref.Path),
		logging.String("evidence", ev.Path),
	)

	if !a.opts.SkipCrypto {
		if err := a.digest(logging.WithStage(ctx, "hash"), report); err != nil {
			return nil, err
		}
	}

	refFP, evFP, err := a.fingerprint(logging.WithStage(ctx, "fingerprint"), ref.Source, ev.Source)
	if err != nil {
		return nil, err
	}
	fillInput(&report.Reference, refFP)
	fillInput(&report.Evidence, evFP)

	alignCtx := logging.WithStage(ctx, "align")
	report.Comparison = CompareSequences(refFP.Sequence, evFP.Sequence, a.opts.Thresholds)
	a.logUnavailable(alignCtx, report.Comparison)
	elapsed := a.now().Sub(started)
	report.ElapsedSeconds = elapsed.Seconds()

	logging.WithContext(alignCtx, a.logger).Info("comparison complete",
		logging.Int("frames_analyzed", report.FramesAnalyzed),
		logging.Int("edit_distance", report.EditDistance),
		logging.Int("matches", report.Statistics.Matches),
		logging.Int("substitutions", report.Statistics.Substitutions),
		logging.Int("insertions", report.Statistics.Insertions),
		logging.Int("deletions", report.Statistics.Deletions),
		logging.Float64("mean_similarity", report.Similarity.Mean),
		logging.Duration("elapsed", elapsed),
	)
	return report, nil
}

// digest hashes both files one after the other so their progress bars do
// not interleave.
func (a *Analyzer) digest(ctx context.Context, report *Report) error {
	logger := logging.WithContext(ctx, a.logger)
	for _, side := range []*InputReport{&report.Reference, &report.Evidence} {
		d, err := cryptohash.HashFile(ctx, side.Path, a.opts.CryptoAlgorithm, a.opts.Progress)
		if err != nil {
			return fmt.Errorf("hash %s: %w", side.Path, err)
		}
		side.Digest = &d
		logger.Debug("file digest computed",
			logging.String("path", side.Path),
			logging.String("algorithm", string(d.Algorithm)),
			logging.String("digest", d.Hex),
			logging.Int64("size_bytes", d.Size),
		)
	}
	report.Crypto = &CryptoComparison{
		Algorithm: a.opts.CryptoAlgorithm,
		Match:     report.Reference.Digest.Hex == report.Evidence.Digest.Hex,
	}
	logger.Info("file digests compared",
		logging.String("algorithm", string(a.opts.CryptoAlgorithm)),
		logging.Bool("match", report.Crypto.Match),
	)
	return nil
}

// fingerprint probes both sources, then fingerprints them concurrently
// behind one shared progress bar.
func (a *Analyzer) fingerprint(ctx context.Context, ref, ev source.Source) (source.Fingerprints, source.Fingerprints, error) {
	logger := logging.WithContext(ctx, a.logger)
	refPlan, err := ref.Probe(ctx)
	if err != nil {
		return source.Fingerprints{}, source.Fingerprints{}, fmt.Errorf("probe reference: %w", err)
	}
	evPlan, err := ev.Probe(ctx)
	if err != nil {
		return source.Fingerprints{}, source.Fingerprints{}, fmt.Errorf("probe evidence: %w", err)
	}
	for _, p := range []struct {
		name string
		plan source.Plan
	}{{"reference", refPlan}, {"evidence", evPlan}} {
		logger.Info("fingerprint plan",
			logging.String("input", p.name),
			logging.Int("total_frames", p.plan.Total),
			logging.Int("planned_frames", p.plan.Count()),
			logging.Bool("sampled", p.plan.Sampled),
		)
	}

	total := int64(-1)
	if refPlan.Count() >= 0 && evPlan.Count() >= 0 {
		total = int64(refPlan.Count() + evPlan.Count())
	}
	bar := progress.Count(a.opts.Progress, total, "Fingerprinting frames")

	var refFP, evFP source.Fingerprints
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		fp, err := ref.Fingerprint(groupCtx, refPlan, a.observer(logger, "reference", refPlan.Count(), bar.Add))
		if err != nil {
			return fmt.Errorf("reference: %w", err)
		}
		refFP = fp
		return nil
	})
	group.Go(func() error {
		fp, err := ev.Fingerprint(groupCtx, evPlan, a.observer(logger, "evidence", evPlan.Count(), bar.Add))
		if err != nil {
			return fmt.Errorf("evidence: %w", err)
		}
		evFP = fp
		return nil
	})
	if err := group.Wait(); err != nil {
		return source.Fingerprints{}, source.Fingerprints{}, err
	}
	_ = bar.Finish()
	return refFP, evFP, nil
}

// observer counts frames for one input, advances the shared bar, and logs
// sampled progress at debug level.
func (a *Analyzer) observer(logger *slog.Logger, name string, total int, advance func(int) error) func() {
	var done atomic.Int64
	return func() {
		n := int(done.Add(1))
		_ = advance(1)
		if percent, ok := a.sampler.Observe(name, n, total); ok {
			logger.Debug("fingerprint progress",
				logging.String("input", name),
				logging.Int("frames", n),
				logging.Float64("percent", percent),
			)
		}
	}
}

func (a *Analyzer) logUnavailable(ctx context.Context, cmp Comparison) {
	if cmp.Similarity.Unavailable == 0 {
		return
	}
	logger := logging.WithContext(ctx, a.logger)
	for _, op := range cmp.Operations {
		if op.Score.Available {
			continue
		}
		logging.WarnWithContext(logger, "similarity unavailable for substitution", "similarity_unavailable",
			logging.Int("ref_frame", op.RefFrame),
			logging.Int("ev_frame", op.EvFrame),
			logging.String("reason", op.Score.Err),
			logging.String(logging.FieldImpact, "frame excluded from similarity averages"),
		)
	}
}

func fillInput(dst *InputReport, fp source.Fingerprints) {
	dst.Algorithm = fp.Algorithm
	dst.Info = fp.Info
	dst.Sampled = fp.Sampled
	dst.Frames = len(fp.Sequence)
}
