package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"trustframe/internal/alignment"
	"trustframe/internal/analysis"
	"trustframe/internal/cryptohash"
	"trustframe/internal/media/ffprobe"
	"trustframe/internal/perceptual"
	"trustframe/internal/similarity"
)

const (
	placeholder    = "---"
	digestColWidth = 32
)

type renderOptions struct {
	DetailRows int
	Colorize   bool
}

// painter wraps text in go-pretty escape sequences when enabled. It writes the
// sequences itself so output.color decides, not go-pretty's global switch.
type painter struct {
	enabled bool
}

func (p painter) paint(s string, colors ...text.Color) string {
	if !p.enabled || len(colors) == 0 || s == "" {
		return s
	}
	return text.Colors(colors).EscapeSeq() + s + text.EscapeReset
}

func (p painter) heading(title string, color text.Color) string {
	return p.paint(title, text.Bold, color)
}

var upper = cases.Upper(language.Und)

// renderReport writes the full text report. Sections with no data (no
// digests, no video metadata) are omitted.
func renderReport(w io.Writer, report *analysis.Report, opts renderOptions) {
	p := painter{enabled: opts.Colorize}
	for _, line := range renderSectionHeader("TrustFrame Video Analysis", opts.Colorize) {
		fmt.Fprintln(w, line)
	}
	fmt.Fprintf(w, "Report %s\n", report.ID)

	if report.Crypto != nil {
		renderCryptoSection(w, report, p)
	}
	renderPerceptualSection(w, report, p)
	renderSequenceSection(w, report.Comparison, p)
	if opts.DetailRows > 0 {
		renderAlignmentDetail(w, report.Comparison, opts.DetailRows, p)
	}
	renderFinalSummary(w, report.Comparison, p)
	fmt.Fprintf(w, "Completed in %.2fs\n", report.ElapsedSeconds)
}

func renderCryptoSection(w io.Writer, report *analysis.Report, p painter) {
	label := report.Crypto.Algorithm.Label()
	fmt.Fprintf(w, "\n%s\n", p.heading(fmt.Sprintf("Cryptographic Hash Analysis (%s)", label), text.FgCyan))

	match := p.paint("No", text.FgRed)
	if report.Crypto.Match {
		match = p.paint("Yes", text.FgGreen)
	}
	fmt.Fprintln(w, renderTableLayout(tableLayout{
		Title:     fmt.Sprintf("%s Hash Summary", label),
		Headers:   []string{"Reference", "Evidence", "Match"},
		Rows:      [][]string{{digestHex(report.Reference.Digest), digestHex(report.Evidence.Digest), match}},
		MaxWidths: []int{digestColWidth, digestColWidth, 0},
	}))
}

func digestHex(d *cryptohash.Digest) string {
	if d == nil {
		return placeholder
	}
	return d.Hex
}

func renderPerceptualSection(w io.Writer, report *analysis.Report, p painter) {
	alg := report.Reference.Algorithm
	if alg == "" {
		alg = report.Evidence.Algorithm
	}
	title := "Perceptual Hash Analysis"
	if alg != "" {
		title = fmt.Sprintf("%s (%s)", title, perceptual.Algorithm(alg).Label())
	}
	fmt.Fprintf(w, "\n%s\n", p.heading(title, text.FgMagenta))

	if report.Reference.Info != nil || report.Evidence.Info != nil {
		fmt.Fprintln(w, renderTableLayout(tableLayout{
			Title:   "Video Information",
			Headers: []string{"Video", "Total Frames", "FPS", "Duration (s)", "Resolution", "Codec", "Size"},
			Rows: [][]string{
				videoInfoRow("Reference", report.Reference),
				videoInfoRow("Evidence", report.Evidence),
			},
			Aligns: []columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignLeft, alignRight},
		}))
	}

	for _, side := range []struct {
		label string
		input analysis.InputReport
	}{{"Reference", report.Reference}, {"Evidence", report.Evidence}} {
		fmt.Fprintln(w, p.paint(samplingLine(side.label, side.input), text.FgYellow))
	}
}

func videoInfoRow(label string, input analysis.InputReport) []string {
	name := fmt.Sprintf("%s (%s)", label, filepath.Base(input.Path))
	info := input.Info
	if info == nil {
		return []string{name, placeholder, placeholder, placeholder, placeholder, placeholder, placeholder}
	}
	return []string{
		name,
		frameCount(info),
		fmt.Sprintf("%.2f", info.FPS),
		fmt.Sprintf("%.2f", info.DurationSeconds),
		fmt.Sprintf("%dx%d", info.Width, info.Height),
		fallback(info.Codec),
		sizeLabel(info.SizeBytes),
	}
}

func frameCount(info *ffprobe.Info) string {
	if info.TotalFrames <= 0 {
		return "unknown"
	}
	return humanize.Comma(int64(info.TotalFrames))
}

func sizeLabel(size int64) string {
	if size <= 0 {
		return placeholder
	}
	return humanize.Bytes(uint64(size))
}

func fallback(value string) string {
	if strings.TrimSpace(value) == "" {
		return placeholder
	}
	return value
}

func samplingLine(label string, input analysis.InputReport) string {
	frames := humanize.Comma(int64(input.Frames))
	switch {
	case input.Sampled && input.Info != nil && input.Info.TotalFrames > 0:
		return fmt.Sprintf("%s: %s uniformly sampled frames of %s", label, frames, humanize.Comma(int64(input.Info.TotalFrames)))
	case input.Sampled:
		return fmt.Sprintf("%s: first %s frames", label, frames)
	default:
		return fmt.Sprintf("%s: all %s frames", label, frames)
	}
}

func renderSequenceSection(w io.Writer, cmp analysis.Comparison, p painter) {
	fmt.Fprintf(w, "\n%s\n", p.heading("Advanced Sequence Analysis", text.FgCyan))
	stats := cmp.Statistics
	rows := [][]string{
		{"Matches", fmt.Sprint(stats.Matches), "Identical frames in same position"},
		{p.paint("Substitutions", text.FgYellow), fmt.Sprint(stats.Substitutions), "Different frames in same position"},
		{p.paint("Insertions", text.FgRed), fmt.Sprint(stats.Insertions), "Extra frames in evidence video"},
		{p.paint("Deletions", text.FgRed), fmt.Sprint(stats.Deletions), "Missing frames from evidence video"},
		{p.paint("Edit Distance", text.FgRed), fmt.Sprint(cmp.EditDistance), "Total operations needed to transform reference to evidence"},
	}
	fmt.Fprintln(w, renderTableLayout(tableLayout{
		Title:   "Sequence Analysis Summary",
		Headers: []string{"Operation Type", "Count", "Description"},
		Rows:    rows,
		Aligns:  []columnAlignment{alignLeft, alignRight, alignLeft},
	}))
}

func renderAlignmentDetail(w io.Writer, cmp analysis.Comparison, limit int, p painter) {
	fmt.Fprintf(w, "\n%s\n", p.heading("Detailed Alignment", text.FgMagenta))
	shown := min(limit, len(cmp.Operations))
	rows := make([][]string, 0, shown)
	for _, op := range cmp.Operations[:shown] {
		rows = append(rows, operationRow(op, cmp.Similarity.Thresholds, p))
	}
	fmt.Fprintln(w, renderTableLayout(tableLayout{
		Headers: []string{"Operation", "Ref Frame", "Ev Frame", "Similarity", "Ref Hash", "Ev Hash"},
		Rows:    rows,
		Aligns:  []columnAlignment{alignLeft, alignCenter, alignCenter, alignCenter, alignLeft, alignLeft},
		Style:   table.StyleLight,
	}))
	if rest := len(cmp.Operations) - shown; rest > 0 {
		fmt.Fprintln(w, p.paint(fmt.Sprintf("... and %d more operations", rest), text.Faint))
	}
}

func operationRow(op analysis.ScoredOperation, thresholds similarity.Thresholds, p painter) []string {
	refFrame, refHash := placeholder, placeholder
	if op.HasRef() {
		refFrame, refHash = fmt.Sprint(op.RefFrame), op.RefToken.String()
	}
	evFrame, evHash := placeholder, placeholder
	if op.HasEv() {
		evFrame, evHash = fmt.Sprint(op.EvFrame), op.EvToken.String()
	}
	return []string{
		p.paint(upper.String(op.Kind.String()), kindColor(op.Kind), text.Bold),
		refFrame,
		evFrame,
		scoreLabel(op.Score, thresholds, p),
		refHash,
		evHash,
	}
}

func kindColor(kind alignment.Kind) text.Color {
	switch kind {
	case alignment.Match:
		return text.FgGreen
	case alignment.Substitution:
		return text.FgYellow
	default:
		return text.FgRed
	}
}

func scoreLabel(score similarity.Score, thresholds similarity.Thresholds, p painter) string {
	if !score.Available {
		return p.paint("N/A", text.Faint)
	}
	return p.paint(fmt.Sprintf("%.1f%%", score.Value), bucketColor(thresholds.Bucket(score.Value)))
}

func bucketColor(b similarity.Bucket) text.Color {
	switch b {
	case similarity.High:
		return text.FgGreen
	case similarity.Medium:
		return text.FgYellow
	default:
		return text.FgRed
	}
}

func renderFinalSummary(w io.Writer, cmp analysis.Comparison, p painter) {
	fmt.Fprintf(w, "\n%s\n", p.heading("Final Summary", text.FgGreen))
	sim := cmp.Similarity
	stats := cmp.Statistics
	t := sim.Thresholds

	rows := [][]string{
		{"Frames Analyzed", fmt.Sprint(cmp.FramesAnalyzed)},
		{"Overall Average Similarity", percentOrNA(sim.Mean, sim.Scored)},
		{"Minimum Similarity", percentOrNA(sim.Min, sim.Scored)},
		{"Maximum Similarity", percentOrNA(sim.Max, sim.Scored)},
	}
	if sim.HasSubstitutionScores() {
		rows = append(rows, []string{"Avg Substitution Similarity", fmt.Sprintf("%.2f%%", sim.SubstitutionMean)})
	}
	if sim.Unavailable > 0 {
		rows = append(rows, []string{p.paint("Unavailable Scores", text.Faint), fmt.Sprintf("%d frames", sim.Unavailable)})
	}
	rows = append(rows,
		nil,
		[]string{p.paint(fmt.Sprintf("High Similarity (≥%g%%)", t.High), text.FgGreen), fmt.Sprintf("%d frames", sim.HighCount)},
		[]string{p.paint(fmt.Sprintf("Medium Similarity (%g-%g%%)", t.Medium, t.High), text.FgYellow), fmt.Sprintf("%d frames", sim.MediumCount)},
		[]string{p.paint(fmt.Sprintf("Low Similarity (<%g%%)", t.Medium), text.FgRed), fmt.Sprintf("%d frames", sim.LowCount)},
		nil,
		[]string{"Identical Frames", fmt.Sprintf("%d/%d", cmp.IdenticalFrames, cmp.FramesAnalyzed)},
		[]string{"Total Modifications", fmt.Sprint(stats.Modifications())},
	)
	if stats.Insertions > 0 {
		rows = append(rows, []string{p.paint("Extra Frames Added", text.FgRed), fmt.Sprint(stats.Insertions)})
	}
	if stats.Deletions > 0 {
		rows = append(rows, []string{p.paint("Frames Removed", text.FgRed), fmt.Sprint(stats.Deletions)})
	}
	if stats.Substitutions > 0 {
		rows = append(rows, []string{p.paint("Frames Modified", text.FgYellow), fmt.Sprint(stats.Substitutions)})
	}

	fmt.Fprintln(w, renderTableLayout(tableLayout{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
		Aligns:  []columnAlignment{alignLeft, alignRight},
		Style:   table.StyleBold,
	}))
}

func percentOrNA(value float64, scored int) string {
	if scored == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.2f%%", value)
}
