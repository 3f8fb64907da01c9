package controller

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/olekukonko/tablewriter"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	m "termite.dev/pkg/termite/internal/model"
)

// diffContext is the number of unchanged lines shown around each change.
const diffContext = 1

// SimpleUI implements UI using cobra Command's output writers.
type SimpleUI struct {
	cmd    *cobra.Command
	config StartConfig

	showProgress bool

	mu       sync.Mutex
	progress *progressbar.ProgressBar
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd, config: newStartConfig(nil)}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.config = newStartConfig(options)

	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.progress != nil {
		_ = s.progress.Finish()
		s.progress = nil
	}
}

// Wait blocks until the UI is closed (no-op for SimpleUI).
func (s *SimpleUI) Wait(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
	// SimpleUI doesn't block - it just prints and continues
}

// DisplayScanStarted starts the scan progress bar when enabled.
func (s *SimpleUI) DisplayScanStarted(ctx context.Context, files int) {
	if err := ctx.Err(); err != nil {
		return
	}

	if !s.showProgress || s.config.quiet || files == 0 {
		return
	}

	s.mu.Lock()
	s.progress = newScanBar(s.cmd.ErrOrStderr(), files)
	s.mu.Unlock()
}

// DisplayFileScanned advances the scan progress bar.
func (s *SimpleUI) DisplayFileScanned(ctx context.Context, _ m.Path) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.progress != nil {
		_ = s.progress.Add(1)
	}
}

// DisplayFileError prints a per-file failure.
func (s *SimpleUI) DisplayFileError(ctx context.Context, failure m.FileError) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.errorf("%s\n", errorStyle.Render("error: "+failure.Error()))
}

// DisplayPreview prints the changes of one file as a diff, or the whole
// reconstructed file with --full.
func (s *SimpleUI) DisplayPreview(ctx context.Context, preview m.FilePreview) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if s.config.quiet {
		return nil
	}

	s.printf("%s", renderPreview(preview, s.config.full))

	return nil
}

// DisplayReport prints the report card as a table or as YAML.
func (s *SimpleUI) DisplayReport(ctx context.Context, card m.ReportCard, format string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	out, err := renderReport(card, format)
	if err != nil {
		return err
	}

	s.printf("%s", out)

	return nil
}

// DisplaySummary prints the run summary.
func (s *SimpleUI) DisplaySummary(ctx context.Context, summary m.Summary) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("%s", renderSummary(summary))
}

// DisplayWatchEvent announces a rerun triggered by file changes.
func (s *SimpleUI) DisplayWatchEvent(ctx context.Context, paths []m.Path) {
	if err := ctx.Err(); err != nil {
		return
	}

	names := make([]string, 0, len(paths))
	for _, p := range paths {
		names = append(names, string(p))
	}

	s.printf("\n%s %s\n", noticeStyle.Render(fmt.Sprintf("Change detected in %d file(s):", len(paths))), strings.Join(names, " "))
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func (s *SimpleUI) errorf(format string, args ...interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = fmt.Fprintf(s.cmd.ErrOrStderr(), format, args...)
}

func renderPreview(preview m.FilePreview, full bool) string {
	if full {
		return renderFullPreview(preview)
	}

	return renderDiff(preview)
}

// renderFullPreview prints every reconstructed line, marking changed ones
// with "+" and their 0-based line number.
func renderFullPreview(preview m.FilePreview) string {
	var b strings.Builder

	changed := make(map[int]struct{}, len(preview.Changed))
	for _, n := range preview.Changed {
		changed[n] = struct{}{}
	}

	b.WriteString(headerStyle.Render(string(preview.Path)))
	b.WriteString("\n")

	for i, text := range preview.After {
		if _, ok := changed[i]; ok {
			b.WriteString(addedStyle.Render(fmt.Sprintf("+ %d %s", i, text)))
		} else {
			b.WriteString(fmt.Sprintf("  %d %s", i, text))
		}

		b.WriteString("\n")
	}

	return b.String()
}

// renderDiff prints a unified diff of the file with 0-based line numbers.
func renderDiff(preview m.FilePreview) string {
	groups := difflib.NewMatcher(preview.Before, preview.After).GetGroupedOpCodes(diffContext)
	if len(groups) == 0 {
		return ""
	}

	var b strings.Builder

	b.WriteString(headerStyle.Render("--- a/" + string(preview.Path)))
	b.WriteString("\n")
	b.WriteString(headerStyle.Render("+++ b/" + string(preview.Path)))
	b.WriteString("\n")

	for _, group := range groups {
		first, last := group[0], group[len(group)-1]
		b.WriteString(hunkStyle.Render(fmt.Sprintf("@@ -%s +%s @@",
			formatRange(first.I1, last.I2), formatRange(first.J1, last.J2))))
		b.WriteString("\n")

		for _, op := range group {
			if op.Tag == 'e' {
				for i := op.I1; i < op.I2; i++ {
					b.WriteString(contextStyle.Render(fmt.Sprintf("  %d %s", i, preview.Before[i])))
					b.WriteString("\n")
				}

				continue
			}

			if op.Tag == 'r' || op.Tag == 'd' {
				for i := op.I1; i < op.I2; i++ {
					b.WriteString(removedStyle.Render(fmt.Sprintf("- %d %s", i, preview.Before[i])))
					b.WriteString("\n")
				}
			}

			if op.Tag == 'r' || op.Tag == 'i' {
				for j := op.J1; j < op.J2; j++ {
					b.WriteString(addedStyle.Render(fmt.Sprintf("+ %d %s", j, preview.After[j])))
					b.WriteString("\n")
				}
			}
		}
	}

	return b.String()
}

// formatRange renders a hunk range the way unified diffs do (1-based).
func formatRange(start, stop int) string {
	beginning := start + 1
	length := stop - start

	if length == 1 {
		return fmt.Sprintf("%d", beginning)
	}

	if length == 0 {
		beginning--
	}

	return fmt.Sprintf("%d,%d", beginning, length)
}

func renderReport(card m.ReportCard, format string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatTable:
		return renderReportTable(card), nil
	case FormatYAML:
		out, err := yaml.Marshal(card)
		if err != nil {
			return "", fmt.Errorf("encode report: %w", err)
		}

		return string(out), nil
	default:
		return "", fmt.Errorf("%w %q (want %s or %s)", ErrUnknownFormat, format, FormatTable, FormatYAML)
	}
}

func renderReportTable(card m.ReportCard) string {
	var tableBuffer bytes.Buffer

	files := tablewriter.NewWriter(&tableBuffer)
	files.SetHeader([]string{"Path", "Lines", "Doc Lines", "Declarations", "Public", "Identifiers"})
	files.SetBorder(false)
	files.SetCenterSeparator("")
	files.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
	})

	var declarations, public, identifiers int

	for _, stat := range card.PerFile {
		files.Append([]string{
			string(stat.Path),
			fmt.Sprintf("%d", stat.Lines),
			fmt.Sprintf("%d", stat.DocLines),
			fmt.Sprintf("%d", stat.Declarations),
			fmt.Sprintf("%d", stat.PublicDeclarations),
			fmt.Sprintf("%d", stat.Identifiers),
		})

		declarations += stat.Declarations
		public += stat.PublicDeclarations
		identifiers += stat.Identifiers
	}

	files.SetFooter([]string{
		fmt.Sprintf("Total Files %d", card.Files),
		fmt.Sprintf("%d", card.Lines),
		fmt.Sprintf("%d", card.DocLines),
		fmt.Sprintf("%d", declarations),
		fmt.Sprintf("%d", public),
		fmt.Sprintf("%d", identifiers),
	})
	files.Render()

	tableBuffer.WriteString("\n")

	kinds := tablewriter.NewWriter(&tableBuffer)
	kinds.SetHeader([]string{"Kind", "Total", "Public"})
	kinds.SetBorder(false)
	kinds.SetCenterSeparator("")
	kinds.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT})

	for _, count := range card.Kinds {
		kinds.Append([]string{string(count.Kind), fmt.Sprintf("%d", count.Total), fmt.Sprintf("%d", count.Public)})
	}

	kinds.Render()

	fmt.Fprintf(&tableBuffer, "\nRegistry: %d identifier(s)\n", card.RegistrySize)

	if card.FailedFiles > 0 {
		fmt.Fprintf(&tableBuffer, "Failed files: %d\n", card.FailedFiles)
	}

	if len(card.Always) > 0 {
		fmt.Fprintf(&tableBuffer, "Always linked: %s\n", strings.Join(card.Always, " "))
	}

	return tableBuffer.String()
}

func renderSummary(summary m.Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "\n%d CHANGES ON %d FILES IN: %.2fs\n",
		summary.LinesModified, summary.Files, summary.Elapsed.Seconds())

	verb := "changed"
	if summary.Mode == m.ModePreview {
		verb = "would change"
	}

	fmt.Fprintf(&b, "%d file(s) %s\n", summary.FilesChanged, verb)

	if len(summary.Failures) > 0 {
		b.WriteString(errorStyle.Render(fmt.Sprintf("%d file(s) failed", len(summary.Failures))))
		b.WriteString("\n")
	}

	return b.String()
}
