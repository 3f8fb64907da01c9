package controller

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	m "termite.dev/pkg/termite/internal/model"
)

// pagerChrome is the number of terminal rows the pager reserves for its footer.
const pagerChrome = 2

// TUI implements UI for terminals. It shows a scan progress bar and collects
// previews into a scrollable pager when they do not fit on screen.
type TUI struct {
	*SimpleUI

	pending strings.Builder
	footer  strings.Builder
}

// NewTUI creates a new TUI.
func NewTUI(cmd *cobra.Command) *TUI {
	simple := NewSimpleUI(cmd)
	simple.showProgress = true

	return &TUI{SimpleUI: simple}
}

// Start initializes the UI and drops anything left from a previous run.
func (t *TUI) Start(ctx context.Context, options ...StartOption) error {
	if err := t.SimpleUI.Start(ctx, options...); err != nil {
		return err
	}

	t.pending.Reset()
	t.footer.Reset()

	return nil
}

// DisplayPreview buffers the preview until Wait, except in watch sessions.
func (t *TUI) DisplayPreview(ctx context.Context, preview m.FilePreview) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if t.config.watch || t.config.quiet {
		return t.SimpleUI.DisplayPreview(ctx, preview)
	}

	t.pending.WriteString(renderPreview(preview, t.config.full))

	return nil
}

// DisplaySummary is printed after the pager closes so it stays on screen.
func (t *TUI) DisplaySummary(ctx context.Context, summary m.Summary) {
	if err := ctx.Err(); err != nil {
		return
	}

	if t.config.watch {
		t.SimpleUI.DisplaySummary(ctx, summary)
		return
	}

	t.footer.WriteString(renderSummary(summary))
}

// Wait shows the buffered previews, paging them when they are taller than the
// terminal, then prints the summary.
func (t *TUI) Wait(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}

	content := t.pending.String()
	footer := t.footer.String()

	t.pending.Reset()
	t.footer.Reset()

	out := t.cmd.OutOrStdout()

	if content != "" {
		if err := showPaged(out, content); err != nil {
			t.errorf("%s\n", errorStyle.Render("pager: "+err.Error()))
			t.printf("%s", content)
		}
	}

	if footer != "" {
		t.printf("%s", footer)
	}
}

// showPaged prints content directly if it fits the terminal attached to out,
// or runs the pager otherwise.
func showPaged(out io.Writer, content string) error {
	height := 0

	f, ok := out.(*os.File)
	if ok {
		if _, h, err := term.GetSize(int(f.Fd())); err == nil {
			height = h
		}
	}

	if height == 0 || strings.Count(content, "\n") <= height-pagerChrome {
		_, err := fmt.Fprint(out, content)
		return err
	}

	program := tea.NewProgram(newPagerModel(content), tea.WithOutput(out), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

// pagerModel is the Bubble Tea model scrolling over the preview text.
type pagerModel struct {
	content  string
	viewport viewport.Model
	ready    bool
	quitting bool
}

func newPagerModel(content string) pagerModel {
	return pagerModel{content: content}
}

func (pm pagerModel) Init() tea.Cmd {
	return nil
}

func (pm pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		height := msg.Height - pagerChrome
		if height < 1 {
			height = 1
		}

		if !pm.ready {
			pm.viewport = viewport.New(msg.Width, height)
			pm.viewport.SetContent(pm.content)
			pm.ready = true

			return pm, nil
		}

		pm.viewport.Width = msg.Width
		pm.viewport.Height = height

		return pm, nil

	case tea.KeyMsg:
		return pm.handleKeyPress(msg)
	}

	return pm, nil
}

//nolint:exhaustive // Only quit keys are handled by type
func (pm pagerModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		pm.quitting = true
		return pm, tea.Quit
	default:
		// Handle other key types in the string switch below
	}

	switch msg.String() {
	case "q":
		pm.quitting = true
		return pm, tea.Quit

	case "g", "home":
		pm.viewport.GotoTop()
		return pm, nil

	case "G", "end":
		pm.viewport.GotoBottom()
		return pm, nil
	}

	var cmd tea.Cmd

	pm.viewport, cmd = pm.viewport.Update(msg)

	return pm, cmd
}

func (pm pagerModel) View() string {
	if pm.quitting {
		return ""
	}

	if !pm.ready {
		return "Loading preview...\n"
	}

	help := helpStyle.Render(fmt.Sprintf("%3.0f%%  j/k scroll  g/G top/bottom  q quit", pm.viewport.ScrollPercent()*100))

	return pm.viewport.View() + "\n\n" + help
}
