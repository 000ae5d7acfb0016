// Package tui provides the interactive Bubble Tea expense tracker.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/spend/internal/cli"
	"github.com/theirongolddev/spend/internal/config"
	"github.com/theirongolddev/spend/internal/ledger"
	"github.com/theirongolddev/spend/internal/model"
	"github.com/theirongolddev/spend/internal/tui/components"
	"github.com/theirongolddev/spend/internal/tui/theme"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"
)

const (
	tabExpenses = iota
	tabSummary
	tabSettings
)

const (
	minTerminalWidth = 60
	maxContentWidth  = 140
	minContentHeight = 5

	flashDuration = 3 * time.Second
)

// chartView is what the summary tab draws. The ledger refreshes it through
// a subscription after every change.
type chartView struct {
	summary    model.Summary
	byCategory map[string][]float64
	updates    int
}

type clearFlashMsg struct{ seq int }

// App is the root Bubble Tea model.
type App struct {
	ledger *ledger.Ledger
	cfg    config.Config
	chart  *chartView

	table table.Model

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	flash    string
	flashErr bool
	flashSeq int

	// Add / edit / delete form (huh). Values live behind a pointer so
	// copies of App made by Update keep writing to the same fields.
	form     *huh.Form
	formKind formKind
	formVals *entryValues
	formID   int64

	settings settingsState

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *SetupValues
	needSetup bool
}

// NewApp creates the TUI over a loaded ledger. firstRun opens the setup
// form before anything else.
func NewApp(l *ledger.Ledger, cfg config.Config, firstRun bool) App {
	cv := &chartView{summary: l.Summary(), byCategory: l.ByCategory()}
	l.Subscribe(func(s model.Summary) error {
		cv.summary = s
		cv.byCategory = l.ByCategory()
		cv.updates++
		return nil
	})

	a := App{
		ledger:    l,
		cfg:       cfg,
		chart:     cv,
		table:     newExpenseTable(),
		needSetup: firstRun,
	}
	if firstRun {
		a.setupVals = SetupValuesFrom(cfg)
		a.setupForm = NewSetupForm(a.setupVals, cfg.Ledger.Categories)
	}
	a.refreshTable()
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnableMouseCellMotion}
	if a.needSetup && a.setupForm != nil {
		cmds = append(cmds, a.setupForm.Init())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.layout()
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		if a.form != nil {
			a.form = a.form.WithWidth(a.formWidth())
		}
		return a, nil

	case clearFlashMsg:
		if msg.seq == a.flashSeq {
			a.flash = ""
			a.flashErr = false
		}
		return a, nil

	case tea.MouseMsg:
		if a.showHelp || a.form != nil || (a.needSetup && a.setupForm != nil) {
			return a, nil
		}
		return a.updateMouse(msg)

	case tea.KeyMsg:
		key := msg.String()

		// Global: quit
		if key == "ctrl+c" {
			return a, tea.Quit
		}

		// First-run setup wizard intercepts all keys
		if a.needSetup && a.setupForm != nil {
			return a.updateSetupForm(msg)
		}

		// An open entry form owns the keyboard until it completes or aborts.
		if a.form != nil {
			return a.updateForm(msg)
		}

		if a.activeTab == tabSettings && a.settings.editing {
			return a.updateSettingsInput(msg)
		}

		// Help toggle
		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}

		// Dismiss help
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		if key == "q" {
			return a, tea.Quit
		}

		// Tab navigation
		if len(key) == 1 {
			if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
				a.activeTab = idx
				return a, nil
			}
		}
		switch key {
		case "tab", "right", "l":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
			return a, nil
		case "shift+tab", "left", "h":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
			return a, nil
		}

		switch a.activeTab {
		case tabExpenses:
			return a.updateExpensesKeys(msg)
		case tabSummary:
			if key == "r" {
				return a, a.resync()
			}
		case tabSettings:
			return a.updateSettingsKeys(msg)
		}
		return a, nil
	}

	// Forward unhandled messages (cursor blinks, etc.) to whichever form is open.
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.form != nil {
		return a.updateForm(msg)
	}

	return a, nil
}

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if a.activeTab == tabExpenses {
			a.table.MoveUp(1)
		}
	case tea.MouseButtonWheelDown:
		if a.activeTab == tabExpenses {
			a.table.MoveDown(1)
		}
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return a, nil
		}
		// The tab bar is the first line.
		if msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
	}
	return a, nil
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		a.cfg = a.setupVals.Apply(a.cfg)
		theme.SetActive(a.cfg.Appearance.Theme)
		a.table.SetStyles(expenseTableStyles())
		a.needSetup = false
		a.setupForm = nil
		if err := config.Save(a.cfg); err != nil {
			log.Error().Err(err).Msg("saving setup config")
			return a, a.setFlash("Could not save config: "+err.Error(), true)
		}
		return a, a.setFlash("Saved to "+config.Path(), false)
	case huh.StateAborted:
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}

// setFlash shows msg in the status bar and schedules its removal.
func (a *App) setFlash(msg string, isErr bool) tea.Cmd {
	a.flashSeq++
	a.flash = msg
	a.flashErr = isErr
	seq := a.flashSeq
	return tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return clearFlashMsg{seq: seq}
	})
}

// flashError reports a failed ledger operation in the status bar.
func (a *App) flashError(err error) tea.Cmd {
	return a.setFlash(describeError(err), true)
}

func describeError(err error) string {
	switch {
	case model.IsValidation(err):
		return "Invalid input: " + err.Error()
	case model.IsNotFound(err):
		return "That expense no longer exists; list reloaded"
	case model.IsStorage(err):
		return "Storage error: " + err.Error()
	default:
		return err.Error()
	}
}

func (a *App) resync() tea.Cmd {
	if err := a.ledger.Resync(context.Background()); err != nil {
		return a.flashError(err)
	}
	a.refreshTable()
	return a.setFlash("Reloaded "+cli.FormatCount(a.ledger.Len(), "expense"), false)
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) contentHeight() int {
	// tab bar + status bar
	return max(a.height-2, minContentHeight)
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	// First-run setup wizard
	if a.needSetup && a.setupForm != nil {
		return a.viewSetup()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  spend needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		name     string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"1 2 3", "Jump to tab"},
			{"← → tab", "Previous / Next tab"},
			{"j k ↑ ↓", "Move through expenses"},
		}},
		{"Expenses", []struct{ key, desc string }{
			{"a", "Add expense"},
			{"Enter e", "Edit selected"},
			{"d", "Delete selected"},
			{"r", "Reload from database"},
			{"Esc", "Cancel form"},
		}},
		{"General", []struct{ key, desc string }{
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, sec := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(sec.name))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)

	s := a.chart.summary
	totals := fmt.Sprintf("%s · %s", cli.FormatCount(s.Count, "expense"), cli.FormatAmount(s.Total))
	statusBar := components.RenderStatusBar(w, a.flash, a.flashErr, totals)

	contentH := max(h-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	switch a.activeTab {
	case tabExpenses:
		content = a.renderExpensesTab(cw)
	case tabSummary:
		content = a.renderSummaryTab(cw, contentH)
	case tabSettings:
		content = a.renderSettingsTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Helpers ────────────────────────────────────────────────────

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
	}
	return strings.Join(lines, "\n")
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}
