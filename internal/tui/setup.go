package tui

import (
	"github.com/theirongolddev/spend/internal/config"
	"github.com/theirongolddev/spend/internal/tui/theme"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// SetupValues holds the answers of the first-run setup form.
type SetupValues struct {
	Theme           string
	DefaultCategory string
	ConfirmDelete   bool
}

// SetupValuesFrom seeds the setup answers from cfg.
func SetupValuesFrom(cfg config.Config) *SetupValues {
	return &SetupValues{
		Theme:           cfg.Appearance.Theme,
		DefaultCategory: cfg.General.DefaultCategory,
		ConfirmDelete:   cfg.General.ConfirmDelete,
	}
}

// Apply copies the answers into cfg.
func (v SetupValues) Apply(cfg config.Config) config.Config {
	if theme.Valid(v.Theme) {
		cfg.Appearance.Theme = v.Theme
	}
	if v.DefaultCategory != "" {
		cfg.General.DefaultCategory = v.DefaultCategory
	}
	cfg.General.ConfirmDelete = v.ConfirmDelete
	return cfg
}

// NewSetupForm builds the setup form. The TUI embeds it on first run and
// `spend setup` runs it standalone.
func NewSetupForm(v *SetupValues, categories []string) *huh.Form {
	themeOpts := make([]huh.Option[string], len(theme.All))
	for i, t := range theme.All {
		themeOpts[i] = huh.NewOption(t.Name, t.Name)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to spend").
				Description("Track expenses by date and category.\nA few choices and you're ready."),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&v.Theme),
			huh.NewSelect[string]().
				Title("Default category").
				Description("Preselected when adding an expense.").
				Options(huh.NewOptions(categoryOptions(categories, v.DefaultCategory)...)...).
				Value(&v.DefaultCategory),
			huh.NewConfirm().
				Title("Ask before deleting?").
				Value(&v.ConfirmDelete),
		),
	).WithShowHelp(true)
}

func (a App) viewSetup() string {
	t := theme.Active
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 2).
		Width(min(a.width-4, 70)).
		Render(a.setupForm.View())

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}
