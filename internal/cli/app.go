package cli

import (
	"github.com/alexanderramin/canteiro/internal/cli/formatter"
	"github.com/alexanderramin/canteiro/internal/service"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Constructions service.ConstructionService
	Phases        service.PhaseService
	Stages        service.StageService
	Tasks         service.TaskService
	Progress      service.ProgressService
	Templates     service.TemplateService

	// Locale drives money and percentage formatting.
	Locale language.Tag
	// IsInteractive reports whether stdin is a terminal. Nil means no.
	IsInteractive func() bool
	// Confirm asks a yes/no question. Defaults to a huh prompt.
	Confirm func(title string) (bool, error)
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) confirm(title string) (bool, error) {
	if a.Confirm != nil {
		return a.Confirm(title)
	}
	return huhConfirm(title)
}

func huhConfirm(title string) (bool, error) {
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	).WithTheme(canteiroHuhTheme()).WithShowHelp(false).Run()
	return ok, err
}

func canteiroHuhTheme() *huh.Theme {
	t := huh.ThemeBase()
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Blurred = t.Focused
	return t
}
