package cli

import (
	"github.com/alexanderramin/bizpulse/internal/assistant"
	"github.com/alexanderramin/bizpulse/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// bizpulseHuhTheme styles huh forms with the formatter palette.
func bizpulseHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	return t
}

// examplePickerOptions lists quick actions then example questions; the
// option value is the question to ask.
func examplePickerOptions() []huh.Option[string] {
	examples := assistant.Examples()
	opts := make([]huh.Option[string], 0, len(examples))
	for _, ex := range examples {
		label := ex.Question
		if ex.Title != ex.Question {
			label = ex.Title + ": " + ex.Question
		}
		opts = append(opts, huh.NewOption(label, ex.Question))
	}
	return opts
}

// newExamplePicker returns a one-field form writing the chosen question
// to value.
func newExamplePicker(value *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Pick a question").
				Description("Quick actions first, then example questions").
				Options(examplePickerOptions()...).
				Value(value),
		),
	).WithTheme(bizpulseHuhTheme()).WithShowHelp(false)
}
