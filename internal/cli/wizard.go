package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/alexanderramin/metis/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// metisHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func metisHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// validatePositiveInt accepts empty or a positive integer.
func validatePositiveInt(s string) error {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return fmt.Errorf("enter a positive number")
	}
	return nil
}

// validatePositiveFloat accepts empty or a positive decimal number.
func validatePositiveFloat(s string) error {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return fmt.Errorf("enter a positive number")
	}
	return nil
}

// validateRequiredFloat accepts only a positive decimal number.
func validateRequiredFloat(s string) error {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return fmt.Errorf("enter a positive number")
	}
	return nil
}

// validateOptionalDate accepts empty or a YYYY-MM-DD date.
func validateOptionalDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fmt.Errorf("enter a date as YYYY-MM-DD")
	}
	return nil
}

// parsePositiveInt parses s as a positive integer, returning fallback if s
// is empty, non-numeric, or non-positive. Used after huh form validation
// has already ensured the string is valid, so this is a safe conversion.
func parsePositiveInt(s string, fallback int) int {
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func parseFloat(s string, fallback float64) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}
	return v
}

// runPlanWizard prompts for the task text, daily hours, and start date.
// It returns the entered text; hours and start are written through.
func runPlanWizard(hours *int, start *string) (string, error) {
	var text string
	hoursStr := strconv.Itoa(*hours)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Tasks").
				Description("Paste your task list, syllabus excerpt, or todo items").
				Value(&text),
			huh.NewInput().
				Title("Hours per day").
				Placeholder(hoursStr).
				Value(&hoursStr).
				Validate(validatePositiveInt),
			huh.NewInput().
				Title("Start date").
				Description("YYYY-MM-DD, empty for tomorrow").
				Value(start).
				Validate(validateOptionalDate),
		),
	).WithTheme(metisHuhTheme()).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return "", err
	}

	*hours = parsePositiveInt(hoursStr, *hours)
	return text, nil
}

// runLogWizard prompts for the fields of one completion record.
func runLogWizard(title, taskType *string, estimated, actual, session *float64) error {
	var estStr, actStr, sesStr string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Task title").
				Value(title).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("title is required")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Task type").
				Options(
					huh.NewOption("Assignment", "assignment"),
					huh.NewOption("Exam", "exam"),
					huh.NewOption("Quiz", "quiz"),
					huh.NewOption("Project", "project"),
					huh.NewOption("Reading", "reading"),
					huh.NewOption("Lab", "lab"),
					huh.NewOption("Presentation", "presentation"),
					huh.NewOption("Discussion", "discussion"),
					huh.NewOption("Other", "other"),
				).
				Value(taskType),
			huh.NewInput().
				Title("Hours actually spent").
				Value(&actStr).
				Validate(validateRequiredFloat),
			huh.NewInput().
				Title("Hours originally estimated").
				Placeholder("empty if unknown").
				Value(&estStr).
				Validate(validatePositiveFloat),
			huh.NewInput().
				Title("Typical sitting length (hours)").
				Placeholder("empty if unknown").
				Value(&sesStr).
				Validate(validatePositiveFloat),
		),
	).WithTheme(metisHuhTheme()).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return err
	}

	*actual = parseFloat(actStr, 0)
	*estimated = parseFloat(estStr, 0)
	*session = parseFloat(sesStr, 0)
	return nil
}
