package main

import (
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Width(10).
			Foreground(lipgloss.Color("15"))

	handStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	categoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))

	equityStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))
)

// disableColor switches every renderer to plain ASCII output.
func disableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func newEquityBar(noColor bool) progress.Model {
	opts := []progress.Option{
		progress.WithWidth(32),
		progress.WithoutPercentage(),
	}
	if noColor {
		opts = append(opts, progress.WithColorProfile(termenv.Ascii))
	} else {
		opts = append(opts, progress.WithGradient("#FF5F5F", "#5FFF87"))
	}
	return progress.New(opts...)
}

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), value)
}
