package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used by the week view.
type Styles struct {
	Header      lipgloss.Style
	HeaderSel   lipgloss.Style
	Gutter      lipgloss.Style
	Empty       lipgloss.Style
	HourLine    lipgloss.Style
	Event       lipgloss.Style
	EventSel    lipgloss.Style
	Status      lipgloss.Style
	Error       lipgloss.Style
	DetailTitle lipgloss.Style
	Label       lipgloss.Style
	Popup       lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Header:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#88C0D0")),
		HeaderSel:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2E3440")).Background(lipgloss.Color("#88C0D0")),
		Gutter:      lipgloss.NewStyle().Foreground(lipgloss.Color("#4C566A")),
		Empty:       lipgloss.NewStyle(),
		HourLine:    lipgloss.NewStyle().Foreground(lipgloss.Color("#3B4252")),
		Event:       lipgloss.NewStyle().Foreground(lipgloss.Color("#ECEFF4")).Background(lipgloss.Color("#5E81AC")),
		EventSel:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2E3440")).Background(lipgloss.Color("#EBCB8B")),
		Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("#A3BE8C")),
		Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("#BF616A")),
		DetailTitle: lipgloss.NewStyle().Bold(true).Underline(true),
		Label:       lipgloss.NewStyle().Foreground(lipgloss.Color("#81A1C1")),
		Popup:       lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2),
	}
}
