package ui

import (
	"github.com/charmbracelet/lipgloss"

	"proctab/internal/theme"
)

type Styles struct {
	Status      lipgloss.Style
	Prompt      lipgloss.Style
	Help        lipgloss.Style
	PopupBox    lipgloss.Style
	PopupTitle  lipgloss.Style
	TableStyles TableStyles
}

type TableStyles struct {
	Header   lipgloss.Style
	Cell     lipgloss.Style
	Selected lipgloss.Style
}

func NewStyles(th theme.Theme) Styles {
	s := Styles{}
	if th == theme.Light {
		s.Status = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
		s.Prompt = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("27"))
		s.Help = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
		s.PopupBox = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("12")).Padding(1, 2)
		s.PopupTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("27"))
		s.TableStyles = TableStyles{
			Header:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4")),
			Cell:     lipgloss.NewStyle(),
			Selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("27")),
		}
		return s
	}
	s.Status = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	s.Prompt = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	s.Help = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	s.PopupBox = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("60")).Padding(1, 2)
	s.PopupTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	s.TableStyles = TableStyles{
		Header:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Cell:     lipgloss.NewStyle(),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("220")),
	}
	return s
}
