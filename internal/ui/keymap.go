package ui

import tea "github.com/charmbracelet/bubbletea"

type KeyMap struct {
	Pause    tea.Key
	Search   tea.Key
	Logic    tea.Key
	SortNext tea.Key
	SortPrev tea.Key
	Reverse  tea.Key
	Top      tea.Key
	Bottom   tea.Key
	AppLogs  tea.Key
	Help     tea.Key
	Quit     tea.Key
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Pause:    tea.Key{Type: tea.KeyRunes, Runes: []rune{' '}},
		Search:   tea.Key{Type: tea.KeyRunes, Runes: []rune{'/'}},
		Logic:    tea.Key{Type: tea.KeyRunes, Runes: []rune{'o'}},
		SortNext: tea.Key{Type: tea.KeyRunes, Runes: []rune{'>'}},
		SortPrev: tea.Key{Type: tea.KeyRunes, Runes: []rune{'<'}},
		Reverse:  tea.Key{Type: tea.KeyRunes, Runes: []rune{'r'}},
		Top:      tea.Key{Type: tea.KeyRunes, Runes: []rune{'g'}},
		Bottom:   tea.Key{Type: tea.KeyRunes, Runes: []rune{'G'}},
		AppLogs:  tea.Key{Type: tea.KeyRunes, Runes: []rune{'L'}},
		Help:     tea.Key{Type: tea.KeyRunes, Runes: []rune{'?'}},
		Quit:     tea.Key{Type: tea.KeyRunes, Runes: []rune{'q'}},
	}
}

func keyMatches(msg tea.KeyMsg, k tea.Key) bool {
	if k.Type != tea.KeyRunes {
		return msg.Type == k.Type
	}
	if len(k.Runes) > 0 {
		return msg.String() == string(k.Runes)
	}
	return false
}

func keyLabel(k tea.Key) string {
	if k.Type == tea.KeyRunes && len(k.Runes) == 1 && k.Runes[0] == ' ' {
		return "space"
	}
	return k.String()
}
