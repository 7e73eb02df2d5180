package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// holeKeys maps the top-left corner of the grid onto the keyboard
var holeKeys = []string{"1234567890", "qwertyuiop", "asdfghjkl", "zxcvbnm"}

// KeyMap defines the game's key bindings
type KeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Whack key.Binding
	Holes key.Binding
	Quit  key.Binding
}

// DefaultKeyMap returns the standard bindings for a rows x cols grid
func DefaultKeyMap(rows, cols int) KeyMap {
	return KeyMap{
		Up:    key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:  key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		Left:  key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
		Right: key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),
		Whack: key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "whack")),
		Holes: key.NewBinding(key.WithHelp(holeKeysHelp(rows, cols), "whack hole")),
		Quit:  key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Whack, k.Holes, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Whack, k.Holes, k.Quit},
	}
}

// holeKeysHelp describes the direct keys in use, one range per keyboard row
func holeKeysHelp(rows, cols int) string {
	var ranges []string
	for r := 0; r < rows && r < len(holeKeys); r++ {
		row := holeKeys[r][:min(cols, len(holeKeys[r]))]
		if len(row) == 1 {
			ranges = append(ranges, row)
			continue
		}
		ranges = append(ranges, row[:1]+"-"+row[len(row)-1:])
	}
	return strings.Join(ranges, "/")
}

// holeForKey returns the hole bound to a direct key, if any
func holeForKey(s string, rows, cols int) (int, bool) {
	if len(s) != 1 {
		return 0, false
	}
	for r := 0; r < rows && r < len(holeKeys); r++ {
		for c := 0; c < cols && c < len(holeKeys[r]); c++ {
			if holeKeys[r][c] == s[0] {
				return r*cols + c, true
			}
		}
	}
	return 0, false
}

// keyForHole returns the direct key label for a hole, or ""
func keyForHole(hole, cols int) string {
	r, c := hole/cols, hole%cols
	if r < len(holeKeys) && c < len(holeKeys[r]) {
		return string(holeKeys[r][c])
	}
	return ""
}
