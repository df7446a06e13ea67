package widget

import "fmt"

// Menu is the state of the settings menu. At most one submenu is open.
type Menu int

const (
	MenuClosed Menu = iota
	MenuRoot
	MenuSpeed
	MenuQuality
)

var menuNames = []string{"closed", "root", "speed", "quality"}

func (m Menu) String() string {
	if m < 0 || int(m) >= len(menuNames) {
		return "unknown"
	}
	return menuNames[m]
}

func (m Menu) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Menu) UnmarshalText(text []byte) error {
	for i, name := range menuNames {
		if name == string(text) {
			*m = Menu(i)
			return nil
		}
	}
	return fmt.Errorf("unknown menu: %q", text)
}

type settings struct {
	menu    Menu
	speed   int
	quality int
}

func newSettings() *settings {
	return &settings{speed: indexOf(Speeds, 1)}
}

func (s *settings) open() bool {
	return s.menu != MenuClosed
}

// toggle flips between closed and the root menu. A submenu closes entirely.
func (s *settings) toggle() {
	if s.open() {
		s.menu = MenuClosed
	} else {
		s.menu = MenuRoot
	}
}

// submenu opens m, replacing whichever menu was open.
func (s *settings) submenu(m Menu) {
	s.menu = m
}

func (s *settings) close() {
	s.menu = MenuClosed
}

// selectSpeed applies Speeds[i] and closes the menu. It reports false for an index out of range.
func (s *settings) selectSpeed(i int) (float64, bool) {
	if i < 0 || i >= len(Speeds) {
		return 0, false
	}
	s.speed = i
	s.menu = MenuClosed
	return Speeds[i], true
}

func (s *settings) selectQuality(i int) bool {
	if i < 0 || i >= len(Qualities) {
		return false
	}
	s.quality = i
	s.menu = MenuClosed
	return true
}

func indexOf[T comparable](items []T, v T) int {
	for i, item := range items {
		if item == v {
			return i
		}
	}
	return 0
}
